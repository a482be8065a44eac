package v1alpha1

import (
	"net/http"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/services/item"
	"github.com/KirkDiggler/rpg-forge/internal/statblock"
)

type updateItemRequest struct {
	Prompt string         `json:"prompt"`
	ID     int64          `json:"id,omitempty"`
	Item   *entities.Item `json:"item,omitempty"`
}

type itemListResponse struct {
	Items []*entities.ItemRecord `json:"items"`
}

type itemStatBlockResponse struct {
	StatBlock *statblock.ItemBlock `json:"statBlock"`
	Markdown  string               `json:"markdown"`
}

// GenerateItem handles POST /v1alpha1/items/generate
func (h *Handler) GenerateItem(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.itemService.Generate(r.Context(), &item.GenerateInput{
		OwnerID: ownerID(r),
		Prompt:  req.Prompt,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out.Record)
}

// UpdateItem handles POST /v1alpha1/items/update
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.itemService.Update(r.Context(), &item.UpdateInput{
		OwnerID: ownerID(r),
		Prompt:  req.Prompt,
		ID:      req.ID,
		Item:    req.Item,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Record)
}

// ListItems handles GET /v1alpha1/items
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	out, err := h.itemService.List(r.Context(), &item.ListInput{OwnerID: ownerID(r)})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemListResponse{Items: out.Records})
}

// GetItem handles GET /v1alpha1/items/{id}, optionally ?version=N
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	version, err := queryVersion(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if version > 0 {
		out, err := h.itemService.GetVersion(r.Context(), &item.GetVersionInput{
			OwnerID: ownerID(r),
			ID:      id,
			Version: version,
		})
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out.Record)
		return
	}

	out, err := h.itemService.Get(r.Context(), &item.GetInput{OwnerID: ownerID(r), ID: id})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Record)
}

// DeleteItem handles DELETE /v1alpha1/items/{id}
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.itemService.Delete(r.Context(), &item.DeleteInput{OwnerID: ownerID(r), ID: id}); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetItemStatBlock handles GET /v1alpha1/items/{id}/statblock
func (h *Handler) GetItemStatBlock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	version, err := queryVersion(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.itemService.RenderStatBlock(r.Context(), &item.RenderStatBlockInput{
		OwnerID: ownerID(r),
		ID:      id,
		Version: version,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeItemStatBlock(w, r, out)
}

// RenderItemStatBlock handles POST /v1alpha1/statblocks/item
func (h *Handler) RenderItemStatBlock(w http.ResponseWriter, r *http.Request) {
	var i entities.Item
	if err := decodeBody(w, r, &i); err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.itemService.RenderStatBlock(r.Context(), &item.RenderStatBlockInput{
		OwnerID: ownerID(r),
		Item:    &i,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeItemStatBlock(w, r, out)
}

func (h *Handler) writeItemStatBlock(w http.ResponseWriter, r *http.Request, out *item.RenderStatBlockOutput) {
	if wantsMarkdown(r) {
		writeMarkdown(w, out.Markdown)
		return
	}
	writeJSON(w, http.StatusOK, itemStatBlockResponse{StatBlock: out.Block, Markdown: out.Markdown})
}
