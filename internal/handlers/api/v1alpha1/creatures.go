package v1alpha1

import (
	"net/http"

	"github.com/KirkDiggler/rpg-forge/internal/clients/external"
	"github.com/KirkDiggler/rpg-forge/internal/entities"
	dicesession "github.com/KirkDiggler/rpg-forge/internal/repositories/dice_session"
	"github.com/KirkDiggler/rpg-forge/internal/services/creature"
	"github.com/KirkDiggler/rpg-forge/internal/statblock"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type updateCreatureRequest struct {
	Prompt   string             `json:"prompt"`
	ID       int64              `json:"id,omitempty"`
	Creature *entities.Creature `json:"creature,omitempty"`
}

type creatureListResponse struct {
	Creatures []*entities.CreatureRecord `json:"creatures"`
}

type creatureStatBlockResponse struct {
	StatBlock *statblock.CreatureBlock `json:"statBlock"`
	Markdown  string                   `json:"markdown"`
}

type rollHitPointsResponse struct {
	Notation string                `json:"notation"`
	Average  int                   `json:"average"`
	Roll     *dicesession.DiceRoll `json:"roll"`
}

type spellsResponse struct {
	Spells     []*external.SpellData `json:"spells"`
	Unresolved []string              `json:"unresolved"`
}

// GenerateCreature handles POST /v1alpha1/creatures/generate
func (h *Handler) GenerateCreature(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.creatureService.Generate(r.Context(), &creature.GenerateInput{
		OwnerID: ownerID(r),
		Prompt:  req.Prompt,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out.Record)
}

// UpdateCreature handles POST /v1alpha1/creatures/update
func (h *Handler) UpdateCreature(w http.ResponseWriter, r *http.Request) {
	var req updateCreatureRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.creatureService.Update(r.Context(), &creature.UpdateInput{
		OwnerID:  ownerID(r),
		Prompt:   req.Prompt,
		ID:       req.ID,
		Creature: req.Creature,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Record)
}

// ListCreatures handles GET /v1alpha1/creatures
func (h *Handler) ListCreatures(w http.ResponseWriter, r *http.Request) {
	out, err := h.creatureService.List(r.Context(), &creature.ListInput{OwnerID: ownerID(r)})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, creatureListResponse{Creatures: out.Records})
}

// GetCreature handles GET /v1alpha1/creatures/{id}, optionally ?version=N
func (h *Handler) GetCreature(w http.ResponseWriter, r *http.Request) {
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

	var rec *entities.CreatureRecord
	if version > 0 {
		out, err := h.creatureService.GetVersion(r.Context(), &creature.GetVersionInput{
			OwnerID: ownerID(r),
			ID:      id,
			Version: version,
		})
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		rec = out.Record
	} else {
		out, err := h.creatureService.Get(r.Context(), &creature.GetInput{OwnerID: ownerID(r), ID: id})
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		rec = out.Record
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteCreature handles DELETE /v1alpha1/creatures/{id}
func (h *Handler) DeleteCreature(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.creatureService.Delete(r.Context(), &creature.DeleteInput{OwnerID: ownerID(r), ID: id}); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCreatureStatBlock handles GET /v1alpha1/creatures/{id}/statblock
func (h *Handler) GetCreatureStatBlock(w http.ResponseWriter, r *http.Request) {
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

	out, err := h.creatureService.RenderStatBlock(r.Context(), &creature.RenderStatBlockInput{
		OwnerID: ownerID(r),
		ID:      id,
		Version: version,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeCreatureStatBlock(w, r, out)
}

// RenderCreatureStatBlock handles POST /v1alpha1/statblocks/creature for an
// unsaved creature
func (h *Handler) RenderCreatureStatBlock(w http.ResponseWriter, r *http.Request) {
	var c entities.Creature
	if err := decodeBody(w, r, &c); err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.creatureService.RenderStatBlock(r.Context(), &creature.RenderStatBlockInput{
		OwnerID:  ownerID(r),
		Creature: &c,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeCreatureStatBlock(w, r, out)
}

func (h *Handler) writeCreatureStatBlock(w http.ResponseWriter, r *http.Request, out *creature.RenderStatBlockOutput) {
	if wantsMarkdown(r) {
		writeMarkdown(w, out.Markdown)
		return
	}
	writeJSON(w, http.StatusOK, creatureStatBlockResponse{StatBlock: out.Block, Markdown: out.Markdown})
}

// RollCreatureHitPoints handles POST /v1alpha1/creatures/{id}/roll-hit-points
func (h *Handler) RollCreatureHitPoints(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.creatureService.RollHitPoints(r.Context(), &creature.RollHitPointsInput{OwnerID: ownerID(r), ID: id})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rollHitPointsResponse{
		Notation: out.Notation,
		Average:  out.Average,
		Roll:     out.Roll,
	})
}

// GetCreatureSpells handles GET /v1alpha1/creatures/{id}/spells
func (h *Handler) GetCreatureSpells(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.creatureService.LookupSpells(r.Context(), &creature.LookupSpellsInput{OwnerID: ownerID(r), ID: id})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spellsResponse{Spells: out.Spells, Unresolved: out.Unresolved})
}
