package v1alpha1

import (
	"net/http"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/orchestrators/dice"
	dicesession "github.com/KirkDiggler/rpg-forge/internal/repositories/dice_session"
)

type rollDiceRequest struct {
	EntityID    string `json:"entityId"`
	Context     string `json:"context"`
	Notation    string `json:"notation"`
	Description string `json:"description,omitempty"`
}

type rollSessionResponse struct {
	Rolls     []dicesession.DiceRoll `json:"rolls"`
	CreatedAt int64                  `json:"createdAt"`
	ExpiresAt int64                  `json:"expiresAt"`
}

type clearRollSessionResponse struct {
	RollsCleared int `json:"rollsCleared"`
}

// sessionEntity scopes a caller-chosen entity id to the current user so
// sessions of different users never collide
func sessionEntity(r *http.Request, entityID string) string {
	return "user:" + ownerID(r) + ":" + entityID
}

func sessionParams(r *http.Request) (string, string, error) {
	entityID := r.URL.Query().Get("entityId")
	rollContext := r.URL.Query().Get("context")

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("entityId", entityID, vb)
	errors.ValidateRequired("context", rollContext, vb)
	if err := vb.Build(); err != nil {
		return "", "", err
	}
	return entityID, rollContext, nil
}

func newRollSessionResponse(s *dicesession.DiceSession) rollSessionResponse {
	rolls := s.Rolls
	if rolls == nil {
		rolls = []dicesession.DiceRoll{}
	}
	return rollSessionResponse{
		Rolls:     rolls,
		CreatedAt: s.CreatedAt.Unix(),
		ExpiresAt: s.ExpiresAt.Unix(),
	}
}

// RollDice handles POST /v1alpha1/dice/roll and returns the whole session
func (h *Handler) RollDice(w http.ResponseWriter, r *http.Request) {
	var req rollDiceRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("entityId", req.EntityID, vb)
	errors.ValidateRequired("context", req.Context, vb)
	errors.ValidateRequired("notation", req.Notation, vb)
	if err := vb.Build(); err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.diceService.RollDice(r.Context(), &dice.RollDiceInput{
		EntityID:    sessionEntity(r, req.EntityID),
		Context:     req.Context,
		Notation:    req.Notation,
		Description: req.Description,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newRollSessionResponse(out.Session))
}

// GetRollSession handles GET /v1alpha1/dice/session?entityId=&context=
func (h *Handler) GetRollSession(w http.ResponseWriter, r *http.Request) {
	entityID, rollContext, err := sessionParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.diceService.GetRollSession(r.Context(), &dice.GetRollSessionInput{
		EntityID: sessionEntity(r, entityID),
		Context:  rollContext,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newRollSessionResponse(out.Session))
}

// ClearRollSession handles DELETE /v1alpha1/dice/session?entityId=&context=
func (h *Handler) ClearRollSession(w http.ResponseWriter, r *http.Request) {
	entityID, rollContext, err := sessionParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.diceService.ClearRollSession(r.Context(), &dice.ClearRollSessionInput{
		EntityID: sessionEntity(r, entityID),
		Context:  rollContext,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clearRollSessionResponse{RollsCleared: out.RollsDeleted})
}
