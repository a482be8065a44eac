// Package v1alpha1 serves the creature, item and dice JSON API over HTTP
package v1alpha1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-forge/internal/auth"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-forge/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-forge/internal/services/creature"
	"github.com/KirkDiggler/rpg-forge/internal/services/item"
)

// HandlerConfig holds dependencies for the API handler
type HandlerConfig struct {
	CreatureService creature.Service
	ItemService     item.Service
	DiceService     dice.Service
	Verifier        *auth.Verifier
	IDGenerator     idgen.Generator
	Logger          *zap.Logger
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.CreatureService == nil {
		vb.RequiredField("CreatureService")
	}
	if c.ItemService == nil {
		vb.RequiredField("ItemService")
	}
	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	if c.Verifier == nil {
		vb.RequiredField("Verifier")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.IDGenerator == nil {
		c.IDGenerator = idgen.NewUUID("req")
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

// Handler routes API requests to the services
type Handler struct {
	creatureService creature.Service
	itemService     item.Service
	diceService     dice.Service
	verifier        *auth.Verifier
	idGenerator     idgen.Generator
	logger          *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid handler config")
	}

	return &Handler{
		creatureService: cfg.CreatureService,
		itemService:     cfg.ItemService,
		diceService:     cfg.DiceService,
		verifier:        cfg.Verifier,
		idGenerator:     cfg.IDGenerator,
		logger:          cfg.Logger,
	}, nil
}

// Routes returns the complete HTTP handler. Everything under /v1alpha1/
// requires a bearer token.
func (h *Handler) Routes() http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("POST /v1alpha1/creatures/generate", h.GenerateCreature)
	api.HandleFunc("POST /v1alpha1/creatures/update", h.UpdateCreature)
	api.HandleFunc("GET /v1alpha1/creatures", h.ListCreatures)
	api.HandleFunc("GET /v1alpha1/creatures/{id}", h.GetCreature)
	api.HandleFunc("DELETE /v1alpha1/creatures/{id}", h.DeleteCreature)
	api.HandleFunc("GET /v1alpha1/creatures/{id}/statblock", h.GetCreatureStatBlock)
	api.HandleFunc("POST /v1alpha1/creatures/{id}/roll-hit-points", h.RollCreatureHitPoints)
	api.HandleFunc("GET /v1alpha1/creatures/{id}/spells", h.GetCreatureSpells)
	api.HandleFunc("POST /v1alpha1/statblocks/creature", h.RenderCreatureStatBlock)

	api.HandleFunc("POST /v1alpha1/items/generate", h.GenerateItem)
	api.HandleFunc("POST /v1alpha1/items/update", h.UpdateItem)
	api.HandleFunc("GET /v1alpha1/items", h.ListItems)
	api.HandleFunc("GET /v1alpha1/items/{id}", h.GetItem)
	api.HandleFunc("DELETE /v1alpha1/items/{id}", h.DeleteItem)
	api.HandleFunc("GET /v1alpha1/items/{id}/statblock", h.GetItemStatBlock)
	api.HandleFunc("POST /v1alpha1/statblocks/item", h.RenderItemStatBlock)

	api.HandleFunc("POST /v1alpha1/dice/roll", h.RollDice)
	api.HandleFunc("GET /v1alpha1/dice/session", h.GetRollSession)
	api.HandleFunc("DELETE /v1alpha1/dice/session", h.ClearRollSession)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("/v1alpha1/", h.authenticate(api))

	return h.logRequests(h.recoverPanics(mux))
}

// Health reports that the process is serving
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
