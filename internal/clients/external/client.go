// Package external is the location for the dnd5e-api client
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/KirkDiggler/rpg-forge/internal/clients/external Client

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
)

// slugPattern matches characters that should be replaced in slugs
var slugPattern = regexp.MustCompile(`[^a-z0-9-]+`)

var dashRuns = regexp.MustCompile(`-+`)

const statusCodePrefix = "status code:"

// generateSlug turns a spell name into the SRD index, "Melf's Acid Arrow" -> "melfs-acid-arrow"
func generateSlug(s string) string {
	slug := strings.ToLower(strings.TrimSpace(s))
	slug = strings.ReplaceAll(slug, "'", "")
	slug = strings.ReplaceAll(slug, "’", "")
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return dashRuns.ReplaceAllString(slug, "-")
}

// Client defines the interface for external API interactions
type Client interface {
	// GetSpellData fetches a single spell by name or SRD index
	GetSpellData(ctx context.Context, name string) (*SpellData, error)

	// LookupSpells resolves a list of spell names. Names the SRD does not
	// know are returned as unresolved rather than as an error; any other
	// SRD failure fails the lookup with an Unavailable error.
	LookupSpells(ctx context.Context, input *LookupSpellsInput) (*LookupSpellsOutput, error)
}

// spellSource is the part of dnd5e.Interface the client reads
type spellSource interface {
	GetSpell(key string) (*entities.Spell, error)
}

type client struct {
	spells      spellSource
	concurrency int
	logger      *zap.Logger
}

// Config contains configuration options for the external client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
	// Concurrency bounds parallel lookups (optional, defaults to 4)
	Concurrency int
	Logger      *zap.Logger

	// source replaces the dnd5e-api client in tests
	source spellSource
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return nil
}

// New creates a new external client with the given configuration.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	source := cfg.source
	if source == nil {
		baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
			Client:  &http.Client{Timeout: cfg.HTTPTimeout},
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create D&D 5e API client")
		}

		// Spell lookups repeat across creatures, so cache them
		source = dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)
	}

	return &client{
		spells:      source,
		concurrency: cfg.Concurrency,
		logger:      cfg.Logger,
	}, nil
}

func (c *client) GetSpellData(_ context.Context, name string) (*SpellData, error) {
	key := generateSlug(name)
	if key == "" {
		return nil, errors.InvalidArgument("spell name is required")
	}

	spell, err := c.spells.GetSpell(key)
	if err != nil {
		return nil, errors.WrapWithCode(err, sourceErrorCode(err), fmt.Sprintf("failed to get spell %s (api: %s)", name, key))
	}
	if spell == nil {
		return nil, errors.NotFoundf("spell %s not found", name)
	}

	return convertSpellToSpellData(spell), nil
}

func (c *client) LookupSpells(ctx context.Context, input *LookupSpellsInput) (*LookupSpellsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	names := uniqueNames(input.Names)
	found := make([]*SpellData, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			spell, err := c.GetSpellData(gctx, name)
			if errors.IsNotFound(err) {
				c.logger.Debug("spell not resolved", zap.String("spell", name), zap.Error(err))
				return nil
			}
			if err != nil {
				return err
			}
			found[i] = spell
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &LookupSpellsOutput{
		Spells:     make([]*SpellData, 0, len(names)),
		Unresolved: make([]string, 0),
	}
	for i, name := range names {
		if found[i] == nil {
			out.Unresolved = append(out.Unresolved, name)
			continue
		}
		out.Spells = append(out.Spells, found[i])
	}
	return out, nil
}

// sourceErrorCode classifies a dnd5e-api failure. The library reports HTTP
// failures only as "unexpected status code: N"; a 404 means the SRD has no
// such spell and everything else means the SRD could not answer.
func sourceErrorCode(err error) errors.Code {
	msg := err.Error()
	if i := strings.LastIndex(msg, statusCodePrefix); i >= 0 {
		if status, convErr := strconv.Atoi(strings.TrimSpace(msg[i+len(statusCodePrefix):])); convErr == nil && status == http.StatusNotFound {
			return errors.CodeNotFound
		}
	}
	return errors.CodeUnavailable
}

// uniqueNames drops blanks and case-insensitive repeats
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := generateSlug(n)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

// convertSpellToSpellData converts a dnd5e-api spell entity to our SpellData format
func convertSpellToSpellData(spell *entities.Spell) *SpellData {
	data := &SpellData{
		Key:           spell.Key,
		Name:          spell.Name,
		Level:         spell.SpellLevel,
		CastingTime:   spell.CastingTime,
		Range:         spell.Range,
		Duration:      spell.Duration,
		Ritual:        spell.Ritual,
		Concentration: spell.Concentration,
	}
	if spell.SpellSchool != nil {
		data.School = spell.SpellSchool.Name
	}
	if spell.SpellDamage != nil && spell.SpellDamage.SpellDamageType != nil {
		data.DamageType = strings.ToLower(spell.SpellDamage.SpellDamageType.Name)
	}
	if spell.DC != nil && spell.DC.DCType != nil {
		data.Save = spell.DC.DCType.Name
	}
	data.Description = buildSpellDescription(spell, data)
	return data
}

// buildSpellHeader is "1st-level evocation" or "Evocation cantrip"
func buildSpellHeader(level int, school string) string {
	if school == "" {
		if level == 0 {
			return "Cantrip"
		}
		return fmt.Sprintf("%s-level spell", ordinal(level))
	}
	if level == 0 {
		return fmt.Sprintf("%s cantrip", school)
	}
	return fmt.Sprintf("%s-level %s", ordinal(level), strings.ToLower(school))
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

// buildSpellDescription summarises the mechanical details the SRD exposes
func buildSpellDescription(spell *entities.Spell, data *SpellData) string {
	parts := []string{buildSpellHeader(data.Level, data.School)}

	if data.CastingTime != "" {
		parts = append(parts, fmt.Sprintf("Casting Time: %s", data.CastingTime))
	}
	if data.Range != "" {
		parts = append(parts, fmt.Sprintf("Range: %s", data.Range))
	}
	if data.Duration != "" {
		parts = append(parts, fmt.Sprintf("Duration: %s", data.Duration))
	}

	var properties []string
	if data.Ritual {
		properties = append(properties, "Ritual")
	}
	if data.Concentration {
		properties = append(properties, "Concentration")
	}
	if len(properties) > 0 {
		parts = append(parts, fmt.Sprintf("Properties: %s", strings.Join(properties, ", ")))
	}

	if data.DamageType != "" {
		parts = append(parts, fmt.Sprintf("Damage Type: %s", data.DamageType))
	}

	if spell.DC != nil {
		dcInfo := "Saving Throw"
		if data.Save != "" {
			dcInfo = fmt.Sprintf("%s Save", data.Save)
		}
		if spell.DC.DCSuccess != "" {
			dcInfo += fmt.Sprintf(" (%s)", spell.DC.DCSuccess)
		}
		parts = append(parts, dcInfo)
	}

	return strings.Join(parts, ". ")
}
