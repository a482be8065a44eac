package item

import (
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/generation"
)

// partial is the item sections gathered so far
type partial struct {
	base         *entities.ItemBase
	descriptions []entities.ItemDescription
}

func labelKey(d entities.ItemDescription) string {
	return strings.ToLower(strings.TrimSpace(d.Label))
}

// merge replaces the base and appends descriptions, keeping the last one per
// label
func merge(a, b partial) partial {
	out := a
	if b.base != nil {
		out.base = b.base
	}
	if b.descriptions != nil {
		out.descriptions = generation.DedupeLastByKey(slices.Concat(a.descriptions, b.descriptions), labelKey)
	}
	return out
}

func seedFrom(i *entities.Item) partial {
	base := i.ItemBase
	return partial{base: &base, descriptions: i.Descriptions}
}

func finalize(p partial) (*entities.Item, error) {
	if p.base == nil {
		return nil, errors.InvalidArgument("item has no base; call " + ToolSetItemBase)
	}

	i := &entities.Item{
		ItemBase:     *p.base,
		Descriptions: p.descriptions,
	}
	if i.Descriptions == nil {
		i.Descriptions = []entities.ItemDescription{}
	}
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return i, nil
}
