package entities

import (
	"bytes"
	"encoding/json"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
)

// ParseCreature decodes an untyped JSON document into a validated Creature.
// Unknown fields are rejected.
func ParseCreature(data []byte) (*Creature, error) {
	var c Creature
	if err := DecodeStrict(data, &c); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed creature")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseItem decodes an untyped JSON document into a validated Item.
// Unknown fields are rejected.
func ParseItem(data []byte) (*Item, error) {
	var i Item
	if err := DecodeStrict(data, &i); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed item")
	}
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return &i, nil
}

// DecodeStrict decodes a single JSON value into v, rejecting unknown fields
// and trailing data.
func DecodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.InvalidArgument("unexpected data after JSON value")
	}
	return nil
}
