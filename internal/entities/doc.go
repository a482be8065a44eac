// Package entities holds the creature and item data model, its enum tables,
// validation rules and the stored record envelopes.
package entities
