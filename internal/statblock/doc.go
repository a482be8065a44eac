// Package statblock derives display values from validated creature and item
// records and renders them as stat blocks. Every function is a pure function
// of its input.
package statblock
