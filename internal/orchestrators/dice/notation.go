package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
)

const (
	maxDiceCount = 100
	maxDieSize   = 100
)

// XdY with an optional +Z or -Z, spaces allowed around the sign
var diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)(?:\s*([+-])\s*(\d+))?$`)

// Notation is a parsed dice expression
type Notation struct {
	Count    int
	Size     int
	Modifier int
}

// String renders the notation compactly, e.g. "8d8+16"
func (n Notation) String() string {
	switch {
	case n.Modifier > 0:
		return fmt.Sprintf("%dd%d+%d", n.Count, n.Size, n.Modifier)
	case n.Modifier < 0:
		return fmt.Sprintf("%dd%d-%d", n.Count, n.Size, -n.Modifier)
	default:
		return fmt.Sprintf("%dd%d", n.Count, n.Size)
	}
}

// ParseNotation parses "XdY", "XdY+Z" or "XdY - Z"
func ParseNotation(notation string) (Notation, error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(notation)))
	if matches == nil {
		return Notation{}, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY+Z)", notation)
	}

	count, err := strconv.Atoi(matches[1])
	if err != nil {
		return Notation{}, errors.InvalidArgumentf("invalid dice count in notation: %s", notation)
	}
	size, err := strconv.Atoi(matches[2])
	if err != nil {
		return Notation{}, errors.InvalidArgumentf("invalid die size in notation: %s", notation)
	}
	if count <= 0 || size <= 0 {
		return Notation{}, errors.InvalidArgumentf("dice count and size must be positive: %s", notation)
	}
	if count > maxDiceCount || size > maxDieSize {
		return Notation{}, errors.InvalidArgumentf("at most %dd%d can be rolled: %s", maxDiceCount, maxDieSize, notation)
	}

	n := Notation{Count: count, Size: size}
	if matches[4] != "" {
		mod, err := strconv.Atoi(matches[4])
		if err != nil {
			return Notation{}, errors.InvalidArgumentf("invalid modifier in notation: %s", notation)
		}
		if matches[3] == "-" {
			mod = -mod
		}
		n.Modifier = mod
	}
	return n, nil
}
