package battle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterkuimelis/wizard0x65/internal/game"
)

var (
	// ErrUnknownCard is returned when a card spec names a kind missing from the registry.
	ErrUnknownCard = errors.New("unknown card")
	// ErrBadCardSpec is returned for malformed "id:health:damage" strings.
	ErrBadCardSpec = errors.New("bad card spec")
	// ErrStepLimit is returned by Run when the watchdog trips before the battle ends.
	ErrStepLimit = errors.New("step limit reached")
)

// ParseCardSpec builds a card from "id", "id:health" or "id:health:damage".
// An empty health or damage field keeps the kind's base value.
func ParseCardSpec(spec string) (*game.Card, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	if len(parts) > 3 || parts[0] == "" {
		return nil, fmt.Errorf("%w: %q", ErrBadCardSpec, spec)
	}

	kind, ok := game.FindKind(parts[0])
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, parts[0])
	}

	health, damage := kind.BaseHealth, kind.BaseDamage
	stat := func(i int, into *int) error {
		if i >= len(parts) || parts[i] == "" {
			return nil
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrBadCardSpec, spec, err)
		}
		*into = n
		return nil
	}
	if err := stat(1, &health); err != nil {
		return nil, err
	}
	if err := stat(2, &damage); err != nil {
		return nil, err
	}

	return game.NewCardWithStats(kind, health, damage), nil
}

// ParseDeck builds a deck from card specs, front card first.
func ParseDeck(specs []string) ([]*game.Card, error) {
	cards := make([]*game.Card, 0, len(specs))
	for i, s := range specs {
		c, err := ParseCardSpec(s)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// SplitSpecs splits a comma or whitespace separated list of card specs.
func SplitSpecs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
