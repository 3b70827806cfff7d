package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single named deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card, its optional stat overrides and its count in a deck.
type CardEntry struct {
	ID         string `yaml:"id"`
	InstanceID string `yaml:"instance_id,omitempty"`
	Health     *int   `yaml:"health,omitempty"`
	Damage     *int   `yaml:"damage,omitempty"`
	Count      int    `yaml:"count,omitempty"`
}

// Build instantiates the entry's cards. Count 0 means a single card.
func (e CardEntry) Build() ([]*Card, error) {
	kind, ok := FindKind(e.ID)
	if !ok {
		return nil, fmt.Errorf("unknown card kind %q", e.ID)
	}
	count := e.Count
	if count == 0 {
		count = 1
	}
	cards := make([]*Card, 0, count)
	for i := 0; i < count; i++ {
		health, damage := kind.BaseHealth, kind.BaseDamage
		if e.Health != nil {
			health = *e.Health
		}
		if e.Damage != nil {
			damage = *e.Damage
		}
		c := NewCardWithStats(kind, health, damage)
		c.InstanceID = e.InstanceID
		cards = append(cards, c)
	}
	return cards, nil
}

// Build instantiates every card of the deck in order.
func (d DeckEntry) Build() ([]*Card, error) {
	var cards []*Card
	for _, entry := range d.Cards {
		built, err := entry.Build()
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", d.Name, err)
		}
		cards = append(cards, built...)
	}
	return cards, nil
}

// LoadDeckFile reads and parses a YAML deck file.
func LoadDeckFile(path string) (DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DeckFile{}, err
	}
	return ParseDeckFile(data)
}

// ParseDeckFile parses YAML deck file contents.
func ParseDeckFile(data []byte) (DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return DeckFile{}, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int) (string, []*Card, error) {
	df, err := LoadDeckFile(path)
	if err != nil {
		return "", nil, err
	}

	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}

	deck := df.Decks[n-1]
	cards, err := deck.Build()
	if err != nil {
		return "", nil, err
	}
	return deck.Name, cards, nil
}

// DeckByName returns the deck with the given name from the deck file.
func DeckByName(path, name string) ([]*Card, error) {
	df, err := LoadDeckFile(path)
	if err != nil {
		return nil, err
	}
	for _, d := range df.Decks {
		if d.Name == name {
			return d.Build()
		}
	}
	return nil, fmt.Errorf("deck %q not found", name)
}
