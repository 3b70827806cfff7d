package web

import (
	"fmt"
	"net/http"

	"github.com/peterkuimelis/wizard0x65/internal/game"
)

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Cards  []string `json:"cards"`
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	df, err := game.LoadDeckFile(s.opts.DecksFile)
	if err != nil {
		s.log.WithError(err).Warn("could not load decks file")
		http.Error(w, "could not load decks file", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, deckInfos(df))
}

// deckInfos lists each deck's cards as "id" or "id xN" entries.
func deckInfos(df game.DeckFile) []DeckInfo {
	decks := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		di := DeckInfo{Number: i + 1, Name: d.Name, Cards: []string{}}
		for _, c := range d.Cards {
			if c.Count > 1 {
				di.Cards = append(di.Cards, fmt.Sprintf("%s x%d", c.ID, c.Count))
			} else {
				di.Cards = append(di.Cards, c.ID)
			}
		}
		decks = append(decks, di)
	}
	return decks
}
