package game

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RenderDeck draws a deck as a fixed-width ASCII table: one column per card,
// a header of 0-based indices, then a name row and a "health / damage" row.
//
//	    0
//	---------
//	|   a   |
//	| 4 / 2 |
//	---------
func RenderDeck(deck []*Card) string {
	names := make([]string, len(deck))
	stats := make([]string, len(deck))
	widths := make([]int, len(deck))
	total := 0
	for i, c := range deck {
		names[i] = c.Name()
		stats[i] = fmt.Sprintf("%d / %d", c.Health, c.Damage)
		widths[i] = max(len(names[i]), len(stats[i])) + 2
		total += widths[i]
	}
	border := strings.Repeat("-", total+len(deck)+1)

	var sb strings.Builder

	for i := range deck {
		sb.WriteByte(' ')
		sb.WriteString(center(strconv.Itoa(i), widths[i]))
	}
	sb.WriteString(" \n")

	sb.WriteString(border)
	sb.WriteByte('\n')

	row := func(cells []string) {
		for i, cell := range cells {
			sb.WriteByte('|')
			sb.WriteString(center(cell, widths[i]))
		}
		sb.WriteString("|\n")
	}
	row(names)
	row(stats)

	sb.WriteString(border)
	sb.WriteByte('\n')

	return sb.String()
}

// center pads s with spaces to width; an odd leftover space goes to the right.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// Print writes both decks and the battle status to w.
func (g *Game) Print(w io.Writer) {
	fmt.Fprint(w, g.String())
}

func (g *Game) String() string {
	var sb strings.Builder
	sb.WriteString("Player deck:\n")
	sb.WriteString(RenderDeck(g.playerDeck))
	sb.WriteString("Enemy deck:\n")
	sb.WriteString(RenderDeck(g.enemyDeck))
	if g.state == GameOver {
		fmt.Fprintf(&sb, "Step %d | %s | winner: %s\n", g.steps, g.state, g.winner)
	} else {
		fmt.Fprintf(&sb, "Step %d | %s | next: %s\n", g.steps, g.state, g.queue.Peek())
	}
	return sb.String()
}
