package game

import "fmt"

// Vocabulary used in card descriptions.
const (
	HealthTerm = "runtime"
	DamageTerm = "clockspeed"
	HealthUnit = "s"
	DamageUnit = "GHz"
)

// Card kind ids.
const (
	IDC        = "pl_c"
	IDJava     = "pl_java"
	IDUnreal   = "ge_unreal"
	IDVim      = "ide_vim"
	IDEmacs    = "ide_emacs"
	IDNeovim   = "ide_neovim"
	IDTempleOS = "os_temple"
	IDArch     = "os_arch"
	IDLlama    = "llm_llama"
	IDDeepSeek = "llm_deepseek"
	IDBomb     = "etc_bomb"
)

// counterDepth is the remaining replication depth of a self-replicator.
const counterDepth = "depth"

// ReplicationDepth is how many generations a fresh C card replicates.
const ReplicationDepth = 1

// C spawns a 1/1 copy of itself at its old position when it dies.
// The copy carries one less replication depth.
func C() *Kind {
	return &Kind{
		Metadata: Metadata{
			ID:   IDC,
			Name: "C",
			Description: fmt.Sprintf("When this card dies, it spawns a copy of itself at 1 %s and 1 %s.",
				HealthUnit, DamageUnit),
			BaseHealth: 1,
			BaseDamage: 1,
			Price:      1,
		},
		Purchasable: true,
		Init: func(card *Card) {
			card.Counters[counterDepth] = ReplicationDepth
		},
		OnEventLate: func(g *Game, card *Card, event *Event) {
			if event.Type != EventCardDied || !event.Targets(card) {
				return
			}
			depth := card.Counters[counterDepth]
			if depth <= 0 {
				return
			}
			child := NewCardWithStats(card.Kind, 1, 1)
			child.Counters[counterDepth] = depth - 1
			g.Spawn(child, card.Team, g.IndexOf(card))
		},
	}
}

// Unreal halves incoming damage to itself, rounding the damage up.
func Unreal() *Kind {
	return &Kind{
		Metadata: Metadata{
			ID:          IDUnreal,
			Name:        "Unreal",
			Description: fmt.Sprintf("Halves all incoming %s damage to itself.", HealthTerm),
			BaseHealth:  5,
			BaseDamage:  1,
			Price:       7,
		},
		Purchasable: true,
		OnEvent: func(g *Game, card *Card, event *Event) {
			if event.Type != EventHealthChanged || !event.Targets(card) || event.Delta >= 0 {
				return
			}
			event.Delta = -halveRoundUp(-event.Delta)
		},
	}
}

// halveRoundUp returns ceil(n/2) for n >= 0.
func halveRoundUp(n int) int {
	return (n + 1) / 2
}

// healer builds a kind that adds 1 health to every friendly card on round start.
func healer(id, name string, price int) *Kind {
	return &Kind{
		Metadata: Metadata{
			ID:          id,
			Name:        name,
			Description: fmt.Sprintf("Adds 1 %s to all friendly cards on round start.", HealthTerm),
			BaseHealth:  5,
			BaseDamage:  1,
			Price:       price,
		},
		Purchasable: true,
		OnEvent: func(g *Game, card *Card, event *Event) {
			if event.Type != EventRoundStart {
				return
			}
			for _, friend := range g.Deck(card.Team) {
				g.Enqueue(ChangeHealthAction(friend, 1))
			}
		},
	}
}

func Vim() *Kind    { return healer(IDVim, "Vim", 3) }
func Emacs() *Kind  { return healer(IDEmacs, "Emacs", 3) }
func Neovim() *Kind { return healer(IDNeovim, "Neovim", 4) }

// TempleOS kills itself on round start.
func TempleOS() *Kind {
	return &Kind{
		Metadata: Metadata{
			ID:          IDTempleOS,
			Name:        "TempleOS",
			Description: "Kills self on start.",
			BaseHealth:  1,
			BaseDamage:  0,
			Price:       0,
		},
		Purchasable: true,
		OnEvent: func(g *Game, card *Card, event *Event) {
			if event.Type != EventRoundStart {
				return
			}
			g.Enqueue(KillCardAction(card))
		},
	}
}

// Arch swaps health and damage of every card on the field on round start.
func Arch() *Kind {
	return &Kind{
		Metadata: Metadata{
			ID:          IDArch,
			Name:        "Arch",
			Description: fmt.Sprintf("Swaps %s with %s on round start.", HealthTerm, DamageTerm),
			BaseHealth:  2,
			BaseDamage:  2,
			Price:       2,
		},
		Purchasable: true,
		OnEvent: func(g *Game, card *Card, event *Event) {
			if event.Type != EventRoundStart {
				return
			}
			for _, c := range g.Cards() {
				g.Enqueue(SwapHealthAction(c))
			}
		},
	}
}

// Llama rounds friendly health and damage up to the next power of two at round end.
func Llama() *Kind {
	return &Kind{
		Metadata: Metadata{
			ID:   IDLlama,
			Name: "Llama",
			Description: fmt.Sprintf("Rounds up all friendly %s and %s to the nearest power of 2.",
				HealthTerm, DamageTerm),
			BaseHealth: 3,
			BaseDamage: 3,
			Price:      8,
		},
		Purchasable: true,
		OnEvent: func(g *Game, card *Card, event *Event) {
			if event.Type != EventRoundEnd {
				return
			}
			for _, friend := range g.Deck(card.Team) {
				if friend.State == CardDead {
					continue
				}
				g.Enqueue(ChangeHealthAction(friend, NextPowerOfTwo(friend.Health)-friend.Health))
				g.Enqueue(ChangeDamageAction(friend, NextPowerOfTwo(friend.Damage)-friend.Damage))
			}
		},
	}
}

// NextPowerOfTwo returns 2^ceil(log2(x)) for x >= 1. Values below 1 are returned unchanged.
func NextPowerOfTwo(x int) int {
	if x < 1 {
		return x
	}
	p := 1
	for p < x {
		p <<= 1
	}
	return p
}

// DeepSeek merges into the card in front of it at round end: that card gains
// its health and damage, and DeepSeek kills itself.
func DeepSeek() *Kind {
	return &Kind{
		Metadata: Metadata{
			ID:          IDDeepSeek,
			Name:        "Deep Seek",
			Description: "Merges with the card in front of it on round end.",
			BaseHealth:  1,
			BaseDamage:  1,
			Price:       6,
		},
		Purchasable: true,
		OnEvent: func(g *Game, card *Card, event *Event) {
			if event.Type != EventRoundEnd {
				return
			}
			idx := g.IndexOf(card)
			if idx <= 0 {
				return
			}
			front := g.Deck(card.Team)[idx-1]
			if front.State == CardDead {
				return
			}
			g.Enqueue(ChangeHealthAction(front, card.Health))
			g.Enqueue(ChangeDamageAction(front, card.Damage))
			g.Enqueue(KillCardAction(card))
		},
	}
}

// Bomb deals 1 damage to its neighbours in its own deck when it dies.
func Bomb() *Kind {
	return &Kind{
		Metadata: Metadata{
			ID:          IDBomb,
			Name:        "Bomb",
			Description: "Deals 1 damage to adjacent cards on death.",
			BaseHealth:  1,
			BaseDamage:  1,
			Price:       0,
		},
		OnEvent: func(g *Game, card *Card, event *Event) {
			if event.Type != EventCardDied || !event.Targets(card) {
				return
			}
			idx := g.IndexOf(card)
			deck := g.Deck(card.Team)
			if idx-1 >= 0 {
				g.Enqueue(ChangeHealthAction(deck[idx-1], -1))
			}
			if idx >= 0 && idx+1 < len(deck) {
				g.Enqueue(ChangeHealthAction(deck[idx+1], -1))
			}
		},
	}
}

// Java fills both decks up to FillDeckSize with bombs on round start.
func Java() *Kind {
	return &Kind{
		Metadata: Metadata{
			ID:          IDJava,
			Name:        "Java",
			Description: "Fills both decks with bombs on round start.",
			BaseHealth:  2,
			BaseDamage:  2,
			Price:       4,
		},
		Purchasable: true,
		OnEvent: func(g *Game, card *Card, event *Event) {
			if event.Type != EventRoundStart {
				return
			}
			for _, team := range []Team{card.Team, card.Team.Opposite()} {
				count := FillDeckSize - len(g.Deck(team))
				for n := 0; n < count; n++ {
					g.Enqueue(SpawnCardAction(NewCard(Bomb()), team, (n*2)%FillDeckSize))
				}
			}
		},
	}
}
