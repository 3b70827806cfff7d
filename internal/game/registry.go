package game

import (
	"fmt"
	"sort"
)

// KindRegistry maps card kind ids to their constructor functions.
var KindRegistry = map[string]func() *Kind{
	IDC:        C,
	IDJava:     Java,
	IDUnreal:   Unreal,
	IDVim:      Vim,
	IDEmacs:    Emacs,
	IDNeovim:   Neovim,
	IDTempleOS: TempleOS,
	IDArch:     Arch,
	IDLlama:    Llama,
	IDDeepSeek: DeepSeek,
	IDBomb:     Bomb,
}

// FindKind looks up a kind by id.
func FindKind(id string) (*Kind, bool) {
	ctor, ok := KindRegistry[id]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// LookupKind looks up a kind by id and returns a new instance.
// Panics if the kind is not found.
func LookupKind(id string) *Kind {
	kind, ok := FindKind(id)
	if !ok {
		panic(fmt.Sprintf("card kind not found in registry: %q", id))
	}
	return kind
}

// Kinds returns every registered kind, sorted by price then id.
func Kinds() []*Kind {
	kinds := make([]*Kind, 0, len(KindRegistry))
	for _, ctor := range KindRegistry {
		kinds = append(kinds, ctor())
	}
	sort.Slice(kinds, func(i, j int) bool {
		if kinds[i].Price != kinds[j].Price {
			return kinds[i].Price < kinds[j].Price
		}
		return kinds[i].ID < kinds[j].ID
	})
	return kinds
}

// PurchasableKinds returns the kinds a deck can be built from.
func PurchasableKinds() []*Kind {
	var out []*Kind
	for _, k := range Kinds() {
		if k.Purchasable {
			out = append(out, k)
		}
	}
	return out
}
