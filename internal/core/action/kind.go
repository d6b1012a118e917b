// Package action contains the pure rules for counted interactions between members.
// This is part of the Functional Core - no I/O, only pure functions.
package action

import "fmt"

// Kind is a counted interaction between two members.
type Kind string

const (
	KindBite     Kind = "bite"
	KindCuddle   Kind = "cuddle"
	KindHandhold Kind = "handhold"
	KindHug      Kind = "hug"
	KindKill     Kind = "kill"
	KindKiss     Kind = "kiss"
	KindPat      Kind = "pat"
	KindPinch    Kind = "pinch"
	KindPoke     Kind = "poke"
	KindPunch    Kind = "punch"
	KindTickle   Kind = "tickle"
)

// Details describes how a kind is presented.
type Details struct {
	// Phrase is the verb used in "<@a> {phrase} you!".
	Phrase string
	// Plural is the counted noun ("3 handholds") and the reflexive verb ("pats themselves").
	Plural string
	// Description is the slash-command description. Empty for kinds that
	// are not exposed as a plain action command.
	Description string
}

var table = map[Kind]Details{
	KindBite:     {Phrase: "bites", Plural: "bites", Description: "30% chance to flinch the target"},
	KindCuddle:   {Phrase: "cuddles", Plural: "cuddles", Description: "Big spoon or little spoon?"},
	KindHandhold: {Phrase: "holds hands with", Plural: "handholds", Description: "In case your hand gets lonely..."},
	KindHug:      {Phrase: "hugs", Plural: "hugs", Description: "Warm and fuzzy"},
	KindKill:     {Phrase: "kills", Plural: "kills"},
	KindKiss:     {Phrase: "kisses", Plural: "kisses", Description: "ALL THE PDA!!!"},
	KindPat:      {Phrase: "pats", Plural: "pats", Description: ":3"},
	KindPinch:    {Phrase: "pinches", Plural: "pinches", Description: "Grab those other cheeks ;)"},
	KindPoke:     {Phrase: "pokes", Plural: "pokes", Description: "👉"},
	KindPunch:    {Phrase: "punches", Plural: "punches", Description: "For when someone needs to be knocked out"},
	KindTickle:   {Phrase: "tickles", Plural: "tickles", Description: "You know what this is..."},
}

// order is the registration and display order.
var order = []Kind{
	KindBite, KindCuddle, KindHandhold, KindHug, KindKill, KindKiss,
	KindPat, KindPinch, KindPoke, KindPunch, KindTickle,
}

// All returns every kind in display order.
func All() []Kind {
	out := make([]Kind, len(order))
	copy(out, order)
	return out
}

// Commands returns the kinds exposed as plain action commands.
// Kill has its own command with outcome rules.
func Commands() []Kind {
	out := make([]Kind, 0, len(order))
	for _, k := range All() {
		if k != KindKill {
			out = append(out, k)
		}
	}
	return out
}

// ParseKind maps a stored or wire name back to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown action kind %q", s)
	}
	return k, nil
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := table[k]
	return ok
}

// Details returns the presentation row for k.
func (k Kind) Details() Details {
	return table[k]
}

func (k Kind) String() string { return string(k) }

// Phrase returns the verb phrase, e.g. "holds hands with".
func (k Kind) Phrase() string { return table[k].Phrase }

// Plural returns the plural noun, e.g. "handholds".
func (k Kind) Plural() string { return table[k].Plural }
