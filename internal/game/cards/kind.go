// Package cards holds card identities, the static card catalog and the
// recommended kingdom presets.
package cards

import (
	"fmt"
	"strings"
)

// Kind is the immutable identity of a card. Cards are fungible within a kind.
type Kind uint8

const (
	KindUnknown Kind = iota

	// Base supply
	Copper
	Silver
	Gold
	Estate
	Duchy
	Province
	Curse

	// Kingdom cards, 2nd edition base set
	Cellar
	Chapel
	Moat
	Harbinger
	Merchant
	Vassal
	Village
	Workshop
	Bureaucrat
	Gardens
	Militia
	Moneylender
	Poacher
	Remodel
	Smithy
	ThroneRoom
	Bandit
	CouncilRoom
	Festival
	Laboratory
	Library
	Market
	Mine
	Sentry
	Witch
	Artisan

	kindCount
)

var kindNames = map[Kind]string{
	Copper:      "Copper",
	Silver:      "Silver",
	Gold:        "Gold",
	Estate:      "Estate",
	Duchy:       "Duchy",
	Province:    "Province",
	Curse:       "Curse",
	Cellar:      "Cellar",
	Chapel:      "Chapel",
	Moat:        "Moat",
	Harbinger:   "Harbinger",
	Merchant:    "Merchant",
	Vassal:      "Vassal",
	Village:     "Village",
	Workshop:    "Workshop",
	Bureaucrat:  "Bureaucrat",
	Gardens:     "Gardens",
	Militia:     "Militia",
	Moneylender: "Moneylender",
	Poacher:     "Poacher",
	Remodel:     "Remodel",
	Smithy:      "Smithy",
	ThroneRoom:  "Throne Room",
	Bandit:      "Bandit",
	CouncilRoom: "Council Room",
	Festival:    "Festival",
	Laboratory:  "Laboratory",
	Library:     "Library",
	Market:      "Market",
	Mine:        "Mine",
	Sentry:      "Sentry",
	Witch:       "Witch",
	Artisan:     "Artisan",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[normalizeName(name)] = k
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND_%d", int(k))
}

// Valid reports whether k names a known card.
func (k Kind) Valid() bool {
	return k > KindUnknown && k < kindCount
}

// AllKinds returns every known kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, int(kindCount)-1)
	for k := KindUnknown + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind resolves a card name. Matching ignores case, spaces and
// punctuation, so "Throne Room", "throneroom" and "THRONE_ROOM" all resolve.
func ParseKind(name string) (Kind, error) {
	if k, ok := kindsByName[normalizeName(name)]; ok {
		return k, nil
	}
	return KindUnknown, fmt.Errorf("unknown card %q", name)
}

// ParseKinds resolves a list of card names.
func ParseKinds(names []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
