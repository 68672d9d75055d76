package cards

import (
	"fmt"
	"strings"
)

// BaseCards are the seven kinds stocked in every game, in supply order.
var BaseCards = []Kind{Copper, Silver, Gold, Estate, Duchy, Province, Curse}

// KingdomSize is the number of kingdom piles in a game.
const KingdomSize = 10

// Kingdom is a named selection of ten kingdom cards.
type Kingdom struct {
	Name  string
	Cards []Kind
}

// Recommended kingdoms from the 2nd edition rulebook.
var (
	FirstGame = Kingdom{
		Name:  "FirstGame",
		Cards: []Kind{Cellar, Market, Merchant, Militia, Mine, Moat, Remodel, Smithy, Village, Workshop},
	}
	SizeDistortion = Kingdom{
		Name:  "SizeDistortion",
		Cards: []Kind{Artisan, Bandit, Bureaucrat, Chapel, Festival, Gardens, Sentry, ThroneRoom, Witch, Workshop},
	}
	DeckTop = Kingdom{
		Name:  "DeckTop",
		Cards: []Kind{Artisan, Bureaucrat, CouncilRoom, Festival, Harbinger, Laboratory, Moneylender, Sentry, Vassal, Village},
	}
	SleightOfHand = Kingdom{
		Name:  "SleightOfHand",
		Cards: []Kind{Cellar, CouncilRoom, Festival, Gardens, Harbinger, Library, Militia, Poacher, Smithy, ThroneRoom},
	}
	Improvements = Kingdom{
		Name:  "Improvements",
		Cards: []Kind{Artisan, Cellar, Market, Merchant, Mine, Moat, Moneylender, Poacher, Remodel, Witch},
	}
	SilverAndGold = Kingdom{
		Name:  "SilverAndGold",
		Cards: []Kind{Bandit, Bureaucrat, Chapel, Harbinger, Laboratory, Merchant, Mine, Moneylender, ThroneRoom, Vassal},
	}
)

var kingdoms = []Kingdom{FirstGame, SizeDistortion, DeckTop, SleightOfHand, Improvements, SilverAndGold}

// Kingdoms returns every preset.
func Kingdoms() []Kingdom {
	out := make([]Kingdom, len(kingdoms))
	copy(out, kingdoms)
	return out
}

// ParseKingdom resolves a preset by name, ignoring case.
func ParseKingdom(name string) (Kingdom, error) {
	for _, k := range kingdoms {
		if strings.EqualFold(k.Name, strings.TrimSpace(name)) {
			return k, nil
		}
	}
	return Kingdom{}, fmt.Errorf("unknown kingdom %q", name)
}

// NewKingdom validates a custom selection: ten distinct kingdom cards.
func NewKingdom(name string, kinds []Kind) (Kingdom, error) {
	if len(kinds) != KingdomSize {
		return Kingdom{}, fmt.Errorf("kingdom %q needs %d cards, got %d", name, KingdomSize, len(kinds))
	}
	seen := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		if !k.Valid() || IsBase(k) {
			return Kingdom{}, fmt.Errorf("kingdom %q: %s is not a kingdom card", name, k)
		}
		if seen[k] {
			return Kingdom{}, fmt.Errorf("kingdom %q: duplicate %s", name, k)
		}
		seen[k] = true
	}
	cardsCopy := make([]Kind, len(kinds))
	copy(cardsCopy, kinds)
	return Kingdom{Name: name, Cards: cardsCopy}, nil
}

// IsBase reports whether k belongs to the base supply group.
func IsBase(k Kind) bool {
	return k >= Copper && k <= Curse
}
