package cards

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"sync"

	apperrors "github.com/kingdomworks/dominion-engine-go/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Type is a card type printed on the card's banner.
type Type string

const (
	TypeAction   Type = "Action"
	TypeAttack   Type = "Attack"
	TypeReaction Type = "Reaction"
	TypeTreasure Type = "Treasure"
	TypeVictory  Type = "Victory"
	TypeCurse    Type = "Curse"
)

// Resources is the fixed yield of extra draws, actions, buys and coins an
// action card grants when it resolves.
type Resources struct {
	Cards   int `yaml:"cards" json:"cards"`
	Actions int `yaml:"actions" json:"actions"`
	Buys    int `yaml:"buys" json:"buys"`
	Coins   int `yaml:"coins" json:"coins"`
}

// IsZero reports whether the template yields nothing.
func (r Resources) IsZero() bool {
	return r == Resources{}
}

// Info is the static data for one kind.
type Info struct {
	Kind          Kind      `yaml:"-" json:"-"`
	Name          string    `yaml:"name" json:"name"`
	Cost          int       `yaml:"cost" json:"cost"`
	Types         []Type    `yaml:"types" json:"types"`
	Treasure      int       `yaml:"treasure" json:"treasure"`
	VictoryPoints int       `yaml:"victory_points" json:"victory_points"`
	Resources     Resources `yaml:"resources" json:"resources"`
	Description   string    `yaml:"description" json:"description"`
}

// Is reports whether the card carries the given type.
func (i Info) Is(t Type) bool {
	return slices.Contains(i.Types, t)
}

func (i Info) clone() Info {
	i.Types = slices.Clone(i.Types)
	return i
}

type catalogFile struct {
	Cards []Info `yaml:"cards"`
}

// Catalog maps every known kind to its static data. A catalog is read-only
// once built and is safe to share between arenas.
type Catalog struct {
	infos [kindCount]Info
}

// NewCatalog builds a catalog from a list of card records. Every known kind
// must appear exactly once.
func NewCatalog(infos []Info) (*Catalog, error) {
	c := &Catalog{}
	seen := make(map[Kind]bool, len(infos))
	for _, info := range infos {
		k, err := ParseKind(info.Name)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidCatalog, "catalog entry", err)
		}
		if seen[k] {
			return nil, apperrors.Newf(apperrors.CodeInvalidCatalog, "duplicate catalog entry %s", k)
		}
		if info.Cost < 0 || info.Treasure < 0 {
			return nil, apperrors.Newf(apperrors.CodeInvalidCatalog, "negative cost or treasure for %s", k)
		}
		if len(info.Types) == 0 {
			return nil, apperrors.Newf(apperrors.CodeInvalidCatalog, "%s has no card types", k)
		}
		seen[k] = true
		info.Kind = k
		info.Name = k.String()
		info.Types = slices.Clone(info.Types)
		c.infos[k] = info
	}
	for _, k := range AllKinds() {
		if !seen[k] {
			return nil, apperrors.Newf(apperrors.CodeInvalidCatalog, "catalog is missing %s", k)
		}
	}
	return c, nil
}

// LoadYAML decodes a catalog document.
func LoadYAML(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidCatalog, "decode catalog", err)
	}
	return NewCatalog(file.Cards)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded base-set catalog. It panics if the embedded
// document is malformed, which the package tests rule out.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := LoadYAML(bytes.NewReader(defaultCatalogYAML))
		if err != nil {
			panic(fmt.Sprintf("embedded card catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Info returns the static data for k.
func (c *Catalog) Info(k Kind) (Info, bool) {
	if !k.Valid() {
		return Info{}, false
	}
	return c.infos[k].clone(), true
}

// Infos returns every entry in kind order.
func (c *Catalog) Infos() []Info {
	out := make([]Info, 0, int(kindCount)-1)
	for _, k := range AllKinds() {
		out = append(out, c.infos[k].clone())
	}
	return out
}

func (c *Catalog) info(k Kind) Info {
	if !k.Valid() {
		return Info{}
	}
	return c.infos[k]
}

// Cost returns the coin cost of k.
func (c *Catalog) Cost(k Kind) int { return c.info(k).Cost }

// TreasureValue returns the coins k produces when played as a treasure.
func (c *Catalog) TreasureValue(k Kind) int { return c.info(k).Treasure }

// VictoryPoints returns the printed victory points of k. Cards with a
// variable value (Gardens) report 0 here.
func (c *Catalog) VictoryPoints(k Kind) int { return c.info(k).VictoryPoints }

// Resources returns the resource template of k.
func (c *Catalog) Resources(k Kind) Resources { return c.info(k).Resources }

// Description returns the card text of k.
func (c *Catalog) Description(k Kind) string { return c.info(k).Description }

func (c *Catalog) IsAction(k Kind) bool   { return c.info(k).Is(TypeAction) }
func (c *Catalog) IsTreasure(k Kind) bool { return c.info(k).Is(TypeTreasure) }
func (c *Catalog) IsVictory(k Kind) bool  { return c.info(k).Is(TypeVictory) }
func (c *Catalog) IsAttack(k Kind) bool   { return c.info(k).Is(TypeAttack) }
func (c *Catalog) IsReaction(k Kind) bool { return c.info(k).Is(TypeReaction) }
