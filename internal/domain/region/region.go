// Package region models the four-level Indonesian administrative hierarchy
// (province, regency, district, village) and the cascading address selection
// built on top of it.
package region

import (
	"context"
	"fmt"
	"strings"
)

// Node is one administrative division.
type Node struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Level is a position in the hierarchy, ordered from the root.
type Level int

const (
	LevelProvince Level = iota
	LevelRegency
	LevelDistrict
	LevelVillage
)

// Levels lists every level root first.
var Levels = []Level{LevelProvince, LevelRegency, LevelDistrict, LevelVillage}

var levelNames = [...]string{"province", "regency", "district", "village"}

func (l Level) String() string {
	if !l.IsValid() {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// IsValid reports whether l is one of the four known levels.
func (l Level) IsValid() bool {
	return l >= LevelProvince && l <= LevelVillage
}

// IsTerminal reports whether l has no child level.
func (l Level) IsTerminal() bool {
	return l == LevelVillage
}

// Next returns the child level. ok is false for the terminal level.
func (l Level) Next() (next Level, ok bool) {
	if !l.IsValid() || l.IsTerminal() {
		return l, false
	}
	return l + 1, true
}

// ParseLevel parses the lowercase level name.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown region level %q", s)
}

// Catalog resolves region collections. Implementations never fail: a lookup
// that cannot be served returns an empty slice.
type Catalog interface {
	ListProvinces(ctx context.Context) []Node
	ListRegencies(ctx context.Context, provinceID string) []Node
	ListDistricts(ctx context.Context, regencyID string) []Node
	ListVillages(ctx context.Context, districtID string) []Node
}

// List dispatches to the catalog lookup for level. parentID is ignored for
// provinces.
func List(ctx context.Context, c Catalog, level Level, parentID string) []Node {
	switch level {
	case LevelProvince:
		return c.ListProvinces(ctx)
	case LevelRegency:
		return c.ListRegencies(ctx, parentID)
	case LevelDistrict:
		return c.ListDistricts(ctx, parentID)
	case LevelVillage:
		return c.ListVillages(ctx, parentID)
	}
	return nil
}

// Find returns the node with id from nodes.
func Find(nodes []Node, id string) (Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
