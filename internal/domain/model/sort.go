package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// sortKeys maps JSON field names to comparators.
var sortKeys = map[string]func(a, b Player) int{
	"id":             func(a, b Player) int { return strings.Compare(a.ID, b.ID) },
	"name":           func(a, b Player) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
	"position":       func(a, b Player) int { return strings.Compare(a.Position, b.Position) },
	"games":          func(a, b Player) int { return cmp.Compare(a.Games, b.Games) },
	"atBats":         func(a, b Player) int { return cmp.Compare(a.AtBats, b.AtBats) },
	"runs":           func(a, b Player) int { return cmp.Compare(a.Runs, b.Runs) },
	"hits":           func(a, b Player) int { return cmp.Compare(a.Hits, b.Hits) },
	"doubles":        func(a, b Player) int { return cmp.Compare(a.Doubles, b.Doubles) },
	"triples":        func(a, b Player) int { return cmp.Compare(a.Triples, b.Triples) },
	"homeRuns":       func(a, b Player) int { return cmp.Compare(a.HomeRuns, b.HomeRuns) },
	"rbi":            func(a, b Player) int { return cmp.Compare(a.RBI, b.RBI) },
	"walks":          func(a, b Player) int { return cmp.Compare(a.Walks, b.Walks) },
	"strikeouts":     func(a, b Player) int { return cmp.Compare(a.Strikeouts, b.Strikeouts) },
	"stolenBases":    func(a, b Player) int { return cmp.Compare(a.StolenBases, b.StolenBases) },
	"caughtStealing": func(a, b Player) int { return cmp.Compare(a.CaughtStealing, b.CaughtStealing) },
	"avg":            func(a, b Player) int { return cmp.Compare(a.Average, b.Average) },
	"obp":            func(a, b Player) int { return cmp.Compare(a.OnBase, b.OnBase) },
	"slg":            func(a, b Player) int { return cmp.Compare(a.Slugging, b.Slugging) },
	"ops":            func(a, b Player) int { return cmp.Compare(a.OPS, b.OPS) },
}

// SortPlayers returns a sorted copy of players. Equal keys keep their
// incoming order. An unknown field yields ErrValidation.
func SortPlayers(players []Player, field string, desc bool) ([]Player, error) {
	compare, ok := sortKeys[field]
	if !ok {
		return nil, fmt.Errorf("sort by %q: %w", field, ErrValidation)
	}
	out := slices.Clone(players)
	slices.SortStableFunc(out, func(a, b Player) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out, nil
}
