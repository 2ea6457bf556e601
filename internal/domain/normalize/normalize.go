// Package normalize turns loosely typed upstream rows into canonical players.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/okian/dugout/internal/domain/model"
)

// Players converts upstream rows into canonical players, preserving order.
// A row that is not a JSON object still occupies its index.
func Players(rows []any) []model.Player {
	out := make([]model.Player, len(rows))
	for i, raw := range rows {
		obj, _ := raw.(map[string]any)
		out[i] = Player(obj, i)
	}
	return out
}

// Player converts a single row found at index.
func Player(row map[string]any, index int) model.Player {
	r := newRow(row)
	name := r.str(nameKeys)
	return model.Player{
		ID:             PlayerID(name, index),
		Name:           name,
		Position:       r.str(positionKeys),
		Games:          r.count(gamesKeys),
		AtBats:         r.count(atBatsKeys),
		Runs:           r.count(runsKeys),
		Hits:           r.count(hitsKeys),
		Doubles:        r.count(doublesKeys),
		Triples:        r.count(triplesKeys),
		HomeRuns:       r.count(homeRunsKeys),
		RBI:            r.count(rbiKeys),
		Walks:          r.count(walksKeys),
		Strikeouts:     r.count(strikeoutsKeys),
		StolenBases:    r.count(stolenBasesKeys),
		CaughtStealing: r.count(caughtStealingKeys),
		Average:        r.rate(averageKeys),
		OnBase:         r.rate(onBaseKeys),
		Slugging:       r.rate(sluggingKeys),
		OPS:            r.rate(opsKeys),
	}
}

type row struct {
	exact  map[string]any
	folded map[string]any
}

func newRow(m map[string]any) row {
	r := row{exact: m, folded: make(map[string]any, len(m))}
	for k, v := range m {
		if v == nil {
			continue
		}
		fk := fold(k)
		if _, dup := r.folded[fk]; !dup {
			r.folded[fk] = v
		}
	}
	return r
}

// lookup returns the first non-null value among keys. Exact spelling is
// tried for every key before falling back to folded comparison.
func (r row) lookup(keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := r.exact[k]; ok && v != nil {
			return v, true
		}
	}
	for _, k := range keys {
		if v, ok := r.folded[fold(k)]; ok {
			return v, true
		}
	}
	return nil, false
}

func (r row) str(keys []string) string {
	v, ok := r.lookup(keys)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

func (r row) rate(keys []string) float64 {
	v, ok := r.lookup(keys)
	if !ok {
		return 0
	}
	return Number(v)
}

// count rounds to the nearest integer. Values outside the int32 range
// cannot be real stat lines and become 0.
func (r row) count(keys []string) int {
	v := math.Round(r.rate(keys))
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0
	}
	return int(v)
}

// Number coerces a decoded JSON value to a finite float. Anything that does
// not parse as a number becomes 0.
func Number(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func fold(key string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(key) {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}
