// Package model contains domain models passed between layers.
package model

// Player is the canonical, fully defaulted view of one player row.
// Counting stats are whole numbers; rate stats are fractions.
type Player struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Position       string  `json:"position"`
	Games          int     `json:"games"`
	AtBats         int     `json:"atBats"`
	Runs           int     `json:"runs"`
	Hits           int     `json:"hits"`
	Doubles        int     `json:"doubles"`
	Triples        int     `json:"triples"`
	HomeRuns       int     `json:"homeRuns"`
	RBI            int     `json:"rbi"`
	Walks          int     `json:"walks"`
	Strikeouts     int     `json:"strikeouts"`
	StolenBases    int     `json:"stolenBases"`
	CaughtStealing int     `json:"caughtStealing"`
	Average        float64 `json:"avg"`
	OnBase         float64 `json:"obp"`
	Slugging       float64 `json:"slg"`
	OPS            float64 `json:"ops"`

	// Description is nil until a scouting report has been generated.
	Description *string `json:"description"`
}

// HasDescription reports whether a non-empty description is attached.
func (p Player) HasDescription() bool {
	return p.Description != nil && *p.Description != ""
}

// Apply returns a copy of p with every field present in o replaced.
// Fields absent from o keep their current value; the ID never changes.
func (p Player) Apply(o Override) Player {
	set(&p.Name, o.Name)
	set(&p.Position, o.Position)
	set(&p.Games, o.Games)
	set(&p.AtBats, o.AtBats)
	set(&p.Runs, o.Runs)
	set(&p.Hits, o.Hits)
	set(&p.Doubles, o.Doubles)
	set(&p.Triples, o.Triples)
	set(&p.HomeRuns, o.HomeRuns)
	set(&p.RBI, o.RBI)
	set(&p.Walks, o.Walks)
	set(&p.Strikeouts, o.Strikeouts)
	set(&p.StolenBases, o.StolenBases)
	set(&p.CaughtStealing, o.CaughtStealing)
	set(&p.Average, o.Average)
	set(&p.OnBase, o.OnBase)
	set(&p.Slugging, o.Slugging)
	set(&p.OPS, o.OPS)
	if o.Description != nil {
		d := *o.Description
		p.Description = &d
	}
	return p
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
