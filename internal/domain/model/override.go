package model

// Override is a sparse patch over a Player. A nil field means "not set";
// only set fields replace upstream values during reconciliation.
type Override struct {
	Name           *string  `json:"name,omitempty"`
	Position       *string  `json:"position,omitempty"`
	Games          *int     `json:"games,omitempty"`
	AtBats         *int     `json:"atBats,omitempty"`
	Runs           *int     `json:"runs,omitempty"`
	Hits           *int     `json:"hits,omitempty"`
	Doubles        *int     `json:"doubles,omitempty"`
	Triples        *int     `json:"triples,omitempty"`
	HomeRuns       *int     `json:"homeRuns,omitempty"`
	RBI            *int     `json:"rbi,omitempty"`
	Walks          *int     `json:"walks,omitempty"`
	Strikeouts     *int     `json:"strikeouts,omitempty"`
	StolenBases    *int     `json:"stolenBases,omitempty"`
	CaughtStealing *int     `json:"caughtStealing,omitempty"`
	Average        *float64 `json:"avg,omitempty"`
	OnBase         *float64 `json:"obp,omitempty"`
	Slugging       *float64 `json:"slg,omitempty"`
	OPS            *float64 `json:"ops,omitempty"`
	Description    *string  `json:"description,omitempty"`
}

// Overlay returns o with every field set in patch replacing the stored one.
// Replacement is per field; nothing is merged below field level.
func (o Override) Overlay(patch Override) Override {
	pick(&o.Name, patch.Name)
	pick(&o.Position, patch.Position)
	pick(&o.Games, patch.Games)
	pick(&o.AtBats, patch.AtBats)
	pick(&o.Runs, patch.Runs)
	pick(&o.Hits, patch.Hits)
	pick(&o.Doubles, patch.Doubles)
	pick(&o.Triples, patch.Triples)
	pick(&o.HomeRuns, patch.HomeRuns)
	pick(&o.RBI, patch.RBI)
	pick(&o.Walks, patch.Walks)
	pick(&o.Strikeouts, patch.Strikeouts)
	pick(&o.StolenBases, patch.StolenBases)
	pick(&o.CaughtStealing, patch.CaughtStealing)
	pick(&o.Average, patch.Average)
	pick(&o.OnBase, patch.OnBase)
	pick(&o.Slugging, patch.Slugging)
	pick(&o.OPS, patch.OPS)
	pick(&o.Description, patch.Description)
	return o
}

// IsEmpty reports whether no field is set.
func (o Override) IsEmpty() bool {
	return o == Override{}
}

// FromPlayer snapshots every mutable field of p. The description is only
// included once one exists.
func FromPlayer(p Player) Override {
	o := Override{
		Name:           ptr(p.Name),
		Position:       ptr(p.Position),
		Games:          ptr(p.Games),
		AtBats:         ptr(p.AtBats),
		Runs:           ptr(p.Runs),
		Hits:           ptr(p.Hits),
		Doubles:        ptr(p.Doubles),
		Triples:        ptr(p.Triples),
		HomeRuns:       ptr(p.HomeRuns),
		RBI:            ptr(p.RBI),
		Walks:          ptr(p.Walks),
		Strikeouts:     ptr(p.Strikeouts),
		StolenBases:    ptr(p.StolenBases),
		CaughtStealing: ptr(p.CaughtStealing),
		Average:        ptr(p.Average),
		OnBase:         ptr(p.OnBase),
		Slugging:       ptr(p.Slugging),
		OPS:            ptr(p.OPS),
	}
	if p.Description != nil {
		o.Description = ptr(*p.Description)
	}
	return o
}

// pick copies the pointee so stored records never alias caller memory.
func pick[T any](dst **T, src *T) {
	if src != nil {
		*dst = ptr(*src)
	}
}

func ptr[T any](v T) *T { return &v }

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T { return &v }
