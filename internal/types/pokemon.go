package types

// Pokemon is one creature record as handed over by the fetch layer.
// Types and Stats are nil when the source omitted them; consumers skip
// the missing sub-structure instead of rejecting the record.
type Pokemon struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Types          []string      `json:"types"`
	Stats          []StatEntry   `json:"stats"`
	Height         int           `json:"height"` // decimetres
	Weight         int           `json:"weight"` // hectograms
	BaseExperience *int          `json:"base_experience,omitempty"`
	Abilities      []AbilityInfo `json:"abilities,omitempty"`
	Moves          []string      `json:"moves,omitempty"`
	Sprites        Sprites       `json:"sprites"`
}

type StatEntry struct {
	Name      string `json:"name"`
	BaseValue int    `json:"base_stat"`
}

type AbilityInfo struct {
	Name     string `json:"name"`
	IsHidden bool   `json:"is_hidden"`
}

type Sprites struct {
	FrontDefault    string `json:"front_default,omitempty"`
	OfficialArtwork string `json:"official_artwork,omitempty"`
}

// HasType reports whether t is one of the record's type tags (exact match).
func (p Pokemon) HasType(t string) bool {
	for _, name := range p.Types {
		if name == t {
			return true
		}
	}
	return false
}

// StatValue returns the base value reported for s and whether it was present.
func (p Pokemon) StatValue(s Stat) (int, bool) {
	for _, e := range p.Stats {
		if e.Name == s.Key() {
			return e.BaseValue, true
		}
	}
	return 0, false
}

// HeightMeters and WeightKg convert the raw integer units.
func (p Pokemon) HeightMeters() float64 { return float64(p.Height) / 10 }
func (p Pokemon) WeightKg() float64     { return float64(p.Weight) / 10 }

// IntPtr is a small helper for optional integer fields.
func IntPtr(v int) *int { return &v }
