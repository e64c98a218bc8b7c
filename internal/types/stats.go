package types

import "encoding/json"

// Stat is one of the six fixed base-stat categories.
type Stat int

const (
	HP Stat = iota
	Attack
	Defense
	SpecialAttack
	SpecialDefense
	Speed
)

// NumStats is the number of fixed categories.
const NumStats = 6

// CanonicalStats lists the categories in display order.
var CanonicalStats = [NumStats]Stat{HP, Attack, Defense, SpecialAttack, SpecialDefense, Speed}

var statKeys = [NumStats]string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}

var statLabels = [NumStats]string{"HP", "Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed"}

// Key is the name used by the upstream API.
func (s Stat) Key() string {
	if s < 0 || int(s) >= NumStats {
		return ""
	}
	return statKeys[s]
}

// Label is the human-readable name.
func (s Stat) Label() string {
	if s < 0 || int(s) >= NumStats {
		return ""
	}
	return statLabels[s]
}

// StatByKey maps an API stat name to its category.
func StatByKey(key string) (Stat, bool) {
	for i, k := range statKeys {
		if k == key {
			return Stat(i), true
		}
	}
	return 0, false
}

// StatLabel formats an API stat name, passing unknown names through.
func StatLabel(key string) string {
	if s, ok := StatByKey(key); ok {
		return s.Label()
	}
	return key
}

// StatLine holds one integer per category, indexed by Stat.
type StatLine [NumStats]int

// Get returns the value for s.
func (l StatLine) Get(s Stat) int { return l[s] }

// Map keys the line by API stat name.
func (l StatLine) Map() map[string]int {
	out := make(map[string]int, NumStats)
	for _, s := range CanonicalStats {
		out[s.Key()] = l[s]
	}
	return out
}

func (l StatLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Map())
}
