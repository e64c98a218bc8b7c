package pokeapi

import "pokedex-insights-go/internal/types"

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type listResponse struct {
	Count   int             `json:"count"`
	Next    string          `json:"next"`
	Results []namedResource `json:"results"`
}

type pokemonResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	BaseExperience *int   `json:"base_experience"`
	Height         int    `json:"height"`
	Weight         int    `json:"weight"`
	Types          []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Effort   int           `json:"effort"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		Ability  namedResource `json:"ability"`
		IsHidden bool          `json:"is_hidden"`
	} `json:"abilities"`
	Moves []struct {
		Move namedResource `json:"move"`
	} `json:"moves"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault *string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
}

// toRecord keeps absent lists nil so aggregation can tell them apart.
func (r pokemonResponse) toRecord() types.Pokemon {
	p := types.Pokemon{
		ID:             r.ID,
		Name:           r.Name,
		Height:         r.Height,
		Weight:         r.Weight,
		BaseExperience: r.BaseExperience,
	}
	if r.Types != nil {
		p.Types = make([]string, 0, len(r.Types))
		for _, t := range r.Types {
			p.Types = append(p.Types, t.Type.Name)
		}
	}
	if r.Stats != nil {
		p.Stats = make([]types.StatEntry, 0, len(r.Stats))
		for _, s := range r.Stats {
			p.Stats = append(p.Stats, types.StatEntry{Name: s.Stat.Name, BaseValue: s.BaseStat})
		}
	}
	for _, a := range r.Abilities {
		p.Abilities = append(p.Abilities, types.AbilityInfo{Name: a.Ability.Name, IsHidden: a.IsHidden})
	}
	for _, m := range r.Moves {
		p.Moves = append(p.Moves, m.Move.Name)
	}
	if r.Sprites.FrontDefault != nil {
		p.Sprites.FrontDefault = *r.Sprites.FrontDefault
	}
	if art := r.Sprites.Other.OfficialArtwork.FrontDefault; art != nil {
		p.Sprites.OfficialArtwork = *art
	}
	return p
}
