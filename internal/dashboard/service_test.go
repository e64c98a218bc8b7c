package dashboard

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pokedex-insights-go/internal/dataset"
	"pokedex-insights-go/internal/filter"
	"pokedex-insights-go/internal/pokeapi"
	"pokedex-insights-go/internal/types"
)

type staticSource struct {
	records []types.Pokemon
	err     error
	calls   int
}

func (s *staticSource) Records(context.Context) ([]types.Pokemon, error) {
	s.calls++
	return s.records, s.err
}

type fakeFetcher map[string]types.Pokemon

func (f fakeFetcher) Fetch(_ context.Context, key string) (types.Pokemon, error) {
	if p, ok := f[key]; ok {
		return p, nil
	}
	return types.Pokemon{}, fmt.Errorf("fetch %s: %w", key, pokeapi.ErrNotFound)
}

func collection() []types.Pokemon {
	return []types.Pokemon{
		{ID: 4, Name: "charmander", Types: []string{"fire"}, Height: 6, Weight: 85, BaseExperience: types.IntPtr(62),
			Stats: []types.StatEntry{{Name: "hp", BaseValue: 39}, {Name: "speed", BaseValue: 65}}},
		{ID: 7, Name: "squirtle", Types: []string{"water"}, Height: 5, Weight: 90, BaseExperience: types.IntPtr(63),
			Stats: []types.StatEntry{{Name: "hp", BaseValue: 44}, {Name: "speed", BaseValue: 43}}},
		{ID: 9, Name: "blastoise", Types: []string{"water"}, Height: 16, Weight: 855, BaseExperience: types.IntPtr(239),
			Stats: []types.StatEntry{{Name: "hp", BaseValue: 79}, {Name: "speed", BaseValue: 78}}},
	}
}

func loaded(t *testing.T, fetcher Fetcher) *Service {
	t.Helper()
	svc := New(&staticSource{records: collection()}, fetcher, nil)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestService_NotLoaded(t *testing.T) {
	svc := New(&staticSource{}, nil, nil)

	_, err := svc.View(filter.Criteria{})
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = svc.List(filter.Criteria{})
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = svc.Detail(context.Background(), "4")
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestService_LoadFailureKeepsPrevious(t *testing.T) {
	src := &staticSource{records: collection()}
	svc := New(src, nil, nil)
	require.NoError(t, svc.Load(context.Background()))

	src.err = errors.New("network down")
	src.records = nil
	err := svc.Load(context.Background())
	require.ErrorContains(t, err, "network down")

	records, err := svc.Records()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestService_View(t *testing.T) {
	svc := loaded(t, nil)

	v, err := svc.View(filter.Criteria{Type: "water"})
	require.NoError(t, err)

	assert.Equal(t, []filter.Option{
		{Value: "all", Label: "All"},
		{Value: "fire", Label: "Fire"},
		{Value: "water", Label: "Water"},
	}, v.TypeOptions)
	assert.Equal(t, "water", v.Criteria.Type)
	require.Len(t, v.Results, 2)
	assert.Equal(t, "squirtle", v.Results[0].Name)
	assert.Equal(t, "85.5kg", v.Results[1].Weight)

	// statistics ignore the filter
	assert.Equal(t, "3", v.Summary[0].Value)
	assert.Equal(t, "121", v.Summary[1].Value) // 364/3
	assert.Equal(t, []string{"water", "fire"}, v.Charts.Types.Labels)
	assert.Len(t, v.Facts, 3)
	require.Len(t, v.Insights, 6)
	assert.Equal(t, "water is the most common type among these Pokémon.", v.Insights[0])
	assert.Contains(t, v.Insights[2], "blastoise at 85.5kg")
}

func TestService_ViewDefaultsTypeToAll(t *testing.T) {
	v, err := loaded(t, nil).View(filter.Criteria{Search: "CHAR"})
	require.NoError(t, err)
	assert.Equal(t, filter.TypeAll, v.Criteria.Type)
	require.Len(t, v.Results, 1)
	assert.Equal(t, "charmander", v.Results[0].Name)
}

func TestService_ViewEmptyCollection(t *testing.T) {
	svc := New(&staticSource{}, nil, nil)
	require.NoError(t, svc.Load(context.Background()))

	v, err := svc.View(filter.Criteria{})
	require.NoError(t, err)
	assert.Empty(t, v.Facts)
	assert.Empty(t, v.Insights)
	assert.Empty(t, v.Results)
	assert.Equal(t, "0", v.Summary[0].Value)
	assert.Len(t, v.Charts.Stats.Values, types.NumStats)
}

func TestService_Detail(t *testing.T) {
	svc := loaded(t, fakeFetcher{"pikachu": {ID: 25, Name: "pikachu"}})
	ctx := context.Background()

	d, err := svc.Detail(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "Squirtle", d.DisplayName)

	d, err = svc.Detail(ctx, "Blastoise")
	require.NoError(t, err)
	assert.Equal(t, 9, d.ID)

	d, err = svc.Detail(ctx, "pikachu")
	require.NoError(t, err)
	assert.Equal(t, 25, d.ID)

	_, err = svc.Detail(ctx, "mew")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_DetailWithoutFetcher(t *testing.T) {
	_, err := loaded(t, nil).Detail(context.Background(), "25")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Charts(t *testing.T) {
	svc := loaded(t, nil)
	v, err := svc.Charts("bar", "radar")
	require.NoError(t, err)
	assert.Equal(t, []int{54, 0, 0, 0, 0, 62}, v.Stats.Values)

	_, err = svc.Charts("line", "")
	assert.Error(t, err)
}

func TestService_DetailRefreshesSnapshotRecord(t *testing.T) {
	full := types.Pokemon{
		ID: 1, Name: "bulbasaur", Types: []string{"grass", "poison"}, Height: 7, Weight: 69,
		Abilities: []types.AbilityInfo{{Name: "overgrow"}},
		Moves:     []string{"cut", "tackle"},
		Sprites:   types.Sprites{OfficialArtwork: "art.png"},
	}
	path := filepath.Join(t.TempDir(), "snapshot.xlsx")
	require.NoError(t, dataset.ExportFile(path, []types.Pokemon{full}))

	svc := New(dataset.Snapshot{Path: path}, fakeFetcher{"bulbasaur": full}, nil)
	require.NoError(t, svc.Load(context.Background()))

	d, err := svc.Detail(context.Background(), "bulbasaur")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cut", "Tackle"}, d.Moves)
	assert.Len(t, d.Abilities, 1)
	assert.Equal(t, "art.png", d.Image)
}

func TestService_DetailServesSnapshotRecordWhenRefreshFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.xlsx")
	require.NoError(t, dataset.ExportFile(path, []types.Pokemon{{ID: 1, Name: "bulbasaur", Height: 7, Weight: 69}}))

	svc := New(dataset.Snapshot{Path: path}, fakeFetcher{}, nil)
	require.NoError(t, svc.Load(context.Background()))

	d, err := svc.Detail(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Bulbasaur", d.DisplayName)
	assert.Equal(t, "0.7m", d.Height)
	assert.Empty(t, d.Moves)
}
