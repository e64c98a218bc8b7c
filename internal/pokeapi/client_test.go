package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeAPI struct {
	names    []string
	failName string
	hits     atomic.Int32
}

func (f *fakeAPI) handler(base func() string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		path := strings.Trim(r.URL.Path, "/")
		if path == "pokemon" {
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			var results []map[string]string
			for i, n := range f.names {
				if i >= limit {
					break
				}
				results = append(results, map[string]string{"name": n, "url": fmt.Sprintf("%s/pokemon/%d/", base(), i+1)})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"count": len(f.names), "results": results})
			return
		}
		key := strings.TrimPrefix(path, "pokemon/")
		idx, err := strconv.Atoi(key)
		if err != nil {
			idx = -1
			for i, n := range f.names {
				if n == key {
					idx = i + 1
				}
			}
		}
		if idx < 1 || idx > len(f.names) {
			http.NotFound(w, r)
			return
		}
		name := f.names[idx-1]
		if name == f.failName {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
			return
		}
		// later entries answer first to exercise ordering
		time.Sleep(time.Duration(len(f.names)-idx) * time.Millisecond)
		fmt.Fprintf(w, `{
			"id": %d, "name": %q, "base_experience": %d, "height": %d, "weight": %d,
			"types": [{"slot": 1, "type": {"name": "grass"}}],
			"stats": [{"base_stat": 45, "stat": {"name": "hp"}}, {"base_stat": 49, "stat": {"name": "attack"}}],
			"abilities": [{"ability": {"name": "over-grow"}, "is_hidden": true}],
			"moves": [{"move": {"name": "cut"}}],
			"sprites": {"front_default": "f.png", "other": {"official-artwork": {"front_default": null}}}
		}`, idx, name, 60+idx, idx, idx*10)
	})
}

func newTestClient(t *testing.T, f *fakeAPI, limit int) (*Client, func()) {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(f.handler(func() string { return srv.URL }))
	c := New(Options{
		BaseURL:     srv.URL + "/",
		Limit:       limit,
		Concurrency: 3,
		HTTPClient:  &http.Client{Transport: &http.Transport{DisableKeepAlives: true}},
	})
	return c, srv.Close
}

func TestFetchBatch_PreservesListingOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := &fakeAPI{names: []string{"bulbasaur", "ivysaur", "venusaur", "charmander", "charmeleon", "charizard"}}
	c, stop := newTestClient(t, f, 5)

	got, err := c.FetchBatch(context.Background())
	stop()
	require.NoError(t, err)
	require.Len(t, got, 5)

	for i, p := range got {
		assert.Equal(t, f.names[i], p.Name)
		assert.Equal(t, i+1, p.ID)
	}
	first := got[0]
	assert.Equal(t, []string{"grass"}, first.Types)
	require.NotNil(t, first.BaseExperience)
	assert.Equal(t, 61, *first.BaseExperience)
	assert.Equal(t, 10, first.Weight)
	assert.Len(t, first.Stats, 2)
	assert.Equal(t, "over-grow", first.Abilities[0].Name)
	assert.True(t, first.Abilities[0].IsHidden)
	assert.Equal(t, []string{"cut"}, first.Moves)
	assert.Equal(t, "f.png", first.Sprites.FrontDefault)
	assert.Empty(t, first.Sprites.OfficialArtwork)
	assert.EqualValues(t, 6, f.hits.Load())
}

func TestFetchBatch_OneFailureFailsBatch(t *testing.T) {
	f := &fakeAPI{names: []string{"bulbasaur", "ivysaur", "venusaur"}, failName: "ivysaur"}
	c, stop := newTestClient(t, f, 100)
	defer stop()

	got, err := c.Records(context.Background())
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "ivysaur")
	assert.Contains(t, err.Error(), "502")
}

func TestFetch(t *testing.T) {
	f := &fakeAPI{names: []string{"bulbasaur", "pikachu"}}
	c, stop := newTestClient(t, f, 100)
	defer stop()

	p, err := c.Fetch(context.Background(), " Pikachu ")
	require.NoError(t, err)
	assert.Equal(t, 2, p.ID)

	p, err = c.Fetch(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "bulbasaur", p.Name)

	_, err = c.Fetch(context.Background(), "mewtwo")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Fetch(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchBatch_ContextCancelled(t *testing.T) {
	f := &fakeAPI{names: []string{"bulbasaur"}}
	c, stop := newTestClient(t, f, 100)
	defer stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.FetchBatch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToRecord_KeepsMissingListsNil(t *testing.T) {
	var resp pokemonResponse
	require.NoError(t, json.Unmarshal([]byte(`{"id": 9, "name": "glitch", "base_experience": null}`), &resp))
	p := resp.toRecord()
	assert.Nil(t, p.Types)
	assert.Nil(t, p.Stats)
	assert.Nil(t, p.BaseExperience)
}
