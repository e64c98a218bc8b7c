package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"pokedex-insights-go/internal/aggregator"
	"pokedex-insights-go/internal/charts"
	"pokedex-insights-go/internal/detail"
	"pokedex-insights-go/internal/filter"
	"pokedex-insights-go/internal/insights"
	"pokedex-insights-go/internal/logger"
	"pokedex-insights-go/internal/pokeapi"
	"pokedex-insights-go/internal/types"
)

var (
	ErrNotLoaded = errors.New("dashboard data not loaded")
	ErrNotFound  = errors.New("pokemon not found")
)

// Source yields the record collection, once per session.
type Source interface {
	Records(ctx context.Context) ([]types.Pokemon, error)
}

// Fetcher loads a single record that is not part of the collection.
type Fetcher interface {
	Fetch(ctx context.Context, idOrName string) (types.Pokemon, error)
}

// Service holds the loaded collection and assembles view-models from it.
// After Load the collection is never mutated, so readers share it freely.
type Service struct {
	source  Source
	fetcher Fetcher
	log     *logrus.Entry

	mu      sync.RWMutex
	loaded  bool
	records []types.Pokemon
	agg     aggregator.Result
}

// New wires a service. fetcher may be nil, in which case detail lookups
// only consult the loaded collection.
func New(source Source, fetcher Fetcher, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{source: source, fetcher: fetcher, log: log.Component("dashboard")}
}

// Load pulls the collection from the source and computes its aggregate.
// A failed load leaves any previous collection in place.
func (s *Service) Load(ctx context.Context) error {
	start := time.Now()
	records, err := s.source.Records(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to load records")
		return fmt.Errorf("load records: %w", err)
	}
	agg := aggregator.Aggregate(records)

	s.mu.Lock()
	s.records = records
	s.agg = agg
	s.loaded = true
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"records":     agg.Total,
		"types":       agg.DistinctTypes(),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("dashboard data loaded")
	return nil
}

func (s *Service) snapshot() ([]types.Pokemon, aggregator.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, aggregator.Result{}, ErrNotLoaded
	}
	return s.records, s.agg, nil
}

// Records returns the loaded collection. Callers must not modify it.
func (s *Service) Records() ([]types.Pokemon, error) {
	records, _, err := s.snapshot()
	return records, err
}

func (s *Service) Aggregate() (aggregator.Result, error) {
	_, agg, err := s.snapshot()
	return agg, err
}

// Item is one row of the filtered list.
type Item struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Types  []string `json:"types"`
	Image  string   `json:"image,omitempty"`
	Height string   `json:"height"`
	Weight string   `json:"weight"`
}

func toItem(p types.Pokemon) Item {
	img := p.Sprites.FrontDefault
	if img == "" {
		img = p.Sprites.OfficialArtwork
	}
	return Item{
		ID:     p.ID,
		Name:   p.Name,
		Types:  p.Types,
		Image:  img,
		Height: fmt.Sprintf("%.1fm", p.HeightMeters()),
		Weight: fmt.Sprintf("%.1fkg", p.WeightKg()),
	}
}

// List filters the collection.
func (s *Service) List(c filter.Criteria) ([]Item, error) {
	records, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return listItems(records, c), nil
}

func listItems(records []types.Pokemon, c filter.Criteria) []Item {
	matched := filter.Apply(records, c)
	items := make([]Item, 0, len(matched))
	for _, p := range matched {
		items = append(items, toItem(p))
	}
	return items
}

type View struct {
	Summary     []insights.SummaryCard `json:"summary"`
	Facts       []insights.Card        `json:"facts"`
	Insights    []string               `json:"insights"`
	Charts      charts.Series          `json:"charts"`
	TypeOptions []filter.Option        `json:"type_options"`
	Criteria    filter.Criteria        `json:"criteria"`
	Results     []Item                 `json:"results"`
}

// View assembles the full dashboard. Statistics always describe the whole
// collection; only Results follow the criteria. For an empty collection
// Facts and Insights are left empty.
func (s *Service) View(c filter.Criteria) (View, error) {
	records, agg, err := s.snapshot()
	if err != nil {
		return View{}, err
	}
	if c.Type == "" {
		c.Type = filter.TypeAll
	}
	v := View{
		Summary:     insights.Summary(agg),
		Facts:       []insights.Card{},
		Insights:    []string{},
		Charts:      charts.Build(agg),
		TypeOptions: filter.TypeOptions(records),
		Criteria:    c,
		Results:     listItems(records, c),
	}
	if agg.Empty() {
		return v, nil
	}
	if v.Facts, err = insights.Facts(agg); err != nil {
		return View{}, err
	}
	if v.Insights, err = insights.Build(agg); err != nil {
		return View{}, err
	}
	return v, nil
}

// Charts returns chart series plus options for the requested kinds.
func (s *Service) Charts(typeKind, statKind string) (charts.View, error) {
	_, agg, err := s.snapshot()
	if err != nil {
		return charts.View{}, err
	}
	return charts.BuildView(agg, typeKind, statKind)
}

// Detail finds a record by id or name in the collection, falling back to
// the fetcher for records outside it. A collection record without
// abilities, moves or sprites (a workbook snapshot row) is refreshed
// through the fetcher when one is configured; if that fails the local
// record is served as is.
func (s *Service) Detail(ctx context.Context, idOrName string) (detail.View, error) {
	key := strings.TrimSpace(idOrName)
	records, _, err := s.snapshot()
	if err != nil && s.fetcher == nil {
		return detail.View{}, err
	}
	if p, ok := lookup(records, key); ok {
		if s.fetcher == nil || !partial(p) {
			return detail.Build(p), nil
		}
		full, err := s.fetcher.Fetch(ctx, p.Name)
		if err != nil {
			s.log.WithError(err).WithField("key", key).Warn("refresh of partial record failed, serving local copy")
			return detail.Build(p), nil
		}
		return detail.Build(full), nil
	}
	if s.fetcher == nil {
		return detail.View{}, fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	s.log.WithField("key", key).Debug("not in collection, fetching")
	p, err := s.fetcher.Fetch(ctx, key)
	if errors.Is(err, pokeapi.ErrNotFound) {
		return detail.View{}, fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	if err != nil {
		return detail.View{}, err
	}
	return detail.Build(p), nil
}

// partial reports a record carrying none of the detail-only fields.
func partial(p types.Pokemon) bool {
	return len(p.Abilities) == 0 && len(p.Moves) == 0 && p.Sprites == (types.Sprites{})
}

func lookup(records []types.Pokemon, key string) (types.Pokemon, bool) {
	if id, err := strconv.Atoi(key); err == nil {
		for _, p := range records {
			if p.ID == id {
				return p, true
			}
		}
		return types.Pokemon{}, false
	}
	for _, p := range records {
		if strings.EqualFold(p.Name, key) {
			return p, true
		}
	}
	return types.Pokemon{}, false
}
