package aggregate

import (
	"maps"
	"slices"
	"strings"
	"time"

	"ntl/internal/domain"
)

// DefaultRunID is the id written on the test-run element unless overridden
const DefaultRunID = "2"

// Aggregator builds the run tree from a finished set of records.
// It keeps no state between calls.
type Aggregator struct {
	runID       string
	now         func() time.Time
	onMalformed MalformedFunc
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithRunID sets the id of the run node
func WithRunID(id string) Option {
	return func(a *Aggregator) {
		if id != "" {
			a.runID = id
		}
	}
}

// WithClock replaces the wall clock used for the run start and end times
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// WithMalformedHandler registers a callback for records excluded because of their name
func WithMalformedHandler(fn MalformedFunc) Option {
	return func(a *Aggregator) {
		a.onMalformed = fn
	}
}

// New creates a new Aggregator
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		runID: DefaultRunID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildRun aggregates records into a run node with one assembly child per
// distinct assembly path, ordered by path. The run start and end times are
// the bounds of this call, not of the records.
func (a *Aggregator) BuildRun(records []domain.Record) *domain.Node {
	start := a.now().UTC()

	byAssembly := make(map[string][]domain.Record)
	for _, record := range records {
		byAssembly[record.AssemblyPath] = append(byAssembly[record.AssemblyPath], record)
	}

	assemblies := make([]*domain.Node, 0, len(byAssembly))
	for _, path := range slices.Sorted(maps.Keys(byAssembly)) {
		assemblies = append(assemblies, a.buildAssembly(path, byAssembly[path]))
	}

	run := rollup(domain.KindRun, "", "", assemblies)
	end := a.now().UTC()

	run.StartTime = &start
	run.EndTime = &end
	run.ID = a.runID
	run.TestCaseCount = run.Total
	return run
}

func (a *Aggregator) buildAssembly(path string, records []domain.Record) *domain.Node {
	fixtures := buildFixtures(records, a.onMalformed)
	roots := GroupSuites(fixtures)
	return rollup(domain.KindAssembly, fileName(path), path, roots)
}

// BuildRun aggregates records with the default options
func BuildRun(records []domain.Record) *domain.Node {
	return New().BuildRun(records)
}

// fileName returns the last element of a path written with either separator
func fileName(path string) string {
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
