package tables

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/tsawler/layoutkit/model"
)

// Page bundles everything a detector sees of one page.
type Page struct {
	Geometry  model.PageGeometry
	Fragments []model.TextFragment
	Lines     []model.LineSegment
}

// Detector is the interface for table detection algorithms
type Detector interface {
	// Detect finds tables on a page
	Detect(page Page) []*model.RawTable

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config)
}

// GroupPages splits document-wide fragment and line streams into pages,
// ordered by page number. Pages without known geometry get the default
// page size.
func GroupPages(geoms []model.PageGeometry, frags []model.TextFragment, lines []model.LineSegment) []Page {
	byNum := make(map[int]*Page)
	get := func(n int) *Page {
		p, ok := byNum[n]
		if !ok {
			p = &Page{Geometry: model.DefaultPageGeometry(n)}
			byNum[n] = p
		}
		return p
	}
	for _, g := range geoms {
		p := get(g.Page)
		if g.Width > 0 && g.Height > 0 {
			p.Geometry = g
		}
	}
	for _, f := range frags {
		p := get(f.Page)
		p.Fragments = append(p.Fragments, f)
	}
	for _, l := range lines {
		p := get(l.Page)
		p.Lines = append(p.Lines, l)
	}

	nums := make([]int, 0, len(byNum))
	for n := range byNum {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	pages := make([]Page, 0, len(nums))
	for _, n := range nums {
		pages = append(pages, *byNum[n])
	}
	return pages
}

// DetectAll runs d over every page and concatenates the results.
func DetectAll(d Detector, pages []Page) []*model.RawTable {
	var out []*model.RawTable
	for _, p := range pages {
		out = append(out, d.Detect(p)...)
	}
	return out
}

// Factory builds a detector configured with config
type Factory func(config Config) Detector

// ErrUnknownDetector is returned when no detector is registered under a name.
var ErrUnknownDetector = errors.New("unknown table detector")

// DetectorRegistry holds registered detector factories. Each lookup builds
// a fresh detector so concurrent documents never share detector state.
type DetectorRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		factories: make(map[string]Factory),
	}
}

// Register registers a detector factory under name
func (r *DetectorRegistry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// New builds the named detector
func (r *DetectorRegistry) New(name string, config Config) (Detector, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDetector, name)
	}
	return f(config), nil
}

// List returns all registered detector names in sorted order
func (r *DetectorRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector factory globally
func RegisterDetector(name string, factory Factory) {
	globalRegistry.Register(name, factory)
}

// NewDetector builds a globally registered detector by name
func NewDetector(name string, config Config) (Detector, error) {
	return globalRegistry.New(name, config)
}

// ListDetectors returns all registered detector names
func ListDetectors() []string {
	return globalRegistry.List()
}

func init() {
	// Register default detectors
	RegisterDetector("text", func(c Config) Detector { return NewTextDetectorWithConfig(c) })
	RegisterDetector("line", func(c Config) Detector { return NewLineDetectorWithConfig(c) })
}
