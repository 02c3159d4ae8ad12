package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"chartkit/internal/chart"
)

// Converter turns one source chart into a ruleset-specific variant. A
// converter is instantiated per source chart; conversion modifiers may mutate
// its configuration before Convert runs. Convert must return a new chart and
// leave the source untouched, though it may share the source's descriptor and
// difficulty pointers (the pipeline clones them before mutation).
type Converter interface {
	// Description identifies the converter in diagnostics.
	Description() string
	// CanConvert reports whether the source chart is expressible in this
	// ruleset. It is a capability check, not an attempted conversion.
	CanConvert() bool
	// Convert produces the converted chart.
	Convert() (*chart.Chart, error)
}

// Processor hooks run around the element defaulting and mutation stages.
type Processor interface {
	PreProcess(*Playable) error
	PostProcess(*Playable) error
}

// Ruleset describes one installed plugin.
type Ruleset struct {
	ID   string
	Name string

	// NewConverter builds a converter bound to the given source chart.
	NewConverter func(*chart.Chart) Converter
	// NewProcessor builds the post-conversion processor; nil means none.
	NewProcessor func() Processor
	// Modifiers lists the modifiers this ruleset installs, for lookup by name.
	Modifiers []Modifier
}

// ModifierByName finds an installed modifier, case-insensitively.
func (r Ruleset) ModifierByName(name string) (Modifier, bool) {
	for _, mod := range r.Modifiers {
		if strings.EqualFold(mod.Name, name) {
			return mod, true
		}
	}
	return Modifier{}, false
}

// Registry holds the installed rulesets keyed by ID.
type Registry struct {
	mu   sync.RWMutex
	byID map[string]Ruleset
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Ruleset)}
}

// Register installs a ruleset. Re-registering an ID is an error.
func (r *Registry) Register(rs Ruleset) error {
	if strings.TrimSpace(rs.ID) == "" {
		return fmt.Errorf("ruleset: empty ID")
	}
	if rs.NewConverter == nil {
		return fmt.Errorf("ruleset %s: converter factory required", rs.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[rs.ID]; exists {
		return fmt.Errorf("ruleset %s: already registered", rs.ID)
	}
	r.byID[rs.ID] = rs
	return nil
}

// Lookup returns the ruleset registered under id.
func (r *Registry) Lookup(id string) (Ruleset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rs, ok := r.byID[id]
	return rs, ok
}

// IDs returns the registered ruleset IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
