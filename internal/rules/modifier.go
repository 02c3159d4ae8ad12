package rules

import "chartkit/internal/chart"

// Capability tags the pipeline stages a modifier participates in. Tags are
// declared at construction and queried by membership; the pipeline performs
// no type introspection.
type Capability uint8

const (
	// AffectsConversion modifiers configure the converter before it runs.
	AffectsConversion Capability = 1 << iota
	// AffectsDifficulty modifiers adjust the cloned difficulty block.
	AffectsDifficulty
	// AffectsElement modifiers mutate each converted element in order.
	AffectsElement
)

// Has reports whether the set contains the given tag.
func (c Capability) Has(tag Capability) bool {
	return c&tag != 0
}

// Modifier is a plugin-supplied unit of behavior. Only the hooks matching a
// declared capability are invoked; a hook left nil for a declared capability
// is skipped. Hook errors propagate to the Convert caller unchanged.
type Modifier struct {
	Name string
	Caps Capability

	ConfigureConversion func(Converter) error
	AdjustDifficulty    func(*chart.Difficulty) error
	AdjustElement       func(*chart.Element) error
}
