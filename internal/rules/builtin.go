package rules

import "chartkit/internal/chart"

// Builtin returns a registry with the repository's built-in rulesets
// installed: "classic" (faithful pass-through) and "duet" (two-lane remap).
func Builtin() *Registry {
	registry := NewRegistry()
	// Registration of the built-ins cannot fail.
	_ = registry.Register(ClassicRuleset())
	_ = registry.Register(DuetRuleset())
	return registry
}

// ClassicConverter reproduces the source chart in the classic ruleset. Its
// configuration fields are mutated by conversion modifiers before Convert.
type ClassicConverter struct {
	source *chart.Chart

	// FlattenHolds collapses duration-bearing elements into plain notes.
	FlattenHolds bool
}

func (c *ClassicConverter) Description() string { return "classic pass-through" }

func (c *ClassicConverter) CanConvert() bool { return c.source != nil }

func (c *ClassicConverter) Convert() (*chart.Chart, error) {
	out := &chart.Chart{
		Info:       c.source.Info,
		Difficulty: c.source.Difficulty,
		Timeline:   c.source.Timeline,
		Elements:   make([]*chart.Element, len(c.source.Elements)),
	}
	for i, element := range c.source.Elements {
		clone := element.Clone()
		if c.FlattenHolds && clone.Kind == chart.KindHold {
			clone.Kind = chart.KindNote
			clone.Duration = 0
		}
		out.Elements[i] = clone
	}
	return out, nil
}

// ClassicRuleset builds the classic ruleset with its standard modifiers.
func ClassicRuleset() Ruleset {
	return Ruleset{
		ID:           "classic",
		Name:         "Classic",
		NewConverter: func(source *chart.Chart) Converter { return &ClassicConverter{source: source} },
		Modifiers: []Modifier{
			DoubleTime(),
			HardLevel(),
			NoHolds(),
		},
	}
}

// DoubleTime speeds playback up by half again: element times shrink and the
// effective velocity rises.
func DoubleTime() Modifier {
	const rate = 1.5
	return Modifier{
		Name: "double-time",
		Caps: AffectsDifficulty | AffectsElement,
		AdjustDifficulty: func(d *chart.Difficulty) error {
			d.VelocityMultiplier *= rate
			return nil
		},
		AdjustElement: func(e *chart.Element) error {
			e.Start /= rate
			e.Duration /= rate
			return nil
		},
	}
}

// HardLevel raises the difficulty block toward its ceiling.
func HardLevel() Modifier {
	const factor = 1.4
	raise := func(v float64) float64 {
		v *= factor
		if v > 10 {
			v = 10
		}
		return v
	}
	return Modifier{
		Name: "hard",
		Caps: AffectsDifficulty,
		AdjustDifficulty: func(d *chart.Difficulty) error {
			d.OverallLevel = raise(d.OverallLevel)
			d.DrainRate = raise(d.DrainRate)
			d.ApproachRate = raise(d.ApproachRate)
			return nil
		},
	}
}

// NoHolds configures the classic converter to collapse holds into notes.
func NoHolds() Modifier {
	return Modifier{
		Name: "no-holds",
		Caps: AffectsConversion,
		ConfigureConversion: func(conv Converter) error {
			if classic, ok := conv.(*ClassicConverter); ok {
				classic.FlattenHolds = true
			}
			return nil
		},
	}
}

// duetConverter folds every column onto two lanes. Charts using freeform
// (negative) columns are not expressible in duet.
type duetConverter struct {
	source *chart.Chart
}

func (c *duetConverter) Description() string { return "duet two-lane" }

func (c *duetConverter) CanConvert() bool {
	if c.source == nil {
		return false
	}
	for _, element := range c.source.Elements {
		if element.Column < 0 {
			return false
		}
	}
	return true
}

func (c *duetConverter) Convert() (*chart.Chart, error) {
	out := &chart.Chart{
		Info:       c.source.Info,
		Difficulty: c.source.Difficulty,
		Timeline:   c.source.Timeline,
		Elements:   make([]*chart.Element, len(c.source.Elements)),
	}
	for i, element := range c.source.Elements {
		clone := element.Clone()
		clone.Column = clone.Column % 2
		out.Elements[i] = clone
	}
	return out, nil
}

// duetProcessor keeps lane assignments legal after element modifiers run.
type duetProcessor struct{}

func (duetProcessor) PreProcess(*Playable) error { return nil }

func (duetProcessor) PostProcess(p *Playable) error {
	for _, element := range p.Chart.Elements {
		if element.Column < 0 {
			element.Column = 0
		}
		if element.Column > 1 {
			element.Column = 1
		}
	}
	return nil
}

// DuetRuleset builds the duet ruleset with its standard modifiers.
func DuetRuleset() Ruleset {
	return Ruleset{
		ID:           "duet",
		Name:         "Duet",
		NewConverter: func(source *chart.Chart) Converter { return &duetConverter{source: source} },
		NewProcessor: func() Processor { return duetProcessor{} },
		Modifiers: []Modifier{
			DoubleTime(),
			SwapLanes(),
		},
	}
}

// SwapLanes mirrors the two duet lanes.
func SwapLanes() Modifier {
	return Modifier{
		Name: "swap-lanes",
		Caps: AffectsElement,
		AdjustElement: func(e *chart.Element) error {
			e.Column = 1 - e.Column
			return nil
		},
	}
}
