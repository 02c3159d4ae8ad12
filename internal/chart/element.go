package chart

// Kind discriminates timed element behavior.
type Kind string

const (
	// KindNote is an instantaneous element.
	KindNote Kind = "note"
	// KindHold is a duration-bearing element; defaulting synthesizes tick
	// children across its span.
	KindHold Kind = "hold"
	// KindTick is a synthesized child of a hold; never parsed directly.
	KindTick Kind = "tick"
)

// Element is one timed entry in a chart. Start and Duration are expressed in
// chart time units. Window and Velocity are derived fields computed by
// ApplyDefaults; they are zero until a defaulting pass has run.
type Element struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration,omitempty"`
	Kind     Kind    `json:"kind"`
	Column   int     `json:"column"`

	Window   float64 `json:"window,omitempty"`
	Velocity float64 `json:"velocity,omitempty"`

	// Nested holds children synthesized during the defaulting pass.
	Nested []*Element `json:"nested,omitempty"`
}

// End returns the element's end time: start plus duration for duration-bearing
// elements, the start time otherwise.
func (e *Element) End() float64 {
	if e.Duration > 0 {
		return e.Start + e.Duration
	}
	return e.Start
}

// Clone returns a deep copy, including synthesized children.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	clone := *e
	if len(e.Nested) > 0 {
		clone.Nested = make([]*Element, len(e.Nested))
		for i, n := range e.Nested {
			clone.Nested[i] = n.Clone()
		}
	}
	return &clone
}

// ApplyDefaults computes the element's derived fields from the control
// timeline and difficulty block, replacing any previously derived state.
// For holds it synthesizes tick children at each beat boundary inside the
// span, as part of this same pass.
func (e *Element) ApplyDefaults(tl *Timeline, diff *Difficulty) {
	cp := tl.At(e.Start)

	overall := 0.0
	velocity := 1.0
	if diff != nil {
		overall = diff.OverallLevel
		velocity = diff.VelocityMultiplier
		if velocity == 0 {
			velocity = 1
		}
	}

	e.Window = hitWindow(overall)
	e.Velocity = velocity * cp.SpeedMultiplier
	e.Nested = nil

	if e.Kind == KindHold && e.Duration > 0 && cp.BeatLength > 0 {
		for at := e.Start + cp.BeatLength; at < e.End(); at += cp.BeatLength {
			tick := &Element{
				Start:    at,
				Kind:     KindTick,
				Column:   e.Column,
				Window:   e.Window,
				Velocity: e.Velocity,
			}
			e.Nested = append(e.Nested, tick)
		}
	}
}

// hitWindow maps an overall difficulty level to a timing window, clamped so
// even extreme levels leave a usable window.
func hitWindow(overall float64) float64 {
	w := 80 - 6*overall
	if w < 8 {
		w = 8
	}
	return w
}
