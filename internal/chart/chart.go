package chart

// Chart is the full parsed content structure for one working unit: an ordered
// sequence of timed elements, a difficulty block, a control-point timeline,
// and its own copy of the descriptor summary. The loader replaces the summary
// with the authoritative descriptor after parsing.
type Chart struct {
	Info       *Descriptor `json:"info"`
	Difficulty *Difficulty `json:"difficulty"`
	Timeline   *Timeline   `json:"timeline"`
	Elements   []*Element  `json:"elements"`
}

// New returns an empty chart with default difficulty and an empty timeline.
// The loader substitutes one when parsing yields nothing.
func New() *Chart {
	return &Chart{
		Info:       &Descriptor{},
		Difficulty: DefaultDifficulty(),
		Timeline:   &Timeline{},
	}
}

// Clone returns a deep, independently owned copy of the chart.
func (c *Chart) Clone() *Chart {
	if c == nil {
		return nil
	}
	clone := &Chart{
		Info:       c.Info.Clone(),
		Difficulty: c.Difficulty.Clone(),
		Timeline:   c.Timeline.Clone(),
	}
	if len(c.Elements) > 0 {
		clone.Elements = make([]*Element, len(c.Elements))
		for i, e := range c.Elements {
			clone.Elements[i] = e.Clone()
		}
	}
	return clone
}

// Length returns the time of the last element's end, or the last element's
// start when it bears no duration. An empty chart has length zero.
func (c *Chart) Length() float64 {
	if c == nil || len(c.Elements) == 0 {
		return 0
	}
	last := c.Elements[len(c.Elements)-1]
	return last.End()
}
