package resource

import (
	"sync/atomic"

	"chartkit/internal/chart"
)

// TrailingMargin is the silence appended after the last element when a
// synthetic track is generated, in chart time units.
const TrailingMargin = 1000.0

// Track is a playable audio resource. A synthetic track stands in when no
// real audio factory produces one.
type Track struct {
	Source    string
	Length    float64
	Synthetic bool

	released atomic.Bool
}

// SilentTrack builds a synthetic silent track of the given length.
func SilentTrack(length float64) *Track {
	return &Track{Source: "silent", Length: length, Synthetic: true}
}

// Dispose releases the track's decoder resources. Safe on nil receivers and
// safe to call more than once.
func (t *Track) Dispose() {
	if t == nil {
		return
	}
	t.released.Store(true)
}

// Released reports whether the track has been disposed.
func (t *Track) Released() bool {
	return t != nil && t.released.Load()
}

// Background is an image resource whose pixel data may be released by a lower
// layer while the cache still holds the handle.
type Background struct {
	Path string

	released atomic.Bool
}

// Available reports whether the underlying image is still usable.
func (b *Background) Available() bool {
	return b != nil && !b.released.Load()
}

// Dispose releases the image data.
func (b *Background) Dispose() {
	if b == nil {
		return
	}
	b.released.Store(true)
}

// Waveform is the precomputed amplitude outline of a track.
type Waveform struct {
	Source string
	Peaks  []float64
}

// EmptyWaveform returns the default waveform used when no factory yields one.
func EmptyWaveform() *Waveform {
	return &Waveform{}
}

// Overlay is the visual overlay track shown alongside play.
type Overlay struct {
	Info   *chart.Descriptor
	Layers []string
}

// Skin describes the visual element set applied during play.
type Skin struct {
	Name string
}

// DefaultSkin returns the fallback skin.
func DefaultSkin() *Skin {
	return &Skin{Name: "default"}
}
