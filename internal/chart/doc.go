// Package chart defines the core content model: descriptors identifying a
// chart within the library, the parsed chart structure itself (timed elements,
// difficulty settings, and the control-point timeline), and the defaulting
// rules that derive per-element playback fields from timing and difficulty.
//
// Charts are replaced, never mutated in place, once conversion occurs; the
// rules package produces independently owned playable variants from them.
package chart
