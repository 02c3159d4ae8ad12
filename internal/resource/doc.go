// Package resource models the derived, expensive-to-produce resources of a
// working unit (audio track, background image, waveform, overlay track, skin)
// and the Set that caches them lazily, one single-slot cache per kind.
//
// Accessors never surface factory errors: a factory that fails or yields
// nothing is replaced by a deterministic default (a silent track sized to the
// chart, an empty waveform, a descriptor-tagged overlay stub, the default
// skin). A still-valid cached audio track can be transferred to a sibling set
// that shares the same underlying audio, skipping a reload.
package resource
