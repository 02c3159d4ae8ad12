// Package rules orchestrates the deterministic pipeline that converts a
// generic chart into a ruleset-specific playable variant.
//
// A Ruleset contributes a converter factory, an optional processor with pre
// and post hooks, and a set of installed modifiers. Modifiers declare their
// capabilities (conversion, difficulty, element) as explicit tags; the
// pipeline filters by tag and applies each group in caller order. Conversion
// never mutates the source chart: difficulty and descriptor blocks are cloned
// before difficulty modifiers run, and every call yields an independently
// owned result.
package rules
