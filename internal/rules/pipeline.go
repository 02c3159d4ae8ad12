package rules

import (
	"fmt"

	"chartkit/internal/chart"
)

// Playable is a chart that has been converted for one ruleset and had all
// modifiers applied. Every element carries computed derived fields. A
// Playable is owned by its caller and never shared by the pipeline.
type Playable struct {
	Chart     *chart.Chart
	RulesetID string
}

// Convert resolves the ruleset and runs the pipeline. See ConvertWith.
func (r *Registry) Convert(source *chart.Chart, rulesetID string, mods []Modifier) (*Playable, error) {
	rs, ok := r.Lookup(rulesetID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRuleset, rulesetID)
	}
	return ConvertWith(source, rs, mods)
}

// ConvertWith runs the conversion pipeline: converter capability check,
// conversion-modifier configuration, conversion, difficulty-modifier
// application on cloned blocks, processor pre-pass, element defaulting with
// nested synthesis, element-modifier application (one modifier fully applied
// across all elements before the next runs), and the processor post-pass.
//
// The pipeline is pure with respect to source: identical inputs produce
// structurally equivalent output, and source is never mutated. Modifier,
// converter, and processor errors propagate unchanged.
func ConvertWith(source *chart.Chart, rs Ruleset, mods []Modifier) (*Playable, error) {
	converter := rs.NewConverter(source)
	if !converter.CanConvert() {
		return nil, &IncompatibleContentError{RulesetID: rs.ID, Converter: converter.Description()}
	}

	for _, mod := range mods {
		if !mod.Caps.Has(AffectsConversion) || mod.ConfigureConversion == nil {
			continue
		}
		if err := mod.ConfigureConversion(converter); err != nil {
			return nil, err
		}
	}

	converted, err := converter.Convert()
	if err != nil {
		return nil, err
	}

	if hasCapability(mods, AffectsDifficulty) {
		// Clone before mutation: the converter may have shared these blocks
		// with the source chart.
		converted.Info = converted.Info.Clone()
		converted.Difficulty = converted.Difficulty.Clone()
		if converted.Difficulty == nil {
			// A hand-built chart may arrive without a difficulty block.
			converted.Difficulty = chart.DefaultDifficulty()
		}
		for _, mod := range mods {
			if !mod.Caps.Has(AffectsDifficulty) || mod.AdjustDifficulty == nil {
				continue
			}
			if err := mod.AdjustDifficulty(converted.Difficulty); err != nil {
				return nil, err
			}
		}
	}

	playable := &Playable{Chart: converted, RulesetID: rs.ID}

	var processor Processor
	if rs.NewProcessor != nil {
		processor = rs.NewProcessor()
	}
	if processor != nil {
		if err := processor.PreProcess(playable); err != nil {
			return nil, err
		}
	}

	for _, element := range converted.Elements {
		element.ApplyDefaults(converted.Timeline, converted.Difficulty)
	}

	for _, mod := range mods {
		if !mod.Caps.Has(AffectsElement) || mod.AdjustElement == nil {
			continue
		}
		for _, element := range converted.Elements {
			if err := mod.AdjustElement(element); err != nil {
				return nil, err
			}
		}
	}

	if processor != nil {
		if err := processor.PostProcess(playable); err != nil {
			return nil, err
		}
	}

	return playable, nil
}

func hasCapability(mods []Modifier, tag Capability) bool {
	for _, mod := range mods {
		if mod.Caps.Has(tag) {
			return true
		}
	}
	return false
}
