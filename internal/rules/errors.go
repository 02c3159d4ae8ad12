package rules

import (
	"errors"
	"fmt"
)

// ErrUnknownRuleset is returned when converting against an ID that has no
// registered ruleset.
var ErrUnknownRuleset = errors.New("unknown ruleset")

// IncompatibleContentError reports that a ruleset's converter declined the
// source chart. It identifies the ruleset and converter so the failure can be
// diagnosed; the conversion is not retried.
type IncompatibleContentError struct {
	RulesetID string
	Converter string
}

func (e *IncompatibleContentError) Error() string {
	return fmt.Sprintf("ruleset %s: converter %s cannot convert this chart", e.RulesetID, e.Converter)
}
