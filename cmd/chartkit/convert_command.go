package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chartkit/internal/rules"
	"chartkit/internal/workunit"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var rulesetID string
	var modNames []string

	cmd := &cobra.Command{
		Use:   "convert <chart-id>",
		Short: "Convert a chart for a ruleset and report the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseChartID(args[0])
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			target := rulesetID
			if target == "" {
				target = cfg.Conversion.DefaultRuleset
			}
			rs, ok := ctx.registry.Lookup(target)
			if !ok {
				return fmt.Errorf("unknown ruleset %q (installed: %s)", target, strings.Join(ctx.registry.IDs(), ", "))
			}
			mods, err := resolveModifiers(rs, modNames)
			if err != nil {
				return err
			}

			descriptor, err := s.Descriptor(cmd.Context(), id)
			if err != nil {
				return err
			}
			unit, err := workunit.New(workunit.Options{
				Descriptor:     descriptor,
				Parse:          storeParse(s, id),
				PersistVersion: storeVersion(s, id),
				Registry:       ctx.registry,
				Logger:         logger,
			})
			if err != nil {
				return err
			}
			defer unit.Close()

			playable, err := unit.Convert(cmd.Context(), target, mods...)
			if err != nil {
				var incompatible *rules.IncompatibleContentError
				if errors.As(err, &incompatible) {
					return fmt.Errorf("chart %d is not playable in %s: %w", id, target, err)
				}
				return err
			}

			nested := 0
			for _, element := range playable.Chart.Elements {
				nested += len(element.Nested)
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"converted chart %d for %s: %d elements (%d synthesized), length %.0f\n",
				id, playable.RulesetID, len(playable.Chart.Elements), nested, playable.Chart.Length(),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&rulesetID, "ruleset", "r", "", "Target ruleset (default from config)")
	cmd.Flags().StringSliceVarP(&modNames, "mod", "m", nil, "Modifier to apply, in order (repeatable)")
	return cmd
}
