package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"chartkit/internal/chart"
	"chartkit/internal/chartio"
	"chartkit/internal/store"
	"chartkit/internal/workunit"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <chart-id>",
		Short: "Show one chart's metadata and resource summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseChartID(args[0])
			if err != nil {
				return err
			}

			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			logger, err := ctx.ensureLogger()
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

			loaded, err := unit.Chart(cmd.Context())
			if err != nil {
				return fmt.Errorf("load chart %d: %w", id, err)
			}

			track := unit.Resources().Track()
			rows := [][]string{
				{"ID", strconv.FormatInt(descriptor.ID, 10)},
				{"Set", strconv.FormatInt(descriptor.SetID, 10)},
				{"Title", displayTitle(descriptor)},
				{"Creator", descriptor.Creator},
				{"Audio", descriptor.AudioFile},
				{"Format version", strconv.Itoa(descriptor.FormatVersion)},
				{"Elements", strconv.Itoa(len(loaded.Elements))},
				{"Length", fmt.Sprintf("%.0f", loaded.Length())},
				{"Track", fmt.Sprintf("%s (%.0f)", track.Source, track.Length)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows))
			return nil
		},
	}
}

// storeParse builds the loader's parse collaborator from a stored payload. A
// chart without a payload legitimately parses to nothing.
func storeParse(s *store.Store, id int64) func(context.Context) (*chart.Chart, error) {
	return func(ctx context.Context) (*chart.Chart, error) {
		payload, err := s.Payload(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return chartio.Unmarshal(payload)
	}
}

// storeVersion persists the format version discovered during a load back onto
// the chart's library row.
func storeVersion(s *store.Store, id int64) func(context.Context, int) error {
	return func(ctx context.Context, version int) error {
		return s.SetFormatVersion(ctx, id, version)
	}
}
