package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"chartkit/internal/chart"
	"chartkit/internal/workunit"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var all bool
	var parallelism int

	cmd := &cobra.Command{
		Use:   "export [chart-id]...",
		Short: "Export charts to freshly named files in the export directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("name chart ids or pass --all")
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

			var descriptors []*chart.Descriptor
			if all {
				descriptors, err = s.List(cmd.Context())
				if err != nil {
					return err
				}
			} else {
				for _, arg := range args {
					id, err := parseChartID(arg)
					if err != nil {
						return err
					}
					d, err := s.Descriptor(cmd.Context(), id)
					if err != nil {
						return err
					}
					descriptors = append(descriptors, d)
				}
			}

			if parallelism < 1 {
				parallelism = 1
			}
			group, groupCtx := errgroup.WithContext(cmd.Context())
			group.SetLimit(parallelism)
			paths := make([]string, len(descriptors))
			for i, descriptor := range descriptors {
				i, descriptor := i, descriptor
				group.Go(func() error {
					unit, err := workunit.New(workunit.Options{
						Descriptor:     descriptor,
						Parse:          storeParse(s, descriptor.ID),
						PersistVersion: storeVersion(s, descriptor.ID),
						Registry:       ctx.registry,
						TempDir:        cfg.Paths.ExportDir,
						Logger:         logger,
					})
					if err != nil {
						return err
					}
					defer unit.Close()

					path, err := unit.SaveTemp(groupCtx)
					if err != nil {
						return fmt.Errorf("export chart %d: %w", descriptor.ID, err)
					}
					paths[i] = path
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}

			for i, path := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "chart %d -> %s\n", descriptors[i].ID, path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Export every chart in the library")
	cmd.Flags().IntVar(&parallelism, "parallelism", 4, "Concurrent exports")
	return cmd
}
