package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chartkit/internal/chart"
	"chartkit/internal/chartio"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var setID int64

	cmd := &cobra.Command{
		Use:   "import <chart.json>...",
		Short: "Import chart files into the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			for _, path := range args {
				imported, err := chartio.ReadFile(path)
				if err != nil {
					return err
				}
				payload, err := chartio.Marshal(imported)
				if err != nil {
					return err
				}

				descriptor := imported.Info.Clone()
				if descriptor == nil {
					descriptor = &chart.Descriptor{}
				}
				descriptor.ID = 0
				if setID != 0 {
					descriptor.SetID = setID
				}
				if descriptor.Title == "" {
					descriptor.Title = path
				}

				id, err := s.Insert(cmd.Context(), descriptor, payload)
				if err != nil {
					return err
				}
				logger.Info("chart imported", "path", path, "id", id)
				fmt.Fprintf(cmd.OutOrStdout(), "imported %s as chart %d\n", path, id)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&setID, "set", 0, "Assign imported charts to this set")
	return cmd
}
