package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List charts in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			descriptors, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(descriptors) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "library is empty")
				return nil
			}

			rows := make([][]string, 0, len(descriptors))
			for _, d := range descriptors {
				rows = append(rows, []string{
					strconv.FormatInt(d.ID, 10),
					strconv.FormatInt(d.SetID, 10),
					displayTitle(d),
					d.Creator,
					d.AudioFile,
				})
			}
			headers := []string{"ID", "Set", "Title", "Creator", "Audio"}

			if plain || !stdoutIsTerminal() {
				for _, row := range rows {
					fmt.Fprintln(cmd.OutOrStdout(), strings.Join(row, "\t"))
				}
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, 0, 1))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Force tab-separated output")
	return cmd
}
