package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"paneldeck/internal/content"
	"paneldeck/internal/logging"
)

func newPanelsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panels",
		Short: "Inspect or reset the saved panel list",
	}
	cmd.AddCommand(newPanelsListCmd(opts))
	cmd.AddCommand(newPanelsResetCmd(opts))
	return cmd
}

func newPanelsListCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the saved panels in layout order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(opts, logging.FromContext(cmd.Context()))
			if err != nil {
				return err
			}
			state := st.Load()
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(state)
			}

			if len(state.Panels) == 0 {
				fmt.Fprintf(out, "No saved panels in %s\n", st.Path())
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tID\tTYPE\tTITLE")
			for i, d := range state.Panels {
				title := d.Title
				if title == "" {
					title = content.Kind(d.Kind).Title()
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, d.ID, d.Kind, title)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if state.ViewMode != "" {
				fmt.Fprintf(out, "\nview mode: %s\n", state.ViewMode)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the state as JSON")
	return cmd
}

func newPanelsResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved panel list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.FromContext(cmd.Context())
			st, err := openStore(opts, logger)
			if err != nil {
				return err
			}
			if err := st.Clear(); err != nil {
				return err
			}
			logger.Info("panel state cleared", "path", st.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", st.Path())
			return nil
		},
	}
}
