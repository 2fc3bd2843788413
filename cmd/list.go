package cmd

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List open windows",
	Long:  "List open application windows with their ID, title, app, bounds and display, after filtering out system overlays and tiny windows.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("pretty", false, "Pretty-print output (no-op for YAML)")
}

func runList(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	res, err := svc.ListWindows(cmd.Context())
	return printResult(cmd, res, err)
}
