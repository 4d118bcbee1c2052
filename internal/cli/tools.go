package cli

import (
	"github.com/spf13/cobra"
)

// newToolsCmd creates the tools command
func newToolsCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dw, err := NewDataWriter(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			_, _, dispatcher, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			table := NewTableBuilder("NAME", "DESCRIPTION")
			for _, tool := range dispatcher.Registry().ListTools() {
				def := tool.Definition()
				table.AddRow(def.Name, def.Description)
			}
			return table.Write(dw)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json)")

	return cmd
}
