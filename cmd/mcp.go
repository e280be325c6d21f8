package cmd

import (
	"github.com/spf13/cobra"

	"tst/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP stdio server",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets an MCP client log and query sprint time natively. Configure with:

  {
    "mcpServers": {
      "tst": { "command": "tst", "args": ["mcp"] }
    }
  }

Available tools: tst_status, tst_create_sprint, tst_list_sprints,
tst_use_sprint, tst_add_entry, tst_list_entries, tst_delete_entry,
tst_summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := getTracker()
		if err != nil {
			return err
		}

		srv := mcp.NewServer(t)
		return srv.ServeStdio(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
