package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bvisness/flowcanvas/app/catalog"
	"github.com/bvisness/flowcanvas/app/core"
	"github.com/bvisness/flowcanvas/internal/ui"
	"github.com/bvisness/flowcanvas/util"
)

func portSummary(s core.PortSchema) string {
	var parts []string
	if s.Trigger {
		parts = append(parts, "trigger")
	}
	if s.Input {
		parts = append(parts, "in")
	}
	parts = append(parts, fmt.Sprintf("%d out", s.Outputs))
	if s.SubOutputs > 0 {
		parts = append(parts, fmt.Sprintf("%d sub", s.SubOutputs))
	}
	return strings.Join(parts, ", ")
}

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "catalog [query]",
		Aliases: []string{"nodes", "search"},
		Short:   "List the node types, optionally filtered",
		Long: `List the node types the editor can create. With a query the list is
filtered and ranked the same way as the sidebar search.

  flowcanvas catalog
  flowcanvas catalog agent`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			templates := catalog.Search(query)
			out := cmd.OutOrStdout()
			if len(templates) == 0 {
				ui.Warn.Fprintf(out, "no node types match %q\n", query)
				return nil
			}

			rows := util.Map(templates, func(t catalog.Template) []string {
				return []string{t.Token(), t.Title, t.Category, portSummary(t.Kind.Schema())}
			})
			ui.Table(out, []string{"TYPE", "TITLE", "CATEGORY", "PORTS"}, rows)
			return nil
		},
	}
}
