package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bvisness/flowcanvas/app"
	"github.com/bvisness/flowcanvas/app/core"
)

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [script.json]",
		Short: "Open the editor window",
		Long: `Open the editor window. If a gesture script is given it is replayed
first and the editor opens on the canvas it builds.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var e *core.Editor
			if len(args) == 1 {
				r, err := runScript(args[0])
				if err != nil {
					return err
				}
				e = r.Editor
			}
			app.Main(cfg, logger, e)
			return nil
		},
	}
}
