package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bvisness/flowcanvas/app/script"
	"github.com/bvisness/flowcanvas/app/svgcanvas"
	"github.com/bvisness/flowcanvas/internal/ui"
)

func newRunner() *script.Runner {
	style := svgcanvas.DefaultStyle()
	style.EdgeStroke = cfg.Edges.Stroke
	style.EdgeWidth = cfg.Edges.Width
	return script.NewRunner(cfg.Options(logger), style)
}

// runScript replays the script at path. The runner is returned even when a
// step fails so the caller can report the state it reached.
func runScript(path string) (*script.Runner, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := newRunner()
	if err := r.Run(src); err != nil {
		return r, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func runCmd() *cobra.Command {
	var output string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "run <script.json>",
		Short: "Replay a gesture script headlessly",
		Long: `Replay a JSON gesture script against a headless editor and check its
expectations. The final canvas can be written as an SVG snapshot.

  flowcanvas run demo.json
  flowcanvas run demo.json -o demo.svg
  flowcanvas run demo.json -o -          # SVG to stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := runScript(args[0])
			if r == nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == "-" {
				out = cmd.ErrOrStderr()
			}

			e := r.Editor
			fmt.Fprintf(out, "%s %s: %d nodes, %d edges\n", ui.StatusIcon(err == nil), args[0], len(e.Nodes()), len(e.Connections()))
			if !quiet {
				for _, c := range e.Connections() {
					fmt.Fprintf(out, "    %s\n", ui.Subtle.Sprint(c.String()))
				}
			}
			if err != nil {
				return err
			}

			switch output {
			case "":
				return nil
			case "-":
				return r.WriteSVG(cmd.OutOrStdout())
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := r.WriteSVG(f); err != nil {
				return err
			}
			fmt.Fprintf(out, "  wrote %s\n", ui.Info.Sprint(output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write an SVG snapshot of the final canvas (- for stdout)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not list the edges")
	return cmd
}
