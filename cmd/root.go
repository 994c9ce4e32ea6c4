package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bvisness/flowcanvas/app/config"
	"github.com/bvisness/flowcanvas/internal/log"
	"github.com/bvisness/flowcanvas/internal/ui"
)

var version = "0.3.0"

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "flowcanvas",
	Short: "flowcanvas, a node-graph workflow editor",
	Long: ui.Brand.Sprint("flowcanvas") + " builds automation workflows by dragging connections between nodes\n" +
		ui.Subtle.Sprint("Open the editor, replay gesture scripts or browse the node catalog"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			ui.Warn.Fprintf(os.Stderr, "flowcanvas: %v (using defaults)\n", err)
		}
		cfg = c

		level := cfg.LogLevel()
		if logLevel != "" {
			level = log.LevelFromString(logLevel)
		}
		logger = log.New(os.Stderr, level)
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("flowcanvas {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn, error or none (overrides the config)")

	rootCmd.AddCommand(
		editCmd(),
		runCmd(),
		catalogCmd(),
		configCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		ui.Bad.Fprintf(os.Stderr, "flowcanvas: %v\n", err)
	}
	return err
}
