package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ngc-pool/packages/compiler/src/config"
)

var rootCmd = &cobra.Command{
	Use:   "ngc-pool",
	Short: "Constant pool hoisting driver",
	Long: `ngc-pool feeds compilation unit fixtures to a constant pool and reports
the declarations the pool hoists for each unit.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = Version

	rootCmd.AddCommand(hoistCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "path to "+config.ProjectFileName+" (default: ./"+config.ProjectFileName+" when present)")
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// settings is the configuration of one command invocation
type settings struct {
	project *config.ProjectConfig
	logger  *log.Logger
}

// loadSettings merges the project file, NGC_POOL_* variables and flags, in
// increasing order of precedence.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	path, _ := cmd.Flags().GetString("config")
	project := config.DefaultProjectConfig()
	switch {
	case path != "":
		p, err := config.ParseProjectConfig(path)
		if err != nil {
			return nil, err
		}
		project = p
	default:
		if _, err := os.Stat(config.ProjectFileName); err == nil {
			p, err := config.ParseProjectConfig(config.ProjectFileName)
			if err != nil {
				return nil, err
			}
			project = p
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat %q: %w", config.ProjectFileName, err)
		}
	}
	project.ApplyEnv()

	if mode, _ := cmd.Flags().GetString("color"); mode != "" {
		project.CLI.Color = mode
	}
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		project.CLI.Format = f.Value.String()
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		jobs, _ := cmd.Flags().GetInt("jobs")
		project.CLI.Jobs = jobs
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}

	switch project.CLI.Color {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}

	logOutput := io.Discard
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logOutput = cmd.ErrOrStderr()
	}
	return &settings{
		project: project,
		logger:  log.New(logOutput, "ngc-pool: ", 0),
	}, nil
}

// poolConfig returns a fresh pool configuration for one unit
func (s *settings) poolConfig() *config.PoolConfig {
	return config.NewPoolConfig(s.project.PoolOptions()...)
}

// isTerminal reports whether f is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
