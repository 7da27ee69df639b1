package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ngc-pool/packages/compiler/src/unit"
)

var hoistCmd = &cobra.Command{
	Use:   "hoist <unit.toml>...",
	Short: "Hoist the constants of one or more unit files",
	Long: `Hoist feeds every request of each unit file to its own constant pool and
prints the hoisted declarations. Units are processed in parallel; output keeps
the order of the arguments.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHoist,
}

func init() {
	hoistCmd.Flags().String("format", "text", "output format (text|msgpack)")
	hoistCmd.Flags().IntP("jobs", "j", 4, "number of units hoisted in parallel")
	hoistCmd.Flags().StringP("output", "o", "", "write output to a file instead of stdout")
}

func runHoist(cmd *cobra.Command, args []string) (err error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("failed to create output: %w", cerr)
		}
		defer closeOutput(f, &err)
		w = f
	}

	results, err := hoistUnits(cmd.Context(), s, args)
	if err != nil {
		return err
	}
	return writeResults(w, s.project.CLI.Format, results)
}

// closeOutput closes c and reports its error through *err unless an earlier
// error is already set.
func closeOutput(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close output: %w", cerr)
	}
}

// hoistUnits compiles every unit with its own pool, at most CLI.Jobs at a time
func hoistUnits(ctx context.Context, s *settings, paths []string) ([]*unit.Result, error) {
	results := make([]*unit.Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.project.CLI.Jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := hoistUnit(s, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func hoistUnit(s *settings, path string) (*unit.Result, error) {
	f, err := unit.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := unit.Compile(f, s.poolConfig())
	if err != nil {
		return nil, err
	}
	s.logger.Printf("%s: %d requests, %d declarations hoisted", f.Name, len(f.Requests), len(res.Manifest.Declarations))
	return res, nil
}

func writeResults(w io.Writer, format string, results []*unit.Result) error {
	for _, res := range results {
		switch format {
		case "msgpack":
			if err := res.Manifest.EncodeMsgpack(w); err != nil {
				return err
			}
		default:
			if err := printResult(w, res); err != nil {
				return err
			}
		}
	}
	return nil
}
