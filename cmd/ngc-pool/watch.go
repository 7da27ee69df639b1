package main

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"ngc-pool/packages/compiler/src/unit"
)

var watchCmd = &cobra.Command{
	Use:   "watch <unit.toml>...",
	Short: "Hoist unit files again whenever they change",
	Long: `Watch hoists every unit once, then re-hoists a unit each time its file is
written, created or renamed into place. Each run uses a fresh pool.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("format", "text", "output format (text|msgpack)")
	watchCmd.Flags().IntP("jobs", "j", 4, "number of units hoisted in parallel")
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	results, err := hoistUnits(cmd.Context(), s, args)
	if err != nil {
		s.logger.Printf("initial hoist failed: %v", err)
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	} else if err := writeResults(w, s.project.CLI.Format, results); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them, so watch the
	// directories and filter on the unit paths.
	tracked := make(map[string]bool, len(args))
	dirs := make(map[string]bool)
	for _, path := range args {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		tracked[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, ok := rehoistTarget(ev, tracked)
			if !ok {
				continue
			}
			s.logger.Printf("%s changed (%s)", ev.Name, ev.Op)
			res, err := hoistUnit(s, abs)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				continue
			}
			if err := writeResults(w, s.project.CLI.Format, []*unit.Result{res}); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Printf("watch error: %v", err)
		}
	}
}

// rehoistTarget reports whether ev should re-hoist one of the tracked units,
// and returns that unit's absolute path.
func rehoistTarget(ev fsnotify.Event, tracked map[string]bool) (string, bool) {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return "", false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil || !tracked[abs] {
		return "", false
	}
	return abs, true
}
