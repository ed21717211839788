package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/GoCodeAlone/modgraph"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command
func NewCheckCommand(opts *globalOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check <manifest>",
		Short: "Build a manifest's module graph and report errors",
		Long: `Check compiles a module manifest with placeholder constructors and builds
its module graph. For every module it prints the construction order of its
providers and its exports, imports first.

Examples:
  modgraph check graph.yaml
  modgraph check --watch graph.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return watchManifest(cmd, opts, args[0])
			}
			return runCheck(cmd.OutOrStdout(), opts, args[0])
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-check whenever the manifest changes")

	return cmd
}

func runCheck(out io.Writer, opts *globalOptions, path string) error {
	app, err := opts.buildApplication(path)
	if err != nil {
		return err
	}
	modules, err := app.Modules()
	if err != nil {
		return err
	}
	printModules(out, modules)
	fmt.Fprintf(out, "OK: %d modules\n", len(modules))
	return nil
}

func printModules(out io.Writer, modules []modgraph.ModuleSnapshot) {
	for _, m := range modules {
		header := "module " + m.Name
		if m.Global {
			header += " (global)"
		}
		fmt.Fprintln(out, header)
		if len(m.Imports) > 0 {
			fmt.Fprintf(out, "  imports: %s\n", strings.Join(m.Imports, ", "))
		}
		fmt.Fprintf(out, "  order:   %s\n", joinIdentities(m.Order))
		fmt.Fprintf(out, "  exports: %s\n", joinIdentities(m.Exports))
	}
}

func joinIdentities(ids []modgraph.Identity) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}

// watchManifest checks the manifest, then again after every write until the
// command context is cancelled. Check failures are reported and do not stop
// the watch. The directory is watched because editors often replace files.
func watchManifest(cmd *cobra.Command, opts *globalOptions, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	check := func() {
		if err := runCheck(out, opts, path); err != nil {
			fmt.Fprintf(out, "FAIL: %s\n", err)
		}
	}
	check()

	target := filepath.Clean(path)
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			opts.logger.Debug("Manifest changed", "path", path, "op", event.Op.String())
			check()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			opts.logger.Error("Watcher error", "error", err)
		}
	}
}
