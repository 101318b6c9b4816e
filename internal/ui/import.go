package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskpilot/internal/importer"
	"github.com/javiermolinar/taskpilot/internal/task"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file.yaml]",
		Short: "Import tasks from a YAML file",
		Long: `Import tasks from a YAML document with a top-level "tasks" list.

Each entry needs a title, a label and a deadline. start defaults to the
deadline, weight to 1. The whole file is rejected if any entry is invalid
or an id is already stored.`,
		Example: `  taskpilot import ~/semester.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			count, err := a.importTasks(cmd.Context(), path)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks from %s\n", count, path)
			return nil
		},
	}

	return cmd
}

// importTasks stores every task of the file in one transaction, then adds
// them to the in-memory store.
func (a *App) importTasks(ctx context.Context, path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("import file does not exist: %s", path)
		}
		return 0, fmt.Errorf("checking import file: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("import path is a directory: %s", path)
	}

	now := a.now()
	tasks, err := importer.LoadFile(path, now)
	if err != nil {
		return 0, err
	}
	for _, t := range tasks {
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
	}

	if err := a.repo.CreateTasks(ctx, tasks); err != nil {
		return 0, fmt.Errorf("storing imported tasks: %w", err)
	}
	if err := a.addAll(tasks); err != nil {
		return 0, err
	}

	a.logger.Info("imported tasks", "count", len(tasks), "path", path)
	return len(tasks), nil
}

// addAll adds already persisted tasks to the store and rebuilds the index.
func (a *App) addAll(tasks []*task.Task) error {
	for _, t := range tasks {
		if err := a.store.Add(t); err != nil {
			return err
		}
	}
	a.reindex()
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
