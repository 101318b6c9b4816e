package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskpilot/internal/config"
	"github.com/javiermolinar/taskpilot/internal/db"
	"github.com/javiermolinar/taskpilot/internal/index"
	"github.com/javiermolinar/taskpilot/internal/task"
	"github.com/javiermolinar/taskpilot/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo    task.Repository
	config  *config.Config
	root    *cobra.Command
	logger  *log.Logger
	store   *task.Store
	idx     *index.Index
	now     func() time.Time
	debug   bool
	noColor bool
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo task.Repository, cfg *config.Config) *App {
	a := &App{
		repo:   repo,
		config: cfg,
		logger: NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format),
		now:    time.Now,
	}

	a.root = &cobra.Command{
		Use:   "taskpilot",
		Short: "Prioritize, schedule and analyze deadline-bound tasks",
		Long: `Taskpilot keeps a list of personal and academic tasks, each with a start
time, a deadline and a priority weight.

It answers what is due next, picks the highest-value set of tasks that
do not overlap, and shows where deadlines pile up.

Run without a subcommand to open the interactive menu.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
			if a.debug {
				a.logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			return tui.Run(a.menu(cmd.Context()), tui.WithTheme(a.config.UI.Theme))
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.sweepCmd())
	a.root.AddCommand(a.nextCmd())
	a.root.AddCommand(a.dueCmd())
	a.root.AddCommand(a.scheduleCmd())
	a.root.AddCommand(a.densityCmd())
	a.root.AddCommand(a.reportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.demoCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taskpilot %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.ExecuteContext(context.Background())
}

// SetArgs overrides the command line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetOutput redirects command output and errors.
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetLogger replaces the application logger.
func (a *App) SetLogger(l *log.Logger) {
	a.logger = l
}

// SetClock replaces the time source used for "now".
func (a *App) SetClock(now func() time.Time) {
	a.now = now
}

// Close releases the repository, if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// ensureRepo opens the configured database if no repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}

	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.logger.Debug("opened database", "path", path)
	a.repo = repo
	return nil
}

// load rehydrates the in-memory store and index from the repository.
func (a *App) load(ctx context.Context) error {
	if a.store != nil {
		return nil
	}
	if err := a.ensureRepo(); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := task.LoadStore(ctx, a.repo)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	a.store = store
	a.idx = index.New(store)
	a.logger.Debug("loaded tasks", "count", store.Len())
	return nil
}

// reindex rebuilds the index after a mutation.
func (a *App) reindex() {
	a.idx = a.idx.Rebuild()
	a.logger.Debug("rebuilt index", "tasks", a.idx.Len(), "at", a.idx.BuiltAt().Format(time.RFC3339))
}

// persisted writes status changes through the repository before applying
// them to the in-memory store.
type persisted struct {
	ctx   context.Context
	repo  task.Repository
	store *task.Store
}

func (p persisted) UpdateStatus(id string, to task.Status) error {
	if err := p.repo.UpdateStatus(p.ctx, id, to); err != nil {
		return err
	}
	return p.store.UpdateStatus(id, to)
}

func (a *App) updater(ctx context.Context) persisted {
	if ctx == nil {
		ctx = context.Background()
	}
	return persisted{ctx: ctx, repo: a.repo, store: a.store}
}
