package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/djglass/ed-colony-construction-tracker/cmd/colonytracker/ui"
	"github.com/djglass/ed-colony-construction-tracker/internal/config"
	"github.com/djglass/ed-colony-construction-tracker/internal/export"
	"github.com/djglass/ed-colony-construction-tracker/internal/journal"
	"github.com/djglass/ed-colony-construction-tracker/internal/logging"
	"github.com/djglass/ed-colony-construction-tracker/internal/ocr"
	"github.com/djglass/ed-colony-construction-tracker/internal/progress"
	"github.com/djglass/ed-colony-construction-tracker/internal/tracker"
)

var version = "dev"

var (
	// Global flags
	cfgPath    string
	journalDir string
	filterMode string
	verbose    bool
	noWatch    bool

	// scan flags
	csvPath  string
	sortBy   string
	sortDesc bool
)

var rootCmd = &cobra.Command{
	Use:   "colonytracker [screenshot...]",
	Short: "Track commodity deliveries for Elite Dangerous colony construction",
	Long: `colonytracker reconciles two noisy sources into one progress table:

  1. Construction requirement screenshots, read with OCR.
  2. Journal MarketSell events, which record deliveries.

Pass requirement screenshots as arguments. Without screenshots the table is
empty: the tracker only shows commodities the current project requires.

Run without a subcommand to open the interactive table.`,
	Args: cobra.ArbitraryArgs,
	RunE: runInteractive,
}

var scanCmd = &cobra.Command{
	Use:   "scan [screenshot...]",
	Short: "One-shot scan: print the progress table or export it to CSV",
	Args:  cobra.ArbitraryArgs,
	RunE:  runScan,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tracker version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("colonytracker", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&journalDir, "journal-dir", "", "journal directory (default: game save location)")
	rootCmd.PersistentFlags().StringVar(&filterMode, "filter", "", "startup filter: all, incomplete or complete")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "disable live journal watching")

	scanCmd.Flags().StringVar(&csvPath, "csv", "", "write the table to this CSV file instead of stdout")
	scanCmd.Flags().StringVar(&sortBy, "sort", "", "sort column: commodity, delivered, required or remaining")
	scanCmd.Flags().BoolVar(&sortDesc, "desc", false, "sort descending")

	rootCmd.AddCommand(scanCmd, versionCmd)
}

// loadConfig applies flag overrides on top of the config file.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, err
	}
	if journalDir != "" {
		cfg.JournalDir = journalDir
	}
	if filterMode != "" {
		cfg.Filter = filterMode
	}
	return cfg, nil
}

func buildTracker(cfg config.Config, log *zap.Logger) *tracker.Tracker {
	rec := ocr.Tesseract{Binary: cfg.OCR.Binary, Args: cfg.OCR.Args}
	scanner := journal.NewScanner(cfg.JournalDir, log.Named("journal"))
	return tracker.New(rec, scanner, log.Named("tracker"))
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; logs go to a file next to the config.
	logPath := filepath.Join(os.TempDir(), "colonytracker.log")
	if dir := config.DefaultPath(); dir != "" {
		logPath = filepath.Join(filepath.Dir(dir), "colonytracker.log")
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			logPath = filepath.Join(os.TempDir(), "colonytracker.log")
		}
	}
	log, err := logging.NewFile(logPath, verbose)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	tr := buildTracker(cfg, log)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var watchCh chan struct{}
	if cfg.Watch.Enabled && !noWatch {
		watchCh = make(chan struct{}, 1)
		w, err := journal.NewWatcher(cfg.JournalDir, cfg.DebounceDuration(), func() {
			select {
			case watchCh <- struct{}{}:
			default:
			}
		}, log.Named("watcher"))
		if err != nil {
			return fmt.Errorf("create journal watcher: %w", err)
		}
		if err := w.Start(ctx); err != nil {
			// The journal directory may not exist yet; the tracker still
			// works, it just will not live-update.
			log.Warn("journal watching disabled", zap.Error(err))
			watchCh = nil
		} else {
			defer w.Stop()
		}
	}

	return ui.Run(tr, args, progress.ParseFilter(cfg.Filter), watchCh)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := logging.New(verbose)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	tr := buildTracker(cfg, log)
	warnings, err := tr.Refresh(cmd.Context(), args)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	rows := tr.Rows(progress.ParseFilter(cfg.Filter))
	if sortBy != "" {
		col, err := progress.ParseColumn(sortBy)
		if err != nil {
			return err
		}
		rows = progress.Sort(rows, col, sortDesc)
	}

	if csvPath != "" {
		if err := export.WriteFile(csvPath, rows); err != nil {
			return err
		}
		fmt.Println("exported", len(rows), "rows to", csvPath)
		return nil
	}

	fmt.Print(ui.RenderTextTable(rows, ui.NewStyles()))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
