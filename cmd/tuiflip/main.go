// Package main provides the CLI entrypoint for tuiflip.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuiflip/internal/audio"
	"github.com/verte-zerg/tuiflip/internal/config"
	"github.com/verte-zerg/tuiflip/internal/generator"
	"github.com/verte-zerg/tuiflip/internal/history"
	"github.com/verte-zerg/tuiflip/internal/logger"
	"github.com/verte-zerg/tuiflip/internal/model"
	"github.com/verte-zerg/tuiflip/internal/stats"
	"github.com/verte-zerg/tuiflip/internal/statsui"
	"github.com/verte-zerg/tuiflip/internal/store"
	"github.com/verte-zerg/tuiflip/internal/tui"
)

const (
	defaultCoins      = model.MinCoins
	defaultCoinType   = string(model.CoinGold)
	defaultRevealMs   = 1500
	defaultMaxHistory = 0
	defaultLogLevel   = "info"
	plainHistoryRows  = 10
)

var (
	flipCoins      int
	flipCoinType   string
	flipHeads      string
	flipTails      string
	flipRevealMs   int
	flipMaxHistory int
	flipMuted      bool
	flipDark       bool

	logLevel string

	statsWindow string
	statsPlain  bool

	clearYes bool

	exportFormat string
	exportOutput string

	importFormat  string
	importReplace bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuiflip",
		Short:         "TUI coin flipper",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runFlipApp,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	addFlipFlags(rootCmd)

	rootCmd.AddCommand(newFlipCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addFlipFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&flipCoins, "coins", "n", defaultCoins, fmt.Sprintf("coins per flip (%d-%d)", model.MinCoins, model.MaxCoins))
	cmd.Flags().StringVar(&flipCoinType, "coin-type", defaultCoinType, "coin appearance (gold, silver, bronze, white, black, blue)")
	cmd.Flags().StringVar(&flipHeads, "heads", "", "display name for heads")
	cmd.Flags().StringVar(&flipTails, "tails", "", "display name for tails")
	cmd.Flags().IntVar(&flipRevealMs, "reveal-ms", defaultRevealMs, "flip animation length in milliseconds")
	cmd.Flags().IntVar(&flipMaxHistory, "max-history", defaultMaxHistory, "keep only the newest N flips (0 keeps all)")
	cmd.Flags().BoolVar(&flipMuted, "mute", false, "disable sounds")
	cmd.Flags().BoolVar(&flipDark, "dark", false, "use the dark theme")
}

func runFlipApp(cmd *cobra.Command, _ []string) error {
	fileCfg, closeLog, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	state, err := st.LoadState(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	cfg, err := resolveFlipConfig(cmd, fileCfg, state)
	if err != nil {
		return err
	}

	out := audio.NewSyncOutput(os.Stdout)
	player := audio.New(out, cfg.Muted)
	m := tui.NewModel(cfg, st, state, generator.New(), player)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newFlipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flip",
		Short: "Flip coins without the TUI",
		Args:  cobra.NoArgs,
		RunE:  runFlipCmd,
	}
	addFlipFlags(cmd)
	return cmd
}

func runFlipCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	state, err := st.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	cfg, err := resolveFlipConfig(cmd, fileCfg, state)
	if err != nil {
		return err
	}

	batch, err := generator.New().Batch(cfg.Coins)
	if err != nil {
		return err
	}
	h := history.Trim(history.Append(state.History, batch), cfg.MaxHistory)
	if err := st.SaveHistory(ctx, h); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	audio.New(cmd.ErrOrStderr(), cfg.Muted).Result()
	return printBatch(cmd.OutOrStdout(), batch, cfg.Labels)
}

func printBatch(w io.Writer, batch []model.FlipRecord, labels model.Labels) error {
	heads := 0
	for _, rec := range batch {
		if rec.Outcome == model.Heads {
			heads++
		}
		if _, err := fmt.Fprintln(w, labels.Label(rec.Outcome)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if len(batch) > 1 {
		if _, err := fmt.Fprintf(w, "%d %s / %d %s\n", heads, labels.Heads, len(batch)-heads, labels.Tails); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsWindow, "window", "all", "time window (all, today, week, month)")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	window, err := model.ParseTimeWindow(statsWindow)
	if err != nil {
		return fmt.Errorf("invalid --window value: %w", err)
	}
	_, closeLog, err := setup(cmd, !statsPlain)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	cfg := model.StatsConfig{Window: window, Plain: statsPlain}
	if cfg.Plain {
		return printStats(cmd.OutOrStdout(), st, cfg)
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func printStats(w io.Writer, st *store.Store, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(context.Background(), st, cfg, time.Now())
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := stats.RenderSummary(w, report.View); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if report.View.TotalFlips == 0 {
		return nil
	}
	if err := stats.RenderRunsTable(w, report.Runs, report.View.Labels); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderHistoryTable(w, report.View.Filtered, report.View.Labels, plainHistoryRows); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderTrend(w, report.View, 1, 0, 0, false); err != nil {
		return fmt.Errorf("failed to render trend: %w", err)
	}
	return nil
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded flips",
		Args:  cobra.NoArgs,
		RunE:  runClearCmd,
	}
	cmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func runClearCmd(cmd *cobra.Command, _ []string) error {
	_, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	state, err := st.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	if len(state.History) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clear.")
		return err
	}
	if !clearYes {
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Clear %d recorded flips? [y/N] ", len(state.History)))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	if err := st.SaveHistory(ctx, history.Clear()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	logger.Info("cleared %d flips", len(state.History))
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recorded flips",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", store.FormatJSON, "output format (json, yaml)")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	_, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	state, err := st.LoadState(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	if exportOutput == "" {
		return store.Export(cmd.OutOrStdout(), state.History, exportFormat)
	}
	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := store.Export(f, state.History, exportFormat); err != nil {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close after a failed export.
			_ = cerr
		}
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	logger.Info("exported %d flips to %s", len(state.History), exportOutput)
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import flips from a json or yaml export",
		Long: "Import flips from a json or yaml export.\n\n" +
			"By default the flips are merged into the stored history. Flips already\n" +
			"present (same result and timestamp) are skipped, so importing the same\n" +
			"export twice does not duplicate them. Use --replace to discard the stored\n" +
			"history instead.",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importFormat, "format", "", "input format (json, yaml; default from file extension)")
	cmd.Flags().BoolVar(&importReplace, "replace", false, "replace the existing history instead of merging")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	_, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	path := args[0]
	format := importFormat
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	imported, err := store.Import(f, format)
	if cerr := f.Close(); cerr != nil {
		// Best-effort close of a read-only file.
		_ = cerr
	}
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	state, err := st.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	h := imported
	if !importReplace {
		h = history.Merge(state.History, imported)
	}
	if err := st.SaveHistory(ctx, h); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	added := len(h) - len(state.History)
	if importReplace {
		added = len(h)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d flips (%d total)\n", added, len(h))
	return err
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// setup loads the config file and starts logging. Interactive commands log
// to a file so output does not tear the alternate screen.
func setup(cmd *cobra.Command, interactive bool) (config.FileConfig, func(), error) {
	noop := func() {}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, noop, fmt.Errorf("failed to load config: %w", err)
	}
	level := logLevel
	applyStringConfig(cmd, "log-level", &level, fileCfg.Log.Level)
	if _, ok := logger.ParseLevel(level); !ok {
		return fileCfg, noop, fmt.Errorf("invalid log level %q", level)
	}
	if !interactive {
		logger.Init(level, cmd.ErrOrStderr())
		return fileCfg, noop, nil
	}
	f, err := logger.OpenFile(config.DefaultLogPath())
	if err != nil {
		logger.Warn("logging to stderr: %v", err)
		return fileCfg, noop, nil
	}
	logger.Init(level, f)
	return fileCfg, func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}, nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logger.Error("failed to close db: %v", cerr)
	}
}

// resolveFlipConfig layers the persisted state, the config file and the
// command line flags, in increasing precedence.
func resolveFlipConfig(cmd *cobra.Command, fileCfg config.FileConfig, state model.State) (model.Config, error) {
	coinType := string(state.Preferences.CoinType)
	heads := state.Labels.Heads
	tails := state.Labels.Tails
	coins := state.Preferences.CoinCount
	muted := state.Preferences.Muted
	dark := state.Preferences.DarkMode

	applyStringConfig(cmd, "coin-type", &flipCoinType, &coinType)
	applyStringConfig(cmd, "heads", &flipHeads, &heads)
	applyStringConfig(cmd, "tails", &flipTails, &tails)
	applyIntConfig(cmd, "coins", &flipCoins, &coins)
	applyBoolConfig(cmd, "mute", &flipMuted, &muted)
	applyBoolConfig(cmd, "dark", &flipDark, &dark)

	applyIntConfig(cmd, "coins", &flipCoins, fileCfg.Flip.Coins)
	applyStringConfig(cmd, "coin-type", &flipCoinType, fileCfg.Flip.CoinType)
	applyStringConfig(cmd, "heads", &flipHeads, fileCfg.Flip.Heads)
	applyStringConfig(cmd, "tails", &flipTails, fileCfg.Flip.Tails)
	applyIntConfig(cmd, "reveal-ms", &flipRevealMs, fileCfg.Flip.RevealMs)
	applyIntConfig(cmd, "max-history", &flipMaxHistory, fileCfg.Flip.MaxHistory)
	applyBoolConfig(cmd, "mute", &flipMuted, fileCfg.Flip.Muted)
	applyBoolConfig(cmd, "dark", &flipDark, fileCfg.Flip.Dark)

	ct, ok := model.ParseCoinType(flipCoinType)
	if !ok {
		return model.Config{}, fmt.Errorf("unknown coin type %q", flipCoinType)
	}
	cfg := model.Config{
		Coins:      flipCoins,
		CoinType:   ct,
		Labels:     model.Labels{Heads: flipHeads, Tails: flipTails}.Normalize(),
		RevealMs:   flipRevealMs,
		MaxHistory: flipMaxHistory,
		Muted:      flipMuted,
		DarkMode:   flipDark,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Coins < model.MinCoins || cfg.Coins > model.MaxCoins {
		return fmt.Errorf("--coins must be between %d and %d", model.MinCoins, model.MaxCoins)
	}
	if cfg.RevealMs < 0 {
		return fmt.Errorf("--reveal-ms must be >= 0")
	}
	if cfg.MaxHistory < 0 {
		return fmt.Errorf("--max-history must be >= 0")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuiflip configuration
# Uncomment a value to enable it. CLI flags override config values,
# config values override settings saved from the TUI.

[flip]
# coins = %d              # Coins per flip (%d-%d)
# coin-type = %q       # gold, silver, bronze, white, black, blue
# heads = "Heads"         # Display name for heads
# tails = "Tails"         # Display name for tails
# reveal-ms = %d        # Flip animation length in milliseconds
# max-history = %d        # Keep only the newest N flips (0 keeps all)
# muted = false           # Disable sounds
# dark = false            # Use the dark theme

[log]
# level = %q           # debug, info, warn, error
`,
		defaultCoins,
		model.MinCoins,
		model.MaxCoins,
		defaultCoinType,
		defaultRevealMs,
		defaultMaxHistory,
		defaultLogLevel,
	)
}
