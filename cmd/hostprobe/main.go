package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sigreer/hostprobe/internal/collector"
	"github.com/sigreer/hostprobe/internal/config"
	"github.com/sigreer/hostprobe/internal/db"
	"github.com/sigreer/hostprobe/internal/output"
	"github.com/sigreer/hostprobe/internal/runner"
	"github.com/sigreer/hostprobe/internal/version"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hostprobe",
	Short: "Collect a hardware and software inventory of this host",
	Long: `hostprobe runs a fixed set of system probes (lspci, lsblk, lscpu, lsmod,
xinput, xrandr, /proc, DMI and more) and prints the result as one JSON
document. Probes whose tool is missing or whose output cannot be parsed
degrade to empty values; the document always has the same shape.

Examples:
  hostprobe                  # compact JSON
  hostprobe --pretty         # indented JSON
  hostprobe --indent=2       # indented by two spaces
  hostprobe --save           # also record the document in the history DB`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run:           runProbe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hostprobe version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("hostprobe", version.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/hostprobe/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log probe failures to stderr")
	rootCmd.PersistentFlags().Bool("pretty", false, "indent the JSON document")
	rootCmd.PersistentFlags().Int("indent", 4, "spaces per indent level (implies --pretty)")

	rootCmd.Flags().Bool("save", false, "record the document in the snapshot history")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runProbe(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()

	data := newCollector(cfg, logger).Collect(cmd.Context())

	pretty, indent, err := outputOptions(cmd.Flags(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := output.WriteJSON(os.Stdout, data, pretty, indent); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing document: %v\n", err)
		os.Exit(1)
	}

	save, _ := cmd.Flags().GetBool("save")
	if !save && !cfg.History.Enabled {
		return
	}
	id, err := saveSnapshot(cmd.Context(), cfg, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving snapshot: %v\n", err)
		os.Exit(1)
	}
	logger.Info("snapshot saved", "id", id, "path", cfg.History.Path)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := collector.ValidateSkip(cfg.Skip); err != nil {
		fmt.Fprintf(os.Stderr, "Error in config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newCollector(cfg *config.Config, logger *slog.Logger) *collector.Collector {
	r := runner.New(cfg.Timeout(), logger)
	return collector.New(r, collector.WithLogger(logger), collector.WithSkip(cfg.Skip...))
}

// outputOptions merges the presentation flags over the config file.
// An explicit --indent turns on pretty output.
func outputOptions(flags *pflag.FlagSet, cfg *config.Config) (bool, int, error) {
	pretty := cfg.Output.Pretty
	indent := cfg.Output.Indent

	if flags.Changed("pretty") {
		pretty, _ = flags.GetBool("pretty")
	}
	if flags.Changed("indent") {
		n, err := flags.GetInt("indent")
		if err != nil {
			return false, 0, err
		}
		if n < 0 {
			return false, 0, fmt.Errorf("invalid indent %d: must not be negative", n)
		}
		pretty = true
		indent = n
	}

	return pretty, indent, nil
}

func saveSnapshot(ctx context.Context, cfg *config.Config, data *collector.SystemData) (string, error) {
	database, err := db.New(cfg.History.Path)
	if err != nil {
		return "", err
	}
	defer database.Close()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	snapshot, err := db.NewSnapshot(hostname, data)
	if err != nil {
		return "", err
	}
	return database.SaveSnapshot(ctx, snapshot)
}
