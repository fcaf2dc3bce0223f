package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amehta/credlens/internal/analyzer"
	"github.com/amehta/credlens/internal/config"
	"github.com/amehta/credlens/internal/tui"
)

var (
	cfgFile     string
	noAltScreen bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "credlens",
	Short: "CredLens - content credibility checks from your terminal",
	Long: `CredLens submits URLs, pasted text, or documents to a content
credibility analysis service and renders the verdict: a 0-100 score,
a summary of claims, and any manipulative techniques the service flagged.

Running credlens with no subcommand opens the interactive TUI.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("credlens v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.credlens/config.yaml)")
	rootCmd.PersistentFlags().String("endpoint", "", "analysis service base URL")
	rootCmd.PersistentFlags().Bool("no-cache", false, "disable verdict reuse for identical inputs")
	rootCmd.PersistentFlags().Bool("debug", false, "write job logs to $HOME/.credlens/debug.log")
	rootCmd.Flags().BoolVar(&noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")

	// Bind flags to viper
	_ = viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag("no_cache", rootCmd.PersistentFlags().Lookup("no-cache"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".credlens"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("CREDLENS")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func loadedConfig() config.Config {
	return config.Load(viper.GetViper())
}

func buildClient(cfg config.Config) *analyzer.Client {
	var cache *analyzer.VerdictCache
	if !cfg.NoCache {
		cache = analyzer.NewVerdictCache(cfg.CacheTTL)
	}
	return analyzer.New(analyzer.Config{
		BaseURL:       cfg.Endpoint,
		SubmitTimeout: cfg.SubmitTimeout,
		UploadTimeout: cfg.UploadTimeout,
		Cache:         cache,
	})
}

func runTUI() error {
	cfg := loadedConfig()

	if cfg.Debug {
		home, err := os.UserHomeDir()
		if err == nil {
			dir := filepath.Join(home, ".credlens")
			if err := os.MkdirAll(dir, 0o755); err == nil {
				if logFile, err := tea.LogToFile(filepath.Join(dir, "debug.log"), "debug"); err == nil {
					defer logFile.Close()
				}
			}
		}
	}

	opts := []tea.ProgramOption{}
	if !noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Client:      buildClient(cfg),
			HistoryPath: cfg.HistoryPath,
		}),
		opts...,
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
