package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zhubert/tether/logger"
	"github.com/zhubert/tether/metadata"
	"github.com/zhubert/tether/paths"
	"github.com/zhubert/tether/settings"
)

var (
	debugMode             bool
	quietMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "tether",
	Short: "Track chat sessions and the work directories that own them",
	Long: `Tether keeps chat sessions bound to the directory that created them, even
after that directory is renamed, moved, symlinked, or deleted. Sessions are
stored under a persistent work-directory ID rather than a path, so the
binding survives filesystem churn and can be recovered from session content
when the metadata is lost.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
}

func initLogging() {
	switch {
	case quietMode:
		logger.SetDebug(false)
	case debugMode:
		logger.SetDebug(true)
	default:
		logger.SetDebug(loadSettings().Debug)
	}
}

// loadSettings reads settings.yaml, falling back to defaults on any problem.
// Settings are optional; a broken file should not block session commands.
func loadSettings() *settings.Settings {
	path, err := paths.SettingsFilePath()
	if err != nil {
		return settings.Default()
	}
	s, err := settings.Load(path)
	if err != nil {
		logger.WithComponent("cmd").Warn("ignoring settings file", "error", err)
		return settings.Default()
	}
	return s
}

// loadStore loads the metadata store from the default data directory and
// stamps it with the configured environment tag for any records created
// during this invocation.
func loadStore() (*metadata.Store, error) {
	root, err := paths.DataDir()
	if err != nil {
		return nil, err
	}
	store, err := metadata.Load(root)
	if err != nil {
		return nil, fmt.Errorf("error loading metadata: %w", err)
	}
	store.SetEnvironment(loadSettings().Environment)
	return store, nil
}

// Execute runs the root command
func Execute() error {
	defer logger.Close()

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("tether %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("tether %s\n", version)
}
