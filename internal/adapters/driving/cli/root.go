// Package cli provides the cobra command tree for vmt.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vmt/internal/core/ports/driven"
	"github.com/custodia-labs/vmt/internal/core/ports/driving"
	"github.com/custodia-labs/vmt/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services groups the ports the commands call into.
type Services struct {
	Analysis driving.AnalysisService
	Media    driving.MediaService
	Loader   driving.LoaderService
	Session  driving.SessionService
	Export   driving.ExportService
	Settings driving.SettingsService
	Lexicons driven.LexiconLoader
	Watcher  driven.FileWatcher
}

// Bootstrap builds the services for a configuration directory.
// An empty directory selects the default location.
type Bootstrap func(configDir string) (*Services, error)

var (
	analysisService driving.AnalysisService
	mediaService    driving.MediaService
	loaderService   driving.LoaderService
	sessionService  driving.SessionService
	exportService   driving.ExportService
	settingsService driving.SettingsService
	lexiconLoader   driven.LexiconLoader
	fileWatcher     driven.FileWatcher

	bootstrap   Bootstrap
	verbose     bool
	logJSON     bool
	configDir   string
	servicesSet bool
)

var rootCmd = &cobra.Command{
	Use:   "vmt",
	Short: "Find stock footage for a transcript",
	Long: `vmt turns transcript text into ranked stock-media search queries,
searches Pexels, Pixabay and Unsplash for matching photos and videos,
and exports the chosen assets as cue sheets and shot lists.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write log lines as JSON records")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.vmt)")
}

// SetServices injects the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	analysisService = s.Analysis
	mediaService = s.Media
	loaderService = s.Loader
	sessionService = s.Session
	exportService = s.Export
	settingsService = s.Settings
	lexiconLoader = s.Lexicons
	fileWatcher = s.Watcher
	servicesSet = true
}

// SetBootstrap registers the function that builds services once flags
// are parsed. It is skipped when SetServices was called directly.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Main runs the root command and exits with a non-zero status on error.
// An interrupt cancels the command context, which ends --watch loops
// and in-flight provider requests.
func Main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetJSON(logJSON)
	if servicesSet || bootstrap == nil {
		return nil
	}
	s, err := bootstrap(configDir)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(s)
	return nil
}

func requireService(ok bool, name string) error {
	if !ok {
		return errors.New(name + " service not configured")
	}
	return nil
}
