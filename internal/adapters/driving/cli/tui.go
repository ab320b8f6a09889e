package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui"
	"github.com/custodia-labs/vmt/internal/core/domain"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [session-file]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for vmt.

Paste a transcript, review the generated queries, search each one and pick
an asset, then export the selection. Pass a session file to resume it.

Controls:
  ↑/k, ↓/j - Navigate
  ctrl+s   - Analyse the transcript
  Enter    - Search / Select
  /        - Add or refine a query
  x        - Clear the pick for a query
  t        - Switch between photos and videos
  e        - Export
  Esc      - Back
  q        - Quit (from the menu)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx := commandContext(cmd)
	ports := &tui.Ports{
		Analysis: analysisService,
		Media:    mediaService,
		Session:  sessionService,
		Export:   exportService,
		Settings: settingsService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	if len(args) == 1 {
		session, err := loadSessionForTUI(cmd, args[0])
		if err != nil {
			return err
		}
		app.WithSession(session)
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func loadSessionForTUI(cmd *cobra.Command, path string) (*domain.Session, error) {
	if err := requireService(sessionService != nil, "session"); err != nil {
		return nil, err
	}
	session, err := sessionService.Load(commandContext(cmd), path)
	if err != nil {
		return nil, err
	}
	return session, nil
}
