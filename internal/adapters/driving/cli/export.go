package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export [session-file]",
	Short: "Export a session's selections",
	Long: `Writes the selections of a session file.

Formats:
  csv       cue sheet with one row per selection
  json      selection rows as a JSON array
  shotlist  numbered shot list CSV
  docx      shot list document
  sqlite    single-file database bundle
  all       every format, next to the configured export base name`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(domain.ExportCSV), "export format")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (default from export settings)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := requireService(sessionService != nil && exportService != nil, "export"); err != nil {
		return err
	}
	ctx := commandContext(cmd)

	session, err := sessionService.Load(ctx, args[0])
	if err != nil {
		return err
	}

	formats, err := exportFormats(exportFormat)
	if err != nil {
		return err
	}
	if len(formats) > 1 && exportOutput != "" {
		return fmt.Errorf("%w: --output cannot be combined with --format all", domain.ErrInvalidInput)
	}

	for _, f := range formats {
		path, err := exportService.Export(ctx, session, f, exportOutput)
		if err != nil {
			return err
		}
		cmd.Printf("Exported %s: %s\n", f, path)
	}
	return nil
}

func exportFormats(name string) ([]domain.ExportFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "all" {
		return exportService.Formats(), nil
	}
	f := domain.ExportFormat(name)
	if !f.IsValid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, name)
	}
	return []domain.ExportFormat{f}, nil
}
