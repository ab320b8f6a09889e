package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

var (
	searchLimit     int
	searchJSON      bool
	searchMediaType string
	searchProviders []string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stock media providers",
	Long: `Searches every configured provider for photos or videos matching the query.

A provider that fails is listed with an error row instead of aborting the
search. Providers without an API key are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "results per provider (0 = configured default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchMediaType, "type", "", "media type: photo or video (default from config)")
	searchCmd.Flags().StringSliceVarP(&searchProviders, "provider", "p", nil, "restrict to these providers")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := requireService(mediaService != nil, "media"); err != nil {
		return err
	}
	query := strings.Join(args, " ")

	opts, err := mediaSearchOptions(searchMediaType, searchLimit, searchProviders)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	results, err := mediaService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, results)
	}
	printResults(cmd, results)
	return nil
}

// mediaSearchOptions fills unset values from the configured search settings.
func mediaSearchOptions(mediaType string, limit int, providers []string) (domain.MediaSearchOptions, error) {
	opts := domain.MediaSearchOptions{Limit: limit, Providers: providers}
	var configured domain.SearchSettings
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			configured = settings.Search
		}
	}
	if opts.Limit <= 0 {
		opts.Limit = configured.PerProvider
	}
	if mediaType == "" {
		opts.MediaType = configured.MediaType
	} else {
		mt, err := domain.ParseMediaType(mediaType)
		if err != nil {
			return opts, fmt.Errorf("%w: %s", err, mediaType)
		}
		opts.MediaType = mt
	}
	return opts.WithDefaults(), nil
}

func printResults(cmd *cobra.Command, results []domain.MediaResult) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}
	rows := make([][]string, 0, len(results))
	for i, r := range results {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Provider,
			truncate(r.Title, 48),
			r.Author,
			resultDuration(r),
			r.URL,
		})
	}
	cmd.Println(renderTable(
		[]string{"#", "Provider", "Title", "Author", "Length", "URL"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
	))
}

func resultDuration(r domain.MediaResult) string {
	if r.Duration <= 0 {
		return ""
	}
	return strconv.FormatFloat(r.Duration, 'f', 0, 64) + "s"
}
