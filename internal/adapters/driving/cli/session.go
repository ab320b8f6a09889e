package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// defaultSessionFile is used when no --output is given.
const defaultSessionFile = "session.vmt.json"

var (
	sessionOutput    string
	sessionMediaType string
	sessionBatch     bool
	sessionText      string
	sessionJSON      bool
	sessionProviders []string
	sessionLimit     int
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage working sessions",
	Long: `A session file keeps the transcript, its queries and the asset chosen
for each query so a selection can be built up over several runs.`,
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create [file]",
	Short: "Analyse a transcript and start a session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionCreate,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show [session-file]",
	Short: "Show queries and selections",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionShow,
}

var sessionSelectCmd = &cobra.Command{
	Use:   "select [session-file] [query] [result-number]",
	Short: "Search a query and keep one result",
	Long: `Searches the providers for query and records the numbered result as the
selection. Run without a result number to list the candidates first.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runSessionSelect,
}

var sessionDeselectCmd = &cobra.Command{
	Use:   "deselect [session-file] [query]",
	Short: "Remove the selection for a query",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionDeselect,
}

func init() {
	sessionCreateCmd.Flags().StringVarP(&sessionOutput, "output", "o", defaultSessionFile, "session file to write")
	sessionCreateCmd.Flags().StringVar(&sessionMediaType, "type", "", "media type: photo or video (default from config)")
	sessionCreateCmd.Flags().BoolVar(&sessionBatch, "batch", false, "analyse each line separately")
	sessionCreateCmd.Flags().StringVarP(&sessionText, "text", "t", "", "analyse this text instead of a file")
	sessionShowCmd.Flags().BoolVar(&sessionJSON, "json", false, "output the session as JSON")
	sessionSelectCmd.Flags().StringSliceVarP(&sessionProviders, "provider", "p", nil, "restrict to these providers")
	sessionSelectCmd.Flags().IntVarP(&sessionLimit, "limit", "n", 0, "results per provider (0 = configured default)")

	sessionCmd.AddCommand(sessionCreateCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionSelectCmd)
	sessionCmd.AddCommand(sessionDeselectCmd)
	rootCmd.AddCommand(sessionCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runSessionCreate(cmd *cobra.Command, args []string) error {
	if err := requireService(analysisService != nil && sessionService != nil, "session"); err != nil {
		return err
	}
	ctx := commandContext(cmd)

	text, err := readInput(ctx, cmd, args, sessionText)
	if err != nil {
		return err
	}
	opts, err := analysisOptions(ctx)
	if err != nil {
		return err
	}

	var queries []string
	if sessionBatch {
		qs, err := analysisService.AnalyzeBatch(ctx, text, opts)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		for _, q := range qs {
			queries = append(queries, q.Text)
		}
	} else {
		result, err := analysisService.Analyze(ctx, text, opts)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		queries = result.QueryTexts()
	}

	searchOpts, err := mediaSearchOptions(sessionMediaType, 0, nil)
	if err != nil {
		return err
	}
	session, err := sessionService.Create(ctx, text, queries, searchOpts.MediaType)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if err := sessionService.Save(ctx, sessionOutput, session); err != nil {
		return err
	}

	cmd.Printf("Session %s created with %d queries\n", session.ID, len(session.Queries))
	cmd.Printf("Saved to %s\n", sessionOutput)
	return nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	if err := requireService(sessionService != nil, "session"); err != nil {
		return err
	}
	session, err := sessionService.Load(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	if sessionJSON {
		return printJSON(cmd, session)
	}

	cmd.Printf("Session:    %s\n", session.ID)
	cmd.Printf("Media type: %s\n", session.MediaType)
	cmd.Printf("Selected:   %d of %d queries\n", len(session.Selected), len(session.Queries))
	cmd.Println()

	rows := make([][]string, 0, len(session.Queries))
	for i, q := range session.Queries {
		row := []string{strconv.Itoa(i + 1), q, "", ""}
		if item, ok := session.Selected[q]; ok {
			row[2] = item.Provider
			row[3] = truncate(item.Title, 48)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		cmd.Println("No queries in session.")
		return nil
	}
	cmd.Println(renderTable([]string{"#", "Query", "Provider", "Selection"}, rows, []columnAlignment{alignRight}))
	return nil
}

func runSessionSelect(cmd *cobra.Command, args []string) error {
	if err := requireService(sessionService != nil && mediaService != nil, "session"); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	path, query := args[0], strings.TrimSpace(args[1])

	session, err := sessionService.Load(ctx, path)
	if err != nil {
		return err
	}
	opts, err := mediaSearchOptions(string(session.MediaType), sessionLimit, sessionProviders)
	if err != nil {
		return err
	}
	results, err := mediaService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(args) == 2 {
		printResults(cmd, results)
		return nil
	}

	n, err := strconv.Atoi(args[2])
	if err != nil || n < 1 || n > len(results) {
		return fmt.Errorf("%w: result number must be between 1 and %d", domain.ErrInvalidInput, len(results))
	}
	item := results[n-1]
	if err := sessionService.Select(ctx, session, query, item); err != nil {
		return err
	}
	if err := sessionService.Save(ctx, path, session); err != nil {
		return err
	}
	cmd.Printf("Selected %q from %s for %q\n", item.Title, item.Provider, query)
	return nil
}

func runSessionDeselect(cmd *cobra.Command, args []string) error {
	if err := requireService(sessionService != nil, "session"); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	session, err := sessionService.Load(ctx, args[0])
	if err != nil {
		return err
	}
	query := strings.TrimSpace(args[1])
	if _, ok := session.Selected[query]; !ok {
		return errors.New("no selection for " + strconv.Quote(query))
	}
	session.Deselect(query)
	if err := sessionService.Save(ctx, args[0], session); err != nil {
		return err
	}
	cmd.Printf("Removed selection for %q\n", query)
	return nil
}
