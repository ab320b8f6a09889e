package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

var (
	analyzeJSON        bool
	analyzeBatch       bool
	analyzeWatch       bool
	analyzeDetails     bool
	analyzeText        string
	analyzeLexicon     string
	analyzeMaxQueries  int
	analyzeMaxKeywords int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Generate search queries from a transcript",
	Long: `Analyses transcript text and prints ranked stock-media search queries.

Input is read from the file argument, the --text flag, or standard input
when it is piped. Plain text, Markdown, DOCX, SRT, WebVTT and OTIO
timelines are recognised by extension.

Examples:
  vmt analyze script.txt
  vmt analyze --batch cues.srt
  echo "A deer walks through the misty forest" | vmt analyze --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the analysis as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeBatch, "batch", false, "analyse each line separately and merge the queries")
	analyzeCmd.Flags().BoolVarP(&analyzeWatch, "watch", "w", false, "re-run whenever the file changes")
	analyzeCmd.Flags().BoolVar(&analyzeDetails, "details", false, "also print keywords, entities, actions and emotions")
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "analyse this text instead of a file")
	analyzeCmd.Flags().StringVar(&analyzeLexicon, "lexicon", "", "lexicon override file (.toml, .yaml or .json)")
	analyzeCmd.Flags().IntVarP(&analyzeMaxQueries, "max-queries", "n", 0, "maximum number of queries (0 = configured default)")
	analyzeCmd.Flags().IntVar(&analyzeMaxKeywords, "max-keywords", 0, "maximum number of keywords (0 = configured default)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := requireService(analysisService != nil, "analysis"); err != nil {
		return err
	}
	ctx := commandContext(cmd)

	opts, err := analysisOptions(ctx)
	if err != nil {
		return err
	}

	if analyzeWatch {
		if len(args) == 0 {
			return errors.New("--watch needs a file argument")
		}
		return watchAnalyze(ctx, cmd, args[0], opts)
	}

	text, err := readInput(ctx, cmd, args, analyzeText)
	if err != nil {
		return err
	}
	return analyzeAndPrint(ctx, cmd, text, opts)
}

func analyzeAndPrint(ctx context.Context, cmd *cobra.Command, text string, opts domain.AnalysisOptions) error {
	if analyzeBatch {
		queries, err := analysisService.AnalyzeBatch(ctx, text, opts)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		if analyzeJSON {
			return printJSON(cmd, queries)
		}
		printQueries(cmd, queries)
		return nil
	}

	result, err := analysisService.Analyze(ctx, text, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if analyzeJSON {
		return printJSON(cmd, result)
	}
	if analyzeDetails {
		printDetails(cmd, result)
	}
	printQueries(cmd, result.Queries)
	return nil
}

func watchAnalyze(ctx context.Context, cmd *cobra.Command, path string, opts domain.AnalysisOptions) error {
	if err := requireService(fileWatcher != nil, "file watcher"); err != nil {
		return err
	}
	changes, err := fileWatcher.Watch(ctx, path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	run := func() {
		text, err := readInput(ctx, cmd, []string{path}, "")
		if err == nil {
			err = analyzeAndPrint(ctx, cmd, text, opts)
		}
		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
		}
	}

	run()
	cmd.PrintErrf("Watching %s (Ctrl+C to stop)\n", path)
	for range changes {
		cmd.Println()
		run()
	}
	return nil
}

// analysisOptions merges configured defaults, the lexicon file and flags.
func analysisOptions(ctx context.Context) (domain.AnalysisOptions, error) {
	opts := domain.AnalysisOptions{}
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			opts = settings.AnalysisOptions()
		}
	}
	if analyzeMaxQueries != 0 {
		opts.MaxQueries = analyzeMaxQueries
	}
	if analyzeMaxKeywords != 0 {
		opts.MaxKeywords = analyzeMaxKeywords
	}
	if analyzeLexicon != "" {
		if err := requireService(lexiconLoader != nil, "lexicon"); err != nil {
			return opts, err
		}
		lf, err := lexiconLoader.Load(ctx, analyzeLexicon)
		if err != nil {
			return opts, fmt.Errorf("load lexicon: %w", err)
		}
		opts = lf.Apply(opts)
	}
	return opts, nil
}

// readInput returns the text to analyse from the inline flag, the file
// argument or piped standard input, in that order.
func readInput(ctx context.Context, cmd *cobra.Command, args []string, inline string) (string, error) {
	if inline != "" {
		return inline, nil
	}

	name := "-"
	if len(args) > 0 {
		name = args[0]
	}

	if name != "-" {
		if loaderService == nil {
			return "", errors.New("loader service not configured")
		}
		t, err := loaderService.LoadFile(ctx, name)
		if err != nil {
			return "", err
		}
		return t.Text, nil
	}

	in := cmd.InOrStdin()
	if interactive(in) {
		return "", errors.New("no input: pass a file, --text, or pipe text on stdin")
	}
	if loaderService != nil {
		t, err := loaderService.LoadReader(ctx, name, in)
		if err != nil {
			return "", err
		}
		return t.Text, nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func printQueries(cmd *cobra.Command, queries []domain.Query) {
	if len(queries) == 0 {
		cmd.Println("No queries generated.")
		return
	}
	rows := make([][]string, 0, len(queries))
	for _, q := range queries {
		rows = append(rows, []string{
			strconv.Itoa(q.Rank),
			q.Text,
			strconv.FormatFloat(q.Score, 'f', 2, 64),
			q.Topic,
			q.Action,
			string(q.Emotion),
		})
	}
	cmd.Println(renderTable(
		[]string{"#", "Query", "Score", "Topic", "Action", "Emotion"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight},
	))
}

func printDetails(cmd *cobra.Command, a *domain.Analysis) {
	rows := make([][]string, 0, len(a.Keywords))
	for _, k := range a.Keywords {
		rows = append(rows, []string{k.Phrase(), strconv.FormatFloat(k.Score, 'f', 2, 64), strconv.Itoa(k.Frequency)})
	}
	if len(rows) > 0 {
		cmd.Println(renderTable([]string{"Keyword", "Score", "Freq"}, rows, []columnAlignment{alignLeft, alignRight, alignRight}))
	}

	cmd.Printf("Entities: %s\n", joinTerms(a.Entities))
	cmd.Printf("Actions:  %s\n", joinTerms(a.Actions))
	emotions := make([]string, 0, len(a.Emotions))
	for _, e := range a.Emotions {
		emotions = append(emotions, fmt.Sprintf("%s (%d)", e.Label, e.Count))
	}
	cmd.Printf("Emotions: %s\n", strings.Join(emotions, ", "))
	cmd.Println()
}

func joinTerms(terms []domain.Term) string {
	if len(terms) == 0 {
		return "-"
	}
	words := make([]string, len(terms))
	for i, t := range terms {
		words[i] = t.Text
	}
	return strings.Join(words, ", ")
}
