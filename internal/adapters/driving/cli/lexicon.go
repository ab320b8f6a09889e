package cli

import (
	"github.com/spf13/cobra"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Inspect analysis lexicons",
}

var lexiconDumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Write the active lexicons to a file",
	Long: `Writes the stopwords, emotion words, entity nouns and action verbs in
effect to a .toml, .yaml or .json file. Edit the file and point
analysis.lexicon_file or --lexicon at it to override the defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: runLexiconDump,
}

func init() {
	lexiconCmd.AddCommand(lexiconDumpCmd)
	rootCmd.AddCommand(lexiconCmd)
}

func runLexiconDump(cmd *cobra.Command, args []string) error {
	if err := requireService(analysisService != nil && lexiconLoader != nil, "lexicon"); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	opts, err := analysisOptions(ctx)
	if err != nil {
		return err
	}
	lf, err := analysisService.Lexicons(ctx, opts)
	if err != nil {
		return err
	}
	if err := lexiconLoader.Write(ctx, args[0], lf); err != nil {
		return err
	}
	cmd.Printf("Wrote %d stopwords, %d emotion labels, %d entities and %d actions to %s\n",
		len(lf.Stopwords), len(lf.Emotions), len(lf.Entities), len(lf.Actions), args[0])
	return nil
}
