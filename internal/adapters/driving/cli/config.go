package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change settings stored in ~/.vmt/config.toml.

Provider keys can also be supplied through PEXELS_API_KEY, PIXABAY_API_KEY
and UNSPLASH_ACCESS_KEY, which take precedence over the file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value by dotted key.

Keys:
  providers.<name>.api_key    providers.<name>.enabled    providers.<name>.base_url
  search.per_provider         search.media_type           search.timeout_seconds
  analysis.max_keywords       analysis.max_queries        analysis.lexicon_file
  export.dir                  export.base_name`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireService(settingsService != nil, "settings"); err != nil {
			return err
		}
		cmd.Println(settingsService.ConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := requireService(settingsService != nil, "settings"); err != nil {
		return err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(domain.AllProviders()))
	for _, name := range domain.AllProviders() {
		p := settings.Providers[name]
		key := "(not set)"
		if p.APIKey != "" {
			key = maskAPIKey(p.APIKey)
		}
		status := "ready"
		switch {
		case !p.Enabled:
			status = "disabled"
		case p.APIKey == "":
			status = "no key"
		}
		rows = append(rows, []string{name, key, status, p.BaseURL})
	}
	cmd.Println(renderTable([]string{"Provider", "API Key", "Status", "Base URL"}, rows, nil))

	lexicon := settings.Analysis.LexiconFile
	if lexicon == "" {
		lexicon = "(built-in)"
	}
	cmd.Println(renderTable([]string{"Setting", "Value"}, [][]string{
		{"search.per_provider", strconv.Itoa(settings.Search.PerProvider)},
		{"search.media_type", string(settings.Search.MediaType)},
		{"search.timeout_seconds", strconv.Itoa(settings.Search.TimeoutSeconds)},
		{"analysis.max_keywords", strconv.Itoa(settings.Analysis.MaxKeywords)},
		{"analysis.max_queries", strconv.Itoa(settings.Analysis.MaxQueries)},
		{"analysis.lexicon_file", lexicon},
		{"export.dir", settings.Export.Dir},
		{"export.base_name", settings.Export.BaseName},
	}, nil))
	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireService(settingsService != nil, "settings"); err != nil {
		return err
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}
