// Command vmt finds stock footage for a transcript.
package main

import (
	"fmt"
	"time"

	"github.com/custodia-labs/vmt/internal/adapters/driven/config/file"
	"github.com/custodia-labs/vmt/internal/adapters/driven/export"
	"github.com/custodia-labs/vmt/internal/adapters/driven/lexicon"
	"github.com/custodia-labs/vmt/internal/adapters/driven/session"
	"github.com/custodia-labs/vmt/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/vmt/internal/adapters/driven/watcher"
	"github.com/custodia-labs/vmt/internal/adapters/driving/cli"
	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
	"github.com/custodia-labs/vmt/internal/core/services"
	"github.com/custodia-labs/vmt/internal/normalisers"
	"github.com/custodia-labs/vmt/internal/postprocessors"
	"github.com/custodia-labs/vmt/internal/providers/pexels"
	"github.com/custodia-labs/vmt/internal/providers/pixabay"
	"github.com/custodia-labs/vmt/internal/providers/unsplash"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)
	cli.Main()
}

// bootstrap wires the services for configDir. An empty configDir uses ~/.vmt.
func bootstrap(configDir string) (*cli.Services, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	lexicons := lexicon.NewLoader()
	analysisService := services.NewAnalysisService(lexicons)
	analysisService.SetLexiconFile(settings.Analysis.LexiconFile)

	loaderService := services.NewLoaderService(normalisers.NewDefaultRegistry())
	loaderService.SetPipeline(postprocessors.DefaultPipeline())

	exportService := services.NewExportService(settingsService,
		export.NewCSVExporter(),
		export.NewJSONExporter(),
		export.NewShotlistExporter(),
		export.NewDOCXExporter(),
		sqlite.NewExporter(),
	)

	return &cli.Services{
		Analysis: analysisService,
		Media:    services.NewMediaService(newProviders(settings)...),
		Loader:   loaderService,
		Session:  services.NewSessionService(session.NewFileStore()),
		Export:   exportService,
		Settings: settingsService,
		Lexicons: lexicons,
		Watcher:  watcher.New(),
	}, nil
}

// newProviders builds the providers in display order. A provider that is
// switched off gets no key, so it reports itself disabled.
func newProviders(settings *domain.AppSettings) []driven.MediaProvider {
	timeout := time.Duration(settings.Search.TimeoutSeconds) * time.Second
	key := func(name string) (string, string) {
		p := settings.Providers[name]
		if !p.IsConfigured() {
			return "", p.BaseURL
		}
		return p.APIKey, p.BaseURL
	}

	pexelsKey, pexelsURL := key(domain.ProviderPexels)
	pixabayKey, pixabayURL := key(domain.ProviderPixabay)
	unsplashKey, unsplashURL := key(domain.ProviderUnsplash)

	return []driven.MediaProvider{
		pexels.New(pexels.Config{APIKey: pexelsKey, BaseURL: pexelsURL, Timeout: timeout}),
		pixabay.New(pixabay.Config{APIKey: pixabayKey, BaseURL: pixabayURL, Timeout: timeout}),
		unsplash.New(unsplash.Config{AccessKey: unsplashKey, BaseURL: unsplashURL, Timeout: timeout}),
	}
}
