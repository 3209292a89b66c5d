// Package main is the entry point for the greeting service HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sebasr/greeting-service/internal/assets"
	"github.com/sebasr/greeting-service/internal/config"
	"github.com/sebasr/greeting-service/internal/generator"
	"github.com/sebasr/greeting-service/internal/greeting"
	"github.com/sebasr/greeting-service/internal/logger"
	"github.com/sebasr/greeting-service/internal/server"
	"github.com/sebasr/greeting-service/internal/templates"
	"github.com/sebasr/greeting-service/internal/watermark"
)

func main() {
	// A missing .env is fine; the environment may already be set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to read .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Error("server stopped", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx := context.Background()

	store, closeStore, err := openAssetStore(ctx, cfg.Assets)
	if err != nil {
		return err
	}
	defer closeStore()

	tmpl := templates.Default()
	if cfg.Assets.SeedPlaceholders {
		created, err := assets.EnsurePlaceholders(ctx, store, tmpl.Images())
		if err != nil {
			return fmt.Errorf("seeding placeholder images: %w", err)
		}
		if len(created) > 0 {
			zlog.Info("seeded placeholder images", zap.Strings("names", created))
		}
	}

	httpClient := &http.Client{Timeout: cfg.AI.Timeout}
	text, err := textGenerator(ctx, cfg.AI, httpClient)
	if err != nil {
		return err
	}
	images, err := imageGenerator(ctx, cfg.AI, httpClient)
	if err != nil {
		return err
	}
	zlog.Info("generation services configured",
		zap.String("text_provider", cfg.AI.TextProvider),
		zap.String("image_provider", cfg.AI.ImageProvider))

	resolver := greeting.NewResolver(greeting.Dependencies{
		Templates: tmpl,
		Text:      text,
		Images:    images,
		Assets:    store,
		Watermark: greeting.WatermarkConfig{
			Text: cfg.Watermark.Text,
			Options: watermark.Options{
				FontPath: cfg.Watermark.FontPath,
				KeepSize: cfg.Watermark.KeepSize,
			},
		},
		Logger:  zlog,
		BaseURL: cfg.Server.PublicBaseURL,
	})

	router := server.New(&server.Dependencies{
		Resolver: resolver,
		Assets:   store,
		Logger:   zlog,
	})

	zlog.Info("starting server",
		zap.String("port", cfg.Server.Port),
		zap.String("asset_backend", cfg.Assets.Backend))
	return router.Run(":" + cfg.Server.Port)
}

func openAssetStore(ctx context.Context, cfg config.AssetsConfig) (assets.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendRedis:
		store, err := assets.NewRedisStoreFromURL(ctx, cfg.RedisURL, cfg.RedisKeyPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		store.WithExpiry(assets.GeneratedPrefix, cfg.GeneratedTTL)
		return store, func() { _ = store.Close() }, nil
	default:
		store, err := assets.NewFileStore(cfg.StaticDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening static dir: %w", err)
		}
		return store, func() {}, nil
	}
}

// textGenerator returns nil when no provider is configured.
func textGenerator(ctx context.Context, cfg config.AIConfig, client *http.Client) (generator.TextGenerator, error) {
	switch cfg.TextProvider {
	case config.ProviderOpenAI:
		return generator.NewOpenAI(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAITextModel, cfg.OpenAIImageModel, client), nil
	case config.ProviderHuggingFace:
		return generator.NewHuggingFace(cfg.HFBaseURL, cfg.HFAPIKey, cfg.HFModel, client), nil
	case config.ProviderGemini:
		return generator.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel, client)
	}
	return nil, nil
}

func imageGenerator(ctx context.Context, cfg config.AIConfig, client *http.Client) (generator.ImageGenerator, error) {
	switch cfg.ImageProvider {
	case config.ProviderOpenAI:
		return generator.NewOpenAI(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAITextModel, cfg.OpenAIImageModel, client), nil
	case config.ProviderGemini:
		return generator.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel, client)
	}
	return nil, nil
}
