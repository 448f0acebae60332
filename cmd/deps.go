package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-matcher/internal/ai"
	"github.com/spigell/career-matcher/internal/ai/gemini"
	"github.com/spigell/career-matcher/internal/ai/huggingface"
	"github.com/spigell/career-matcher/internal/explain"
	"github.com/spigell/career-matcher/internal/logger"
	"github.com/spigell/career-matcher/internal/recommend"
	"github.com/spigell/career-matcher/internal/secrets"
	"github.com/spigell/career-matcher/internal/store"
)

// deps holds everything a command needs after the config is resolved.
type deps struct {
	config  *Config
	logger  *zap.Logger
	source  store.Source
	service *recommend.Service
}

// mustDeps builds the logger, data source and recommendation service or exits.
func mustDeps(ctx context.Context) *deps {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting with config",
		zap.String("version", version),
		zap.String("ai_provider", aiProvider(config.AI)),
		zap.Any("recommend", config.Recommend),
	)

	source, err := openSource(ctx, config, logger)
	if err != nil {
		logger.Fatal("opening data source", zap.Error(err), zap.String("source", config.Source))
	}

	explainer := newExplainer(ctx, config.AI, logger)

	return &deps{
		config:  config,
		logger:  logger,
		source:  source,
		service: recommend.New(source, explainer, logger, config.Recommend),
	}
}

func (d *deps) Close() {
	d.source.Close()
	_ = d.logger.Sync()
}

func openSource(ctx context.Context, config *Config, logger *zap.Logger) (store.Source, error) {
	cfg := store.Config{Kind: config.Source, DatasetPath: config.Dataset}

	if config.Source == store.KindPostgres {
		dsn, err := secrets.Load(secrets.Source{
			Name:  "database url",
			Value: config.DatabaseURL,
			File:  config.DatabaseURLFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set DATABASE_URL or database-url-file)", err)
		}
		cfg.DatabaseURL = dsn
	}

	logger.Debug("opening data source",
		zap.String("source", cfg.Kind),
		zap.String("dataset", cfg.DatasetPath),
		zap.String("database_url", secrets.RedactURL(cfg.DatabaseURL)),
	)

	return store.Open(ctx, cfg)
}

func aiProvider(cfg *AIConfig) string {
	if cfg == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(cfg.Provider))
}

// newExplainer returns the heuristic explainer unless a remote provider is configured and usable.
func newExplainer(ctx context.Context, cfg *AIConfig, logger *zap.Logger) explain.Provider {
	provider := aiProvider(cfg)
	if provider == "" || provider == "none" {
		return explain.Heuristic{}
	}

	generator, err := newGenerator(ctx, provider, cfg, logger)
	if err != nil {
		logger.Warn("skipping remote explanations", zap.Error(err), zap.String("ai_provider", provider))
		return explain.Heuristic{}
	}

	return explain.NewEnhanced(generator, logger, explain.Options{
		Timeout:       cfg.Timeout,
		RatePerSecond: cfg.RatePerSecond,
		Burst:         cfg.Burst,
		MaxLogLength:  cfg.MaxLogLength,
	})
}

func newGenerator(ctx context.Context, provider string, cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	var pc ProviderConfig

	switch provider {
	case ai.ProviderHuggingFace:
		if cfg.HuggingFace != nil {
			pc = *cfg.HuggingFace
		}
		key, err := loadAPIKey("huggingface api key", pc)
		if err != nil {
			return nil, fmt.Errorf("%w (set HUGGINGFACE_API_KEY or ai.huggingface.api-key-file)", err)
		}
		return huggingface.New(logger, key, pc.Model)
	case ai.ProviderGemini:
		if cfg.Gemini != nil {
			pc = *cfg.Gemini
		}
		key, err := loadAPIKey("gemini api key", pc)
		if err != nil {
			return nil, fmt.Errorf("%w (set GEMINI_API_KEY or ai.gemini.api-key-file)", err)
		}
		return gemini.NewGenerator(ctx, key, pc.Model)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", provider)
	}
}

func loadAPIKey(name string, pc ProviderConfig) (string, error) {
	return secrets.Load(secrets.Source{Name: name, Value: pc.APIKey, File: pc.APIKeyFile})
}

func parseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q: %w", raw, err)
	}
	return id, nil
}
