package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/career-matcher/internal/queue"
	"github.com/spigell/career-matcher/internal/recommend"
	"github.com/spigell/career-matcher/internal/store"
)

const (
	app = "career-matcher"
)

type Config struct {
	Source          string `mapstructure:"source" validate:"oneof=file postgres"`
	Dataset         string `mapstructure:"dataset" validate:"required_if=Source file"`
	DatabaseURL     string `mapstructure:"database-url"`
	DatabaseURLFile string `mapstructure:"database-url-file"`
	ExcludeFile     string `mapstructure:"exclude-file"`
	Exclude         *struct {
		Companies []string `mapstructure:"companies"`
	} `mapstructure:"exclude"`
	AI        *AIConfig        `mapstructure:"ai" validate:"omitempty"`
	Recommend recommend.Config `mapstructure:"recommend"`
	Queue     queue.Config     `mapstructure:"queue"`
}

type AIConfig struct {
	Provider      string          `mapstructure:"provider" validate:"omitempty,oneof=huggingface gemini none"`
	Timeout       time.Duration   `mapstructure:"timeout" validate:"gte=0,lte=30s"`
	RatePerSecond float64         `mapstructure:"rate-per-second"`
	Burst         int             `mapstructure:"burst" validate:"gte=0"`
	MaxLogLength  int             `mapstructure:"max-log-length" validate:"gte=0"`
	HuggingFace   *ProviderConfig `mapstructure:"huggingface"`
	Gemini        *ProviderConfig `mapstructure:"gemini"`
}

type ProviderConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-matcher scores candidates against jobs and recommends jobs and learning resources",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"database-url":           "DATABASE_URL",
		"dataset":                "CAREER_MATCHER_DATASET",
		"ai.huggingface.api-key": "HUGGINGFACE_API_KEY",
		"ai.gemini.api-key":      "GEMINI_API_KEY",
		"queue.url":              "RABBITMQ_URL",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults(v *viper.Viper) {
	defaults := recommend.DefaultConfig()

	v.SetDefault("source", store.KindFile)
	v.SetDefault("recommend.concurrency", defaults.Concurrency)
	v.SetDefault("recommend.jobs-limit", defaults.JobsLimit)
	v.SetDefault("recommend.resources-fetch", defaults.ResourcesFetch)
	v.SetDefault("recommend.resources-limit", defaults.ResourcesLimit)
	v.SetDefault("recommend.role-jobs-limit", defaults.RoleJobsLimit)
	v.SetDefault("recommend.gap-resources-limit", defaults.GapResourcesLimit)
}

func initConfig() {
	if versionCmd.CalledAs() != "" {
		return
	}

	// .env is optional.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without an explicit --config everything may come from env and defaults.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
