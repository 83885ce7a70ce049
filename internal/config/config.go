package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// MarketplaceCodes é a ordem em que os marketplaces da Sellerboard são sincronizados
var MarketplaceCodes = []string{"BE", "DE", "FR", "IE", "IT", "NL", "PL", "SE", "ES", "UK"}

const (
	MinKeepaBatchSize     = 50
	MaxKeepaBatchSize     = 2000
	DefaultKeepaBatchSize = 500
)

var keySeparator = regexp.MustCompile(`[,\n]`)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	Redis          Redis          `mapstructure:",squash"`
	Sellerboard    Sellerboard    `mapstructure:",squash"`
	DailySalesSync DailySalesSync `mapstructure:",squash"`
	Keepa          Keepa          `mapstructure:",squash"`
	KeepaImageSync KeepaImageSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	SSLMode  string `mapstructure:"database_sslmode"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Redis struct {
	URL string `mapstructure:"redis_url"`
}

type Sellerboard struct {
	OwnerID        string `mapstructure:"sellerboard_owner_id"`
	UserAgent      string `mapstructure:"sellerboard_user_agent"`
	TimeoutSeconds int    `mapstructure:"sellerboard_timeout_seconds"`
	// DailyURLs é preenchido a partir de SELLERBOARD_DAILY_URL_<CODE>
	DailyURLs map[string]string `mapstructure:"-"`
}

// MarketSource é a URL diária de um marketplace
type MarketSource struct {
	Code string
	URL  string
}

// Sources retorna os marketplaces configurados na ordem de sincronização
func (s Sellerboard) Sources() []MarketSource {
	sources := make([]MarketSource, 0, len(MarketplaceCodes))
	for _, code := range MarketplaceCodes {
		url := strings.TrimSpace(s.DailyURLs[code])
		if url == "" {
			continue
		}
		sources = append(sources, MarketSource{Code: code, URL: url})
	}
	return sources
}

type DailySalesSync struct {
	CronSchedule string `mapstructure:"daily_sales_sync_cron"`
	Enabled      bool   `mapstructure:"daily_sales_sync_enabled"`
	BatchSize    int    `mapstructure:"daily_sales_sync_batch_size"`
}

type Keepa struct {
	URL             string   `mapstructure:"keepa_url"`
	APIKey          string   `mapstructure:"keepa_api_key"`
	RawAPIKeys      string   `mapstructure:"keepa_api_keys"`
	TokensPerMinute int      `mapstructure:"keepa_tokens_per_minute"`
	SafetyRemaining int      `mapstructure:"keepa_token_safety_remaining"`
	ItemsPerRun     int      `mapstructure:"keepa_items_per_run"`
	BatchSize       int      `mapstructure:"keepa_batch_size"`
	TargetOwnerID   string   `mapstructure:"keepa_target_owner_id"`
	TimeoutSeconds  int      `mapstructure:"keepa_timeout_seconds"`
	APIKeys         []string `mapstructure:"-"`
}

type KeepaImageSync struct {
	CronSchedule string `mapstructure:"keepa_image_sync_cron"`
	Enabled      bool   `mapstructure:"keepa_image_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/stockmind")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("REDIS_URL", "")

	viper.SetDefault("SELLERBOARD_OWNER_ID", "")
	viper.SetDefault("SELLERBOARD_USER_AGENT", "StockmindDailySync/1.0")
	viper.SetDefault("SELLERBOARD_TIMEOUT_SECONDS", 60)
	for _, code := range MarketplaceCodes {
		viper.SetDefault("SELLERBOARD_DAILY_URL_"+code, "")
	}

	viper.SetDefault("DAILY_SALES_SYNC_CRON", "30 6 * * *") // Todos os dias às 6h30
	viper.SetDefault("DAILY_SALES_SYNC_ENABLED", false)
	viper.SetDefault("DAILY_SALES_SYNC_BATCH_SIZE", 500)

	viper.SetDefault("KEEPA_URL", "https://api.keepa.com")
	viper.SetDefault("KEEPA_API_KEY", "")
	viper.SetDefault("KEEPA_API_KEYS", "")
	viper.SetDefault("KEEPA_TOKENS_PER_MINUTE", 1)
	viper.SetDefault("KEEPA_TOKEN_SAFETY_REMAINING", 0)
	viper.SetDefault("KEEPA_ITEMS_PER_RUN", 0) // 0 = sem limite
	viper.SetDefault("KEEPA_BATCH_SIZE", DefaultKeepaBatchSize)
	viper.SetDefault("KEEPA_TARGET_OWNER_ID", "")
	viper.SetDefault("KEEPA_TIMEOUT_SECONDS", 30)

	viper.SetDefault("KEEPA_IMAGE_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("KEEPA_IMAGE_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Sellerboard.DailyURLs = make(map[string]string, len(MarketplaceCodes))
	for _, code := range MarketplaceCodes {
		config.Sellerboard.DailyURLs[code] = viper.GetString("SELLERBOARD_DAILY_URL_" + code)
	}

	config.Keepa.Normalize()

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s?sslmode=%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
		config.Database.SSLMode,
	)

	logrus.WithFields(logrus.Fields{
		"sellerboard_markets": len(config.Sellerboard.Sources()),
		"keepa_pool_keys":     len(config.Keepa.APIKeys),
		"redis_lock":          config.Redis.URL != "",
	}).Info("Configuração carregada")

	return config, nil
}

// Normalize aplica os limites das opções do Keepa e monta o pool de chaves
func (k *Keepa) Normalize() {
	k.APIKeys = ParseAPIKeys(k.RawAPIKeys)
	if len(k.APIKeys) == 0 && strings.TrimSpace(k.APIKey) != "" {
		k.APIKeys = []string{strings.TrimSpace(k.APIKey)}
	}

	if k.TokensPerMinute < 1 {
		k.TokensPerMinute = 1
	}
	if k.SafetyRemaining < 0 {
		k.SafetyRemaining = 0
	}
	if k.ItemsPerRun < 0 {
		k.ItemsPerRun = 0
	}
	k.BatchSize = ClampBatchSize(k.BatchSize)
}

// ParseAPIKeys separa a lista de chaves por vírgula ou quebra de linha
func ParseAPIKeys(raw string) []string {
	keys := make([]string, 0)
	for _, part := range keySeparator.Split(raw, -1) {
		if key := strings.TrimSpace(part); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// ClampBatchSize limita o lote ao intervalo [50, 2000], com 500 como padrão
func ClampBatchSize(size int) int {
	switch {
	case size <= 0:
		return DefaultKeepaBatchSize
	case size < MinKeepaBatchSize:
		return MinKeepaBatchSize
	case size > MaxKeepaBatchSize:
		return MaxKeepaBatchSize
	}
	return size
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
