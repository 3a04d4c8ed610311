package progression

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/ellavondegurechaff/strengthforge/progression/api"
	"github.com/ellavondegurechaff/strengthforge/progression/badges"
	"github.com/ellavondegurechaff/strengthforge/progression/database"
	"github.com/ellavondegurechaff/strengthforge/progression/lease"
	"github.com/ellavondegurechaff/strengthforge/progression/leveling"
	"github.com/ellavondegurechaff/strengthforge/progression/maturity"
	"github.com/ellavondegurechaff/strengthforge/progression/quests"
	"github.com/ellavondegurechaff/strengthforge/progression/readiness"
	"github.com/ellavondegurechaff/strengthforge/progression/reports"
	"github.com/ellavondegurechaff/strengthforge/progression/telemetry"
)

// EnvPrefix prefixes every environment override, e.g. STRENGTHFORGE_CRON_SECRET.
const EnvPrefix = "STRENGTHFORGE_"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// LoadConfig reads the TOML file at path, overlays secrets from the
// environment and validates the result. A domain section present in the file
// replaces its defaults wholesale; an absent one keeps them.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err = cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) finish() error {
	c.applyDefaults()
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	c.HTTP.JWTSecret = c.Auth.JWTSecret
	c.HTTP.CronSecret = c.Cron.Secret
	return c.Validate()
}

type Config struct {
	Log       LogConfig         `toml:"log"`
	HTTP      api.Config        `toml:"http"`
	DB        database.DBConfig `toml:"db"`
	Storage   StorageConfig     `toml:"storage"`
	Cron      CronConfig        `toml:"cron"`
	Auth      AuthConfig        `toml:"auth"`
	Redis     lease.Config      `toml:"redis"`
	Discord   DiscordConfig     `toml:"discord"`
	Reports   reports.Config    `toml:"reports"`
	Telemetry telemetry.Config  `toml:"telemetry"`

	Leveling  *leveling.Config  `toml:"leveling"`
	Quests    *quests.Config    `toml:"quests"`
	Maturity  *maturity.Config  `toml:"maturity"`
	Readiness *readiness.Config `toml:"readiness"`
	Badges    *badges.Config    `toml:"badges"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level" env:"LOG_LEVEL"`
	Format    string     `toml:"format" env:"LOG_FORMAT"`
	AddSource bool       `toml:"add_source"`
}

type StorageConfig struct {
	// Driver is "postgres" or "memory".
	Driver string `toml:"driver" env:"STORAGE_DRIVER"`
	// TimeZone decides where calendar days start, an IANA name.
	TimeZone string `toml:"time_zone"`
	// SeedStrengths loads the default strength directory on startup.
	SeedStrengths bool `toml:"seed_strengths"`
}

type CronConfig struct {
	Secret string `toml:"secret" env:"CRON_SECRET"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" env:"JWT_SECRET"`
}

type DiscordConfig struct {
	Enabled   bool   `toml:"enabled"`
	Token     string `toml:"token" env:"DISCORD_TOKEN"`
	ChannelID string `toml:"channel_id"`
}

func (c *Config) applyDefaults() {
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.HTTP.Host == "" {
		c.HTTP.Host = "0.0.0.0"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageMemory
	}
	if c.Storage.TimeZone == "" {
		c.Storage.TimeZone = "UTC"
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "strengthforge"
	}

	if c.Leveling == nil {
		c.Leveling = leveling.NewDefaultConfig()
	}
	if c.Quests == nil {
		c.Quests = quests.NewDefaultConfig()
	}
	if c.Maturity == nil {
		c.Maturity = maturity.NewDefaultConfig()
	}
	if c.Readiness == nil {
		c.Readiness = readiness.NewDefaultConfig()
	}
	if c.Badges == nil {
		c.Badges = badges.NewDefaultConfig()
	}
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Storage.TimeZone)
}

// Validate checks the whole configuration once, before any component is
// built.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == StoragePostgres && (c.DB.Host == "" || c.DB.Database == "") {
		return fmt.Errorf("config: db.host and db.database are required for the postgres driver")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config: time zone: %w", err)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret is required (or %sJWT_SECRET)", EnvPrefix)
	}
	if c.Discord.Enabled && (c.Discord.Token == "" || c.Discord.ChannelID == "") {
		return fmt.Errorf("config: discord.token and discord.channel_id are required when discord is enabled")
	}
	if c.Reports.Enabled && c.Reports.Bucket == "" {
		return fmt.Errorf("config: reports.bucket is required when reports are enabled")
	}

	if err := c.Leveling.Validate(); err != nil {
		return err
	}
	if err := c.Quests.Validate(); err != nil {
		return err
	}
	if err := c.Maturity.Validate(); err != nil {
		return err
	}
	if err := c.Readiness.Validate(); err != nil {
		return err
	}
	if _, err := badges.NewCatalog(c.Badges); err != nil {
		return err
	}
	return nil
}
