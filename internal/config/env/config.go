package env

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
	} `mapstructure:"app"`
	Log struct {
		Level  int    `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Database struct {
		URL      string `mapstructure:"url"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		Migrate  bool   `mapstructure:"migrate"`
		Pool     struct {
			Idle     int `mapstructure:"idle"`
			Max      int `mapstructure:"max"`
			Lifetime int `mapstructure:"lifetime"`
		} `mapstructure:"pool"`
	} `mapstructure:"database"`
	Monitoring struct {
		Otel struct {
			Enabled bool   `mapstructure:"enabled"`
			Host    string `mapstructure:"host"`
		} `mapstructure:"otel"`
	} `mapstructure:"monitoring"`
}

func NewConfig() *Config {
	config := viper.New()

	// Set configuration file details
	config.SetConfigName("config")
	config.SetConfigType("yml")
	config.AddConfigPath("./../")
	config.AddConfigPath("./")

	// DATABASE_PASSWORD overrides database.password and so on
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	// Read the configuration file
	if err := config.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error reading config file: %w", err))
	}

	// Unmarshal into the Config struct
	cfg := new(Config)
	if err := config.Unmarshal(cfg); err != nil {
		panic(fmt.Errorf("fatal error unmarshaling config: %w", err))
	}

	return cfg
}

// DatabaseDSN returns database.url with the configured credentials merged in.
// Credentials already present in the URL are replaced.
func (c *Config) DatabaseDSN() (string, error) {
	u, err := url.Parse(c.Database.URL)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("parse database url: %q is not an absolute url", c.Database.URL)
	}

	switch {
	case c.Database.Username != "" && c.Database.Password != "":
		u.User = url.UserPassword(c.Database.Username, c.Database.Password)
	case c.Database.Username != "":
		u.User = url.User(c.Database.Username)
	}

	return u.String(), nil
}
