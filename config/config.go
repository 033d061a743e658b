package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Lexicon  LexiconConfig  `mapstructure:"lexicon"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type LexiconConfig struct {
	// Address the dictionary HTTP service listens on.
	HTTPAddress string `mapstructure:"http_address"`
	// Words file, one Hebrew word per line. The built-in word list is
	// used when the file is missing.
	DictionaryFile string `mapstructure:"dictionary_file"`
	// Remote oracle base URL. Empty means validate locally only.
	RemoteURL string        `mapstructure:"remote_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type GameConfig struct {
	SecondsPerTurn     int     `mapstructure:"seconds_per_turn"`
	RackSize           int     `mapstructure:"rack_size"`
	MaxPasses          int     `mapstructure:"max_passes"`
	IncludeJokers      bool    `mapstructure:"include_jokers"`
	IncludeFinalForms  bool    `mapstructure:"include_final_forms"`
	BagSizeMultiplier  float64 `mapstructure:"bag_size_multiplier"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.metrics_address", ":9090")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("lexicon.http_address", ":3002")
	viper.SetDefault("lexicon.timeout", 3*time.Second)
	viper.SetDefault("game.seconds_per_turn", 120)
	viper.SetDefault("game.rack_size", 7)
	viper.SetDefault("game.max_passes", 6)
	viper.SetDefault("game.include_jokers", true)
	viper.SetDefault("game.include_final_forms", true)
	viper.SetDefault("game.bag_size_multiplier", 1.0)

	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		// Defaults and environment variables cover a missing file.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
