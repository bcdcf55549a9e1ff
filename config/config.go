package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MonitorAddress string `mapstructure:"monitor_address"`
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

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

// GameConfig 游戏规则参数
type GameConfig struct {
	TurnSeconds           int `mapstructure:"turn_seconds"`
	TurnGapSeconds        int `mapstructure:"turn_gap_seconds"`
	ScoreLimit            int `mapstructure:"score_limit"`
	TeamCapacity          int `mapstructure:"team_capacity"`
	MinTeamSize           int `mapstructure:"min_team_size"`
	ReconnectGraceSeconds int `mapstructure:"reconnect_grace_seconds"`
	RoomIdleMinutes       int `mapstructure:"room_idle_minutes"`
	DeckLowWatermark      int `mapstructure:"deck_low_watermark"`
	ReplenishBatch        int `mapstructure:"replenish_batch"`
}

func (g GameConfig) TurnGap() time.Duration {
	return time.Duration(g.TurnGapSeconds) * time.Second
}

func (g GameConfig) ReconnectGrace() time.Duration {
	return time.Duration(g.ReconnectGraceSeconds) * time.Second
}

func (g GameConfig) RoomIdleTimeout() time.Duration {
	return time.Duration(g.RoomIdleMinutes) * time.Minute
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	setDefaults()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}

func setDefaults() {
	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("server.monitor_address", ":9100")
	viper.SetDefault("nats.url", "nats://localhost:4222")
	viper.SetDefault("nats.subject", "wordgen.generate")
	viper.SetDefault("game.turn_seconds", 60)
	viper.SetDefault("game.turn_gap_seconds", 5)
	viper.SetDefault("game.score_limit", 20)
	viper.SetDefault("game.team_capacity", 4)
	viper.SetDefault("game.min_team_size", 2)
	viper.SetDefault("game.reconnect_grace_seconds", 60)
	viper.SetDefault("game.room_idle_minutes", 30)
	viper.SetDefault("game.deck_low_watermark", 40)
	viper.SetDefault("game.replenish_batch", 50)
}
