package config

import (
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量 QUILL_* 优先
func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using process environment")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("QUILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		log.Warn("config file not found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 30)
	v.SetDefault("jwt.issuer", "Quill")
	v.SetDefault("jwt.expire_hour", 24)
	v.SetDefault("comment.max_depth", 2)
	v.SetDefault("comment.max_length", 1000)
	v.SetDefault("comment.view_cache_ttl", 300)
	v.SetDefault("upload.max_size", 10<<20)
	v.SetDefault("cron.purge_spec", "0 30 3 * * *")
	v.SetDefault("kafka_stale.topic", "quill-view-stale")
	v.SetDefault("kafka_stale.group_id", "quill-view-stale-group")
}
