package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"stampcard/internal/structures"
	"strings"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("card.totalStamps", 5)
	v.SetDefault("card.completionDelay", "600ms")
	v.SetDefault("card.dateLayout", "2006. 1. 2.")
	v.SetDefault("card.morningMarker", "오전")
	v.SetDefault("card.afternoonMarker", "오후")
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.keyPrefix", "zerovity_")
	v.SetDefault("cache.ttl", 60)

	v.BindEnv("logger.level", "STAMPCARD_LOG_LEVEL")
	v.BindEnv("storage.driver", "STAMPCARD_STORAGE_DRIVER")
	v.BindEnv("storage.path", "STAMPCARD_STORAGE_PATH")
	v.BindEnv("card.completionDelay", "STAMPCARD_COMPLETION_DELAY")
	v.BindEnv("cache.enabled", "STAMPCARD_CACHE_ENABLED")
	v.BindEnv("cache.size", "STAMPCARD_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "StampCard"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
