package structures

import "time"

type Server struct {
	Host string `yaml:"host" mapstructure:"host" validate:"required"`
	Port int    `yaml:"port" mapstructure:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Driver    string `yaml:"driver" mapstructure:"driver" validate:"required|in:memory,file,sqlite"`
	Path      string `yaml:"path" mapstructure:"path" validate:"unixPath"`
	Compress  bool   `yaml:"compress" mapstructure:"compress"`
	KeyPrefix string `yaml:"keyPrefix" mapstructure:"keyPrefix"`
}

type LoggerConfig struct {
	Level string `yaml:"level" mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" mapstructure:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" mapstructure:"dir" validate:"required|unixPath"`
}

type CardConfig struct {
	TotalStamps     int           `yaml:"totalStamps" mapstructure:"totalStamps" validate:"required|min:1|max:64"`
	CompletionDelay time.Duration `yaml:"completionDelay" mapstructure:"completionDelay" validate:"min:0"`
	DateLayout      string        `yaml:"dateLayout" mapstructure:"dateLayout" validate:"required"`
	MorningMarker   string        `yaml:"morningMarker" mapstructure:"morningMarker" validate:"required"`
	AfternoonMarker string        `yaml:"afternoonMarker" mapstructure:"afternoonMarker" validate:"required"`
	Timezone        string        `yaml:"timezone" mapstructure:"timezone"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	Size    int  `yaml:"size" mapstructure:"size"`
	TTL     int  `yaml:"ttl" mapstructure:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Card      CardConfig    `yaml:"card" mapstructure:"card"`
	Storage   StorageConfig `yaml:"storage" mapstructure:"storage"`
	WebServer Server        `yaml:"webServer" mapstructure:"webServer"`
	Logger    LoggerConfig  `yaml:"logger" mapstructure:"logger"`
	Cache     CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Metrics   MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}
