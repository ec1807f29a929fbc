package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. TASKBOARD_SERVER_PORT.
const EnvPrefix = "TASKBOARD"

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	HTTP    HTTPConfig    `yaml:"http"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Host            string        `yaml:"host"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

type HTTPConfig struct {
	// RateLimitRPM is requests per minute per client; a negative value disables the limit.
	RateLimitRPM   int           `yaml:"rate_limit_rpm"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	CORSOrigins    []string      `yaml:"cors_origins"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			Host:            "",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		HTTP: HTTPConfig{
			RateLimitRPM:   100,
			RequestTimeout: 30 * time.Second,
			CORSOrigins:    []string{"*"},
		},
	}
}

// Load reads the YAML file at path and fills unset values from Default.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer file.Close()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}
	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overrides cfg with any TASKBOARD_* variables that are set.
func ApplyEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.IsSet("server.host") {
		cfg.Server.Host = v.GetString("server.host")
	}
	if v.IsSet("server.port") {
		cfg.Server.Port = v.GetString("server.port")
	}
	if v.IsSet("logging.development") {
		cfg.Logging.Development = v.GetBool("logging.development")
	}
	if v.IsSet("http.cors_origins") {
		cfg.HTTP.CORSOrigins = v.GetStringSlice("http.cors_origins")
	}
	if v.IsSet("http.rate_limit_rpm") {
		rpm, err := cast.ToIntE(v.Get("http.rate_limit_rpm"))
		if err != nil {
			return fmt.Errorf("env %s_HTTP_RATE_LIMIT_RPM: %w", EnvPrefix, err)
		}
		cfg.HTTP.RateLimitRPM = rpm
	}

	durations := map[string]*time.Duration{
		"server.read_timeout":     &cfg.Server.ReadTimeout,
		"server.write_timeout":    &cfg.Server.WriteTimeout,
		"server.shutdown_timeout": &cfg.Server.ShutdownTimeout,
		"http.request_timeout":    &cfg.HTTP.RequestTimeout,
	}
	for key, dst := range durations {
		if !v.IsSet(key) {
			continue
		}
		d, err := cast.ToDurationE(v.Get(key))
		if err != nil {
			return fmt.Errorf("env %s_%s: %w", EnvPrefix, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), err)
		}
		*dst = d
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}
