// Package config provides the configuration of the datagen http server.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultName is the service name used in logs and traces.
	DefaultName = "datagen"
	// DefaultHost is the default listening host.
	DefaultHost = "0.0.0.0"
	// DefaultPort is the default listening port.
	DefaultPort = 7774
	// DefaultShutdownTimeout bounds the graceful shutdown of the server.
	DefaultShutdownTimeout = 5 * time.Second
)

// Tracing holds the information of the OpenTelemetry exporter.
type Tracing struct {
	// Endpoint is the OTLP/HTTP collector endpoint, e.g. localhost:4318.
	// Tracing is disabled if it is empty.
	Endpoint string `yaml:"endpoint" env:"DATAGEN_TRACING_ENDPOINT"`
	// Insecure disables TLS to the collector.
	Insecure bool `yaml:"insecure" env:"DATAGEN_TRACING_INSECURE" envDefault:"false"`
}

// TracingFromEnv reads the tracing config from environment,
// it is used where no config file is available, e.g. in a lambda function.
func TracingFromEnv() (Tracing, error) {
	var t Tracing
	err := env.Parse(&t)
	return t, err
}

// Config represents a datagen config.
type Config struct {
	// Name represents the name of the service.
	Name string `yaml:"name"`
	// Host represents the listening host of the server.
	Host string `yaml:"host"`
	// Port represents the listening port of the server.
	Port int `yaml:"port"`
	// ShutdownTimeout bounds how long in-flight requests may take on shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// Tracing holds the tracing exporter config.
	Tracing Tracing `yaml:"tracing"`
}

// Default returns the config used when no config file is given.
func Default() Config {
	return Config{
		Name:            DefaultName,
		Host:            DefaultHost,
		Port:            DefaultPort,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Addr returns the listening address of the server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ErrConfigExt represents the extension of config file is incorrect.
var ErrConfigExt = errors.New(`datagen: the extension of config is incorrect, it should be ".yaml|.yml"`)

// ParseConfigFile parses the config from configPath, the keys absent from the file keep their default.
func ParseConfigFile(configPath string) (Config, error) {
	if ext := filepath.Ext(configPath); ext != ".yaml" && ext != ".yml" {
		return Config{}, ErrConfigExt
	}

	buf, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, err
	}

	config := Default()
	if err := yaml.Unmarshal(buf, &config); err != nil {
		return config, fmt.Errorf("config: %s: %w", configPath, err)
	}

	if err := Validate(&config); err != nil {
		return config, err
	}

	return config, nil
}

// Validate checks the required fields of conf.
func Validate(conf *Config) error {
	if conf.Name == "" {
		return errors.New("config: the name is required")
	}
	if conf.Host == "" {
		return errors.New("config: the host is required")
	}
	if conf.Port <= 0 || conf.Port > 65535 {
		return fmt.Errorf("config: the port %d is out of range", conf.Port)
	}
	if conf.ShutdownTimeout < 0 {
		return errors.New("config: the shutdown_timeout cannot be negative")
	}

	return nil
}
