package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string         `yaml:"git_commit" envconfig:"BSAPI_GIT_COMMIT"`
	GitTag             string         `yaml:"git_tag" envconfig:"BSAPI_GIT_TAG"`
	BuildTime          string         `yaml:"build_time" envconfig:"BSAPI_BUILD_TIME"`
	IsProduction       bool           `yaml:"is_production" envconfig:"BSAPI_IS_PRODUCTION"`
	LogLevel           zapcore.Level  `yaml:"log_level" envconfig:"BSAPI_LOG_LEVEL"`
	LogFile            string         `yaml:"log_file" envconfig:"BSAPI_LOG_FILE"`
	OpsEndpointsEnable bool           `yaml:"ops_endpoints_enable" envconfig:"BSAPI_OPS_ENDPOINTS_ENABLE"`
	ProfilerEnable     bool           `yaml:"profiler_enable" envconfig:"BSAPI_PROFILER_ENABLE"`
	Server             ServerConfig   `yaml:"server"`
	Database           DatabaseConfig `yaml:"database"`
	Redis              RedisConfig    `yaml:"redis"`
	Cache              CacheConfig    `yaml:"cache"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"BSAPI_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"BSAPI_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"BSAPI_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"BSAPI_SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"BSAPI_SERVER_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host" envconfig:"BSAPI_DB_HOST"`
	Port            string        `yaml:"port" envconfig:"BSAPI_DB_PORT"`
	User            string        `yaml:"user" envconfig:"BSAPI_DB_USER"`
	Password        string        `yaml:"password" envconfig:"BSAPI_DB_PASSWORD"`
	Name            string        `yaml:"name" envconfig:"BSAPI_DB_NAME"`
	PoolSize        int           `yaml:"pool_size" envconfig:"BSAPI_DB_POOL_SIZE"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"BSAPI_DB_CONN_MAX_LIFETIME"`
	ConnectRetries  int           `yaml:"connect_retries" envconfig:"BSAPI_DB_CONNECT_RETRIES"`
	RetryDelay      time.Duration `yaml:"retry_delay" envconfig:"BSAPI_DB_RETRY_DELAY"`
}

type RedisConfig struct {
	Host         string        `yaml:"host" envconfig:"BSAPI_REDIS_HOST"`
	Port         string        `yaml:"port" envconfig:"BSAPI_REDIS_PORT"`
	DialTimeout  time.Duration `yaml:"dial_timeout" envconfig:"BSAPI_REDIS_DIAL_TIMEOUT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"BSAPI_REDIS_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"BSAPI_REDIS_WRITE_TIMEOUT"`
	Username     string        `yaml:"username" envconfig:"BSAPI_REDIS_USERNAME"`
	Password     string        `yaml:"password" envconfig:"BSAPI_REDIS_PASSWORD"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" envconfig:"BSAPI_CACHE_TTL"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig sets up defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if len(config.Database.Host) == 0 || len(config.Database.Port) == 0 || len(config.Database.Name) == 0 {
		return errors.New("make sure to set valid database address, port and name in configuration file")
	}

	if config.Database.PoolSize <= 0 {
		config.Database.PoolSize = 10
	}

	if config.Database.ConnectRetries <= 0 {
		config.Database.ConnectRetries = 5
	}

	if config.Database.RetryDelay <= 0 {
		config.Database.RetryDelay = 5 * time.Second
	}

	if config.Cache.TTL <= 0 {
		config.Cache.TTL = 300 * time.Second
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration. The env file is optional.
	if err = godotenv.Load("./config.env"); err != nil && !os.IsNotExist(err) {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `BSAPI`.
	err = LoadConfigEnvs("BSAPI", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
