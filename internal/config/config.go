package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Trivia TriviaConfig
	Logger LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// TriviaConfig configures the external question bank.
type TriviaConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Amount   int           `yaml:"amount"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type LoggerConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("mongo.database", "quizdb")
	viper.SetDefault("trivia.base_url", "https://opentdb.com/api.php")
	viper.SetDefault("trivia.amount", 15)
	viper.SetDefault("trivia.cache_ttl", 60*time.Second)

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional; env vars can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("mongo.uri"),
			Database: viper.GetString("mongo.database"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Trivia: TriviaConfig{
			BaseURL: viper.GetString("trivia.base_url"),
			Amount:  viper.GetInt("trivia.amount"),
			// The TTL is a real duration, so "60s" in yaml parses as-is.
			CacheTTL: viper.GetDuration("trivia.cache_ttl"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
	}

	// Override with environment variables if set
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT %q: %w", port, err)
		}
		config.Server.Port = p
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		config.Mongo.URI = uri
	}
	if database := os.Getenv("MONGO_DATABASE"); database != "" {
		config.Mongo.Database = database
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if baseURL := os.Getenv("TRIVIA_BASE_URL"); baseURL != "" {
		config.Trivia.BaseURL = baseURL
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	// Fail fast on the two settings the server cannot run without.
	if config.Server.Port == 0 {
		return nil, fmt.Errorf("server port is not configured (set server.port or SERVER_PORT)")
	}
	if config.Mongo.URI == "" {
		return nil, fmt.Errorf("mongo URI is not configured (set mongo.uri or MONGO_URI)")
	}

	return config, nil
}
