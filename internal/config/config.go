package config

import (
	"log"

	"gopkg.in/yaml.v3"

	"automation-dashboard/pkg/config"
)

type Config struct {
	Server        config.ServerConfig  `yaml:"server"`
	ComputeServer config.ServerConfig  `yaml:"compute_server"`
	Compute       config.ComputeConfig `yaml:"compute"`
	CORS          config.CORSConfig    `yaml:"cors"`
	Store         config.StoreConfig   `yaml:"store"`
	DB            config.DBConfig      `yaml:"db"`
	Redis         config.RedisConfig   `yaml:"redis"`
	MQ            config.MQConfig      `yaml:"mq"`
}

func Load() *Config {
	env := config.GetConfigEnv()
	configDir := config.GetEnv("CONFIG_DIR", "config")

	cfgMap, err := config.LoadConfig(env, configDir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var cfg Config
	cfgData, err := yaml.Marshal(cfgMap)
	if err != nil {
		log.Fatalf("failed to marshal config: %v", err)
	}
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	// env vars take highest precedence
	config.OverrideServerFromEnv(&cfg.Server)
	config.OverrideComputeFromEnv(&cfg.Compute)
	config.OverrideCORSFromEnv(&cfg.CORS)
	config.OverrideStoreFromEnv(&cfg.Store)
	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideRedisFromEnv(&cfg.Redis)
	config.OverrideMQFromEnv(&cfg.MQ)

	return &cfg
}
