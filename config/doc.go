// Package config loads service configuration from a YAML file, an optional
// .env file and the environment, in that order of increasing precedence.
//
// # Usage
//
//	type Config struct {
//		config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//		Ranking RankingConfig `yaml:"ranking" mapstructure:"ranking"`
//	}
//
//	var cfg Config
//	err := config.LoadConfig("airlinerank", &cfg)
//
// Environment variables carry the upper-cased service name as prefix and
// use underscores for nesting: AIRLINERANK_RANKING_ORIGIN sets
// ranking.origin. Loaded structs implementing ApplyDefaults() and
// Validate() error have them called after unmarshalling.
package config
