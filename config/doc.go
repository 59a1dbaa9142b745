// Package config loads tool configuration from YAML files, .env files and
// environment variables.
//
// Viper does the merging; godotenv loads .env files into the process
// environment before environment variables are bound.
//
// # Usage
//
//	var cfg Config
//	err := config.LoadConfig("wordfreq", &cfg, config.WithConfigFile(path))
//	cfg.ApplyDefaults()
//	err = cfg.Validate()
//
// Environment variables use the upper-cased tool name as prefix, with
// underscores separating sections: WORDFREQ_LOGGING_LEVEL=debug.
package config
