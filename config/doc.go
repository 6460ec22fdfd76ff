// Package config loads fuel client configuration.
//
// It uses Viper to read a YAML, JSON or TOML file and overlays environment
// variables prefixed with the upper-cased application name, after optionally
// loading a .env file with godotenv.
//
// # Usage
//
//	var cfg fuel.Config
//	err := config.Load("fuel", &cfg, config.WithConfigFile("fuel.yml"))
//
// FUEL_HTTP_BASE_URL overrides http.base_url, FUEL_CODEC overrides codec.
package config
