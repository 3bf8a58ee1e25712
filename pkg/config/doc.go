// Package config loads application configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// optional `.env` files are merged into the process environment first, then
// the environment is parsed into a struct using field tags.
//
// # Usage
//
//	type Config struct {
//		I18n  i18n.Options
//		Mongo mongo.Config
//		Addr  string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	cfg, err := config.Load[Config]()
//	if err != nil {
//		log.Fatalf("loading config: %v", err)
//	}
//
// Nested structs are parsed in place, so the options types of other packages
// can be embedded as-is.
//
// # Error Handling
//
//   - `ErrLoadingEnvFile` – a named .env file is missing or malformed.
//   - `ErrParsingConfig`  – the environment does not fit the struct.
package config
