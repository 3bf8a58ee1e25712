package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load reads the given .env files into the process environment and parses
// it into a new T using `env` struct tags.
//
// Without files, the default .env in the working directory is loaded when it
// exists. Named files must exist. Variables already set in the environment
// are never overridden by file values.
//
// Example:
//
//	type ServerConfig struct {
//		Addr      string   `env:"HTTP_ADDR" envDefault:":8080"`
//		Languages []string `env:"I18N_LANGUAGES,required" envSeparator:","`
//	}
//
//	cfg, err := config.Load[ServerConfig]()
//	if err != nil {
//		// Handle error
//	}
func Load[T any](files ...string) (T, error) {
	var zero T
	if err := loadEnvFiles(files); err != nil {
		return zero, err
	}
	v, err := env.ParseAs[T]()
	if err != nil {
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad[T any](files ...string) T {
	v, err := Load[T](files...)
	if err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
	return v
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}
