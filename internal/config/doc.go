// Package config holds runtime configuration for designlint.
//
// Configuration is layered: built-in defaults, then the .designlint.yaml
// project file (current directory, then home), then DESIGNLINT_* environment
// variables (optionally from .env), then CLI flags. The Config struct is
// populated once at startup and passed through the application via
// dependency injection rather than global state.
package config
