// Package config defines the application configuration structure and the
// viper-based loader that populates it from environment variables and an
// optional config file.
package config
