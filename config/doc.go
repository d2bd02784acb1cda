// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml, overridden from the environment
// (a .env file is honoured) and validated using struct tags.
package config
