package config

import (
	"github.com/CWSHBR/echoing/internal/server"
	"github.com/CWSHBR/echoing/util/conf"
)

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Http is the configuration for the standalone http server
	Http server.HttpConfig `conf:"http"`
}

var DefaultConfig = conf.DefaultConfig{
	"log_level":  "info",
	"log_format": "production",
	"http.host":  "localhost",
	"http.port":  8080,
	"http.h2c":   false,
}
