package config

import (
	"os"
	"strings"
)

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok {
		return ":8080"
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}
