package main

import (
	"fmt"
	"strconv"
	"time"
)

const (
	defaultPort       = "8080"
	defaultAPITimeout = 5 * time.Second
)

type config struct {
	Port           string
	// UseStub mounts the built-in cart api when no CART_API_URL is configured.
	UseStub        bool
	CartAPIURL     string
	CartAPIToken   string
	CartAPITimeout time.Duration
	CartAPIDebug   bool
	ProjectID      string
}

func loadConfig(getenv func(string) string) (config, error) {
	cfg := config{
		Port:           getenv("PORT"),
		CartAPIURL:     getenv("CART_API_URL"),
		CartAPIToken:   getenv("CART_API_TOKEN"),
		CartAPITimeout: defaultAPITimeout,
		ProjectID:      getenv("GOOGLE_CLOUD_PROJECT"),
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if s := getenv("CART_API_TIMEOUT"); s != "" {
		timeout, err := time.ParseDuration(s)
		if err != nil || timeout <= 0 {
			return config{}, fmt.Errorf("invalid CART_API_TIMEOUT %q: expected a positive duration like 5s", s)
		}
		cfg.CartAPITimeout = timeout
	}

	if s := getenv("CART_API_DEBUG"); s != "" {
		debug, err := strconv.ParseBool(s)
		if err != nil {
			return config{}, fmt.Errorf("invalid CART_API_DEBUG %q: %w", s, err)
		}
		cfg.CartAPIDebug = debug
	}

	if cfg.CartAPIURL == "" {
		cfg.UseStub = true
		cfg.CartAPIURL = fmt.Sprintf("http://localhost:%s%s", cfg.Port, stubPathPrefix)
	}

	return cfg, nil
}
