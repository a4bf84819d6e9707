package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is prepended to every configuration key when read from the environment,
// e.g. the "port" key is read from ECEFCONV_PORT.
const envPrefix = "ECEFCONV"

// Config holds the configuration settings for the conversion server.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port the HTTP API and monitoring endpoints listen on.
// - RateLimit: Sustained number of API requests per second accepted by the server.
// - RateBurst: Number of requests allowed to exceed RateLimit momentarily.
// - ReadTimeout, WriteTimeout: HTTP server timeouts.
// - ShutdownTimeout: Grace period for in-flight requests on shutdown.
type Config struct {
	Env             string        // Env is the current environment: local, development, production.
	Port            int           // Port is the HTTP server port.
	RateLimit       float64       // RateLimit is the number of requests per second.
	RateBurst       int           // RateBurst is the token bucket size.
	ReadTimeout     time.Duration // ReadTimeout bounds reading a request.
	WriteTimeout    time.Duration // WriteTimeout bounds writing a response.
	ShutdownTimeout time.Duration // ShutdownTimeout bounds the graceful shutdown.
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// MustLoad loads the configuration and panics if any value is invalid.
//
// Values come, in order of precedence, from ECEFCONV_* environment variables (a .env file
// in the working directory is loaded first), from the YAML file named by ECEFCONV_CONFIG,
// and from built-in defaults.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("port", "8080")
	v.SetDefault("rate_limit", "100")
	v.SetDefault("rate_burst", "20")
	v.SetDefault("read_timeout", "5s")
	v.SetDefault("write_timeout", "10s")
	v.SetDefault("shutdown_timeout", "10s")

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	port, err := strconv.Atoi(v.GetString("port"))
	if err != nil {
		panic("failed to parse port from configuration")
	}

	rateLimit, err := strconv.ParseFloat(v.GetString("rate_limit"), 64)
	if err != nil || rateLimit <= 0 {
		panic("failed to parse rate limit from configuration, must be a positive number")
	}

	rateBurst, err := strconv.Atoi(v.GetString("rate_burst"))
	if err != nil || rateBurst <= 0 {
		panic("failed to parse rate burst from configuration, must be a positive integer")
	}

	return &Config{
		Env:             v.GetString("env"),
		Port:            port,
		RateLimit:       rateLimit,
		RateBurst:       rateBurst,
		ReadTimeout:     mustDuration(v, "read_timeout"),
		WriteTimeout:    mustDuration(v, "write_timeout"),
		ShutdownTimeout: mustDuration(v, "shutdown_timeout"),
	}
}

func mustDuration(v *viper.Viper, key string) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		panic("failed to parse " + key + " from configuration")
	}
	return d
}
