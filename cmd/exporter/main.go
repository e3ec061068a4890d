package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Application entry point. The process exits non-zero only on irrecoverable
// startup failure; collection cycle failures are absorbed by the scheduler.
func main() {
	printBuildInfo()

	if err := parseFlags(); err != nil {
		log.Fatal(err)
	}

	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

// Build information variables.
// These are set during build time via ldflags.
var (
	buildVersion string = "N/A"
	buildDate    string = "N/A"
	buildCommit  string = "N/A"
)

// printBuildInfo prints the build version, date, and commit hash to stdout.
func printBuildInfo() {
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

var (
	updateInterval int
	port           int
	coins          string
	metricsPath    string
	apiBaseURL     string
)

// init sets up command-line flags.
func init() {
	pflag.IntVarP(&updateInterval, "interval", "i", 20, "update interval in seconds")
	pflag.IntVarP(&port, "port", "p", 8000, "exposition listen port")
	pflag.StringVarP(&coins, "coins", "c", "", "comma-separated CoinGecko asset ids")
	pflag.StringVar(&metricsPath, "metrics-path", "/metrics", "exposition HTTP path")
	pflag.StringVar(&apiBaseURL, "api-url", "", "CoinGecko API base URL")
}

func parseFlags() error {
	pflag.Parse()

	if len(pflag.Args()) > 0 {
		return errors.New("unknown flags or arguments are provided")
	}

	// Optional local .env; absence is not an error.
	_ = godotenv.Load()

	return overrideFromEnv()
}

// overrideFromEnv applies environment variables on top of flag values.
// Environment takes priority, matching the original deployment surface.
func overrideFromEnv() error {
	if env := os.Getenv("UPDATE_INTERVAL"); env != "" {
		val, err := strconv.Atoi(env)
		if err != nil {
			return errors.New("invalid UPDATE_INTERVAL: must be an integer")
		}
		updateInterval = val
	}
	if env := os.Getenv("EXPORTER_PORT"); env != "" {
		val, err := strconv.Atoi(env)
		if err != nil {
			return errors.New("invalid EXPORTER_PORT: must be an integer")
		}
		port = val
	}
	if env := os.Getenv("COINS"); env != "" {
		coins = env
	}
	if env := os.Getenv("METRICS_PATH"); env != "" {
		metricsPath = env
	}
	if env := os.Getenv("COINGECKO_URL"); env != "" {
		apiBaseURL = env
	}
	return nil
}
