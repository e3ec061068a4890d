package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sbilibin2017/coinwatch/internal/configs/db"
	"github.com/sbilibin2017/coinwatch/internal/report"
)

// moviereport is a one-shot batch tool: it runs aggregate queries over the
// imported movies dataset and writes CSV exports for offline charting.
func main() {
	if err := parseFlags(); err != nil {
		log.Fatal(err)
	}

	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

var (
	databaseDSN string
	outDir      string
)

func init() {
	pflag.StringVarP(&databaseDSN, "database-dsn", "d", "", "PostgreSQL DSN connection string")
	pflag.StringVarP(&outDir, "out", "o", "exports", "output directory for CSV exports")
}

func parseFlags() error {
	pflag.Parse()

	if len(pflag.Args()) > 0 {
		return errors.New("unknown flags or arguments are provided")
	}

	_ = godotenv.Load()

	if env := os.Getenv("DATABASE_DSN"); env != "" {
		databaseDSN = env
	}
	if databaseDSN == "" {
		return errors.New("database DSN is required")
	}
	return nil
}

func run(ctx context.Context) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	dbConn, err := db.New("pgx", databaseDSN,
		db.WithMaxOpenConns(4),
		db.WithMaxIdleConns(2),
		db.WithConnMaxLifetime(30*time.Minute),
	)
	if err != nil {
		return err
	}
	defer func() { _ = dbConn.Close() }()

	return report.New(dbConn, logger).Export(ctx, outDir)
}
