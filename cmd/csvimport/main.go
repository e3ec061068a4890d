package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pressly/goose"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sbilibin2017/coinwatch/internal/configs/db"
	"github.com/sbilibin2017/coinwatch/internal/importer"
)

// csvimport is a one-shot batch tool: it migrates the movies schema and loads
// the dataset CSV files into Postgres. It shares no runtime with the exporter.
func main() {
	if err := parseFlags(); err != nil {
		log.Fatal(err)
	}

	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

var (
	databaseDSN   string
	dataDir       string
	migrationsDir string
)

func init() {
	pflag.StringVarP(&databaseDSN, "database-dsn", "d", "", "PostgreSQL DSN connection string")
	pflag.StringVar(&dataDir, "data-dir", ".", "directory containing the dataset CSV files")
	pflag.StringVar(&migrationsDir, "migrations", "migrations", "goose migrations directory")
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

	if err := goose.Up(dbConn.DB, migrationsDir); err != nil {
		return err
	}

	logger.Info("starting csv import", zap.String("dir", dataDir))
	importer.New(dbConn, logger).ImportAll(ctx, dataDir)
	return nil
}
