package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Report runs aggregate queries over the imported movies dataset and writes
// the resulting datasets as CSV exports. Chart rendering happens elsewhere;
// this tool produces the numbers behind the charts.
type Report struct {
	db  *sqlx.DB
	log *zap.Logger
}

// New creates a Report over the given database connection.
func New(db *sqlx.DB, log *zap.Logger) *Report {
	return &Report{db: db, log: log}
}

// GenreCount is one genre with its movie count.
type GenreCount struct {
	Genre      string `db:"genre"`
	MovieCount int64  `db:"movie_count"`
}

// YearlyFinance aggregates budget and revenue per release year.
type YearlyFinance struct {
	ReleaseYear int     `db:"release_year"`
	AvgBudget   float64 `db:"avg_budget"`
	AvgRevenue  float64 `db:"avg_revenue"`
	MovieCount  int64   `db:"movie_count"`
}

// RuntimeBucket is one 10-minute runtime bucket with its movie count.
type RuntimeBucket struct {
	BucketMinutes int   `db:"bucket_minutes"`
	MovieCount    int64 `db:"movie_count"`
}

// GenreDistribution counts movies per genre extracted from the genres JSONB.
func (r *Report) GenreDistribution(ctx context.Context) ([]GenreCount, error) {
	const query = `
		SELECT
			jsonb_extract_path_text(genre, 'name') AS genre,
			COUNT(*) AS movie_count
		FROM movies_metadata m,
			jsonb_array_elements(m.genres) AS genre
		WHERE m.genres IS NOT NULL
		  AND jsonb_typeof(m.genres) = 'array'
		GROUP BY jsonb_extract_path_text(genre, 'name')
		ORDER BY movie_count DESC`

	var rows []GenreCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("genre distribution: %w", err)
	}
	return rows, nil
}

// YearlyBudgetRevenue averages budget and revenue per release year for movies
// with real financial data.
func (r *Report) YearlyBudgetRevenue(ctx context.Context) ([]YearlyFinance, error) {
	const query = `
		SELECT
			EXTRACT(YEAR FROM m.release_date)::int AS release_year,
			AVG(m.budget) AS avg_budget,
			AVG(m.revenue) AS avg_revenue,
			COUNT(*) AS movie_count
		FROM movies_metadata m
		WHERE m.release_date IS NOT NULL
		  AND m.budget > 0
		  AND m.revenue > 0
		  AND EXTRACT(YEAR FROM m.release_date) BETWEEN 1980 AND 2020
		GROUP BY EXTRACT(YEAR FROM m.release_date)
		ORDER BY release_year`

	var rows []YearlyFinance
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("yearly budget/revenue: %w", err)
	}
	return rows, nil
}

// RuntimeDistribution buckets movie runtimes into 10-minute bins.
func (r *Report) RuntimeDistribution(ctx context.Context) ([]RuntimeBucket, error) {
	const query = `
		SELECT
			(FLOOR(m.runtime / 10) * 10)::int AS bucket_minutes,
			COUNT(*) AS movie_count
		FROM movies_metadata m
		WHERE m.runtime IS NOT NULL
		  AND m.runtime BETWEEN 1 AND 400
		GROUP BY FLOOR(m.runtime / 10)
		ORDER BY bucket_minutes`

	var rows []RuntimeBucket
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("runtime distribution: %w", err)
	}
	return rows, nil
}

// Export runs every report and writes one CSV per report into outDir.
// A failing report is logged and skipped so the remaining exports still run.
func (r *Report) Export(ctx context.Context, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if rows, err := r.GenreDistribution(ctx); err != nil {
		r.log.Error("genre distribution failed", zap.Error(err))
	} else {
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{row.Genre, strconv.FormatInt(row.MovieCount, 10)})
		}
		r.export(filepath.Join(outDir, "genre_distribution.csv"),
			[]string{"genre", "movie_count"}, records)
	}

	if rows, err := r.YearlyBudgetRevenue(ctx); err != nil {
		r.log.Error("yearly budget/revenue failed", zap.Error(err))
	} else {
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{
				strconv.Itoa(row.ReleaseYear),
				strconv.FormatFloat(row.AvgBudget, 'f', 2, 64),
				strconv.FormatFloat(row.AvgRevenue, 'f', 2, 64),
				strconv.FormatInt(row.MovieCount, 10),
			})
		}
		r.export(filepath.Join(outDir, "yearly_budget_revenue.csv"),
			[]string{"release_year", "avg_budget", "avg_revenue", "movie_count"}, records)
	}

	if rows, err := r.RuntimeDistribution(ctx); err != nil {
		r.log.Error("runtime distribution failed", zap.Error(err))
	} else {
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{
				strconv.Itoa(row.BucketMinutes),
				strconv.FormatInt(row.MovieCount, 10),
			})
		}
		r.export(filepath.Join(outDir, "runtime_distribution.csv"),
			[]string{"bucket_minutes", "movie_count"}, records)
	}

	return nil
}

func (r *Report) export(path string, header []string, records [][]string) {
	if err := writeCSV(path, header, records); err != nil {
		r.log.Error("export failed", zap.String("file", path), zap.Error(err))
		return
	}
	r.log.Info("report exported", zap.String("file", path), zap.Int("rows", len(records)))
}

func writeCSV(path string, header []string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
