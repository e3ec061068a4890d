package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// defaultChunkSize is the number of rows inserted per statement.
const defaultChunkSize = 1000

// Importer loads the movies dataset CSV files into Postgres. It is a one-shot
// batch tool and shares nothing with the exporter at runtime.
type Importer struct {
	db        *sqlx.DB
	log       *zap.Logger
	chunkSize int
}

// New creates an Importer over the given database connection.
func New(db *sqlx.DB, log *zap.Logger) *Importer {
	return &Importer{
		db:        db,
		log:       log,
		chunkSize: defaultChunkSize,
	}
}

// ImportAll imports every known dataset file found under dir. A missing or
// failing file is logged and skipped; the run continues with the next file.
func (i *Importer) ImportAll(ctx context.Context, dir string) {
	files := []struct {
		name string
		load func(ctx context.Context, path string) (int, error)
	}{
		{"movies_metadata.csv", i.ImportMovies},
		{"links.csv", i.ImportLinks},
		{"credits.csv", i.ImportCredits},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err != nil {
			i.log.Warn("file not found, skipping", zap.String("file", path))
			continue
		}
		rows, err := f.load(ctx, path)
		if err != nil {
			i.log.Error("import failed", zap.String("file", path), zap.Error(err))
			continue
		}
		i.log.Info("file imported", zap.String("file", path), zap.Int("rows", rows))
	}
}

// ImportMovies loads movies_metadata.csv into the movies_metadata table.
func (i *Importer) ImportMovies(ctx context.Context, path string) (int, error) {
	const query = `
		INSERT INTO movies_metadata (
			adult, belongs_to_collection, budget, genres, homepage, id, imdb_id,
			original_language, original_title, overview, popularity, poster_path,
			production_companies, production_countries, release_date, revenue,
			runtime, spoken_languages, status, tagline, title, video,
			vote_average, vote_count
		) VALUES (
			:adult, :belongs_to_collection, :budget, :genres, :homepage, :id, :imdb_id,
			:original_language, :original_title, :overview, :popularity, :poster_path,
			:production_companies, :production_countries, :release_date, :revenue,
			:runtime, :spoken_languages, :status, :tagline, :title, :video,
			:vote_average, :vote_count
		) ON CONFLICT DO NOTHING`

	return i.importFile(ctx, path, query, func(row *csvRow) (any, error) {
		return i.parseMovie(row)
	})
}

// ImportLinks loads links.csv into the links table.
func (i *Importer) ImportLinks(ctx context.Context, path string) (int, error) {
	const query = `
		INSERT INTO links (movie_id, imdb_id, tmdb_id)
		VALUES (:movie_id, :imdb_id, :tmdb_id)
		ON CONFLICT DO NOTHING`

	return i.importFile(ctx, path, query, func(row *csvRow) (any, error) {
		return parseLink(row)
	})
}

// ImportCredits loads credits.csv into the credits table.
func (i *Importer) ImportCredits(ctx context.Context, path string) (int, error) {
	const query = `
		INSERT INTO credits ("cast", crew, id)
		VALUES (:cast, :crew, :id)
		ON CONFLICT DO NOTHING`

	return i.importFile(ctx, path, query, func(row *csvRow) (any, error) {
		return i.parseCredit(row)
	})
}

// importFile streams a CSV file in chunks, converting each row with parse and
// inserting full chunks with a single named statement. Rows that fail to
// parse are logged and skipped.
func (i *Importer) importFile(
	ctx context.Context,
	path string,
	query string,
	parse func(row *csvRow) (any, error),
) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[name] = idx
	}

	total := 0
	chunk := make([]any, 0, i.chunkSize)
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			i.log.Warn("malformed csv row, skipping", zap.Int("line", line), zap.Error(err))
			continue
		}

		row := &csvRow{columns: columns, fields: record}
		parsed, err := parse(row)
		if err != nil {
			i.log.Warn("unparseable row, skipping", zap.Int("line", line), zap.Error(err))
			continue
		}
		chunk = append(chunk, parsed)

		if len(chunk) >= i.chunkSize {
			if err := i.insertChunk(ctx, query, chunk); err != nil {
				return total, err
			}
			total += len(chunk)
			chunk = chunk[:0]
		}
	}

	if len(chunk) > 0 {
		if err := i.insertChunk(ctx, query, chunk); err != nil {
			return total, err
		}
		total += len(chunk)
	}
	return total, nil
}

func (i *Importer) insertChunk(ctx context.Context, query string, chunk []any) error {
	if _, err := i.db.NamedExecContext(ctx, query, chunk); err != nil {
		return fmt.Errorf("insert chunk: %w", err)
	}
	return nil
}
