package importer

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// csvRow gives header-indexed access to one CSV record. Columns missing from
// the header or beyond the record length read as empty.
type csvRow struct {
	columns map[string]int
	fields  []string
}

func (r *csvRow) get(column string) string {
	idx, ok := r.columns[column]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return r.fields[idx]
}

// movieRow mirrors the movies_metadata table. Nullable columns are pointers.
type movieRow struct {
	Adult               *bool      `db:"adult"`
	BelongsToCollection *string    `db:"belongs_to_collection"`
	Budget              *int64     `db:"budget"`
	Genres              *string    `db:"genres"`
	Homepage            *string    `db:"homepage"`
	ID                  int64      `db:"id"`
	IMDBID              *string    `db:"imdb_id"`
	OriginalLanguage    *string    `db:"original_language"`
	OriginalTitle       *string    `db:"original_title"`
	Overview            *string    `db:"overview"`
	Popularity          *float64   `db:"popularity"`
	PosterPath          *string    `db:"poster_path"`
	ProductionCompanies *string    `db:"production_companies"`
	ProductionCountries *string    `db:"production_countries"`
	ReleaseDate         *time.Time `db:"release_date"`
	Revenue             *int64     `db:"revenue"`
	Runtime             *float64   `db:"runtime"`
	SpokenLanguages     *string    `db:"spoken_languages"`
	Status              *string    `db:"status"`
	Tagline             *string    `db:"tagline"`
	Title               *string    `db:"title"`
	Video               *bool      `db:"video"`
	VoteAverage         *float64   `db:"vote_average"`
	VoteCount           *int64     `db:"vote_count"`
}

// linkRow mirrors the links table.
type linkRow struct {
	MovieID int64   `db:"movie_id"`
	IMDBID  *string `db:"imdb_id"`
	TMDBID  *int64  `db:"tmdb_id"`
}

// creditRow mirrors the credits table.
type creditRow struct {
	Cast *string `db:"cast"`
	Crew *string `db:"crew"`
	ID   int64   `db:"id"`
}

func (i *Importer) parseMovie(row *csvRow) (*movieRow, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(row.get("id")), 10, 64)
	if err != nil {
		return nil, errors.New("missing or non-integer id")
	}

	return &movieRow{
		Adult:               parseBool(row.get("adult")),
		BelongsToCollection: i.normalizeJSON(row.get("belongs_to_collection")),
		Budget:              nullInt(row.get("budget")),
		Genres:              i.normalizeJSON(row.get("genres")),
		Homepage:            nullString(row.get("homepage")),
		ID:                  id,
		IMDBID:              nullString(row.get("imdb_id")),
		OriginalLanguage:    nullString(row.get("original_language")),
		OriginalTitle:       nullString(row.get("original_title")),
		Overview:            nullString(row.get("overview")),
		Popularity:          nullFloat(row.get("popularity")),
		PosterPath:          nullString(row.get("poster_path")),
		ProductionCompanies: i.normalizeJSON(row.get("production_companies")),
		ProductionCountries: i.normalizeJSON(row.get("production_countries")),
		ReleaseDate:         parseDate(row.get("release_date")),
		Revenue:             nullInt(row.get("revenue")),
		Runtime:             nullFloat(row.get("runtime")),
		SpokenLanguages:     i.normalizeJSON(row.get("spoken_languages")),
		Status:              nullString(row.get("status")),
		Tagline:             nullString(row.get("tagline")),
		Title:               nullString(row.get("title")),
		Video:               parseBool(row.get("video")),
		VoteAverage:         nullFloat(row.get("vote_average")),
		VoteCount:           nullInt(row.get("vote_count")),
	}, nil
}

func parseLink(row *csvRow) (*linkRow, error) {
	movieID, err := strconv.ParseInt(strings.TrimSpace(row.get("movieId")), 10, 64)
	if err != nil {
		return nil, errors.New("missing or non-integer movieId")
	}

	return &linkRow{
		MovieID: movieID,
		IMDBID:  nullString(row.get("imdbId")),
		TMDBID:  nullInt(row.get("tmdbId")),
	}, nil
}

func (i *Importer) parseCredit(row *csvRow) (*creditRow, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(row.get("id")), 10, 64)
	if err != nil {
		return nil, errors.New("missing or non-integer id")
	}

	return &creditRow{
		Cast: i.normalizeJSON(row.get("cast")),
		Crew: i.normalizeJSON(row.get("crew")),
		ID:   id,
	}, nil
}

// pseudoJSONReplacer rewrites Python literal syntax into JSON. It is a rough
// translation: values containing embedded quotes stay unparseable and are
// dropped, matching the source tool's behavior of nulling such cells.
var pseudoJSONReplacer = strings.NewReplacer(
	"'", `"`,
	"None", "null",
	"True", "true",
	"False", "false",
)

// normalizeJSON converts a CSV cell holding JSON or a Python literal
// list/dict into valid JSON. Unparseable cells become NULL with a warning.
func (i *Importer) normalizeJSON(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}

	if json.Valid([]byte(s)) {
		return &s
	}

	cleaned := pseudoJSONReplacer.Replace(s)
	if json.Valid([]byte(cleaned)) {
		return &cleaned
	}

	i.log.Warn("could not parse pseudo-JSON cell", zap.String("value", truncate(raw, 100)))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func nullString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func nullInt(s string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func nullFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseBool mirrors the source tool's coercion: anything but "true"
// (case-insensitive) is false, never NULL.
func parseBool(s string) *bool {
	b := strings.EqualFold(strings.TrimSpace(s), "true")
	return &b
}

// parseDate coerces a YYYY-MM-DD cell, nulling anything unparseable.
func parseDate(s string) *time.Time {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}
