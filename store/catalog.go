package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reelbase/models"
)

const movieColumns = `id, title, original_title, overview, poster_path, backdrop_path,
	popularity, vote_average, release_date, runtime`

const seriesColumns = `id, title, original_title, overview, poster_path, backdrop_path,
	popularity, vote_average, first_air_date, number_of_seasons`

func scanMovie(row interface{ Scan(...any) error }) (models.Movie, error) {
	var (
		m           models.Movie
		voteAverage sql.NullFloat64
		releaseDate sql.NullTime
		runtime     sql.NullInt64
	)
	err := row.Scan(&m.ID, &m.Title, &m.OriginalTitle, &m.Overview, &m.PosterPath,
		&m.BackdropPath, &m.Popularity, &voteAverage, &releaseDate, &runtime)
	if err != nil {
		return models.Movie{}, err
	}
	if voteAverage.Valid {
		m.VoteAverage = &voteAverage.Float64
	}
	if releaseDate.Valid {
		m.ReleaseDate = &releaseDate.Time
	}
	if runtime.Valid {
		r := int(runtime.Int64)
		m.Runtime = &r
	}
	return m, nil
}

func scanSeries(row interface{ Scan(...any) error }) (models.Series, error) {
	var (
		s            models.Series
		voteAverage  sql.NullFloat64
		firstAirDate sql.NullTime
		seasons      sql.NullInt64
	)
	err := row.Scan(&s.ID, &s.Title, &s.OriginalTitle, &s.Overview, &s.PosterPath,
		&s.BackdropPath, &s.Popularity, &voteAverage, &firstAirDate, &seasons)
	if err != nil {
		return models.Series{}, err
	}
	if voteAverage.Valid {
		s.VoteAverage = &voteAverage.Float64
	}
	if firstAirDate.Valid {
		s.FirstAirDate = &firstAirDate.Time
	}
	if seasons.Valid {
		n := int(seasons.Int64)
		s.NumberOfSeasons = &n
	}
	return s, nil
}

func (s *Store) queryMovies(ctx context.Context, query string, args ...any) ([]models.Movie, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (s *Store) querySeries(ctx context.Context, query string, args ...any) ([]models.Series, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Series{}
	for rows.Next() {
		sr, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, sr)
	}
	return list, rows.Err()
}

// Providers returns all streaming providers ordered for display.
func (s *Store) Providers(ctx context.Context) ([]models.StreamingProvider, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, logo_path, display_priority
		 FROM streaming_providers
		 ORDER BY display_priority, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := []models.StreamingProvider{}
	for rows.Next() {
		var p models.StreamingProvider
		if err := rows.Scan(&p.ID, &p.Name, &p.LogoPath, &p.DisplayPriority); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// PopularMovies returns the requested page of movies by popularity.
func (s *Store) PopularMovies(ctx context.Context, limit, offset int) ([]models.Movie, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM movies ORDER BY popularity DESC, id LIMIT $1 OFFSET $2`, movieColumns)
	return s.queryMovies(ctx, query, limit, offset)
}

// PopularSeries returns the requested page of series by popularity.
func (s *Store) PopularSeries(ctx context.Context, limit, offset int) ([]models.Series, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM series ORDER BY popularity DESC, id LIMIT $1 OFFSET $2`, seriesColumns)
	return s.querySeries(ctx, query, limit, offset)
}

// MovieByID returns a single movie or models.ErrNotFound.
func (s *Store) MovieByID(ctx context.Context, id int64) (*models.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)
	m, err := scanMovie(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SeriesByID returns a single series or models.ErrNotFound.
func (s *Store) SeriesByID(ctx context.Context, id int64) (*models.Series, error) {
	query := fmt.Sprintf(`SELECT %s FROM series WHERE id = $1`, seriesColumns)
	sr, err := scanSeries(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

// MoviesByIDs returns movies in the id set ordered by popularity
// descending. limit <= 0 disables pagination, used when the caller already
// bounded the set.
func (s *Store) MoviesByIDs(ctx context.Context, ids []int64, limit, offset int) ([]models.Movie, error) {
	placeholders, args := inArgs(1, ids)
	query := fmt.Sprintf(
		`SELECT %s FROM movies WHERE id IN (%s) ORDER BY popularity DESC, id`,
		movieColumns, placeholders)
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(ids)+1, len(ids)+2)
		args = append(args, limit, offset)
	}
	return s.queryMovies(ctx, query, args...)
}

// SeriesByIDs returns series in the id set ordered by popularity descending.
func (s *Store) SeriesByIDs(ctx context.Context, ids []int64) ([]models.Series, error) {
	placeholders, args := inArgs(1, ids)
	query := fmt.Sprintf(
		`SELECT %s FROM series WHERE id IN (%s) ORDER BY popularity DESC, id`,
		seriesColumns, placeholders)
	return s.querySeries(ctx, query, args...)
}

// MovieIDsByProviders returns distinct ids of movies with an active link to
// any of the given providers. linkType narrows to one link type when
// non-empty.
func (s *Store) MovieIDsByProviders(ctx context.Context, providerIDs []int64, linkType string) ([]int64, error) {
	placeholders, args := inArgs(1, providerIDs)
	query := fmt.Sprintf(
		`SELECT DISTINCT movie_id FROM movie_streaming
		 WHERE provider_id IN (%s) AND removed_at IS NULL`, placeholders)
	if linkType != "" {
		query += fmt.Sprintf(` AND type = $%d`, len(providerIDs)+1)
		args = append(args, linkType)
	}
	return s.queryIDs(ctx, query, args...)
}

// MovieIDsByGenre returns ids of movies linked to the genre.
func (s *Store) MovieIDsByGenre(ctx context.Context, genreID int64) ([]int64, error) {
	return s.queryIDs(ctx,
		`SELECT movie_id FROM movie_genres WHERE genre_id = $1`, genreID)
}

func (s *Store) queryIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MovieProviders returns the movie's active streaming links joined with
// their provider records.
func (s *Store) MovieProviders(ctx context.Context, movieID int64) ([]models.MovieProvider, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ms.type, p.id, p.name, p.logo_path, p.display_priority
		 FROM movie_streaming ms
		 JOIN streaming_providers p ON p.id = ms.provider_id
		 WHERE ms.movie_id = $1 AND ms.removed_at IS NULL`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []models.MovieProvider{}
	for rows.Next() {
		var mp models.MovieProvider
		err := rows.Scan(&mp.Type, &mp.Provider.ID, &mp.Provider.Name,
			&mp.Provider.LogoPath, &mp.Provider.DisplayPriority)
		if err != nil {
			return nil, err
		}
		links = append(links, mp)
	}
	return links, rows.Err()
}

// Genres returns all genres ordered by name.
func (s *Store) Genres(ctx context.Context) ([]models.Genre, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []models.Genre{}
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// SearchMovies returns up to max movies whose title or original title
// contains the query, case-insensitively, by popularity descending.
func (s *Store) SearchMovies(ctx context.Context, q string, max int) ([]models.Movie, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM movies
		 WHERE title ILIKE $1 OR original_title ILIKE $1
		 ORDER BY popularity DESC, id LIMIT $2`, movieColumns)
	return s.queryMovies(ctx, query, likePattern(q), max)
}

// SearchSeries returns up to max series whose title or original title
// contains the query, case-insensitively, by popularity descending.
func (s *Store) SearchSeries(ctx context.Context, q string, max int) ([]models.Series, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM series
		 WHERE title ILIKE $1 OR original_title ILIKE $1
		 ORDER BY popularity DESC, id LIMIT $2`, seriesColumns)
	return s.querySeries(ctx, query, likePattern(q), max)
}
