package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"reelbase/models"
)

// ratings tables are symmetric for movies and series; the table and title
// column are chosen per media type and never come from user input.
func ratingTable(mediaType string) (table, titleCol string) {
	if mediaType == models.MediaTypeSeries {
		return "user_series_ratings", "series_id"
	}
	return "user_movie_ratings", "movie_id"
}

func scanRating(row interface{ Scan(...any) error }) (models.UserRating, error) {
	var (
		r           models.UserRating
		rating      sql.NullInt64
		watchedDate sql.NullTime
	)
	err := row.Scan(&r.UserID, &r.TitleID, &rating, &r.Watched, &watchedDate, &r.UpdatedAt)
	if err != nil {
		return models.UserRating{}, err
	}
	if rating.Valid {
		v := int(rating.Int64)
		r.Rating = &v
	}
	if watchedDate.Valid {
		r.WatchedDate = &watchedDate.Time
	}
	return r, nil
}

// Rating returns one user's rating row for a title, or (nil, nil) when no
// row exists. Absence of a rating is a valid state, not an error.
func (s *Store) Rating(ctx context.Context, mediaType, userID string, titleID int64) (*models.UserRating, error) {
	table, titleCol := ratingTable(mediaType)
	query := fmt.Sprintf(
		`SELECT user_id, %s, rating, watched, watched_date, updated_at
		 FROM %s WHERE user_id = $1 AND %s = $2`, titleCol, table, titleCol)
	r, err := scanRating(s.db.QueryRowContext(ctx, query, userID, titleID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpsertRating creates or updates the user's rating for a title, touching
// only the rating and updated_at columns. Watched state is left as is.
func (s *Store) UpsertRating(ctx context.Context, mediaType, userID string, titleID int64, rating int) (*models.UserRating, error) {
	table, titleCol := ratingTable(mediaType)
	query := fmt.Sprintf(
		`INSERT INTO %s (user_id, %s, rating, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (user_id, %s)
		 DO UPDATE SET rating = EXCLUDED.rating, updated_at = now()
		 RETURNING user_id, %s, rating, watched, watched_date, updated_at`,
		table, titleCol, titleCol, titleCol)
	r, err := scanRating(s.db.QueryRowContext(ctx, query, userID, titleID, rating))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpsertWatched creates or updates the user's watched state for a title,
// writing the given watched date in lock-step with the flag and leaving any
// rating untouched.
func (s *Store) UpsertWatched(ctx context.Context, mediaType, userID string, titleID int64, watched bool, watchedDate *time.Time) (*models.UserRating, error) {
	table, titleCol := ratingTable(mediaType)
	query := fmt.Sprintf(
		`INSERT INTO %s (user_id, %s, watched, watched_date, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (user_id, %s)
		 DO UPDATE SET watched = EXCLUDED.watched, watched_date = EXCLUDED.watched_date, updated_at = now()
		 RETURNING user_id, %s, rating, watched, watched_date, updated_at`,
		table, titleCol, titleCol, titleCol)
	r, err := scanRating(s.db.QueryRowContext(ctx, query, userID, titleID, watched, watchedDate))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RatingsByOthers returns scored movie rating rows from every user except
// the given one, projecting only what the ranking needs.
func (s *Store) RatingsByOthers(ctx context.Context, userID string) ([]models.UserRating, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, movie_id, rating, watched, watched_date, updated_at
		 FROM user_movie_ratings
		 WHERE user_id <> $1 AND rating IS NOT NULL`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRatings(rows)
}

// WatchedByOthers returns up to max watched rating rows for the media type
// from every user except the given one, most recently watched first.
func (s *Store) WatchedByOthers(ctx context.Context, mediaType, userID string, max int) ([]models.UserRating, error) {
	table, titleCol := ratingTable(mediaType)
	query := fmt.Sprintf(
		`SELECT user_id, %s, rating, watched, watched_date, updated_at
		 FROM %s
		 WHERE user_id <> $1 AND watched AND watched_date IS NOT NULL
		 ORDER BY watched_date DESC LIMIT $2`, titleCol, table)
	rows, err := s.db.QueryContext(ctx, query, userID, max)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRatings(rows)
}

func collectRatings(rows *sql.Rows) ([]models.UserRating, error) {
	ratings := []models.UserRating{}
	for rows.Next() {
		r, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}
