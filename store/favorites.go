package store

import (
	"context"
	"database/sql"
	"errors"

	"reelbase/models"
)

func scanFavorite(row interface{ Scan(...any) error }) (models.Favorite, error) {
	var f models.Favorite
	err := row.Scan(&f.ID, &f.UserID, &f.ContentType, &f.ContentID, &f.AddedAt)
	return f, err
}

// InsertFavorite adds a favorite. When the triple already exists the stored
// row is returned with created=false; duplicate adds are not an error.
func (s *Store) InsertFavorite(ctx context.Context, userID, contentType string, contentID int64) (*models.Favorite, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO favorites (user_id, content_type, content_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, content_type, content_id) DO NOTHING
		 RETURNING id, user_id, content_type, content_id, added_at`,
		userID, contentType, contentID)

	f, err := scanFavorite(row)
	if err == nil {
		return &f, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	// Conflict: the insert was a no-op, fetch the pre-existing row.
	row = s.db.QueryRowContext(ctx,
		`SELECT id, user_id, content_type, content_id, added_at
		 FROM favorites
		 WHERE user_id = $1 AND content_type = $2 AND content_id = $3`,
		userID, contentType, contentID)
	f, err = scanFavorite(row)
	if err != nil {
		return nil, false, err
	}
	return &f, false, nil
}

// DeleteFavorite removes a favorite by its triple key. Deleting a favorite
// that does not exist is a no-op, not an error.
func (s *Store) DeleteFavorite(ctx context.Context, userID, contentType string, contentID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites
		 WHERE user_id = $1 AND content_type = $2 AND content_id = $3`,
		userID, contentType, contentID)
	return err
}

// FavoritesByUser returns all of a user's favorites, newest first.
func (s *Store) FavoritesByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, content_type, content_id, added_at
		 FROM favorites
		 WHERE user_id = $1
		 ORDER BY added_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []models.Favorite{}
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}
