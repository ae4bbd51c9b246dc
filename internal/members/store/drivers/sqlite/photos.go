package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
)

type photosRepo struct {
	db  dbtx
	now func() time.Time
}

const photoColumns = `id, user_id, url, description, public_id, is_main, state, created_at, updated_at`

func scanPhoto(row rowScanner) (domain.Photo, error) {
	var (
		p                    domain.Photo
		publicID             sql.NullString
		state                string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.URL, &p.Description, &publicID, &p.IsMain, &state, &createdAt, &updatedAt); err != nil {
		return domain.Photo{}, err
	}
	p.PublicID = mapNullStringPtr(publicID)
	p.State = domain.PhotoState(state)
	p.CreatedAt = fromUnix(createdAt)
	p.UpdatedAt = fromUnix(updatedAt)
	return p, nil
}

func (r *photosRepo) queryPhotos(ctx context.Context, query string, args ...any) ([]domain.Photo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []domain.Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *photosRepo) CreatePhoto(ctx context.Context, p domain.Photo) (domain.Photo, error) {
	if p.State == "" {
		p.State = domain.PhotoPending
	}
	now := fromUnix(unix(r.now()))

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO photos (user_id, url, description, public_id, is_main, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.URL, p.Description, mapOptionalString(p.PublicID), p.IsMain, string(p.State), now.Unix(), now.Unix(),
	)
	if err != nil {
		return domain.Photo{}, mapConstraint(err)
	}

	if p.ID, err = res.LastInsertId(); err != nil {
		return domain.Photo{}, err
	}
	p.CreatedAt, p.UpdatedAt = now, now
	return p, nil
}

func (r *photosRepo) GetPhoto(ctx context.Context, id int64) (domain.Photo, error) {
	p, err := scanPhoto(r.db.QueryRowContext(ctx, `SELECT `+photoColumns+` FROM photos WHERE id = ?`, id))
	if err != nil {
		return domain.Photo{}, mapNotFound(err)
	}
	return p, nil
}

func (r *photosRepo) GetPhotoByPublicID(ctx context.Context, publicID string) (domain.Photo, error) {
	p, err := scanPhoto(r.db.QueryRowContext(ctx, `SELECT `+photoColumns+` FROM photos WHERE public_id = ?`, publicID))
	if err != nil {
		return domain.Photo{}, mapNotFound(err)
	}
	return p, nil
}

func (r *photosRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Photo, error) {
	return r.queryPhotos(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE user_id = ? ORDER BY created_at, id`, userID)
}

func (r *photosRepo) ListForModeration(ctx context.Context, state domain.PhotoState) ([]domain.PhotoForModeration, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.user_id, u.known_as, p.url, p.description, p.created_at, p.is_main, p.state
		FROM photos p
		JOIN users u ON u.id = p.user_id
		WHERE p.state = ?
		ORDER BY p.created_at, p.id`, string(state))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.PhotoForModeration{}
	for rows.Next() {
		var (
			m         domain.PhotoForModeration
			createdAt int64
			st        string
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.UserKnownAs, &m.URL, &m.Description, &createdAt, &m.IsMain, &st); err != nil {
			return nil, err
		}
		m.DateAdded = fromUnix(createdAt)
		m.State = domain.PhotoState(st)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *photosRepo) UpdateState(ctx context.Context, userID, photoID int64, from, to domain.PhotoState) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE photos SET state = ?, updated_at = ? WHERE id = ? AND user_id = ? AND state = ?`,
		string(to), unix(r.now()), photoID, userID, string(from),
	)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *photosRepo) DeletePhoto(ctx context.Context, userID, photoID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ? AND user_id = ?`, photoID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *photosRepo) ListStaleInState(ctx context.Context, state domain.PhotoState, cutoff time.Time, limit int) ([]domain.Photo, error) {
	return r.queryPhotos(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE state = ? AND updated_at < ? ORDER BY updated_at, id LIMIT ?`,
		string(state), unix(cutoff), limit)
}

func (r *photosRepo) CountInState(ctx context.Context, state domain.PhotoState) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos WHERE state = ?`, string(state)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
