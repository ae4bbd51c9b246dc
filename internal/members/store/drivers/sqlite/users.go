package sqlite

import (
	"context"
	"database/sql"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
)

type usersRepo struct {
	db  dbtx
	now func() time.Time
}

const userColumns = `id, username, known_as, password_hash, created_at, updated_at, last_active`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.Identity, error) {
	var (
		u                    domain.Identity
		createdAt, updatedAt int64
		lastActive           sql.NullInt64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.KnownAs, &u.PasswordHash, &createdAt, &updatedAt, &lastActive); err != nil {
		return domain.Identity{}, err
	}
	u.CreatedAt = fromUnix(createdAt)
	u.UpdatedAt = fromUnix(updatedAt)
	if lastActive.Valid {
		u.LastActive = fromUnix(lastActive.Int64)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.Identity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.Identity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.Identity) (int64, error) {
	now := unix(r.now())
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, known_as, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.KnownAs, u.PasswordHash, now, now,
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *usersRepo) UpdateKnownAs(ctx context.Context, id int64, knownAs string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET known_as = ?, updated_at = ? WHERE id = ?`,
		knownAs, unix(r.now()), id,
	)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

// TouchLastActive does not bump updated_at; activity is not a profile edit.
func (r *usersRepo) TouchLastActive(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET last_active = ? WHERE id = ?`, unix(at), id)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *usersRepo) ListWithRoles(ctx context.Context) ([]domain.UserWithRoles, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.username, COALESCE(group_concat(r.name, ','), '')
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		LEFT JOIN roles r ON r.id = ur.role_id
		GROUP BY u.id, u.username
		ORDER BY u.username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.UserWithRoles{}
	for rows.Next() {
		var (
			u     domain.UserWithRoles
			names string
		)
		if err := rows.Scan(&u.ID, &u.Username, &names); err != nil {
			return nil, err
		}
		u.Roles = splitRoles(names)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

// splitRoles parses a group_concat list; role names cannot contain commas.
func splitRoles(s string) []string {
	if s == "" {
		return []string{}
	}
	names := strings.Split(s, ",")
	slices.Sort(names)
	return names
}
