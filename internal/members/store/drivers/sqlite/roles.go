package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/internal/members/store"
)

type rolesRepo struct {
	db  dbtx
	now func() time.Time
}

func scanRole(row rowScanner) (domain.Role, error) {
	var (
		r         domain.Role
		createdAt int64
	)
	if err := row.Scan(&r.ID, &r.Name, &r.Builtin, &createdAt); err != nil {
		return domain.Role{}, err
	}
	r.CreatedAt = fromUnix(createdAt)
	return r, nil
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, builtin, created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, builtin, created_at FROM roles WHERE name = ?`, name)
	role, err := scanRole(row)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) CreateRole(ctx context.Context, name string) (domain.Role, error) {
	now := r.now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO roles (name, builtin, created_at) VALUES (?, 0, ?)`,
		name, unix(now),
	)
	if err != nil {
		return domain.Role{}, mapConstraint(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Role{}, err
	}
	return domain.Role{ID: id, Name: name, CreatedAt: fromUnix(unix(now))}, nil
}

func (r *rolesRepo) ListUserRoles(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.name
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = ?
		ORDER BY r.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *rolesRepo) AddUserRoles(ctx context.Context, userID int64, names []string) error {
	now := unix(r.now())
	for _, name := range names {
		role, err := r.GetRoleByName(ctx, name)
		if err != nil {
			return err
		}
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id, created_at) VALUES (?, ?, ?)
			 ON CONFLICT (user_id, role_id) DO NOTHING`,
			userID, role.ID, now,
		); err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *rolesRepo) RemoveUserRoles(ctx context.Context, userID int64, names []string) error {
	for _, name := range names {
		if _, err := r.db.ExecContext(ctx,
			`DELETE FROM user_roles WHERE user_id = ? AND role_id = (SELECT id FROM roles WHERE name = ?)`,
			userID, name,
		); err != nil {
			return err
		}
	}
	return nil
}

var _ store.Roles = (*rolesRepo)(nil)
