package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/internal/members/metrics"
	"github.com/aussiebroadwan/rendezvous/internal/members/store"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

var reRoleName = regexp.MustCompile(`^[A-Za-z0-9]{2,32}$`)

// RoleService manages the role vocabulary and each member's role set.
type RoleService struct {
	Store store.Store
}

// CurrentRoles returns the roles userID holds, sorted.
func (s *RoleService) CurrentRoles(ctx context.Context, userID int64) ([]string, error) {
	roles, err := s.Store.Roles().ListUserRoles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list user roles: %w", ErrPersistence, err)
	}
	return roles, nil
}

// Reconcile makes userID's role set equal to desired and returns it, sorted.
// Names match existing roles case-insensitively.
//
// Additions commit in one transaction and removals in a second one, so a
// failure leaves the set in one of two known states, reported through
// *PartialFailureError. Calling Reconcile again with the same input
// finishes the job; once applied it is a no-op.
func (s *RoleService) Reconcile(ctx context.Context, userID int64, desired []string) ([]string, error) {
	l := slogx.FromContext(ctx)

	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.RoleReconciliationsTotal.WithLabelValues("invalid").Inc()
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		metrics.RoleReconciliationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: lookup user: %w", ErrPersistence, err)
	}

	want, err := s.canonicalize(ctx, desired)
	if err != nil {
		metrics.RoleReconciliationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	current, err := s.CurrentRoles(ctx, userID)
	if err != nil {
		metrics.RoleReconciliationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	toAdd := difference(want, current)
	toRemove := difference(current, want)

	if len(toAdd) == 0 && len(toRemove) == 0 {
		metrics.RoleReconciliationsTotal.WithLabelValues("noop").Inc()
		return want, nil
	}

	if len(toAdd) > 0 {
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			return tx.Roles().AddUserRoles(ctx, userID, toAdd)
		})
		if err != nil {
			l.Error("failed to add roles", slog.Int64("user_id", userID), slog.Any("roles", toAdd), slog.Any("error", err))
			metrics.RoleReconciliationsTotal.WithLabelValues("partial_add").Inc()
			return nil, &PartialFailureError{Stage: StageAdd, Err: fmt.Errorf("%w: %w", ErrPersistence, err)}
		}
	}

	if len(toRemove) > 0 {
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			return tx.Roles().RemoveUserRoles(ctx, userID, toRemove)
		})
		if err != nil {
			l.Error("failed to remove roles", slog.Int64("user_id", userID), slog.Any("roles", toRemove), slog.Any("error", err))
			metrics.RoleReconciliationsTotal.WithLabelValues("partial_remove").Inc()
			return nil, &PartialFailureError{
				Stage: StageRemove,
				Added: toAdd,
				Err:   fmt.Errorf("%w: %w", ErrPersistence, err),
			}
		}
	}

	l.Info("roles reconciled",
		slog.Int64("user_id", userID),
		slog.Any("added", toAdd),
		slog.Any("removed", toRemove),
	)
	metrics.RoleReconciliationsTotal.WithLabelValues("ok").Inc()
	return want, nil
}

// ReconcileByUsername is Reconcile for the member called username.
func (s *RoleService) ReconcileByUsername(ctx context.Context, username string, desired []string) ([]string, error) {
	ident, err := s.Store.Users().GetUserByUsername(ctx, NormalizeUsername(username))
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: lookup user: %w", ErrPersistence, err)
	}
	return s.Reconcile(ctx, ident.ID, desired)
}

// ListAll returns the role vocabulary ordered by name.
func (s *RoleService) ListAll(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.Store.Roles().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list roles: %w", ErrPersistence, err)
	}
	return roles, nil
}

// CreateRole adds name to the vocabulary.
func (s *RoleService) CreateRole(ctx context.Context, name string) (domain.Role, error) {
	name = strings.TrimSpace(name)
	if !reRoleName.MatchString(name) {
		return domain.Role{}, invalid("name", "must be 2-32 characters of a-z, A-Z or 0-9")
	}

	var role domain.Role
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		role, err = tx.Roles().CreateRole(ctx, name)
		return err
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.Role{}, fmt.Errorf("%w: role %q", ErrAlreadyExists, name)
	case err != nil:
		return domain.Role{}, fmt.Errorf("%w: create role: %w", ErrPersistence, err)
	}

	slogx.FromContext(ctx).Info("role created", slog.String("role", role.Name))
	return role, nil
}

// canonicalize maps names onto the stored spelling of existing roles,
// dropping duplicates. The result is sorted.
func (s *RoleService) canonicalize(ctx context.Context, names []string) ([]string, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]string, len(all))
	for _, r := range all {
		known[strings.ToLower(r.Name)] = r.Name
	}

	out := make([]string, 0, len(names))
	var unknown []string
	for _, n := range names {
		canon, ok := known[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		out = append(out, canon)
	}
	if len(unknown) > 0 {
		return nil, invalid("roleNames", "unknown role(s): "+strings.Join(unknown, ", "))
	}

	slices.Sort(out)
	return slices.Compact(out), nil
}

// difference returns the elements of a not in b.
func difference(a, b []string) []string {
	out := []string{}
	for _, v := range a {
		if !slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}
