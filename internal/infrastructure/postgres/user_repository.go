package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/promostock-api/internal/domain/entity"
	"github.com/jhoicas/promostock-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo lecturas de usuarios para el fan-out de notificaciones.
type UserRepo struct {
	q Querier
}

func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, name, role, COALESCE(branch_id::text, ''), is_active, created_at`

func (r *UserRepo) scanUsers(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.BranchID, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	return users, nil
}

// ListActiveByRoles usuarios activos con alguno de los roles dados.
func (r *UserRepo) ListActiveByRoles(ctx context.Context, roles ...string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_active AND role = ANY($1) ORDER BY name`
	return r.scanUsers(ctx, query, roles)
}

// ListActiveByBranch usuarios activos asignados a la sucursal.
func (r *UserRepo) ListActiveByBranch(ctx context.Context, branchID string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_active AND branch_id = $1 ORDER BY name`
	return r.scanUsers(ctx, query, branchID)
}
