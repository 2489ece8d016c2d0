package repository

import (
	"context"

	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// UserRepository lecturas de usuarios para el fan-out de notificaciones.
// El CRUD de usuarios vive en otro módulo.
type UserRepository interface {
	ListActiveByRoles(ctx context.Context, roles ...string) ([]*entity.User, error)
	ListActiveByBranch(ctx context.Context, branchID string) ([]*entity.User, error)
}
