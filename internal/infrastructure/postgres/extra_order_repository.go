package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/promostock-api/internal/domain"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
	"github.com/jhoicas/promostock-api/internal/domain/repository"
)

var _ repository.ExtraOrderRepository = (*ExtraOrderRepo)(nil)

// ExtraOrderRepo implementación de ExtraOrderRepository (usable con pool o tx).
type ExtraOrderRepo struct {
	q Querier
}

// NewExtraOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExtraOrderRepository(q Querier) *ExtraOrderRepo {
	return &ExtraOrderRepo{q: q}
}

const extraOrderColumns = `
	id, branch_id, product_id, quantity, COALESCE(reason, ''), COALESCE(memo, ''),
	desired_date, COALESCE(desired_time, ''), status, requested_by,
	COALESCE(reviewed_by::text, ''), reviewed_at, created_at, updated_at`

func scanExtraOrder(row pgx.Row, r *entity.ExtraOrderRequest) error {
	return row.Scan(
		&r.ID, &r.BranchID, &r.ProductID, &r.Quantity, &r.Reason, &r.Memo,
		&r.DesiredDate, &r.DesiredTime, &r.Status, &r.RequestedBy,
		&r.ReviewedBy, &r.ReviewedAt, &r.CreatedAt, &r.UpdatedAt,
	)
}

// Create persiste la solicitud.
func (r *ExtraOrderRepo) Create(ctx context.Context, req *entity.ExtraOrderRequest) error {
	query := `
		INSERT INTO extra_order_requests (id, branch_id, product_id, quantity, reason, memo,
			desired_date, desired_time, status, requested_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.BranchID, req.ProductID, req.Quantity, nullIfEmpty(req.Reason),
		nullIfEmpty(req.Memo), req.DesiredDate, nullIfEmpty(req.DesiredTime),
		req.Status, req.RequestedBy, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert extra order: %w", err)
	}
	return nil
}

// GetByID obtiene la solicitud.
func (r *ExtraOrderRepo) GetByID(ctx context.Context, id string) (*entity.ExtraOrderRequest, error) {
	query := `SELECT ` + extraOrderColumns + ` FROM extra_order_requests WHERE id = $1`
	var req entity.ExtraOrderRequest
	if err := scanExtraOrder(r.q.QueryRow(ctx, query, id), &req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get extra order: %w", err)
	}
	return &req, nil
}

// GetByIDForUpdate obtiene la solicitud y bloquea su fila (SELECT FOR UPDATE).
func (r *ExtraOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ExtraOrderRequest, error) {
	query := `SELECT ` + extraOrderColumns + ` FROM extra_order_requests WHERE id = $1 FOR UPDATE`
	var req entity.ExtraOrderRequest
	if err := scanExtraOrder(r.q.QueryRow(ctx, query, id), &req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get extra order for update: %w", err)
	}
	return &req, nil
}

// UpdateReview persiste el resultado de la revisión.
func (r *ExtraOrderRepo) UpdateReview(ctx context.Context, req *entity.ExtraOrderRequest) error {
	query := `
		UPDATE extra_order_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		req.ID, req.Status, nullIfEmpty(req.ReviewedBy), req.ReviewedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update extra order review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve las solicitudes filtradas por status y/o sucursal, más reciente primero.
func (r *ExtraOrderRepo) List(ctx context.Context, status, branchID string) ([]*entity.ExtraOrderRequest, error) {
	query := `SELECT ` + extraOrderColumns + ` FROM extra_order_requests WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if branchID != "" {
		args = append(args, branchID)
		query += fmt.Sprintf(" AND branch_id = $%d", len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list extra orders: %w", err)
	}
	defer rows.Close()

	var reqs []*entity.ExtraOrderRequest
	for rows.Next() {
		var req entity.ExtraOrderRequest
		if err := scanExtraOrder(rows, &req); err != nil {
			return nil, fmt.Errorf("scan extra order: %w", err)
		}
		reqs = append(reqs, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list extra orders: %w", err)
	}
	return reqs, nil
}
