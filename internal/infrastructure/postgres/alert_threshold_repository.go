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

var _ repository.AlertThresholdRepository = (*AlertThresholdRepo)(nil)

// AlertThresholdRepo implementación de AlertThresholdRepository (usable con pool o tx).
type AlertThresholdRepo struct {
	q Querier
}

// NewAlertThresholdRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertThresholdRepository(q Querier) *AlertThresholdRepo {
	return &AlertThresholdRepo{q: q}
}

// Get obtiene el umbral del par; domain.ErrNotFound si no hay configuración.
func (r *AlertThresholdRepo) Get(ctx context.Context, branchID, productID string) (*entity.AlertThreshold, error) {
	query := `
		SELECT branch_id, product_id, threshold, updated_at
		FROM alert_thresholds WHERE branch_id = $1 AND product_id = $2`
	var th entity.AlertThreshold
	err := r.q.QueryRow(ctx, query, branchID, productID).Scan(
		&th.BranchID, &th.ProductID, &th.Threshold, &th.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get alert threshold: %w", err)
	}
	return &th, nil
}

// Upsert inserta o actualiza el umbral del par.
func (r *AlertThresholdRepo) Upsert(ctx context.Context, threshold *entity.AlertThreshold) error {
	query := `
		INSERT INTO alert_thresholds (branch_id, product_id, threshold, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (branch_id, product_id)
		DO UPDATE SET threshold = EXCLUDED.threshold, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, threshold.BranchID, threshold.ProductID, threshold.Threshold, threshold.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert alert threshold: %w", err)
	}
	return nil
}

// Delete elimina el umbral del par; domain.ErrNotFound si no existía.
func (r *AlertThresholdRepo) Delete(ctx context.Context, branchID, productID string) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM alert_thresholds WHERE branch_id = $1 AND product_id = $2`, branchID, productID)
	if err != nil {
		return fmt.Errorf("delete alert threshold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los umbrales, ordenados por sucursal y producto.
func (r *AlertThresholdRepo) List(ctx context.Context) ([]*entity.AlertThreshold, error) {
	query := `
		SELECT branch_id, product_id, threshold, updated_at
		FROM alert_thresholds ORDER BY branch_id, product_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list alert thresholds: %w", err)
	}
	defer rows.Close()

	var ths []*entity.AlertThreshold
	for rows.Next() {
		var th entity.AlertThreshold
		if err := rows.Scan(&th.BranchID, &th.ProductID, &th.Threshold, &th.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan alert threshold: %w", err)
		}
		ths = append(ths, &th)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list alert thresholds: %w", err)
	}
	return ths, nil
}
