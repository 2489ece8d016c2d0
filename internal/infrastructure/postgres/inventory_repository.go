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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre la tabla derivada
// inventory (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene el agregado del par; domain.ErrNotFound si aún no se materializó.
func (r *InventoryRepo) Get(ctx context.Context, branchID, productID string) (*entity.InventoryAggregate, error) {
	query := `
		SELECT branch_id, product_id, total_ordered, total_shipped, updated_at
		FROM inventory WHERE branch_id = $1 AND product_id = $2`
	var agg entity.InventoryAggregate
	err := r.q.QueryRow(ctx, query, branchID, productID).Scan(
		&agg.BranchID, &agg.ProductID, &agg.TotalOrdered, &agg.TotalShipped, &agg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &agg, nil
}

// GetForUpdate obtiene el agregado y bloquea la fila (SELECT FOR UPDATE) para
// mantener chequeo y escritura en la misma ventana frente a otros escritores.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, branchID, productID string) (*entity.InventoryAggregate, error) {
	query := `
		SELECT branch_id, product_id, total_ordered, total_shipped, updated_at
		FROM inventory WHERE branch_id = $1 AND product_id = $2
		FOR UPDATE`
	var agg entity.InventoryAggregate
	err := r.q.QueryRow(ctx, query, branchID, productID).Scan(
		&agg.BranchID, &agg.ProductID, &agg.TotalOrdered, &agg.TotalShipped, &agg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &agg, nil
}

// Upsert inserta o actualiza la fila del agregado del par.
func (r *InventoryRepo) Upsert(ctx context.Context, agg *entity.InventoryAggregate) error {
	query := `
		INSERT INTO inventory (branch_id, product_id, total_ordered, total_shipped, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (branch_id, product_id)
		DO UPDATE SET total_ordered = EXCLUDED.total_ordered,
		              total_shipped = EXCLUDED.total_shipped,
		              updated_at    = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, agg.BranchID, agg.ProductID, agg.TotalOrdered, agg.TotalShipped, agg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// List devuelve el agregado, filtrado por sucursal si branchID no es vacío,
// ordenado por sucursal y producto.
func (r *InventoryRepo) List(ctx context.Context, branchID string) ([]*entity.InventoryAggregate, error) {
	query := `
		SELECT branch_id, product_id, total_ordered, total_shipped, updated_at
		FROM inventory`
	args := []any{}
	if branchID != "" {
		query += ` WHERE branch_id = $1`
		args = append(args, branchID)
	}
	query += ` ORDER BY branch_id, product_id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var aggs []*entity.InventoryAggregate
	for rows.Next() {
		var agg entity.InventoryAggregate
		if err := rows.Scan(&agg.BranchID, &agg.ProductID, &agg.TotalOrdered, &agg.TotalShipped, &agg.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		aggs = append(aggs, &agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return aggs, nil
}

// ListPairs devuelve los pares ya materializados.
func (r *InventoryRepo) ListPairs(ctx context.Context) ([]repository.Pair, error) {
	rows, err := r.q.Query(ctx, `SELECT branch_id, product_id FROM inventory`)
	if err != nil {
		return nil, fmt.Errorf("list inventory pairs: %w", err)
	}
	defer rows.Close()

	var pairs []repository.Pair
	for rows.Next() {
		var p repository.Pair
		if err := rows.Scan(&p.BranchID, &p.ProductID); err != nil {
			return nil, fmt.Errorf("scan inventory pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inventory pairs: %w", err)
	}
	return pairs, nil
}
