package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/promostock-api/internal/domain/repository"
)

var _ repository.BillingRepository = (*BillingRepo)(nil)

// BillingRepo consulta de solo lectura para el resumen de facturación.
// Agrega en SQL: líneas de despacho valorizadas a precio de lista.
type BillingRepo struct {
	q Querier
}

func NewBillingRepository(q Querier) *BillingRepo {
	return &BillingRepo{q: q}
}

// SummaryRows suma cantidades despachadas por (sucursal, producto) dentro del
// rango y las valoriza. Toda línea cuenta sin importar el estado de entrega.
func (r *BillingRepo) SummaryRows(ctx context.Context, start, end *time.Time, branchID string) ([]repository.BillingRow, error) {
	query := `
		SELECT s.branch_id, b.code, b.name,
		       p.code, p.name, p.unit,
		       SUM(sl.quantity) AS quantity,
		       p.price,
		       p.price * SUM(sl.quantity) AS amount
		FROM shipment_lines sl
		JOIN shipments s ON s.id = sl.shipment_id
		JOIN branches b ON b.id = s.branch_id
		JOIN products p ON p.id = sl.product_id
		WHERE 1=1`
	args := []any{}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND s.created_at >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND s.created_at <= $%d", len(args))
	}
	if branchID != "" {
		args = append(args, branchID)
		query += fmt.Sprintf(" AND s.branch_id = $%d", len(args))
	}
	query += `
		GROUP BY s.branch_id, b.code, b.name, p.code, p.name, p.unit, p.price
		ORDER BY b.code, p.code`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("billing summary: %w", err)
	}
	defer rows.Close()

	var result []repository.BillingRow
	for rows.Next() {
		var row repository.BillingRow
		if err := rows.Scan(
			&row.BranchID, &row.BranchCode, &row.BranchName,
			&row.ProductCode, &row.ProductName, &row.Unit,
			&row.Quantity, &row.UnitPrice, &row.Amount,
		); err != nil {
			return nil, fmt.Errorf("scan billing row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("billing summary: %w", err)
	}
	return result, nil
}
