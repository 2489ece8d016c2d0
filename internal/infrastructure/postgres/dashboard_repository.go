package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/promostock-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consulta de solo lectura para la serie mensual del tablero.
type DashboardRepo struct {
	q Querier
}

func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// MonthlyShipped agrupa el despachado por mes calendario de creación del
// despacho. Solo devuelve meses con al menos una línea.
func (r *DashboardRepo) MonthlyShipped(ctx context.Context, since time.Time) ([]repository.MonthlyShipped, error) {
	const query = `
		SELECT to_char(date_trunc('month', s.created_at), 'YYYY-MM') AS month,
		       SUM(sl.quantity) AS quantity
		FROM shipment_lines sl
		JOIN shipments s ON s.id = sl.shipment_id
		WHERE s.created_at >= $1
		GROUP BY 1
		ORDER BY 1`

	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("dashboard monthly shipped: %w", err)
	}
	defer rows.Close()

	var result []repository.MonthlyShipped
	for rows.Next() {
		var m repository.MonthlyShipped
		if err := rows.Scan(&m.Month, &m.Quantity); err != nil {
			return nil, fmt.Errorf("dashboard monthly shipped scan: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
