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

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación de ShipmentRepository (usable con pool o tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

const shipmentColumns = `
	id, branch_id, delivery_status, delivery_date, scheduled_date,
	COALESCE(scheduled_time, ''), COALESCE(driver_name, ''), COALESCE(driver_phone, ''),
	delivered_at, COALESCE(notes, ''), COALESCE(extra_order_request_id::text, ''),
	created_by, created_at, updated_at`

func scanShipment(row pgx.Row, s *entity.Shipment) error {
	return row.Scan(
		&s.ID, &s.BranchID, &s.DeliveryStatus, &s.DeliveryDate, &s.ScheduledDate,
		&s.ScheduledTime, &s.DriverName, &s.DriverPhone,
		&s.DeliveredAt, &s.Notes, &s.ExtraOrderRequestID,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
}

// Create persiste la cabecera del despacho y sus líneas.
func (r *ShipmentRepo) Create(ctx context.Context, shipment *entity.Shipment) error {
	query := `
		INSERT INTO shipments (id, branch_id, delivery_status, delivery_date, scheduled_date,
			scheduled_time, driver_name, driver_phone, delivered_at, notes,
			extra_order_request_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		shipment.ID, shipment.BranchID, shipment.DeliveryStatus, shipment.DeliveryDate,
		shipment.ScheduledDate, nullIfEmpty(shipment.ScheduledTime), nullIfEmpty(shipment.DriverName),
		nullIfEmpty(shipment.DriverPhone), shipment.DeliveredAt, nullIfEmpty(shipment.Notes),
		nullIfEmpty(shipment.ExtraOrderRequestID), shipment.CreatedBy, shipment.CreatedAt, shipment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	const lineQuery = `
		INSERT INTO shipment_lines (id, shipment_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for i := range shipment.Lines {
		shipment.Lines[i].ShipmentID = shipment.ID
		l := shipment.Lines[i]
		if _, err := r.q.Exec(ctx, lineQuery, l.ID, l.ShipmentID, l.ProductID, l.Quantity); err != nil {
			return fmt.Errorf("insert shipment line: %w", err)
		}
	}
	return nil
}

// Delete elimina el despacho; sus líneas caen por ON DELETE CASCADE.
func (r *ShipmentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene el despacho con sus líneas.
func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = $1`
	var s entity.Shipment
	if err := scanShipment(r.q.QueryRow(ctx, query, id), &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	lines, err := r.loadLines(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Lines = lines[s.ID]
	return &s, nil
}

// List devuelve los despachos (filtrados por sucursal si branchID no es vacío),
// más reciente primero, con sus líneas.
func (r *ShipmentRepo) List(ctx context.Context, branchID string) ([]*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments`
	args := []any{}
	if branchID != "" {
		query += ` WHERE branch_id = $1`
		args = append(args, branchID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var shipments []*entity.Shipment
	var ids []string
	for rows.Next() {
		var s entity.Shipment
		if err := scanShipment(rows, &s); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		shipments = append(shipments, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	if len(ids) == 0 {
		return shipments, nil
	}
	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range shipments {
		s.Lines = lines[s.ID]
	}
	return shipments, nil
}

func (r *ShipmentRepo) loadLines(ctx context.Context, shipmentIDs []string) (map[string][]entity.ShipmentLine, error) {
	query := `
		SELECT id, shipment_id, product_id, quantity
		FROM shipment_lines WHERE shipment_id = ANY($1)
		ORDER BY product_id`
	rows, err := r.q.Query(ctx, query, shipmentIDs)
	if err != nil {
		return nil, fmt.Errorf("load shipment lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.ShipmentLine, len(shipmentIDs))
	for rows.Next() {
		var l entity.ShipmentLine
		if err := rows.Scan(&l.ID, &l.ShipmentID, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan shipment line: %w", err)
		}
		out[l.ShipmentID] = append(out[l.ShipmentID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load shipment lines: %w", err)
	}
	return out, nil
}

// UpdateStatus persiste estado de entrega, agenda, transportista y deliveredAt.
func (r *ShipmentRepo) UpdateStatus(ctx context.Context, shipment *entity.Shipment) error {
	query := `
		UPDATE shipments
		SET delivery_status = $2,
		    scheduled_date  = $3,
		    scheduled_time  = $4,
		    driver_name     = $5,
		    driver_phone    = $6,
		    delivered_at    = $7,
		    updated_at      = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		shipment.ID, shipment.DeliveryStatus, shipment.ScheduledDate,
		nullIfEmpty(shipment.ScheduledTime), nullIfEmpty(shipment.DriverName),
		nullIfEmpty(shipment.DriverPhone), shipment.DeliveredAt, shipment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shipment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumShipped suma las líneas despachadas de un par, sin filtrar por estado de entrega.
func (r *ShipmentRepo) SumShipped(ctx context.Context, branchID, productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(l.quantity), 0)
		FROM shipment_lines l
		JOIN shipments s ON s.id = l.shipment_id
		WHERE s.branch_id = $1 AND l.product_id = $2`
	var total int64
	if err := r.q.QueryRow(ctx, query, branchID, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum shipped: %w", err)
	}
	return total, nil
}

// SumShippedGrouped suma las líneas despachadas de todos los pares en una query.
func (r *ShipmentRepo) SumShippedGrouped(ctx context.Context) ([]repository.PairSum, error) {
	query := `
		SELECT s.branch_id, l.product_id, COALESCE(SUM(l.quantity), 0)
		FROM shipment_lines l
		JOIN shipments s ON s.id = l.shipment_id
		GROUP BY s.branch_id, l.product_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sum shipped grouped: %w", err)
	}
	defer rows.Close()

	var sums []repository.PairSum
	for rows.Next() {
		var s repository.PairSum
		if err := rows.Scan(&s.BranchID, &s.ProductID, &s.Total); err != nil {
			return nil, fmt.Errorf("scan shipped sum: %w", err)
		}
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sum shipped grouped: %w", err)
	}
	return sums, nil
}
