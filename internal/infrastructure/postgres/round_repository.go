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

var _ repository.RoundRepository = (*RoundRepo)(nil)

// RoundRepo implementación de RoundRepository (usable con pool o tx).
type RoundRepo struct {
	q Querier
}

// NewRoundRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoundRepository(q Querier) *RoundRepo {
	return &RoundRepo{q: q}
}

// Create persiste la cabecera del round y sus items.
func (r *RoundRepo) Create(ctx context.Context, round *entity.Round) error {
	query := `
		INSERT INTO rounds (id, round_no, order_date, memo, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		round.ID, round.RoundNo, round.OrderDate, nullIfEmpty(round.Memo),
		round.CreatedBy, round.CreatedAt, round.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("round %d: %w", round.RoundNo, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert round: %w", err)
	}
	return r.insertItems(ctx, round.Items)
}

// Update actualiza la cabecera y reemplaza el set de items completo.
func (r *RoundRepo) Update(ctx context.Context, round *entity.Round) error {
	query := `
		UPDATE rounds
		SET round_no = $2, order_date = $3, memo = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		round.ID, round.RoundNo, round.OrderDate, nullIfEmpty(round.Memo), round.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update round: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM round_items WHERE round_id = $1`, round.ID); err != nil {
		return fmt.Errorf("delete round items: %w", err)
	}
	return r.insertItems(ctx, round.Items)
}

func (r *RoundRepo) insertItems(ctx context.Context, items []entity.Allocation) error {
	const query = `
		INSERT INTO round_items (id, round_id, branch_id, product_id, quantity)
		VALUES ($1, $2, $3, $4, $5)`
	for _, it := range items {
		if _, err := r.q.Exec(ctx, query, it.ID, it.RoundID, it.BranchID, it.ProductID, it.Quantity); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("item (%s, %s): %w", it.BranchID, it.ProductID, domain.ErrDuplicate)
			}
			return fmt.Errorf("insert round item: %w", err)
		}
	}
	return nil
}

// Delete elimina el round; sus items caen por ON DELETE CASCADE.
func (r *RoundRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM rounds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete round: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene el round con sus items.
func (r *RoundRepo) GetByID(ctx context.Context, id string) (*entity.Round, error) {
	query := `
		SELECT id, round_no, order_date, COALESCE(memo, ''), created_by, created_at, updated_at
		FROM rounds WHERE id = $1`
	var round entity.Round
	err := r.q.QueryRow(ctx, query, id).Scan(
		&round.ID, &round.RoundNo, &round.OrderDate, &round.Memo,
		&round.CreatedBy, &round.CreatedAt, &round.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get round: %w", err)
	}
	items, err := r.loadItems(ctx, []string{round.ID})
	if err != nil {
		return nil, err
	}
	round.Items = items[round.ID]
	return &round, nil
}

// List devuelve todos los rounds con sus items, round_no descendente.
func (r *RoundRepo) List(ctx context.Context) ([]*entity.Round, error) {
	query := `
		SELECT id, round_no, order_date, COALESCE(memo, ''), created_by, created_at, updated_at
		FROM rounds ORDER BY round_no DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	var rounds []*entity.Round
	var ids []string
	for rows.Next() {
		var round entity.Round
		if err := rows.Scan(
			&round.ID, &round.RoundNo, &round.OrderDate, &round.Memo,
			&round.CreatedBy, &round.CreatedAt, &round.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rounds = append(rounds, &round)
		ids = append(ids, round.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	if len(ids) == 0 {
		return rounds, nil
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, round := range rounds {
		round.Items = items[round.ID]
	}
	return rounds, nil
}

// loadItems carga los items de varios rounds en una sola query.
func (r *RoundRepo) loadItems(ctx context.Context, roundIDs []string) (map[string][]entity.Allocation, error) {
	query := `
		SELECT id, round_id, branch_id, product_id, quantity
		FROM round_items WHERE round_id = ANY($1)
		ORDER BY branch_id, product_id`
	rows, err := r.q.Query(ctx, query, roundIDs)
	if err != nil {
		return nil, fmt.Errorf("load round items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.Allocation, len(roundIDs))
	for rows.Next() {
		var it entity.Allocation
		if err := rows.Scan(&it.ID, &it.RoundID, &it.BranchID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan round item: %w", err)
		}
		out[it.RoundID] = append(out[it.RoundID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load round items: %w", err)
	}
	return out, nil
}

// SumOrdered suma las asignaciones de un par a través de todos los rounds.
func (r *RoundRepo) SumOrdered(ctx context.Context, branchID, productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM round_items WHERE branch_id = $1 AND product_id = $2`
	var total int64
	if err := r.q.QueryRow(ctx, query, branchID, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum ordered: %w", err)
	}
	return total, nil
}

// SumOrderedGrouped suma las asignaciones de todos los pares en una query.
func (r *RoundRepo) SumOrderedGrouped(ctx context.Context) ([]repository.PairSum, error) {
	query := `
		SELECT branch_id, product_id, COALESCE(SUM(quantity), 0)
		FROM round_items GROUP BY branch_id, product_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sum ordered grouped: %w", err)
	}
	defer rows.Close()

	var sums []repository.PairSum
	for rows.Next() {
		var s repository.PairSum
		if err := rows.Scan(&s.BranchID, &s.ProductID, &s.Total); err != nil {
			return nil, fmt.Errorf("scan ordered sum: %w", err)
		}
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sum ordered grouped: %w", err)
	}
	return sums, nil
}
