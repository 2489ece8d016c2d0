package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/promostock-api/internal/application/ports"
)

var (
	_ ports.NotificationSink = (*NotificationRepo)(nil)
	_ ports.AuditSink        = (*AuditRepo)(nil)
)

// NotificationRepo sink append-only de avisos sobre la tabla notifications.
// La bandeja (listar, marcar leído) la sirve otro módulo.
type NotificationRepo struct {
	q Querier
}

func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func (r *NotificationRepo) Append(ctx context.Context, userID, notifType, title, message string) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, false, $6)`
	_, err := r.q.Exec(ctx, query, uuid.New().String(), userID, notifType, title, message, time.Now())
	if err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	return nil
}

// AuditRepo sink append-only de auditoría sobre la tabla audit_logs.
type AuditRepo struct {
	q Querier
}

func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

func (r *AuditRepo) Append(ctx context.Context, userID, action, entity, entityID, detail string) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, entity, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, uuid.New().String(), userID, action, entity, entityID, detail, time.Now())
	if err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}
