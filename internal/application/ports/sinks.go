package ports

import "context"

// NotificationSink destino append-only de avisos a usuarios. El core lo trata
// como fire-and-forget: un error del sink nunca debe abortar la operación
// principal (el caller lo loguea y lo traga).
type NotificationSink interface {
	Append(ctx context.Context, userID, notifType, title, message string) error
}

// AuditSink destino append-only de auditoría. Mismo contrato fire-and-forget.
type AuditSink interface {
	Append(ctx context.Context, userID, action, entity, entityID, detail string) error
}
