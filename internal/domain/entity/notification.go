package entity

import "time"

// Tipos de notificación emitidos por el core.
const (
	NotificationTypeEXTRAORDER = "EXTRA_ORDER"
	NotificationTypeLOWSTOCK   = "LOW_STOCK"
	NotificationTypeSHIPMENT   = "SHIPMENT"
)

// Notification un aviso persistido para un usuario (append-only desde el core).
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

// AuditLog una entrada de auditoría (append-only desde el core).
type AuditLog struct {
	ID        string
	UserID    string
	Action    string
	Entity    string
	EntityID  string
	Detail    string
	CreatedAt time.Time
}
