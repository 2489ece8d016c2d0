package entity

import "time"

// Branch sucursal receptora de material promocional. El CRUD de sucursales es
// de otro módulo: aquí solo se lee.
type Branch struct {
	ID        string
	Code      string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}
