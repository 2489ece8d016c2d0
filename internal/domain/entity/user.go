package entity

import "time"

// Roles de usuario. ADMIN y HQ son los roles revisores centrales; BRANCH
// pertenece a una sucursal concreta.
const (
	RoleADMIN  = "ADMIN"
	RoleHQ     = "HQ"
	RoleBRANCH = "BRANCH"
)

// User lectura mínima del usuario para fan-out de notificaciones y RBAC.
// El alta/baja de usuarios y la emisión de sesiones viven en otro módulo.
type User struct {
	ID        string
	Name      string
	Role      string
	BranchID  string
	IsActive  bool
	CreatedAt time.Time
}
