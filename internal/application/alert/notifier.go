package alert

import (
	"context"

	"github.com/jhoicas/promostock-api/internal/application/ports"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
	"github.com/jhoicas/promostock-api/internal/domain/repository"
	"github.com/jhoicas/promostock-api/pkg/logger"
)

// Notifier hace fan-out de avisos hacia grupos de usuarios. Los fallos del
// sink se loguean y se tragan: una notificación perdida nunca voltea la
// operación que la originó.
type Notifier struct {
	userRepo repository.UserRepository
	sink     ports.NotificationSink
	log      *logger.Logger
}

// NewNotifier construye el notificador.
func NewNotifier(userRepo repository.UserRepository, sink ports.NotificationSink, log *logger.Logger) *Notifier {
	return &Notifier{userRepo: userRepo, sink: sink, log: log}
}

// NotifyAdminsAndHQ avisa a todos los usuarios activos con rol revisor (ADMIN, HQ).
func (n *Notifier) NotifyAdminsAndHQ(ctx context.Context, notifType, title, message string) {
	users, err := n.userRepo.ListActiveByRoles(ctx, entity.RoleADMIN, entity.RoleHQ)
	if err != nil {
		n.log.Warn().Err(err).Str("type", notifType).Msg("fan-out a revisores: listado de usuarios falló")
		return
	}
	n.fanOut(ctx, users, notifType, title, message)
}

// NotifyBranchUsers avisa a todos los usuarios activos de una sucursal.
func (n *Notifier) NotifyBranchUsers(ctx context.Context, branchID, notifType, title, message string) {
	users, err := n.userRepo.ListActiveByBranch(ctx, branchID)
	if err != nil {
		n.log.Warn().Err(err).Str("branch_id", branchID).Msg("fan-out a sucursal: listado de usuarios falló")
		return
	}
	n.fanOut(ctx, users, notifType, title, message)
}

func (n *Notifier) fanOut(ctx context.Context, users []*entity.User, notifType, title, message string) {
	for _, u := range users {
		if err := n.sink.Append(ctx, u.ID, notifType, title, message); err != nil {
			n.log.Warn().Err(err).Str("user_id", u.ID).Str("type", notifType).Msg("append de notificación falló")
		}
	}
}
