package usecase

import (
	"context"
	"math"
	"time"

	"github.com/jhoicas/promostock-api/internal/domain/repository"
)

// DashboardSummary totales globales del agregado con la tasa de despacho.
type DashboardSummary struct {
	TotalOrdered int64
	TotalShipped int64
	Remaining    int64
	ShipmentRate float64
}

// MonthlyTrendPoint despachado de un mes calendario (YYYY-MM), cero incluido.
type MonthlyTrendPoint struct {
	Month    string
	Quantity int64
}

// BranchShipped despachado total de una sucursal.
type BranchShipped struct {
	BranchName string
	Shipped    int64
}

// BranchProgress avance de despacho de una sucursal sobre lo asignado.
type BranchProgress struct {
	BranchID   string
	BranchCode string
	BranchName string
	Ordered    int64
	Shipped    int64
	Rate       int
}

// DashboardUseCase arma las vistas del tablero sobre el agregado de
// inventario; solo la serie mensual baja a los ledgers (query agrupada).
type DashboardUseCase struct {
	inventoryRepo repository.InventoryRepository
	branchRepo    repository.BranchRepository
	dashboardRepo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	inventoryRepo repository.InventoryRepository,
	branchRepo repository.BranchRepository,
	dashboardRepo repository.DashboardRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		inventoryRepo: inventoryRepo,
		branchRepo:    branchRepo,
		dashboardRepo: dashboardRepo,
	}
}

// Summary totales globales: asignado, despachado, restante y tasa de despacho
// (porcentaje con un decimal; 0 si no hay nada asignado).
func (uc *DashboardUseCase) Summary(ctx context.Context) (*DashboardSummary, error) {
	rows, err := uc.inventoryRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	s := &DashboardSummary{}
	for _, a := range rows {
		s.TotalOrdered += a.TotalOrdered
		s.TotalShipped += a.TotalShipped
	}
	s.Remaining = s.TotalOrdered - s.TotalShipped
	if s.TotalOrdered > 0 {
		rate := float64(s.TotalShipped) / float64(s.TotalOrdered) * 100
		s.ShipmentRate = math.Round(rate*10) / 10
	}
	return s, nil
}

// MonthlyTrend despachado por mes de los últimos seis meses calendario,
// en orden cronológico y con los meses sin movimiento en cero.
func (uc *DashboardUseCase) MonthlyTrend(ctx context.Context) ([]MonthlyTrendPoint, error) {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)

	sums, err := uc.dashboardRepo.MonthlyShipped(ctx, first)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[string]int64, len(sums))
	for _, m := range sums {
		byMonth[m.Month] = m.Quantity
	}

	points := make([]MonthlyTrendPoint, 0, 6)
	for i := 0; i < 6; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		points = append(points, MonthlyTrendPoint{Month: key, Quantity: byMonth[key]})
	}
	return points, nil
}

// BranchComparison despachado total por sucursal activa; omite las que no
// despacharon nada.
func (uc *DashboardUseCase) BranchComparison(ctx context.Context) ([]BranchShipped, error) {
	branches, err := uc.branchRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := uc.inventoryRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	shippedByBranch := make(map[string]int64, len(branches))
	for _, a := range rows {
		shippedByBranch[a.BranchID] += a.TotalShipped
	}

	out := make([]BranchShipped, 0, len(branches))
	for _, b := range branches {
		if shipped := shippedByBranch[b.ID]; shipped > 0 {
			out = append(out, BranchShipped{BranchName: b.Name, Shipped: shipped})
		}
	}
	return out, nil
}

// Progress avance por sucursal activa: asignado, despachado y porcentaje
// redondeado (0 sin asignaciones). Incluye sucursales sin movimiento.
func (uc *DashboardUseCase) Progress(ctx context.Context) ([]BranchProgress, error) {
	branches, err := uc.branchRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := uc.inventoryRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	type sums struct{ ordered, shipped int64 }
	byBranch := make(map[string]sums, len(branches))
	for _, a := range rows {
		s := byBranch[a.BranchID]
		s.ordered += a.TotalOrdered
		s.shipped += a.TotalShipped
		byBranch[a.BranchID] = s
	}

	out := make([]BranchProgress, 0, len(branches))
	for _, b := range branches {
		s := byBranch[b.ID]
		rate := 0
		if s.ordered > 0 {
			rate = int(math.Round(float64(s.shipped) / float64(s.ordered) * 100))
		}
		out = append(out, BranchProgress{
			BranchID:   b.ID,
			BranchCode: b.Code,
			BranchName: b.Name,
			Ordered:    s.ordered,
			Shipped:    s.shipped,
			Rate:       rate,
		})
	}
	return out, nil
}
