// Package testutil provee implementaciones en memoria de los puertos de
// repositorio para los tests de la capa de aplicación. Una sola Store respalda
// todos los repos, de modo que un test arma el estado una vez y las sumas de
// ledger salen de los mismos datos que leen los casos de uso.
package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/promostock-api/internal/domain"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
	"github.com/jhoicas/promostock-api/internal/domain/repository"
)

// Store estado compartido de los repos en memoria.
type Store struct {
	Rounds      map[string]*entity.Round
	Shipments   map[string]*entity.Shipment
	ExtraOrders map[string]*entity.ExtraOrderRequest
	Aggregates  map[repository.Pair]*entity.InventoryAggregate
	Thresholds  map[repository.Pair]*entity.AlertThreshold
	Branches    map[string]*entity.Branch
	Products    map[string]*entity.Product
	Users       []*entity.User
}

// NewStore crea una Store vacía.
func NewStore() *Store {
	return &Store{
		Rounds:      make(map[string]*entity.Round),
		Shipments:   make(map[string]*entity.Shipment),
		ExtraOrders: make(map[string]*entity.ExtraOrderRequest),
		Aggregates:  make(map[repository.Pair]*entity.InventoryAggregate),
		Thresholds:  make(map[repository.Pair]*entity.AlertThreshold),
		Branches:    make(map[string]*entity.Branch),
		Products:    make(map[string]*entity.Product),
	}
}

// AddBranch registra una sucursal activa.
func (s *Store) AddBranch(id, name string) {
	s.Branches[id] = &entity.Branch{ID: id, Code: id, Name: name, IsActive: true}
}

// AddProduct registra un producto activo.
func (s *Store) AddProduct(id, name string) {
	s.Products[id] = &entity.Product{ID: id, Code: id, Name: name, IsActive: true}
}

// AddUser registra un usuario activo.
func (s *Store) AddUser(id, role, branchID string) {
	s.Users = append(s.Users, &entity.User{ID: id, Name: id, Role: role, BranchID: branchID, IsActive: true})
}

// TxRunner implementación trivial de stock.TxRunner: ejecuta fn con los repos
// de la Store. No simula rollback; los tests de fallo verifican estado
// observable, no atomicidad de la BD.
type TxRunner struct {
	S *Store
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	roundRepo repository.RoundRepository,
	shipmentRepo repository.ShipmentRepository,
	extraOrderRepo repository.ExtraOrderRepository,
	inventoryRepo repository.InventoryRepository,
) error) error {
	return fn(&RoundRepo{S: r.S}, &ShipmentRepo{S: r.S}, &ExtraOrderRepo{S: r.S}, &InventoryRepo{S: r.S})
}

// RoundRepo repositorio de rounds en memoria.
type RoundRepo struct{ S *Store }

var _ repository.RoundRepository = (*RoundRepo)(nil)

func (r *RoundRepo) Create(_ context.Context, round *entity.Round) error {
	r.S.Rounds[round.ID] = round
	return nil
}

func (r *RoundRepo) Update(_ context.Context, round *entity.Round) error {
	if _, ok := r.S.Rounds[round.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Rounds[round.ID] = round
	return nil
}

func (r *RoundRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.S.Rounds[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Rounds, id)
	return nil
}

func (r *RoundRepo) GetByID(_ context.Context, id string) (*entity.Round, error) {
	round, ok := r.S.Rounds[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return round, nil
}

func (r *RoundRepo) List(_ context.Context) ([]*entity.Round, error) {
	out := make([]*entity.Round, 0, len(r.S.Rounds))
	for _, round := range r.S.Rounds {
		out = append(out, round)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoundNo > out[j].RoundNo })
	return out, nil
}

func (r *RoundRepo) SumOrdered(_ context.Context, branchID, productID string) (int64, error) {
	var total int64
	for _, round := range r.S.Rounds {
		for _, it := range round.Items {
			if it.BranchID == branchID && it.ProductID == productID {
				total += it.Quantity
			}
		}
	}
	return total, nil
}

func (r *RoundRepo) SumOrderedGrouped(_ context.Context) ([]repository.PairSum, error) {
	sums := make(map[repository.Pair]int64)
	for _, round := range r.S.Rounds {
		for _, it := range round.Items {
			sums[repository.Pair{BranchID: it.BranchID, ProductID: it.ProductID}] += it.Quantity
		}
	}
	return pairSums(sums), nil
}

// ShipmentRepo repositorio de despachos en memoria.
type ShipmentRepo struct{ S *Store }

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

func (r *ShipmentRepo) Create(_ context.Context, shipment *entity.Shipment) error {
	r.S.Shipments[shipment.ID] = shipment
	return nil
}

func (r *ShipmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.S.Shipments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Shipments, id)
	return nil
}

func (r *ShipmentRepo) GetByID(_ context.Context, id string) (*entity.Shipment, error) {
	shipment, ok := r.S.Shipments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return shipment, nil
}

func (r *ShipmentRepo) List(_ context.Context, branchID string) ([]*entity.Shipment, error) {
	out := make([]*entity.Shipment, 0, len(r.S.Shipments))
	for _, s := range r.S.Shipments {
		if branchID != "" && s.BranchID != branchID {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ShipmentRepo) UpdateStatus(_ context.Context, shipment *entity.Shipment) error {
	if _, ok := r.S.Shipments[shipment.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Shipments[shipment.ID] = shipment
	return nil
}

func (r *ShipmentRepo) SumShipped(_ context.Context, branchID, productID string) (int64, error) {
	var total int64
	for _, s := range r.S.Shipments {
		if s.BranchID != branchID {
			continue
		}
		for _, l := range s.Lines {
			if l.ProductID == productID {
				total += l.Quantity
			}
		}
	}
	return total, nil
}

func (r *ShipmentRepo) SumShippedGrouped(_ context.Context) ([]repository.PairSum, error) {
	sums := make(map[repository.Pair]int64)
	for _, s := range r.S.Shipments {
		for _, l := range s.Lines {
			sums[repository.Pair{BranchID: s.BranchID, ProductID: l.ProductID}] += l.Quantity
		}
	}
	return pairSums(sums), nil
}

// ExtraOrderRepo repositorio de solicitudes en memoria.
type ExtraOrderRepo struct{ S *Store }

var _ repository.ExtraOrderRepository = (*ExtraOrderRepo)(nil)

func (r *ExtraOrderRepo) Create(_ context.Context, req *entity.ExtraOrderRequest) error {
	r.S.ExtraOrders[req.ID] = req
	return nil
}

func (r *ExtraOrderRepo) GetByID(_ context.Context, id string) (*entity.ExtraOrderRequest, error) {
	req, ok := r.S.ExtraOrders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *ExtraOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ExtraOrderRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *ExtraOrderRepo) UpdateReview(_ context.Context, req *entity.ExtraOrderRequest) error {
	if _, ok := r.S.ExtraOrders[req.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *req
	r.S.ExtraOrders[req.ID] = &cp
	return nil
}

func (r *ExtraOrderRepo) List(_ context.Context, status, branchID string) ([]*entity.ExtraOrderRequest, error) {
	out := make([]*entity.ExtraOrderRequest, 0, len(r.S.ExtraOrders))
	for _, req := range r.S.ExtraOrders {
		if status != "" && req.Status != status {
			continue
		}
		if branchID != "" && req.BranchID != branchID {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// InventoryRepo repositorio del agregado en memoria.
type InventoryRepo struct{ S *Store }

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

func (r *InventoryRepo) Get(_ context.Context, branchID, productID string) (*entity.InventoryAggregate, error) {
	agg, ok := r.S.Aggregates[repository.Pair{BranchID: branchID, ProductID: productID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *agg
	return &cp, nil
}

func (r *InventoryRepo) GetForUpdate(ctx context.Context, branchID, productID string) (*entity.InventoryAggregate, error) {
	return r.Get(ctx, branchID, productID)
}

func (r *InventoryRepo) Upsert(_ context.Context, agg *entity.InventoryAggregate) error {
	cp := *agg
	r.S.Aggregates[repository.Pair{BranchID: agg.BranchID, ProductID: agg.ProductID}] = &cp
	return nil
}

func (r *InventoryRepo) List(_ context.Context, branchID string) ([]*entity.InventoryAggregate, error) {
	out := make([]*entity.InventoryAggregate, 0, len(r.S.Aggregates))
	for _, agg := range r.S.Aggregates {
		if branchID != "" && agg.BranchID != branchID {
			continue
		}
		cp := *agg
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BranchID != out[j].BranchID {
			return out[i].BranchID < out[j].BranchID
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}

func (r *InventoryRepo) ListPairs(_ context.Context) ([]repository.Pair, error) {
	out := make([]repository.Pair, 0, len(r.S.Aggregates))
	for pr := range r.S.Aggregates {
		out = append(out, pr)
	}
	return out, nil
}

// ThresholdRepo repositorio de umbrales en memoria.
type ThresholdRepo struct{ S *Store }

var _ repository.AlertThresholdRepository = (*ThresholdRepo)(nil)

func (r *ThresholdRepo) Get(_ context.Context, branchID, productID string) (*entity.AlertThreshold, error) {
	th, ok := r.S.Thresholds[repository.Pair{BranchID: branchID, ProductID: productID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return th, nil
}

func (r *ThresholdRepo) Upsert(_ context.Context, threshold *entity.AlertThreshold) error {
	cp := *threshold
	r.S.Thresholds[repository.Pair{BranchID: threshold.BranchID, ProductID: threshold.ProductID}] = &cp
	return nil
}

func (r *ThresholdRepo) Delete(_ context.Context, branchID, productID string) error {
	pr := repository.Pair{BranchID: branchID, ProductID: productID}
	if _, ok := r.S.Thresholds[pr]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Thresholds, pr)
	return nil
}

func (r *ThresholdRepo) List(_ context.Context) ([]*entity.AlertThreshold, error) {
	out := make([]*entity.AlertThreshold, 0, len(r.S.Thresholds))
	for _, th := range r.S.Thresholds {
		out = append(out, th)
	}
	return out, nil
}

// BranchRepo lecturas de sucursales en memoria.
type BranchRepo struct{ S *Store }

var _ repository.BranchRepository = (*BranchRepo)(nil)

func (r *BranchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	b, ok := r.S.Branches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (r *BranchRepo) ListActive(_ context.Context) ([]*entity.Branch, error) {
	out := make([]*entity.Branch, 0, len(r.S.Branches))
	for _, b := range r.S.Branches {
		if b.IsActive {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ProductRepo lecturas de productos en memoria.
type ProductRepo struct{ S *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.S.Products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *ProductRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.S.Products))
	for _, p := range r.S.Products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UserRepo lecturas de usuarios en memoria.
type UserRepo struct{ S *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) ListActiveByRoles(_ context.Context, roles ...string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.S.Users {
		if !u.IsActive {
			continue
		}
		for _, role := range roles {
			if u.Role == role {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (r *UserRepo) ListActiveByBranch(_ context.Context, branchID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.S.Users {
		if u.IsActive && u.BranchID == branchID {
			out = append(out, u)
		}
	}
	return out, nil
}

// NotificationRecord una notificación capturada por el sink de test.
type NotificationRecord struct {
	UserID  string
	Type    string
	Title   string
	Message string
}

// NotificationSink sink de notificaciones que acumula en memoria. Con Fail
// seteado cada Append devuelve ese error (para verificar el contrato
// fire-and-forget).
type NotificationSink struct {
	Records []NotificationRecord
	Fail    error
}

func (s *NotificationSink) Append(_ context.Context, userID, notifType, title, message string) error {
	if s.Fail != nil {
		return s.Fail
	}
	s.Records = append(s.Records, NotificationRecord{UserID: userID, Type: notifType, Title: title, Message: message})
	return nil
}

// AuditRecord una entrada de auditoría capturada por el sink de test.
type AuditRecord struct {
	UserID   string
	Action   string
	Entity   string
	EntityID string
	Detail   string
}

// AuditSink sink de auditoría que acumula en memoria.
type AuditSink struct {
	Records []AuditRecord
	Fail    error
}

func (s *AuditSink) Append(_ context.Context, userID, action, entity, entityID, detail string) error {
	if s.Fail != nil {
		return s.Fail
	}
	s.Records = append(s.Records, AuditRecord{UserID: userID, Action: action, Entity: entity, EntityID: entityID, Detail: detail})
	return nil
}

// Aggregate acceso directo a una celda del agregado (nil si no existe).
func (s *Store) Aggregate(branchID, productID string) *entity.InventoryAggregate {
	return s.Aggregates[repository.Pair{BranchID: branchID, ProductID: productID}]
}

// SetAggregate materializa una celda del agregado directamente.
func (s *Store) SetAggregate(branchID, productID string, ordered, shipped int64) {
	s.Aggregates[repository.Pair{BranchID: branchID, ProductID: productID}] = &entity.InventoryAggregate{
		BranchID:     branchID,
		ProductID:    productID,
		TotalOrdered: ordered,
		TotalShipped: shipped,
		UpdatedAt:    time.Now(),
	}
}

// SetThreshold configura un umbral directamente.
func (s *Store) SetThreshold(branchID, productID string, threshold int64) {
	s.Thresholds[repository.Pair{BranchID: branchID, ProductID: productID}] = &entity.AlertThreshold{
		BranchID:  branchID,
		ProductID: productID,
		Threshold: threshold,
		UpdatedAt: time.Now(),
	}
}

func pairSums(sums map[repository.Pair]int64) []repository.PairSum {
	out := make([]repository.PairSum, 0, len(sums))
	for pr, total := range sums {
		out = append(out, repository.PairSum{BranchID: pr.BranchID, ProductID: pr.ProductID, Total: total})
	}
	return out
}
