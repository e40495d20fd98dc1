// Package memory is an in-process implementation of the inventory
// repositories. It backs the use case and handler tests.
//
// Transactions are serialized: WithinTx holds a store-wide lock for the whole
// callback, which stands in for the row locks the SQL repositories take. A
// failed callback restores the data to its state when the transaction began.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

var errNoTx = errors.New("locking read requires a transaction")

type txKey struct{}

type tables struct {
	materials    map[string]model.Material
	transactions []model.MaterialTransaction
	reservations map[string]model.Reservation // keyed by order_id + "/" + material_id
	boms         map[string]model.BOMEntry    // keyed by product_id + "/" + material_id
	products     map[string]string
	orders       map[string]model.Order
	orderSeq     []string
	items        []model.OrderItem
	alerts       []model.InventoryAlert
}

func (t *tables) clone() *tables {
	c := &tables{
		materials:    make(map[string]model.Material, len(t.materials)),
		transactions: append([]model.MaterialTransaction(nil), t.transactions...),
		reservations: make(map[string]model.Reservation, len(t.reservations)),
		boms:         make(map[string]model.BOMEntry, len(t.boms)),
		products:     make(map[string]string, len(t.products)),
		orders:       make(map[string]model.Order, len(t.orders)),
		orderSeq:     append([]string(nil), t.orderSeq...),
		items:        append([]model.OrderItem(nil), t.items...),
		alerts:       append([]model.InventoryAlert(nil), t.alerts...),
	}
	for k, v := range t.materials {
		c.materials[k] = v
	}
	for k, v := range t.reservations {
		c.reservations[k] = v
	}
	for k, v := range t.boms {
		c.boms[k] = v
	}
	for k, v := range t.products {
		c.products[k] = v
	}
	for k, v := range t.orders {
		c.orders[k] = v
	}
	return c
}

type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data *tables
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		data: &tables{
			materials:    map[string]model.Material{},
			reservations: map[string]model.Reservation{},
			boms:         map[string]model.BOMEntry{},
			products:     map[string]string{},
			orders:       map[string]model.Order{},
		},
		now: time.Now,
	}
}

// WithinTx implements postgres.Transactor. Nested calls join the open
// transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

func (s *Store) read(fn func(t *tables)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}

// Seeding helpers for the tables owned by other subsystems.

func (s *Store) AddProduct(id, name string) {
	s.read(func(t *tables) { t.products[id] = name })
}

// AddOrder registers an order and its lines. Item product names are filled
// from the product table when empty.
func (s *Store) AddOrder(o model.Order, items ...model.OrderItem) {
	s.read(func(t *tables) {
		if _, ok := t.orders[o.ID]; !ok {
			t.orderSeq = append(t.orderSeq, o.ID)
		}
		t.orders[o.ID] = o
		for _, it := range items {
			it.OrderID = o.ID
			if it.ProductName == "" {
				it.ProductName = t.products[it.ProductID]
			}
			t.items = append(t.items, it)
		}
	})
}

func (s *Store) SetOrderStatus(id string, status model.OrderStatus) {
	s.read(func(t *tables) {
		if o, ok := t.orders[id]; ok {
			o.Status = status
			t.orders[id] = o
		}
	})
}

// PutMaterial stores m as is, recomputing its available stock.
func (s *Store) PutMaterial(m model.Material) {
	m.AvailableStock = m.Available()
	s.read(func(t *tables) { t.materials[m.ID] = m })
}

// AddTransaction appends a ledger row directly, for seeding consumption
// history.
func (s *Store) AddTransaction(tx model.MaterialTransaction) {
	s.read(func(t *tables) { t.transactions = append(t.transactions, tx) })
}

func key(a, b string) string { return a + "/" + b }

func (s *Store) Materials() *MaterialRepository       { return &MaterialRepository{s: s} }
func (s *Store) Reservations() *ReservationRepository { return &ReservationRepository{s: s} }
func (s *Store) BOMs() *BOMRepository                 { return &BOMRepository{s: s} }
func (s *Store) Orders() *OrderRepository             { return &OrderRepository{s: s} }
func (s *Store) Alerts() *AlertRepository             { return &AlertRepository{s: s} }
