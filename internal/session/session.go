// Package session holds the in-memory state of one store: its profile, menu,
// cash ledger and dashboard snapshot. Screens read it through an explicit
// *Session instead of a global store.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
)

// ErrMenuNotFound is returned for an unknown menu ID.
var ErrMenuNotFound = errors.New("menu not found")

// Analysis is the cost structure shown on the analysis screen.
type Analysis struct {
	Costs          []model.CostItem
	BreakEvenSales model.Money
	ProjectedSales model.Money
}

// Data is everything a session starts from.
type Data struct {
	Store     model.StoreProfile
	Menus     []model.MenuItem
	Ledger    model.CashFlowLedger
	Dashboard model.DashboardData
	Analysis  Analysis
}

// Session is safe for concurrent use.
type Session struct {
	mu         sync.RWMutex
	data       Data
	balances   *finance.BalanceIndex
	simulation *model.SimulationInput
}

// New validates d and returns a session over a private copy of it.
func New(d Data) (*Session, error) {
	idx, err := finance.NewBalanceIndex(d.Ledger)
	if err != nil {
		return nil, fmt.Errorf("cash ledger: %w", err)
	}
	menus := make([]model.MenuItem, 0, len(d.Menus))
	seen := make(map[string]bool, len(d.Menus))
	for _, m := range d.Menus {
		if err := checkMenu(m); err != nil {
			return nil, err
		}
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("menu %q: duplicate id %s", m.Name, m.ID)
		}
		seen[m.ID] = true
		menus = append(menus, cloneMenu(m))
	}
	d.Menus = menus
	d.Ledger = d.Ledger.Append()
	d.Analysis.Costs = append([]model.CostItem(nil), d.Analysis.Costs...)
	d.Dashboard.SalesHistory = append([]model.SalesHistoryItem(nil), d.Dashboard.SalesHistory...)

	log.Debugf("session for %q: %d menus, %d cash events", d.Store.Name, len(menus), len(d.Ledger.Events))
	return &Session{data: d, balances: idx}, nil
}

func checkMenu(m model.MenuItem) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("menu: %w", &finance.InputError{Field: "name", Reason: "must not be empty"})
	}
	if m.MonthlySalesVolume < 0 {
		return fmt.Errorf("menu %q: %w", m.Name, &finance.InputError{Field: "monthly sales volume", Reason: "must be non-negative"})
	}
	if _, err := finance.MenuProfitability(m.Price, m.Ingredients); err != nil {
		return fmt.Errorf("menu %q: %w", m.Name, err)
	}
	return nil
}

func cloneMenu(m model.MenuItem) model.MenuItem {
	m.Ingredients = append([]model.Ingredient(nil), m.Ingredients...)
	return m
}

// Store returns the store profile.
func (s *Session) Store() model.StoreProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Store
}

// Dashboard returns the current dashboard snapshot.
func (s *Session) Dashboard() model.DashboardData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.data.Dashboard
	d.SalesHistory = append([]model.SalesHistoryItem(nil), d.SalesHistory...)
	return d
}

// Analysis returns the cost structure for the analysis screen.
func (s *Session) Analysis() Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a := s.data.Analysis
	a.Costs = append([]model.CostItem(nil), a.Costs...)
	return a
}

// Menus returns every menu item in insertion order.
func (s *Session) Menus() []model.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.MenuItem, len(s.data.Menus))
	for i, m := range s.data.Menus {
		out[i] = cloneMenu(m)
	}
	return out
}

func (s *Session) indexOf(id string) int {
	for i, m := range s.data.Menus {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Menu returns the item with the given ID.
func (s *Session) Menu(id string) (model.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.MenuItem{}, fmt.Errorf("%w: %s", ErrMenuNotFound, id)
	}
	return cloneMenu(s.data.Menus[i]), nil
}

// AddMenu validates item, assigns it a fresh ID and appends it.
func (s *Session) AddMenu(item model.MenuItem) (model.MenuItem, error) {
	if err := checkMenu(item); err != nil {
		return model.MenuItem{}, err
	}
	item = cloneMenu(item)
	item.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Menus = append(s.data.Menus, item)
	return cloneMenu(item), nil
}

// UpdateMenu applies fn to a copy of the item and stores the result if it is
// still valid. The ID cannot be changed.
func (s *Session) UpdateMenu(id string, fn func(*model.MenuItem)) (model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.MenuItem{}, fmt.Errorf("%w: %s", ErrMenuNotFound, id)
	}
	next := cloneMenu(s.data.Menus[i])
	fn(&next)
	next.ID = id
	if err := checkMenu(next); err != nil {
		return model.MenuItem{}, err
	}
	s.data.Menus[i] = next
	return cloneMenu(next), nil
}

// DeleteMenu removes the item with the given ID.
func (s *Session) DeleteMenu(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrMenuNotFound, id)
	}
	s.data.Menus = append(s.data.Menus[:i:i], s.data.Menus[i+1:]...)
	return nil
}

// Ledger returns the cash ledger.
func (s *Session) Ledger() model.CashFlowLedger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Ledger.Append()
}

// Balances returns the balance index of the current ledger version.
func (s *Session) Balances() *finance.BalanceIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances
}

// AppendCash records new cash events. The ledger and its balance index are
// replaced together, so readers holding the old index keep a consistent view.
func (s *Session) AppendCash(events ...model.CashFlowEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.data.Ledger.Append(events...)
	idx, err := finance.NewBalanceIndex(next)
	if err != nil {
		return err
	}
	s.data.Ledger = next
	s.balances = idx
	return nil
}

// SetSimulation remembers the last business plan entered in the wizard.
func (s *Session) SetSimulation(in model.SimulationInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.simulation = &in
}

// Simulation returns the last business plan, if any.
func (s *Session) Simulation() (model.SimulationInput, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.simulation == nil {
		return model.SimulationInput{}, false
	}
	return *s.simulation, true
}
