package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laosia/navi/internal/config"
	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/session"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := session.New(session.Seed())
	require.NoError(t, err)
	return New(Config{}, s, finance.DefaultPolicy(), config.DefaultConfig())
}

func do(t *testing.T, svc *Service, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	svc.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func cafePlan(t *testing.T) SimulationInputDTO {
	t.Helper()
	tpl, ok := config.LookupTemplate(config.DefaultConfig(), "cafe")
	require.True(t, ok)
	return simulationInputToDTO(tpl.Input(model.BusinessCafe))
}

func TestHealth(t *testing.T) {
	w := do(t, newTestService(t), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok\n", w.Body.String())
}

func TestStatus(t *testing.T) {
	w := do(t, newTestService(t), http.MethodGet, "/v1/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[Status](t, w)
	assert.Equal(t, "Cafe Laosia", st.Store)
	assert.Equal(t, 2, st.Menus)
	assert.False(t, st.HasSimulation)
}

func TestDashboard(t *testing.T) {
	w := do(t, newTestService(t), http.MethodGet, "/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	d := decode[DashboardDTO](t, w)
	assert.InDelta(t, 70.83, d.Achievement.Rate, 0.01)
	assert.Equal(t, model.Money(350_000), d.Achievement.Shortfall)
	assert.Equal(t, string(finance.BalanceSafe), d.CashStatus)
	assert.Len(t, d.History, 3)
}

func TestAnalysis(t *testing.T) {
	w := do(t, newTestService(t), http.MethodGet, "/v1/analysis", nil)
	require.Equal(t, http.StatusOK, w.Code)

	a := decode[AnalysisDTO](t, w)
	assert.Equal(t, model.Money(935_000), a.TotalCost)
	assert.Len(t, a.Shares, 5)
	require.Len(t, a.Improvements, 1)
	assert.Equal(t, string(model.CategoryLabor), a.Improvements[0].Category)
	assert.Equal(t, model.Money(170_850), a.Improvements[0].Savings)
}

func TestMenus(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all by profit", "?sort=profit-desc", []string{"Carbonara", "Blend coffee"}},
		{"by name", "?sort=name-asc", []string{"Blend coffee", "Carbonara"}},
		{"drinks only", "?category=drink", []string{"Blend coffee"}},
		{"search", "?q=carb", []string{"Carbonara"}},
		{"no match", "?q=ramen", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, svc, http.MethodGet, "/v1/menus"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)
			list := decode[MenuListDTO](t, w)

			var names []string
			for _, it := range list.Items {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.want, names)
			assert.Equal(t, len(tt.want), list.Count)
		})
	}
}

func TestMenuDetail(t *testing.T) {
	svc := newTestService(t)

	w := do(t, svc, http.MethodGet, "/v1/menus/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := decode[MenuDetailDTO](t, w)
	assert.Equal(t, model.Money(560), d.Profit)
	assert.Equal(t, string(finance.BandHigh), d.Band)
	assert.Len(t, d.Ingredients, 4)
	assert.Nil(t, d.Simulation)

	w = do(t, svc, http.MethodGet, "/v1/menus/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSimulatePrice(t *testing.T) {
	svc := newTestService(t)

	w := do(t, svc, http.MethodGet, "/v1/menus/2/price?price=1080", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := decode[MenuDetailDTO](t, w)
	require.NotNil(t, d.Simulation)
	assert.Equal(t, model.Money(1_080), d.Simulation.Price)
	assert.Equal(t, model.Money(100), d.Simulation.ProfitDelta)
	assert.Equal(t, string(finance.BandCaution), d.Simulation.Band)
	assert.Equal(t, model.Money(980), d.Price, "what-if leaves the menu alone")

	for _, bad := range []string{"abc", "-5"} {
		w = do(t, svc, http.MethodGet, "/v1/menus/2/price?price="+bad, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
}

func TestApplyPricePublishesEvent(t *testing.T) {
	svc := newTestService(t)

	w := do(t, svc, http.MethodPut, "/v1/menus/2/price?price=1080", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := decode[MenuDetailDTO](t, w)
	assert.Equal(t, model.Money(1_080), d.Price)
	assert.Equal(t, model.Money(660), d.Profit)

	w = do(t, svc, http.MethodGet, "/v1/menus/2", nil)
	assert.Equal(t, model.Money(1_080), decode[MenuDetailDTO](t, w).Price)

	w = do(t, svc, http.MethodGet, "/v1/events", nil)
	events := decode[[]Event](t, w)
	require.Len(t, events, 1)
	assert.Equal(t, EventMenuPrice, events[0].Type)
	assert.Equal(t, int64(1), events[0].ID)

	w = do(t, svc, http.MethodPut, "/v1/menus/nope/price?price=500", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, svc, http.MethodPut, "/v1/menus/2/price?price=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCashflow(t *testing.T) {
	svc := newTestService(t)

	w := do(t, svc, http.MethodGet, "/v1/cashflow/2025/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cf := decode[CashflowDTO](t, w)
	assert.Equal(t, 2025, cf.Year)
	assert.Equal(t, 1, cf.Month)
	assert.Equal(t, model.Money(2_720_000), cf.Closing)
	assert.Len(t, cf.Days, 31)
	assert.Equal(t, "2025-01-01", cf.Days[0].Date)

	w = do(t, svc, http.MethodGet, "/v1/cashflow/2025/13", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, svc, http.MethodGet, "/v1/cashflow/25/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemplates(t *testing.T) {
	w := do(t, newTestService(t), http.MethodGet, "/v1/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tpls := decode[[]TemplateDTO](t, w)
	require.Len(t, tpls, len(config.TemplateNames()))
	assert.Equal(t, "cafe", tpls[0].Key)
	assert.Equal(t, "cafe", tpls[0].Input.BusinessType)
}

func TestCreateSimulation(t *testing.T) {
	svc := newTestService(t)
	body, err := json.Marshal(cafePlan(t))
	require.NoError(t, err)

	w := do(t, svc, http.MethodGet, "/v1/simulations/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, svc, http.MethodPost, "/v1/simulations", body)
	require.Equal(t, http.StatusCreated, w.Code)
	res := decode[SimulationDTO](t, w)
	assert.Equal(t, model.Money(1_188_571), res.BreakEvenSales)
	assert.Equal(t, "cafe", res.Input.BusinessType)

	w = do(t, svc, http.MethodGet, "/v1/simulations/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.Money(1_188_571), decode[SimulationDTO](t, w).BreakEvenSales)

	w = do(t, svc, http.MethodGet, "/v1/status", nil)
	st := decode[Status](t, w)
	assert.True(t, st.HasSimulation)
	assert.Equal(t, 1, st.EventCount)
}

func TestCreateSimulationErrors(t *testing.T) {
	svc := newTestService(t)

	plan := cafePlan(t)
	plan.CostRatePercent = 100
	body, _ := json.Marshal(plan)
	w := do(t, svc, http.MethodPost, "/v1/simulations", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "invalid cost rate")

	plan = cafePlan(t)
	plan.Rent = -1
	body, _ = json.Marshal(plan)
	w = do(t, svc, http.MethodPost, "/v1/simulations", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, svc, http.MethodPost, "/v1/simulations", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, svc, http.MethodGet, "/v1/events", nil)
	assert.Empty(t, decode[[]Event](t, w), "failed simulations publish nothing")
}

func TestMethodNotAllowed(t *testing.T) {
	w := do(t, newTestService(t), http.MethodDelete, "/v1/dashboard", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestPublishEventRingBuffer(t *testing.T) {
	s, err := session.New(session.Seed())
	require.NoError(t, err)
	svc := New(Config{EventsBuffer: 2}, s, finance.DefaultPolicy(), config.DefaultConfig())

	svc.publish(EventSimulation, nil)
	svc.publish(EventSimulation, nil)
	svc.publish(EventMenuPrice, nil)

	svc.mu.RLock()
	defer svc.mu.RUnlock()
	require.Len(t, svc.events, 2)
	assert.Equal(t, int64(2), svc.events[0].ID)
	assert.Equal(t, int64(3), svc.events[1].ID)
}

func TestWriteSSE(t *testing.T) {
	w := httptest.NewRecorder()
	writeSSE(w, Event{ID: 7, Type: EventMenuPrice})
	lines := strings.Split(w.Body.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "event: menu_price", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `data: {"id":7,"type":"menu_price"`))
}
