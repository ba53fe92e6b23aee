package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/config"
	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/report"
)

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Service) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	d, err := report.BuildDashboard(s.sess, s.policy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardToDTO(d))
}

func (s *Service) handleAnalysis(w http.ResponseWriter, _ *http.Request) {
	a, err := report.BuildAnalysis(s.sess, s.policy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysisToDTO(a))
}

func (s *Service) handleMenus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := report.BuildMenuList(s.sess, s.policy, report.MenuQuery{
		Sort:     finance.SortMode(q.Get("sort")),
		Category: model.MenuCategory(q.Get("category")),
		Search:   q.Get("q"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, menuListToDTO(list))
}

func (s *Service) handleMenu(w http.ResponseWriter, r *http.Request) {
	d, err := report.BuildMenuDetail(s.sess, s.policy, mux.Vars(r)["id"], 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, menuDetailToDTO(d))
}

// handleSimulatePrice answers a price what-if without changing the menu.
func (s *Service) handleSimulatePrice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	price, err := cli.ParseMoney("price", vars["price"])
	if err != nil {
		writeError(w, err)
		return
	}
	d, err := report.BuildMenuDetail(s.sess, s.policy, vars["id"], price)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, menuDetailToDTO(d))
}

func (s *Service) handleApplyPrice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	price, err := cli.ParseMoney("price", vars["price"])
	if err != nil {
		writeError(w, err)
		return
	}
	if price == 0 {
		writeError(w, &finance.InputError{Field: "price", Reason: "must be positive"})
		return
	}
	item, err := s.sess.UpdateMenu(vars["id"], func(m *model.MenuItem) { m.Price = price })
	if err != nil {
		writeError(w, err)
		return
	}
	log.Infof("menu %s price set to %d", item.Name, item.Price)

	d, err := report.BuildMenuDetail(s.sess, s.policy, item.ID, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	dto := menuDetailToDTO(d)
	s.publish(EventMenuPrice, dto)
	writeJSON(w, http.StatusOK, dto)
}

func (s *Service) handleCashflow(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, _ := strconv.Atoi(vars["year"])
	month, _ := strconv.Atoi(vars["month"])
	if month < 1 || month > 12 {
		writeError(w, &finance.InputError{Field: "month", Reason: fmt.Sprintf("%d is not between 1 and 12", month)})
		return
	}
	cf := report.BuildCashflow(s.sess, s.policy, year, time.Month(month))
	writeJSON(w, http.StatusOK, cashflowToDTO(cf))
}

func (s *Service) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	names := config.TemplateNames()
	out := make([]TemplateDTO, 0, len(names))
	for _, bt := range names {
		tpl, ok := config.LookupTemplate(s.appCfg, string(bt))
		if !ok {
			continue
		}
		out = append(out, TemplateDTO{
			Key:   string(bt),
			Label: tpl.Label,
			Emoji: tpl.Emoji,
			Input: simulationInputToDTO(tpl.Input(bt)),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) handleCreateSimulation(w http.ResponseWriter, r *http.Request) {
	var body SimulationInputDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, &finance.InputError{Field: "body", Reason: err.Error()})
		return
	}
	in := simulationInputFromDTO(body)
	res, err := s.policy.Simulate(in)
	if err != nil {
		writeError(w, err)
		return
	}
	s.sess.SetSimulation(in)

	dto := simulationToDTO(res)
	s.publish(EventSimulation, dto)
	writeJSON(w, http.StatusCreated, dto)
}

func (s *Service) handleCurrentSimulation(w http.ResponseWriter, _ *http.Request) {
	in, ok := s.sess.Simulation()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no simulation yet"})
		return
	}
	res, err := s.policy.Simulate(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, simulationToDTO(res))
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current status immediately.
	writeSSE(w, Event{Type: "status", Timestamp: time.Now(), Data: s.status()})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}
