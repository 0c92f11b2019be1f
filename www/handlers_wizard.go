package www

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"expotrack/wizard"
)

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*wizard.Session, bool) {
	s, err := h.engine.Wizards().Get(chi.URLParam(r, "id"))
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return s, true
}

// stepResult wraps the session state after a transition. Ready flips true when
// the single-mode flow has everything it needs and the client should submit.
type stepResult struct {
	Session wizard.Session `json:"session"`
	Ready   bool           `json:"ready"`
}

func (h *Handlers) stepOK(w http.ResponseWriter, s *wizard.Session, ready bool) {
	h.jsonOK(w, stepResult{Session: s.Snapshot(), Ready: ready})
}

func (h *Handlers) wizardOpen(w http.ResponseWriter, r *http.Request) {
	h.stepOK(w, h.engine.Wizards().Open(), false)
}

func (h *Handlers) wizardState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.stepOK(w, s, false)
}

func (h *Handlers) wizardClose(w http.ResponseWriter, r *http.Request) {
	h.engine.Wizards().Close(chi.URLParam(r, "id"))
	h.jsonOK(w, map[string]string{"status": "ok"})
}

func (h *Handlers) wizardSelectMode(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := s.SelectMode(wizard.Mode(req.Mode)); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.stepOK(w, s, false)
}

func (h *Handlers) wizardSelectEvent(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		EventID *int64 `json:"event_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := s.SelectEvent(req.EventID); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// An event that names its zones narrows the next step's choices.
	if req.EventID != nil {
		if events, err := h.engine.Catalog().ListEvents(); err == nil {
			for _, ev := range events {
				if ev.ID == *req.EventID {
					s.RestrictZones(ev.Zones)
					break
				}
			}
		}
	}
	h.stepOK(w, s, false)
}

func (h *Handlers) wizardZones(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.jsonOK(w, s.OfferedZones())
}

func (h *Handlers) wizardSelectZone(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Zone string `json:"zone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := s.SelectZone(req.Zone); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.stepOK(w, s, false)
}

// wizardSelectBooth picks the rack in single mode and toggles membership in
// bulk mode. Racks already held by a committed installation are refused.
func (h *Handlers) wizardSelectBooth(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Booth int `json:"booth"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}

	installs, err := h.engine.Catalog().ListInstallations()
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	view := s.Snapshot()
	if wizard.OccupiedRacks(installs)[wizard.RackID(view.Zone, req.Booth)] {
		h.jsonError(w, "rack already occupied", http.StatusConflict)
		return
	}

	if view.Mode == wizard.ModeBulk {
		err = s.ToggleBooth(req.Booth)
	} else {
		err = s.SelectBooth(req.Booth)
	}
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.stepOK(w, s, false)
}

func (h *Handlers) wizardBeginConfigs(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.BeginConfigs(); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.stepOK(w, s, false)
}

func (h *Handlers) wizardSelectLaptop(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Number int `json:"number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}

	installs, err := h.engine.Catalog().ListInstallations()
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if s.ExcludedLaptops(installs)[req.Number] {
		h.jsonError(w, "laptop already in use", http.StatusConflict)
		return
	}

	if err := s.SelectLaptop(req.Number); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.stepOK(w, s, false)
}

func (h *Handlers) wizardSelectPrinterType(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Slot int    `json:"slot"`
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Slot == 0 {
		req.Slot = 1
	}
	ready, err := s.SelectPrinterType(req.Slot, wizard.PrinterType(req.Type))
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.stepOK(w, s, ready)
}

func (h *Handlers) wizardSelectPrinterNumber(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Slot   int `json:"slot"`
		Number int `json:"number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Slot == 0 {
		req.Slot = 1
	}

	view := s.Snapshot()
	pt := view.PrinterType
	if view.Mode == wizard.ModeBulk {
		if cfg, ok := s.CurrentConfig(); ok {
			pt = cfg.PrinterType
			if req.Slot == 2 {
				pt = cfg.SecondPrinterType
			}
		}
	} else if req.Slot == 2 {
		pt = view.SecondPrinterType
	}

	installs, err := h.engine.Catalog().ListInstallations()
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if s.ExcludedPrinters(installs, pt)[req.Number] {
		h.jsonError(w, "printer already in use", http.StatusConflict)
		return
	}

	ready, err := s.SelectPrinterNumber(req.Slot, req.Number)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.stepOK(w, s, ready)
}

func (h *Handlers) wizardNextConfig(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.NextConfig(); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.stepOK(w, s, false)
}

func (h *Handlers) wizardBack(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Back()
	h.stepOK(w, s, false)
}

func (h *Handlers) wizardRemoveConfig(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := s.RemoveConfig(req.Index); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.stepOK(w, s, false)
}

func (h *Handlers) wizardSubmit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	actor := h.getUsername(r)

	if s.Snapshot().Mode == wizard.ModeBulk {
		result, err := h.engine.Submitter().SubmitBulk(s, actor)
		if err != nil {
			h.submitError(w, err)
			return
		}
		h.jsonOK(w, result)
		return
	}

	stored, err := h.engine.Submitter().SubmitSingle(s, actor)
	if err != nil {
		h.submitError(w, err)
		return
	}
	h.jsonOK(w, stored)
}

func (h *Handlers) submitError(w http.ResponseWriter, err error) {
	var verr *wizard.ValidationError
	if errors.As(err, &verr) {
		h.jsonError(w, verr.Error(), http.StatusBadRequest)
		return
	}
	h.jsonError(w, err.Error(), http.StatusBadGateway)
}

type boothEntry struct {
	Booth int    `json:"booth"`
	Rack  string `json:"rack"`
	Taken bool   `json:"taken"`
}

// wizardBooths renders the session zone's rack grid with occupancy flags.
func (h *Handlers) wizardBooths(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	zone := s.Snapshot().Zone
	if zone == "" {
		h.jsonError(w, "zone not chosen", http.StatusBadRequest)
		return
	}
	installs, err := h.engine.Catalog().ListInstallations()
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	occupied := wizard.OccupiedRacks(installs)
	var entries []boothEntry
	for _, booth := range wizard.BoothNumbers(zone) {
		rack := wizard.RackID(zone, booth)
		entries = append(entries, boothEntry{Booth: booth, Rack: rack, Taken: occupied[rack]})
	}
	h.jsonOK(w, entries)
}

// wizardAvailability returns one page of a numbered pool, each entry flagged
// when it is excluded for the session's current entry. The exclusion set is
// recomputed from the committed snapshot on every call.
func (h *Handlers) wizardAvailability(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	pool := r.URL.Query().Get("pool")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	installs, err := h.engine.Catalog().ListInstallations()
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var numbers []int
	var excluded map[int]bool
	switch pool {
	case "laptop":
		numbers = wizard.LaptopNumbers()
		excluded = s.ExcludedLaptops(installs)
	case "brother", "godex":
		numbers, err = wizard.PrinterNumbers(wizard.PrinterType(pool))
		if err != nil {
			h.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		excluded = s.ExcludedPrinters(installs, wizard.PrinterType(pool))
	default:
		h.jsonError(w, "unknown pool: "+pool, http.StatusBadRequest)
		return
	}

	view := wizard.PoolView(numbers, excluded)
	pages := wizard.PageCount(len(view))
	page = wizard.ClampPage(page, len(view))
	h.jsonOK(w, map[string]any{
		"entries": wizard.Page(view, page),
		"page":    page,
		"pages":   pages,
	})
}
