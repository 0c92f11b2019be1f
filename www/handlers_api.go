package www

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"expotrack/backend"
	"expotrack/engine"
)

func (h *Handlers) apiListInstallations(w http.ResponseWriter, r *http.Request) {
	if zone := r.URL.Query().Get("zone"); zone != "" {
		installs, err := h.engine.Backend().ListInstallationsByZone(zone)
		if err != nil {
			h.jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.jsonOK(w, installs)
		return
	}
	installs, err := h.engine.Catalog().ListInstallations()
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, installs)
}

func (h *Handlers) apiGetInstallationByRack(w http.ResponseWriter, r *http.Request) {
	inst, err := h.engine.Backend().GetInstallationByRack(chi.URLParam(r, "rack"))
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if inst == nil {
		h.jsonError(w, "not found", http.StatusNotFound)
		return
	}
	h.jsonOK(w, inst)
}

func (h *Handlers) apiListArchivedInstallations(w http.ResponseWriter, r *http.Request) {
	installs, err := h.engine.Backend().ListArchivedInstallations()
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, installs)
}

func (h *Handlers) apiLaptopHistory(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		h.jsonError(w, "invalid laptop number", http.StatusBadRequest)
		return
	}
	history, err := h.engine.Backend().ListLaptopHistory(n)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, history)
}

func (h *Handlers) apiUpdateInstallation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}
	inst, err := h.engine.Backend().UpdateInstallation(id, fields)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	h.engine.Catalog().Invalidate()
	h.engine.Events.Emit(engine.Event{Type: engine.EventDataChanged, Payload: engine.DataChangedEvent{Scope: "installations"}})
	h.jsonOK(w, inst)
}

func (h *Handlers) apiCompleteInstallation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}

	// Fetch the rack first for the audit record.
	rack := ""
	if installs, err := h.engine.Catalog().ListInstallations(); err == nil {
		for _, inst := range installs {
			if inst.ID == id {
				rack = inst.Rack
				break
			}
		}
	}

	if err := h.engine.Backend().CompleteInstallation(id); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	h.engine.Events.Emit(engine.Event{Type: engine.EventInstallationCompleted, Payload: engine.InstallationCompletedEvent{
		InstallationID: id,
		Rack:           rack,
		Actor:          h.getUsername(r),
	}})
	h.jsonOK(w, map[string]string{"status": "ok"})
}

func (h *Handlers) apiListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.engine.Catalog().ListEvents()
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, events)
}

func (h *Handlers) apiListArchivedEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.engine.Backend().ListArchivedEvents()
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, events)
}

func (h *Handlers) apiCreateEvent(w http.ResponseWriter, r *http.Request) {
	var ev backend.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if ev.Name == "" {
		h.jsonError(w, "name required", http.StatusBadRequest)
		return
	}
	stored, err := h.engine.Backend().CreateEvent(&ev)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	h.engine.Events.Emit(engine.Event{Type: engine.EventEventChanged, Payload: engine.EventChangedEvent{
		EventID: stored.ID,
		Name:    stored.Name,
		Action:  "created",
		Actor:   h.getUsername(r),
	}})
	h.jsonOK(w, stored)
}

func (h *Handlers) apiUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}
	ev, err := h.engine.Backend().UpdateEvent(id, fields)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	h.engine.Catalog().Invalidate()
	h.engine.Events.Emit(engine.Event{Type: engine.EventDataChanged, Payload: engine.DataChangedEvent{Scope: "events"}})
	h.jsonOK(w, ev)
}

func (h *Handlers) apiCompleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}
	ev, err := h.engine.Backend().GetEvent(id)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	if ev == nil {
		h.jsonError(w, "not found", http.StatusNotFound)
		return
	}
	if err := h.engine.Backend().CompleteEvent(id); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	h.engine.Events.Emit(engine.Event{Type: engine.EventEventChanged, Payload: engine.EventChangedEvent{
		EventID: id,
		Name:    ev.Name,
		Action:  "completed",
		Actor:   h.getUsername(r),
	}})
	h.jsonOK(w, map[string]string{"status": "ok"})
}

func (h *Handlers) apiDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}
	ev, err := h.engine.Backend().GetEvent(id)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	if ev == nil {
		h.jsonError(w, "not found", http.StatusNotFound)
		return
	}
	if err := h.engine.Backend().DeleteEvent(id); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	h.engine.Events.Emit(engine.Event{Type: engine.EventEventChanged, Payload: engine.EventChangedEvent{
		EventID: id,
		Name:    ev.Name,
		Action:  "deleted",
		Actor:   h.getUsername(r),
	}})
	h.jsonOK(w, map[string]string{"status": "ok"})
}

func (h *Handlers) apiListConsumables(w http.ResponseWriter, r *http.Request) {
	pt := r.URL.Query().Get("type")
	items, err := h.engine.Catalog().ListConsumables(pt)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.jsonOK(w, items)
}

func (h *Handlers) apiUpdateConsumable(w http.ResponseWriter, r *http.Request) {
	pt := chi.URLParam(r, "type")
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Quantity < 0 {
		h.jsonError(w, "quantity must not be negative", http.StatusBadRequest)
		return
	}

	actor := h.getUsername(r)
	item, err := h.engine.Backend().UpdateConsumableQuantity(pt, id, req.Quantity, actor)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	h.engine.Events.Emit(engine.Event{Type: engine.EventConsumableChanged, Payload: engine.ConsumableChangedEvent{
		PrinterType:  pt,
		ConsumableID: item.ID,
		Name:         item.Name,
		Quantity:     item.Quantity,
		Actor:        actor,
	}})
	h.jsonOK(w, item)
}

func (h *Handlers) apiListActivity(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	activity, err := h.engine.Backend().ListRecentActivity(limit)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, activity)
}

func (h *Handlers) apiHealthCheck(w http.ResponseWriter, r *http.Request) {
	backendOK := h.engine.Backend().Ping() == nil
	h.jsonOK(w, map[string]any{
		"status":  "ok",
		"backend": backendOK,
		"wizards": h.engine.Wizards().Count(),
	})
}

func (h *Handlers) jsonOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *Handlers) jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
