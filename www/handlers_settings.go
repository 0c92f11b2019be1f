package www

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) apiGetSettings(w http.ResponseWriter, r *http.Request) {
	cfg := h.engine.AppConfig()
	// The api key is write-only through this surface.
	h.jsonOK(w, map[string]any{
		"backend_url":          cfg.Backend.BaseURL,
		"messaging_backend":    cfg.Messaging.Backend,
		"notify_poll_interval": cfg.Notify.PollInterval.String(),
	})
}

// apiUpdateBackendSettings repoints the remote data store live and persists
// the change to the config file.
func (h *Handlers) apiUpdateBackendSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BaseURL string `json:"base_url"`
		APIKey  string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.BaseURL == "" {
		h.jsonError(w, "base_url required", http.StatusBadRequest)
		return
	}

	cfg := h.engine.AppConfig()
	cfg.Backend.BaseURL = req.BaseURL
	if req.APIKey != "" {
		cfg.Backend.APIKey = req.APIKey
	}
	h.engine.ReconfigureBackend()

	if err := cfg.Save(h.engine.ConfigPath()); err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, map[string]string{"status": "ok"})
}

func (h *Handlers) apiListLaptops(w http.ResponseWriter, r *http.Request) {
	laptops, err := h.engine.Backend().ListLaptops()
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, laptops)
}

func (h *Handlers) apiGetLaptop(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}
	laptop, err := h.engine.Backend().GetLaptop(id)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if laptop == nil {
		h.jsonError(w, "not found", http.StatusNotFound)
		return
	}
	h.jsonOK(w, laptop)
}

func (h *Handlers) apiListPrinters(w http.ResponseWriter, r *http.Request) {
	printers, err := h.engine.Backend().ListPrinters(r.URL.Query().Get("type"))
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.jsonOK(w, printers)
}

func (h *Handlers) apiGetPrinter(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}
	printer, err := h.engine.Backend().GetPrinter(chi.URLParam(r, "type"), id)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if printer == nil {
		h.jsonError(w, "not found", http.StatusNotFound)
		return
	}
	h.jsonOK(w, printer)
}
