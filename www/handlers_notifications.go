package www

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) apiListNotifications(w http.ResponseWriter, r *http.Request) {
	h.jsonOK(w, h.engine.Notifier().List())
}

func (h *Handlers) apiUnreadCount(w http.ResponseWriter, r *http.Request) {
	h.jsonOK(w, map[string]int{"unread": h.engine.Notifier().UnreadCount()})
}

func (h *Handlers) apiMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.engine.Notifier().MarkAsRead(id); err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, map[string]string{"status": "ok"})
}

func (h *Handlers) apiMarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Notifier().MarkAllAsRead(); err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, map[string]string{"status": "ok"})
}
