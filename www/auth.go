package www

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

const sessionName = "expotrack"

func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}

	auth := h.engine.AppConfig().Auth
	if req.Username != auth.AdminUser ||
		bcrypt.CompareHashAndPassword([]byte(auth.AdminPassHash), []byte(req.Password)) != nil {
		h.jsonError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	sess, _ := h.cookies.Get(r, sessionName)
	sess.Values["username"] = req.Username
	if err := sess.Save(r, w); err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, map[string]string{"status": "ok", "username": req.Username})
}

func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.cookies.Get(r, sessionName)
	delete(sess.Values, "username")
	sess.Options.MaxAge = -1
	sess.Save(r, w)
	h.jsonOK(w, map[string]string{"status": "ok"})
}

func (h *Handlers) isAuthenticated(r *http.Request) bool {
	sess, err := h.cookies.Get(r, sessionName)
	if err != nil {
		return false
	}
	name, ok := sess.Values["username"].(string)
	return ok && name != ""
}

// getUsername returns the logged-in user, for audit attribution.
func (h *Handlers) getUsername(r *http.Request) string {
	sess, err := h.cookies.Get(r, sessionName)
	if err != nil {
		return ""
	}
	name, _ := sess.Values["username"].(string)
	return name
}

func (h *Handlers) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.isAuthenticated(r) {
			h.jsonError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
