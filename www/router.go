package www

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"expotrack/engine"
)

type Handlers struct {
	engine  *engine.Engine
	cookies *sessions.CookieStore
}

// NewRouter builds the HTTP surface: authentication, the wizard step API,
// notifications, and the read/mutate endpoints for the domain collections.
func NewRouter(eng *engine.Engine) http.Handler {
	h := &Handlers{
		engine:  eng,
		cookies: sessions.NewCookieStore([]byte(eng.AppConfig().Auth.SessionSecret)),
	}
	h.cookies.Options.HttpOnly = true
	h.cookies.Options.SameSite = http.SameSiteLaxMode

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/api/login", h.handleLogin)
	r.Post("/api/logout", h.handleLogout)
	r.Get("/api/health", h.apiHealthCheck)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		// Wizard sessions
		r.Post("/api/wizard", h.wizardOpen)
		r.Route("/api/wizard/{id}", func(r chi.Router) {
			r.Get("/", h.wizardState)
			r.Delete("/", h.wizardClose)
			r.Post("/mode", h.wizardSelectMode)
			r.Post("/event", h.wizardSelectEvent)
			r.Post("/zone", h.wizardSelectZone)
			r.Post("/booth", h.wizardSelectBooth)
			r.Post("/configure", h.wizardBeginConfigs)
			r.Post("/laptop", h.wizardSelectLaptop)
			r.Post("/printer-type", h.wizardSelectPrinterType)
			r.Post("/printer-number", h.wizardSelectPrinterNumber)
			r.Post("/next", h.wizardNextConfig)
			r.Post("/back", h.wizardBack)
			r.Post("/remove", h.wizardRemoveConfig)
			r.Post("/submit", h.wizardSubmit)
			r.Get("/zones", h.wizardZones)
			r.Get("/booths", h.wizardBooths)
			r.Get("/availability", h.wizardAvailability)
		})

		// Notifications
		r.Get("/api/notifications", h.apiListNotifications)
		r.Get("/api/notifications/unread", h.apiUnreadCount)
		r.Post("/api/notifications/{id}/read", h.apiMarkRead)
		r.Post("/api/notifications/read-all", h.apiMarkAllRead)

		// Domain collections
		r.Get("/api/installations", h.apiListInstallations)
		r.Get("/api/installations/archive", h.apiListArchivedInstallations)
		r.Get("/api/installations/laptop/{n}", h.apiLaptopHistory)
		r.Get("/api/installations/rack/{rack}", h.apiGetInstallationByRack)
		r.Patch("/api/installations/{id}", h.apiUpdateInstallation)
		r.Post("/api/installations/{id}/complete", h.apiCompleteInstallation)

		r.Get("/api/events", h.apiListEvents)
		r.Post("/api/events", h.apiCreateEvent)
		r.Get("/api/events/archive", h.apiListArchivedEvents)
		r.Patch("/api/events/{id}", h.apiUpdateEvent)
		r.Post("/api/events/{id}/complete", h.apiCompleteEvent)
		r.Delete("/api/events/{id}", h.apiDeleteEvent)

		r.Get("/api/consumables", h.apiListConsumables)
		r.Post("/api/consumables/{type}/{id}", h.apiUpdateConsumable)

		r.Get("/api/activity", h.apiListActivity)

		r.Get("/api/equipment/laptops", h.apiListLaptops)
		r.Get("/api/equipment/laptops/{id}", h.apiGetLaptop)
		r.Get("/api/equipment/printers", h.apiListPrinters)
		r.Get("/api/equipment/printers/{type}/{id}", h.apiGetPrinter)

		r.Get("/api/settings", h.apiGetSettings)
		r.Post("/api/settings/backend", h.apiUpdateBackendSettings)
	})

	return r
}
