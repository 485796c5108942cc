package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Schemes   *SchemeHandler
	Crops     *CropHandler
	Feedback  *FeedbackHandler
	Dashboard *DashboardHandler
	Settings  *SettingsHandler
	Events    *EventsHandler
}

func NewRouter(h Handlers) http.Handler {
	r := mux.NewRouter()
	r.Use(CORSMiddleware, LoggingMiddleware)

	// Public auth endpoints.
	r.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/auth/forgot-password", h.Auth.ForgotPassword).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/auth/reset-password", h.Auth.ResetPassword).Methods(http.MethodPost, http.MethodOptions)

	// Everything else requires a signed-in admin.
	api := r.NewRoute().Subrouter()
	api.Use(AuthRequired)

	api.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost, http.MethodOptions)

	api.HandleFunc("/dashboard/summary", h.Dashboard.Summary).Methods(http.MethodGet, http.MethodOptions)

	api.HandleFunc("/users", h.Users.List).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/users", h.Users.Create).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", h.Users.Update).Methods(http.MethodPut, http.MethodOptions)
	api.HandleFunc("/users/{id}", h.Users.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/govt-schemes", h.Schemes.List).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/govt-schemes/totals", h.Schemes.Totals).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/govt-schemes", h.Schemes.Create).Methods(http.MethodPost)
	api.HandleFunc("/govt-schemes/{id}", h.Schemes.Update).Methods(http.MethodPut, http.MethodOptions)
	api.HandleFunc("/govt-schemes/{id}", h.Schemes.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/crop-info", h.Crops.List).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/crop-info", h.Crops.Create).Methods(http.MethodPost)
	api.HandleFunc("/crop-info/{id}", h.Crops.Update).Methods(http.MethodPut, http.MethodOptions)
	api.HandleFunc("/crop-info/{id}", h.Crops.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/feedback", h.Feedback.List).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/feedback/{id}/reply", h.Feedback.Reply).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/feedback/{id}", h.Feedback.Delete).Methods(http.MethodDelete, http.MethodOptions)

	api.HandleFunc("/settings/profile", h.Settings.Profile).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/settings/profile", h.Settings.UpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/settings/admins", h.Settings.ListAdmins).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/settings/admins", h.Settings.AddAdmin).Methods(http.MethodPost)
	api.HandleFunc("/settings/admins/{id}", h.Settings.DeleteAdmin).Methods(http.MethodDelete, http.MethodOptions)

	api.HandleFunc("/events/{collection}", h.Events.Stream).Methods(http.MethodGet)

	return r
}
