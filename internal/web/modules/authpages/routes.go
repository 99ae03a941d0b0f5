package authpages

import (
	"net/http"

	"github.com/louisbranch/tasklist/internal/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Register, h.handleRegisterForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Register, h.handleRegisterSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLoginForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLoginSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.Logout, h.handleLogout)
}
