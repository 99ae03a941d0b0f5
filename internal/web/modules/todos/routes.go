package todos

import (
	"net/http"

	"github.com/louisbranch/tasklist/internal/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.Add, h.handleAdd)
	mux.HandleFunc(http.MethodGet+" "+routepath.UpdatePrefix+"{id}", h.handleToggle)
	mux.HandleFunc(http.MethodGet+" "+routepath.DeletePrefix+"{id}", h.handleDelete)
}
