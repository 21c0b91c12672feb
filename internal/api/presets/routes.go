package presets

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterPresetRoutes registers the preset routes on r.
func RegisterPresetRoutes(r *mux.Router, handler *PresetHandler) {
	s := r.PathPrefix("/api/v1/presets").Subrouter()
	s.HandleFunc("", handler.ListPresets).Methods(http.MethodGet)
	s.HandleFunc("", handler.CreatePreset).Methods(http.MethodPost)
	s.HandleFunc("/{name}", handler.GetPreset).Methods(http.MethodGet)
	s.HandleFunc("/{name}", handler.DeletePreset).Methods(http.MethodDelete)
	s.HandleFunc("/{name}/apply", handler.ApplyPreset).Methods(http.MethodPost)
}
