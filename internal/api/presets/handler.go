package presets

import (
	stdjson "encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"github.com/Vasu1712/brayns-remote/internal/brayns"
	"github.com/Vasu1712/brayns-remote/internal/models"
	"github.com/Vasu1712/brayns-remote/internal/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PresetHandler holds the dependencies for handling preset HTTP requests.
type PresetHandler struct {
	Store  storage.PresetStore // where presets are kept
	Client *brayns.Client      // render server presets are captured from and applied to
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Preset] Error encoding response: %v", err)
	}
}

// ListPresets handles GET /api/v1/presets.
func (h *PresetHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := h.Store.ListPresets(r.Context())
	if err != nil {
		http.Error(w, "Failed to list presets", http.StatusInternalServerError)
		log.Printf("[Preset] Error listing presets: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, presets)
	log.Printf("[Preset] Listed %d presets", len(presets))
}

// CreatePreset handles POST /api/v1/presets. With a document the document is
// stored as given. Without one the render server's current camera is
// captured under the name.
func (h *PresetHandler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string             `json:"name"`
		Kind     models.PresetKind  `json:"kind"`
		Document stdjson.RawMessage `json:"document"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		log.Printf("[Preset] Error decoding request body for CreatePreset: %v", err)
		return
	}

	if len(req.Document) == 0 {
		if req.Kind != "" && req.Kind != models.PresetCamera {
			http.Error(w, "Only camera presets can be captured without a document", http.StatusBadRequest)
			return
		}
		req.Kind = models.PresetCamera
		doc, status, err := h.captureCamera(r)
		if err != nil {
			http.Error(w, err.Error(), status)
			log.Printf("[Preset] Error capturing camera: %v", err)
			return
		}
		req.Document = doc
	}

	p := &models.Preset{Name: req.Name, Kind: req.Kind, Document: req.Document}
	if err := p.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Printf("[Preset] Validation error: %v", err)
		return
	}

	saved, err := h.Store.SavePreset(r.Context(), p.Name, p.Kind, p.Document)
	if err != nil {
		http.Error(w, "Failed to save preset", http.StatusInternalServerError)
		log.Printf("[Preset] Error saving preset %q: %v", p.Name, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// captureCamera reads the render server's camera.
func (h *PresetHandler) captureCamera(r *http.Request) ([]byte, int, error) {
	camera := models.NewCamera()
	if err := h.Client.GetFovCamera(brayns.ReportConnectionFailures(r.Context()), camera); err != nil {
		return nil, http.StatusBadGateway, err
	}
	doc, err := camera.Serialize()
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return doc, http.StatusOK, nil
}

func (h *PresetHandler) lookup(w http.ResponseWriter, r *http.Request) (*models.Preset, bool) {
	name := mux.Vars(r)["name"]
	p, err := h.Store.GetPreset(r.Context(), name)
	if errors.Is(err, storage.ErrPresetNotFound) {
		http.Error(w, "Preset not found", http.StatusNotFound)
		log.Printf("[Preset] Preset not found: %s", name)
		return nil, false
	}
	if err != nil {
		http.Error(w, "Failed to get preset", http.StatusInternalServerError)
		log.Printf("[Preset] Error getting preset %q: %v", name, err)
		return nil, false
	}
	return p, true
}

// GetPreset handles GET /api/v1/presets/{name}.
func (h *PresetHandler) GetPreset(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, p)
	}
}

// DeletePreset handles DELETE /api/v1/presets/{name}.
func (h *PresetHandler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	err := h.Store.DeletePreset(r.Context(), name)
	if errors.Is(err, storage.ErrPresetNotFound) {
		http.Error(w, "Preset not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete preset", http.StatusInternalServerError)
		log.Printf("[Preset] Error deleting preset %q: %v", name, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyPreset handles POST /api/v1/presets/{name}/apply by pushing the stored
// document to the render server. An unreachable server is a 502, so a 200
// means the server accepted the document.
func (h *PresetHandler) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}

	err := apply(r, h.Client, p)
	var statusErr *brayns.StatusError
	switch {
	case err == nil:
	case errors.Is(err, brayns.ErrUnreachable):
		http.Error(w, err.Error(), http.StatusBadGateway)
		log.Printf("[Preset] Could not apply preset %q: %v", p.Name, err)
		return
	case errors.Is(err, brayns.ErrUnsupported):
		http.Error(w, err.Error(), http.StatusNotImplemented)
		return
	case errors.As(err, &statusErr):
		http.Error(w, err.Error(), http.StatusBadGateway)
		log.Printf("[Preset] Render server rejected preset %q: %v", p.Name, err)
		return
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		log.Printf("[Preset] Error applying preset %q: %v", p.Name, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Preset applied",
		"name":    p.Name,
		"kind":    string(p.Kind),
	})
	log.Printf("[Preset] Applied preset %s (%s)", p.Name, p.Kind)
}

func apply(r *http.Request, c *brayns.Client, p *models.Preset) error {
	ctx := brayns.ReportConnectionFailures(r.Context())
	switch p.Kind {
	case models.PresetCamera:
		camera := models.NewCamera()
		if err := camera.Deserialize(p.Document); err != nil {
			return err
		}
		return c.SetFovCamera(ctx, camera)
	case models.PresetMaterial:
		var material models.Material
		if err := material.Deserialize(p.Document); err != nil {
			return err
		}
		return c.SetMaterial(ctx, material)
	case models.PresetTransferFunction:
		tf := models.NewTransferFunction()
		if err := tf.Deserialize(p.Document); err != nil {
			return err
		}
		return c.SetTransferFunction(ctx, tf)
	}
	return p.Validate()
}
