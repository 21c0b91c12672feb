package fakeserver

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
	"io"
	"log"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/Vasu1712/brayns-remote/internal/brayns"
	"github.com/Vasu1712/brayns-remote/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var defaultSize = image.Pt(64, 64)

func writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) putAttribute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string      `json:"key"`
		Value interface{} `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		log.Printf("[Server] Error decoding attribute body: %v", err)
		return
	}
	if req.Key == "" {
		http.Error(w, "Attribute key cannot be empty", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.attributes[req.Key] = req.Value
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) putCamera(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	camera := models.NewCamera()
	if err := camera.Deserialize(body); err != nil {
		http.Error(w, "Invalid camera document", http.StatusBadRequest)
		log.Printf("[Server] Error decoding camera: %v", err)
		return
	}

	s.mu.Lock()
	s.camera = camera
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) getCamera(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	data, err := s.camera.Serialize()
	s.mu.RUnlock()
	if err != nil {
		http.Error(w, "Failed to encode camera", http.StatusInternalServerError)
		return
	}
	writeJSON(w, data)
}

func (s *Server) putColorMap(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.colorMap = body
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) putMaterial(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var m models.Material
	if err := m.Deserialize(body); err != nil {
		http.Error(w, "Invalid material document", http.StatusBadRequest)
		log.Printf("[Server] Error decoding material: %v", err)
		return
	}

	s.mu.Lock()
	s.materials[m.Index()] = m
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

// putTransferFunction accepts both the {"channels": [...]} document and the
// single-channel {"attribute", "points"} fragment.
func (s *Server) putTransferFunction(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var shape map[string]jsoniter.RawMessage
	if err := json.Unmarshal(body, &shape); err != nil {
		http.Error(w, "Invalid transfer function document", http.StatusBadRequest)
		return
	}
	if _, ok := shape["channels"]; ok {
		if err := models.NewTransferFunction().Deserialize(body); err != nil {
			http.Error(w, "Invalid transfer function document", http.StatusBadRequest)
			log.Printf("[Server] Error decoding transfer function: %v", err)
			return
		}
	} else if _, ok := shape["attribute"]; !ok {
		http.Error(w, "Transfer function needs channels or an attribute", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.transferFunction = body
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) getImageJPEG(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	size := s.size(string(brayns.KeyJPEGSize), s.size(string(brayns.KeyWindowSize), defaultSize))
	bg := s.background()
	quality := s.jpegQuality()
	s.mu.RUnlock()

	img := image.NewNRGBA(image.Rectangle{Max: size})
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		http.Error(w, "Failed to encode frame", http.StatusInternalServerError)
		log.Printf("[Server] Error encoding jpeg: %v", err)
		return
	}
	data, err := (&models.ImageJPEG{Data: buf.Bytes()}).Serialize()
	if err != nil {
		http.Error(w, "Failed to encode frame", http.StatusInternalServerError)
		return
	}
	writeJSON(w, data)
}

// getFrameBuffers answers with a flat color plane and a depth plane whose
// value is the pixel's linear index.
func (s *Server) getFrameBuffers(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	size := s.size(string(brayns.KeyWindowSize), defaultSize)
	bg := s.background()
	s.mu.RUnlock()

	pixels := size.X * size.Y
	fb := &models.FrameBuffers{
		Width:   size.X,
		Height:  size.Y,
		Diffuse: make([]byte, pixels*4),
		Depth:   make([]byte, pixels*2),
	}
	for i := 0; i < pixels; i++ {
		copy(fb.Diffuse[4*i:], []byte{bg.R, bg.G, bg.B, bg.A})
		binary.LittleEndian.PutUint16(fb.Depth[2*i:], uint16(i))
	}
	data, err := fb.Serialize()
	if err != nil {
		http.Error(w, "Failed to encode frame buffers", http.StatusInternalServerError)
		return
	}
	writeJSON(w, data)
}
