// Package fakeserver is an in-process stand-in for a Brayns render server.
// It answers every endpoint the client uses, keeps the last value pushed to
// each one, and "renders" flat images in the current background color.
package fakeserver

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"github.com/Vasu1712/brayns-remote/internal/brayns"
	"github.com/Vasu1712/brayns-remote/internal/models"
)

// Request is a request the server received, kept for inspection by tests.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Server holds the render state pushed by clients.
type Server struct {
	mu               sync.RWMutex
	attributes       map[string]interface{} // key -> last value set through the attribute endpoint
	camera           *models.Camera
	materials        map[int]models.Material // slot index -> material
	transferFunction []byte                  // last transfer function body as received
	colorMap         []byte
	requests         []Request
	jwtSecret        []byte
	quiet            bool
}

// Option configures a Server.
type Option func(*Server)

// WithJWTSecret makes the server reject requests without a valid HS256 bearer token.
func WithJWTSecret(secret []byte) Option {
	return func(s *Server) { s.jwtSecret = secret }
}

// Quiet turns off per-request logging.
func Quiet() Option {
	return func(s *Server) { s.quiet = true }
}

// New returns a server with a default camera and no attributes set.
func New(opts ...Option) *Server {
	s := &Server{
		attributes: make(map[string]interface{}),
		camera:     models.NewCamera(),
		materials:  make(map[int]models.Material),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router serving every render endpoint.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.record)
	if len(s.jwtSecret) > 0 {
		r.Use(s.authenticate)
	}
	r.HandleFunc(brayns.PathAttribute, s.putAttribute).Methods(http.MethodPut)
	r.HandleFunc(brayns.PathFovCamera, s.putCamera).Methods(http.MethodPut)
	r.HandleFunc(brayns.PathFovCamera, s.getCamera).Methods(http.MethodGet)
	r.HandleFunc(brayns.PathColorMap, s.putColorMap).Methods(http.MethodPut)
	r.HandleFunc(brayns.PathMaterial, s.putMaterial).Methods(http.MethodPut)
	r.HandleFunc(brayns.PathTransferFunction, s.putTransferFunction).Methods(http.MethodPut)
	r.HandleFunc(brayns.PathImageJPEG, s.getImageJPEG).Methods(http.MethodGet)
	r.HandleFunc(brayns.PathFrameBuffers, s.getFrameBuffers).Methods(http.MethodGet)
	return r
}

// record keeps a copy of every request and restores the body for the handler.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		if !s.quiet {
			log.Printf("[Server] %s %s", r.Method, r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}

// Requests returns the requests received so far, oldest first.
func (s *Server) Requests() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Request(nil), s.requests...)
}

// ResetRequests forgets the recorded requests but keeps the render state.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// Attribute returns the last value set for key.
func (s *Server) Attribute(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.attributes[key]
	return v, ok
}

// Camera returns a copy of the current camera.
func (s *Server) Camera() models.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.camera
}

// Material returns the material stored in slot index.
func (s *Server) Material(index int) (models.Material, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.materials[index]
	return m, ok
}

// TransferFunction returns the last transfer function body received.
func (s *Server) TransferFunction() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.transferFunction...)
}

// size parses a "width height" attribute, falling back to def.
func (s *Server) size(key string, def image.Point) image.Point {
	v, ok := s.attributes[key].(string)
	if !ok {
		return def
	}
	fields := strings.Fields(v)
	if len(fields) != 2 {
		return def
	}
	w, err1 := strconv.Atoi(fields[0])
	h, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return def
	}
	return image.Pt(w, h)
}

// background parses the "r g b" background color attribute.
func (s *Server) background() color.NRGBA {
	c := color.NRGBA{A: 255}
	v, ok := s.attributes[string(brayns.KeyBackgroundColor)].(string)
	if !ok {
		return c
	}
	fields := strings.Fields(v)
	if len(fields) != 3 {
		return c
	}
	var ch [3]uint8
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return c
		}
		ch[i] = clamp8(x)
	}
	c.R, c.G, c.B = ch[0], ch[1], ch[2]
	return c
}

func clamp8(x float64) uint8 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 255
	}
	return uint8(x*255 + 0.5)
}

func (s *Server) jpegQuality() int {
	if q, ok := s.attributes[string(brayns.KeyJPEGCompression)].(float64); ok && q >= 1 && q <= 100 {
		return int(q)
	}
	return jpeg.DefaultQuality
}
