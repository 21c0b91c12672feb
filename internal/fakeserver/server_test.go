package fakeserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAttributeIsStored(t *testing.T) {
	s := New(Quiet())
	h := s.Handler()

	rec := do(t, h, http.MethodPut, "/zerobuf/render/attribute", `{"key": "window-size", "value": "32 16"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	v, ok := s.Attribute("window-size")
	require.True(t, ok)
	assert.Equal(t, "32 16", v)

	rec = do(t, h, http.MethodPut, "/zerobuf/render/attribute", `{"value": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRejectsBadDocuments(t *testing.T) {
	h := New(Quiet()).Handler()

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/zerobuf/render/fovcamera", `{"origin": {}}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/zerobuf/render/material", `{"index": 0}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/zerobuf/render/transferFunction1D", `{"points": []}`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/zerobuf/render/attribute", ``).Code)
}

func TestTransferFunctionAcceptsBothShapes(t *testing.T) {
	s := New(Quiet())
	h := s.Handler()

	single := `{"attribute": "red", "points": [{"x": 0, "y": 1}]}`
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/zerobuf/render/transferFunction1D", single).Code)
	assert.JSONEq(t, single, string(s.TransferFunction()))

	channels := `{"channels": [{"attribute": "alpha", "points": []}]}`
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/zerobuf/render/transferFunction1D", channels).Code)
	assert.JSONEq(t, channels, string(s.TransferFunction()))
	assert.Len(t, s.Requests(), 2)

	s.ResetRequests()
	assert.Empty(t, s.Requests())
}

func TestCameraDefault(t *testing.T) {
	rec := do(t, New(Quiet()).Handler(), http.MethodGet, "/zerobuf/render/fovcamera", ``)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"origin": {"x": 0, "y": 0, "z": -1},
		"lookAt": {"x": 0, "y": 0, "z": 0},
		"up": {"x": 0, "y": 1, "z": 0},
		"fovAperture": 0,
		"fovFocalLength": 0
	}`, rec.Body.String())
}

func TestMissingBearerToken(t *testing.T) {
	h := New(Quiet(), WithJWTSecret([]byte("k"))).Handler()
	rec := do(t, h, http.MethodGet, "/zerobuf/render/fovcamera", ``)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDocumentDecoding(t *testing.T) {
	s := New(Quiet())
	h := s.Handler()

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/zerobuf/render/attribute", `{"key": "spp", "value": 64}`).Code)
	v, ok := s.Attribute("spp")
	require.True(t, ok)
	assert.Equal(t, float64(64), v)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/zerobuf/render/transferFunction1D", `[1, 2]`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/zerobuf/render/transferFunction1D", `{"points": [}`).Code)

	material := `{"index": 2, "diffuseColor": {"r": 1, "g": 1, "b": 1}, "specularColor": {"r": 1, "g": 1, "b": 1},
		"specularExponent": 100, "opacity": 1, "refractionIndex": null, "reflectionIndex": null, "lightEmission": null}`
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/zerobuf/render/material", material).Code)
	_, ok = s.Material(2)
	assert.True(t, ok)
}
