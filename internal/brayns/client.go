// Package brayns is a remote-control client for a Brayns render server. It
// pushes camera, material, shading and transfer-function parameters over
// HTTP and pulls rendered images back as image.Image values.
package brayns

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// Endpoint paths relative to the server's base URL.
const (
	PathAttribute        = "/zerobuf/render/attribute"
	PathFovCamera        = "/zerobuf/render/fovcamera"
	PathColorMap         = "/zerobuf/render/colormap"
	PathImageJPEG        = "/lexis/render/imagejpeg"
	PathMaterial         = "/zerobuf/render/material"
	PathTransferFunction = "/zerobuf/render/transferFunction1D"
	PathFrameBuffers     = "/zerobuf/render/framebuffers"
)

// ErrUnsupported is returned when the client profile has no such endpoint.
var ErrUnsupported = errors.New("operation not supported by this server profile")

// Profile selects which generation of the render server API the client speaks.
type Profile int

const (
	// ProfileCurrent selects shaders by name, takes the material slot per call
	// and has the transfer-function and framebuffer endpoints.
	ProfileCurrent Profile = iota
	// ProfileLegacy selects shaders by integer id and only knows the
	// attribute, camera, material and JPEG endpoints.
	ProfileLegacy
)

func (p Profile) String() string {
	switch p {
	case ProfileCurrent:
		return "current"
	case ProfileLegacy:
		return "legacy"
	}
	return fmt.Sprintf("Profile(%d)", int(p))
}

// ParseProfile maps "current" or "legacy" to a Profile.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "current":
		return ProfileCurrent, nil
	case "legacy":
		return ProfileLegacy, nil
	}
	return ProfileCurrent, fmt.Errorf("unknown client profile %q", s)
}

// TransferFunctionEncoding selects the body sent to the transfer-function endpoint.
type TransferFunctionEncoding int

const (
	// TFChannels sends every channel in one {"channels": [...]} document.
	TFChannels TransferFunctionEncoding = iota
	// TFLastChannel sends only the last channel's {"attribute", "points"}
	// fragment, which is all older servers accept.
	TFLastChannel
)

// ParseTransferFunctionEncoding maps "channels" or "last-channel".
func ParseTransferFunctionEncoding(s string) (TransferFunctionEncoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "channels":
		return TFChannels, nil
	case "last-channel":
		return TFLastChannel, nil
	}
	return TFChannels, fmt.Errorf("unknown transfer function encoding %q", s)
}

type endpoints struct {
	attribute        string
	fovCamera        string
	colorMap         string
	imageJPEG        string
	material         string
	transferFunction string
	frameBuffers     string
}

// Client talks to one render server. It holds no render state of its own;
// every call is a single HTTP round trip.
type Client struct {
	url        string
	urls       endpoints
	profile    Profile
	tfEncoding TransferFunctionEncoding
	httpClient *http.Client
	signer     *tokenSigner
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithProfile selects the server API generation.
func WithProfile(p Profile) Option {
	return func(c *Client) { c.profile = p }
}

// WithTransferFunctionEncoding selects the transfer-function wire format.
func WithTransferFunctionEncoding(e TransferFunctionEncoding) Option {
	return func(c *Client) { c.tfEncoding = e }
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sends connection failure reports to l instead of the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithJWTSecret signs every request with a short-lived HS256 bearer token
// whose subject is subject.
func WithJWTSecret(secret []byte, subject string) Option {
	return func(c *Client) {
		if len(secret) == 0 {
			c.signer = nil
			return
		}
		c.signer = &tokenSigner{secret: secret, subject: subject, ttl: time.Minute}
	}
}

// New returns a client for the server at baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	url := strings.TrimRight(baseURL, "/")
	c := &Client{
		url: url,
		urls: endpoints{
			attribute:        url + PathAttribute,
			fovCamera:        url + PathFovCamera,
			colorMap:         url + PathColorMap,
			imageJPEG:        url + PathImageJPEG,
			material:         url + PathMaterial,
			transferFunction: url + PathTransferFunction,
			frameBuffers:     url + PathFrameBuffers,
		},
		httpClient: http.DefaultClient,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the base URL the client was built with.
func (c *Client) URL() string { return c.url }

// Endpoints lists the URL derived for every server resource.
func (c *Client) Endpoints() map[string]string {
	return map[string]string{
		"attribute":         c.urls.attribute,
		"fovcamera":         c.urls.fovCamera,
		"colormap":          c.urls.colorMap,
		"imagejpeg":         c.urls.imageJPEG,
		"material":          c.urls.material,
		"transfer-function": c.urls.transferFunction,
		"framebuffers":      c.urls.frameBuffers,
	}
}

// Profile returns the API generation the client speaks.
func (c *Client) Profile() Profile { return c.profile }
