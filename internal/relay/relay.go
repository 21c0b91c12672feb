// Package relay polls the render server for frames and hands them to a
// websocket hub while anyone is watching.
package relay

import (
	"context"
	"log"
	"time"

	"github.com/Vasu1712/brayns-remote/internal/ws"
)

// FrameSource returns the current frame as JPEG bytes, or nil when there is
// none. *brayns.Client implements it.
type FrameSource interface {
	GetImageJPEGBytes(ctx context.Context) ([]byte, error)
}

// Relay copies frames from Source to the viewers of Stream.
type Relay struct {
	Source   FrameSource
	Hub      *ws.Hub
	Stream   string
	Interval time.Duration
}

// Run polls every Interval until ctx is done. Ticks with no viewers do not
// touch the render server.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()
	log.Printf("[Frames] Relaying stream %s every %s", r.Stream, r.Interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if r.Hub.Viewers(r.Stream) == 0 {
			continue
		}
		data, err := r.Source.GetImageJPEGBytes(ctx)
		if err != nil {
			log.Printf("[Frames] Error fetching frame: %v", err)
			continue
		}
		if data == nil {
			continue
		}
		select {
		case r.Hub.Broadcast <- ws.Frame{Stream: r.Stream, Data: data}:
		case <-ctx.Done():
			return
		}
	}
}
