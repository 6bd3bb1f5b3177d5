package web

import (
	"context"
	"net/http"

	"github.com/rook-computer/softfb/internal/present"
	"github.com/rook-computer/softfb/internal/raster"
)

// FrameSource is the running session as seen by the inspector.
// *present.Session implements it.
type FrameSource interface {
	Snapshot(ctx context.Context) (*raster.Framebuffer, present.Stats, error)
	SetDamageTracking(ctx context.Context, enabled bool) error
}

// RegisterInspector registers the inspector API under /api/v1/.
func RegisterInspector(mux *http.ServeMux, src FrameSource) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", inspectorRouter(src)))
}

// RegisterUI serves a page that polls the frame and stats endpoints.
func RegisterUI(mux *http.ServeMux) {
	mux.HandleFunc("/", handleIndex)
}

// NewDefaultMux builds the mux used by both binaries:
// - /api/v1/* for the inspector API
// - / for the viewer page
func NewDefaultMux(src FrameSource) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterInspector(mux, src)
	RegisterUI(mux)
	return mux
}

var _ FrameSource = (*present.Session)(nil)
