package web

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/rook-computer/softfb/internal/present"
	"github.com/rook-computer/softfb/internal/raster"
)

// The frame loop answers between two frames; a stalled loop must not hang
// HTTP handlers forever.
const sessionTimeout = 2 * time.Second

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type rectResponse struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type statsResponse struct {
	Frame                uint64       `json:"frame"`
	Width                int          `json:"width"`
	Height               int          `json:"height"`
	Dirty                rectResponse `json:"dirty"`
	Presented            bool         `json:"presented"`
	PresentedPixels      int          `json:"presentedPixels"`
	TotalPresentedPixels uint64       `json:"totalPresentedPixels"`
	DamageTracking       bool         `json:"damageTracking"`
}

type damageRequest struct {
	Enabled *bool `json:"enabled"`
}

type damageResponse struct {
	Enabled bool `json:"enabled"`
}

func inspectorRouter(src FrameSource) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, src) })
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) { handleStats(w, r, src) })
	mux.HandleFunc("/damage", func(w http.ResponseWriter, r *http.Request) { handleDamage(w, r, src) })
	return mux
}

func handleFrame(w http.ResponseWriter, r *http.Request, src FrameSource) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), sessionTimeout)
	defer cancel()
	fb, _, err := src.Snapshot(ctx)
	if err != nil {
		writeAPIError(w, http.StatusServiceUnavailable, "session_unavailable", err.Error())
		return
	}
	if fb.Width() == 0 || fb.Height() == 0 {
		writeAPIError(w, http.StatusConflict, "empty_frame", "framebuffer has no pixels")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_ = png.Encode(w, toRGBA(fb))
}

// toRGBA copies fb into an opaque image.RGBA, which png encodes directly.
func toRGBA(fb *raster.Framebuffer) *image.RGBA {
	pix := fb.AppendRGBX(make([]byte, 0, fb.Width()*fb.Height()*4), fb.Bounds())
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 0xFF
	}
	return &image.RGBA{Pix: pix, Stride: fb.Width() * 4, Rect: fb.Bounds()}
}

func handleStats(w http.ResponseWriter, r *http.Request, src FrameSource) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	st, ok := snapshotStats(w, r, src)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toStatsResponse(st))
}

func handleDamage(w http.ResponseWriter, r *http.Request, src FrameSource) {
	switch r.Method {
	case http.MethodGet:
		st, ok := snapshotStats(w, r, src)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, damageResponse{Enabled: st.DamageTracking})
	case http.MethodPost:
		var req damageRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<10)).Decode(&req); err != nil || req.Enabled == nil {
			writeAPIError(w, http.StatusBadRequest, "bad_request", `expected {"enabled": true|false}`)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), sessionTimeout)
		defer cancel()
		if err := src.SetDamageTracking(ctx, *req.Enabled); err != nil {
			writeAPIError(w, http.StatusServiceUnavailable, "session_unavailable", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, damageResponse{Enabled: *req.Enabled})
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func snapshotStats(w http.ResponseWriter, r *http.Request, src FrameSource) (present.Stats, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), sessionTimeout)
	defer cancel()
	_, st, err := src.Snapshot(ctx)
	if err != nil {
		writeAPIError(w, http.StatusServiceUnavailable, "session_unavailable", err.Error())
		return present.Stats{}, false
	}
	return st, true
}

func toStatsResponse(st present.Stats) statsResponse {
	return statsResponse{
		Frame:  st.Frame,
		Width:  st.Width,
		Height: st.Height,
		Dirty: rectResponse{
			X:      st.Dirty.Min.X,
			Y:      st.Dirty.Min.Y,
			Width:  st.Dirty.Dx(),
			Height: st.Dirty.Dy(),
		},
		Presented:            st.Presented,
		PresentedPixels:      st.PresentedPixels,
		TotalPresentedPixels: st.TotalPresentedPixels,
		DamageTracking:       st.DamageTracking,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
