// Package http serves the viewer policies to browser front ends that render
// the players themselves.
package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/constant"
	"github.com/grauman/grauman/geometry"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/timefmt"
	"github.com/grauman/grauman/viewer"
)

// SelectResponse is the reply of POST /v1/select.
type SelectResponse struct {
	Kind        viewer.Kind        `json:"kind"`
	Family      string             `json:"family"`
	Supported   bool               `json:"supported"`
	Environment viewer.Environment `json:"environment"`
}

// GeometryRequest is the body of POST /v1/geometry.
type GeometryRequest struct {
	Asset      asset.Options `json:"asset"`
	Container  geometry.Box  `json:"container"`
	Viewport   geometry.Size `json:"viewport"`
	Fullscreen bool          `json:"fullscreen"`
	Upscale    string        `json:"upscale,omitempty"`
}

// TimecodeResponse is the reply of GET /v1/timecode.
type TimecodeResponse struct {
	Seconds float64        `json:"seconds"`
	Format  timefmt.Format `json:"format"`
	Label   string         `json:"label"`
	Frame   int            `json:"frame,omitempty"`
}

type Handler struct {
	log *log.Entry
}

func NewHandler() *Handler {
	return &Handler{log: log.With(log.Fields{"component": "policy-server"})}
}

// Select handles POST /v1/select. The environment comes from the User-Agent header.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var opts asset.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := asset.New(opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	env := viewer.DetectEnvironment(r.UserAgent())
	kind := viewer.Select(d, env)

	writeJSON(w, SelectResponse{
		Kind:        kind,
		Family:      kind.Family().String(),
		Supported:   kind != viewer.Unsupported,
		Environment: env,
	})
}

// Geometry handles POST /v1/geometry.
func (h *Handler) Geometry(w http.ResponseWriter, r *http.Request) {
	var req GeometryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := asset.New(req.Asset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mode := geometry.DefaultUpscale
	if req.Upscale != "" {
		if mode, err = geometry.ParseUpscaleMode(req.Upscale); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	bounds := geometry.Bounds(req.Container, req.Viewport, req.Fullscreen)
	writeJSON(w, geometry.ComputeSize(geometry.NaturalSize(d), bounds, req.Fullscreen, mode))
}

// Timecode handles GET /v1/timecode?seconds=&fps=&format=.
// SMPTE without an fps uses the NTSC rate.
func (h *Handler) Timecode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	seconds, err := strconv.ParseFloat(q.Get("seconds"), 64)
	if err != nil {
		http.Error(w, "seconds must be a number", http.StatusBadRequest)
		return
	}

	format := timefmt.FormatTime
	if raw := q.Get("format"); raw != "" {
		if format, err = timefmt.ParseFormat(raw); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	fps := constant.DefaultFPS
	if raw := q.Get("fps"); raw != "" {
		if fps, err = strconv.ParseFloat(raw, 64); err != nil || fps <= 0 {
			http.Error(w, "fps must be a positive number", http.StatusBadRequest)
			return
		}
	}

	resp := TimecodeResponse{
		Seconds: seconds,
		Format:  format,
		Label:   timefmt.Render(seconds, fps, format),
	}
	if format == timefmt.FormatSMPTE {
		resp.Frame = timefmt.Frame(seconds, fps)
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("write response: %s", err)
	}
}
