package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/dygy/beatgen/internal/errors"
	"github.com/dygy/beatgen/internal/midifile"
	"github.com/dygy/beatgen/internal/pattern"
	"github.com/dygy/beatgen/internal/strudel"
)

const maxRequestSize = 64 * 1024

// generateRequest is the JSON body accepted by the generate endpoints.
// Seed is optional; omitting it gives a different pattern per call.
type generateRequest struct {
	Style         string  `json:"style"`
	TimeSignature string  `json:"time_signature"`
	BPM           int     `json:"bpm"`
	Bars          int     `json:"bars"`
	Complexity    float64 `json:"complexity"`
	Dynamics      float64 `json:"dynamics"`
	Seed          *int64  `json:"seed,omitempty"`
	Kit           string  `json:"kit,omitempty"`
}

// generateResponse carries the pattern plus its Strudel rendering.
type generateResponse struct {
	Settings pattern.Settings `json:"settings"`
	Pattern  *pattern.Pattern `json:"pattern"`
	Strudel  string           `json:"strudel"`
}

type styleInfo struct {
	Name        pattern.Style   `json:"name"`
	Description string          `json:"description"`
	Kit         strudel.DrumKit `json:"default_kit"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleStyles lists the available styles and their default kits
func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	var styles []styleInfo
	for _, st := range pattern.Styles() {
		styles = append(styles, styleInfo{
			Name:        st,
			Description: pattern.StyleDescription(st),
			Kit:         strudel.StyleKit(st),
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"styles": styles})
}

// generateFromRequest parses, validates, and runs one generation.
func (s *Server) generateFromRequest(w http.ResponseWriter, r *http.Request) (*generateRequest, pattern.Settings, *pattern.Pattern, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return nil, pattern.Settings{}, nil, false
	}

	settings := pattern.Settings{
		Style:         pattern.ParseStyle(req.Style),
		TimeSignature: pattern.ParseTimeSignature(req.TimeSignature),
		BPM:           req.BPM,
		Bars:          req.Bars,
		Complexity:    req.Complexity,
		Dynamics:      req.Dynamics,
	}
	if err := settings.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return nil, pattern.Settings{}, nil, false
	}

	var g *pattern.Generator
	if req.Seed != nil {
		g = pattern.NewWithSeed(*req.Seed)
	} else {
		g = pattern.New()
	}
	p := g.Generate(settings)
	return &req, settings, &p, true
}

// handleGenerate returns the generated pattern as JSON
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, settings, p, ok := s.generateFromRequest(w, r)
	if !ok {
		return
	}

	kit := strudel.StyleKit(settings.Style)
	if req.Kit != "" {
		kit = strudel.ParseDrumKit(req.Kit)
	}
	code := strudel.NewGenerator(16).Render(p, kit)

	s.writeJSON(w, http.StatusOK, generateResponse{
		Settings: settings,
		Pattern:  p,
		Strudel:  code,
	})
}

// handleGenerateStrudel returns just the Strudel code as plain text
func (s *Server) handleGenerateStrudel(w http.ResponseWriter, r *http.Request) {
	req, settings, p, ok := s.generateFromRequest(w, r)
	if !ok {
		return
	}

	kit := strudel.StyleKit(settings.Style)
	if req.Kit != "" {
		kit = strudel.ParseDrumKit(req.Kit)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, strudel.NewGenerator(16).Render(p, kit))
}

// handleGenerateMIDI returns the pattern as a MIDI file download
func (s *Server) handleGenerateMIDI(w http.ResponseWriter, r *http.Request) {
	_, settings, p, ok := s.generateFromRequest(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := midifile.Write(p, &buf); err != nil {
		s.logger.Error("midi encode failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "MIDI encoding failed")
		return
	}

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s-%dbpm.mid\"", settings.Style, settings.BPM))
	w.Write(buf.Bytes())
}

// handleGenerateWAV renders the pattern and returns a WAV download
func (s *Server) handleGenerateWAV(w http.ResponseWriter, r *http.Request) {
	_, settings, p, ok := s.generateFromRequest(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.EncodeWAV(p, &buf); err != nil {
		if errors.Is(err, apperrors.ErrEmptyPattern) {
			s.writeError(w, http.StatusUnprocessableEntity, "pattern is empty")
			return
		}
		s.logger.Error("wav render failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "audio rendering failed")
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s-%dbpm.wav\"", settings.Style, settings.BPM))
	w.Write(buf.Bytes())
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// writeError writes a JSON error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
