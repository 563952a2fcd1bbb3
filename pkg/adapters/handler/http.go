package handler

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
	"github.com/wadjakorntonsri/linkpulse/pkg/ports"
	"github.com/wadjakorntonsri/linkpulse/pkg/render"
)

// EditorHandler serves the authenticated profile editor API.
type EditorHandler struct {
	service  ports.EditorService
	enricher ports.VideoEnricher
	live     ports.LiveStatusSource
	page     PageConfig
}

// PageConfig holds the deployment URLs used when rendering profile pages.
type PageConfig struct {
	BaseURL        string
	HomepageURL    string
	DefaultOGImage string
	// LoadTimeout bounds how long a public page waits for the profile
	// before settling for the cached copy. Zero means no bound.
	LoadTimeout time.Duration
}

func (c PageConfig) options(id string) render.Options {
	return render.Options{
		PageURL:        c.BaseURL + "/u/" + id,
		HomepageURL:    c.HomepageURL,
		DefaultOGImage: c.DefaultOGImage,
	}
}

func NewEditorHandler(service ports.EditorService, enricher ports.VideoEnricher, live ports.LiveStatusSource, page PageConfig) *EditorHandler {
	return &EditorHandler{service: service, enricher: enricher, live: live, page: page}
}

// SelectThemeRequest payload
type SelectThemeRequest struct {
	ID string `json:"id"`
}

// ReorderRequest payload: every entry id, in the new order
type ReorderRequest struct {
	IDs []string `json:"ids"`
}

// owner returns the caller's email, writing a 401 when it is missing.
func owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	email := UserEmail(r.Context())
	if email == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return email, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (h *EditorHandler) respond(w http.ResponseWriter, op string, code int, p *domain.Profile, err error) {
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, code, p)
}

// Get Draft
func (h *EditorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetDraft(r.Context(), email)
	h.respond(w, "GetProfile", http.StatusOK, p, err)
}

// Update username, display name, bio and avatar
func (h *EditorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	var patch domain.InfoPatch
	if !decode(w, r, &patch) {
		return
	}
	p, err := h.service.UpdateInfo(r.Context(), email, patch)
	h.respond(w, "UpdateProfile", http.StatusOK, p, err)
}

// Themes lists the preset themes a profile can select.
func (h *EditorHandler) Themes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.PresetThemes())
}

func (h *EditorHandler) SelectTheme(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	var req SelectThemeRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.service.SelectTheme(r.Context(), email, req.ID)
	h.respond(w, "SelectTheme", http.StatusOK, p, err)
}

func (h *EditorHandler) EditTheme(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	var patch domain.ThemePatch
	if !decode(w, r, &patch) {
		return
	}
	p, err := h.service.EditTheme(r.Context(), email, patch)
	h.respond(w, "EditTheme", http.StatusOK, p, err)
}

// Links

func (h *EditorHandler) AddLink(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	p, err := h.service.AddLink(r.Context(), email)
	h.respond(w, "AddLink", http.StatusCreated, p, err)
}

func (h *EditorHandler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	var patch domain.LinkPatch
	if !decode(w, r, &patch) {
		return
	}
	p, err := h.service.UpdateLink(r.Context(), email, r.PathValue("id"), patch)
	h.respond(w, "UpdateLink", http.StatusOK, p, err)
}

func (h *EditorHandler) RemoveLink(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	p, err := h.service.RemoveLink(r.Context(), email, r.PathValue("id"))
	h.respond(w, "RemoveLink", http.StatusOK, p, err)
}

func (h *EditorHandler) ReorderLinks(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	var req ReorderRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.service.ReorderLinks(r.Context(), email, req.IDs)
	h.respond(w, "ReorderLinks", http.StatusOK, p, err)
}

// Featured videos

func (h *EditorHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	p, err := h.service.AddVideo(r.Context(), email)
	h.respond(w, "AddVideo", http.StatusCreated, p, err)
}

func (h *EditorHandler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	var patch domain.VideoPatch
	if !decode(w, r, &patch) {
		return
	}
	p, err := h.service.UpdateVideo(r.Context(), email, r.PathValue("id"), patch)
	h.respond(w, "UpdateVideo", http.StatusOK, p, err)
}

func (h *EditorHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	p, err := h.service.RemoveVideo(r.Context(), email, r.PathValue("id"))
	h.respond(w, "RemoveVideo", http.StatusOK, p, err)
}

func (h *EditorHandler) ReorderVideos(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	var req ReorderRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.service.ReorderVideos(r.Context(), email, req.IDs)
	h.respond(w, "ReorderVideos", http.StatusOK, p, err)
}

// Save validates and publishes the draft
func (h *EditorHandler) Save(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	p, err := h.service.Save(r.Context(), email)
	h.respond(w, "Save", http.StatusOK, p, err)
}

// Preview renders the draft as the public page would show it.
// ?format=text returns the terminal rendition instead of HTML.
func (h *EditorHandler) Preview(w http.ResponseWriter, r *http.Request) {
	email, ok := owner(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetDraft(r.Context(), email)
	if err != nil {
		writeServiceError(w, "Preview", err)
		return
	}

	p.FeaturedVideos = h.enricher.EnrichVideos(r.Context(), p.FeaturedVideos)
	live := h.live.LiveFor(r.Context(), p)

	if r.URL.Query().Get("format") == "text" {
		width, _ := strconv.Atoi(r.URL.Query().Get("width"))
		if width <= 0 {
			width = 48
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(render.Terminal(p, live, width)))
		return
	}

	var buf bytes.Buffer
	if err := render.RenderPage(&buf, render.BuildPage(p, live, h.page.options(p.Username))); err != nil {
		log.Printf("Preview render error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
