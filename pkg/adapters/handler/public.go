package handler

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
	"github.com/wadjakorntonsri/linkpulse/pkg/ports"
	"github.com/wadjakorntonsri/linkpulse/pkg/render"
)

// LiveUsers answers live status for an explicit list of Twitch usernames.
type LiveUsers interface {
	LiveForUsers(ctx context.Context, usernames []string) map[string]bool
}

// PublicHandler serves the public profile pages and the published profile API.
type PublicHandler struct {
	loader    ports.ProfileLoader
	enricher  ports.VideoEnricher
	live      ports.LiveStatusSource
	published ports.EditorService
	liveUsers LiveUsers // nil unless Twitch polling is enabled
	page      PageConfig
}

func NewPublicHandler(loader ports.ProfileLoader, enricher ports.VideoEnricher, live ports.LiveStatusSource, published ports.EditorService, liveUsers LiveUsers, page PageConfig) *PublicHandler {
	return &PublicHandler{
		loader:    loader,
		enricher:  enricher,
		live:      live,
		published: published,
		liveUsers: liveUsers,
		page:      page,
	}
}

// Profile renders the public page of a creator.
func (h *PublicHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.notFound(w)
		return
	}

	loaded, err := h.load(r.Context(), id)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			log.Printf("Profile %s error: %v", id, err)
		}
		h.notFound(w)
		return
	}

	p := loaded.Profile.Clone()
	p.FeaturedVideos = h.enricher.EnrichVideos(r.Context(), p.FeaturedVideos)
	live := h.live.LiveFor(r.Context(), p)

	var buf bytes.Buffer
	if err := render.RenderPage(&buf, render.BuildPage(p, live, h.page.options(id))); err != nil {
		log.Printf("Profile %s render error: %v", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if loaded.FromCache {
		w.Header().Set("X-Profile-Source", "cache")
	}
	_, _ = buf.WriteTo(w)
}

func (h *PublicHandler) load(ctx context.Context, id string) (*domain.LoadedProfile, error) {
	if h.page.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.page.LoadTimeout)
		defer cancel()
	}
	return h.loader.LoadProfile(ctx, id)
}

func (h *PublicHandler) notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := render.RenderNotFound(w, h.page.HomepageURL); err != nil {
		log.Printf("Not found render error: %v", err)
	}
}

// CreatorLinks returns the published profile as JSON. When Twitch polling is
// enabled the live flag of each Twitch link is attached as twStatus.
func (h *PublicHandler) CreatorLinks(w http.ResponseWriter, r *http.Request) {
	p, err := h.published.GetPublished(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "CreatorLinks", err)
		return
	}

	if h.liveUsers != nil {
		status := h.live.LiveFor(r.Context(), p)
		for i, l := range p.Links {
			name, ok := domain.ExtractTwitchUsername(l.URL)
			if !ok {
				continue
			}
			live := status[strings.ToLower(name)]
			p.Links[i].TwStatus = &live
		}
	}

	writeJSON(w, http.StatusOK, p)
}

// Live returns the live flags of the usernames given as ?user= parameters.
func (h *PublicHandler) Live(w http.ResponseWriter, r *http.Request) {
	if h.liveUsers == nil {
		writeError(w, http.StatusNotFound, "live status polling is disabled")
		return
	}
	users := r.URL.Query()["user"]
	if len(users) == 0 {
		writeError(w, http.StatusBadRequest, "at least one user is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data": h.liveUsers.LiveForUsers(r.Context(), users),
	})
}
