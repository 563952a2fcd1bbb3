package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/linkpulse/pkg/config"
	"github.com/wadjakorntonsri/linkpulse/pkg/ports"
)

// Services are the core services the HTTP layer dispatches to.
type Services struct {
	Editor   ports.EditorService
	Loader   ports.ProfileLoader
	Enricher ports.VideoEnricher
	Live     ports.LiveStatusSource

	// LiveUsers is set only when Twitch polling is enabled.
	LiveUsers LiveUsers
}

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, svc Services) http.Handler {
	page := PageConfig{
		BaseURL:        cfg.BaseURL,
		HomepageURL:    cfg.HomepageURL,
		DefaultOGImage: cfg.DefaultOGImage,
		LoadTimeout:    cfg.PageTimeout,
	}

	// Initialize Handlers
	eh := NewEditorHandler(svc.Editor, svc.Enricher, svc.Live, page)
	ph := NewPublicHandler(svc.Loader, svc.Enricher, svc.Live, svc.Editor, svc.LiveUsers, page)

	// Initialize Middleware
	mw := NewMiddleware(cfg)

	// Initialize Auth Handler
	authHandler := NewAuthHandler(cfg)

	// Setup Router
	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("GET /u/{id}", ph.Profile)
	mux.HandleFunc("GET /v2/getCreatorLinks/{id}", ph.CreatorLinks)
	if svc.LiveUsers != nil {
		mux.HandleFunc("GET /api/v1/live", ph.Live)
	}
	mux.HandleFunc("GET /auth/google/login", authHandler.Login)
	mux.HandleFunc("GET /auth/google/callback", authHandler.Callback)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)

	// Protected Routes (editor API)
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /api/v1/profile", eh.GetProfile)
	protectedMux.HandleFunc("PUT /api/v1/profile", eh.UpdateProfile)
	protectedMux.HandleFunc("GET /api/v1/themes", eh.Themes)
	protectedMux.HandleFunc("PUT /api/v1/profile/theme", eh.SelectTheme)
	protectedMux.HandleFunc("PATCH /api/v1/profile/theme", eh.EditTheme)
	protectedMux.HandleFunc("POST /api/v1/profile/save", eh.Save)
	protectedMux.HandleFunc("GET /api/v1/profile/preview", eh.Preview)

	// Link Routes
	protectedMux.HandleFunc("POST /api/v1/profile/links", eh.AddLink)
	protectedMux.HandleFunc("PUT /api/v1/profile/links/order", eh.ReorderLinks)
	protectedMux.HandleFunc("PATCH /api/v1/profile/links/{id}", eh.UpdateLink)
	protectedMux.HandleFunc("DELETE /api/v1/profile/links/{id}", eh.RemoveLink)

	// Video Routes
	protectedMux.HandleFunc("POST /api/v1/profile/videos", eh.AddVideo)
	protectedMux.HandleFunc("PUT /api/v1/profile/videos/order", eh.ReorderVideos)
	protectedMux.HandleFunc("PATCH /api/v1/profile/videos/{id}", eh.UpdateVideo)
	protectedMux.HandleFunc("DELETE /api/v1/profile/videos/{id}", eh.RemoveVideo)

	// Note: We match /api/v1/ to capture all API requests.
	// Since protectedMux contains the full paths, this works for dispatching.
	mux.Handle("/api/v1/", mw.AuthMiddleware(protectedMux))

	return RequestLogger(mux)
}
