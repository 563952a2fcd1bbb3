package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/linkpulse/pkg/app"
	"github.com/wadjakorntonsri/linkpulse/pkg/config"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	// Note: On Vercel, db.sqlite is ephemeral unless using a remote SQL/Turso URL in DATABASE_URL.
	// Twitch polling does not survive between invocations, so the backend live source is forced.
	cfg.LiveStatusSource = config.LiveSourceBackend

	a, err := app.New(cfg)
	if err != nil {
		panic(err)
	}
	mux = a.Handler
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
