package web

import (
	"time"

	"github.com/benaicompanion/fantasy-101-dashboard/controller"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, authDone func()) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", oauthLinkHandler(ctrl, render))
	r.Get("/auth/callback", oauthRedirectHandler(ctrl, render, authDone))

	return r
}
