package web

import (
	"net/http"

	"github.com/benaicompanion/fantasy-101-dashboard/controller"
	"github.com/unrolled/render"
)

func oauthLinkHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := ctrl.OAuthStart()
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		http.Redirect(w, r, url, http.StatusSeeOther)
	}
}

func oauthRedirectHandler(ctrl controller.C, render *render.Render, authDone func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		code := params.Get("code")
		state := params.Get("state")

		if err := ctrl.OAuthExchange(r.Context(), state, code); err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		render.HTML(w, http.StatusOK, "authorized", nil)
		authDone()
	}
}
