package controllers

import (
	"net/http"

	"github.com/Areandra/Kelvin/api/middleware"
	"github.com/Areandra/Kelvin/api/responses"
	"github.com/Areandra/Kelvin/api/validators"
	authsvc "github.com/Areandra/Kelvin/internal/auth"
	pkgAuth "github.com/Areandra/Kelvin/pkg/auth"
	"github.com/Areandra/Kelvin/pkg/config"
	pkgerrors "github.com/Areandra/Kelvin/pkg/errors"
	"github.com/Areandra/Kelvin/pkg/logger"
)

// sessionCookieName carries the access token for the server-rendered pages.
const sessionCookieName = "kelvin_session"

// AuthLogin authenticates the admin account and issues a token pair.
func AuthLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload authsvc.LoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Login(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		setSessionCookie(w, r, resp.AccessToken)
		responses.WriteSuccess(w, resp)
	}
}

// AuthLogout revokes the caller's session when one can be identified and
// succeeds either way; logging out while anonymous is a no-op.
func AuthLogout(svc authsvc.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		if err := svc.Logout(ctx, logoutAccessID(r, jwtCfg)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		clearSessionCookie(w, r)
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// logoutAccessID extracts a session id from the identity, bearer token, or
// auth cookie, tolerating expired tokens. An empty result means anonymous.
func logoutAccessID(r *http.Request, jwtCfg config.JWTConfig) string {
	if identity, ok := authsvc.IdentityFromContext(r.Context()); ok {
		return identity.AccessID
	}

	token := middleware.BearerToken(r)
	if token == "" {
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			token = cookie.Value
		}
	}
	if token == "" {
		return ""
	}

	claims, err := pkgAuth.ParseAccessTokenAllowExpired(jwtCfg, token)
	if err != nil {
		return ""
	}
	return claims.ID
}

// AuthProfile returns the authenticated account.
func AuthProfile(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		user, err := svc.Profile(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// AuthRefresh rotates the refresh token and mints a new access token.
func AuthRefresh(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload authsvc.RefreshRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Refresh(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		setSessionCookie(w, r, resp.AccessToken)
		responses.WriteSuccess(w, resp)
	}
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
