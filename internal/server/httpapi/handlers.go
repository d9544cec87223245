package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/userauth/internal/common"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Bienvenue"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	pw := r.FormValue("password")

	u, err := s.auth.RegisterUser(r.Context(), email, pw)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "email already registered"})
			return
		}
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"email": u.Email, "message": "user created"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	pw := r.FormValue("password")

	if !s.auth.ValidLogin(r.Context(), email, pw) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	sessionID, err := s.auth.CreateSession(r.Context(), email)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if sessionID == "" {
		// The account disappeared between the credential check and the
		// session write.
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"email": email, "message": "logged in"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	u := s.auth.GetUserBySession(r.Context(), sessionIDFromRequest(r))
	if u == nil {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if err := s.auth.DestroySession(r.Context(), u.ID); err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		s.serverError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	u := s.auth.GetUserBySession(r.Context(), sessionIDFromRequest(r))
	if u == nil {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"email": u.Email})
}

func (s *Server) handleResetToken(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")

	resetToken, err := s.auth.GetResetToken(r.Context(), email)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"email": email, "reset_token": resetToken})
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	resetToken := r.FormValue("reset_token")
	newPassword := r.FormValue("new_password")

	if err := s.auth.UpdatePassword(r.Context(), resetToken, newPassword); err != nil {
		if errors.Is(err, common.ErrInvalidResetToken) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"email": email, "message": "Password updated"})
}

func sessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
