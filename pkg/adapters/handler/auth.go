package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/wadjakorntonsri/linkpulse/pkg/config"
)

const (
	authCookie  = "auth_token"
	stateCookie = "oauthstate"
	sessionTTL  = 24 * time.Hour

	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// AuthHandler signs editors in with Google and issues the session cookie.
type AuthHandler struct {
	oauthConfig   *oauth2.Config
	userInfoURL   string
	jwtSecret     []byte
	frontendURL   string
	allowedEmails []string
	isProduction  bool
}

type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL:   googleUserInfoURL,
		jwtSecret:     []byte(cfg.JWTSecret),
		frontendURL:   cfg.FrontendURL,
		allowedEmails: cfg.AllowedEmails,
		isProduction:  cfg.AppEnv == "production",
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		log.Printf("Login error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.setCookie(w, stateCookie, state, time.Now().Add(20*time.Minute))
	http.Redirect(w, r, h.oauthConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	oauthState, err := r.Cookie(stateCookie)
	if err != nil {
		log.Printf("Callback error: missing oauthstate cookie: %v", err)
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}
	if r.FormValue("state") != oauthState.Value {
		log.Printf("Callback error: invalid oauth state")
		http.Error(w, "invalid oauth google state", http.StatusBadRequest)
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		log.Printf("Callback error: code exchange failed: %v", err)
		http.Error(w, "code exchange failed", http.StatusInternalServerError)
		return
	}

	user, err := h.fetchUser(r, token)
	if err != nil {
		log.Printf("Callback error: %v", err)
		http.Error(w, "failed getting user info", http.StatusInternalServerError)
		return
	}

	if !user.VerifiedEmail {
		log.Printf("Callback error: email %s is not verified", user.Email)
		http.Error(w, "Access denied: email not verified", http.StatusForbidden)
		return
	}
	if !h.allowed(user.Email) {
		log.Printf("Callback error: email %s not in allowlist", user.Email)
		http.Error(w, "Access denied: your email is not in the allowlist", http.StatusForbidden)
		return
	}

	expiresAt := time.Now().Add(sessionTTL)
	tokenString, err := h.signSession(user.Email, expiresAt)
	if err != nil {
		log.Printf("Callback error: failed signing JWT: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.setCookie(w, authCookie, tokenString, expiresAt)

	log.Printf("Login successful for editor: %s", user.Email)
	http.Redirect(w, r, h.frontendURL, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setCookie(w, authCookie, "", time.Now().Add(-time.Hour))
	http.Redirect(w, r, strings.TrimSuffix(h.frontendURL, "/")+"/login", http.StatusTemporaryRedirect)
}

func (h *AuthHandler) fetchUser(r *http.Request, token *oauth2.Token) (*GoogleUser, error) {
	resp, err := h.oauthConfig.Client(r.Context(), token).Get(h.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var user GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("userinfo decode: %w", err)
	}
	return &user, nil
}

func (h *AuthHandler) allowed(email string) bool {
	return len(h.allowedEmails) == 0 || slices.Contains(h.allowedEmails, email)
}

func (h *AuthHandler) signSession(email string, expiresAt time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.jwtSecret)
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
