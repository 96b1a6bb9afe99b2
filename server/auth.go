package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "goshogi"
	tokenDuration = 24 * time.Hour
)

type contextKey string

const userKey contextKey = "user"

// RegisterRequest is the request body for user registration
type RegisterRequest struct {
	Username string `json:"username" example:"habu"`
	Email    string `json:"email" example:"habu@example.com"`
	Password string `json:"password" example:"correct horse"`
}

// LoginRequest is the request body for user login
type LoginRequest struct {
	Email    string `json:"email" example:"habu@example.com"`
	Password string `json:"password" example:"correct horse"`
}

// TokenResponse carries a signed token.
type TokenResponse struct {
	Token string `json:"token"`
	User  string `json:"user" example:"0b5f6d1e-7c1c-4a0e-8f3e-2a8d7c6b5a4f"`
}

// Claims are the JWT claims issued on login. The subject is the user's
// UUID, which is also the name seated in games.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 tokens.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

// NewTokens returns a signer for the secret.
func NewTokens(secret []byte) *Tokens {
	return &Tokens{secret: secret, now: time.Now}
}

// Issue signs a token for the user.
func (t *Tokens) Issue(user *User) (string, error) {
	now := t.now()
	claims := Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   user.UUID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies a token and returns its claims.
func (t *Tokens) Parse(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return &claims, nil
}

// authMiddleware requires a valid bearer token and puts its user in the
// request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			s.renderError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := s.tokens.Parse(token)
		if err != nil {
			log.Debugw("rejected token", zap.Error(err))
			s.renderError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := s.store.UserByUUID(r.Context(), claims.Subject)
		if err != nil {
			s.renderError(w, http.StatusUnauthorized, "unknown user")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// userFromContext returns the user set by authMiddleware.
func userFromContext(r *http.Request) *User {
	user, _ := r.Context().Value(userKey).(*User)
	return user
}

// @Summary Register a user
// @Description Creates a local account and returns a token for it
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Account"
// @Success 201 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.renderError(w, http.StatusBadRequest, "invalid request")
		return
	}
	req.Username = strings.TrimSpace(ugcPolicy.Sanitize(req.Username))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		s.renderError(w, http.StatusBadRequest, "all fields required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorw("could not hash password", zap.Error(err))
		s.renderError(w, http.StatusBadRequest, "could not hash password")
		return
	}

	user, err := s.store.CreateUser(r.Context(), req.Username, req.Email, string(hash))
	if err != nil {
		log.Infow("could not create user", "email", req.Email, zap.Error(err))
		s.renderError(w, http.StatusConflict, "user already exists")
		return
	}

	s.renderToken(w, http.StatusCreated, user)
}

// @Summary Log in
// @Description Exchanges an email and password for a token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.renderError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := s.store.UserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		s.renderError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Errorw("could not compare password", zap.Error(err))
		}
		s.renderError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.renderToken(w, http.StatusOK, user)
}

func (s *Server) renderToken(w http.ResponseWriter, status int, user *User) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		log.Errorw("could not sign token", zap.Error(err))
		s.renderError(w, http.StatusInternalServerError, "could not sign token")
		return
	}
	s.render(w, status, TokenResponse{Token: token, User: user.UUID})
}
