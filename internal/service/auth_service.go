package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lalajistore/vendor-gateway/internal/catalog"
	"github.com/lalajistore/vendor-gateway/internal/session"
	"github.com/lalajistore/vendor-gateway/internal/utils"
	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// AuthAPI is the slice of the marketplace client the auth flow needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, *marketplace.Vendor, error)
}

// AuthService proxies vendor login to the marketplace, persists the
// resulting token in the session store, and issues the gateway JWT the
// dashboard uses from then on. It also owns forced invalidation: when the
// marketplace rejects a stored token, the session and all state hanging
// off it are torn down together.
type AuthService struct {
	api        AuthAPI
	store      *session.Store
	views      *catalog.Registry
	selections *SelectionRegistry
	ttl        time.Duration
}

// NewAuthService constructs an AuthService.
func NewAuthService(api AuthAPI, store *session.Store, views *catalog.Registry, selections *SelectionRegistry, ttl time.Duration) *AuthService {
	return &AuthService{api: api, store: store, views: views, selections: selections, ttl: ttl}
}

// LoginResult carries everything the dashboard needs after a login.
type LoginResult struct {
	Token   string
	Session *session.Session
	Vendor  *marketplace.Vendor
}

// Login exchanges credentials upstream, stores the marketplace token
// encrypted at rest, and returns a gateway JWT bound to the new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	token, vendor, err := s.api.Login(ctx, email, password)
	if err != nil {
		var apiErr *marketplace.APIError
		if errors.Is(err, marketplace.ErrUnauthorized) || errors.As(err, &apiErr) {
			log.Warn().Str("email", email).Msg("vendor login rejected")
			return nil, utils.ErrInvalidCredentials
		}
		return nil, err
	}

	sess, err := s.store.Create(vendor.ID, vendor.Email, token)
	if err != nil {
		return nil, err
	}

	jwt, err := utils.GenerateJWT(vendor.ID, sess.ID, vendor.Email, s.ttl)
	if err != nil {
		return nil, err
	}

	log.Info().Str("vendor_id", vendor.ID).Str("session_id", sess.ID).Msg("vendor logged in")
	return &LoginResult{Token: jwt, Session: sess, Vendor: vendor}, nil
}

// Logout removes the session and closes the state bound to it.
func (s *AuthService) Logout(sess *session.Session) {
	if err := s.store.Delete(sess.ID); err != nil {
		log.Error().Err(err).Str("session_id", sess.ID).Msg("failed to delete session")
	}
	s.views.Close(sess.ID)
	s.selections.Drop(sess.VendorID)
	log.Info().Str("vendor_id", sess.VendorID).Str("session_id", sess.ID).Msg("vendor logged out")
}

// Invalidate tears a session down after the marketplace rejected its
// token. Same effect as logout, logged at warn.
func (s *AuthService) Invalidate(sess *session.Session) {
	if err := s.store.Delete(sess.ID); err != nil {
		log.Error().Err(err).Str("session_id", sess.ID).Msg("failed to delete session")
	}
	s.views.Close(sess.ID)
	s.selections.Drop(sess.VendorID)
	log.Warn().Str("vendor_id", sess.VendorID).Str("session_id", sess.ID).Msg("marketplace token rejected, session invalidated")
}
