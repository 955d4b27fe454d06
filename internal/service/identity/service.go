package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MichaelMansour256/Diwan-Mansour/config"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/errs"
	"github.com/MichaelMansour256/Diwan-Mansour/pkg/circuit_breaker"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Service checks the shared admin credential against the identity endpoint.
// A failing endpoint trips the breaker; local state is never touched either way.
type Service struct {
	cfg    config.Identity
	client *http.Client
	cb     circuit_breaker.CircuitBreaker
	log    *zap.Logger
}

func NewService(cfg config.Identity, log *zap.Logger) *Service {
	return &Service{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Minute,
		},
		cb:  circuit_breaker.New(10, 30*time.Second, 0.5, 2),
		log: log.Named("identity"),
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) Authenticate(ctx context.Context, email, password string) error {
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return err
	}

	// a rejected credential is an answer, not an endpoint failure; it must
	// not count against the breaker
	var denied error
	err = s.cb.Call(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK, http.StatusNoContent:
			return nil
		case http.StatusUnauthorized, http.StatusForbidden:
			denied = errs.ErrInvalidCredentials
			return nil
		default:
			return errors.Errorf("identity endpoint status %d", resp.StatusCode)
		}
	})
	if err != nil {
		s.log.Warn("identity check failed", zap.Error(err))
		return err
	}
	return denied
}
