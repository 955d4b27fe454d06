package imgstore

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/MichaelMansour256/Diwan-Mansour/config"
	"github.com/MichaelMansour256/Diwan-Mansour/pkg/circuit_breaker"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Service stores raw image bytes with the hosting endpoint and hands back a
// publicly fetchable URL.
type Service struct {
	cfg    config.ImageStore
	client *http.Client
	cb     circuit_breaker.CircuitBreaker
	log    *zap.Logger
}

func NewService(cfg config.ImageStore, log *zap.Logger) *Service {
	return &Service{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Minute,
		},
		cb:  circuit_breaker.New(10, 30*time.Second, 0.5, 2),
		log: log.Named("imgstore"),
	}
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Service) Upload(ctx context.Context, filename string, image []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(image); err != nil {
		return "", err
	}
	if err := w.WriteField("key", s.cfg.Key); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	var link string
	err = s.cb.Call(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, &buf)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", w.FormDataContentType())

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var ur uploadResponse
		if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
			return err
		}
		if !ur.Success {
			return errors.Errorf("image upload rejected: %s", ur.Error.Message)
		}
		link = ur.Data.URL
		return nil
	})
	if err != nil {
		s.log.Warn("image upload failed", zap.Error(err))
		return "", err
	}
	return link, nil
}
