package imgstore_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MichaelMansour256/Diwan-Mansour/config"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/service/imgstore"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_Upload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "api-key", r.FormValue("key"))

		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		require.Equal(t, "cover.png", hdr.Filename)
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		require.Equal(t, []byte("png-bytes"), data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"url":"https://i.ibb.co/abc/cover.png"}}`))
	}))
	defer srv.Close()

	svc := imgstore.NewService(config.ImageStore{URL: srv.URL, Key: "api-key"}, zap.NewExample())

	link, err := svc.Upload(context.Background(), "cover.png", []byte("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, "https://i.ibb.co/abc/cover.png", link)
}

func TestService_Upload_Rejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	svc := imgstore.NewService(config.ImageStore{URL: srv.URL, Key: "bad"}, zap.NewExample())

	_, err := svc.Upload(context.Background(), "cover.png", []byte("png-bytes"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid api key")
}
