package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ingrid-storage/storage-locator/pkg/configuration"
	"github.com/ingrid-storage/storage-locator/pkg/http/server"
	"github.com/ingrid-storage/storage-locator/pkg/program"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewServerFromConfiguration(t *testing.T) {
	handler := http.NotFoundHandler()

	t.Run("Defaults", func(t *testing.T) {
		s := server.NewServerFromConfiguration(&configuration.HTTPServerConfiguration{}, ":443", handler, nil)
		require.Equal(t, ":443", s.Addr)
		require.Equal(t, 60*time.Second, s.ReadTimeout)
		require.Equal(t, 60*time.Second, s.WriteTimeout)
		require.Equal(t, 12288, s.MaxHeaderBytes)
		require.Nil(t, s.TLSConfig)
	})

	t.Run("Overrides", func(t *testing.T) {
		s := server.NewServerFromConfiguration(&configuration.HTTPServerConfiguration{
			ReadTimeout:        configuration.Duration(5 * time.Second),
			WriteTimeout:       configuration.Duration(10 * time.Second),
			MaximumHeaderBytes: 4096,
		}, ":8080", handler, nil)
		require.Equal(t, 5*time.Second, s.ReadTimeout)
		require.Equal(t, 10*time.Second, s.WriteTimeout)
		require.Equal(t, 4096, s.MaxHeaderBytes)
	})
}

func TestNewServersFromConfigurationAndServeNoListenAddresses(t *testing.T) {
	err := program.RunLocal(context.Background(), func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
		server.NewServersFromConfigurationAndServe(
			[]configuration.HTTPServerConfiguration{{}},
			http.NotFoundHandler(),
			siblingsGroup)
		return nil
	})
	require.Equal(t, status.Error(codes.InvalidArgument, "HTTP server at index 0 has no listen addresses"), err)
}

func TestMetricsHandler(t *testing.T) {
	handler := server.NewMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTemporaryRedirect)
	}), "Test")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("PROPFIND", "/store/file", nil))
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
}
