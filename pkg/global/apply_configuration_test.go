package global_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ingrid-storage/storage-locator/pkg/configuration"
	"github.com/ingrid-storage/storage-locator/pkg/global"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewLoggerFromConfiguration(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		logger, err := global.NewLoggerFromConfiguration(nil)
		require.NoError(t, err)
		require.NotNil(t, logger)
	})

	t.Run("LogPath", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "redirector.log")
		logger, err := global.NewLoggerFromConfiguration(&configuration.LoggingConfiguration{
			Level: "debug",
			Paths: []string{logPath},
		})
		require.NoError(t, err)
		logger.Debug("Redirect")
		// Log files are written synchronously, so there is no
		// need to sync the logger, which fails when stderr is
		// a pipe.
		contents, err := os.ReadFile(logPath)
		require.NoError(t, err)
		require.Contains(t, string(contents), "\"msg\":\"Redirect\"")
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		_, err := global.NewLoggerFromConfiguration(&configuration.LoggingConfiguration{
			Level: "loud",
		})
		require.Equal(t, status.Error(codes.InvalidArgument, "Invalid log level \"loud\""), err)
	})
}

func TestDiagnosticsHandler(t *testing.T) {
	lifecycleState, _, err := global.ApplyConfiguration(&configuration.GlobalConfiguration{
		DiagnosticsHTTPServer: &configuration.DiagnosticsHTTPServerConfiguration{
			ListenAddress:    "127.0.0.1:0",
			EnablePrometheus: true,
		},
	})
	require.NoError(t, err)
	handler := lifecycleState.NewDiagnosticsHandler()

	t.Run("Healthy", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/healthy", nil))
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotReady", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("PprofDisabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApplyConfigurationMissingListenAddress(t *testing.T) {
	_, _, err := global.ApplyConfiguration(&configuration.GlobalConfiguration{
		DiagnosticsHTTPServer: &configuration.DiagnosticsHTTPServerConfiguration{},
	})
	require.Equal(t, status.Error(codes.InvalidArgument, "Diagnostics HTTP server requires a listen address"), err)
}

func TestApplyConfigurationMetricsNamePattern(t *testing.T) {
	t.Run("Invalid", func(t *testing.T) {
		_, _, err := global.ApplyConfiguration(&configuration.GlobalConfiguration{
			DiagnosticsHTTPServer: &configuration.DiagnosticsHTTPServerConfiguration{
				ListenAddress:      ":9980",
				MetricsNamePattern: "storage_locator_(",
			},
		})
		require.Error(t, err)
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("Valid", func(t *testing.T) {
		lifecycleState, _, err := global.ApplyConfiguration(&configuration.GlobalConfiguration{
			DiagnosticsHTTPServer: &configuration.DiagnosticsHTTPServerConfiguration{
				ListenAddress:      ":9980",
				EnablePrometheus:   true,
				MetricsNamePattern: "^storage_locator_",
			},
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		lifecycleState.NewDiagnosticsHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.NotContains(t, w.Body.String(), "go_goroutines")
	})
}
