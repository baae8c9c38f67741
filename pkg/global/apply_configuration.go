package global

import (
	"context"
	"net/http"
	"os"
	"regexp"
	"sync/atomic"

	// The pprof package does not provide a function for registering
	// its endpoints against an arbitrary mux. Load it to force
	// registration against the default mux, so we can forward
	// traffic to that mux instead.
	_ "net/http/pprof"

	"github.com/gorilla/mux"
	"github.com/ingrid-storage/storage-locator/pkg/configuration"
	"github.com/ingrid-storage/storage-locator/pkg/program"
	sl_prometheus "github.com/ingrid-storage/storage-locator/pkg/prometheus"
	"github.com/ingrid-storage/storage-locator/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LifecycleState is returned by ApplyConfiguration. It can be used by
// the caller to report whether the application has started up
// successfully.
type LifecycleState struct {
	config   *configuration.DiagnosticsHTTPServerConfiguration
	gatherer prometheus.Gatherer
	ready    atomic.Bool
}

// NewDiagnosticsHandler returns the HTTP handler of the diagnostics web
// server, which exposes Prometheus metrics and provides health check
// endpoints.
func (ls *LifecycleState) NewDiagnosticsHandler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/-/healthy", func(http.ResponseWriter, *http.Request) {})
	router.HandleFunc("/-/ready", func(w http.ResponseWriter, _ *http.Request) {
		if !ls.ready.Load() {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		}
	})
	if ls.config != nil {
		if ls.config.EnablePrometheus {
			router.Handle("/metrics", promhttp.InstrumentMetricHandler(
				prometheus.DefaultRegisterer,
				promhttp.HandlerFor(ls.gatherer, promhttp.HandlerOpts{})))
		}
		if ls.config.EnablePprof {
			router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
		}
	}
	return router
}

// MarkReadyAndWait reports that the program has started successfully.
// If configured, it launches the diagnostics web server as part of the
// provided group, so that it is terminated along with the program.
func (ls *LifecycleState) MarkReadyAndWait(group program.Group) {
	ls.ready.Store(true)
	if ls.config == nil {
		return
	}
	server := &http.Server{
		Addr:    ls.config.ListenAddress,
		Handler: ls.NewDiagnosticsHandler(),
	}
	group.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
		<-ctx.Done()
		ls.ready.Store(false)
		return server.Close()
	})
	group.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return util.StatusWrap(err, "Diagnostics server")
		}
		return nil
	})
}

// NewLoggerFromConfiguration creates a structured logger that writes
// entries to standard error and to any log paths provided. Log paths
// are rotated once they exceed their maximum size.
func NewLoggerFromConfiguration(config *configuration.LoggingConfiguration) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if config == nil {
		config = &configuration.LoggingConfiguration{}
	}
	if config.Level != "" {
		if err := level.UnmarshalText([]byte(config.Level)); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "Invalid log level %#v", config.Level)
		}
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}
	for _, logPath := range config.Paths {
		cores = append(cores, zapcore.NewCore(
			encoder,
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   logPath,
				MaxSize:    config.MaximumSizeMegabytes,
				MaxBackups: config.MaximumBackups,
			}),
			level))
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

// ApplyConfiguration applies configuration options to the running
// process. These configuration options are global, in that they apply
// to all programs in this repository, regardless of their purpose.
//
// Messages written through Go's standard logging package are
// redirected to the structured logger, so that all output of the
// program ends up in the same place.
func ApplyConfiguration(config *configuration.GlobalConfiguration) (*LifecycleState, *zap.Logger, error) {
	if config == nil {
		config = &configuration.GlobalConfiguration{}
	}
	logger, err := NewLoggerFromConfiguration(config.Logging)
	if err != nil {
		return nil, nil, util.StatusWrap(err, "Failed to create logger")
	}
	zap.RedirectStdLog(logger)
	zap.ReplaceGlobals(logger)

	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if diagnosticsConfig := config.DiagnosticsHTTPServer; diagnosticsConfig != nil {
		if diagnosticsConfig.ListenAddress == "" {
			return nil, nil, status.Error(codes.InvalidArgument, "Diagnostics HTTP server requires a listen address")
		}
		if pattern := diagnosticsConfig.MetricsNamePattern; pattern != "" {
			namePattern, err := regexp.Compile(pattern)
			if err != nil {
				return nil, nil, status.Errorf(codes.InvalidArgument, "Invalid metrics name pattern %#v: %s", pattern, err)
			}
			gatherer = sl_prometheus.NewNameFilteringGatherer(gatherer, namePattern)
		}
	}
	return &LifecycleState{
		config:   config.DiagnosticsHTTPServer,
		gatherer: gatherer,
	}, logger, nil
}
