package configuration

// GlobalConfiguration contains options that apply to every program in
// this repository, regardless of its purpose.
type GlobalConfiguration struct {
	Logging               *LoggingConfiguration               `json:"logging,omitempty"`
	DiagnosticsHTTPServer *DiagnosticsHTTPServerConfiguration `json:"diagnosticsHttpServer,omitempty"`
}

// LoggingConfiguration controls the structured logger.
type LoggingConfiguration struct {
	// Minimum level of messages that are logged: "debug", "info",
	// "warn" or "error". Defaults to "info".
	Level string `json:"level,omitempty"`

	// Files to which log entries are written, in addition to
	// standard error. Files are rotated once they exceed
	// MaximumSizeMegabytes.
	Paths                []string `json:"paths,omitempty"`
	MaximumSizeMegabytes int      `json:"maximumSizeMegabytes,omitempty"`
	MaximumBackups       int      `json:"maximumBackups,omitempty"`
}

// DiagnosticsHTTPServerConfiguration configures the web server that
// exposes health checks, Prometheus metrics and profiling data.
type DiagnosticsHTTPServerConfiguration struct {
	ListenAddress    string `json:"listenAddress"`
	EnablePrometheus bool   `json:"enablePrometheus,omitempty"`
	EnablePprof      bool   `json:"enablePprof,omitempty"`

	// Regular expression that restricts the metric families that
	// are exposed. When empty, all metrics are exposed.
	MetricsNamePattern string `json:"metricsNamePattern,omitempty"`
}
