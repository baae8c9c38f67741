package server

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/ingrid-storage/storage-locator/pkg/configuration"
	"github.com/ingrid-storage/storage-locator/pkg/program"
	"github.com/ingrid-storage/storage-locator/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// DefaultReadTimeout is used when no read timeout is configured.
	DefaultReadTimeout = 60 * time.Second
	// DefaultWriteTimeout is used when no write timeout is configured.
	DefaultWriteTimeout = 60 * time.Second
	// DefaultMaximumHeaderBytes is used when no maximum header size
	// is configured.
	DefaultMaximumHeaderBytes = 12288
)

// NewServerFromConfiguration creates an http.Server for a single listen
// address. Timeouts and header limits fall back to their defaults when
// left unset.
func NewServerFromConfiguration(config *configuration.HTTPServerConfiguration, listenAddress string, handler http.Handler, tlsConfig *tls.Config) *http.Server {
	readTimeout := config.ReadTimeout.AsDuration()
	if readTimeout == 0 {
		readTimeout = DefaultReadTimeout
	}
	writeTimeout := config.WriteTimeout.AsDuration()
	if writeTimeout == 0 {
		writeTimeout = DefaultWriteTimeout
	}
	maximumHeaderBytes := config.MaximumHeaderBytes
	if maximumHeaderBytes <= 0 {
		maximumHeaderBytes = DefaultMaximumHeaderBytes
	}
	return &http.Server{
		Addr:           listenAddress,
		Handler:        handler,
		TLSConfig:      tlsConfig,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		MaxHeaderBytes: maximumHeaderBytes,
	}
}

// NewServersFromConfigurationAndServe spawns HTTP servers as part of a
// program.Group, based on a configuration message. The web servers are
// automatically terminated if the context associated with the group is
// canceled.
func NewServersFromConfigurationAndServe(configurations []configuration.HTTPServerConfiguration, handler http.Handler, group program.Group) {
	group.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
		for i := range configurations {
			config := &configurations[i]
			if len(config.ListenAddresses) == 0 {
				return status.Errorf(codes.InvalidArgument, "HTTP server at index %d has no listen addresses", i)
			}
			var tlsConfig *tls.Config
			if config.TLS != nil {
				var err error
				tlsConfig, err = util.NewTLSConfigFromServerConfiguration(config.TLS, dependenciesGroup)
				if err != nil {
					return util.StatusWrapf(err, "Failed to create TLS configuration for HTTP server at index %d", i)
				}
			}
			for _, listenAddress := range config.ListenAddresses {
				server := NewServerFromConfiguration(config, listenAddress, handler, tlsConfig)
				listener, err := net.Listen("tcp", listenAddress)
				if err != nil {
					return util.StatusWrapf(err, "Failed to create listening socket for %#v", listenAddress)
				}
				siblingsGroup.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
					<-ctx.Done()
					return server.Close()
				})
				siblingsGroup.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
					if err := serve(server, listener); err != http.ErrServerClosed {
						return util.StatusWrapf(err, "Failed to launch HTTP server %#v", server.Addr)
					}
					return nil
				})
			}
		}
		return nil
	})
}

func serve(server *http.Server, listener net.Listener) error {
	if server.TLSConfig != nil {
		// Certificates are provided through TLSConfig.GetCertificate.
		return server.ServeTLS(listener, "", "")
	}
	return server.Serve(listener)
}
