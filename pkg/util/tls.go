package util

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ingrid-storage/storage-locator/pkg/configuration"
	"github.com/ingrid-storage/storage-locator/pkg/program"
	"github.com/prometheus/client_golang/prometheus"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	cipherSuiteIDs = map[string]uint16{}

	tlsPrometheusMetrics sync.Once

	tlsCertificateNotBeforeTimeSeconds = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "storage_locator",
			Subsystem: "tls",
			Name:      "certificate_not_before_time_seconds",
			Help:      "The value of the \"Not Before\" field of the TLS certificate.",
		},
		[]string{"dns_name"})
	tlsCertificateNotAfterTimeSeconds = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "storage_locator",
			Subsystem: "tls",
			Name:      "certificate_not_after_time_seconds",
			Help:      "The value of the \"Not After\" field of the TLS certificate.",
		},
		[]string{"dns_name"})
)

func init() {
	// Initialize the map of cipher suite IDs based on the ciphers
	// supported by the Go TLS library.
	for _, cipherSuite := range tls.CipherSuites() {
		cipherSuiteIDs[cipherSuite.Name] = cipherSuite.ID
	}
}

// RotatingTLSCertificate holds a certificate and private key that are
// loaded from files on disk. The files may be replaced while the
// process is running, in which case LoadCertificate() needs to be
// called to pick up the new certificate.
type RotatingTLSCertificate struct {
	certificatePath string
	privateKeyPath  string

	lock        sync.RWMutex
	certificate *tls.Certificate
}

// NewRotatingTLSCertificate creates a RotatingTLSCertificate for a pair
// of PEM files. LoadCertificate() must be called at least once before
// GetCertificate() returns a certificate.
func NewRotatingTLSCertificate(certificatePath, privateKeyPath string) *RotatingTLSCertificate {
	return &RotatingTLSCertificate{
		certificatePath: certificatePath,
		privateKeyPath:  privateKeyPath,
	}
}

// GetCertificate returns the most recently loaded certificate.
func (r *RotatingTLSCertificate) GetCertificate() *tls.Certificate {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.certificate
}

// LoadCertificate reads the certificate and private key from disk. The
// previously loaded certificate remains in use if loading fails.
func (r *RotatingTLSCertificate) LoadCertificate() error {
	certificateData, err := os.ReadFile(r.certificatePath)
	if err != nil {
		return StatusWrap(err, "Failed to read certificate file")
	}
	privateKeyData, err := os.ReadFile(r.privateKeyPath)
	if err != nil {
		return StatusWrap(err, "Failed to read private key file")
	}
	certificate, err := tls.X509KeyPair(certificateData, privateKeyData)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "Invalid certificate or private key: %s", err)
	}
	leaf, err := x509.ParseCertificate(certificate.Certificate[0])
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "Invalid certificate: %s", err)
	}
	certificate.Leaf = leaf

	// Expose Prometheus metrics on certificate expiration.
	for _, dnsName := range leaf.DNSNames {
		tlsCertificateNotBeforeTimeSeconds.WithLabelValues(dnsName).Set(float64(leaf.NotBefore.UnixNano()) / 1e9)
		tlsCertificateNotAfterTimeSeconds.WithLabelValues(dnsName).Set(float64(leaf.NotAfter.UnixNano()) / 1e9)
	}

	r.lock.Lock()
	r.certificate = &certificate
	r.lock.Unlock()
	return nil
}

// NewTLSConfigFromServerConfiguration creates a TLS configuration
// object based on parameters specified in a configuration file for use
// with a TLS server. If a refresh interval is configured, a routine is
// launched in the provided group that periodically reloads the
// certificate.
func NewTLSConfigFromServerConfiguration(config *configuration.TLSServerConfiguration, group program.Group) (*tls.Config, error) {
	tlsPrometheusMetrics.Do(func() {
		prometheus.MustRegister(tlsCertificateNotAfterTimeSeconds)
		prometheus.MustRegister(tlsCertificateNotBeforeTimeSeconds)
	})

	if config == nil {
		return nil, nil
	}
	if config.CertificatePath == "" || config.PrivateKeyPath == "" {
		return nil, status.Error(codes.InvalidArgument, "TLS configuration requires both a certificate and a private key")
	}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	for _, cipherSuite := range config.CipherSuites {
		id, ok := cipherSuiteIDs[cipherSuite]
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "Unsupported cipher suite: %#v", cipherSuite)
		}
		tlsConfig.CipherSuites = append(tlsConfig.CipherSuites, id)
	}

	certificate := NewRotatingTLSCertificate(config.CertificatePath, config.PrivateKeyPath)
	if err := certificate.LoadCertificate(); err != nil {
		return nil, StatusWrap(err, "Failed to load server certificate")
	}
	tlsConfig.GetCertificate = func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
		return certificate.GetCertificate(), nil
	}

	if refreshInterval := config.RefreshInterval.AsDuration(); refreshInterval > 0 {
		group.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
			t := time.NewTicker(refreshInterval)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					if err := certificate.LoadCertificate(); err != nil {
						// Keep using the existing certificate, as
						// it is likely still valid.
						log.Printf("Failed to reload server certificate: %s", err)
					}
				case <-ctx.Done():
					return nil
				}
			}
		})
	}
	return tlsConfig, nil
}
