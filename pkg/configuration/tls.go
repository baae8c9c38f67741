package configuration

// TLSServerConfiguration contains the certificate and private key that
// a server presents to its clients. Both are read from PEM files, which
// are reloaded periodically so that certificates can be rotated without
// restarting the process.
type TLSServerConfiguration struct {
	CertificatePath string   `json:"certificatePath"`
	PrivateKeyPath  string   `json:"privateKeyPath"`
	RefreshInterval Duration `json:"refreshInterval,omitempty"`

	// Names of cipher suites that may be negotiated, as reported
	// by tls.CipherSuites(). When empty, Go's defaults are used.
	CipherSuites []string `json:"cipherSuites,omitempty"`
}
