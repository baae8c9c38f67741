package configuration

// ChecksumServerConfiguration is the configuration file format of the
// checksum_server program.
type ChecksumServerConfiguration struct {
	Global *GlobalConfiguration `json:"global,omitempty"`

	// Addresses on which the server listens. Defaults to ":9500".
	ListenAddresses []string `json:"listenAddresses,omitempty"`

	// Directory containing the files whose checksums are computed.
	// Requests for paths outside this directory are rejected.
	// Defaults to "/storage/data/cms".
	StorageRoot string `json:"storageRoot,omitempty"`
}
