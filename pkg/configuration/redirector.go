package configuration

// RedirectorConfiguration is the configuration file format of the
// redirector program.
type RedirectorConfiguration struct {
	Global *GlobalConfiguration `json:"global,omitempty"`

	HTTPServers []HTTPServerConfiguration `json:"httpServers"`

	// Base URLs of storage endpoints that handle metadata
	// operations (e.g., PROPFIND, MKCOL, DELETE).
	MetadataEndpoints []string `json:"metadataEndpoints"`

	// Base URLs of storage endpoints that handle data transfers
	// (GET, PUT). When empty, the metadata endpoints are used for
	// all operations.
	DataEndpoints []string `json:"dataEndpoints,omitempty"`

	// When set, the endpoint chosen for a path is remembered, so
	// that repeated requests for the same path are sent to the same
	// endpoint.
	LocationCache *LocationCacheConfiguration `json:"locationCache,omitempty"`

	// Value of the "Server" response header. Omitted when empty.
	ServerName string `json:"serverName,omitempty"`

	// Copy the request's "Authorization" header into an "authz"
	// query parameter of the redirect target.
	ForwardAuthorization bool `json:"forwardAuthorization,omitempty"`
}

// HTTPServerConfiguration configures a web server.
type HTTPServerConfiguration struct {
	ListenAddresses []string `json:"listenAddresses"`

	// When omitted, the server uses plain HTTP.
	TLS *TLSServerConfiguration `json:"tls,omitempty"`

	// Defaults to 60 seconds.
	ReadTimeout Duration `json:"readTimeout,omitempty"`
	// Defaults to 60 seconds.
	WriteTimeout Duration `json:"writeTimeout,omitempty"`
	// Defaults to 12288 bytes.
	MaximumHeaderBytes int `json:"maximumHeaderBytes,omitempty"`
}

// LocationCacheConfiguration bounds the memory used to remember the
// endpoint chosen for a path.
type LocationCacheConfiguration struct {
	MaximumEntries         int                    `json:"maximumEntries"`
	CacheReplacementPolicy CacheReplacementPolicy `json:"cacheReplacementPolicy,omitempty"`
}
