package redirector

import (
	"net/url"
)

// EndpointSelector chooses the storage endpoint to which a request is
// redirected.
type EndpointSelector interface {
	// SelectEndpoint returns the base URL of the endpoint that
	// should handle an operation on a normalized path. The endpoint
	// returned must not be modified.
	SelectEndpoint(class OperationClass, path string) *url.URL
}
