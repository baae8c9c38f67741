package redirector

import (
	"net/url"
	"strings"

	"github.com/ingrid-storage/storage-locator/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// EndpointGroup is a non-empty list of base URLs of storage endpoints
// that are eligible to handle a class of operations.
type EndpointGroup struct {
	endpoints []*url.URL
}

// NewEndpointGroup validates a list of base URLs and converts it to an
// EndpointGroup. Base URLs need to be absolute HTTP(S) URLs without a
// query or fragment. They may contain a path prefix.
func NewEndpointGroup(baseURLs []string) (EndpointGroup, error) {
	if len(baseURLs) == 0 {
		return EndpointGroup{}, status.Error(codes.InvalidArgument, "Endpoint group is empty")
	}
	endpoints := make([]*url.URL, 0, len(baseURLs))
	for _, baseURL := range baseURLs {
		endpoint, err := url.Parse(baseURL)
		if err != nil {
			return EndpointGroup{}, util.StatusWrapfWithCode(err, codes.InvalidArgument, "Invalid endpoint URL %#v", baseURL)
		}
		if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
			return EndpointGroup{}, status.Errorf(codes.InvalidArgument, "Endpoint URL %#v does not use HTTP or HTTPS", baseURL)
		}
		if endpoint.Host == "" {
			return EndpointGroup{}, status.Errorf(codes.InvalidArgument, "Endpoint URL %#v does not contain a host", baseURL)
		}
		if endpoint.RawQuery != "" || endpoint.Fragment != "" {
			return EndpointGroup{}, status.Errorf(codes.InvalidArgument, "Endpoint URL %#v may not contain a query or fragment", baseURL)
		}
		endpoint.Path = strings.TrimRight(endpoint.Path, "/")
		endpoint.RawPath = ""
		endpoints = append(endpoints, endpoint)
	}
	return EndpointGroup{endpoints: endpoints}, nil
}

// MustNewEndpointGroup is identical to NewEndpointGroup, except that it
// panics upon failure.
func MustNewEndpointGroup(baseURLs ...string) EndpointGroup {
	g, err := NewEndpointGroup(baseURLs)
	if err != nil {
		panic(err)
	}
	return g
}

// Len returns the number of endpoints in the group.
func (g EndpointGroup) Len() int {
	return len(g.endpoints)
}

// Get returns the base URL of an endpoint in the group.
func (g EndpointGroup) Get(index int) *url.URL {
	return g.endpoints[index]
}

// Contains returns whether a base URL is part of the group.
func (g EndpointGroup) Contains(endpoint *url.URL) bool {
	for _, e := range g.endpoints {
		if e.String() == endpoint.String() {
			return true
		}
	}
	return false
}
