package redirector

import (
	"net/http"
	"net/url"
)

type redirectHandler struct {
	selector             EndpointSelector
	serverName           string
	forwardAuthorization bool
}

// NewRedirectHandler creates an http.Handler that answers every request
// with a redirect to a storage endpoint, without serving any content
// itself. The target consists of the endpoint's base URL, followed by
// the normalized path and query of the request.
//
// If forwardAuthorization is set, the value of the request's
// Authorization header is passed on through the "authz" query
// parameter, as clients don't replay credentials when following
// redirects to other hosts.
func NewRedirectHandler(selector EndpointSelector, serverName string, forwardAuthorization bool) http.Handler {
	return &redirectHandler{
		selector:             selector,
		serverName:           serverName,
		forwardAuthorization: forwardAuthorization,
	}
}

func (h *redirectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Normalize the escaped path, so that escaped slashes remain
	// part of the component in which they occur.
	decodedPath, escapedPath := normalizeEscapedPath(r.URL.EscapedPath())
	class, statusCode := ClassifyMethod(r.Method)
	endpoint := h.selector.SelectEndpoint(class, escapedPath)

	location := *endpoint
	location.RawPath = endpoint.EscapedPath() + escapedPath
	location.Path += decodedPath
	location.RawQuery = r.URL.RawQuery
	if h.forwardAuthorization {
		if authorization := r.Header.Get("Authorization"); authorization != "" {
			if location.RawQuery != "" {
				location.RawQuery += "&"
			}
			location.RawQuery += "authz=" + url.QueryEscape(authorization)
		}
	}

	header := w.Header()
	if h.serverName != "" {
		header.Set("Server", h.serverName)
	}
	header.Set("Location", location.String())
	w.WriteHeader(statusCode)
}
