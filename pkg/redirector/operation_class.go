package redirector

import (
	"net/http"
)

// OperationClass determines which group of endpoints is eligible to
// handle a request.
type OperationClass int

const (
	// OperationClassMetadata is used for requests that inspect or
	// modify the namespace, such as PROPFIND, MKCOL and DELETE.
	OperationClassMetadata OperationClass = iota
	// OperationClassData is used for requests that transfer the
	// contents of objects (GET and PUT).
	OperationClassData

	operationClassCount
)

func (c OperationClass) String() string {
	switch c {
	case OperationClassMetadata:
		return "Metadata"
	case OperationClassData:
		return "Data"
	default:
		return "Unknown"
	}
}

type methodDisposition struct {
	class      OperationClass
	statusCode int
}

// Methods not listed below are treated as metadata operations. Only
// GET uses 302, as clients are permitted to change the method of
// non-GET requests when following it.
var methodDispositions = map[string]methodDisposition{
	http.MethodOptions: {OperationClassMetadata, http.StatusTemporaryRedirect},
	http.MethodHead:    {OperationClassMetadata, http.StatusTemporaryRedirect},
	"PROPFIND":         {OperationClassMetadata, http.StatusTemporaryRedirect},
	"MKCOL":            {OperationClassMetadata, http.StatusTemporaryRedirect},
	http.MethodDelete:  {OperationClassMetadata, http.StatusTemporaryRedirect},
	"COPY":             {OperationClassMetadata, http.StatusTemporaryRedirect},
	http.MethodPut:     {OperationClassData, http.StatusTemporaryRedirect},
	http.MethodGet:     {OperationClassData, http.StatusFound},
}

var defaultMethodDisposition = methodDisposition{OperationClassMetadata, http.StatusTemporaryRedirect}

// ClassifyMethod returns the operation class of an HTTP method and the
// status code of the redirect that should be sent back to the client.
func ClassifyMethod(method string) (OperationClass, int) {
	disposition, ok := methodDispositions[method]
	if !ok {
		disposition = defaultMethodDisposition
	}
	return disposition.class, disposition.statusCode
}
