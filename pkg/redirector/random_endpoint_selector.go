package redirector

import (
	"net/url"

	"github.com/ingrid-storage/storage-locator/pkg/random"
)

type randomEndpointSelector struct {
	groups    [operationClassCount]EndpointGroup
	generator random.ThreadSafeGenerator
}

// NewRandomEndpointSelector creates an EndpointSelector that picks an
// endpoint uniformly at random from the group that is associated with
// the class of the operation. The same group may be provided for both
// classes, in which case all endpoints are capable of handling all
// operations.
func NewRandomEndpointSelector(metadataGroup, dataGroup EndpointGroup, generator random.ThreadSafeGenerator) EndpointSelector {
	return &randomEndpointSelector{
		groups: [operationClassCount]EndpointGroup{
			OperationClassMetadata: metadataGroup,
			OperationClassData:     dataGroup,
		},
		generator: generator,
	}
}

func (s *randomEndpointSelector) SelectEndpoint(class OperationClass, path string) *url.URL {
	group := s.groups[class]
	return group.Get(s.generator.IntN(group.Len()))
}
