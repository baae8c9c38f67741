package checksum

import (
	"context"

	"github.com/ingrid-storage/storage-locator/pkg/util"

	"golang.org/x/sync/singleflight"
)

type deduplicatingResolver struct {
	base  Resolver
	group singleflight.Group
}

// NewDeduplicatingResolver creates a decorator for Resolver that
// collapses concurrent resolutions of the same object name into a
// single call against the underlying Resolver. This prevents bursts of
// requests for the same object from causing one probe of the checksum
// servers each.
//
// The shared call is not bound to the cancelation of any individual
// caller. A caller whose context is canceled stops waiting, while other
// callers continue to wait for the outcome.
func NewDeduplicatingResolver(base Resolver) Resolver {
	return &deduplicatingResolver{
		base: base,
	}
}

func (r *deduplicatingResolver) Resolve(ctx context.Context, name string) (Resolution, error) {
	results := r.group.DoChan(name, func() (interface{}, error) {
		return r.base.Resolve(context.WithoutCancel(ctx), name)
	})
	select {
	case <-ctx.Done():
		return Resolution{}, util.StatusFromContext(ctx)
	case result := <-results:
		if result.Err != nil {
			return Resolution{}, result.Err
		}
		return result.Val.(Resolution), nil
	}
}
