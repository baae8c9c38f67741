package checksum

import (
	"context"
	"time"

	"github.com/ingrid-storage/storage-locator/pkg/clock"
	"github.com/ingrid-storage/storage-locator/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Resolver of object names to checksums.
type Resolver interface {
	Resolve(ctx context.Context, name string) (Resolution, error)
}

type cachingResolver struct {
	cache       Cache
	computer    Computer
	clock       clock.Clock
	retryDelay  time.Duration
	errorLogger util.ErrorLogger
}

// NewCachingResolver creates a Resolver that first consults a cache,
// falling back to a Computer when the cache does not contain a usable
// checksum.
//
// When the Computer reports that the checksum is still pending, the
// resolver waits for retryDelay and asks the Computer exactly once
// more. Checksums that are still pending after that are returned as
// PendingResolution, without being written to the cache.
//
// The cache is merely an optimization. Failures to read from or write
// to it are reported through the ErrorLogger, but do not cause
// resolution to fail.
func NewCachingResolver(cache Cache, computer Computer, clock clock.Clock, retryDelay time.Duration, errorLogger util.ErrorLogger) Resolver {
	return &cachingResolver{
		cache:       cache,
		computer:    computer,
		clock:       clock,
		retryDelay:  retryDelay,
		errorLogger: errorLogger,
	}
}

func (r *cachingResolver) Resolve(ctx context.Context, name string) (Resolution, error) {
	cached, err := r.cache.Get(ctx, name)
	if err == nil {
		if !cached.IsPending() {
			return NewResolvedResolution(cached), nil
		}
	} else if status.Code(err) != codes.NotFound {
		r.errorLogger.Log(util.StatusWrapf(err, "Failed to look up object %#v in cache", name))
	}

	computed, err := r.computer.Compute(ctx, name)
	if err != nil {
		return Resolution{}, err
	}
	if computed.IsPending() {
		timer, t := r.clock.NewTimer(r.retryDelay)
		select {
		case <-t:
		case <-ctx.Done():
			timer.Stop()
			return Resolution{}, util.StatusFromContext(ctx)
		}
		if computed, err = r.computer.Compute(ctx, name); err != nil {
			return Resolution{}, err
		}
		if computed.IsPending() {
			return PendingResolution, nil
		}
	}

	if err := r.cache.Put(ctx, name, computed); err != nil {
		r.errorLogger.Log(util.StatusWrapf(err, "Failed to store checksum of object %#v in cache", name))
	}
	return NewResolvedResolution(computed), nil
}
