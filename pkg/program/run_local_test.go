package program_test

import (
	"context"
	"testing"

	"github.com/ingrid-storage/storage-locator/pkg/program"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRunLocal(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var siblingRan, dependencyRan bool
		require.NoError(t, program.RunLocal(context.Background(), func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
			siblingsGroup.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
				siblingRan = true
				return nil
			})
			dependenciesGroup.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
				// Dependencies are only canceled after
				// all siblings have completed.
				<-ctx.Done()
				dependencyRan = true
				return nil
			})
			return nil
		}))
		require.True(t, siblingRan)
		require.True(t, dependencyRan)
	})

	t.Run("FailureCancelsSiblings", func(t *testing.T) {
		err := program.RunLocal(context.Background(), func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
			siblingsGroup.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
				<-ctx.Done()
				return nil
			})
			return status.Error(codes.Unavailable, "Listener closed")
		})
		require.Equal(t, status.Error(codes.Unavailable, "Listener closed"), err)
	})
}
