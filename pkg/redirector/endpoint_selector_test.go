package redirector_test

import (
	"testing"

	"github.com/ingrid-storage/storage-locator/internal/mock"
	"github.com/ingrid-storage/storage-locator/pkg/eviction"
	"github.com/ingrid-storage/storage-locator/pkg/random"
	"github.com/ingrid-storage/storage-locator/pkg/redirector"
	"github.com/stretchr/testify/require"

	"go.uber.org/mock/gomock"
)

var (
	metadataGroup = redirector.MustNewEndpointGroup(
		"https://meta1.example.com:1094",
		"https://meta2.example.com:1094")
	dataGroup = redirector.MustNewEndpointGroup(
		"https://data1.example.com:1094",
		"https://data2.example.com:1094",
		"https://data3.example.com:1094")
)

func TestRandomEndpointSelector(t *testing.T) {
	ctrl := gomock.NewController(t)

	generator := mock.NewMockThreadSafeGenerator(ctrl)
	selector := redirector.NewRandomEndpointSelector(metadataGroup, dataGroup, generator)

	t.Run("Metadata", func(t *testing.T) {
		generator.EXPECT().IntN(2).Return(1)
		require.Equal(t, "https://meta2.example.com:1094", selector.SelectEndpoint(redirector.OperationClassMetadata, "/store/data").String())
	})

	t.Run("Data", func(t *testing.T) {
		generator.EXPECT().IntN(3).Return(2)
		require.Equal(t, "https://data3.example.com:1094", selector.SelectEndpoint(redirector.OperationClassData, "/store/data/file.root").String())
	})
}

func TestRandomEndpointSelectorUniformity(t *testing.T) {
	// Every endpoint should be picked roughly equally often.
	selector := redirector.NewRandomEndpointSelector(metadataGroup, dataGroup, random.FastThreadSafeGenerator)
	counts := map[string]int{}
	const iterations = 30000
	for i := 0; i < iterations; i++ {
		counts[selector.SelectEndpoint(redirector.OperationClassData, "/store/data/file.root").String()]++
	}
	require.Len(t, counts, 3)
	for endpoint, count := range counts {
		require.True(t, dataGroup.Contains(mustParseURL(t, endpoint)))
		require.InDelta(t, iterations/3, count, iterations/30)
	}
}

func TestLocationCachingEndpointSelector(t *testing.T) {
	ctrl := gomock.NewController(t)

	base := mock.NewMockEndpointSelector(ctrl)
	selector := redirector.NewLocationCachingEndpointSelector(base, 2, eviction.NewLRUSet[redirector.LocationCacheKey]())

	t.Run("Memoized", func(t *testing.T) {
		base.EXPECT().SelectEndpoint(redirector.OperationClassData, "/store/data/a.root").Return(dataGroup.Get(1))

		require.Equal(t, dataGroup.Get(1), selector.SelectEndpoint(redirector.OperationClassData, "/store/data/a.root"))
		require.Equal(t, dataGroup.Get(1), selector.SelectEndpoint(redirector.OperationClassData, "/store/data/a.root"))
	})

	t.Run("ClassesAreDistinct", func(t *testing.T) {
		base.EXPECT().SelectEndpoint(redirector.OperationClassMetadata, "/store/data/a.root").Return(metadataGroup.Get(0))

		require.Equal(t, metadataGroup.Get(0), selector.SelectEndpoint(redirector.OperationClassMetadata, "/store/data/a.root"))
	})

	t.Run("Eviction", func(t *testing.T) {
		// The metadata entry was used most recently, meaning
		// the data entry gets evicted.
		base.EXPECT().SelectEndpoint(redirector.OperationClassData, "/store/data/b.root").Return(dataGroup.Get(0))
		require.Equal(t, dataGroup.Get(0), selector.SelectEndpoint(redirector.OperationClassData, "/store/data/b.root"))

		base.EXPECT().SelectEndpoint(redirector.OperationClassData, "/store/data/a.root").Return(dataGroup.Get(2))
		require.Equal(t, dataGroup.Get(2), selector.SelectEndpoint(redirector.OperationClassData, "/store/data/a.root"))
	})
}

func TestMetricsEndpointSelector(t *testing.T) {
	ctrl := gomock.NewController(t)

	base := mock.NewMockEndpointSelector(ctrl)
	selector := redirector.NewMetricsEndpointSelector(base)

	base.EXPECT().SelectEndpoint(redirector.OperationClassData, "/store/data/a.root").Return(dataGroup.Get(1))
	require.Equal(t, dataGroup.Get(1), selector.SelectEndpoint(redirector.OperationClassData, "/store/data/a.root"))
}
