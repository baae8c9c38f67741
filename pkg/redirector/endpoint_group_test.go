package redirector_test

import (
	"net/url"
	"testing"

	"github.com/ingrid-storage/storage-locator/pkg/redirector"
	"github.com/ingrid-storage/storage-locator/pkg/testutil"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewEndpointGroup(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		_, err := redirector.NewEndpointGroup(nil)
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Endpoint group is empty"), err)
	})

	t.Run("UnsupportedScheme", func(t *testing.T) {
		_, err := redirector.NewEndpointGroup([]string{"davs://eos.example.com"})
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Endpoint URL \"davs://eos.example.com\" does not use HTTP or HTTPS"), err)
	})

	t.Run("MissingHost", func(t *testing.T) {
		_, err := redirector.NewEndpointGroup([]string{"https:///store"})
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Endpoint URL \"https:///store\" does not contain a host"), err)
	})

	t.Run("Query", func(t *testing.T) {
		_, err := redirector.NewEndpointGroup([]string{"https://eos.example.com/?x=y"})
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Endpoint URL \"https://eos.example.com/?x=y\" may not contain a query or fragment"), err)
	})

	t.Run("Success", func(t *testing.T) {
		// Trailing slashes are stripped, so that paths can be
		// appended directly.
		group, err := redirector.NewEndpointGroup([]string{
			"https://xrootd1.example.com:1094/",
			"https://xrootd2.example.com:1094/prefix/",
		})
		require.NoError(t, err)
		require.Equal(t, 2, group.Len())
		require.Equal(t, "https://xrootd1.example.com:1094", group.Get(0).String())
		require.Equal(t, "https://xrootd2.example.com:1094/prefix", group.Get(1).String())

		require.True(t, group.Contains(&url.URL{Scheme: "https", Host: "xrootd1.example.com:1094"}))
		require.False(t, group.Contains(&url.URL{Scheme: "https", Host: "xrootd3.example.com:1094"}))
	})
}
