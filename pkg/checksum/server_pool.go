package checksum

import (
	"context"
	"io"
	"net"
	"strings"
	"time"

	"github.com/ingrid-storage/storage-locator/pkg/clock"
	"github.com/ingrid-storage/storage-locator/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultServerPort is the TCP port on which checksum servers listen.
const DefaultServerPort = "9500"

// Dialer is used by the server pool to establish connections to
// checksum servers. It is implemented by net.Dialer.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

var _ Dialer = &net.Dialer{}

type serverPool struct {
	addresses      []string
	dialer         Dialer
	clock          clock.Clock
	storageRoot    string
	connectTimeout time.Duration
	readTimeout    time.Duration
}

// NewServerPool creates a Computer that obtains checksums from an
// ordered list of checksum servers. Servers are contacted in the order
// in which they are provided. The first server that sends back a
// complete response is used, regardless of the value it returns.
//
// Establishing a connection is bounded by connectTimeout. Waiting for
// the response is only bounded if readTimeout is non-zero.
func NewServerPool(addresses []string, dialer Dialer, clock clock.Clock, storageRoot string, connectTimeout, readTimeout time.Duration) (Computer, error) {
	if len(addresses) == 0 {
		return nil, status.Error(codes.InvalidArgument, "No checksum servers provided")
	}
	normalizedAddresses := make([]string, 0, len(addresses))
	for _, address := range addresses {
		if address == "" {
			return nil, status.Error(codes.InvalidArgument, "Checksum server address cannot be empty")
		}
		if _, _, err := net.SplitHostPort(address); err != nil {
			address = net.JoinHostPort(strings.Trim(address, "[]"), DefaultServerPort)
		}
		normalizedAddresses = append(normalizedAddresses, address)
	}
	return &serverPool{
		addresses:      normalizedAddresses,
		dialer:         dialer,
		clock:          clock,
		storageRoot:    strings.TrimSuffix(storageRoot, "/"),
		connectTimeout: connectTimeout,
		readTimeout:    readTimeout,
	}, nil
}

func (sp *serverPool) Compute(ctx context.Context, name string) (Checksum, error) {
	request := []byte(sp.storageRoot + "/" + strings.TrimLeft(name, "/") + "\n")
	var lastErr error
	for _, address := range sp.addresses {
		checksum, err := sp.probe(ctx, address, request)
		if err == nil {
			return checksum, nil
		}
		if ctx.Err() != nil {
			return Checksum{}, util.StatusFromContext(ctx)
		}
		lastErr = util.StatusWrapf(err, "Checksum server %#v", address)
	}
	return Checksum{}, util.StatusWrapfWithCode(lastErr, codes.Unavailable, "None of the %d checksum servers returned a response", len(sp.addresses))
}

func (sp *serverPool) probe(ctx context.Context, address string, request []byte) (Checksum, error) {
	dialCtx, cancel := sp.clock.NewContextWithTimeout(ctx, sp.connectTimeout)
	conn, err := sp.dialer.DialContext(dialCtx, "tcp", address)
	cancel()
	if err != nil {
		return Checksum{}, util.StatusWrapWithCode(err, codes.Unavailable, "Failed to connect")
	}
	defer conn.Close()

	if sp.readTimeout > 0 {
		if err := conn.SetDeadline(sp.clock.Now().Add(sp.readTimeout)); err != nil {
			return Checksum{}, util.StatusWrapWithCode(err, codes.Internal, "Failed to set deadline")
		}
	}
	if _, err := conn.Write(request); err != nil {
		return Checksum{}, util.StatusWrapWithCode(err, codes.Unavailable, "Failed to send request")
	}
	var response Checksum
	if _, err := io.ReadFull(conn, response[:]); err != nil {
		return Checksum{}, util.StatusWrapWithCode(err, codes.Unavailable, "Failed to read response")
	}
	return response, nil
}
