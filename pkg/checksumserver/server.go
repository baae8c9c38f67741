package checksumserver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"hash/adler32"
	"io"
	"io/fs"
	"net"
	"path"
	"strings"
	"sync"

	"github.com/ingrid-storage/storage-locator/pkg/checksum"
	"github.com/ingrid-storage/storage-locator/pkg/util"
	"github.com/prometheus/client_golang/prometheus"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// maximumRequestSize is the maximum length of a request line,
// including the trailing newline.
const maximumRequestSize = 4096

var (
	serverPrometheusMetrics sync.Once

	serverRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storage_locator",
			Subsystem: "checksum_server",
			Name:      "requests_total",
			Help:      "Number of checksum requests processed, by gRPC status code of the outcome.",
		},
		[]string{"grpc_code"})
)

// Server computes Adler-32 checksums of files on behalf of checksum
// resolvers. Clients connect, send the absolute path of a file
// terminated by a newline, and receive the checksum as eight lowercase
// hexadecimal digits. Requests that cannot be processed cause the
// connection to be closed without a response.
type Server struct {
	filesystem  fs.FS
	storageRoot string
	errorLogger util.ErrorLogger
}

// NewServer creates a Server that serves files stored in filesystem.
// The root of filesystem corresponds to storageRoot in the paths sent
// by clients.
func NewServer(filesystem fs.FS, storageRoot string, errorLogger util.ErrorLogger) *Server {
	serverPrometheusMetrics.Do(func() {
		prometheus.MustRegister(serverRequestsTotal)
	})

	return &Server{
		filesystem:  filesystem,
		storageRoot: path.Clean("/" + storageRoot),
		errorLogger: errorLogger,
	}
}

// Serve accepts connections on a listener until the context is
// canceled. Every connection is handled in a separate goroutine.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			listener.Close()
		case <-done:
		}
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return util.StatusWrapWithCode(err, codes.Unavailable, "Failed to accept connection")
		}
		go s.HandleConnection(conn)
	}
}

// HandleConnection processes a single request on a connection, closing
// the connection afterwards.
func (s *Server) HandleConnection(conn net.Conn) {
	defer conn.Close()

	c, err := s.handleRequest(conn)
	if err == nil {
		if _, err = conn.Write(c[:]); err != nil {
			err = util.StatusWrapWithCode(err, codes.Unavailable, "Failed to send response")
		}
	}
	if err != nil {
		serverRequestsTotal.WithLabelValues(status.Code(err).String()).Inc()
		s.errorLogger.Log(util.StatusWrapf(err, "Request from %s", conn.RemoteAddr()))
		return
	}
	serverRequestsTotal.WithLabelValues(codes.OK.String()).Inc()
}

func (s *Server) handleRequest(r io.Reader) (checksum.Checksum, error) {
	line, err := bufio.NewReaderSize(r, maximumRequestSize).ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		return checksum.Checksum{}, status.Errorf(codes.InvalidArgument, "Request exceeds %d bytes", maximumRequestSize)
	} else if err != nil && (err != io.EOF || len(line) == 0) {
		return checksum.Checksum{}, util.StatusWrapWithCode(err, codes.Unavailable, "Failed to read request")
	}
	requestedPath := strings.TrimRight(string(line), "\r\n")

	relativePath, err := s.getRelativePath(requestedPath)
	if err != nil {
		return checksum.Checksum{}, err
	}
	f, err := s.filesystem.Open(relativePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return checksum.Checksum{}, status.Errorf(codes.NotFound, "File %#v does not exist", requestedPath)
		}
		return checksum.Checksum{}, util.StatusWrapfWithCode(err, codes.Internal, "Failed to open file %#v", requestedPath)
	}
	defer f.Close()

	h := adler32.New()
	if _, err := io.Copy(h, f); err != nil {
		return checksum.Checksum{}, util.StatusWrapfWithCode(err, codes.Internal, "Failed to read file %#v", requestedPath)
	}
	return checksum.NewChecksumFromString(fmt.Sprintf("%08x", h.Sum32()))
}

// getRelativePath converts an absolute path provided by the client to
// a path relative to the storage root.
func (s *Server) getRelativePath(requestedPath string) (string, error) {
	if !strings.HasPrefix(requestedPath, "/") {
		return "", status.Errorf(codes.InvalidArgument, "Path %#v is not absolute", requestedPath)
	}
	cleanedPath := path.Clean(requestedPath)
	prefix := s.storageRoot
	if prefix != "/" {
		prefix += "/"
	}
	relativePath, ok := strings.CutPrefix(cleanedPath, prefix)
	if !ok || !fs.ValidPath(relativePath) || relativePath == "." || relativePath == "" {
		return "", status.Errorf(codes.PermissionDenied, "Path %#v is not located inside storage root %#v", requestedPath, s.storageRoot)
	}
	return relativePath, nil
}
