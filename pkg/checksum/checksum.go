package checksum

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Size of a checksum, in bytes. Checksum servers reply with exactly
// this many bytes.
const Size = 8

// Checksum of the contents of a storage object, as reported by a
// checksum server. Checksum servers emit Adler-32 checksums as
// lowercase hexadecimal strings, but this type makes no assumptions
// about the encoding.
type Checksum [Size]byte

// PendingSentinel is the value returned by checksum servers to indicate
// that the checksum of an object is still being computed. It must
// never be stored in a cache, as it is not a property of the object.
//
// The wire protocol offers no way to distinguish this value from an
// object whose actual checksum is equal to it. Such an object is
// always treated as pending.
var PendingSentinel = Checksum{'0', '0', '0', '0', '0', '0', '0', '1'}

// NewChecksumFromBytes converts a byte slice to a Checksum, validating
// its length.
func NewChecksumFromBytes(b []byte) (Checksum, error) {
	var c Checksum
	if len(b) != Size {
		return c, status.Errorf(codes.InvalidArgument, "Checksum has length %d, while %d bytes were expected", len(b), Size)
	}
	copy(c[:], b)
	return c, nil
}

// NewChecksumFromString converts a string to a Checksum, validating its
// length.
func NewChecksumFromString(s string) (Checksum, error) {
	return NewChecksumFromBytes([]byte(s))
}

// MustNewChecksumFromString is identical to NewChecksumFromString,
// except that it panics upon failure.
func MustNewChecksumFromString(s string) Checksum {
	c, err := NewChecksumFromString(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsPending returns true if the checksum is equal to PendingSentinel.
func (c Checksum) IsPending() bool {
	return c == PendingSentinel
}

func (c Checksum) String() string {
	return string(c[:])
}

func checkCacheable(c Checksum) error {
	if c.IsPending() {
		return status.Error(codes.InvalidArgument, "Pending checksums cannot be cached")
	}
	return nil
}
