package checksum

// Resolution is the outcome of resolving the checksum of an object.
// Either the checksum is known, or the checksum servers reported that
// it is still being computed. The latter is not an error, but callers
// need to handle it explicitly, as there is no checksum to use.
type Resolution struct {
	checksum Checksum
	resolved bool
}

// PendingResolution is returned when the checksum of an object is
// still being computed.
var PendingResolution = Resolution{}

// NewResolvedResolution creates a Resolution for an object whose
// checksum is known.
func NewResolvedResolution(c Checksum) Resolution {
	return Resolution{
		checksum: c,
		resolved: true,
	}
}

// GetChecksum returns the checksum of the object, if known.
func (r Resolution) GetChecksum() (Checksum, bool) {
	return r.checksum, r.resolved
}

// IsPending returns true if the checksum of the object is still being
// computed.
func (r Resolution) IsPending() bool {
	return !r.resolved
}
