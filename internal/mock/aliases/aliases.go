package aliases

import (
	"net"
)

// This file contains aliases for some of the interfaces provided by the
// Go standard library. The only reason this file exists is to allow
// mocks to be generated for them from within this module, as mockgen
// is only invoked on packages that are part of it.

// Conn is an alias of net.Conn.
type Conn = net.Conn
