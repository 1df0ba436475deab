//go:build !unix

package dns

import "syscall"

// setReusePort is a no-op on platforms without SO_REUSEPORT.
func setReusePort(network, address string, c syscall.RawConn) error {
	return nil
}
