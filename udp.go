package dns

import (
	"context"
	"net"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// listenUDPReusePort listens on address with SO_REUSEPORT set where the
// platform supports it, so several listeners can share one UDP port.
// ListenNotify uses it for the NOTIFY listener.
func listenUDPReusePort(network, address string) (*net.UDPConn, error) {
	addr, err := net.ResolveUDPAddr(network, address)
	if err != nil {
		return nil, err
	}

	lc := net.ListenConfig{Control: setReusePort}
	pc, err := lc.ListenPacket(context.Background(), network, addr.String())
	if err != nil {
		return nil, err
	}
	return pc.(*net.UDPConn), nil
}

// batchReader wraps a UDP socket so NotifyListener can pull several pending
// datagrams off the kernel queue in a single syscall where the platform
// supports it, instead of looping one Read at a time. Per-packet control
// data is not read.
type batchReader struct {
	v4 *ipv4.PacketConn
	v6 *ipv6.PacketConn
}

func newBatchReader(conn *net.UDPConn) *batchReader {
	if isIPv6Conn(conn) {
		return &batchReader{v6: ipv6.NewPacketConn(conn)}
	}
	return &batchReader{v4: ipv4.NewPacketConn(conn)}
}

// ReadBatch reads up to len(bufs) datagrams, returning the number of
// datagrams read and the source address each one came from. The byte
// count of each datagram is not returned.
func (b *batchReader) ReadBatch(bufs [][]byte) (n int, addrs []net.Addr, err error) {
	ms := make([]ipv4.Message, len(bufs))
	for i := range bufs {
		ms[i].Buffers = [][]byte{bufs[i]}
	}

	var count int
	if b.v6 != nil {
		ms6 := make([]ipv6.Message, len(bufs))
		for i := range ms6 {
			ms6[i].Buffers = ms[i].Buffers
		}
		count, err = b.v6.ReadBatch(ms6, 0)
		if err != nil {
			return 0, nil, err
		}
		addrs = make([]net.Addr, count)
		for i := 0; i < count; i++ {
			addrs[i] = ms6[i].Addr
		}
		return count, addrs, nil
	}

	count, err = b.v4.ReadBatch(ms, 0)
	if err != nil {
		return 0, nil, err
	}
	addrs = make([]net.Addr, count)
	for i := 0; i < count; i++ {
		addrs[i] = ms[i].Addr
	}
	return count, addrs, nil
}

func isIPv6Conn(conn *net.UDPConn) bool {
	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	return ok && addr.IP.To4() == nil && addr.IP.To16() != nil
}
