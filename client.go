package dns

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const dnsTimeout time.Duration = 2 * time.Second

// A Client defines parameters for a DNS client.
type Client struct {
	Net       string      // if "tcp" or "tcp-tls" (DoT) a TCP query will be initiated, otherwise an UDP one (default is "" for UDP)
	TLSConfig *tls.Config // TLS connection configuration, used when Net is "tcp-tls"
	UDPSize   uint16      // minimum receive buffer for UDP messages
	Timeout   time.Duration
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	TsigProvider TsigProvider

	// Retries is how many times a query is resent to the same server on a
	// network error, or on SERVFAIL/REFUSED when RetryServFail is set,
	// before giving up on that server and moving to the next one in the
	// list passed to ExchangeServers.
	Retries int
	// RetryServFail controls what a SERVFAIL or REFUSED response does.
	// Unset (the default), it behaves like a nameserver that can't answer:
	// ExchangeServers advances to the next server immediately. Set, it's
	// treated like a network error instead, retrying the same server up
	// to Retries times first.
	RetryServFail bool

	// Logger receives Debug-level state-transition traces and Warn-level
	// server-switch notices. Defaults to slog.Default() when nil.
	Logger *slog.Logger

	dialGroup singleflight.Group
	connMu    sync.Mutex
	conns     map[string]net.Conn
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Client) dialTimeout() time.Duration {
	if c.DialTimeout != 0 {
		return c.DialTimeout
	}
	if c.Timeout != 0 {
		return c.Timeout
	}
	return dnsTimeout
}

func (c *Client) readTimeout() time.Duration {
	if c.ReadTimeout != 0 {
		return c.ReadTimeout
	}
	if c.Timeout != 0 {
		return c.Timeout
	}
	return dnsTimeout
}

func (c *Client) writeTimeout() time.Duration {
	if c.WriteTimeout != 0 {
		return c.WriteTimeout
	}
	if c.Timeout != 0 {
		return c.Timeout
	}
	return dnsTimeout
}

func isPacketConn(net string) bool { return net == "" || net == "udp" || net == "udp4" || net == "udp6" }

func (c *Client) network() string {
	if c.Net != "" {
		return c.Net
	}
	return "udp"
}

// Dial connects to the address on the named network, per c.Net (UDP by
// default), without sending anything.
func (c *Client) Dial(address string) (net.Conn, error) {
	return c.dialContext(context.Background(), address)
}

func (c *Client) dialContext(ctx context.Context, address string) (net.Conn, error) {
	d := net.Dialer{Timeout: c.dialTimeout()}

	switch c.network() {
	case "tcp-tls":
		return tls.DialWithDialer(&d, "tcp", address, c.TLSConfig)
	default:
		return d.DialContext(ctx, c.network(), address)
	}
}

// connFor returns a cached connection for address, dialing a fresh one if
// none exists or the cached one has gone bad. Concurrent callers racing to
// dial the same address collapse onto a single dial via singleflight.
func (c *Client) connFor(ctx context.Context, address string) (net.Conn, error) {
	if isPacketConn(c.network()) {
		// UDP has no connection state worth caching across Exchange calls,
		// every query gets its own freshly dialed (connected) socket.
		return c.dialContext(ctx, address)
	}

	c.connMu.Lock()
	if conn, ok := c.conns[address]; ok {
		c.connMu.Unlock()
		return conn, nil
	}
	c.connMu.Unlock()

	v, err, _ := c.dialGroup.Do(address, func() (any, error) {
		conn, err := c.dialContext(ctx, address)
		if err != nil {
			return nil, err
		}
		c.connMu.Lock()
		if c.conns == nil {
			c.conns = make(map[string]net.Conn)
		}
		c.conns[address] = conn
		c.connMu.Unlock()
		return conn, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(net.Conn), nil
}

func (c *Client) dropConn(address string) {
	c.connMu.Lock()
	if conn, ok := c.conns[address]; ok {
		conn.Close()
		delete(c.conns, address)
	}
	c.connMu.Unlock()
}

// Close closes every cached connection the client is holding open.
func (c *Client) Close() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	var err error
	for addr, conn := range c.conns {
		if e := conn.Close(); e != nil {
			err = e
		}
		delete(c.conns, addr)
	}
	return err
}

// Exchange performs a synchronous query: it sends the message m to the
// address and waits for a reply. Basic use pattern for a single lookup.
func (c *Client) Exchange(m *Msg, address string) (r *Msg, rtt time.Duration, err error) {
	return c.ExchangeContext(context.Background(), m, address)
}

// ExchangeContext behaves like Exchange but observes ctx's deadline/cancellation.
func (c *Client) ExchangeContext(ctx context.Context, m *Msg, address string) (r *Msg, rtt time.Duration, err error) {
	if !isPacketConn(c.network()) {
		conn, err := c.connFor(ctx, address)
		if err != nil {
			return nil, 0, err
		}
		r, rtt, err = c.exchangeWithConn(m, conn)
		if err != nil {
			c.dropConn(address)
		}
		return r, rtt, err
	}

	conn, err := c.dialContext(ctx, address)
	if err != nil {
		return nil, 0, err
	}
	defer conn.Close()
	return c.exchangeWithConn(m, conn)
}

func (c *Client) exchangeWithConn(m *Msg, conn net.Conn) (r *Msg, rtt time.Duration, err error) {
	opt := m.IsEdns0()
	udpsize := uint16(512)
	if opt != nil {
		udpsize = opt.UDPSize()
	}
	if c.UDPSize > udpsize {
		udpsize = c.UDPSize
	}

	t := time.Now()
	if err = c.writeMsg(conn, m); err != nil {
		return nil, 0, err
	}

	deadline := t.Add(c.readTimeout())
	_ = conn.SetReadDeadline(deadline)
	for {
		r, err = c.readMsgRaw(conn, udpsize)
		rtt = time.Since(t)
		if err != nil {
			return r, rtt, err
		}
		if validResponse(m, r) {
			return r, rtt, nil
		}
		// Off-path spoofing and stray/delayed replies look like a valid
		// read but fail the ID/QR/question check above; drop them and
		// keep listening on the same socket until the deadline set above,
		// rather than aborting the attempt on the first bad datagram.
		if !time.Now().Before(deadline) {
			return r, rtt, ErrId
		}
	}
}

// validResponse reports whether r is a genuine reply to the query m: the
// transaction ID matches, the QR bit is set, and the first question has the
// query's type and class and the same name, compared case-insensitively.
func validResponse(m, r *Msg) bool {
	if r.Id != m.Id || !r.Response {
		return false
	}
	if len(m.Question) == 0 {
		return true
	}
	if len(r.Question) == 0 {
		return false
	}
	q, rq := m.Question[0], r.Question[0]
	return q.Qtype == rq.Qtype && q.Qclass == rq.Qclass && isDuplicateName(q.Name, rq.Name)
}

func (c *Client) writeMsg(conn net.Conn, m *Msg) error {
	var out []byte
	var err error
	if m.IsTsig() != nil {
		if c.TsigProvider == nil {
			return ErrSecret
		}
		out, _, err = TsigGenerateWithProvider(m, c.TsigProvider, ByteField{}, false)
	} else {
		out, err = m.Pack()
	}
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(c.writeTimeout()))
	if isPacketConn(c.network()) {
		_, err = conn.Write(out)
		return err
	}
	return writeTCPFramed(conn, out)
}

func (c *Client) readMsg(conn net.Conn, udpsize uint16) (*Msg, error) {
	_ = conn.SetReadDeadline(time.Now().Add(c.readTimeout()))
	return c.readMsgRaw(conn, udpsize)
}

// readMsgRaw reads and unpacks one message without touching the read
// deadline, so a caller that needs to keep reading across several
// datagrams under a single overall deadline (exchangeWithConn, dropping
// spoofed or stray replies) can manage it itself.
func (c *Client) readMsgRaw(conn net.Conn, udpsize uint16) (*Msg, error) {
	var p []byte
	if isPacketConn(c.network()) {
		size := int(udpsize)
		if size < DefaultMsgSize {
			size = DefaultMsgSize
		}
		buf := make([]byte, size)
		n, err := conn.Read(buf)
		if err != nil {
			return nil, err
		}
		p = buf[:n]
	} else {
		var err error
		p, err = readTCPFramed(conn)
		if err != nil {
			return nil, err
		}
	}

	m := new(Msg)
	if err := m.Unpack(p); err != nil {
		return nil, err
	}
	if m.Truncated && isPacketConn(c.network()) {
		return m, ErrTruncated
	}
	return m, nil
}

func writeTCPFramed(conn net.Conn, msg []byte) error {
	if len(msg) > 0xFFFF {
		return ErrBuf
	}
	out := make([]byte, 2+len(msg))
	out[0] = byte(len(msg) >> 8)
	out[1] = byte(len(msg))
	copy(out[2:], msg)
	_, err := conn.Write(out)
	return err
}

func readTCPFramed(conn net.Conn) ([]byte, error) {
	var lenbuf [2]byte
	if _, err := io.ReadFull(conn, lenbuf[:]); err != nil {
		return nil, err
	}
	l := int(lenbuf[0])<<8 | int(lenbuf[1])
	buf := make([]byte, l)
	if _, err := io.ReadFull(conn, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ExchangeServers tries each address in servers in order. A network error
// retries the same server, up to c.Retries times, before moving to the next
// one; a truncated UDP reply falls back to TCP on the same server without
// consuming a retry. A SERVFAIL or REFUSED response advances to the next
// server immediately unless RetryServFail is set, in which case it's
// retried like a network error instead. It is the state machine a resolver
// runs: built -> sent -> awaiting -> (retry same server | switch server |
// switch transport) -> completed | failed.
func (c *Client) ExchangeServers(ctx context.Context, m *Msg, servers []string) (r *Msg, used string, err error) {
	if len(servers) == 0 {
		return nil, "", ErrServer
	}

	log := c.logger()
	retries := c.Retries
	if retries < 0 {
		retries = 0
	}

	for _, server := range servers {
		client := *c
	attemptLoop:
		for attempt := 0; attempt <= retries; attempt++ {
			log.Debug("dns: sending query", "server", server, "attempt", attempt, "net", client.network())
			resp, _, exErr := client.ExchangeContext(ctx, m, server)

			switch {
			case errors.Is(exErr, ErrTruncated) && client.network() != "tcp":
				log.Debug("dns: response truncated, retrying over tcp", "server", server)
				client.Net = "tcp"
				attempt--
				continue
			case exErr == nil && resp.Rcode != RcodeServerFailure && resp.Rcode != RcodeRefused:
				return resp, server, nil
			case exErr == nil:
				err = &Error{err: RcodeToString[resp.Rcode] + " from " + server}
				if client.RetryServFail {
					log.Debug("dns: retrying same server", "server", server, "attempt", attempt, "rcode", resp.Rcode)
					continue
				}
				log.Debug("dns: switching server", "server", server, "rcode", resp.Rcode)
				break attemptLoop
			default:
				log.Debug("dns: exchange failed", "server", server, "err", exErr)
				err = exErr
				continue
			}
		}
		log.Warn("dns: switching to next server", "failed", server)
	}

	if err == nil {
		err = ErrServer
	}
	return nil, "", err
}

func joinHostPort(host, port string) string {
	if port == "" {
		port = "53"
	}
	return net.JoinHostPort(host, port)
}

func parsePort(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
