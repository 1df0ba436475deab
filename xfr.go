package dns

import (
	"context"
	"net"
)

// NotifyListener listens for RFC 1996 NOTIFY messages from a zone's
// primary server, telling an updater that a transfer should be pulled.
// It binds with SO_REUSEPORT so several updater instances can watch the
// same port, and drains several pending NOTIFYs per wakeup via a batched
// read instead of one recvfrom per message.
type NotifyListener struct {
	conn  *net.UDPConn
	batch *batchReader
	bufs  [][]byte
}

// ListenNotify starts a NotifyListener on address (host:port, UDP).
func ListenNotify(address string) (*NotifyListener, error) {
	conn, err := listenUDPReusePort("udp", address)
	if err != nil {
		return nil, err
	}
	const batchSize = 32
	bufs := make([][]byte, batchSize)
	for i := range bufs {
		bufs[i] = make([]byte, DefaultMsgSize)
	}
	return &NotifyListener{conn: conn, batch: newBatchReader(conn), bufs: bufs}, nil
}

// Accept blocks until at least one datagram arrives, then returns every
// NOTIFY message decoded from that wakeup along with the sender that should
// receive the acknowledgement reply (built with Msg.SetReply). Datagrams
// that do not decode or are not NOTIFYs are dropped, so the result can be
// empty.
func (l *NotifyListener) Accept() ([]*Msg, []net.Addr, error) {
	n, addrs, err := l.batch.ReadBatch(l.bufs)
	if err != nil {
		return nil, nil, err
	}
	msgs := make([]*Msg, 0, n)
	srcs := make([]net.Addr, 0, n)
	for i := 0; i < n; i++ {
		m := new(Msg)
		if err := m.Unpack(l.bufs[i]); err != nil {
			continue
		}
		if m.Opcode != OpcodeNotify {
			continue
		}
		msgs = append(msgs, m)
		srcs = append(srcs, addrs[i])
	}
	return msgs, srcs, nil
}

// Reply acknowledges a NOTIFY by sending back a reply with the same
// question and ID, per RFC 1996 section 3.8.
func (l *NotifyListener) Reply(m *Msg, addr net.Addr) error {
	r := new(Msg)
	r.SetReply(m)
	out, err := r.Pack()
	if err != nil {
		return err
	}
	_, err = l.conn.WriteTo(out, addr)
	return err
}

// Close releases the underlying socket.
func (l *NotifyListener) Close() error { return l.conn.Close() }

// An Envelope is used when doing a zone transfer with a remote server.
// It either contains a transfer's next chunk of RRs, or, if an error
// occurred, an error that describes the failure.
type Envelope struct {
	RR    []RR
	Error error
}

// Transfer performs an AXFR or IXFR zone transfer against address for the
// query in m (as built with Msg.SetAxfr/SetIxfr) and streams the resulting
// RRs on the returned channel. Zone transfers always use TCP.
func (c *Client) Transfer(ctx context.Context, m *Msg, address string) (<-chan *Envelope, error) {
	if len(m.Question) != 1 {
		return nil, &Error{err: "xfr: need exactly one question"}
	}
	qtype := m.Question[0].Qtype
	if qtype != TypeAXFR && qtype != TypeIXFR {
		return nil, &Error{err: "xfr: question must be AXFR or IXFR"}
	}

	tc := *c
	tc.Net = "tcp"

	conn, err := tc.dialContext(ctx, address)
	if err != nil {
		return nil, err
	}

	if err := tc.writeMsg(conn, m); err != nil {
		conn.Close()
		return nil, err
	}

	env := make(chan *Envelope)
	go func() {
		defer close(env)
		defer conn.Close()
		if qtype == TypeAXFR {
			tc.receiveAxfr(conn, env)
		} else {
			tc.receiveIxfr(conn, env)
		}
	}()
	return env, nil
}

func (c *Client) receiveAxfr(conn net.Conn, env chan *Envelope) {
	var serial uint32 // serial of the opening SOA, matched against to find the closing one
	first := true
	for {
		in, err := c.readMsg(conn, 0)
		if err != nil {
			env <- &Envelope{Error: err}
			return
		}
		if in.Rcode != RcodeSuccess {
			env <- &Envelope{Error: &Error{err: "xfr: bad rcode: " + RcodeToString[in.Rcode]}}
			return
		}
		if first {
			if len(in.Answer) == 0 {
				env <- &Envelope{Error: &Error{err: "xfr: no SOA record in first response"}}
				return
			}
			soa, ok := in.Answer[0].(*SOA)
			if !ok {
				env <- &Envelope{Error: &Error{err: "xfr: first RR in transfer must be a SOA"}}
				return
			}
			serial = soa.Serial
		}
		env <- &Envelope{RR: in.Answer}
		if axfrDone(in.Answer, serial, first) {
			return
		}
		first = false
	}
}

// axfrDone reports whether rrs, the most recently received message in an
// AXFR stream, carries the closing SOA: a second sighting, anywhere in the
// message, of a SOA RR whose serial matches the transfer's opening one.
// The closing SOA can share a message with other RRs (e.g. "...MX, SOA"),
// so every RR is checked, not just the last. openingMsg skips index 0 on
// the message that carries the opening SOA itself, so that RR is never
// mistaken for the closing one.
func axfrDone(rrs []RR, serial uint32, openingMsg bool) bool {
	for i, rr := range rrs {
		if openingMsg && i == 0 {
			continue
		}
		if soa, ok := rr.(*SOA); ok && soa.Serial == serial {
			return true
		}
	}
	return false
}

func (c *Client) receiveIxfr(conn net.Conn, env chan *Envelope) {
	var serial uint32 // serial of the first SOA in the answer, the server's current one
	first := true
	for {
		in, err := c.readMsg(conn, 0)
		if err != nil {
			env <- &Envelope{Error: err}
			return
		}
		if in.Rcode != RcodeSuccess {
			env <- &Envelope{Error: &Error{err: "xfr: bad rcode: " + RcodeToString[in.Rcode]}}
			return
		}
		if len(in.Answer) == 0 {
			env <- &Envelope{Error: &Error{err: "xfr: empty answer, expected SOA"}}
			return
		}
		if first {
			soa, ok := in.Answer[0].(*SOA)
			if !ok {
				env <- &Envelope{Error: &Error{err: "xfr: first RR in transfer must be a SOA"}}
				return
			}
			serial = soa.Serial
			// A single answer whose SOA serial hasn't advanced means the
			// zone is already up to date.
			if len(in.Answer) == 1 {
				env <- &Envelope{RR: in.Answer}
				return
			}
			first = false
		}
		env <- &Envelope{RR: in.Answer}
		if ixfrDone(in.Answer, serial) {
			return
		}
	}
}

// ixfrDone reports whether rrs ends an IXFR stream: the final message ends
// with a SOA whose serial matches the transfer's target serial.
func ixfrDone(rrs []RR, serial uint32) bool {
	last, ok := rrs[len(rrs)-1].(*SOA)
	return ok && last.Serial == serial
}
