package dns

import (
	"context"
	"net"
	"net/netip"
	"sync/atomic"
	"testing"
	"time"
)

// startEchoServer answers every query it receives with a reply carrying one
// A record, so Client.Exchange has something real to talk to.
func startEchoServer(t *testing.T) (addr string, stop func()) {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		buf := make([]byte, DefaultMsgSize)
		for {
			n, from, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			req := new(Msg)
			if err := req.Unpack(buf[:n]); err != nil {
				continue
			}
			resp := new(Msg)
			resp.SetReply(req)
			resp.Answer = []RR{&A{
				Hdr: RR_Header{Name: req.Question[0].Name, Rrtype: TypeA, Class: ClassINET, Ttl: 300},
				A:   netip.MustParseAddr("127.0.0.1"),
			}}
			out, err := resp.Pack()
			if err != nil {
				continue
			}
			conn.WriteTo(out, from)
			select {
			case <-done:
				return
			default:
			}
		}
	}()

	return conn.LocalAddr().String(), func() { close(done); conn.Close() }
}

func TestClientExchange(t *testing.T) {
	addr, stop := startEchoServer(t)
	defer stop()

	c := &Client{Timeout: 2 * time.Second}
	m := new(Msg)
	m.SetQuestion(mustParseName("example.org."), TypeA)

	r, _, err := c.Exchange(m, addr)
	if err != nil {
		t.Fatal(err)
	}
	if r.Id != m.Id {
		t.Fatalf("reply ID %d does not match query ID %d", r.Id, m.Id)
	}
	if len(r.Answer) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(r.Answer))
	}
}

// startFlakyServer answers the first failsBeforeSuccess queries with rcode
// and no answer, then answers every query after that normally, so tests can
// distinguish "gave up after one SERVFAIL" from "retried and then succeeded".
func startFlakyServer(t *testing.T, rcode, failsBeforeSuccess int) (addr string, calls *atomic.Int32, stop func()) {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}

	calls = new(atomic.Int32)
	done := make(chan struct{})
	go func() {
		buf := make([]byte, DefaultMsgSize)
		for {
			n, from, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			req := new(Msg)
			if err := req.Unpack(buf[:n]); err != nil {
				continue
			}
			resp := new(Msg)
			resp.SetReply(req)
			if int(calls.Add(1)) <= failsBeforeSuccess {
				resp.Rcode = rcode
			} else {
				resp.Answer = []RR{&A{
					Hdr: RR_Header{Name: req.Question[0].Name, Rrtype: TypeA, Class: ClassINET, Ttl: 300},
					A:   netip.MustParseAddr("127.0.0.1"),
				}}
			}
			out, err := resp.Pack()
			if err != nil {
				continue
			}
			conn.WriteTo(out, from)
			select {
			case <-done:
				return
			default:
			}
		}
	}()

	return conn.LocalAddr().String(), calls, func() { close(done); conn.Close() }
}

func TestClientExchangeServersServFailAdvancesByDefault(t *testing.T) {
	bad, badCalls, stopBad := startFlakyServer(t, RcodeServerFailure, 1000)
	defer stopBad()
	good, _, stopGood := startEchoServer(t)
	defer stopGood()

	c := &Client{Timeout: 500 * time.Millisecond, Retries: 3}
	m := new(Msg)
	m.SetQuestion(mustParseName("example.org."), TypeA)

	r, used, err := c.ExchangeServers(context.Background(), m, []string{bad, good})
	if err != nil {
		t.Fatal(err)
	}
	if used != good {
		t.Fatalf("expected fallback to %s, used %s", good, used)
	}
	if len(r.Answer) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(r.Answer))
	}
	if got := badCalls.Load(); got != 1 {
		t.Fatalf("expected exactly 1 query to the SERVFAIL server before advancing, got %d", got)
	}
}

func TestClientExchangeServersRefusedAdvancesByDefault(t *testing.T) {
	bad, _, stopBad := startFlakyServer(t, RcodeRefused, 1000)
	defer stopBad()
	good, _, stopGood := startEchoServer(t)
	defer stopGood()

	c := &Client{Timeout: 500 * time.Millisecond}
	m := new(Msg)
	m.SetQuestion(mustParseName("example.org."), TypeA)

	_, used, err := c.ExchangeServers(context.Background(), m, []string{bad, good})
	if err != nil {
		t.Fatal(err)
	}
	if used != good {
		t.Fatalf("expected fallback to %s, used %s", good, used)
	}
}

func TestClientExchangeServersRetryServFail(t *testing.T) {
	addr, calls, stop := startFlakyServer(t, RcodeServerFailure, 1)
	defer stop()

	c := &Client{Timeout: 500 * time.Millisecond, Retries: 2, RetryServFail: true}
	m := new(Msg)
	m.SetQuestion(mustParseName("example.org."), TypeA)

	r, used, err := c.ExchangeServers(context.Background(), m, []string{addr})
	if err != nil {
		t.Fatal(err)
	}
	if used != addr {
		t.Fatalf("expected %s, used %s", addr, used)
	}
	if len(r.Answer) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(r.Answer))
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 queries to the same server (1 SERVFAIL + 1 retry), got %d", got)
	}
}

// startSpoofedReplyServer answers every query by first sending a bogus
// datagram (a reply altered by mangle: wrong ID, QR bit unset, or a
// different question) from the real server's address, then the genuine reply right
// behind it. A connected UDP socket already drops packets from a
// different source address, so this is the part of RFC 5452 validation
// that's left for exchangeWithConn itself: rejecting same-source noise.
func startSpoofedReplyServer(t *testing.T, mangle func(bogus *Msg)) (addr string, stop func()) {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		buf := make([]byte, DefaultMsgSize)
		for {
			n, from, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			req := new(Msg)
			if err := req.Unpack(buf[:n]); err != nil {
				continue
			}

			bogus := new(Msg)
			bogus.SetReply(req)
			bogus.Answer = []RR{&A{
				Hdr: RR_Header{Name: req.Question[0].Name, Rrtype: TypeA, Class: ClassINET, Ttl: 300},
				A:   netip.MustParseAddr("10.0.0.1"),
			}}
			mangle(bogus)
			if out, err := bogus.Pack(); err == nil {
				conn.WriteTo(out, from)
			}

			resp := new(Msg)
			resp.SetReply(req)
			resp.Answer = []RR{&A{
				Hdr: RR_Header{Name: req.Question[0].Name, Rrtype: TypeA, Class: ClassINET, Ttl: 300},
				A:   netip.MustParseAddr("127.0.0.1"),
			}}
			out, err := resp.Pack()
			if err != nil {
				continue
			}
			conn.WriteTo(out, from)
			select {
			case <-done:
				return
			default:
			}
		}
	}()

	return conn.LocalAddr().String(), func() { close(done); conn.Close() }
}

func TestClientExchangeDropsIDMismatch(t *testing.T) {
	addr, stop := startSpoofedReplyServer(t, func(bogus *Msg) { bogus.Id++ })
	defer stop()

	c := &Client{Timeout: 2 * time.Second}
	m := new(Msg)
	m.SetQuestion(mustParseName("example.org."), TypeA)

	r, _, err := c.Exchange(m, addr)
	if err != nil {
		t.Fatal(err)
	}
	if r.Id != m.Id {
		t.Fatalf("reply ID %d does not match query ID %d", r.Id, m.Id)
	}
	a, ok := r.Answer[0].(*A)
	if !ok || a.A.String() != "127.0.0.1" {
		t.Fatalf("expected the genuine reply (127.0.0.1), got %v", r.Answer)
	}
}

func TestClientExchangeDropsQRUnset(t *testing.T) {
	addr, stop := startSpoofedReplyServer(t, func(bogus *Msg) { bogus.Response = false })
	defer stop()

	c := &Client{Timeout: 2 * time.Second}
	m := new(Msg)
	m.SetQuestion(mustParseName("example.org."), TypeA)

	r, _, err := c.Exchange(m, addr)
	if err != nil {
		t.Fatal(err)
	}
	a, ok := r.Answer[0].(*A)
	if !ok || a.A.String() != "127.0.0.1" {
		t.Fatalf("expected the genuine reply (127.0.0.1), got %v", r.Answer)
	}
}

func TestClientExchangeDropsQuestionMismatch(t *testing.T) {
	other := mustParseName("not-what-was-asked.example.")
	addr, stop := startSpoofedReplyServer(t, func(bogus *Msg) { bogus.Question[0].Name = other })
	defer stop()

	c := &Client{Timeout: 2 * time.Second}
	m := new(Msg)
	m.SetQuestion(mustParseName("example.org."), TypeA)

	r, _, err := c.Exchange(m, addr)
	if err != nil {
		t.Fatal(err)
	}
	a, ok := r.Answer[0].(*A)
	if !ok || a.A.String() != "127.0.0.1" {
		t.Fatalf("expected the genuine reply (127.0.0.1), got %v", r.Answer)
	}
}

func TestValidResponse(t *testing.T) {
	m := new(Msg)
	m.SetQuestion(mustParseName("example.org."), TypeA)

	r := new(Msg)
	r.SetReply(m)
	if !validResponse(m, r) {
		t.Fatal("expected a proper SetReply to validate")
	}

	bad := new(Msg)
	bad.SetReply(m)
	bad.Id = m.Id + 1
	if validResponse(m, bad) {
		t.Fatal("expected ID mismatch to fail validation")
	}

	bad = new(Msg)
	bad.SetReply(m)
	bad.Response = false
	if validResponse(m, bad) {
		t.Fatal("expected an unset QR bit to fail validation")
	}

	bad = new(Msg)
	bad.SetReply(m)
	bad.Question[0].Qtype = TypeAAAA
	if validResponse(m, bad) {
		t.Fatal("expected a mismatched question to fail validation")
	}
}

func TestClientExchangeServersFallsBackOnError(t *testing.T) {
	addr, stop := startEchoServer(t)
	defer stop()

	c := &Client{Timeout: 500 * time.Millisecond}
	m := new(Msg)
	m.SetQuestion(mustParseName("example.org."), TypeA)

	// 127.0.0.1:1 should refuse immediately, so the second server in the
	// list is the one that actually answers.
	r, used, err := c.ExchangeServers(context.Background(), m, []string{"127.0.0.1:1", addr})
	if err != nil {
		t.Fatal(err)
	}
	if used != addr {
		t.Fatalf("expected fallback to %s, used %s", addr, used)
	}
	if len(r.Answer) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(r.Answer))
	}
}
