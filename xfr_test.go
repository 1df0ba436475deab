package dns

import (
	"context"
	"net"
	"net/netip"
	"testing"
	"time"
)

func soaRR(serial uint32) *SOA {
	return &SOA{
		Hdr:     RR_Header{Name: mustParseName("example.org."), Rrtype: TypeSOA, Class: ClassINET, Ttl: 3600},
		Ns:      mustParseName("ns1.example.org."),
		Mbox:    mustParseName("hostmaster.example.org."),
		Serial:  serial,
		Refresh: 7200,
		Retry:   3600,
		Expire:  1209600,
		Minttl:  3600,
	}
}

// startAxfrServer accepts one connection, reads one query from it and
// replies with the fixed sequence of answers in msgs, one DNS message per
// TCP frame.
func startAxfrServer(t *testing.T, msgs [][]RR) (addr string, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		if _, err := readTCPFramed(conn); err != nil {
			return
		}
		for _, answers := range msgs {
			r := new(Msg)
			r.Response = true
			r.Answer = answers
			out, err := r.Pack()
			if err != nil {
				return
			}
			if err := writeTCPFramed(conn, out); err != nil {
				return
			}
		}
	}()

	return ln.Addr().String(), func() { ln.Close() }
}

func TestTransferAxfr(t *testing.T) {
	addr, stop := startAxfrServer(t, [][]RR{
		{soaRR(5), &A{Hdr: RR_Header{Name: mustParseName("example.org."), Rrtype: TypeA, Class: ClassINET, Ttl: 300}, A: netip.MustParseAddr("192.0.2.1")}},
		{soaRR(5)},
	})
	defer stop()

	m := new(Msg)
	m.SetAxfr(mustParseName("example.org."))

	c := &Client{Timeout: 2 * time.Second}
	env, err := c.Transfer(context.Background(), m, addr)
	if err != nil {
		t.Fatal(err)
	}

	var got []RR
	for e := range env {
		if e.Error != nil {
			t.Fatal(e.Error)
		}
		got = append(got, e.RR...)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 RRs across the transfer, got %d", len(got))
	}
	if _, ok := got[0].(*SOA); !ok {
		t.Fatalf("expected the first RR to be a SOA, got %T", got[0])
	}
}

// TestTransferAxfrClosingSoaSharesMessage covers the closing SOA arriving
// packed together with other RRs in the final TCP message, rather than as
// a lone trailing RR of its own — axfrDone must scan every RR in the
// message, not just the last one, or the transfer never terminates.
func TestTransferAxfrClosingSoaSharesMessage(t *testing.T) {
	mxRR := &MX{
		Hdr:        RR_Header{Name: mustParseName("example.org."), Rrtype: TypeMX, Class: ClassINET, Ttl: 300},
		Preference: 10,
		Mx:         mustParseName("mail.example.org."),
	}
	addr, stop := startAxfrServer(t, [][]RR{
		{soaRR(5)},
		{&A{Hdr: RR_Header{Name: mustParseName("example.org."), Rrtype: TypeA, Class: ClassINET, Ttl: 300}, A: netip.MustParseAddr("192.0.2.1")}},
		{&A{Hdr: RR_Header{Name: mustParseName("www.example.org."), Rrtype: TypeA, Class: ClassINET, Ttl: 300}, A: netip.MustParseAddr("192.0.2.2")}, mxRR, soaRR(5)},
	})
	defer stop()

	m := new(Msg)
	m.SetAxfr(mustParseName("example.org."))

	c := &Client{Timeout: 2 * time.Second}
	env, err := c.Transfer(context.Background(), m, addr)
	if err != nil {
		t.Fatal(err)
	}

	var got []RR
	for e := range env {
		if e.Error != nil {
			t.Fatal(e.Error)
		}
		got = append(got, e.RR...)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 RRs across the transfer (SOA, A, A, MX, SOA), got %d", len(got))
	}
	if _, ok := got[len(got)-1].(*SOA); !ok {
		t.Fatalf("expected the last RR to be the closing SOA, got %T", got[len(got)-1])
	}
}

func TestAxfrDone(t *testing.T) {
	soa5 := soaRR(5)
	mxRR := &MX{Hdr: RR_Header{Name: mustParseName("example.org."), Rrtype: TypeMX, Class: ClassINET, Ttl: 300}, Mx: mustParseName("mail.example.org.")}

	if axfrDone([]RR{soa5}, 5, true) {
		t.Fatal("a lone opening SOA must not be treated as closing")
	}
	if !axfrDone([]RR{soa5}, 5, false) {
		t.Fatal("a lone SOA matching the opening serial must close the transfer when it isn't the opening message")
	}
	if !axfrDone([]RR{mxRR, soa5}, 5, false) {
		t.Fatal("a closing SOA sharing a message with other RRs must still be detected")
	}
	if axfrDone([]RR{mxRR}, 5, false) {
		t.Fatal("a message with no SOA must not close the transfer")
	}
}

func TestTransferRejectsWrongQtype(t *testing.T) {
	m := new(Msg)
	m.SetQuestion(mustParseName("example.org."), TypeA)

	c := &Client{Timeout: time.Second}
	if _, err := c.Transfer(context.Background(), m, "127.0.0.1:1"); err == nil {
		t.Fatal("expected an error for a non-AXFR/IXFR question")
	}
}

func TestNotifyListenerRoundTrip(t *testing.T) {
	l, err := ListenNotify("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	addr := l.conn.LocalAddr().(*net.UDPAddr)

	client, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	notify := new(Msg)
	notify.Opcode = OpcodeNotify
	notify.SetQuestion(mustParseName("example.org."), TypeSOA)
	buf, err := notify.Pack()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Write(buf); err != nil {
		t.Fatal(err)
	}

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgs, srcs, err := l.Accept()
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 NOTIFY, got %d", len(msgs))
	}
	if err := l.Reply(msgs[0], srcs[0]); err != nil {
		t.Fatal(err)
	}

	ack := make([]byte, DefaultMsgSize)
	n, err := client.Read(ack)
	if err != nil {
		t.Fatal(err)
	}
	reply := new(Msg)
	if err := reply.Unpack(ack[:n]); err != nil {
		t.Fatal(err)
	}
	if reply.Id != notify.Id {
		t.Fatalf("reply ID %d does not match NOTIFY ID %d", reply.Id, notify.Id)
	}
}
