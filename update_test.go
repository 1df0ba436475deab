package dns

import (
	"net/netip"
	"testing"
)

func newUpdate(zone string) *Msg {
	m := new(Msg)
	m.SetUpdate(mustParseName(zone))
	return m
}

func TestUpdateInsertRemove(t *testing.T) {
	m := newUpdate("example.org.")

	a := &A{Hdr: RR_Header{Name: mustParseName("host.example.org."), Rrtype: TypeA, Class: ClassINET, Ttl: 300}, A: netip.MustParseAddr("192.0.2.1")}
	m.Insert([]RR{a})

	if len(m.Ns) != 1 {
		t.Fatalf("expected 1 update RR, got %d", len(m.Ns))
	}
	if m.Ns[0].Header().Class != ClassINET {
		t.Fatalf("insert must keep the original class, got %v", m.Ns[0].Header().Class)
	}

	m2 := newUpdate("example.org.")
	m2.RemoveRRset([]RR{a})
	rr := m2.Ns[0]
	if rr.Header().Class != ClassANY || rr.Header().Rrtype != TypeA {
		t.Fatalf("RemoveRRset should produce an ANY-class wildcard RR for the rrset, got %v/%v", rr.Header().Class, rr.Header().Rrtype)
	}

	m3 := newUpdate("example.org.")
	m3.RemoveName([]RR{a})
	rr3 := m3.Ns[0]
	if rr3.Header().Class != ClassANY || rr3.Header().Rrtype != TypeANY {
		t.Fatalf("RemoveName should produce an ANY/ANY wildcard RR, got %v/%v", rr3.Header().Class, rr3.Header().Rrtype)
	}
}

func TestUpdatePrerequisites(t *testing.T) {
	m := newUpdate("example.org.")
	a := &A{Hdr: RR_Header{Name: mustParseName("host.example.org."), Rrtype: TypeA, Class: ClassINET}, A: netip.MustParseAddr("192.0.2.1")}

	m.NameUsed([]RR{a})
	if m.Answer[0].Header().Class != ClassANY {
		t.Fatalf("NameUsed must use ClassANY, got %v", m.Answer[0].Header().Class)
	}

	m2 := newUpdate("example.org.")
	m2.NameNotUsed([]RR{a})
	if m2.Answer[0].Header().Class != ClassNONE {
		t.Fatalf("NameNotUsed must use ClassNONE, got %v", m2.Answer[0].Header().Class)
	}

	m3 := newUpdate("example.org.")
	m3.RRsetUsed([]RR{a})
	if m3.Answer[0].Header().Rrtype != TypeA || m3.Answer[0].Header().Class != ClassANY {
		t.Fatalf("RRsetUsed must keep type and use ClassANY, got %v/%v", m3.Answer[0].Header().Rrtype, m3.Answer[0].Header().Class)
	}
}
