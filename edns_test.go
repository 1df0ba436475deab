package dns

import "testing"

func TestOPTVersionRcodeSize(t *testing.T) {
	m := new(Msg)
	m.SetQuestion(mustParseName("example.org."), TypeA)
	m.SetEdns0(4096, true)

	opt := m.IsEdns0()
	if opt == nil {
		t.Fatal("expected an OPT record after SetEdns0")
	}
	if opt.UDPSize() != 4096 {
		t.Fatalf("UDPSize = %d, want 4096", opt.UDPSize())
	}
	if !opt.Do() {
		t.Fatal("expected DO bit to be set")
	}

	opt.SetVersion(1)
	opt.SetExtendedRcode(RcodeBadVers) // 16, extended rcode byte should be 1
	if opt.Version() != 1 {
		t.Fatalf("Version() = %d, want 1", opt.Version())
	}
	if opt.ExtendedRcode() != RcodeBadVers&0xFFF0 {
		t.Fatalf("ExtendedRcode() = %d, want %d", opt.ExtendedRcode(), RcodeBadVers&0xFFF0)
	}
}

func TestOPTOptionRoundTrip(t *testing.T) {
	m := new(Msg)
	m.SetQuestion(mustParseName("example.org."), TypeA)
	m.SetEdns0(1232, false)

	opt := m.IsEdns0()
	opt.Option = append(opt.Option,
		&EDNS0_NSID{Code: EDNS0NSID, Nsid: "beef"},
		&EDNS0_COOKIE{Code: EDNS0COOKIE, Cookie: "1122334455667788"},
		&EDNS0_SUBNET{Code: EDNS0SUBNET, Family: 1, SourceNetmask: 24, Address: []byte{192, 0, 2, 0}},
	)

	buf, err := m.Pack()
	if err != nil {
		t.Fatal(err)
	}

	out := new(Msg)
	if err := out.Unpack(buf); err != nil {
		t.Fatal(err)
	}

	got := out.IsEdns0()
	if got == nil {
		t.Fatal("unpacked message lost its OPT record")
	}
	if len(got.Option) != 3 {
		t.Fatalf("expected 3 options, got %d", len(got.Option))
	}

	nsid, ok := got.Option[0].(*EDNS0_NSID)
	if !ok || nsid.Nsid != "beef" {
		t.Fatalf("NSID option round-trip failed: %#v", got.Option[0])
	}
	cookie, ok := got.Option[1].(*EDNS0_COOKIE)
	if !ok || cookie.Cookie != "1122334455667788" {
		t.Fatalf("COOKIE option round-trip failed: %#v", got.Option[1])
	}
	subnet, ok := got.Option[2].(*EDNS0_SUBNET)
	if !ok || subnet.SourceNetmask != 24 || len(subnet.Address) != 4 {
		t.Fatalf("SUBNET option round-trip failed: %#v", got.Option[2])
	}
}

func TestEDNS0LocalFallback(t *testing.T) {
	o := makeDataOpt(0xFDE9)
	local, ok := o.(*EDNS0_LOCAL)
	if !ok {
		t.Fatalf("expected *EDNS0_LOCAL for an unregistered code, got %T", o)
	}
	if local.Code != 0xFDE9 {
		t.Fatalf("Code = %#x, want 0xFDE9", local.Code)
	}
}

func TestEDNS0TCPKeepaliveEmpty(t *testing.T) {
	e := new(EDNS0_TCP_KEEPALIVE)
	b, err := e.pack()
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 0 {
		t.Fatalf("expected empty packed form for a zero-value keepalive option, got %v", b)
	}
	if err := e.unpack([]byte{1}); err == nil {
		t.Fatal("expected an error for a 1-byte keepalive option")
	}
}
