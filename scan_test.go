package dns

import "testing"

func TestNewRRKeptTypes(t *testing.T) {
	cases := []struct {
		line    string
		rrtype  uint16
		wantErr bool
	}{
		{"example.org. 3600 IN A 192.0.2.1", TypeA, false},
		{"example.org. 3600 IN AAAA 2001:db8::1", TypeAAAA, false},
		{"example.org. 3600 IN NS ns1.example.org.", TypeNS, false},
		{"www.example.org. 3600 IN CNAME example.org.", TypeCNAME, false},
		{"example.org. 3600 IN MX 10 mx.example.org.", TypeMX, false},
		{"example.org. 3600 IN SOA ns1.example.org. hostmaster.example.org. 1 7200 3600 1209600 3600", TypeSOA, false},
		{`example.org. 3600 IN TXT "hello world"`, TypeTXT, false},
		{"1.2.0.192.in-addr.arpa. 3600 IN PTR example.org.", TypePTR, false},
		{"_sip._tcp.example.org. 3600 IN SRV 10 20 5060 sip.example.org.", TypeSRV, false},
		{"example.org. 3600 IN CAA 0 issue \"letsencrypt.org\"", TypeCAA, false},
		{"_443._tcp.example.org. 3600 IN TLSA 3 1 1 d2abde240d7cd3ee6b4b28c54df034b9", TypeTLSA, false},
		{"example.org. 3600 IN SSHFP 1 1 123456789abcdef67890123456789abcdef67890", TypeSSHFP, false},
		{"example.org. 3600 IN garbage", 0, true},
	}

	for _, tc := range cases {
		rr, err := NewRR(tc.line)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected a parse error, got none", tc.line)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.line, err)
		}
		if rr.Header().Rrtype != tc.rrtype {
			t.Fatalf("%q: got type %d, want %d", tc.line, rr.Header().Rrtype, tc.rrtype)
		}
	}
}

func TestNewRRRoundTripsThroughWire(t *testing.T) {
	rr, err := NewRR("example.org. 300 IN MX 10 mx.example.org.")
	if err != nil {
		t.Fatal(err)
	}

	m := new(Msg)
	m.Answer = []RR{rr}
	buf, err := m.Pack()
	if err != nil {
		t.Fatal(err)
	}

	out := new(Msg)
	if err := out.Unpack(buf); err != nil {
		t.Fatal(err)
	}
	if len(out.Answer) != 1 || out.Answer[0].Header().Rrtype != TypeMX {
		t.Fatalf("round trip lost the MX record: %#v", out.Answer)
	}
}

func TestNewRREmptyLine(t *testing.T) {
	rr, err := NewRR("")
	if err != nil || rr != nil {
		t.Fatalf("expected nil, nil for an empty line, got %v, %v", rr, err)
	}
}
