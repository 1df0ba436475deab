package dns

import "testing"

func TestFieldA(t *testing.T) {
	rr := testRR("www.example.org. 3600 IN A 127.0.0.1")
	if n := NumField(rr); n != 1 {
		t.Fatalf("NumField(A) = %d, want 1", n)
	}
	if s := Field(rr, 1); s != "127.0.0.1" {
		t.Fatalf("Field(A, 1) = %q, want %q", s, "127.0.0.1")
	}
}

func TestFieldTxt(t *testing.T) {
	rr := testRR(`www.example.org. 3600 IN TXT "a" "b" "c"`)
	if s := Field(rr, 1); s != "a b c" {
		t.Fatalf("Field(TXT, 1) = %q, want %q", s, "a b c")
	}
}

func TestFieldNsecTypeBitMap(t *testing.T) {
	rr := testRR("example.org. 3600 IN NSEC a.example.org. A NS SOA")
	if s := Field(rr, 2); s != "A NS SOA" {
		t.Fatalf("Field(NSEC, 2) = %q, want %q", s, "A NS SOA")
	}
}
