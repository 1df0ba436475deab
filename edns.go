package dns

import (
	"encoding/hex"
	"strconv"
)

// EDNS0 option codes.
const (
	EDNS0LLQ          = 0x1  // long lived queries: http://tools.ietf.org/html/draft-sekar-dns-llq-01
	EDNS0UL           = 0x2  // update lease draft: http://files.dns-sd.org/draft-sekar-dns-ul.txt
	EDNS0NSID         = 0x3  // nsid (See RFC 5001)
	EDNS0ESU          = 0x4  // ENUM Source-URI draft: https://tools.ietf.org/html/draft-kaplan-enum-source-uri-00
	EDNS0DAU          = 0x5  // DNSSEC Algorithm Understood
	EDNS0DHU          = 0x6  // DS Hash Understood
	EDNS0N3U          = 0x7  // NSEC3 Hash Understood
	EDNS0SUBNET       = 0x8  // client-subnet (RFC 7871)
	EDNS0EXPIRE       = 0x9  // EDNS0 expire
	EDNS0COOKIE       = 0xa  // EDNS0 Cookie
	EDNS0TCPKEEPALIVE = 0xb  // EDNS0 TCP keepalive (See RFC 7828)
	EDNS0PADDING      = 0xc  // EDNS0 padding (See RFC 7830)
	EDNS0EDE          = 0xf  // EDNS0 extended DNS errors (See RFC 8914)
	EDNS0LOCALSTART   = 0xFDE9
	EDNS0LOCALEND     = 0xFFFE
)

// OPT is the EDNS0 pseudo-RR, see RFC 6891. The "header" reuses ordinary RR
// fields in unusual ways: Name must be the root, Class carries the UDP
// payload size and Ttl packs the extended rcode, version and flag bits.
type OPT struct {
	Hdr    RR_Header
	Option []EDNS0 `dns:"opt"`
}

func (rr *OPT) Header() *RR_Header { return &rr.Hdr }

func (rr *OPT) String() string {
	s := "\n;; OPT PSEUDOSECTION:\n; EDNS: version " + strconv.Itoa(int(rr.Version())) +
		"; flags: "
	if rr.Do() {
		s += "do"
	}
	s += "; udp: " + strconv.Itoa(int(rr.UDPSize()))
	for _, o := range rr.Option {
		s += "\n; " + o.String()
	}
	return s
}

func (rr *OPT) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	return packDataOpt(rr.Option, msg, off)
}

func (rr *OPT) unpack(msg []byte, off int) (int, error) {
	opt, off, err := unpackDataOpt(msg, off)
	rr.Option = opt
	return off, err
}

func (rr *OPT) len(off int, compression map[Name]struct{}) int {
	l := rr.Hdr.len(off, compression)
	for _, o := range rr.Option {
		b, _ := o.pack()
		l += 4 + len(b)
	}
	return l
}

func (rr *OPT) copy() RR {
	opts := make([]EDNS0, len(rr.Option))
	copy(opts, rr.Option)
	return &OPT{rr.Hdr, opts}
}

func (rr *OPT) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*OPT)
	if !ok {
		return false
	}
	if len(rr.Option) != len(r2.Option) {
		return false
	}
	for i, o := range rr.Option {
		b1, _ := o.pack()
		b2, _ := r2.Option[i].pack()
		if string(b1) != string(b2) || o.Option() != r2.Option[i].Option() {
			return false
		}
	}
	return true
}

// Version returns the EDNS version used. Only zero is defined.
func (rr *OPT) Version() uint8 { return uint8(rr.Hdr.Ttl & 0x00FF0000 >> 16) }

// SetVersion sets the version of EDNS.
func (rr *OPT) SetVersion(v uint8) {
	rr.Hdr.Ttl = rr.Hdr.Ttl&0xFF00FFFF | uint32(v)<<16
}

// ExtendedRcode returns the EDNS extended RCODE bits (the upper 8 bits of
// the full 12-bit RCODE), already shifted into position so the caller can
// OR it with the 4-bit RCODE carried in the message header.
func (rr *OPT) ExtendedRcode() int {
	return int(rr.Hdr.Ttl&0xFF000000>>24) << 4
}

// SetExtendedRcode sets the EDNS extended RCODE field based on the full
// 12-bit rcode.
func (rr *OPT) SetExtendedRcode(rcode uint16) {
	rr.Hdr.Ttl = rr.Hdr.Ttl&0x00FFFFFF | uint32(rcode>>4)<<24
}

// UDPSize returns the UDP buffer size advertised in the OPT record.
func (rr *OPT) UDPSize() uint16 { return uint16(rr.Hdr.Class) }

// SetUDPSize sets the UDP buffer size of this edns RR.
func (rr *OPT) SetUDPSize(size uint16) { rr.Hdr.Class = Class(size) }

// Do returns the value of the DO (DNSSEC OK) bit.
func (rr *OPT) Do() bool { return rr.Hdr.Ttl&_DO == _DO }

// SetDo sets the DO (DNSSEC OK) bit.
func (rr *OPT) SetDo(do ...bool) {
	if len(do) == 1 {
		if do[0] {
			rr.Hdr.Ttl |= _DO
		} else {
			rr.Hdr.Ttl &^= _DO
		}
		return
	}
	rr.Hdr.Ttl |= _DO
}

const _DO = 1 << 15

// EDNS0 defines an EDNS0 Option. An OPT RR carries a slice of these.
type EDNS0 interface {
	// Option returns the option code for the option.
	Option() uint16
	// pack returns the bytes of the option data.
	pack() ([]byte, error)
	// unpack sets the option data from b.
	unpack(b []byte) error
	// String returns the string representation of the option.
	String() string
}

func makeDataOpt(code uint16) EDNS0 {
	switch code {
	case EDNS0NSID:
		return new(EDNS0_NSID)
	case EDNS0COOKIE:
		return new(EDNS0_COOKIE)
	case EDNS0SUBNET:
		return new(EDNS0_SUBNET)
	case EDNS0TCPKEEPALIVE:
		return new(EDNS0_TCP_KEEPALIVE)
	default:
		e := new(EDNS0_LOCAL)
		e.Code = code
		return e
	}
}

// EDNS0_NSID option, see RFC 5001.
type EDNS0_NSID struct {
	Code uint16 // Always EDNS0NSID
	Nsid string // This string needs to be hex encoded
}

func (e *EDNS0_NSID) Option() uint16 { return EDNS0NSID }
func (e *EDNS0_NSID) pack() ([]byte, error) {
	return hex.DecodeString(e.Nsid)
}
func (e *EDNS0_NSID) unpack(b []byte) error {
	e.Nsid = hex.EncodeToString(b)
	return nil
}
func (e *EDNS0_NSID) String() string { return "NSID: " + e.Nsid }

// EDNS0_COOKIE option, see RFC 7873.
type EDNS0_COOKIE struct {
	Code   uint16 // Always EDNS0COOKIE
	Cookie string // Hex-encoded client (+ server) cookie
}

func (e *EDNS0_COOKIE) Option() uint16        { return EDNS0COOKIE }
func (e *EDNS0_COOKIE) pack() ([]byte, error) { return hex.DecodeString(e.Cookie) }
func (e *EDNS0_COOKIE) unpack(b []byte) error { e.Cookie = hex.EncodeToString(b); return nil }
func (e *EDNS0_COOKIE) String() string        { return "COOKIE: " + e.Cookie }

// EDNS0_TCP_KEEPALIVE option, see RFC 7828.
type EDNS0_TCP_KEEPALIVE struct {
	Code    uint16 // Always EDNS0TCPKEEPALIVE
	Timeout uint16 // in units of 100ms, omitted if length is 0
	length  uint16
}

func (e *EDNS0_TCP_KEEPALIVE) Option() uint16 { return EDNS0TCPKEEPALIVE }

func (e *EDNS0_TCP_KEEPALIVE) pack() ([]byte, error) {
	if e.Timeout == 0 && e.length == 0 {
		return []byte{}, nil
	}
	b := make([]byte, 2)
	b[0] = byte(e.Timeout >> 8)
	b[1] = byte(e.Timeout)
	return b, nil
}

func (e *EDNS0_TCP_KEEPALIVE) unpack(b []byte) error {
	switch len(b) {
	case 0:
		e.length = 0
		return nil
	case 2:
		e.Timeout = uint16(b[0])<<8 | uint16(b[1])
		e.length = 2
		return nil
	default:
		return &Error{err: "EDNS0 TCP keepalive length must be 0 or 2"}
	}
}

func (e *EDNS0_TCP_KEEPALIVE) String() string {
	if e.length == 0 {
		return "KEEPALIVE"
	}
	return "KEEPALIVE: " + strconv.Itoa(int(e.Timeout)) + "*100ms"
}

// EDNS0_SUBNET option, see RFC 7871.
type EDNS0_SUBNET struct {
	Code          uint16 // Always EDNS0SUBNET
	Family        uint16 // 1 for IPv4, 2 for IPv6
	SourceNetmask uint8
	SourceScope   uint8
	Address       []byte
}

func (e *EDNS0_SUBNET) Option() uint16 { return EDNS0SUBNET }

func (e *EDNS0_SUBNET) pack() ([]byte, error) {
	b := make([]byte, 4, 4+len(e.Address))
	b[0], b[1] = byte(e.Family>>8), byte(e.Family)
	b[2] = e.SourceNetmask
	b[3] = e.SourceScope
	b = append(b, e.Address...)
	return b, nil
}

func (e *EDNS0_SUBNET) unpack(b []byte) error {
	if len(b) < 4 {
		return ErrBuf
	}
	e.Family = uint16(b[0])<<8 | uint16(b[1])
	e.SourceNetmask = b[2]
	e.SourceScope = b[3]
	e.Address = append([]byte{}, b[4:]...)
	return nil
}

func (e *EDNS0_SUBNET) String() string {
	return "SUBNET: " + strconv.Itoa(int(e.Family)) + " " +
		strconv.Itoa(int(e.SourceNetmask)) + " " + strconv.Itoa(int(e.SourceScope))
}

// EDNS0_LOCAL option, used for local/experimental options outside of the
// registered range, or as a fallback for any option code this package
// does not otherwise give a dedicated struct.
type EDNS0_LOCAL struct {
	Code uint16
	Data []byte
}

func (e *EDNS0_LOCAL) Option() uint16 { return e.Code }
func (e *EDNS0_LOCAL) pack() ([]byte, error) {
	return append([]byte{}, e.Data...), nil
}
func (e *EDNS0_LOCAL) unpack(b []byte) error {
	e.Data = append([]byte{}, b...)
	return nil
}
func (e *EDNS0_LOCAL) String() string {
	return "LOCAL OPT: " + strconv.Itoa(int(e.Code)) + ":0x" + hex.EncodeToString(e.Data)
}
