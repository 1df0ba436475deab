package dns

// Rdata pack/unpack/len/copy methods for the resource record set this
// package implements. Mirrors the shape of a generated zmsg.go, but
// hand-written: only the types the resolver/updater/authentication
// components actually use get an entry.

import "strconv"

// TypeToRR maps a wire type to a constructor for its RR value.
var TypeToRR = map[Type]func() RR{
	TypeA:          func() RR { return new(A) },
	TypeNS:         func() RR { return new(NS) },
	TypeCNAME:      func() RR { return new(CNAME) },
	TypeSOA:        func() RR { return new(SOA) },
	TypePTR:        func() RR { return new(PTR) },
	TypeMX:         func() RR { return new(MX) },
	TypeTXT:        func() RR { return new(TXT) },
	TypeAAAA:       func() RR { return new(AAAA) },
	TypeSRV:        func() RR { return new(SRV) },
	TypeNAPTR:      func() RR { return new(NAPTR) },
	TypeCAA:        func() RR { return new(CAA) },
	TypeTLSA:       func() RR { return new(TLSA) },
	TypeSSHFP:      func() RR { return new(SSHFP) },
	TypeOPT:        func() RR { return new(OPT) },
	TypeDNSKEY:     func() RR { return new(DNSKEY) },
	TypeCDNSKEY:    func() RR { return new(CDNSKEY) },
	TypeRRSIG:      func() RR { return new(RRSIG) },
	TypeSIG:        func() RR { return new(SIG) },
	TypeDS:         func() RR { return new(DS) },
	TypeCDS:        func() RR { return new(CDS) },
	TypeNSEC:       func() RR { return new(NSEC) },
	TypeNSEC3:      func() RR { return new(NSEC3) },
	TypeNSEC3PARAM: func() RR { return new(NSEC3PARAM) },
	TypeANY:        func() RR { return new(ANY) },
	TypeNULL:       func() RR { return new(NULL) },
	TypeTSIG:       func() RR { return new(TSIG) },
}

// TypeToString maps a wire type to its mnemonic. It holds the types in
// TypeToRR plus the AXFR and IXFR query types; other types, which decode
// as RFC3597, have no entry here.
var TypeToString = map[uint16]string{
	uint16(TypeA):          "A",
	uint16(TypeNS):         "NS",
	uint16(TypeCNAME):      "CNAME",
	uint16(TypeSOA):        "SOA",
	uint16(TypePTR):        "PTR",
	uint16(TypeMX):         "MX",
	uint16(TypeTXT):        "TXT",
	uint16(TypeAAAA):       "AAAA",
	uint16(TypeSRV):        "SRV",
	uint16(TypeNAPTR):      "NAPTR",
	uint16(TypeCAA):        "CAA",
	uint16(TypeTLSA):       "TLSA",
	uint16(TypeSSHFP):      "SSHFP",
	uint16(TypeOPT):        "OPT",
	uint16(TypeDNSKEY):     "DNSKEY",
	uint16(TypeCDNSKEY):    "CDNSKEY",
	uint16(TypeRRSIG):      "RRSIG",
	uint16(TypeSIG):        "SIG",
	uint16(TypeDS):         "DS",
	uint16(TypeCDS):        "CDS",
	uint16(TypeNSEC):       "NSEC",
	uint16(TypeNSEC3):      "NSEC3",
	uint16(TypeNSEC3PARAM): "NSEC3PARAM",
	uint16(TypeANY):        "ANY",
	uint16(TypeNULL):       "NULL",
	uint16(TypeTSIG):       "TSIG",
	uint16(TypeAXFR):       "AXFR",
	uint16(TypeIXFR):       "IXFR",
}

// A

func (rr *A) Header() *RR_Header { return &rr.Hdr }
func (rr *A) String() string     { return rr.Hdr.String() + rr.A.String() }

func (rr *A) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	return packDataA(rr.A, msg, off)
}
func (rr *A) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.A, off, err = unpackDataA(msg, off)
	return off, err
}
func (rr *A) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + 4
}
func (rr *A) copy() RR { return &A{rr.Hdr, rr.A} }
func (rr *A) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*A)
	if !ok {
		return false
	}
	return rr.A == r2.A
}

// AAAA

func (rr *AAAA) Header() *RR_Header { return &rr.Hdr }
func (rr *AAAA) String() string     { return rr.Hdr.String() + rr.AAAA.String() }

func (rr *AAAA) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	return packDataAAAA(rr.AAAA, msg, off)
}
func (rr *AAAA) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.AAAA, off, err = unpackDataAAAA(msg, off)
	return off, err
}
func (rr *AAAA) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + 16
}
func (rr *AAAA) copy() RR { return &AAAA{rr.Hdr, rr.AAAA} }
func (rr *AAAA) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*AAAA)
	if !ok {
		return false
	}
	return rr.AAAA == r2.AAAA
}

// NS

func (rr *NS) Header() *RR_Header { return &rr.Hdr }
func (rr *NS) String() string     { return rr.Hdr.String() + rr.Ns.String() }

func (rr *NS) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	return packDomainName(rr.Ns, msg, off, compression, compress)
}
func (rr *NS) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Ns, off, err = UnpackDomainName(msg, off)
	return off, err
}
func (rr *NS) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + domainNameLen(rr.Ns, off+rr.Hdr.len(off, compression), compression, true)
}
func (rr *NS) copy() RR { return &NS{rr.Hdr, rr.Ns} }
func (rr *NS) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*NS)
	if !ok {
		return false
	}
	return isDuplicateName(rr.Ns, r2.Ns)
}

// CNAME

func (rr *CNAME) Header() *RR_Header { return &rr.Hdr }
func (rr *CNAME) String() string     { return rr.Hdr.String() + rr.Target.String() }

func (rr *CNAME) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	return packDomainName(rr.Target, msg, off, compression, compress)
}
func (rr *CNAME) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Target, off, err = UnpackDomainName(msg, off)
	return off, err
}
func (rr *CNAME) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + domainNameLen(rr.Target, off+rr.Hdr.len(off, compression), compression, true)
}
func (rr *CNAME) copy() RR { return &CNAME{rr.Hdr, rr.Target} }
func (rr *CNAME) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*CNAME)
	if !ok {
		return false
	}
	return isDuplicateName(rr.Target, r2.Target)
}

// SOA

func (rr *SOA) Header() *RR_Header { return &rr.Hdr }
func (rr *SOA) String() string {
	return rr.Hdr.String() + rr.Ns.String() + " " + rr.Mbox.String() +
		" " + strconv.FormatInt(int64(rr.Serial), 10) +
		" " + strconv.FormatInt(int64(rr.Refresh), 10) +
		" " + strconv.FormatInt(int64(rr.Retry), 10) +
		" " + strconv.FormatInt(int64(rr.Expire), 10) +
		" " + strconv.FormatInt(int64(rr.Minttl), 10)
}

func (rr *SOA) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packDomainName(rr.Ns, msg, off, compression, compress)
	if err != nil {
		return len(msg), err
	}
	off, err = packDomainName(rr.Mbox, msg, off, compression, compress)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint32(rr.Serial, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint32(rr.Refresh, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint32(rr.Retry, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint32(rr.Expire, msg, off)
	if err != nil {
		return len(msg), err
	}
	return packUint32(rr.Minttl, msg, off)
}
func (rr *SOA) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Ns, off, err = UnpackDomainName(msg, off)
	if err != nil {
		return off, err
	}
	rr.Mbox, off, err = UnpackDomainName(msg, off)
	if err != nil {
		return off, err
	}
	rr.Serial, off, err = unpackUint32(msg, off)
	if err != nil {
		return off, err
	}
	rr.Refresh, off, err = unpackUint32(msg, off)
	if err != nil {
		return off, err
	}
	rr.Retry, off, err = unpackUint32(msg, off)
	if err != nil {
		return off, err
	}
	rr.Expire, off, err = unpackUint32(msg, off)
	if err != nil {
		return off, err
	}
	rr.Minttl, off, err = unpackUint32(msg, off)
	return off, err
}
func (rr *SOA) len(off int, compression map[Name]struct{}) int {
	l := rr.Hdr.len(off, compression)
	off += l
	nsl := domainNameLen(rr.Ns, off, compression, true)
	off += nsl
	mboxl := domainNameLen(rr.Mbox, off, compression, true)
	return l + nsl + mboxl + 20
}
func (rr *SOA) copy() RR {
	return &SOA{rr.Hdr, rr.Ns, rr.Mbox, rr.Serial, rr.Refresh, rr.Retry, rr.Expire, rr.Minttl}
}
func (rr *SOA) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*SOA)
	if !ok {
		return false
	}
	if !isDuplicateName(rr.Ns, r2.Ns) || !isDuplicateName(rr.Mbox, r2.Mbox) {
		return false
	}
	return rr.Serial == r2.Serial && rr.Refresh == r2.Refresh && rr.Retry == r2.Retry &&
		rr.Expire == r2.Expire && rr.Minttl == r2.Minttl
}

// PTR

func (rr *PTR) Header() *RR_Header { return &rr.Hdr }
func (rr *PTR) String() string     { return rr.Hdr.String() + rr.Ptr.String() }

func (rr *PTR) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	return packDomainName(rr.Ptr, msg, off, compression, compress)
}
func (rr *PTR) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Ptr, off, err = UnpackDomainName(msg, off)
	return off, err
}
func (rr *PTR) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + domainNameLen(rr.Ptr, off+rr.Hdr.len(off, compression), compression, true)
}
func (rr *PTR) copy() RR { return &PTR{rr.Hdr, rr.Ptr} }
func (rr *PTR) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*PTR)
	if !ok {
		return false
	}
	return isDuplicateName(rr.Ptr, r2.Ptr)
}

// MX

func (rr *MX) Header() *RR_Header { return &rr.Hdr }
func (rr *MX) String() string {
	return rr.Hdr.String() + strconv.Itoa(int(rr.Preference)) + " " + rr.Mx.String()
}

func (rr *MX) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packUint16(rr.Preference, msg, off)
	if err != nil {
		return len(msg), err
	}
	return packDomainName(rr.Mx, msg, off, compression, compress)
}
func (rr *MX) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Preference, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.Mx, off, err = UnpackDomainName(msg, off)
	return off, err
}
func (rr *MX) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + 2 + domainNameLen(rr.Mx, off+rr.Hdr.len(off, compression)+2, compression, true)
}
func (rr *MX) copy() RR { return &MX{rr.Hdr, rr.Preference, rr.Mx} }
func (rr *MX) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*MX)
	if !ok {
		return false
	}
	return rr.Preference == r2.Preference && isDuplicateName(rr.Mx, r2.Mx)
}

// TXT

func (rr *TXT) Header() *RR_Header { return &rr.Hdr }
func (rr *TXT) String() string     { return rr.Hdr.String() + rr.Txt.String() }

func (rr *TXT) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	raw := []byte(rr.Txt.encoded)
	if len(msg[off:]) < len(raw) {
		return len(msg), ErrBuf
	}
	off += copy(msg[off:], raw)
	return off, nil
}
func (rr *TXT) unpack(msg []byte, off int) (int, error) {
	rr.Txt = TxtStrings{encoded: string(msg[off:])}
	return len(msg), nil
}
func (rr *TXT) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + rr.Txt.EncodedLen()
}
func (rr *TXT) copy() RR { return &TXT{rr.Hdr, rr.Txt} }
func (rr *TXT) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*TXT)
	if !ok {
		return false
	}
	return rr.Txt == r2.Txt
}

// SRV

func (rr *SRV) Header() *RR_Header { return &rr.Hdr }
func (rr *SRV) String() string {
	return rr.Hdr.String() + strconv.Itoa(int(rr.Priority)) +
		" " + strconv.Itoa(int(rr.Weight)) +
		" " + strconv.Itoa(int(rr.Port)) +
		" " + rr.Target.String()
}

func (rr *SRV) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packUint16(rr.Priority, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint16(rr.Weight, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint16(rr.Port, msg, off)
	if err != nil {
		return len(msg), err
	}
	return packDomainName(rr.Target, msg, off, compression, false)
}
func (rr *SRV) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Priority, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.Weight, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.Port, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.Target, off, err = UnpackDomainName(msg, off)
	return off, err
}
func (rr *SRV) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + 6 + domainNameLen(rr.Target, off+rr.Hdr.len(off, compression)+6, compression, false)
}
func (rr *SRV) copy() RR { return &SRV{rr.Hdr, rr.Priority, rr.Weight, rr.Port, rr.Target} }
func (rr *SRV) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*SRV)
	if !ok {
		return false
	}
	return rr.Priority == r2.Priority && rr.Weight == r2.Weight && rr.Port == r2.Port &&
		isDuplicateName(rr.Target, r2.Target)
}

// NAPTR

func (rr *NAPTR) Header() *RR_Header { return &rr.Hdr }
func (rr *NAPTR) String() string {
	return rr.Hdr.String() + strconv.Itoa(int(rr.Order)) +
		" " + strconv.Itoa(int(rr.Preference)) +
		" " + rr.Flags.String() +
		" " + rr.Service.String() +
		" " + rr.Regexp.OctetString() +
		" " + rr.Replacement.String()
}

func (rr *NAPTR) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packUint16(rr.Order, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint16(rr.Preference, msg, off)
	if err != nil {
		return len(msg), err
	}
	if len(msg[off:]) < rr.Flags.EncodedLen()+rr.Service.EncodedLen()+rr.Regexp.EncodedLen() {
		return len(msg), ErrBuf
	}
	off += copy(msg[off:], rr.Flags.ToWire())
	off += copy(msg[off:], rr.Service.ToWire())
	off += copy(msg[off:], rr.Regexp.ToWire())
	return packDomainName(rr.Replacement, msg, off, compression, false)
}
func (rr *NAPTR) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Order, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.Preference, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.Flags, off, err = unpackString(msg, off)
	if err != nil {
		return off, err
	}
	rr.Service, off, err = unpackString(msg, off)
	if err != nil {
		return off, err
	}
	rr.Regexp, off, err = unpackString(msg, off)
	if err != nil {
		return off, err
	}
	rr.Replacement, off, err = UnpackDomainName(msg, off)
	return off, err
}
func (rr *NAPTR) len(off int, compression map[Name]struct{}) int {
	l := rr.Hdr.len(off, compression) + 4 + rr.Flags.EncodedLen() + rr.Service.EncodedLen() + rr.Regexp.EncodedLen()
	return l + domainNameLen(rr.Replacement, off+l, compression, false)
}
func (rr *NAPTR) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*NAPTR)
	if !ok {
		return false
	}
	return rr.Order == r2.Order && rr.Preference == r2.Preference &&
		rr.Flags == r2.Flags && rr.Service == r2.Service && rr.Regexp == r2.Regexp &&
		isDuplicateName(rr.Replacement, r2.Replacement)
}
func (rr *NAPTR) copy() RR {
	return &NAPTR{rr.Hdr, rr.Order, rr.Preference, rr.Flags, rr.Service, rr.Regexp, rr.Replacement}
}

// CAA

func (rr *CAA) Header() *RR_Header { return &rr.Hdr }
func (rr *CAA) String() string {
	return rr.Hdr.String() + strconv.Itoa(int(rr.Flag)) + " " + rr.Tag.BareString() + " " + rr.Value.String()
}

// The tag carries its own length-prefixed encoding (same shape CAA uses on
// the wire); the value is whatever octets remain in the rdata.
func (rr *CAA) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packUint8(rr.Flag, msg, off)
	if err != nil {
		return len(msg), err
	}
	tag := rr.Tag.ToWire()
	if len(msg[off:]) < len(tag) {
		return len(msg), ErrBuf
	}
	off += copy(msg[off:], tag)
	value := []byte(rr.Value.encoded)
	if len(msg[off:]) < len(value) {
		return len(msg), ErrBuf
	}
	off += copy(msg[off:], value)
	return off, nil
}
func (rr *CAA) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Flag, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.Tag, off, err = unpackString(msg, off)
	if err != nil {
		return off, err
	}
	rr.Value = TxtString{encoded: string(msg[off:])}
	return len(msg), nil
}
func (rr *CAA) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + 1 + rr.Tag.EncodedLen() + len(rr.Value.encoded)
}
func (rr *CAA) copy() RR { return &CAA{rr.Hdr, rr.Flag, rr.Tag, rr.Value} }
func (rr *CAA) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*CAA)
	if !ok {
		return false
	}
	return rr.Flag == r2.Flag && rr.Tag == r2.Tag && rr.Value == r2.Value
}

// TLSA

func (rr *TLSA) Header() *RR_Header { return &rr.Hdr }
func (rr *TLSA) String() string {
	return rr.Hdr.String() + strconv.Itoa(int(rr.Usage)) +
		" " + strconv.Itoa(int(rr.Selector)) +
		" " + strconv.Itoa(int(rr.MatchingType)) +
		" " + rr.Certificate.Hex()
}

func (rr *TLSA) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packUint8(rr.Usage, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint8(rr.Selector, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint8(rr.MatchingType, msg, off)
	if err != nil {
		return len(msg), err
	}
	return packByteField(rr.Certificate, msg, off)
}
func (rr *TLSA) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Usage, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.Selector, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.MatchingType, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.Certificate, off, err = unpackByteField(msg, off, len(msg))
	return off, err
}
func (rr *TLSA) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + 3 + rr.Certificate.EncodedLen()
}
func (rr *TLSA) copy() RR { return &TLSA{rr.Hdr, rr.Usage, rr.Selector, rr.MatchingType, rr.Certificate} }
func (rr *TLSA) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*TLSA)
	if !ok {
		return false
	}
	return rr.Usage == r2.Usage && rr.Selector == r2.Selector &&
		rr.MatchingType == r2.MatchingType && rr.Certificate == r2.Certificate
}

// SSHFP

func (rr *SSHFP) Header() *RR_Header { return &rr.Hdr }
func (rr *SSHFP) String() string {
	return rr.Hdr.String() + strconv.Itoa(int(rr.Algorithm)) +
		" " + strconv.Itoa(int(rr.Type)) +
		" " + rr.FingerPrint.Hex()
}

func (rr *SSHFP) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packUint8(rr.Algorithm, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint8(rr.Type, msg, off)
	if err != nil {
		return len(msg), err
	}
	return packByteField(rr.FingerPrint, msg, off)
}
func (rr *SSHFP) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Algorithm, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.Type, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.FingerPrint, off, err = unpackByteField(msg, off, len(msg))
	return off, err
}
func (rr *SSHFP) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + 2 + rr.FingerPrint.EncodedLen()
}
func (rr *SSHFP) copy() RR { return &SSHFP{rr.Hdr, rr.Algorithm, rr.Type, rr.FingerPrint} }
func (rr *SSHFP) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*SSHFP)
	if !ok {
		return false
	}
	return rr.Algorithm == r2.Algorithm && rr.Type == r2.Type && rr.FingerPrint == r2.FingerPrint
}

// DNSKEY

func (rr *DNSKEY) Header() *RR_Header { return &rr.Hdr }
func (rr *DNSKEY) String() string {
	return rr.Hdr.String() + strconv.Itoa(int(rr.Flags)) +
		" " + strconv.Itoa(int(rr.Protocol)) +
		" " + strconv.Itoa(int(rr.Algorithm)) +
		" " + rr.PublicKey.Base64()
}

func (rr *DNSKEY) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packUint16(rr.Flags, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint8(rr.Protocol, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint8(rr.Algorithm, msg, off)
	if err != nil {
		return len(msg), err
	}
	return packByteField(rr.PublicKey, msg, off)
}
func (rr *DNSKEY) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Flags, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.Protocol, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.Algorithm, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.PublicKey, off, err = unpackByteField(msg, off, len(msg))
	return off, err
}
func (rr *DNSKEY) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + 4 + rr.PublicKey.EncodedLen()
}
func (rr *DNSKEY) copy() RR { return &DNSKEY{rr.Hdr, rr.Flags, rr.Protocol, rr.Algorithm, rr.PublicKey} }
func (rr *DNSKEY) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*DNSKEY)
	if !ok {
		return false
	}
	return rr.Flags == r2.Flags && rr.Protocol == r2.Protocol &&
		rr.Algorithm == r2.Algorithm && rr.PublicKey == r2.PublicKey
}

// CDNSKEY (alias of DNSKEY; explicit wrappers keep its own concrete type through copy/pack/unpack)

func (rr *CDNSKEY) Header() *RR_Header { return &rr.Hdr }
func (rr *CDNSKEY) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	return rr.DNSKEY.pack(msg, off, compression, compress)
}
func (rr *CDNSKEY) unpack(msg []byte, off int) (int, error) { return rr.DNSKEY.unpack(msg, off) }
func (rr *CDNSKEY) len(off int, compression map[Name]struct{}) int {
	return rr.DNSKEY.len(off, compression)
}
func (rr *CDNSKEY) copy() RR { return &CDNSKEY{*rr.DNSKEY.copy().(*DNSKEY)} }
func (rr *CDNSKEY) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*CDNSKEY)
	if !ok {
		return false
	}
	return rr.DNSKEY.isDuplicate(&r2.DNSKEY)
}

// RRSIG

func (rr *RRSIG) Header() *RR_Header { return &rr.Hdr }
func (rr *RRSIG) String() string {
	return rr.Hdr.String() + rr.TypeCovered.String() +
		" " + strconv.Itoa(int(rr.Algorithm)) +
		" " + strconv.Itoa(int(rr.Labels)) +
		" " + strconv.FormatInt(int64(rr.OrigTtl), 10) +
		" " + rr.Expiration.String() +
		" " + rr.Inception.String() +
		" " + strconv.Itoa(int(rr.KeyTag)) +
		" " + rr.SignerName.String() +
		" " + rr.Signature.Base64()
}

func (rr *RRSIG) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packUint16(uint16(rr.TypeCovered), msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint8(rr.Algorithm, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint8(rr.Labels, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint32(rr.OrigTtl, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint32(uint32(rr.Expiration), msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint32(uint32(rr.Inception), msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint16(rr.KeyTag, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packDomainName(rr.SignerName, msg, off, compression, false)
	if err != nil {
		return len(msg), err
	}
	return packByteField(rr.Signature, msg, off)
}
func (rr *RRSIG) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.TypeCovered, off, err = unpackType(msg, off)
	if err != nil {
		return off, err
	}
	rr.Algorithm, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.Labels, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.OrigTtl, off, err = unpackUint32(msg, off)
	if err != nil {
		return off, err
	}
	rr.Expiration, off, err = unpackTime(msg, off)
	if err != nil {
		return off, err
	}
	rr.Inception, off, err = unpackTime(msg, off)
	if err != nil {
		return off, err
	}
	rr.KeyTag, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.SignerName, off, err = UnpackDomainName(msg, off)
	if err != nil {
		return off, err
	}
	rr.Signature, off, err = unpackByteField(msg, off, len(msg))
	return off, err
}
func (rr *RRSIG) len(off int, compression map[Name]struct{}) int {
	l := rr.Hdr.len(off, compression) + 18
	l += domainNameLen(rr.SignerName, off+l, compression, false)
	return l + rr.Signature.EncodedLen()
}
func (rr *RRSIG) copy() RR {
	return &RRSIG{rr.Hdr, rr.TypeCovered, rr.Algorithm, rr.Labels, rr.OrigTtl, rr.Expiration,
		rr.Inception, rr.KeyTag, rr.SignerName, rr.Signature}
}
func (rr *RRSIG) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*RRSIG)
	if !ok {
		return false
	}
	return rr.TypeCovered == r2.TypeCovered && rr.Algorithm == r2.Algorithm &&
		rr.Labels == r2.Labels && rr.OrigTtl == r2.OrigTtl &&
		rr.Expiration == r2.Expiration && rr.Inception == r2.Inception &&
		rr.KeyTag == r2.KeyTag && isDuplicateName(rr.SignerName, r2.SignerName) &&
		rr.Signature == r2.Signature
}

// SIG (legacy alias of RRSIG, used for SIG(0))

func (rr *SIG) Header() *RR_Header { return &rr.Hdr }
func (rr *SIG) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	return rr.RRSIG.pack(msg, off, compression, compress)
}
func (rr *SIG) unpack(msg []byte, off int) (int, error) { return rr.RRSIG.unpack(msg, off) }
func (rr *SIG) len(off int, compression map[Name]struct{}) int {
	return rr.RRSIG.len(off, compression)
}
func (rr *SIG) copy() RR { return &SIG{*rr.RRSIG.copy().(*RRSIG)} }
func (rr *SIG) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*SIG)
	if !ok {
		return false
	}
	return rr.RRSIG.isDuplicate(&r2.RRSIG)
}

// DS

func (rr *DS) Header() *RR_Header { return &rr.Hdr }
func (rr *DS) String() string {
	return rr.Hdr.String() + strconv.Itoa(int(rr.KeyTag)) +
		" " + strconv.Itoa(int(rr.Algorithm)) +
		" " + strconv.Itoa(int(rr.DigestType)) +
		" " + rr.Digest.Hex()
}

func (rr *DS) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packUint16(rr.KeyTag, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint8(rr.Algorithm, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint8(rr.DigestType, msg, off)
	if err != nil {
		return len(msg), err
	}
	return packByteField(rr.Digest, msg, off)
}
func (rr *DS) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.KeyTag, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.Algorithm, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.DigestType, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.Digest, off, err = unpackByteField(msg, off, len(msg))
	return off, err
}
func (rr *DS) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + 4 + rr.Digest.EncodedLen()
}
func (rr *DS) copy() RR { return &DS{rr.Hdr, rr.KeyTag, rr.Algorithm, rr.DigestType, rr.Digest} }
func (rr *DS) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*DS)
	if !ok {
		return false
	}
	return rr.KeyTag == r2.KeyTag && rr.Algorithm == r2.Algorithm &&
		rr.DigestType == r2.DigestType && rr.Digest == r2.Digest
}

// CDS (alias of DS)

func (rr *CDS) Header() *RR_Header { return &rr.Hdr }
func (rr *CDS) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	return rr.DS.pack(msg, off, compression, compress)
}
func (rr *CDS) unpack(msg []byte, off int) (int, error) { return rr.DS.unpack(msg, off) }
func (rr *CDS) len(off int, compression map[Name]struct{}) int {
	return rr.DS.len(off, compression)
}
func (rr *CDS) copy() RR { return &CDS{*rr.DS.copy().(*DS)} }
func (rr *CDS) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*CDS)
	if !ok {
		return false
	}
	return rr.DS.isDuplicate(&r2.DS)
}

// NSEC

func (rr *NSEC) Header() *RR_Header { return &rr.Hdr }
func (rr *NSEC) String() string {
	return rr.Hdr.String() + rr.NextDomain.String() + rr.TypeBitMap.String()
}

func (rr *NSEC) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packDomainName(rr.NextDomain, msg, off, compression, false)
	if err != nil {
		return len(msg), err
	}
	if len(msg[off:]) < rr.TypeBitMap.EncodedLen() {
		return len(msg), ErrBuf
	}
	off += copy(msg[off:], rr.TypeBitMap.Raw())
	return off, nil
}
func (rr *NSEC) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.NextDomain, off, err = UnpackDomainName(msg, off)
	if err != nil {
		return off, err
	}
	rr.TypeBitMap = TypeBitMap{encoded: string(msg[off:])}
	return len(msg), nil
}
func (rr *NSEC) len(off int, compression map[Name]struct{}) int {
	l := rr.Hdr.len(off, compression)
	l += domainNameLen(rr.NextDomain, off+l, compression, false)
	return l + rr.TypeBitMap.EncodedLen()
}
func (rr *NSEC) copy() RR { return &NSEC{rr.Hdr, rr.NextDomain, rr.TypeBitMap} }
func (rr *NSEC) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*NSEC)
	if !ok {
		return false
	}
	return isDuplicateName(rr.NextDomain, r2.NextDomain) && rr.TypeBitMap == r2.TypeBitMap
}

// NSEC3

func (rr *NSEC3) Header() *RR_Header { return &rr.Hdr }
func (rr *NSEC3) String() string {
	return rr.Hdr.String() + strconv.Itoa(int(rr.Hash)) +
		" " + strconv.Itoa(int(rr.Flags)) +
		" " + strconv.Itoa(int(rr.Iterations)) +
		" " + saltToString(rr.Salt) +
		" " + rr.NextDomain.Base32() +
		rr.TypeBitMap.String()
}

func (rr *NSEC3) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packUint8(rr.Hash, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint8(rr.Flags, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint16(rr.Iterations, msg, off)
	if err != nil {
		return len(msg), err
	}
	rr.SaltLength = uint8(rr.Salt.EncodedLen())
	off, err = packUint8(rr.SaltLength, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packByteField(rr.Salt, msg, off)
	if err != nil {
		return len(msg), err
	}
	rr.HashLength = uint8(rr.NextDomain.EncodedLen())
	off, err = packUint8(rr.HashLength, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packByteField(rr.NextDomain, msg, off)
	if err != nil {
		return len(msg), err
	}
	if len(msg[off:]) < rr.TypeBitMap.EncodedLen() {
		return len(msg), ErrBuf
	}
	off += copy(msg[off:], rr.TypeBitMap.Raw())
	return off, nil
}
func (rr *NSEC3) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Hash, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.Flags, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.Iterations, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.SaltLength, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.Salt, off, err = unpackByteField(msg, off, off+int(rr.SaltLength))
	if err != nil {
		return off, err
	}
	rr.HashLength, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.NextDomain, off, err = unpackByteField(msg, off, off+int(rr.HashLength))
	if err != nil {
		return off, err
	}
	rr.TypeBitMap = TypeBitMap{encoded: string(msg[off:])}
	return len(msg), nil
}
func (rr *NSEC3) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + 6 + rr.Salt.EncodedLen() + rr.NextDomain.EncodedLen() + rr.TypeBitMap.EncodedLen()
}
func (rr *NSEC3) copy() RR {
	return &NSEC3{rr.Hdr, rr.Hash, rr.Flags, rr.Iterations, rr.SaltLength, rr.Salt, rr.HashLength, rr.NextDomain, rr.TypeBitMap}
}
func (rr *NSEC3) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*NSEC3)
	if !ok {
		return false
	}
	return rr.Hash == r2.Hash && rr.Flags == r2.Flags && rr.Iterations == r2.Iterations &&
		rr.Salt == r2.Salt && rr.NextDomain == r2.NextDomain && rr.TypeBitMap == r2.TypeBitMap
}

// NSEC3PARAM

func (rr *NSEC3PARAM) Header() *RR_Header { return &rr.Hdr }
func (rr *NSEC3PARAM) String() string {
	return rr.Hdr.String() + strconv.Itoa(int(rr.Hash)) +
		" " + strconv.Itoa(int(rr.Flags)) +
		" " + strconv.Itoa(int(rr.Iterations)) +
		" " + saltToString(rr.Salt)
}

func (rr *NSEC3PARAM) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packUint8(rr.Hash, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint8(rr.Flags, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint16(rr.Iterations, msg, off)
	if err != nil {
		return len(msg), err
	}
	rr.SaltLength = uint8(rr.Salt.EncodedLen())
	off, err = packUint8(rr.SaltLength, msg, off)
	if err != nil {
		return len(msg), err
	}
	return packByteField(rr.Salt, msg, off)
}
func (rr *NSEC3PARAM) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Hash, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.Flags, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.Iterations, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.SaltLength, off, err = unpackUint8(msg, off)
	if err != nil {
		return off, err
	}
	rr.Salt, off, err = unpackByteField(msg, off, len(msg))
	return off, err
}
func (rr *NSEC3PARAM) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + 5 + rr.Salt.EncodedLen()
}
func (rr *NSEC3PARAM) copy() RR {
	return &NSEC3PARAM{rr.Hdr, rr.Hash, rr.Flags, rr.Iterations, rr.SaltLength, rr.Salt}
}
func (rr *NSEC3PARAM) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*NSEC3PARAM)
	if !ok {
		return false
	}
	return rr.Hash == r2.Hash && rr.Flags == r2.Flags &&
		rr.Iterations == r2.Iterations && rr.Salt == r2.Salt
}

// ANY (no rdata)

func (rr *ANY) Header() *RR_Header                                             { return &rr.Hdr }
func (rr *ANY) String() string                                                 { return rr.Hdr.String() }
func (rr *ANY) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	return off, nil
}
func (rr *ANY) unpack(msg []byte, off int) (int, error)       { return off, nil }
func (rr *ANY) len(off int, compression map[Name]struct{}) int { return rr.Hdr.len(off, compression) }
func (rr *ANY) copy() RR                                       { return &ANY{rr.Hdr} }
func (rr *ANY) isDuplicate(_r2 RR) bool {
	_, ok := _r2.(*ANY)
	return ok
}

// NULL

func (rr *NULL) Header() *RR_Header { return &rr.Hdr }
func (rr *NULL) String() string     { return rr.Hdr.String() + rr.Data.Hex() }

func (rr *NULL) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	return packByteField(rr.Data, msg, off)
}
func (rr *NULL) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Data, off, err = unpackByteField(msg, off, len(msg))
	return off, err
}
func (rr *NULL) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + rr.Data.EncodedLen()
}
func (rr *NULL) copy() RR { return &NULL{rr.Hdr, rr.Data} }
func (rr *NULL) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*NULL)
	if !ok {
		return false
	}
	return rr.Data == r2.Data
}

// TSIG

func (rr *TSIG) Header() *RR_Header { return &rr.Hdr }

func (rr *TSIG) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	off, err := packDomainName(rr.Algorithm, msg, off, compression, false)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint48(rr.TimeSigned, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint16(rr.Fudge, msg, off)
	if err != nil {
		return len(msg), err
	}
	rr.MACSize = uint16(rr.MAC.EncodedLen())
	off, err = packUint16(rr.MACSize, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packByteField(rr.MAC, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint16(rr.OrigId, msg, off)
	if err != nil {
		return len(msg), err
	}
	off, err = packUint16(rr.Error, msg, off)
	if err != nil {
		return len(msg), err
	}
	rr.OtherLen = uint16(rr.OtherData.EncodedLen())
	off, err = packUint16(rr.OtherLen, msg, off)
	if err != nil {
		return len(msg), err
	}
	return packByteField(rr.OtherData, msg, off)
}
func (rr *TSIG) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Algorithm, off, err = UnpackDomainName(msg, off)
	if err != nil {
		return off, err
	}
	rr.TimeSigned, off, err = unpackUint48(msg, off)
	if err != nil {
		return off, err
	}
	rr.Fudge, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.MACSize, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.MAC, off, err = unpackByteField(msg, off, off+int(rr.MACSize))
	if err != nil {
		return off, err
	}
	rr.OrigId, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.Error, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.OtherLen, off, err = unpackUint16(msg, off)
	if err != nil {
		return off, err
	}
	rr.OtherData, off, err = unpackByteField(msg, off, off+int(rr.OtherLen))
	return off, err
}
func (rr *TSIG) len(off int, compression map[Name]struct{}) int {
	l := rr.Hdr.len(off, compression)
	l += domainNameLen(rr.Algorithm, off+l, compression, false)
	return l + 16 + rr.MAC.EncodedLen() + rr.OtherData.EncodedLen()
}
func (rr *TSIG) copy() RR {
	return &TSIG{rr.Hdr, rr.Algorithm, rr.TimeSigned, rr.Fudge, rr.MACSize, rr.MAC,
		rr.OrigId, rr.Error, rr.OtherLen, rr.OtherData}
}
func (rr *TSIG) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*TSIG)
	if !ok {
		return false
	}
	if !isDuplicateName(rr.Algorithm, r2.Algorithm) {
		return false
	}
	return rr.TimeSigned == r2.TimeSigned && rr.Fudge == r2.Fudge && rr.MAC == r2.MAC &&
		rr.OrigId == r2.OrigId && rr.Error == r2.Error && rr.OtherData == r2.OtherData
}

// RFC3597 (generic fallback for types without a dedicated struct)

func (rr *RFC3597) Header() *RR_Header { return &rr.Hdr }

func (rr *RFC3597) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	return packByteField(rr.Rdata, msg, off)
}
func (rr *RFC3597) unpack(msg []byte, off int) (int, error) {
	var err error
	rr.Rdata, off, err = unpackByteField(msg, off, len(msg))
	return off, err
}
func (rr *RFC3597) len(off int, compression map[Name]struct{}) int {
	return rr.Hdr.len(off, compression) + rr.Rdata.EncodedLen()
}
func (rr *RFC3597) copy() RR { return &RFC3597{rr.Hdr, rr.Rdata} }
func (rr *RFC3597) isDuplicate(_r2 RR) bool {
	r2, ok := _r2.(*RFC3597)
	if !ok {
		return false
	}
	return rr.Rdata == r2.Rdata
}
