package dns

import "strconv"

// RR_Header is the header each resource record has to have.
type RR_Header struct {
	Name     Name `dns:"cdomain-name"`
	Rrtype   Type
	Class    Class
	Ttl      uint32
	Rdlength uint16 // Set by the packing method, not the user.
}

// Header returns itself. It is implemented so that RR_Header is also an RR.
func (h *RR_Header) Header() *RR_Header { return h }

func (h *RR_Header) String() string {
	var s string

	if h.Rrtype == TypeOPT {
		s = ";"
		// and maybe other things
	}

	s += h.Name.String() + "\t"
	s += itoa10(int64(h.Ttl)) + "\t"

	s += h.Class.String() + "\t"
	s += h.Rrtype.String() + "\t"
	return s
}

func (h *RR_Header) len(off int, compression map[Name]struct{}) int {
	l := domainNameLen(h.Name, off, compression, true)
	l += 10 // rrtype(2) + class(2) + ttl(4) + rdlength(2)
	return l
}

func (h *RR_Header) copy() RR { return &RR_Header{h.Name, h.Rrtype, h.Class, h.Ttl, h.Rdlength} }

func (h *RR_Header) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	return off, nil
}

func (h *RR_Header) unpack(msg []byte, off int) (int, error) { return off, nil }

func itoa10(i int64) string { return strconv.FormatInt(i, 10) }

// RR is implemented by every resource record type, plus third party types
// registered with PrivateHandle.
type RR interface {
	// Header returns the header of an resource record. The header contains
	// everything up to the rdata.
	Header() *RR_Header
	// String returns the text representation of the resource record.
	String() string

	// copy returns a copy of the RR.
	copy() RR
	// len returns the length (in octets) of the uncompressed RR in wire format.
	len(off int, compression map[Name]struct{}) int
	// pack packs the records RDATA into msg[off:].
	pack(msg []byte, off int, compression compressionMap, compress bool) (off1 int, err error)
	// unpack unpacks the record's RDATA from msg[off:].
	unpack(msg []byte, off int) (off1 int, err error)
	// isDuplicate reports whether the RDATA of r is identical to other's.
	// The caller is responsible for comparing headers separately.
	isDuplicate(other RR) bool
}

// PrivateRdata is an interface used for implementing "private" resource
// record types, see dns.PrivateHandle and dns.PrivateHandleRemove.
type PrivateRdata interface {
	// String returns the text representation of the rdata.
	String() string
	// Parse parses the rdata from the text representation, as produced by
	// NewRR, into the PrivateRdata.
	Parse(txt []string) error
	// Pack packs the rdata into buf.
	Pack(buf []byte) (int, error)
	// Unpack unpacks the rdata from buf.
	Unpack(buf []byte) (int, error)
	// Copy copies the current rdata into the provided PrivateRdata.
	Copy(dest PrivateRdata) error
	// Len returns the length of the rdata, as encoded by Pack.
	Len() int
}

// PrivateRR represents an RR that uses a PrivateRdata user-defined type.
type PrivateRR struct {
	Hdr  RR_Header
	Data PrivateRdata

	generator func() PrivateRdata // for copy
}

func mkPrivateRR(rrtype Type) *PrivateRR {
	rrtypeStr, ok := TypeToRR[rrtype]
	if !ok {
		panic("dns: BUG: mkPrivateRR called without registering")
	}

	rr := rrtypeStr().(*PrivateRR)
	rr.Hdr.Rrtype = rrtype
	return rr
}

func (r *PrivateRR) Header() *RR_Header { return &r.Hdr }

func (r *PrivateRR) String() string { return r.Hdr.String() + r.Data.String() }

// PrivateHandle registers a private resource record type. It requires
// string and numeric representation of private RR type and generator function
// as a parameter. Calling the generator function returns a new instance of
// the private resource record.
func PrivateHandle(rtypestr string, rtype uint16, generator func() PrivateRdata) {
	rtypeU16 := uint16(rtype)

	TypeToRR[Type(rtypeU16)] = func() RR {
		return &PrivateRR{RR_Header{}, generator(), generator}
	}
	TypeToString[rtypeU16] = rtypestr
	StringToType[rtypestr] = Type(rtypeU16)
}

// PrivateHandleRemove removes defined resource record type from the
// package.
func PrivateHandleRemove(rtype uint16) {
	rtypeU16 := uint16(rtype)
	if rtypestr, ok := TypeToString[rtypeU16]; ok {
		delete(TypeToRR, Type(rtypeU16))
		delete(TypeToString, rtypeU16)
		delete(StringToType, rtypestr)
	}
}

func (r *PrivateRR) pack(msg []byte, off int, compression compressionMap, compress bool) (int, error) {
	n, err := r.Data.Pack(msg[off:])
	if err != nil {
		return len(msg), err
	}
	off += n
	return off, nil
}

func (r *PrivateRR) unpack(msg []byte, off int) (int, error) {
	n, err := r.Data.Unpack(msg[off:])
	off += n
	return off, err
}

func (r *PrivateRR) copy() RR {
	rr := mkPrivateRR(r.Hdr.Rrtype)
	rr.Hdr = r.Hdr

	if err := r.Data.Copy(rr.Data); err != nil {
		panic("dns: got value that could not be used to copy")
	}
	return rr
}

func (r *PrivateRR) len(off int, compression map[Name]struct{}) int {
	l := r.Hdr.len(off, compression)
	l += r.Data.Len()
	return l
}

func (r *PrivateRR) isDuplicate(other RR) bool {
	o, ok := other.(*PrivateRR)
	if !ok {
		return false
	}
	return r.Data.String() == o.Data.String()
}

func (r *PrivateRR) parse(c *zlexer, origin Name) *ParseError {
	var l lex
	var text []string
	for {
		l, _ = c.Next()
		if l.value == zNewline || l.value == zEOF {
			break
		}
		if l.value == zString {
			text = append(text, l.token)
		}
	}
	if err := r.Data.Parse(text); err != nil {
		return &ParseError{err: err.Error(), lex: l}
	}
	return nil
}
