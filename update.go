package dns

// Helpers for building RFC 2136 dynamic update messages. A message built
// with SetUpdate carries its prerequisites in the Answer section and its
// update records in the Ns section, per RFC 2136 section 2.

// NameUsed sets the RRs in the prerequisite section to
// "name is in use" RRs. RFC 2136 section 2.4.4.
func (dns *Msg) NameUsed(rr []RR) *Msg {
	dns.Answer = make([]RR, len(rr))
	for i, r := range rr {
		dns.Answer[i] = &ANY{Hdr: RR_Header{Name: r.Header().Name, Rrtype: TypeANY, Class: ClassANY, Ttl: 0}}
	}
	return dns
}

// NameNotUsed sets the RRs in the prerequisite section to
// "name is not in use" RRs. RFC 2136 section 2.4.5.
func (dns *Msg) NameNotUsed(rr []RR) *Msg {
	dns.Answer = make([]RR, len(rr))
	for i, r := range rr {
		dns.Answer[i] = &ANY{Hdr: RR_Header{Name: r.Header().Name, Rrtype: TypeANY, Class: ClassNONE, Ttl: 0}}
	}
	return dns
}

// Used sets the RRs in the prerequisite section to
// "RRset exists (value dependent)" RRs. RFC 2136 section 2.4.2.
func (dns *Msg) Used(rr []RR) *Msg {
	if len(dns.Question) == 0 {
		panic("dns: empty question section")
	}
	dns.Answer = make([]RR, len(rr))
	for i, r := range rr {
		r.Header().Class = dns.Question[0].Qclass
		dns.Answer[i] = r
	}
	return dns
}

// RRsetUsed sets the RRs in the prerequisite section to
// "RRset exists (value independent)" RRs. RFC 2136 section 2.4.1.
func (dns *Msg) RRsetUsed(rr []RR) *Msg {
	dns.Answer = make([]RR, len(rr))
	for i, r := range rr {
		dns.Answer[i] = &ANY{Hdr: RR_Header{Name: r.Header().Name, Rrtype: r.Header().Rrtype, Class: ClassANY, Ttl: 0}}
	}
	return dns
}

// RRsetNotUsed sets the RRs in the prerequisite section to
// "RRset does not exist" RRs. RFC 2136 section 2.4.3.
func (dns *Msg) RRsetNotUsed(rr []RR) *Msg {
	dns.Answer = make([]RR, len(rr))
	for i, r := range rr {
		dns.Answer[i] = &ANY{Hdr: RR_Header{Name: r.Header().Name, Rrtype: r.Header().Rrtype, Class: ClassNONE, Ttl: 0}}
	}
	return dns
}

// Insert appends the RRs to the update section, telling the server to add
// them. RFC 2136 section 2.5.1.
func (dns *Msg) Insert(rr []RR) *Msg {
	if len(dns.Question) == 0 {
		panic("dns: empty question section")
	}
	dns.Ns = append(dns.Ns, rr...)
	return dns
}

// RemoveRRset tells the server to delete the RRsets named in rrs, leaving
// other RRsets with the same owner name untouched. RFC 2136 section 2.5.2.
func (dns *Msg) RemoveRRset(rr []RR) *Msg {
	dns.Ns = make([]RR, len(rr))
	for i, r := range rr {
		dns.Ns[i] = &ANY{Hdr: RR_Header{Name: r.Header().Name, Rrtype: r.Header().Rrtype, Class: ClassANY, Ttl: 0}}
	}
	return dns
}

// RemoveName tells the server to remove all RRsets for the owner names in
// rr. RFC 2136 section 2.5.3.
func (dns *Msg) RemoveName(rr []RR) *Msg {
	dns.Ns = make([]RR, len(rr))
	for i, r := range rr {
		dns.Ns[i] = &ANY{Hdr: RR_Header{Name: r.Header().Name, Rrtype: TypeANY, Class: ClassANY, Ttl: 0}}
	}
	return dns
}

// Remove tells the server to remove the exact RRs given, value-dependent.
// RFC 2136 section 2.5.4.
func (dns *Msg) Remove(rr []RR) *Msg {
	dns.Ns = make([]RR, len(rr))
	for i, r := range rr {
		r.Header().Class = ClassNONE
		r.Header().Ttl = 0
		dns.Ns[i] = r
	}
	return dns
}
