package dns

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/binary"
	"math/big"
	"time"
)

// SIG(0) transaction authentication, RFC 2931: a public-key signature over
// an entire message, carried in a SIG RR appended to the additional
// section, TypeCovered 0. Unlike TSIG it needs no shared secret, only the
// signer's private key and the verifier's DNSKEY.

// SetSIG0 appends a stub SIG RR to dns's additional section, ready for
// SignSIG0 to complete. keytag/signerName identify the verifying key;
// fudge bounds the validity window (seconds) around the current time.
func (dns *Msg) SetSIG0(signerName Name, alg uint8, keytag uint16, fudge uint32) *Msg {
	sig := new(SIG)
	sig.Hdr = RR_Header{Rrtype: TypeSIG, Class: ClassANY, Ttl: 0}
	sig.TypeCovered = 0 // 0 means "this SIG covers the whole message", RFC 2931 3.1
	sig.Algorithm = alg
	sig.Labels = 0
	sig.OrigTtl = 0
	sig.KeyTag = keytag
	sig.SignerName = signerName
	if fudge == 0 {
		fudge = 300
	}
	now := uint32(time.Now().Unix())
	sig.Inception = Time(now - fudge)
	sig.Expiration = Time(now + fudge)
	dns.Extra = append(dns.Extra, sig)
	return dns
}

// SignSIG0 signs m with k: it packs m (whose last additional record must be
// the stub SIG RR added by SetSIG0), computes the RFC 2931 signature over
// the message bytes preceding that RR, fills it in, and returns the
// completed wire-format message.
func SignSIG0(m *Msg, k crypto.Signer) ([]byte, error) {
	if len(m.Extra) == 0 {
		return nil, ErrKey
	}
	rr, ok := m.Extra[len(m.Extra)-1].(*SIG)
	if !ok || rr.TypeCovered != 0 {
		return nil, ErrKey
	}
	if rr.KeyTag == 0 || rr.SignerName.EncodedLen() == 0 || rr.Algorithm == 0 {
		return nil, ErrKey
	}
	switch rr.Algorithm {
	case RSAMD5, DSA, DSANSEC3SHA1:
		return nil, ErrAlg
	}

	// Pack the message without the SIG RR to get the bytes RFC 2931 signs.
	withoutSig := *m
	withoutSig.Extra = m.Extra[:len(m.Extra)-1]
	msgbuf, err := withoutSig.Pack()
	if err != nil {
		return nil, err
	}

	sigwire := new(rrsigWireFmt)
	sigwire.TypeCovered = rr.TypeCovered
	sigwire.Algorithm = rr.Algorithm
	sigwire.Labels = rr.Labels
	sigwire.OrigTtl = rr.OrigTtl
	sigwire.Expiration = rr.Expiration
	sigwire.Inception = rr.Inception
	sigwire.KeyTag = rr.KeyTag
	sigwire.SignerName = rr.SignerName.Canonical()

	signdata := make([]byte, DefaultMsgSize)
	n, err := packSigWire(sigwire, signdata)
	if err != nil {
		return nil, err
	}
	signdata = signdata[:n]

	h, cryptohash, err := hashFromAlgorithm(rr.Algorithm)
	if err != nil {
		return nil, err
	}
	h.Write(signdata)
	h.Write(msgbuf)

	signature, err := sign(k, h.Sum(nil), cryptohash, rr.Algorithm)
	if err != nil {
		return nil, err
	}
	rr.Signature = BFFromBytes(signature)

	tbuf := make([]byte, Len(rr))
	off, err := PackRR(rr, tbuf, 0, nil, false)
	if err != nil {
		return nil, err
	}
	out := append(msgbuf, tbuf[:off]...)
	binary.BigEndian.PutUint16(out[10:], uint16(len(withoutSig.Extra)+1))
	return out, nil
}

// VerifySIG0 verifies the trailing SIG(0) RR on msg against k, the signer's
// DNSKEY, and checks the validity window against the current time.
func VerifySIG0(msg []byte, k *DNSKEY) error {
	stripped, rr, err := stripSig0(msg)
	if err != nil {
		return err
	}
	if rr.KeyTag != k.KeyTag() || rr.Algorithm != k.Algorithm {
		return ErrKey
	}
	if !rr.ValidityPeriod(time.Time{}) {
		return ErrTime
	}

	sigwire := new(rrsigWireFmt)
	sigwire.TypeCovered = rr.TypeCovered
	sigwire.Algorithm = rr.Algorithm
	sigwire.Labels = rr.Labels
	sigwire.OrigTtl = rr.OrigTtl
	sigwire.Expiration = rr.Expiration
	sigwire.Inception = rr.Inception
	sigwire.KeyTag = rr.KeyTag
	sigwire.SignerName = rr.SignerName.Canonical()

	signdata := make([]byte, DefaultMsgSize)
	n, err := packSigWire(sigwire, signdata)
	if err != nil {
		return err
	}
	signdata = signdata[:n]

	h, cryptohash, err := hashFromAlgorithm(rr.Algorithm)
	if err != nil {
		return err
	}
	h.Write(signdata)
	h.Write(stripped)

	sig := &RRSIG{
		Hdr:         rr.Hdr,
		TypeCovered: rr.TypeCovered,
		Algorithm:   rr.Algorithm,
		Labels:      rr.Labels,
		OrigTtl:     rr.OrigTtl,
		Expiration:  rr.Expiration,
		Inception:   rr.Inception,
		KeyTag:      rr.KeyTag,
		SignerName:  rr.SignerName,
		Signature:   rr.Signature,
	}
	return verifyHashed(sig, k, h.Sum(nil), cryptohash)
}

// verifyHashed checks sig's signature bytes against the already-hashed
// message digest, dispatching on algorithm the same way RRSIG.Verify does.
func verifyHashed(sig *RRSIG, k *DNSKEY, digest []byte, cryptohash crypto.Hash) error {
	sigbuf := sig.Signature.Raw()
	switch sig.Algorithm {
	case RSASHA1, RSASHA1NSEC3SHA1, RSASHA256, RSASHA512:
		pubkey := k.publicKeyRSA()
		if pubkey == nil {
			return ErrKey
		}
		return rsa.VerifyPKCS1v15(pubkey, cryptohash, digest, sigbuf)
	case ECDSAP256SHA256, ECDSAP384SHA384:
		pubkey := k.publicKeyECDSA()
		if pubkey == nil {
			return ErrKey
		}
		r := new(big.Int).SetBytes(sigbuf[:len(sigbuf)/2])
		s := new(big.Int).SetBytes(sigbuf[len(sigbuf)/2:])
		if ecdsa.Verify(pubkey, digest, r, s) {
			return nil
		}
		return ErrSig
	case ED25519:
		pubkey := k.publicKeyED25519()
		if pubkey == nil {
			return ErrKey
		}
		if ed25519.Verify(pubkey, digest, sigbuf) {
			return nil
		}
		return ErrSig
	default:
		return ErrAlg
	}
}

// stripSig0 removes the trailing SIG RR (TypeCovered 0) from msg the same
// way tsig.go's stripTsig removes a trailing TSIG, decrementing ARCOUNT in
// place so the returned buffer matches what SignSIG0 originally hashed.
func stripSig0(msg []byte) ([]byte, *SIG, error) {
	var (
		dh  Header
		err error
	)
	off := 0
	if dh, off, err = unpackMsgHdr(msg, off); err != nil {
		return nil, nil, err
	}
	if dh.Arcount == 0 {
		return nil, nil, ErrNoSig
	}

	for i := 0; i < int(dh.Qdcount); i++ {
		if _, off, err = unpackQuestion(msg, off); err != nil {
			return nil, nil, err
		}
	}
	if _, off, err = unpackRRslice(int(dh.Ancount), msg, off); err != nil {
		return nil, nil, err
	}
	if _, off, err = unpackRRslice(int(dh.Nscount), msg, off); err != nil {
		return nil, nil, err
	}

	var sigoff int
	var rr *SIG
	for i := 0; i < int(dh.Arcount); i++ {
		sigoff = off
		extra, noff, err := UnpackRR(msg, off)
		if err != nil {
			return nil, nil, err
		}
		off = noff
		if s, ok := extra.(*SIG); ok && s.TypeCovered == 0 {
			rr = s
			arcount := binary.BigEndian.Uint16(msg[10:])
			binary.BigEndian.PutUint16(msg[10:], arcount-1)
			break
		}
	}
	if rr == nil {
		return nil, nil, ErrNoSig
	}
	return msg[:sigoff], rr, nil
}
