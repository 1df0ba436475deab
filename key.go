package dns

import (
	"bufio"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"io"
	"math/big"
	"strconv"
	"strings"
)

// NewPrivateKey parses a BIND dnssec-keygen private-key file (the
// "Key: Value" text format found in K<name>.+<algorithm>.+<keytag>.private
// files) from r and returns a crypto.Signer ready to pass to RRSIG.Sign or
// SignSIG0. DSA, DSA-NSEC3-SHA1 and RSAMD5 are rejected with ErrKeyAlg:
// they are legacy algorithms this package does not implement signing for.
func NewPrivateKey(r io.Reader) (crypto.Signer, error) {
	fields, err := parsePrivateKeyFile(r)
	if err != nil {
		return nil, err
	}

	algField, ok := fields["algorithm"]
	if !ok {
		return nil, ErrPrivKey
	}
	alg, err := privateKeyAlgorithm(algField)
	if err != nil {
		return nil, err
	}

	switch alg {
	case RSAMD5, DSA, DSANSEC3SHA1:
		return nil, ErrKeyAlg
	case RSASHA1, RSASHA1NSEC3SHA1, RSASHA256, RSASHA512:
		return parseRSAPrivateKey(fields)
	case ECDSAP256SHA256:
		return parseECPrivateKey(fields, elliptic.P256())
	case ECDSAP384SHA384:
		return parseECPrivateKey(fields, elliptic.P384())
	case ED25519:
		return parseEd25519PrivateKey(fields)
	default:
		return nil, ErrKeyAlg
	}
}

// parsePrivateKeyFile reads "Key: Value" lines into a lowercase-keyed map,
// skipping blank lines and lines without a colon. The "Private-key-format"
// banner line BIND always writes first is stored like any other field and
// its version is not checked.
func parsePrivateKeyFile(r io.Reader) (map[string]string, error) {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		i := strings.Index(line, ":")
		if i < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:i]))
		val := strings.TrimSpace(line[i+1:])
		fields[key] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrPrivKey
	}
	return fields, nil
}

// privateKeyAlgorithm parses the "Algorithm:" field, which BIND writes as
// either a bare number or "<number> (<name>)".
func privateKeyAlgorithm(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, ErrPrivKey
	}
	return uint8(n), nil
}

func fieldBig(fields map[string]string, key string) (*big.Int, error) {
	v, ok := fields[key]
	if !ok {
		return nil, ErrPrivKey
	}
	bf, err := BFFromBase64(v)
	if err != nil {
		return nil, ErrPrivKey
	}
	return new(big.Int).SetBytes(bf.Raw()), nil
}

func parseRSAPrivateKey(fields map[string]string) (*rsa.PrivateKey, error) {
	modulus, err := fieldBig(fields, "modulus")
	if err != nil {
		return nil, err
	}
	pubExp, err := fieldBig(fields, "publicexponent")
	if err != nil {
		return nil, err
	}
	privExp, err := fieldBig(fields, "privateexponent")
	if err != nil {
		return nil, err
	}
	prime1, err := fieldBig(fields, "prime1")
	if err != nil {
		return nil, err
	}
	prime2, err := fieldBig(fields, "prime2")
	if err != nil {
		return nil, err
	}

	key := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{
			N: modulus,
			E: int(pubExp.Int64()),
		},
		D:      privExp,
		Primes: []*big.Int{prime1, prime2},
	}
	key.Precompute()
	return key, nil
}

func parseECPrivateKey(fields map[string]string, curve elliptic.Curve) (*ecdsa.PrivateKey, error) {
	v, ok := fields["privatekey"]
	if !ok {
		return nil, ErrPrivKey
	}
	bf, err := BFFromBase64(v)
	if err != nil {
		return nil, ErrPrivKey
	}
	d := new(big.Int).SetBytes(bf.Raw())

	priv := new(ecdsa.PrivateKey)
	priv.PublicKey.Curve = curve
	priv.D = d
	priv.PublicKey.X, priv.PublicKey.Y = curve.ScalarBaseMult(d.Bytes())
	return priv, nil
}

func parseEd25519PrivateKey(fields map[string]string) (ed25519.PrivateKey, error) {
	v, ok := fields["privatekey"]
	if !ok {
		return nil, ErrPrivKey
	}
	bf, err := BFFromBase64(v)
	if err != nil {
		return nil, ErrPrivKey
	}
	seed := bf.Raw()
	if len(seed) != ed25519.SeedSize {
		return nil, ErrPrivKey
	}
	return ed25519.NewKeyFromSeed(seed), nil
}
