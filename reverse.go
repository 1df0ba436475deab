package dns

// StringToType is the reverse of TypeToString, needed for string parsing.
var StringToType = reverseMap(TypeToString)

// StringToClass is the reverse of ClassToString, needed for string parsing.
var StringToClass = reverseMap(ClassToString)

// StringToOpcode is the reverse of OpcodeToString.
var StringToOpcode = reverseMap(OpcodeToString)

// StringToRcode is the reverse of RcodeToString.
var StringToRcode = reverseMap(RcodeToString)

func init() {
	// Preserve previous NOTIMP typo, see github.com/miekg/dns/issues/733.
	StringToRcode["NOTIMPL"] = RcodeNotImplemented
}

// StringToAlgorithm is the reverse of AlgorithmToString.
var StringToAlgorithm = reverseMap(AlgorithmToString)

// StringToHash is a map of names to hash IDs.
var StringToHash = reverseMap(HashToString)

// StringToCertType is the reverse of CertTypeToString.
var StringToCertType = reverseMap(CertTypeToString)

// StringToStatefulType is the reverse of StatefulTypeToString.
var StringToStatefulType = reverseMap(StatefulTypeToString)

// StringToTsigAlgorithm maps the short algorithm names accepted on a -y
// style command-line flag (as BIND's dig and nsupdate do) to the Name
// constants tsig.go signs with.
var StringToTsigAlgorithm = map[string]Name{
	"hmac-sha1":   HmacSHA1,
	"hmac-sha224": HmacSHA224,
	"hmac-sha256": HmacSHA256,
	"hmac-sha384": HmacSHA384,
	"hmac-sha512": HmacSHA512,
}

// Reverse a map
func reverseMap[K, V comparable](m map[K]V) map[V]K {
	n := make(map[V]K, len(m))
	for k, v := range m {
		n[v] = k
	}
	return n
}
