package swiftcodec

// Unmarshal decodes a JSON document from b into a Value tree. It is
// equivalent to Decode(b).
func Unmarshal(b []byte) (*Value, error) {
	return Decode(b)
}

// UnmarshalString decodes a JSON document from s into a Value tree.
func UnmarshalString(s string) (*Value, error) {
	return Decode([]byte(s))
}
