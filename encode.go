package swiftcodec

// Marshal encodes v with the default options (compact, no sorting, no
// numpy support): equivalent to Encode(v, 0, nil).
func Marshal(v *Value) ([]byte, error) {
	return Encode(v, 0, nil)
}

// MarshalOptions encodes v under the given option bit field.
func MarshalOptions(v *Value, opts Options) ([]byte, error) {
	return Encode(v, opts, nil)
}

// MarshalFallback encodes v under the given option bit field, calling
// fallback for any Value this module cannot natively represent.
func MarshalFallback(v *Value, opts Options, fallback Fallback) ([]byte, error) {
	return Encode(v, opts, fallback)
}

// MarshalToString is a convenience wrapper returning the encoded form as
// a string instead of a []byte.
func MarshalToString(v *Value, opts Options) (string, error) {
	b, err := Encode(v, opts, nil)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
