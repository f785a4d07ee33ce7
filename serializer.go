package swiftcodec

import (
	"math"
	"sort"
	"strconv"
)

// Component F: the serializer. A typed visitor over Value that appends
// to a growable []byte; Go's append already doubles capacity with a
// minimum growth step and handles single writes larger than current
// spare capacity, so no custom buffer type is needed here (see
// DESIGN.md).

const maxSafeInt int64 = 1<<53 - 1
const maxSafeUint uint64 = 1<<53 - 1

type serializerState struct {
	buf       []byte
	opts      Options
	fallback  Fallback
	ancestors []*Value
	indentLvl int
}

// Encode serializes v to compact or indented JSON bytes per the given
// options, invoking fallback for any value this module cannot natively
// represent under those options.
func Encode(v *Value, opts Options, fallback Fallback) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	s := &serializerState{opts: opts, fallback: fallback, buf: make([]byte, 0, 64)}
	if v == nil {
		v = nullValue
	}
	if err := s.emitValue(v, true); err != nil {
		return nil, err
	}
	if opts.has(OptAppendNewline) {
		s.buf = append(s.buf, '\n')
	}
	return nullTerminate(s.buf), nil
}

// nullTerminate returns a slice with the reported contents of buf whose
// backing array has one extra 0x00 byte just past the reported length,
// so callers that hand the bytes to a C-style API can treat them as a
// NUL-terminated string without a copy.
func nullTerminate(buf []byte) []byte {
	n := len(buf)
	buf = append(buf, 0)
	return buf[:n]
}

func (s *serializerState) emitValue(v *Value, fallbackAllowed bool) error {
	if v == nil {
		v = nullValue
	}
	switch v.kind {
	case KindNull:
		s.buf = append(s.buf, "null"...)
		return nil
	case KindBool:
		if v.b {
			s.buf = append(s.buf, "true"...)
		} else {
			s.buf = append(s.buf, "false"...)
		}
		return nil
	case KindInt:
		if s.opts.has(OptStrictInteger) && (v.i > maxSafeInt || v.i < -maxSafeInt) {
			return newEncodeErr(ReasonStrictIntViolation, "integer %d exceeds strict-integer range", v.i)
		}
		s.appendInt64(v.i)
		return nil
	case KindUint:
		if s.opts.has(OptStrictInteger) && v.u > maxSafeUint {
			return newEncodeErr(ReasonStrictIntViolation, "integer %d exceeds strict-integer range", v.u)
		}
		s.appendUint64(v.u)
		return nil
	case KindFloat:
		s.appendFiniteOrNull(v.f)
		return nil
	case KindString:
		b, err := appendJSONString(s.buf, v.s)
		if err != nil {
			return err
		}
		s.buf = b
		return nil
	case KindArray:
		return s.emitArray(v, fallbackAllowed)
	case KindObject:
		return s.emitObject(v, fallbackAllowed)
	case KindDateTime:
		if s.opts.has(OptPassthroughDatetime) {
			return s.emitFallback(v, fallbackAllowed)
		}
		s.buf = append(s.buf, '"')
		s.buf = appendDateTime(s.buf, v.cal, s.opts.has(OptOmitMicroseconds), s.opts.has(OptNaiveUTC), s.opts.has(OptUTCZ))
		s.buf = append(s.buf, '"')
		return nil
	case KindDate:
		if s.opts.has(OptPassthroughDatetime) {
			return s.emitFallback(v, fallbackAllowed)
		}
		s.buf = append(s.buf, '"')
		s.buf = appendDate(s.buf, v.cal)
		s.buf = append(s.buf, '"')
		return nil
	case KindTime:
		if s.opts.has(OptPassthroughDatetime) {
			return s.emitFallback(v, fallbackAllowed)
		}
		s.buf = append(s.buf, '"')
		s.buf = appendClock(s.buf, v.cal, s.opts.has(OptOmitMicroseconds))
		s.buf = append(s.buf, '"')
		return nil
	case KindUUID:
		s.buf = append(s.buf, '"')
		s.buf = appendUUID(s.buf, v.uuid)
		s.buf = append(s.buf, '"')
		return nil
	case KindNDArray:
		if !s.opts.has(OptSerializeNumpy) {
			return s.emitFallback(v, fallbackAllowed)
		}
		return s.emitNDArray(v.nd, 0, 0)
	case KindFragment:
		s.buf = append(s.buf, v.frag...)
		return nil
	default:
		return s.emitFallback(v, fallbackAllowed)
	}
}

func (s *serializerState) emitFallback(v *Value, fallbackAllowed bool) error {
	if !fallbackAllowed {
		return newEncodeErr(ReasonUnsupportedType, "fallback result of kind %s is itself unsupported", v.kind)
	}
	if s.fallback == nil {
		return newEncodeErr(ReasonUnsupportedType, "no fallback provided for kind %s", v.kind)
	}
	repl, err := s.fallback(v)
	if err != nil {
		return err
	}
	if repl == nil {
		return newEncodeErr(ReasonFallbackUnknown, "fallback returned nil")
	}
	return s.emitValue(repl, false)
}

func (s *serializerState) pushAncestor(v *Value) error {
	for _, a := range s.ancestors {
		if a == v {
			return newEncodeErr(ReasonCircularReference, "circular reference detected")
		}
	}
	if len(s.ancestors) >= MaxDepth {
		return newEncodeErr(ReasonUnsupportedType, "maximum nesting depth exceeded during encode")
	}
	s.ancestors = append(s.ancestors, v)
	return nil
}

func (s *serializerState) popAncestor() {
	s.ancestors = s.ancestors[:len(s.ancestors)-1]
}

func (s *serializerState) emitArray(v *Value, fallbackAllowed bool) error {
	if err := s.pushAncestor(v); err != nil {
		return err
	}
	defer s.popAncestor()
	items := v.arr
	s.beginContainer('[')
	for i, item := range items {
		if i > 0 {
			s.writeComma()
		}
		s.beforeElement()
		if err := s.emitValue(item, fallbackAllowed); err != nil {
			return err
		}
	}
	s.endContainer(']', len(items) > 0)
	return nil
}

type renderedMember struct {
	raw string
	key []byte
	val *Value
}

func (s *serializerState) emitObject(v *Value, fallbackAllowed bool) error {
	if err := s.pushAncestor(v); err != nil {
		return err
	}
	defer s.popAncestor()
	members := v.obj.Members()
	rendered := make([]renderedMember, 0, len(members))
	for _, m := range members {
		raw, err := s.rawKeyString(m.Key)
		if err != nil {
			return err
		}
		keyBytes, err := appendJSONString(nil, raw)
		if err != nil {
			return err
		}
		rendered = append(rendered, renderedMember{raw: raw, key: keyBytes, val: m.Val})
	}
	if s.opts.has(OptSortKeys) {
		// Sort on the raw, pre-escape UTF-8 key so that control bytes and
		// quote/backslash characters compare by their own byte value
		// rather than by its backslash-escaped, quoted output form.
		sort.SliceStable(rendered, func(i, j int) bool {
			return rendered[i].raw < rendered[j].raw
		})
	}
	s.beginContainer('{')
	for i, rm := range rendered {
		if i > 0 {
			s.writeComma()
		}
		s.beforeElement()
		s.buf = append(s.buf, rm.key...)
		if s.opts.has(OptIndent2) {
			s.buf = append(s.buf, ':', ' ')
		} else {
			s.buf = append(s.buf, ':')
		}
		if err := s.emitValue(rm.val, fallbackAllowed); err != nil {
			return err
		}
	}
	s.endContainer('}', len(rendered) > 0)
	return nil
}

// rawKeyString stringifies an object key to its raw, unescaped UTF-8
// text — the form SORT_KEYS must sort on, before emitObject quotes and
// escapes it for output.
func (s *serializerState) rawKeyString(k ObjectKey) (string, error) {
	if k.Kind == KeyString {
		return k.Str, nil
	}
	if !s.opts.has(OptNonStrKeys) {
		return "", newEncodeErr(ReasonInvalidKey, "non-string object key requires NON_STR_KEYS option")
	}
	switch k.Kind {
	case KeyInt:
		return strconv.FormatInt(k.I64, 10), nil
	case KeyUint:
		return strconv.FormatUint(k.U64, 10), nil
	case KeyFloat:
		if math.IsNaN(k.F64) || math.IsInf(k.F64, 0) {
			return "null", nil
		}
		return string(appendFloat(nil, k.F64)), nil
	case KeyBool:
		if k.Bln {
			return "true", nil
		}
		return "false", nil
	case KeyDateTime:
		tmp := appendDateTime(nil, k.Cal, s.opts.has(OptOmitMicroseconds), s.opts.has(OptNaiveUTC), s.opts.has(OptUTCZ))
		return string(tmp), nil
	case KeyDate:
		return string(appendDate(nil, k.Cal)), nil
	case KeyTime:
		return string(appendClock(nil, k.Cal, s.opts.has(OptOmitMicroseconds))), nil
	case KeyUUID:
		return string(appendUUID(nil, k.UUID)), nil
	default:
		return "", newEncodeErr(ReasonUnsupportedType, "unsupported object key kind")
	}
}

func (s *serializerState) beginContainer(c byte) {
	s.buf = append(s.buf, c)
	s.indentLvl++
}

func (s *serializerState) endContainer(c byte, nonEmpty bool) {
	s.indentLvl--
	if nonEmpty && s.opts.has(OptIndent2) {
		s.writeNewlineIndent()
	}
	s.buf = append(s.buf, c)
}

func (s *serializerState) writeComma() { s.buf = append(s.buf, ',') }

func (s *serializerState) beforeElement() {
	if s.opts.has(OptIndent2) {
		s.writeNewlineIndent()
	}
}

func (s *serializerState) writeNewlineIndent() {
	s.buf = append(s.buf, '\n')
	for i := 0; i < s.indentLvl; i++ {
		s.buf = append(s.buf, ' ', ' ')
	}
}
