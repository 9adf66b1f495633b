package listui

import (
	"math"
	"strconv"
)

// Kind identifies the concrete type held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBool:    "bool",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindString:  "string",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Scalar is the closed set of types a ValueStore can hold.
type Scalar interface {
	bool | int32 | int64 | uint32 | uint64 | float32 | float64 | string
}

// Value is a boxed scalar. The zero Value is invalid.
//
// Numeric payloads share one word: signed integers and float bits live in
// num, unsigned integers are stored as their bit pattern.
type Value struct {
	kind Kind
	num  uint64
	str  string
}

// ValueOf boxes v.
func ValueOf[T Scalar](v T) Value {
	switch x := any(v).(type) {
	case bool:
		return Bool(x)
	case int32:
		return Int32(x)
	case int64:
		return Int64(x)
	case uint32:
		return Uint32(x)
	case uint64:
		return Uint64(x)
	case float32:
		return Float32(x)
	case float64:
		return Float64(x)
	case string:
		return Text(x)
	}
	return Value{}
}

func Bool(v bool) Value {
	var n uint64
	if v {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

func Int32(v int32) Value     { return Value{kind: KindInt32, num: uint64(int64(v))} }
func Int64(v int64) Value     { return Value{kind: KindInt64, num: uint64(v)} }
func Uint32(v uint32) Value   { return Value{kind: KindUint32, num: uint64(v)} }
func Uint64(v uint64) Value   { return Value{kind: KindUint64, num: v} }
func Float32(v float32) Value { return Value{kind: KindFloat32, num: uint64(math.Float32bits(v))} }
func Float64(v float64) Value { return Value{kind: KindFloat64, num: math.Float64bits(v)} }
func Text(v string) Value     { return Value{kind: KindString, str: v} }

// Kind reports the concrete type held by v.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds anything.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// IsNumeric reports whether v holds an integer or float.
func (v Value) IsNumeric() bool {
	switch v.kind {
	case KindInt32, KindInt64, KindUint32, KindUint64, KindFloat32, KindFloat64:
		return true
	}
	return false
}

// Float returns a numeric value widened to float64.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindInt32:
		return float64(int32(int64(v.num))), true
	case KindInt64:
		return float64(int64(v.num)), true
	case KindUint32:
		return float64(uint32(v.num)), true
	case KindUint64:
		return float64(v.num), true
	case KindFloat32:
		return float64(math.Float32frombits(uint32(v.num))), true
	case KindFloat64:
		return math.Float64frombits(v.num), true
	}
	return 0, false
}

// Downcast returns the payload of v as T. It reports false when v holds a
// different concrete type; it never panics.
func Downcast[T Scalar](v Value) (T, bool) {
	var out T
	p := any(&out)
	switch v.kind {
	case KindBool:
		if t, ok := p.(*bool); ok {
			*t = v.num != 0
			return out, true
		}
	case KindInt32:
		if t, ok := p.(*int32); ok {
			*t = int32(int64(v.num))
			return out, true
		}
	case KindInt64:
		if t, ok := p.(*int64); ok {
			*t = int64(v.num)
			return out, true
		}
	case KindUint32:
		if t, ok := p.(*uint32); ok {
			*t = uint32(v.num)
			return out, true
		}
	case KindUint64:
		if t, ok := p.(*uint64); ok {
			*t = v.num
			return out, true
		}
	case KindFloat32:
		if t, ok := p.(*float32); ok {
			*t = math.Float32frombits(uint32(v.num))
			return out, true
		}
	case KindFloat64:
		if t, ok := p.(*float64); ok {
			*t = math.Float64frombits(v.num)
			return out, true
		}
	case KindString:
		if t, ok := p.(*string); ok {
			*t = v.str
			return out, true
		}
	}
	return out, false
}

// String returns the natural text form of v.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.num != 0)
	case KindInt32, KindInt64:
		return strconv.FormatInt(int64(v.num), 10)
	case KindUint32, KindUint64:
		return strconv.FormatUint(v.num, 10)
	case KindFloat32:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(v.num))), 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(math.Float64frombits(v.num), 'g', -1, 64)
	case KindString:
		return v.str
	}
	return "<invalid>"
}

// Equal reports whether a and b hold the same type and payload.
// Float payloads compare by bit pattern, so NaN equals itself.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.num == o.num && v.str == o.str
}

// withFloat converts f back into v's numeric kind. Integer kinds round
// toward zero.
func (v Value) withFloat(f float64) Value {
	switch v.kind {
	case KindInt32:
		return Int32(int32(f))
	case KindInt64:
		return Int64(int64(f))
	case KindUint32:
		if f < 0 {
			f = 0
		}
		return Uint32(uint32(f))
	case KindUint64:
		if f < 0 {
			f = 0
		}
		return Uint64(uint64(f))
	case KindFloat32:
		return Float32(float32(f))
	case KindFloat64:
		return Float64(f)
	}
	return v
}
