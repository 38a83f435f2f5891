package phogen

import (
	"encoding/binary"
	"fmt"

	phoerrors "github.com/phogen/phogen/errors"
	"github.com/phogen/phogen/hashval"
)

// Kind identifies the payload type of a Value.
type Kind uint8

const (
	KindString Kind = iota
	KindInt32
	KindInt64
	KindUint32
	KindUint64
)

// ParseKind resolves a key-type name as accepted on the command line.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "string":
		return KindString, nil
	case "i32":
		return KindInt32, nil
	case "i64":
		return KindInt64, nil
	case "u32":
		return KindUint32, nil
	case "u64":
		return KindUint64, nil
	}
	return 0, fmt.Errorf("%w: %q", phoerrors.ErrUnknownKeyType, name)
}

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt32:
		return "i32"
	case KindInt64:
		return "i64"
	case KindUint32:
		return "u32"
	case KindUint64:
		return "u64"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is a typed key payload: a string or a signed/unsigned 32- or
// 64-bit integer. Integer payloads hash over their little-endian byte
// encoding, which generated lookup code must reproduce.
type Value struct {
	kind Kind
	s    string
	n    uint64
}

// StringValue returns a string-typed Value.
func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

// Int32Value returns an i32-typed Value.
func Int32Value(v int32) Value {
	return Value{kind: KindInt32, n: uint64(uint32(v))}
}

// Int64Value returns an i64-typed Value.
func Int64Value(v int64) Value {
	return Value{kind: KindInt64, n: uint64(v)}
}

// Uint32Value returns a u32-typed Value.
func Uint32Value(v uint32) Value {
	return Value{kind: KindUint32, n: uint64(v)}
}

// Uint64Value returns a u64-typed Value.
func Uint64Value(v uint64) Value {
	return Value{kind: KindUint64, n: v}
}

// Kind returns the payload type.
func (v Value) Kind() Kind {
	return v.kind
}

// Str returns the string payload. It is empty for integer kinds.
func (v Value) Str() string {
	return v.s
}

// Uint64 returns the integer payload zero-extended to 64 bits.
func (v Value) Uint64() uint64 {
	return v.n
}

// Int64 returns the integer payload sign-extended to 64 bits.
func (v Value) Int64() int64 {
	if v.kind == KindInt32 {
		return int64(int32(uint32(v.n)))
	}
	return int64(v.n)
}

// Bytes returns the byte sequence fed to the first-order hash: raw
// bytes for strings, little-endian encoding for integers.
func (v Value) Bytes() []byte {
	switch v.kind {
	case KindInt32, KindUint32:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(v.n))
		return b
	case KindInt64, KindUint64:
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, v.n)
		return b
	}
	return []byte(v.s)
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.s == o.s && v.n == o.n
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindInt32, KindInt64:
		return fmt.Sprintf("%d", v.Int64())
	}
	return fmt.Sprintf("%d", v.n)
}

// Item is one surviving input element: its payload, its first-order
// key (computed once at ingestion and cached), and its final slot.
// Items belong to exactly one bucket.
type Item struct {
	val Value
	key hashval.Key
	pos int
}

// Value returns the item's payload.
func (it *Item) Value() Value {
	return it.val
}

// Key returns the item's cached first-order key.
func (it *Item) Key() hashval.Key {
	return it.key
}

// Pos returns the item's final slot in [0, m). It is -1 until the
// placement search commits the item's bucket, and never changes after.
func (it *Item) Pos() int {
	return it.pos
}
