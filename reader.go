package phogen

import (
	"fmt"
	"os"
	"strconv"

	"github.com/edsrzf/mmap-go"
)

// FromFile builds a table from a token file. Tokens are separated by
// runs of newline and comma bytes; empty tokens are skipped. Each token
// is parsed according to the configured key type (string by default,
// see WithKeyType).
//
// The file is memory-mapped read-only for the duration of the scan,
// with a sequential-access hint where the platform supports one.
func FromFile(path string, opts ...BuildOption) (*PHash, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if info.Size() == 0 {
		return Build(nil, opts...)
	}

	fadviseSequential(int(f.Fd()), 0, info.Size())

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap input: %w", err)
	}
	defer mm.Unmap()

	values, err := parseTokens(mm, cfg.keyType)
	if err != nil {
		return nil, err
	}
	return Build(values, opts...)
}

// parseTokens splits data on runs of '\n' and ',' and converts each
// non-empty token to a Value of the given kind. Token bytes are copied
// out, so data may be unmapped once parsing returns.
func parseTokens(data []byte, kind Kind) ([]Value, error) {
	var values []Value
	start := 0
	for i := 0; i <= len(data); i++ {
		if i < len(data) && data[i] != '\n' && data[i] != ',' {
			continue
		}
		if i > start {
			v, err := parseValue(string(data[start:i]), kind)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		start = i + 1
	}
	return values, nil
}

func parseValue(tok string, kind Kind) (Value, error) {
	switch kind {
	case KindString:
		return StringValue(tok), nil
	case KindInt32:
		v, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as i32: %w", tok, err)
		}
		return Int32Value(int32(v)), nil
	case KindInt64:
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as i64: %w", tok, err)
		}
		return Int64Value(v), nil
	case KindUint32:
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as u32: %w", tok, err)
		}
		return Uint32Value(uint32(v)), nil
	case KindUint64:
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as u64: %w", tok, err)
		}
		return Uint64Value(v), nil
	}
	return Value{}, fmt.Errorf("parse %q: unsupported key type %s", tok, kind)
}
