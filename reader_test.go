package phogen

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseTokens(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"commas", "a,b,c", []string{"a", "b", "c"}},
		{"newlines", "a\nb\nc", []string{"a", "b", "c"}},
		{"mixed runs", "a,,b\n\n,c,", []string{"a", "b", "c"}},
		{"leading separators", "\n,a", []string{"a"}},
		{"single token", "only", []string{"only"}},
		{"separators only", ",\n,", nil},
		{"empty", "", nil},
		{"spaces kept", "a b,c", []string{"a b", "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := parseTokens([]byte(tc.in), KindString)
			if err != nil {
				t.Fatalf("parseTokens: %v", err)
			}
			if len(values) != len(tc.want) {
				t.Fatalf("got %d tokens, want %d", len(values), len(tc.want))
			}
			for i, w := range tc.want {
				if values[i].Str() != w {
					t.Errorf("token %d = %q, want %q", i, values[i].Str(), w)
				}
			}
		})
	}
}

func TestParseTokensIntegerKinds(t *testing.T) {
	values, err := parseTokens([]byte("1,2,-3"), KindInt32)
	if err != nil {
		t.Fatalf("parseTokens: %v", err)
	}
	if len(values) != 3 || values[2].Int64() != -3 {
		t.Fatalf("parsed %v", values)
	}

	if _, err := parseTokens([]byte("1,notanumber"), KindUint32); err == nil {
		t.Error("expected parse error for non-numeric u32 token")
	}
	if _, err := parseTokens([]byte("-1"), KindUint64); err == nil {
		t.Error("expected parse error for negative u64 token")
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.txt")
	content := "alpha,beta\ngamma,delta,epsilon\nalpha\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := FromFile(path, WithRand(newTestRNG(t)))
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	// Six tokens, one duplicate "alpha".
	if p.Stats().Raw != 6 {
		t.Errorf("Raw = %d, want 6", p.Stats().Raw)
	}
	if p.Len() != 5 {
		t.Errorf("Len = %d, want 5", p.Len())
	}
	assertBijection(t, p)
}

func TestFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if p.Len() != 0 || p.BucketCount() != 0 {
		t.Errorf("empty file: m=%d n=%d", p.Len(), p.BucketCount())
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFromFileIntegerKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ints.txt")
	if err := os.WriteFile(path, []byte("10,20,30,40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := FromFile(path, WithKeyType(KindUint32), WithRand(newTestRNG(t)))
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if p.Len() != 4 {
		t.Fatalf("Len = %d, want 4", p.Len())
	}
	for _, it := range p.Items() {
		if it.Value().Kind() != KindUint32 {
			t.Errorf("item kind = %v, want u32", it.Value().Kind())
		}
	}
}
