// Package gen emits a constant-time lookup routine from a finished
// phogen table.
//
// The generated source carries the key table (for query validation),
// the per-bucket seed table, reference implementations of the table's
// first- and second-order hash functions spliced from embedded template
// config, and a lookup function implementing
//
//	key    = fo_hash(query bytes)
//	bucket = key mod n
//	slot   = so_hash(seeds[bucket], key) mod m
//
// Output languages are C and Python. Integer key tables hash over the
// key's little-endian encoding; the generated C lookup obtains those
// bytes with memcpy and therefore assumes a little-endian host, while
// the Python lookup uses int.to_bytes.
package gen

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/phogen/phogen"
	phoerrors "github.com/phogen/phogen/errors"
)

// Config controls the shape of the generated source.
type Config struct {
	// Name is the lookup function's name. Defaults to Namespace + "_lookup".
	Name string
	// Namespace prefixes every internal symbol. Defaults to "pho".
	Namespace string
	// Language selects the output syntax: "c" or "py".
	Language string
}

// Generate writes lookup source for p to w.
func Generate(w io.Writer, p *phogen.PHash, cfg Config) error {
	if cfg.Namespace == "" {
		cfg.Namespace = "pho"
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Namespace + "_lookup"
	}
	if cfg.Language == "" {
		cfg.Language = "c"
	}
	switch cfg.Language {
	case "c":
		return generateC(w, p, cfg)
	case "py":
		return generatePy(w, p, cfg)
	}
	return fmt.Errorf("%w: %q", phoerrors.ErrUnknownLanguage, cfg.Language)
}

// tmplData is the master templates' input.
type tmplData struct {
	Name      string
	NS        string
	M         int
	N         int
	StringKey bool
	KeyType   string // integer key type in the output language, "" for strings
	FOType    string // first-order key C type
	SeedType  string // seed table C type
	KeySize   int    // integer key width in bytes
	SignedKey bool
	Keys      []string
	Seeds     []string
	FOBody    string
	SOBody    string
	Imports   []string
	Typedefs  []string
	FOName    string
	SOName    string
}

// newTmplData fills the language-independent fields.
func newTmplData(p *phogen.PHash, cfg Config) (tmplData, phogen.Kind) {
	data := tmplData{
		Name:   cfg.Name,
		NS:     cfg.Namespace,
		M:      p.Len(),
		N:      p.BucketCount(),
		FOName: p.FirstOrder().Name(),
		SOName: p.SecondOrder().Name(),
	}
	kind := phogen.KindString
	if items := p.Items(); len(items) > 0 {
		kind = items[0].Value().Kind()
	}
	data.StringKey = kind == phogen.KindString
	return data, kind
}

// spliceBodies loads the embedded template config and renders the
// table's hash-function sources for the output language.
func spliceBodies(data *tmplData, lang string) error {
	foCfg, err := loadConfig("fo_hash.json")
	if err != nil {
		return err
	}
	soCfg, err := loadConfig("so_hash.json")
	if err != nil {
		return err
	}
	foSrc, err := foCfg.lookup(data.FOName, lang)
	if err != nil {
		return err
	}
	soSrc, err := soCfg.lookup(data.SOName, lang)
	if err != nil {
		return err
	}
	data.Imports = append(data.Imports, foSrc.Imports...)
	data.Imports = append(data.Imports, soSrc.Imports...)
	data.Typedefs = append(data.Typedefs, foSrc.Typedefs...)
	data.Typedefs = append(data.Typedefs, soSrc.Typedefs...)
	if data.FOBody, err = renderBody(foSrc, data.NS); err != nil {
		return fmt.Errorf("render %s body: %w", data.FOName, err)
	}
	if data.SOBody, err = renderBody(soSrc, data.NS); err != nil {
		return fmt.Errorf("render %s body: %w", data.SOName, err)
	}
	return nil
}

func emit(w io.Writer, name, master string, data tmplData) error {
	tmpl, err := template.New(name).Parse(master)
	if err != nil {
		return fmt.Errorf("parse master template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("emit lookup source: %w", err)
	}
	return nil
}

const cMaster = `/* Code generated by phogen ({{.FOName}}/{{.SOName}}). DO NOT EDIT. */

#include <stdint.h>
#include <stddef.h>
#include <string.h>
{{range .Imports}}{{.}}
{{end}}{{range .Typedefs}}{{.}}
{{end}}{{if gt .M 0}}
{{if .StringKey}}static const char *{{.NS}}_keys[{{.M}}] = {
{{else}}static const {{.KeyType}} {{.NS}}_keys[{{.M}}] = {
{{end}}{{range .Keys}}    {{.}},
{{end}}};

static const {{.SeedType}} {{.NS}}_seeds[{{.N}}] = {
{{range .Seeds}}    {{.}},
{{end}}};

{{.FOBody}}

{{.SOBody}}

{{if .StringKey}}int {{.Name}}(const uint8_t *data, size_t len) {
    {{.FOType}} key = {{.NS}}_fo_hash(data, len);
    uint32_t slot = (uint32_t){{.NS}}_so_hash({{.NS}}_seeds[(uint32_t)key % {{.N}}u], key) % {{.M}}u;
    const char *stored = {{.NS}}_keys[slot];
    if (strlen(stored) == len && memcmp(stored, data, len) == 0) {
        return (int)slot;
    }
    return -1;
}
{{else}}int {{.Name}}({{.KeyType}} key_in) {
    uint8_t data[sizeof(key_in)];
    memcpy(data, &key_in, sizeof(data)); /* little-endian host assumed */
    {{.FOType}} key = {{.NS}}_fo_hash(data, sizeof(data));
    uint32_t slot = (uint32_t){{.NS}}_so_hash({{.NS}}_seeds[(uint32_t)key % {{.N}}u], key) % {{.M}}u;
    if ({{.NS}}_keys[slot] == key_in) {
        return (int)slot;
    }
    return -1;
}
{{end}}{{else}}{{if .StringKey}}int {{.Name}}(const uint8_t *data, size_t len) {
    (void)data;
    (void)len;
    return -1;
}
{{else}}int {{.Name}}({{.KeyType}} key_in) {
    (void)key_in;
    return -1;
}
{{end}}{{end}}`

func generateC(w io.Writer, p *phogen.PHash, cfg Config) error {
	data, kind := newTmplData(p, cfg)
	fo := p.FirstOrder()
	so := p.SecondOrder()

	data.FOType = cUintType(fo.Bits())
	data.SeedType = cUintType(so.Seed().Bits())
	if !data.StringKey {
		data.KeyType = cIntType(kind)
	}

	for _, it := range p.Items() {
		data.Keys = append(data.Keys, cKeyLiteral(it.Value()))
	}
	for _, s := range p.Seeds() {
		if s.Bits() == 64 {
			data.Seeds = append(data.Seeds, fmt.Sprintf("0x%016xull", s.Uint64()))
		} else {
			data.Seeds = append(data.Seeds, fmt.Sprintf("0x%08xu", s.Uint32()))
		}
	}

	if data.M > 0 {
		if err := spliceBodies(&data, cfg.Language); err != nil {
			return err
		}
	}
	return emit(w, "c", cMaster, data)
}

const pyMaster = `# Code generated by phogen ({{.FOName}}/{{.SOName}}). DO NOT EDIT.
{{range .Imports}}{{.}}
{{end}}{{range .Typedefs}}{{.}}
{{end}}{{if gt .M 0}}
{{.NS}}_keys = [
{{range .Keys}}    {{.}},
{{end}}]

{{.NS}}_seeds = [
{{range .Seeds}}    {{.}},
{{end}}]

{{.FOBody}}


{{.SOBody}}


{{if .StringKey}}def {{.Name}}(data):
    key = {{.NS}}_fo_hash(data)
    slot = {{.NS}}_so_hash({{.NS}}_seeds[(key & 0xffffffff) % {{.N}}], key) % {{.M}}
    if {{.NS}}_keys[slot] == bytes(data):
        return slot
    return -1
{{else}}def {{.Name}}(key_in):
    data = key_in.to_bytes({{.KeySize}}, "little"{{if .SignedKey}}, signed=True{{end}})
    key = {{.NS}}_fo_hash(data)
    slot = {{.NS}}_so_hash({{.NS}}_seeds[(key & 0xffffffff) % {{.N}}], key) % {{.M}}
    if {{.NS}}_keys[slot] == key_in:
        return slot
    return -1
{{end}}{{else}}{{if .StringKey}}def {{.Name}}(data):
    return -1
{{else}}def {{.Name}}(key_in):
    return -1
{{end}}{{end}}`

func generatePy(w io.Writer, p *phogen.PHash, cfg Config) error {
	data, kind := newTmplData(p, cfg)

	if !data.StringKey {
		data.KeySize = 4
		if kind == phogen.KindInt64 || kind == phogen.KindUint64 {
			data.KeySize = 8
		}
		data.SignedKey = kind == phogen.KindInt32 || kind == phogen.KindInt64
	}

	for _, it := range p.Items() {
		data.Keys = append(data.Keys, pyKeyLiteral(it.Value()))
	}
	for _, s := range p.Seeds() {
		if s.Bits() == 64 {
			data.Seeds = append(data.Seeds, fmt.Sprintf("0x%016x", s.Uint64()))
		} else {
			data.Seeds = append(data.Seeds, fmt.Sprintf("0x%08x", s.Uint32()))
		}
	}

	if data.M > 0 {
		if err := spliceBodies(&data, cfg.Language); err != nil {
			return err
		}
	}
	return emit(w, "py", pyMaster, data)
}

// renderBody substitutes the symbol prefix into a hash source body.
func renderBody(src hashSource, ns string) (string, error) {
	tmpl, err := template.New("body").Parse(src.bodyText())
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, struct{ NS string }{NS: ns}); err != nil {
		return "", err
	}
	return b.String(), nil
}

func cUintType(bits int) string {
	if bits == 64 {
		return "uint64_t"
	}
	return "uint32_t"
}

func cIntType(kind phogen.Kind) string {
	switch kind {
	case phogen.KindInt32:
		return "int32_t"
	case phogen.KindInt64:
		return "int64_t"
	case phogen.KindUint32:
		return "uint32_t"
	}
	return "uint64_t"
}

// cKeyLiteral renders a payload as a C constant. Signed keys are
// emitted as casts from their unsigned bit pattern, which sidesteps
// the INT_MIN decimal-literal pitfall.
func cKeyLiteral(v phogen.Value) string {
	switch v.Kind() {
	case phogen.KindString:
		return cStringLiteral(v.Str())
	case phogen.KindInt32:
		return fmt.Sprintf("(int32_t)0x%08xu", uint32(v.Uint64()))
	case phogen.KindInt64:
		return fmt.Sprintf("(int64_t)0x%016xull", v.Uint64())
	case phogen.KindUint32:
		return fmt.Sprintf("0x%08xu", uint32(v.Uint64()))
	}
	return fmt.Sprintf("0x%016xull", v.Uint64())
}

// cStringLiteral renders s as a C string literal. Bytes outside
// printable ASCII are escaped as exactly three octal digits: unlike
// \x, which a C lexer extends over every following hex digit, a
// three-digit octal escape cannot absorb the next character of the
// key.
func cStringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			b.WriteString(`\"`)
		case c == '\\':
			b.WriteString(`\\`)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, `\%03o`, c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// pyKeyLiteral renders a payload as a Python constant: a bytes literal
// for strings, a plain decimal for integers.
func pyKeyLiteral(v phogen.Value) string {
	switch v.Kind() {
	case phogen.KindString:
		return pyBytesLiteral(v.Str())
	case phogen.KindInt32, phogen.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	}
	return strconv.FormatUint(v.Uint64(), 10)
}

// pyBytesLiteral renders s as a Python bytes literal. Python's \x
// escape consumes exactly two hex digits, so no splicing is needed.
func pyBytesLiteral(s string) string {
	var b strings.Builder
	b.WriteString(`b"`)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			b.WriteString(`\"`)
		case c == '\\':
			b.WriteString(`\\`)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, `\x%02x`, c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
