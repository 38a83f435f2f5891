package gen

import (
	"embed"
	"fmt"
	"strings"

	"github.com/sugawarayuuta/sonnet"

	phoerrors "github.com/phogen/phogen/errors"
)

// The reference sources for the hash algorithms live in embedded JSON
// config, keyed by hash name and then by output language. The build
// splices the matching source into the generated file so the runtime
// computation is bit-for-bit the one the table was constructed with.

//go:embed res/fo_hash.json res/so_hash.json
var resFS embed.FS

// hashSource is one hash function's source for one output language.
// Body lines are text/template fragments; the symbol prefix is
// substituted as {{.NS}}.
type hashSource struct {
	Body     []string `json:"body"`
	Imports  []string `json:"imports,omitempty"`
	Typedefs []string `json:"typedefs,omitempty"`
}

func (s hashSource) bodyText() string {
	return strings.Join(s.Body, "\n")
}

// templateConfig maps hash name -> language -> source.
type templateConfig struct {
	Functions map[string]map[string]hashSource `json:"functions"`
}

func loadConfig(file string) (*templateConfig, error) {
	raw, err := resFS.ReadFile("res/" + file)
	if err != nil {
		return nil, fmt.Errorf("read template config %s: %w", file, err)
	}
	var cfg templateConfig
	if err := sonnet.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse template config %s: %w", file, err)
	}
	return &cfg, nil
}

func (c *templateConfig) lookup(hash, lang string) (hashSource, error) {
	langs, ok := c.Functions[hash]
	if !ok {
		return hashSource{}, fmt.Errorf("%w: %q has no templates", phoerrors.ErrNoTemplate, hash)
	}
	src, ok := langs[lang]
	if !ok {
		return hashSource{}, fmt.Errorf("%w: %q has no %s template", phoerrors.ErrNoTemplate, hash, lang)
	}
	return src, nil
}
