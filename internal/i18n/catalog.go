// Package i18n provides the translation lookup used for dialog labels,
// validation messages and toast text.
//
// Catalogs are YAML documents mapping language -> key -> text. Keys are the
// English source strings, so a missing entry renders as the key itself.
package i18n

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/riordanpawley/autowriter/internal/domain"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// Catalog maps language code to key to translated text.
type Catalog map[string]map[string]string

// Builtin returns the catalog compiled into the binary.
func Builtin() Catalog {
	cat, err := ParseCatalog(builtinCatalog)
	if err != nil {
		// The embedded file is covered by tests; a failure here is a build defect.
		panic(fmt.Sprintf("i18n: builtin catalog: %v", err))
	}
	return cat
}

// ParseCatalog decodes a YAML catalog.
func ParseCatalog(data []byte) (Catalog, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &domain.CatalogError{Op: "parse", Err: err}
	}
	if len(raw) == 0 {
		return nil, &domain.CatalogError{Op: "parse", Err: errors.New("no languages defined")}
	}

	cat := make(Catalog, len(raw))
	for lang, entries := range raw {
		if lang == "" {
			return nil, &domain.CatalogError{Op: "parse", Err: errors.New("empty language code")}
		}
		if entries == nil {
			entries = map[string]string{}
		}
		cat[lang] = entries
	}
	return cat, nil
}

// LoadCatalog reads and decodes a catalog file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.CatalogError{Op: "load", Path: path, Err: err}
	}

	cat, err := ParseCatalog(data)
	if err != nil {
		var ce *domain.CatalogError
		if errors.As(err, &ce) {
			ce.Op = "load"
			ce.Path = path
		}
		return nil, err
	}
	return cat, nil
}

// Merge returns a new catalog with other's entries layered over c.
func (c Catalog) Merge(other Catalog) Catalog {
	out := make(Catalog, len(c)+len(other))
	for _, src := range []Catalog{c, other} {
		for lang, entries := range src {
			dst, ok := out[lang]
			if !ok {
				dst = make(map[string]string, len(entries))
				out[lang] = dst
			}
			for k, v := range entries {
				dst[k] = v
			}
		}
	}
	return out
}

// Languages returns the catalog's language codes in sorted order.
func (c Catalog) Languages() []string {
	langs := make([]string, 0, len(c))
	for lang := range c {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Lookup returns the text for key in lang.
func (c Catalog) Lookup(lang, key string) (string, bool) {
	entries, ok := c[lang]
	if !ok {
		return "", false
	}
	text, ok := entries[key]
	if !ok || text == "" {
		return "", false
	}
	return text, true
}
