package catalog

import (
	_ "embed"
	"encoding/json"
	"os"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/rivo/uniseg"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const maxCodepoint = 0x10FFFF

// ErrInvalidCatalog marks every structural validation failure.
var ErrInvalidCatalog = errors.New("invalid symbol catalog")

//go:embed symbols.json
var bundledJSON []byte

var (
	bundledOnce    sync.Once
	bundledCatalog *Catalog
	bundledErr     error
)

// rawGroup mirrors the resource schema with pointers so that missing
// fields can be told apart from empty ones.
type rawGroup struct {
	Name    *string      `json:"name" msgpack:"name"`
	Symbols *[]rawSymbol `json:"symbols" msgpack:"symbols"`
}

type rawSymbol struct {
	Name      *string `json:"name" msgpack:"name"`
	Value     *string `json:"value" msgpack:"value"`
	Codepoint *int64  `json:"codepoint" msgpack:"codepoint"`
}

// Bundled returns the catalog embedded in the binary. It is decoded once per
// process; later calls return the same catalog or the same error.
func Bundled() (*Catalog, error) {
	bundledOnce.Do(func() {
		bundledCatalog, bundledErr = Parse(bundledJSON, FormatJSON, language.English)
		if bundledErr != nil {
			bundledErr = errors.Wrap(bundledErr, "bundled catalog")
		}
	})
	return bundledCatalog, bundledErr
}

// BundledLocale returns the embedded catalog with group names collated for
// locale. English shares the cached catalog from Bundled.
func BundledLocale(locale language.Tag) (*Catalog, error) {
	if base, _ := locale.Base(); base.String() == "en" {
		return Bundled()
	}
	c, err := Parse(bundledJSON, FormatJSON, locale)
	return c, errors.Wrap(err, "bundled catalog")
}

// LoadFile reads and validates a catalog file, detecting its format from the
// file extension.
func LoadFile(filename string, locale language.Tag) (*Catalog, error) {
	format, err := DetectFileFormat(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog file %s", filename)
	}
	c, err := Parse(data, format, locale)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog file %s", filename)
	}
	info, _ := GetFormatInfo(format)
	log.Debugf("Loaded %s %s: %d groups, %d symbols", info.Description, filename, c.Len(), c.SymbolCount())
	return c, nil
}

// Parse decodes, validates and orders catalog data. Groups are sorted by name
// with the collation rules of locale; groups that collate equal keep their
// input order.
func Parse(data []byte, format FileFormat, locale language.Tag) (*Catalog, error) {
	var raw []rawGroup
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &raw)
	default:
		return nil, errors.Newf("unsupported catalog format: %v", format)
	}
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to decode %s", format), ErrInvalidCatalog)
	}

	groups, err := validate(raw)
	if err != nil {
		return nil, err
	}

	coll := collate.New(locale)
	sort.SliceStable(groups, func(i, j int) bool {
		return coll.CompareString(groups[i].Name, groups[j].Name) < 0
	})

	c := &Catalog{groups: groups, byName: make(map[string]int, len(groups))}
	for i, g := range groups {
		c.byName[g.Name] = i
	}
	return c, nil
}

func validate(raw []rawGroup) ([]Group, error) {
	groups := make([]Group, 0, len(raw))
	seen := make(map[string]int, len(raw))

	for gi, rg := range raw {
		if rg.Name == nil || *rg.Name == "" {
			return nil, errors.WithHint(
				errors.Wrapf(ErrInvalidCatalog, "group %d: missing name", gi),
				"every group record needs a non-empty \"name\"")
		}
		name := *rg.Name
		if name == AllGroupName {
			return nil, errors.WithHintf(
				errors.Wrapf(ErrInvalidCatalog, "group %d: name %q is reserved", gi, name),
				"%q denotes the union of all groups; rename the group", AllGroupName)
		}
		if prev, dup := seen[name]; dup {
			return nil, errors.WithHint(
				errors.Wrapf(ErrInvalidCatalog, "group %d: duplicate name %q (first seen at group %d)", gi, name, prev),
				"group names must be unique across the catalog")
		}
		seen[name] = gi
		if rg.Symbols == nil {
			return nil, errors.WithHint(
				errors.Wrapf(ErrInvalidCatalog, "group %q: missing symbols", name),
				"\"symbols\" must be an array, possibly empty")
		}

		symbols := make([]Symbol, 0, len(*rg.Symbols))
		for si, rs := range *rg.Symbols {
			s, err := validateSymbol(rs)
			if err != nil {
				return nil, errors.Wrapf(err, "group %q: symbol %d", name, si)
			}
			symbols = append(symbols, s)
		}
		groups = append(groups, Group{Name: name, Symbols: symbols})
	}

	log.Debugf("Validated %d symbol groups", len(groups))
	return groups, nil
}

func validateSymbol(rs rawSymbol) (Symbol, error) {
	if rs.Name == nil || *rs.Name == "" {
		return Symbol{}, errors.Wrap(ErrInvalidCatalog, "missing name")
	}
	if rs.Value == nil || *rs.Value == "" {
		return Symbol{}, errors.Wrapf(ErrInvalidCatalog, "%s: missing value", *rs.Name)
	}
	s := Symbol{Name: *rs.Name, Value: *rs.Value}

	if rs.Codepoint != nil {
		cp := *rs.Codepoint
		if cp < 0 || cp > maxCodepoint {
			return Symbol{}, errors.WithHint(
				errors.Wrapf(ErrInvalidCatalog, "%s: codepoint %d out of range", s.Name, cp),
				"codepoints must lie in [0, 0x10FFFF]")
		}
		r := rune(cp)
		s.Codepoint = &r
		if v, ok := singleRune(s.Value); ok && v != r {
			log.Warnf("Symbol %s: value U+%04X does not match codepoint U+%04X", s.Name, v, r)
		}
	} else if v, ok := singleRune(s.Value); ok {
		s.Codepoint = &v
	}

	if n := uniseg.GraphemeClusterCount(s.Value); n != 1 {
		log.Warnf("Symbol %s: value spans %d grapheme clusters", s.Name, n)
	}
	return s, nil
}

// singleRune reports the rune of a value made of exactly one valid rune.
func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || (r == utf8.RuneError && size <= 1) {
		return 0, false
	}
	return r, true
}
