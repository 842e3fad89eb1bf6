package catalog

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// FileFormat identifies how a catalog resource is encoded.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatJSON               // bundled source format
	FormatMsgpack            // compact prebuilt catalogs
)

// FormatInfo contains metadata about a catalog file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatJSON: {
		Format:      FormatJSON,
		Description: "JSON Symbol Catalog",
		Extensions:  []string{".json"},
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Description: "MessagePack Symbol Catalog",
		Extensions:  []string{".msgpack", ".mpk"},
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// DetectFileFormat picks the format from the file extension.
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e == ext {
				return format, nil
			}
		}
	}
	return FormatUnknown, errors.WithHint(
		errors.Newf("unable to detect catalog format for file %s", filename),
		"supported extensions: .json, .msgpack, .mpk")
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
