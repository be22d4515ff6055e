package helpers

import (
	"strconv"
	"strings"

	"github.com/stoewer/go-strcase"
	"github.com/tidwall/gjson"
)

// Field is a leaf value of a JSON document.
type Field struct {
	Path  []string
	Value gjson.Result
}

// EnvKey returns the path as an environment variable name, for example
// "BIOS_RELEASE_DATE".
func (f Field) EnvKey() string {
	parts := make([]string, 0, len(f.Path))
	for _, part := range f.Path {
		parts = append(parts, strcase.UpperSnakeCase(part))
	}
	return strings.Join(parts, "_")
}

// Key returns the path joined by dots.
func (f Field) Key() string {
	return strings.Join(f.Path, ".")
}

// Flatten returns the leaf values of a JSON document in the order
// of the document. Array items are addressed by their index.
func Flatten(value gjson.Result, prefix ...string) []Field {
	var result []Field
	flatten(value, prefix, &result)
	return result
}

func flatten(value gjson.Result, path []string, result *[]Field) {
	switch {
	case value.IsObject():
		value.ForEach(func(key, item gjson.Result) bool {
			flatten(item, appendPath(path, key.String()), result)
			return true
		})
	case value.IsArray():
		idx := 0
		value.ForEach(func(_, item gjson.Result) bool {
			flatten(item, appendPath(path, strconv.Itoa(idx)), result)
			idx++
			return true
		})
	default:
		*result = append(*result, Field{Path: path, Value: value})
	}
}

func appendPath(path []string, part string) []string {
	result := make([]string, 0, len(path)+1)
	result = append(result, path...)
	return append(result, part)
}
