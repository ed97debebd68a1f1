package query

import (
	"strconv"
	"strings"

	dataplist "github.com/gitpan/Data-Plist"
)

// Extract walks a dotted keypath through collapsed data. Mapping segments
// select entries, numeric segments index arrays. The boolean reports whether
// every segment resolved.
func Extract(data any, keypath string) (any, bool) {
	if keypath == "" {
		return data, true
	}
	current := data
	for _, segment := range strings.Split(keypath, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}
	return current, true
}

// ExtractDocument walks keypath through the document's collapsed data.
func ExtractDocument(doc *dataplist.Document, keypath string) (any, bool) {
	if doc == nil {
		return nil, false
	}
	return Extract(doc.Data(), keypath)
}
