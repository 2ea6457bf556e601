package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// PlayerID derives the identifier for the row at index. The index keeps ids
// unique within one fetch even when names repeat; it also means a reordered
// upstream changes ids for existing rows.
func PlayerID(name string, index int) string {
	slug := nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "player"
	}
	return slug + "-" + strconv.Itoa(index)
}
