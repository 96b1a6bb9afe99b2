package goshogi

import (
	"fmt"
	"regexp"
)

// Tag is a Key and Value pair stored providing meta about a game.
type Tag struct {
	Key   string
	Value string
}

func (t *Tag) String() string {
	return fmt.Sprintf("%s: %s", t.Key, t.Value)
}

// Text returns the tag in kifu header form.
func (t *Tag) Text() string {
	return fmt.Sprintf(`[%s "%s"]`, t.Key, t.Value)
}

// Example: [Tag_Name "Tag Data"]
var tagRegex = regexp.MustCompile(`^\[([0-9A-Za-z_]+) "(.*)"\]$`)

func parseTag(line string) *Tag {
	parts := tagRegex.FindStringSubmatch(line)
	if len(parts) < 3 {
		return nil
	}
	return &Tag{Key: parts[1], Value: parts[2]}
}
