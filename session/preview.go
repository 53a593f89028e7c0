package session

import (
	"bufio"
	"os"

	"github.com/tidwall/gjson"
)

// Preview summarizes a session log for display: the number of user messages
// and the first user message's content, truncated to maxLen runes.
// Anything unreadable or malformed yields zero values; a preview is never
// worth an error.
func Preview(contextFile string, maxLen int) (userCount int, first string) {
	f, err := os.Open(contextFile)
	if err != nil {
		return 0, ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if gjson.Get(line, "role").Str != "user" {
			continue
		}
		userCount++
		if first != "" {
			continue
		}

		content := gjson.Get(line, "content")
		switch {
		case content.Type == gjson.String:
			first = content.Str
		case content.IsArray():
			// Structured content blocks; the raw form is good enough
			// for a one-line preview.
			first = content.Raw
		}
	}

	return userCount, truncate(first, maxLen)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
