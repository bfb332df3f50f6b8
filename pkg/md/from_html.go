// Package md converts page text to markdown.
package md

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// FromHTML converts a single HTML fragment, such as the payload of one text
// run, to markdown.
func FromHTML(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(markdown), nil
}

// FromPageText converts the text payloads of a page to markdown. Each payload
// becomes one line so highlighted code keeps its line structure.
func FromPageText(payloads []string) (string, error) {
	lines := make([]string, 0, len(payloads))
	for i, p := range payloads {
		line, err := FromHTML(p)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", i+1, err)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}
