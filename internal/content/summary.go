package content

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// BodyBeforeDivider returns the Markdown source up to the <!--more-->
// divider, or nil when the page has no divider.
func BodyBeforeDivider(page *Page) []byte {
	if idx := bytes.Index(page.Body, SummaryDivider); idx >= 0 {
		return page.Body[:idx]
	}
	return nil
}

// PlainText extracts the visible text from an HTML fragment. Script and
// style elements are ignored and whitespace is collapsed.
func PlainText(fragment []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(fragment))
	var b strings.Builder
	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedElement(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedElement(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func isSkippedElement(name string) bool {
	return name == "script" || name == "style"
}

// TruncateWords cuts text to at most n words, appending an ellipsis when
// something was cut.
func TruncateWords(text string, n int) string {
	words := strings.Fields(text)
	if n <= 0 || len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + " …"
}
