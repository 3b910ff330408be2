package frontmatter

import (
	"bytes"
	"errors"

	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Format identifies the front matter dialect of a document.
type Format string

const (
	FormatNone Format = ""
	FormatYAML Format = "yaml" // `---` delimited
	FormatTOML Format = "toml" // `+++` delimited
)

func (f Format) delimiter() string {
	if f == FormatTOML {
		return "+++"
	}
	return "---"
}

// Style captures formatting details needed for stable rewriting.
//
// It intentionally focuses on delimiter/newline shape and does not attempt
// to preserve original YAML or TOML formatting.
type Style struct {
	Format             Format
	Newline            string
	HasTrailingNewline bool
}

// ErrMissingClosingDelimiter indicates the document started with a front
// matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Split separates front matter (`---` YAML or `+++` TOML delimited) from the
// Markdown body.
//
// If the document does not start with a front matter delimiter, had is false
// and body is the full input.
func Split(content []byte) (raw []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)
	if style.Format == FormatNone {
		return nil, content, false, style, nil
	}

	nl := style.Newline
	delim := style.Format.delimiter()
	open := []byte(delim + nl)

	start := len(open)
	closeLine := []byte(delim + nl)
	if bytes.HasPrefix(content[start:], closeLine) {
		bodyStart := start + len(closeLine)
		return []byte{}, content[bodyStart:], true, style, nil
	}

	closeSeq := []byte(nl + delim + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, style, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return content[start:end], content[bodyStart:], true, style, nil
}

// Join reassembles a document from raw front matter and body.
//
// If had is false, Join returns body as-is. Otherwise Join emits the
// delimiters and newline style captured in Style.
func Join(raw []byte, body []byte, had bool, style Style) []byte {
	if !had {
		return body
	}

	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}
	format := style.Format
	if format == FormatNone {
		format = FormatYAML
	}

	open := []byte(format.delimiter() + nl)
	closing := []byte(format.delimiter() + nl)

	out := make([]byte, 0, len(open)+len(raw)+len(closing)+len(body))
	out = append(out, open...)
	out = append(out, raw...)
	out = append(out, closing...)
	out = append(out, body...)
	return out
}

// Decode parses a full document (front matter plus body) into v and returns
// the remaining Markdown body. Both YAML and TOML front matter are accepted.
// Documents without front matter decode into the zero value of v.
func Decode(content []byte, v any) (body []byte, err error) {
	return adrg.Parse(bytes.NewReader(content), v)
}

// ParseYAML parses raw YAML front matter (without delimiters) into a map.
func ParseYAML(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			newline = "\n"
			break
		}
	}

	format := FormatNone
	switch {
	case bytes.HasPrefix(content, []byte("---"+newline)):
		format = FormatYAML
	case bytes.HasPrefix(content, []byte("+++"+newline)):
		format = FormatTOML
	}

	hasTrailingNewline := len(content) > 0 && (content[len(content)-1] == '\n')

	return Style{
		Format:             format,
		Newline:            newline,
		HasTrailingNewline: hasTrailingNewline,
	}
}
