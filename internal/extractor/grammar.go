package extractor

// Span is a half-open byte range into the scanned document covering one
// tag name (the text between the star delimiters, delimiters excluded).
type Span struct {
	Start int
	End   int
}

// Grammar recognizes tag-definition constructs in raw help markup and
// yields the byte span of each tag name in document order. The pipeline
// treats it as a black box over text spans, so an external grammar
// engine can be substituted without touching extraction.
type Grammar interface {
	TagSpans(content []byte) []Span
}

// helpGrammar implements the star-delimited tag convention of help
// markup. A tag definition is *name* where:
//
//   - name is a non-empty run of characters other than space, tab and
//     the star delimiter itself
//   - the opening star sits at the start of a line or after a space/tab
//   - the closing star is followed by a space, a tab or the end of line
//
// No shape filtering is applied to the name: punctuation-only names are
// emitted verbatim.
type helpGrammar struct{}

// NewHelpGrammar returns the default help-markup grammar.
func NewHelpGrammar() Grammar {
	return helpGrammar{}
}

func (helpGrammar) TagSpans(content []byte) []Span {
	var spans []Span

	lineStart := 0
	for lineStart <= len(content) {
		lineEnd := lineStart
		for lineEnd < len(content) && content[lineEnd] != '\n' {
			lineEnd++
		}

		end := lineEnd
		if end > lineStart && content[end-1] == '\r' {
			end--
		}
		spans = scanLine(content, lineStart, end, spans)

		lineStart = lineEnd + 1
	}

	return spans
}

// scanLine appends the tag-name spans found in content[start:end], which
// holds exactly one line without its terminator.
func scanLine(content []byte, start, end int, spans []Span) []Span {
	i := start
	for i < end {
		if content[i] != '*' || !openerOK(content, start, i) {
			i++
			continue
		}

		j, ok := closingStar(content, i+1, end)
		if !ok {
			i++
			continue
		}

		spans = append(spans, Span{Start: i + 1, End: j})
		i = j + 1
	}
	return spans
}

// openerOK reports whether an opening star at position i is in a
// tag-definition context: line start or preceded by whitespace.
func openerOK(content []byte, lineStart, i int) bool {
	if i == lineStart {
		return true
	}
	prev := content[i-1]
	return prev == ' ' || prev == '\t'
}

// closingStar finds the star terminating a tag name that starts at
// position from. It fails on an empty name, on embedded whitespace, and
// when the closing star is not followed by whitespace or end of line.
func closingStar(content []byte, from, end int) (int, bool) {
	for j := from; j < end; j++ {
		switch content[j] {
		case ' ', '\t':
			return 0, false
		case '*':
			if j == from {
				return 0, false
			}
			if j+1 < end {
				next := content[j+1]
				if next != ' ' && next != '\t' {
					return 0, false
				}
			}
			return j, true
		}
	}
	return 0, false
}
