package util

import (
	"fmt"
)

// ParseLocation represents a location in the source file
type ParseLocation struct {
	File   *ParseSourceFile
	Offset int
	Line   int
	Col    int
}

// NewParseLocation creates a new ParseLocation
func NewParseLocation(file *ParseSourceFile, offset, line, col int) *ParseLocation {
	return &ParseLocation{
		File:   file,
		Offset: offset,
		Line:   line,
		Col:    col,
	}
}

// String returns a string representation of the location
func (p *ParseLocation) String() string {
	if p.Offset >= 0 {
		return fmt.Sprintf("%s@%d:%d", p.File.URL, p.Line, p.Col)
	}
	return p.File.URL
}

// ParseSourceFile represents a source file
type ParseSourceFile struct {
	Content string
	URL     string
}

// NewParseSourceFile creates a new ParseSourceFile
func NewParseSourceFile(content, url string) *ParseSourceFile {
	return &ParseSourceFile{
		Content: content,
		URL:     url,
	}
}

// ParseSourceSpan represents a span of source code
type ParseSourceSpan struct {
	Start     *ParseLocation
	End       *ParseLocation
	FullStart *ParseLocation
	Details   *string
}

// NewParseSourceSpan creates a new ParseSourceSpan
func NewParseSourceSpan(start, end *ParseLocation, fullStart *ParseLocation, details *string) *ParseSourceSpan {
	if fullStart == nil {
		fullStart = start
	}
	return &ParseSourceSpan{
		Start:     start,
		End:       end,
		FullStart: fullStart,
		Details:   details,
	}
}

// String returns the source code in this span, or the location of a
// synthetic span that has no content.
func (p *ParseSourceSpan) String() string {
	if p.Start.Offset < 0 || p.End.Offset > len(p.Start.File.Content) {
		return p.Start.String()
	}
	return p.Start.File.Content[p.Start.Offset:p.End.Offset]
}

// SyntheticSourceSpan generates a span for a node that has no source text of
// its own, such as a request read from a unit file or an imported symbol.
func SyntheticSourceSpan(kind string, name string, sourceURL string) *ParseSourceSpan {
	sourceFileName := fmt.Sprintf("in %s %s in %s", kind, name, sourceURL)
	sourceFile := NewParseSourceFile("", sourceFileName)
	return NewParseSourceSpan(
		NewParseLocation(sourceFile, -1, -1, -1),
		NewParseLocation(sourceFile, -1, -1, -1),
		nil,
		nil,
	)
}
