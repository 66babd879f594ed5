package ingest

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/tmc/langchaingo/textsplitter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// Chunking parameters: overlapping character windows sized for embedding
// models with a few-hundred-token context.
const (
	chunkSize    = 1000
	chunkOverlap = 200
)

// markdownSeparators split on structure before falling back to whitespace,
// so heading boundaries survive chunking.
var markdownSeparators = []string{"\n## ", "\n### ", "\n#### ", "\n\n", "\n", " ", ""}

// splitterForFile returns a recursive-character splitter tuned for the
// file type.
func splitterForFile(filename string) textsplitter.TextSplitter {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
			textsplitter.WithSeparators(markdownSeparators),
		)
	default:
		return textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		)
	}
}

// splitText splits content into overlapping chunks.
func splitText(filename, content string) ([]string, error) {
	return splitterForFile(filename).SplitText(content)
}

var markdownParser = goldmark.New()

// documentTitle extracts a human-readable title for an uploaded file.
// Markdown files use their first level-1 (or failing that level-2)
// heading; everything else falls back to the capitalized filename.
func documentTitle(filename string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".md" || ext == ".markdown" {
		if title := markdownTitle(content); title != "" {
			return title
		}
	}
	return titleFromFilename(filename)
}

// markdownTitle walks the markdown AST for the first usable heading.
func markdownTitle(content []byte) string {
	doc := markdownParser.Parser().Parse(gmtext.NewReader(content))

	var firstH1, firstH2 string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		text := headingText(heading, content)
		if heading.Level == 1 && firstH1 == "" {
			firstH1 = text
			return ast.WalkStop, nil
		}
		if heading.Level == 2 && firstH2 == "" {
			firstH2 = text
		}
		return ast.WalkContinue, nil
	})

	if firstH1 != "" {
		return firstH1
	}
	return firstH2
}

func headingText(heading *ast.Heading, content []byte) string {
	var b strings.Builder
	for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			b.Write(t.Segment.Value(content))
		}
	}
	return strings.TrimSpace(b.String())
}

// titleFromFilename strips the extension and capitalizes words.
func titleFromFilename(filename string) string {
	name := filepath.Base(filename)
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(name))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
