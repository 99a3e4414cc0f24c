package scan

import (
	"strings"

	"github.com/hexcount-dev/hexcount/internal/hexcount"
	sitter "github.com/smacker/go-tree-sitter"
)

// KindFile marks a literal that spans a whole file in a language without a parser.
const KindFile = "file"

// previewLen caps Literal.Preview, in runes.
const previewLen = 60

// Literal is one array/list initializer and the number of hex bytes it holds.
type Literal struct {
	File       string   `json:"file"`
	Language   Language `json:"language"`
	Kind       string   `json:"kind"`
	StartLine  int      `json:"start_line"`
	EndLine    int      `json:"end_line"`
	StartByte  int      `json:"start_byte"`
	EndByte    int      `json:"end_byte"`
	Bytes      int      `json:"bytes"`
	Contiguous bool     `json:"contiguous"`
	Preview    string   `json:"preview"`
}

// collectLiterals walks the tree and records every outermost literal node.
// Literals nested inside another literal are counted as part of the outer one.
func collectLiterals(node *sitter.Node, source []byte, path string, lang Language, out []Literal) []Literal {
	if node == nil || node.IsNull() {
		return out
	}

	if literalKinds[lang][node.Type()] {
		text := string(source[node.StartByte():node.EndByte()])
		analysis := hexcount.Analyze(text)
		return append(out, Literal{
			File:       path,
			Language:   lang,
			Kind:       node.Type(),
			StartLine:  int(node.StartPoint().Row) + 1,
			EndLine:    int(node.EndPoint().Row) + 1,
			StartByte:  int(node.StartByte()),
			EndByte:    int(node.EndByte()),
			Bytes:      analysis.Count,
			Contiguous: analysis.Contiguous,
			Preview:    preview(text),
		})
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		out = collectLiterals(node.Child(i), source, path, lang, out)
	}
	return out
}

// fileLiteral treats the whole content as a single selection.
func fileLiteral(path string, content []byte) Literal {
	text := string(content)
	analysis := hexcount.Analyze(text)
	return Literal{
		File:       path,
		Language:   LangUnknown,
		Kind:       KindFile,
		StartLine:  1,
		EndLine:    strings.Count(text, "\n") + 1,
		StartByte:  0,
		EndByte:    len(content),
		Bytes:      analysis.Count,
		Contiguous: analysis.Contiguous,
		Preview:    preview(text),
	}
}

func preview(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= previewLen {
		return flat
	}
	return string(runes[:previewLen-3]) + "..."
}
