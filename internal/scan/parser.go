package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language represents a programming language the scanner can parse.
type Language string

const (
	LangGo         Language = "go"
	LangC          Language = "c"
	LangJava       Language = "java"
	LangCSharp     Language = "csharp"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangUnknown    Language = "unknown"
)

// Parser wraps one tree-sitter parser per supported language.
type Parser struct {
	parsers map[Language]*sitter.Parser
	mu      sync.Mutex
}

// NewParser initializes all language parsers.
func NewParser() *Parser {
	grammars := map[Language]*sitter.Language{
		LangGo:         golang.GetLanguage(),
		LangC:          c.GetLanguage(),
		LangJava:       java.GetLanguage(),
		LangCSharp:     csharp.GetLanguage(),
		LangPython:     python.GetLanguage(),
		LangJavaScript: javascript.GetLanguage(),
		LangTypeScript: typescript.GetLanguage(),
		LangTSX:        tsx.GetLanguage(),
	}

	parsers := make(map[Language]*sitter.Parser, len(grammars))
	for lang, grammar := range grammars {
		p := sitter.NewParser()
		p.SetLanguage(grammar)
		parsers[lang] = p
	}

	return &Parser{parsers: parsers}
}

// Parse parses source with the parser for lang.
func (p *Parser) Parse(ctx context.Context, lang Language, source []byte) (*sitter.Tree, error) {
	parser, ok := p.parsers[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// tree-sitter parsers are not safe for concurrent use
	p.mu.Lock()
	defer p.mu.Unlock()

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", lang, err)
	}

	return tree, nil
}

// IsSupported returns true if the given language has a parser.
func (p *Parser) IsSupported(lang Language) bool {
	_, ok := p.parsers[lang]
	return ok
}

// DetectLanguage maps a file name to a language by extension.
func DetectLanguage(filename string) Language {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".go":
		return LangGo
	case ".c", ".h":
		return LangC
	case ".java":
		return LangJava
	case ".cs":
		return LangCSharp
	case ".py":
		return LangPython
	case ".js", ".jsx", ".mjs", ".cjs":
		return LangJavaScript
	case ".ts":
		return LangTypeScript
	case ".tsx":
		return LangTSX
	default:
		return LangUnknown
	}
}

// literalKinds lists the node types that hold an array or list initializer.
var literalKinds = map[Language]map[string]bool{
	LangGo:         {"literal_value": true},
	LangC:          {"initializer_list": true},
	LangJava:       {"array_initializer": true},
	LangCSharp:     {"initializer_expression": true, "array_initializer": true},
	LangPython:     {"list": true, "tuple": true},
	LangJavaScript: {"array": true},
	LangTypeScript: {"array": true},
	LangTSX:        {"array": true},
}
