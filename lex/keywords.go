package lex

import "github.com/dekarrin/kushc/token"

type keywordEntry struct {
	lexeme string
	kind   token.Kind
}

// keywordsByFirstByte indexes every keyword by the first byte of its lexeme.
// classifyIdentifier dispatches on ident[0] then compares candidates of the
// same length for an exact match, avoiding a full map hash for every
// identifier scanned. Built once from token.Keywords(), the single source of
// truth for the reserved-word set.
var keywordsByFirstByte = buildKeywordIndex()

func buildKeywordIndex() map[byte][]keywordEntry {
	idx := make(map[byte][]keywordEntry)
	for lexeme, kind := range token.Keywords() {
		b := lexeme[0]
		idx[b] = append(idx[b], keywordEntry{lexeme: lexeme, kind: kind})
	}
	return idx
}

// classifyIdentifier dispatches on the first character of ident, then
// exact-matches against the keyword set for the observed length. Unmatched
// lexemes retain the identifier kind.
func classifyIdentifier(ident string) token.Kind {
	candidates := keywordsByFirstByte[ident[0]]
	for _, c := range candidates {
		if len(c.lexeme) == len(ident) && c.lexeme == ident {
			return c.kind
		}
	}
	return token.Identifier
}
