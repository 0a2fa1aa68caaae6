// Package diag implements the diagnostic sink used by every stage of the
// front-end. No lexical, syntactic, or semantic error is fatal: each stage
// reports into the Sink and continues, per the propagation policy in
// spec.md §7.
package diag

import (
	"fmt"
	"sort"

	"github.com/dekarrin/kushc/token"
)

// Phase identifies which stage of the pipeline raised a Diagnostic.
type Phase int

const (
	Lexical Phase = iota
	Syntactic
	Semantic
)

func (p Phase) String() string {
	switch p {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case Semantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// Code is a stable diagnostic identifier. Consumers may render these codes
// in any format; the contract is only the identity of the code, not its
// string value.
type Code string

// Stable error codes named throughout spec.md §4 and §7.
const (
	// Lexical
	CodeUnknownCharacter                   Code = "UNKNOWN_CHARACTER"
	CodeExpectedDigitAfterUnderscore       Code = "EXPECTED_DIGIT_AFTER_UNDERSCORE"
	CodeInvalidIntegerLiteralPrefix        Code = "INVALID_INTEGER_LITERAL_PREFIX"
	CodeUnterminatedStringLiteral          Code = "UNTERMINATED_STRING_LITERAL"
	CodeInvalidEscapeSequence              Code = "INVALID_ESCAPE_SEQUENCE"
	CodeMalformedUnicodeCharacterSequence  Code = "MALFORMED_UNICODE_CHARACTER_SEQUENCE"
	CodeInconsistentIndentation            Code = "INCONSISTENT_INDENTATION"
	CodeUnterminatedBlockComment           Code = "UNTERMINATED_BLOCK_COMMENT"

	// Syntactic
	CodeUnexpectedToken                     Code = "UNEXPECTED_TOKEN"
	CodeTryStatementExpectsCatchOrFinally   Code = "TRY_STATEMENT_EXPECTS_CATCH_OR_FINALLY"

	// Semantic: redeclaration
	CodeRedeclarationAsVariable        Code = "REDECLARATION_OF_SYMBOL_AS_VARIABLE"
	CodeRedeclarationAsConstant        Code = "REDECLARATION_OF_SYMBOL_AS_CONSTANT"
	CodeRedeclarationAsParameter       Code = "REDECLARATION_OF_SYMBOL_AS_PARAMETER"
	CodeRedeclarationAsVariableParam   Code = "REDECLARATION_OF_SYMBOL_AS_VARIABLE_PARAMETER"
	CodeRedeclarationAsLabel           Code = "REDECLARATION_OF_SYMBOL_AS_LABEL"
	CodeRedeclarationAsLoopParameter   Code = "REDECLARATION_OF_SYMBOL_AS_LOOP_PARAMETER"
	CodeRedeclarationAsCatchParameter  Code = "REDECLARATION_OF_SYMBOL_AS_CATCH_PARAMETER"
	CodeRedeclarationAsClass           Code = "REDECLARATION_OF_SYMBOL_AS_CLASS"
	CodeRedeclarationAsFunction        Code = "REDECLARATION_OF_SYMBOL_AS_FUNCTION"
	CodeRedeclarationPreviouslyImport  Code = "REDECLARATION_OF_SYMBOL_PREVIOUSLY_IMPORTED"

	// Semantic: resolution
	CodeUnknownClass           Code = "UNKNOWN_CLASS"
	CodeUndeclaredIdentifier   Code = "UNDECLARED_IDENTIFIER"
	CodeUndeclaredClass        Code = "UNDECLARED_CLASS"
	CodeInvalidLvalue          Code = "INVALID_LVALUE"
	CodeVariableTreatedAsFunc  Code = "VARIABLE_TREATED_AS_FUNCTION"
	CodeInstantiationOfNonClass Code = "INSTANTIATION_OF_NON_CLASS_SYMBOL"
	CodeNoSuitableConstructor  Code = "NO_SUITABLE_CONSTRUCTOR"

	// Semantic: overloading
	CodeMultipleVariadicOverloads  Code = "MULTIPLE_FUNCTION_OVERLOADS_WITH_VARIABLE_PARAMETER"
	CodeDuplicateOverload          Code = "DUPLICATE_FUNCTION_OVERLOAD"
	CodeExceedsParameterThreshold  Code = "FUNCTION_DECLARATION_EXCEEDS_PARAMETER_THRESHOLD"
	CodeCausesThresholdExceeded    Code = "FUNCTION_DECLARATION_CAUSES_ANOTHER_FUNCTION_TO_EXCEED_PARAMETER_THRESHOLD"
	CodeStaticInitializerWithArgs  Code = "STATIC_INITIALIZER_WITH_PARAMETERS"
)

// Diagnostic is a single reported issue, keyed by a stable Code.
type Diagnostic struct {
	Phase Phase
	Code  Code
	Span  token.Span
	// Message is a rendered, human-facing description; Hint is an optional
	// secondary line (e.g. "did you mean ...").
	Message string
	Hint    string
}

// Sink accumulates diagnostics for one compilation unit (or an entire batch,
// if shared). It never short-circuits: every stage keeps reporting into the
// same Sink regardless of how many diagnostics already exist.
type Sink struct {
	diags []Diagnostic
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Report appends d to the sink.
func (s *Sink) Report(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// Errorf is a convenience wrapper building a Diagnostic from a fmt-style
// message.
func (s *Sink) Errorf(phase Phase, code Code, span token.Span, format string, args ...any) {
	s.Report(Diagnostic{
		Phase:   phase,
		Code:    code,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	})
}

// All returns every diagnostic reported so far, in report order: a unit's
// lexical and syntactic diagnostics come in source order (except where
// parser recovery reshuffles within a single rule), and the semantic
// passes' diagnostics follow after them. SortedByLocation gives a purely
// positional order.
func (s *Sink) All() []Diagnostic {
	return s.diags
}

// HasErrors reports whether at least one diagnostic has been accumulated.
// The overall compilation "fails" iff this is true.
func (s *Sink) HasErrors() bool {
	return len(s.diags) > 0
}

// Len returns the number of diagnostics accumulated so far.
func (s *Sink) Len() int {
	return len(s.diags)
}

// SortedByLocation returns a copy of All() ordered by file, then by source
// position. Useful for rendering a report deterministically when multiple
// units were merged into one Sink.
func (s *Sink) SortedByLocation() []Diagnostic {
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Span, out[j].Span
		if a.File != b.File {
			return a.File < b.File
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.StartCol < b.StartCol
	})
	return out
}
