package scope

import "github.com/dekarrin/kushc/ast"

// ParamInfo is the part of a parameter declaration the overload resolver
// cares about: its declared type, for future signature-matching work, and
// its name for diagnostics.
type ParamInfo struct {
	Name string
	Type *ast.TypeNode
}

// Signature is one surviving overload of a FunctionSymbol.
type Signature struct {
	Fixed    []ParamInfo
	Variadic *ParamInfo // non-nil when this overload accepts a trailing `...` parameter
	Static   bool
	Index    int // allocated by Scope.NextSignatureIndex, unique within the enclosing class
	Decl     *ast.FunctionDecl
}

func (s *Signature) IsVariadic() bool { return s.Variadic != nil }

// Arity returns the number of fixed parameters.
func (s *Signature) Arity() int { return len(s.Fixed) }

// Conflict classifies why OverloadSet.Add rejected a signature.
type Conflict int

const (
	NoConflict Conflict = iota
	// ConflictMultipleVariadic: a second variadic overload was added to a
	// set that already has one.
	ConflictMultipleVariadic
	// ConflictDuplicateArity: a second fixed-arity overload with the same
	// parameter count as an existing one was added.
	ConflictDuplicateArity
	// ConflictExceedsThreshold: a fixed-arity overload was added whose
	// arity is at or above the threshold already fixed by an existing
	// variadic overload.
	ConflictExceedsThreshold
	// ConflictCausesThresholdExceeded: a variadic overload was added whose
	// threshold is at or below the arity of an existing fixed-arity
	// overload, retroactively putting that overload out of bounds.
	ConflictCausesThresholdExceeded
)

// AddResult reports the outcome of OverloadSet.Add. When Conflict is not
// NoConflict, Existing names the other overload the new one collided with;
// per spec.md §4.6 the diagnostic in every case is reported against the
// signature passed to Add (the later of the two declarations), never
// against Existing.
type AddResult struct {
	Conflict Conflict
	Existing *Signature
}

// OverloadSet holds every surviving signature bound to one function name
// within a class. At most one signature in a set is variadic; when one is
// present, its fixed arity is the "parameter threshold" T beyond which no
// other overload in the set may declare an arity of T or more (spec.md
// §4.6, rules 1-3).
type OverloadSet struct {
	Name       string
	Signatures []*Signature
}

// Variadic returns the set's variadic signature, if any.
func (os *OverloadSet) Variadic() *Signature {
	for _, s := range os.Signatures {
		if s.IsVariadic() {
			return s
		}
	}
	return nil
}

// Threshold returns the parameter threshold implied by the set's variadic
// overload, if it has one.
func (os *OverloadSet) Threshold() (int, bool) {
	if v := os.Variadic(); v != nil {
		return v.Arity(), true
	}
	return 0, false
}

// ByArity returns the fixed-arity overload declaring exactly n parameters,
// if one exists.
func (os *OverloadSet) ByArity(n int) *Signature {
	for _, s := range os.Signatures {
		if !s.IsVariadic() && s.Arity() == n {
			return s
		}
	}
	return nil
}

// Add attempts to add sig to the set, checking it against every rule in
// spec.md §4.6 before admitting it. On success sig.Index is populated from
// idx and the signature is appended; on conflict the set is left unchanged
// and the caller should not use sig.Index.
func (os *OverloadSet) Add(sig *Signature, idx int) AddResult {
	if sig.IsVariadic() {
		if existing := os.Variadic(); existing != nil {
			return AddResult{Conflict: ConflictMultipleVariadic, Existing: existing}
		}
		threshold := sig.Arity()
		for _, s := range os.Signatures {
			if !s.IsVariadic() && s.Arity() >= threshold {
				return AddResult{Conflict: ConflictCausesThresholdExceeded, Existing: s}
			}
		}
	} else {
		if existing := os.ByArity(sig.Arity()); existing != nil {
			return AddResult{Conflict: ConflictDuplicateArity, Existing: existing}
		}
		if v := os.Variadic(); v != nil {
			threshold, _ := os.Threshold()
			if sig.Arity() >= threshold {
				return AddResult{Conflict: ConflictExceedsThreshold, Existing: v}
			}
		}
	}
	sig.Index = idx
	os.Signatures = append(os.Signatures, sig)
	return AddResult{}
}
