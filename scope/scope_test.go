package scope

import (
	"testing"

	"github.com/dekarrin/kushc/token"
	"github.com/stretchr/testify/assert"
)

func Test_Scope_DefineAndLookup(t *testing.T) {
	assert := assert.New(t)

	s := New(CompilationUnit, nil)
	sym := NewVariable("x", token.Token{}, s, false)
	s.Define("x", sym)

	got, ok := s.Lookup("x")
	assert.True(ok)
	assert.Same(sym, got)

	_, ok = s.Lookup("missing")
	assert.False(ok)
}

func Test_Scope_DefineOverwritesWithoutDuplicatingOrder(t *testing.T) {
	assert := assert.New(t)

	s := New(Local, nil)
	first := NewVariable("x", token.Token{}, s, false)
	second := NewVariable("x", token.Token{}, s, false)
	s.Define("x", first)
	s.Define("x", second)

	assert.Equal([]string{"x"}, s.Names())
	got, _ := s.Lookup("x")
	assert.Same(second, got)
}

func Test_Scope_ResolveWalksParentChain(t *testing.T) {
	assert := assert.New(t)

	root := New(CompilationUnit, nil)
	class := New(Class, root)
	fn := New(Function, class)
	local := New(Local, fn)

	classSym := NewVariable("field", token.Token{}, class, true)
	class.Define("field", classSym)

	sym, foundIn, ok := local.Resolve("field")
	assert.True(ok)
	assert.Same(classSym, sym)
	assert.Same(class, foundIn)

	_, _, ok = local.Resolve("nonexistent")
	assert.False(ok)
}

func Test_Scope_ResolvePrefersInnermostBinding(t *testing.T) {
	assert := assert.New(t)

	outer := New(Function, nil)
	inner := New(Local, outer)

	outerSym := NewVariable("x", token.Token{}, outer, false)
	innerSym := NewVariable("x", token.Token{}, inner, false)
	outer.Define("x", outerSym)
	inner.Define("x", innerSym)

	sym, foundIn, ok := inner.Resolve("x")
	assert.True(ok)
	assert.Same(innerSym, sym)
	assert.Same(inner, foundIn)
}

func Test_Scope_EnclosingClass(t *testing.T) {
	assert := assert.New(t)

	root := New(CompilationUnit, nil)
	class := New(Class, root)
	fn := New(Function, class)
	local := New(Local, fn)

	assert.Same(class, local.EnclosingClass())
	assert.Same(class, fn.EnclosingClass())
	assert.Same(class, class.EnclosingClass())
	assert.Nil(root.EnclosingClass())
}

func Test_Scope_NextSignatureIndexMonotonic(t *testing.T) {
	assert := assert.New(t)

	class := New(Class, nil)
	assert.Equal(0, class.NextSignatureIndex())
	assert.Equal(1, class.NextSignatureIndex())
	assert.Equal(2, class.NextSignatureIndex())
}

func Test_Kind_String(t *testing.T) {
	testCases := []struct {
		name   string
		kind   Kind
		expect string
	}{
		{name: "compilation unit", kind: CompilationUnit, expect: "compilation unit"},
		{name: "class", kind: Class, expect: "class"},
		{name: "function", kind: Function, expect: "function"},
		{name: "local", kind: Local, expect: "local"},
		{name: "unknown", kind: Kind(99), expect: "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, tc.kind.String())
		})
	}
}

func Test_ExternalSymbol_ResolveFollowsChain(t *testing.T) {
	assert := assert.New(t)

	root := NewVariable("x", token.Token{}, nil, false)
	mid := NewExternal("x", token.Token{}, nil, root)
	outer := NewExternal("x", token.Token{}, nil, mid)

	assert.Same(root, outer.Resolve())
	assert.Same(root, Underlying(outer))
	assert.Same(root, Underlying(root))
}

func Test_ClassSymbol_Constructors(t *testing.T) {
	assert := assert.New(t)

	class := NewClass("Point", token.Token{}, nil, "default.Point")
	body := New(Class, nil)
	class.Body = body

	assert.Nil(class.Constructors())

	ctor := NewFunction("new", token.Token{}, body)
	body.Define("new", ctor)
	assert.Same(ctor, class.Constructors())
}

func Test_Registry_DefineAndLookup(t *testing.T) {
	assert := assert.New(t)

	r := NewRegistry()
	_, ok := r.Lookup("default.Foo")
	assert.False(ok)

	cls := NewClass("Foo", token.Token{}, nil, "default.Foo")
	r.Define("default.Foo", cls)

	got, ok := r.Lookup("default.Foo")
	assert.True(ok)
	assert.Same(cls, got)
	assert.Len(r.All(), 1)
}
