package compact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Renderer:
// - Each declaration kind renders to its notation tag
// - Signatures carry no whitespace and drop absent annotations
// - Rendering is deterministic for identical input

func TestRender_AllKinds(t *testing.T) {
	t.Parallel()

	decls := []Declaration{
		{Kind: KindModuleDoc, Name: "Order processing helpers."},
		{Kind: KindImport, Name: "collections.abc"},
		{Kind: KindClass, Name: "Handler", Bases: []string{"BaseA", "BaseB"}},
		{Kind: KindClass, Name: "Plain"},
		{Kind: KindRecord, Name: "User", Fields: []Field{
			{Name: "name", Type: "str"},
			{Name: "tags"},
		}},
		{Kind: KindFunction, Name: "handler", Params: []Param{
			{Name: "name", Type: "str"},
			{Name: "count", Type: "int"},
		}, Returns: "bool"},
		{Kind: KindMethod, Name: "handle", Params: []Param{
			{Name: "self"},
			{Name: "event"},
		}},
		{Kind: KindDunder, Name: "__init__", Params: []Param{
			{Name: "self"},
		}},
		{Kind: KindConstant, Name: "MAX_RETRIES"},
	}

	lines := Render(decls)
	require.Len(t, lines, len(decls))

	assert.Equal(t, "S:Order processing helpers.", lines[0])
	assert.Equal(t, "i:collections.abc", lines[1])
	assert.Equal(t, "C:Handler<BaseA,BaseB>", lines[2])
	assert.Equal(t, "C:Plain", lines[3])
	assert.Equal(t, "D:User;name:str;tags", lines[4])
	assert.Equal(t, "F:handler(name:str,count:int)->bool", lines[5])
	assert.Equal(t, "m:handle(self,event)", lines[6])
	assert.Equal(t, "d:__init__(self)", lines[7])
	assert.Equal(t, "E:MAX_RETRIES", lines[8])
}

func TestRender_SignatureOmitsMissingPieces(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "F:noop()", renderDecl(Declaration{Kind: KindFunction, Name: "noop"}))
	assert.Equal(t, "F:run(ctx)", renderDecl(Declaration{
		Kind:   KindFunction,
		Name:   "run",
		Params: []Param{{Name: "ctx"}},
	}))
	assert.Equal(t, "F:get()->str", renderDecl(Declaration{
		Kind:    KindFunction,
		Name:    "get",
		Returns: "str",
	}))
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	decls := []Declaration{
		{Kind: KindFunction, Name: "a", Params: []Param{{Name: "x", Type: "int"}}},
		{Kind: KindConstant, Name: "VERSION"},
	}
	first := Render(decls)
	second := Render(decls)
	assert.Equal(t, first, second)
}
