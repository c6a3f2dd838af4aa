// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
)

// Format renders record as a CUE source file. Struct fields are emitted in
// sorted key order.
func Format(record map[string]any) ([]byte, error) {
	if record == nil {
		record = map[string]any{}
	}
	v := cuecontext.New().Encode(record)
	if v.Err() != nil {
		return nil, fmt.Errorf("encoding record as CUE: %w", v.Err())
	}

	node := v.Syntax(cue.Final(), cue.Concrete(true))
	file := &ast.File{}
	switch n := node.(type) {
	case *ast.StructLit:
		file.Decls = n.Elts
	case ast.Expr:
		file.Decls = []ast.Decl{&ast.EmbedDecl{Expr: n}}
	default:
		return nil, fmt.Errorf("encoding record as CUE: unexpected node %T", node)
	}

	out, err := format.Node(file, format.Simplify())
	if err != nil {
		return nil, fmt.Errorf("formatting CUE: %w", err)
	}
	return out, nil
}
