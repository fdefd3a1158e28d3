// This file provides the translation of a document's `argument` blocks into
// typed model values.
//
// Why evaluate types and defaults at load time?
//
// The composer is a pure function over the model; it must never see raw HCL
// expressions. Resolving each argument's type keyword and converting its
// default to that type here means every downstream consumer works with
// concrete cty values, and a bad declaration fails the load rather than a
// composition pass.
package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/rigcompose/internal/schema"
)

// Argument is the format-agnostic representation of an `argument` block.
type Argument struct {
	Name        string
	Type        cty.Type
	Description string
	Default     cty.Value
}

// newArgumentFromHCL translates a decoded argument block, resolving its type
// keyword and converting the default to that type.
func newArgumentFromHCL(a *schema.Argument) (*Argument, error) {
	ty, err := typeExprToCtyType(a.Type)
	if err != nil {
		return nil, fmt.Errorf("argument %q: %w", a.Name, err)
	}

	def := cty.NullVal(ty)
	if a.Default != nil {
		def, err = convert.Convert(*a.Default, ty)
		if err != nil {
			return nil, fmt.Errorf("argument %q: default is not a valid %s: %w", a.Name, ty.FriendlyName(), err)
		}
	}

	return &Argument{
		Name:        a.Name,
		Type:        ty,
		Description: a.Description,
		Default:     def,
	}, nil
}

// typeExprToCtyType converts an HCL type keyword expression into its cty.Type
// equivalent. Arguments steer conditional inclusion, so only the primitive
// keywords are accepted.
func typeExprToCtyType(expr hcl.Expression) (cty.Type, error) {
	trav, ok := expr.(*hclsyntax.ScopeTraversalExpr)
	if !ok || len(trav.Traversal) != 1 {
		return cty.DynamicPseudoType, fmt.Errorf("type must be a single keyword (string, number, bool)")
	}

	switch name := trav.Traversal.RootName(); name {
	case "string":
		return cty.String, nil
	case "number":
		return cty.Number, nil
	case "bool":
		return cty.Bool, nil
	default:
		return cty.DynamicPseudoType, fmt.Errorf("unknown primitive type %q", name)
	}
}
