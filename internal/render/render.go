// Package render emits a composed description as a fully expanded HCL
// document: the same structural shape as the input, with every conditional
// resolved into ordered include blocks.
//
// Emission is deterministic. The same Result always renders to byte-identical
// output, which is what makes composition idempotence checkable end to end.
package render

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/rigcompose/internal/composer"
)

// Document renders a composition result as expanded HCL, suitable for direct
// consumption by an external assembler or loader.
func Document(res *composer.Result) []byte {
	f := hclwrite.NewEmptyFile()

	robot := f.Body().AppendNewBlock("robot", []string{res.Robot})
	body := robot.Body()

	// Base inclusion first, always.
	base := body.AppendNewBlock("include", []string{"base"})
	base.Body().SetAttributeValue("source", cty.StringVal(res.Base))

	for _, d := range res.Directives {
		body.AppendNewline()
		blk := body.AppendNewBlock("include", []string{string(d.Role)})
		blk.Body().SetAttributeValue("source", cty.StringVal(d.Source))
		blk.Body().SetAttributeValue("driver", cty.StringVal(d.Driver))
	}

	return f.Bytes()
}
