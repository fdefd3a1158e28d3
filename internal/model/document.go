// This file defines the Document structure, the root container for one robot
// description, and its HCL loading functions.
//
// Why one document per file?
//
// A description document is the unit the composer operates on: one robot,
// one base reference, one composition flag. Allowing several robot blocks in
// a file would reintroduce the ambiguity about which flag scopes which
// fragment set, so a file declaring anything other than exactly one robot
// block is rejected outright.
package model

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/rigcompose/internal/ctxlog"
	"github.com/vk/rigcompose/internal/schema"
)

// FragmentRef is a document's reference to one hardware role, carrying the
// driver identifier the instantiation directive should use. An empty Driver
// defers to the fragment definition's default.
type FragmentRef struct {
	Role   Role
	Driver string
}

// Condition is one conditional block: an argument name and the ordered
// fragment references it gates.
type Condition struct {
	Argument  string
	Fragments []*FragmentRef
}

// Document is the format-agnostic representation of a robot description.
type Document struct {
	Name       string
	Base       string
	Path       string
	Arguments  map[string]*Argument
	Conditions []*Condition
}

// FlagName returns the name of the boolean argument gating fragment
// inclusion, or "" when the document declares no conditional blocks.
func (d *Document) FlagName() string {
	if len(d.Conditions) == 0 {
		return ""
	}
	return d.Conditions[0].Argument
}

// ResolveFlag resolves the composition flag value for one pass. An explicit
// override wins; otherwise the gating argument's declared default applies;
// a document with no usable default composes base-only.
func (d *Document) ResolveFlag(override *bool) bool {
	if override != nil {
		return *override
	}
	arg, ok := d.Arguments[d.FlagName()]
	if !ok || arg.Default.IsNull() {
		return false
	}
	return arg.Default.True()
}

// FragmentRefs returns the document's fragment references in declaration
// order across all conditional blocks.
func (d *Document) FragmentRefs() []*FragmentRef {
	var refs []*FragmentRef
	for _, c := range d.Conditions {
		refs = append(refs, c.Fragments...)
	}
	return refs
}

// LoadDocument parses a single robot description file into a Document.
func LoadDocument(ctx context.Context, path string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading robot description", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var parsed schema.DocumentFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	if len(parsed.Robots) != 1 {
		return nil, fmt.Errorf("description file %s must declare exactly one robot block, found %d", path, len(parsed.Robots))
	}

	doc, err := newDocumentFromHCL(parsed.Robots[0], path)
	if err != nil {
		return nil, fmt.Errorf("error in description file %s: %w", path, err)
	}

	logger.Debug("Robot description loaded",
		"robot", doc.Name,
		"arguments", len(doc.Arguments),
		"conditions", len(doc.Conditions),
	)
	return doc, nil
}

// newDocumentFromHCL translates a decoded robot block into the model,
// performing the structural checks that do not depend on a flag value.
func newDocumentFromHCL(r *schema.Robot, path string) (*Document, error) {
	doc := &Document{
		Name:      r.Name,
		Base:      r.Base,
		Path:      path,
		Arguments: make(map[string]*Argument, len(r.Arguments)),
	}

	for _, rawArg := range r.Arguments {
		if _, exists := doc.Arguments[rawArg.Name]; exists {
			return nil, fmt.Errorf("robot %q: argument %q declared twice", r.Name, rawArg.Name)
		}
		arg, err := newArgumentFromHCL(rawArg)
		if err != nil {
			return nil, fmt.Errorf("robot %q: %w", r.Name, err)
		}
		doc.Arguments[arg.Name] = arg
	}

	for _, rawWhen := range r.When {
		cond, err := doc.newConditionFromHCL(rawWhen)
		if err != nil {
			return nil, fmt.Errorf("robot %q: %w", r.Name, err)
		}
		doc.Conditions = append(doc.Conditions, cond)
	}

	return doc, nil
}

// newConditionFromHCL translates a decoded `when` block, enforcing the
// single-flag invariant: every conditional block must be gated by the same
// declared boolean argument.
func (d *Document) newConditionFromHCL(w *schema.When) (*Condition, error) {
	arg, ok := d.Arguments[w.Argument]
	if !ok {
		return nil, fmt.Errorf("when block references undeclared argument %q", w.Argument)
	}
	if arg.Type != cty.Bool {
		return nil, fmt.Errorf("when block argument %q must be bool, is %s", w.Argument, arg.Type.FriendlyName())
	}
	if len(d.Conditions) > 0 && d.Conditions[0].Argument != w.Argument {
		return nil, fmt.Errorf("conditional blocks are gated by both %q and %q; only one composition flag may be in effect", d.Conditions[0].Argument, w.Argument)
	}

	cond := &Condition{Argument: w.Argument}
	for _, rawRef := range w.Fragments {
		role, err := ParseRole(rawRef.Role)
		if err != nil {
			return nil, fmt.Errorf("when %q: %w", w.Argument, err)
		}
		cond.Fragments = append(cond.Fragments, &FragmentRef{
			Role:   role,
			Driver: rawRef.Driver,
		})
	}
	return cond, nil
}
