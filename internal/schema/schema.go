package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// --- Robot Description Structures ---

// Argument represents a declared `argument` block within a robot document.
// Arguments carry typed defaults that steer conditional fragment inclusion.
type Argument struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     *cty.Value     `hcl:"default,optional"`
}

// FragmentRef represents a `fragment` block inside a `when` block. It names a
// hardware role and the driver identifier to instantiate it with.
type FragmentRef struct {
	Role   string `hcl:"role,label"`
	Driver string `hcl:"driver,optional"`
}

// When represents a conditional block gated by a named boolean argument. Its
// fragment references are only materialized when the argument resolves true.
type When struct {
	Argument  string         `hcl:"argument,label"`
	Fragments []*FragmentRef `hcl:"fragment,block"`
}

// Robot represents a `robot` block: one robot description document with a
// mandatory base reference and optional conditional fragment inclusions.
type Robot struct {
	Name      string      `hcl:"name,label"`
	Base      string      `hcl:"base,optional"`
	Arguments []*Argument `hcl:"argument,block"`
	When      []*When     `hcl:"when,block"`
}

// DocumentFile represents the top-level structure of a robot description file.
type DocumentFile struct {
	Robots []*Robot `hcl:"robot,block"`
	Body   hcl.Body `hcl:",remain"`
}

// --- Fragment Library Structures ---

// FragmentDefinition represents the HCL manifest for one hardware-interface
// fragment. The label is the role the fragment fills (arm, head, gripper,
// base); `driver` is the role's default fake-driver identifier.
type FragmentDefinition struct {
	Role        string `hcl:"role,label"`
	Description string `hcl:"description,optional"`
	Source      string `hcl:"source"`
	Driver      string `hcl:"driver"`
}

// LibraryFile represents the top-level structure of a fragment library file.
type LibraryFile struct {
	Fragments []*FragmentDefinition `hcl:"fragment,block"`
	Body      hcl.Body              `hcl:",remain"`
}
