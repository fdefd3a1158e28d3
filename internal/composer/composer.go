package composer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vk/rigcompose/internal/ctxlog"
	"github.com/vk/rigcompose/internal/model"
	"github.com/vk/rigcompose/internal/registry"
)

// Directive is one fragment instantiation: the role, the content the
// fragment contributes, and the driver identifier to instantiate it with.
type Directive struct {
	Role   model.Role
	Source string
	Driver string
}

// Result is the outcome of one composition pass. The base inclusion always
// comes first; Directives holds the fragment inclusions in canonical order,
// and is empty for a base-only pass.
type Result struct {
	// PassID correlates log lines and dashboard events for one pass. It is
	// not part of the rendered output.
	PassID string

	Robot      string
	Flag       bool
	Base       string
	Directives []Directive
}

// Compose resolves a description document and a composition flag value into
// an ordered inclusion list.
func Compose(ctx context.Context, doc *model.Document, reg *registry.Registry, flag bool) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("robot", doc.Name, "flag", flag)

	res := &Result{
		PassID: uuid.NewString(),
		Robot:  doc.Name,
		Flag:   flag,
	}

	// The base reference is the unconditional dependency root; it resolves
	// before any optional fragment is even considered.
	if doc.Base == "" {
		return nil, fmt.Errorf("%w: robot %q declares no base content", ErrMissingBase, doc.Name)
	}
	res.Base = doc.Base

	if !flag {
		logger.Debug("Composition flag is false, producing base-only result.")
		return res, nil
	}

	refs := doc.FragmentRefs()
	selected := make(map[model.Role]*model.FragmentRef, len(refs))
	for _, ref := range refs {
		if _, dup := selected[ref.Role]; dup {
			return nil, fmt.Errorf("%w: role %q requested twice in robot %q", ErrDuplicateRole, ref.Role, doc.Name)
		}
		selected[ref.Role] = ref
	}

	// Fragment inclusion follows the canonical role order regardless of
	// declaration order in the document.
	for _, role := range model.CompositionOrder() {
		ref, ok := selected[role]
		if !ok {
			continue
		}

		frag, ok := reg.Fragment(role)
		if !ok {
			return nil, fmt.Errorf("%w: role %q referenced by robot %q has no loaded definition", ErrFragmentUnavailable, role, doc.Name)
		}

		driver := ref.Driver
		if driver == "" {
			driver = frag.Driver
		}

		res.Directives = append(res.Directives, Directive{
			Role:   role,
			Source: frag.Source,
			Driver: driver,
		})
	}

	logger.Debug("Composition pass complete.",
		"pass_id", res.PassID,
		"fragments", len(res.Directives),
	)
	return res, nil
}
