package composer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/rigcompose/internal/composer"
	"github.com/vk/rigcompose/internal/model"
	"github.com/vk/rigcompose/internal/registry"
	"github.com/vk/rigcompose/internal/render"
)

// stretchLibrary loads a registry with the four stretch role fragments.
func stretchLibrary(t *testing.T) *registry.Registry {
	t.Helper()

	dir := t.TempDir()
	library := `
		fragment "arm" {
			source = "urdf/stretch_arm.xacro"
			driver = "StretchFakeJointDriver"
		}
		fragment "head" {
			source = "urdf/stretch_head.xacro"
			driver = "StretchHeadFakeJointDriver"
		}
		fragment "gripper" {
			source = "urdf/stretch_gripper.xacro"
			driver = "StretchGripperFakeJointDriver"
		}
		fragment "base" {
			source = "urdf/stretch_base.xacro"
			driver = "StretchFakeJointDriver"
		}
	`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stretch.hcl"), []byte(library), 0644))

	reg := registry.New()
	require.NoError(t, reg.LoadFragmentsRecursively(context.Background(), dir))
	return reg
}

// stretchDocument builds a document referencing all four roles. References
// are deliberately declared out of canonical order.
func stretchDocument() *model.Document {
	return &model.Document{
		Name: "stretch_description",
		Base: "urdf/stretch_description.xacro",
		Arguments: map[string]*model.Argument{
			"use_fake_controllers": {Name: "use_fake_controllers"},
		},
		Conditions: []*model.Condition{
			{
				Argument: "use_fake_controllers",
				Fragments: []*model.FragmentRef{
					{Role: model.RoleGripper, Driver: "StretchGripperFakeJointDriver"},
					{Role: model.RoleBase, Driver: "StretchFakeJointDriver"},
					{Role: model.RoleArm, Driver: "StretchFakeJointDriver"},
					{Role: model.RoleHead, Driver: "StretchHeadFakeJointDriver"},
				},
			},
		},
	}
}

func TestCompose_FlagFalse_BaseOnly(t *testing.T) {
	t.Parallel()

	reg := stretchLibrary(t)
	doc := stretchDocument()

	res, err := composer.Compose(context.Background(), doc, reg, false)
	require.NoError(t, err)

	assert.Equal(t, "stretch_description", res.Robot)
	assert.Equal(t, "urdf/stretch_description.xacro", res.Base)
	assert.False(t, res.Flag)

	// Declared fragments are irrelevant when the flag is false.
	assert.Empty(t, res.Directives)
}

func TestCompose_FlagTrue_FixedOrder(t *testing.T) {
	t.Parallel()

	reg := stretchLibrary(t)
	doc := stretchDocument()

	res, err := composer.Compose(context.Background(), doc, reg, true)
	require.NoError(t, err)

	require.Len(t, res.Directives, 4)

	var roles []model.Role
	var drivers []string
	for _, d := range res.Directives {
		roles = append(roles, d.Role)
		drivers = append(drivers, d.Driver)
	}

	// Canonical order wins over declaration order.
	assert.Equal(t, []model.Role{model.RoleArm, model.RoleHead, model.RoleGripper, model.RoleBase}, roles)
	assert.Equal(t, []string{
		"StretchFakeJointDriver",
		"StretchHeadFakeJointDriver",
		"StretchGripperFakeJointDriver",
		"StretchFakeJointDriver",
	}, drivers)
	assert.NotEmpty(t, res.PassID)
}

func TestCompose_MissingBase(t *testing.T) {
	t.Parallel()

	doc := stretchDocument()
	doc.Base = ""

	_, err := composer.Compose(context.Background(), doc, stretchLibrary(t), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, composer.ErrMissingBase)
	assert.ErrorContains(t, err, "stretch_description")
}

func TestCompose_DuplicateRole(t *testing.T) {
	t.Parallel()

	doc := stretchDocument()
	doc.Conditions[0].Fragments = append(doc.Conditions[0].Fragments,
		&model.FragmentRef{Role: model.RoleArm, Driver: "StretchFakeJointDriver"})

	_, err := composer.Compose(context.Background(), doc, stretchLibrary(t), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, composer.ErrDuplicateRole)
	assert.ErrorContains(t, err, `"arm"`)
}

func TestCompose_DuplicateRole_IgnoredWhenFlagFalse(t *testing.T) {
	t.Parallel()

	doc := stretchDocument()
	doc.Conditions[0].Fragments = append(doc.Conditions[0].Fragments,
		&model.FragmentRef{Role: model.RoleArm, Driver: "StretchFakeJointDriver"})

	res, err := composer.Compose(context.Background(), doc, stretchLibrary(t), false)
	require.NoError(t, err)
	assert.Empty(t, res.Directives)
}

func TestCompose_FragmentUnavailable(t *testing.T) {
	t.Parallel()

	// An empty library cannot satisfy any role reference.
	empty := registry.New()
	require.NoError(t, empty.LoadFragmentsRecursively(context.Background(), t.TempDir()))

	_, err := composer.Compose(context.Background(), stretchDocument(), empty, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, composer.ErrFragmentUnavailable)
	assert.ErrorContains(t, err, `"arm"`)
}

func TestCompose_DriverDefaultsFromLibrary(t *testing.T) {
	t.Parallel()

	doc := &model.Document{
		Name: "stretch_description",
		Base: "urdf/stretch_description.xacro",
		Conditions: []*model.Condition{
			{
				Argument: "use_fake_controllers",
				Fragments: []*model.FragmentRef{
					{Role: model.RoleHead}, // no driver override
				},
			},
		},
	}

	res, err := composer.Compose(context.Background(), doc, stretchLibrary(t), true)
	require.NoError(t, err)

	require.Len(t, res.Directives, 1)
	assert.Equal(t, "StretchHeadFakeJointDriver", res.Directives[0].Driver)
	assert.Equal(t, "urdf/stretch_head.xacro", res.Directives[0].Source)
}

func TestCompose_Idempotent(t *testing.T) {
	t.Parallel()

	reg := stretchLibrary(t)
	doc := stretchDocument()

	first, err := composer.Compose(context.Background(), doc, reg, true)
	require.NoError(t, err)
	second, err := composer.Compose(context.Background(), doc, reg, true)
	require.NoError(t, err)

	// Pass IDs differ per pass; the rendered output must not.
	assert.NotEqual(t, first.PassID, second.PassID)
	assert.Equal(t, render.Document(first), render.Document(second))
}
