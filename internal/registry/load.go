package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/rigcompose/internal/ctxlog"
	"github.com/vk/rigcompose/internal/fsutil"
	"github.com/vk/rigcompose/internal/model"
	"github.com/vk/rigcompose/internal/schema"
)

// LoadFragmentsRecursively discovers and parses all .hcl library files under
// fragmentsPath into the registry. The load is all-or-nothing: any invalid
// definition leaves the registry unchanged and returns an error.
func (r *Registry) LoadFragmentsRecursively(ctx context.Context, fragmentsPath string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading definitions from fragments path...", "path", fragmentsPath)

	filePaths, err := fsutil.FindFilesByExtension(fragmentsPath, ".hcl")
	if err != nil {
		logger.Error("Failed to walk fragments directory", "path", fragmentsPath, "error", err)
		return err
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl fragment files found in path", "path", fragmentsPath)
		return nil
	}

	// Stage into a fresh map so a failed load leaves the registry untouched.
	staged := make(map[model.Role]*model.Fragment)
	parser := hclparse.NewParser()

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		var parsed schema.LibraryFile
		diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
		if diags.HasErrors() {
			return fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
		}

		for _, def := range parsed.Fragments {
			frag, err := newFragmentFromHCL(def, filePath)
			if err != nil {
				return fmt.Errorf("invalid fragment definition in %s: %w", filePath, err)
			}
			if prior, exists := staged[frag.Role]; exists {
				return fmt.Errorf("fragment role %q defined twice: %s and %s", frag.Role, prior.Path, filePath)
			}
			staged[frag.Role] = frag
		}
		logger.Debug("Successfully loaded definitions from HCL file", "file", filePath)
	}

	r.fragments = staged
	logger.Info("Fragment registry loaded successfully.", "fragment_definitions_loaded", len(r.fragments))
	return nil
}

// newFragmentFromHCL translates and validates a single decoded definition.
func newFragmentFromHCL(def *schema.FragmentDefinition, path string) (*model.Fragment, error) {
	role, err := model.ParseRole(def.Role)
	if err != nil {
		return nil, err
	}
	if def.Source == "" {
		return nil, fmt.Errorf("fragment %q: source must not be empty", def.Role)
	}
	if def.Driver == "" {
		return nil, fmt.Errorf("fragment %q: driver must not be empty", def.Role)
	}

	return &model.Fragment{
		Role:        role,
		Description: def.Description,
		Source:      def.Source,
		Driver:      def.Driver,
		Path:        path,
	}, nil
}
