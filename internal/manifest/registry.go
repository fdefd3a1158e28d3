package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/rigcompose/internal/ctxlog"
	"github.com/vk/rigcompose/internal/fsutil"
)

// Registry holds every loaded manifest variant, keyed by variant id. It is
// populated once at startup and read-only afterward.
type Registry struct {
	variants map[string]*Manifest
}

// LoadDir discovers all .yaml manifest files under manifestsPath and loads
// each as an independent variant. The variant id is the file base name
// without its extension. Any invalid file fails the whole load.
func LoadDir(ctx context.Context, manifestsPath string) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading manifest variants...", "path", manifestsPath)

	filePaths, err := fsutil.FindFilesByExtension(manifestsPath, ".yaml")
	if err != nil {
		logger.Error("Failed to walk manifests directory", "path", manifestsPath, "error", err)
		return nil, err
	}

	reg := &Registry{variants: make(map[string]*Manifest, len(filePaths))}
	for _, path := range filePaths {
		variant := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if prior, exists := reg.variants[variant]; exists {
			return nil, fmt.Errorf("manifest variant %q defined twice: %s and %s", variant, prior.path, path)
		}

		m, err := Load(variant, path)
		if err != nil {
			return nil, err
		}
		reg.variants[variant] = m
		logger.Debug("Manifest variant loaded", "variant", variant, "entries", m.Len())
	}

	logger.Info("Manifest registry loaded successfully.", "variants_loaded", len(reg.variants))
	return reg, nil
}

// Variant returns the complete manifest for a variant id.
func (r *Registry) Variant(id string) (*Manifest, error) {
	m, ok := r.variants[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known variants: %s)", ErrUnknownVariant, id, strings.Join(r.Variants(), ", "))
	}
	return m, nil
}

// Variants returns the loaded variant ids, sorted.
func (r *Registry) Variants() []string {
	ids := make([]string, 0, len(r.variants))
	for id := range r.variants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of loaded variants.
func (r *Registry) Len() int {
	return len(r.variants)
}
