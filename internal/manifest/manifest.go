package manifest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for the manifest failure kinds, matched with errors.Is.
var (
	// ErrUnknownVariant reports a lookup for a variant id no manifest file
	// was loaded under.
	ErrUnknownVariant = errors.New("unknown manifest variant")

	// ErrUnknownDependency reports a lookup for a dependency name absent
	// from an otherwise valid manifest.
	ErrUnknownDependency = errors.New("unknown dependency")

	// ErrMalformedEntry reports an entry missing a required field or a
	// duplicated dependency name. It is raised at load time and fails the
	// whole manifest.
	ErrMalformedEntry = errors.New("malformed manifest entry")
)

// Entry is one pinned external source dependency.
type Entry struct {
	Name    string
	Type    string
	URL     string
	Version string
}

// Manifest is an immutable, ordered mapping of dependency name to Entry for
// one point in time.
type Manifest struct {
	variant string
	path    string
	names   []string
	entries map[string]Entry
}

// Variant returns the identifier this manifest was loaded under.
func (m *Manifest) Variant() string { return m.variant }

// Len returns the number of entries.
func (m *Manifest) Len() int { return len(m.entries) }

// Entry returns the single entry for a dependency name.
func (m *Manifest) Entry(name string) (Entry, error) {
	e, ok := m.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q in manifest variant %q", ErrUnknownDependency, name, m.variant)
	}
	return e, nil
}

// Entries returns all entries in authored order.
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, 0, len(m.names))
	for _, name := range m.names {
		out = append(out, m.entries[name])
	}
	return out
}

// rawEntry is the YAML decode target for one repositories value.
type rawEntry struct {
	Type    string `yaml:"type"`
	URL     string `yaml:"url"`
	Version string `yaml:"version"`
}

// rawFile is the YAML decode target for a manifest file. Repositories stays
// a raw node so authored key order survives decoding.
type rawFile struct {
	Repositories yaml.Node `yaml:"repositories"`
}

// Load parses a single manifest file under the given variant id. Any invalid
// entry fails the whole file.
func Load(variant, path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if raw.Repositories.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: manifest variant %q has no repositories mapping", ErrMalformedEntry, variant)
	}

	m := &Manifest{
		variant: variant,
		path:    path,
		entries: make(map[string]Entry),
	}

	// A yaml mapping node stores keys and values as alternating children.
	content := raw.Repositories.Content
	for i := 0; i+1 < len(content); i += 2 {
		name := content[i].Value

		var re rawEntry
		if err := content[i+1].Decode(&re); err != nil {
			return nil, fmt.Errorf("%w: dependency %q in variant %q: %v", ErrMalformedEntry, name, variant, err)
		}

		entry := Entry{Name: name, Type: re.Type, URL: re.URL, Version: re.Version}
		if err := entry.validate(variant); err != nil {
			return nil, err
		}
		if _, dup := m.entries[name]; dup {
			return nil, fmt.Errorf("%w: dependency %q duplicated in variant %q", ErrMalformedEntry, name, variant)
		}

		m.names = append(m.names, name)
		m.entries[name] = entry
	}

	return m, nil
}

// validate enforces the per-entry construction invariants.
func (e Entry) validate(variant string) error {
	switch {
	case e.Name == "":
		return fmt.Errorf("%w: empty dependency name in variant %q", ErrMalformedEntry, variant)
	case e.Type == "":
		return fmt.Errorf("%w: dependency %q in variant %q has no source type", ErrMalformedEntry, e.Name, variant)
	case e.URL == "":
		return fmt.Errorf("%w: dependency %q in variant %q has no url", ErrMalformedEntry, e.Name, variant)
	case e.Version == "":
		return fmt.Errorf("%w: dependency %q in variant %q has no version", ErrMalformedEntry, e.Name, variant)
	}
	return nil
}
