package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stretchManifest = `
repositories:
  stretch_ros2:
    type: git
    url: https://github.com/hello-robot/stretch_ros2.git
    version: galactic
  stretch_body:
    type: git
    url: https://github.com/hello-robot/stretch_body.git
    version: master
  realsense_ros:
    type: git
    url: https://github.com/IntelRealSense/realsense-ros.git
    version: ros2
`

// writeManifest writes one manifest file into a temp dir and returns its path.
func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	t.Parallel()

	m, err := Load("stretch", writeManifest(t, "stretch.yaml", stretchManifest))
	require.NoError(t, err)

	assert.Equal(t, "stretch", m.Variant())
	assert.Equal(t, 3, m.Len())

	entry, err := m.Entry("stretch_body")
	require.NoError(t, err)
	assert.Equal(t, Entry{
		Name:    "stretch_body",
		Type:    "git",
		URL:     "https://github.com/hello-robot/stretch_body.git",
		Version: "master",
	}, entry)

	// Entries keep authored order.
	entries := m.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "stretch_ros2", entries[0].Name)
	assert.Equal(t, "stretch_body", entries[1].Name)
	assert.Equal(t, "realsense_ros", entries[2].Name)
}

func TestEntry_UnknownDependency(t *testing.T) {
	t.Parallel()

	m, err := Load("stretch", writeManifest(t, "stretch.yaml", stretchManifest))
	require.NoError(t, err)

	_, err = m.Entry("moveit2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDependency)
	assert.ErrorContains(t, err, `"moveit2"`)
	assert.ErrorContains(t, err, `"stretch"`)

	// Other lookups on the same manifest are unaffected.
	_, err = m.Entry("stretch_ros2")
	assert.NoError(t, err)
}

func TestLoad_DuplicateName_FailsWholly(t *testing.T) {
	t.Parallel()

	dup := `
repositories:
  stretch_ros2:
    type: git
    url: https://github.com/hello-robot/stretch_ros2.git
    version: galactic
  stretch_ros2:
    type: git
    url: https://github.com/hello-robot/stretch_ros2.git
    version: humble
`
	m, err := Load("stretch", writeManifest(t, "stretch.yaml", dup))
	require.Error(t, err)
	assert.Nil(t, m)
}

func TestLoad_MalformedEntries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing type",
			yaml: `
repositories:
  stretch_ros2:
    url: https://github.com/hello-robot/stretch_ros2.git
    version: galactic
`,
			wantErr: "no source type",
		},
		{
			name: "missing url",
			yaml: `
repositories:
  stretch_ros2:
    type: git
    version: galactic
`,
			wantErr: "no url",
		},
		{
			name: "missing version",
			yaml: `
repositories:
  stretch_ros2:
    type: git
    url: https://github.com/hello-robot/stretch_ros2.git
`,
			wantErr: "no version",
		},
		{
			name:    "no repositories mapping",
			yaml:    `packages: {}`,
			wantErr: "no repositories mapping",
		},
		{
			name: "entry is not a mapping",
			yaml: `
repositories:
  stretch_ros2: just-a-string
`,
			wantErr: "stretch_ros2",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m, err := Load("stretch", writeManifest(t, "stretch.yaml", tc.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedEntry)
			assert.ErrorContains(t, err, tc.wantErr)
			assert.Nil(t, m)
		})
	}
}
