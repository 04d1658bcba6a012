package shader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/learngl/internal/engine/gpu"
)

func writePair(t *testing.T) Pair {
	t.Helper()
	dir := t.TempDir()
	p := Pair{
		Vertex:   filepath.Join(dir, "basic.vert.glsl"),
		Fragment: filepath.Join(dir, "basic.frag.glsl"),
	}
	require.NoError(t, os.WriteFile(p.Vertex, []byte("#version 460 core\nvoid main() {}\n"), 0644))
	require.NoError(t, os.WriteFile(p.Fragment, []byte("#version 460 core\nout vec4 c;\nvoid main() { c = vec4(1); }\n"), 0644))
	return p
}

func TestPairLoad(t *testing.T) {
	p := writePair(t)

	vert, frag, err := p.Load()
	require.NoError(t, err)

	assert.Equal(t, gpu.StageVertex, vert.Kind)
	assert.Equal(t, gpu.StageFragment, frag.Kind)
	assert.Equal(t, p.Vertex, vert.Name)
	assert.Contains(t, frag.Text, "vec4(1)")
}

func TestReadSourceMissing(t *testing.T) {
	_, err := ReadSource(filepath.Join(t.TempDir(), "nope.glsl"), gpu.StageVertex)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
	assert.Contains(t, err.Error(), "vertex")
}

func TestWatcherReportsEdit(t *testing.T) {
	p := writePair(t)

	w, err := Watch(p, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(p.Fragment, []byte("// edited\n"), 0644))

	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	p := writePair(t)

	w, err := Watch(p, nil)
	require.NoError(t, err)
	defer w.Close()

	other := filepath.Join(filepath.Dir(p.Vertex), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))

	select {
	case <-w.Changes():
		t.Fatal("unexpected notification for unrelated file")
	case <-time.After(4 * debounce):
	}
}
