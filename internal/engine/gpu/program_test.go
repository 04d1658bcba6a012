package gpu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgram(t *testing.T) {
	drv := newFakeDriver()

	p, err := NewProgram(drv, vertex(vertSrc), fragment(fragSrc))
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, StateLinked, p.State())
	assert.NotZero(t, p.Handle())
	assert.Equal(t, 0, drv.liveShaders(), "stages must be released after link")
	assert.Equal(t, 2, drv.deletedShaders)
	assert.Equal(t, 2, drv.detached)
	assert.Equal(t, 1, drv.livePrograms())
	assert.Equal(t, 0, p.Uniforms())
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		vert  ShaderSource
		frag  ShaderSource
		stage StageKind
	}{
		{"vertex syntax", vertex("void main() { syntax error }"), fragment(fragSrc), StageVertex},
		{"fragment syntax", vertex(vertSrc), fragment("syntax error"), StageFragment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv := newFakeDriver()

			p, err := NewProgram(drv, tt.vert, tt.frag)
			require.Error(t, err)
			assert.Nil(t, p)

			var ce *ShaderCompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.stage, ce.Stage)
			assert.NotEmpty(t, ce.Log)

			assert.Equal(t, 0, drv.liveShaders(), "no stage may leak")
			assert.Equal(t, 0, drv.livePrograms())
		})
	}
}

func TestFragmentFailureReleasesVertex(t *testing.T) {
	drv := newFakeDriver()

	_, err := NewProgram(drv, vertex(vertSrc), fragment("syntax error"))
	require.Error(t, err)

	// vertex compiled, fragment compiled and rejected: both deleted
	assert.Equal(t, 2, drv.deletedShaders)
	assert.Equal(t, 0, drv.liveShaders())
}

func TestInvalidSource(t *testing.T) {
	drv := newFakeDriver()

	_, err := NewProgram(drv, vertex(""), fragment(fragSrc))
	assert.ErrorIs(t, err, ErrEmptySource)

	_, err = NewProgram(drv, ShaderSource{Kind: StageKind(7), Text: vertSrc}, fragment(fragSrc))
	assert.ErrorIs(t, err, ErrUnknownStage)

	assert.Equal(t, 0, drv.liveShaders())
	assert.Zero(t, drv.next, "no driver object may be created for rejected input")
}

func TestLinkError(t *testing.T) {
	drv := newFakeDriver()

	p, err := NewProgram(drv, vertex(vertSrc), fragment(fragSrc+"// mismatch\n"))
	require.Error(t, err)
	assert.Nil(t, p)

	var le *LinkError
	require.ErrorAs(t, err, &le)
	assert.NotEmpty(t, le.Log)

	assert.Equal(t, 0, drv.shadersAtInfoLog, "stages released before the link status is inspected")
	assert.Equal(t, []string{"detach", "detach", "infolog"}, drv.linkCheckOrder)
	assert.Equal(t, 0, drv.liveShaders())
	assert.Equal(t, 0, drv.livePrograms(), "failed program must be released")
}

func TestBuildLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "info.log")
	bl := NewFileBuildLog(path, nil)
	drv := newFakeDriver()

	_, err := NewProgram(drv, vertex(vertSrc), fragment(fragSrc+"// mismatch\n"), WithBuildLog(bl))
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, drv.ProgramInfoLog(0), string(data))

	// second failure overwrites
	_, err = NewProgram(drv, vertex("syntax error"), fragment(fragSrc), WithBuildLog(bl))
	require.Error(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, drv.ShaderInfoLog(0), string(data))
}

func TestUseAndDestroy(t *testing.T) {
	drv := newFakeDriver()
	p, err := NewProgram(drv, vertex(vertSrc), fragment(fragSrc))
	require.NoError(t, err)

	handle := p.Handle()
	p.Use()
	assert.Equal(t, handle, drv.used)

	p.Destroy()
	p.Destroy()

	assert.Equal(t, 1, drv.deletedPrograms[handle], "program released exactly once")
	assert.Equal(t, StateDestroyed, p.State())
	assert.Zero(t, p.Handle())

	drv.used = 0
	p.Use()
	assert.Zero(t, drv.used, "destroyed program must not be bound")

	assert.ErrorIs(t, p.SetFloat("tint", 1), ErrNotLinked)
}

func TestDestroyNil(t *testing.T) {
	var p *Program
	assert.NotPanics(t, p.Destroy)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "linked", StateLinked.String())
	assert.Equal(t, "errored", StateErrored.String())
	assert.Equal(t, "invalid", State(42).String())
	assert.Equal(t, "fragment", StageFragment.String())
}
