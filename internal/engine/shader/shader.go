// Package shader loads GLSL stage sources from disk and watches them for edits.
package shader

import (
	"os"

	"github.com/pkg/errors"

	"github.com/Faultbox/learngl/internal/engine/gpu"
)

// ReadSource reads a whole stage source file into memory.
func ReadSource(path string, kind gpu.StageKind) (gpu.ShaderSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gpu.ShaderSource{}, errors.Wrapf(err, "read %s shader", kind)
	}
	return gpu.ShaderSource{Kind: kind, Text: string(data), Name: path}, nil
}

// Pair holds the vertex and fragment source paths of one program.
type Pair struct {
	Vertex   string
	Fragment string
}

// Load reads both stages of p.
func (p Pair) Load() (vert, frag gpu.ShaderSource, err error) {
	vert, err = ReadSource(p.Vertex, gpu.StageVertex)
	if err != nil {
		return vert, frag, err
	}
	frag, err = ReadSource(p.Fragment, gpu.StageFragment)
	return vert, frag, err
}

// Build loads p and constructs a program from it.
func (p Pair) Build(drv gpu.Driver, opts ...gpu.Option) (*gpu.Program, error) {
	vert, frag, err := p.Load()
	if err != nil {
		return nil, err
	}
	return gpu.NewProgram(drv, vert, frag, opts...)
}
