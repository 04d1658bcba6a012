package gpu

import (
	"go.uber.org/zap"
)

// location resolves name on first use and caches the result for the lifetime
// of the program. Absent uniforms are reported and never cached, so a later
// lookup queries the driver again.
func (p *Program) location(name string) (int32, error) {
	if p.state != StateLinked {
		return NotFound, ErrNotLinked
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc, nil
	}

	loc := p.drv.UniformLocation(p.handle, name)
	if loc == NotFound {
		return NotFound, &UniformNotFoundError{Name: name}
	}
	p.uniforms[name] = loc
	p.log.Debug("uniform resolved", zap.String("name", name), zap.Int32("location", loc))
	return loc, nil
}

// Uniforms returns the number of cached uniform locations.
func (p *Program) Uniforms() int {
	return len(p.uniforms)
}

// SetBool uploads v as an integer 0 or 1.
func (p *Program) SetBool(name string, v bool) error {
	var i int32
	if v {
		i = 1
	}
	return p.SetInt(name, i)
}

// SetInt uploads a single int uniform.
func (p *Program) SetInt(name string, v int32) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	p.drv.Uniform1i(loc, v)
	return nil
}

// SetFloat uploads a single float uniform.
func (p *Program) SetFloat(name string, v float32) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	p.drv.Uniform1f(loc, v)
	return nil
}

// SetInts uploads an ivec1..ivec4 uniform.
func (p *Program) SetInts(name string, v []int32) error {
	if len(v) == 0 || len(v) > 4 {
		return &InvalidUniformArityError{Name: name, Size: len(v)}
	}
	loc, err := p.location(name)
	if err != nil {
		return err
	}

	switch len(v) {
	case 1:
		p.drv.Uniform1i(loc, v[0])
	case 2:
		p.drv.Uniform2i(loc, v[0], v[1])
	case 3:
		p.drv.Uniform3i(loc, v[0], v[1], v[2])
	case 4:
		p.drv.Uniform4i(loc, v[0], v[1], v[2], v[3])
	}
	return nil
}

// SetFloats uploads a vec1..vec4 uniform.
func (p *Program) SetFloats(name string, v []float32) error {
	if len(v) == 0 || len(v) > 4 {
		return &InvalidUniformArityError{Name: name, Size: len(v)}
	}
	loc, err := p.location(name)
	if err != nil {
		return err
	}

	switch len(v) {
	case 1:
		p.drv.Uniform1f(loc, v[0])
	case 2:
		p.drv.Uniform2f(loc, v[0], v[1])
	case 3:
		p.drv.Uniform3f(loc, v[0], v[1], v[2])
	case 4:
		p.drv.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
	return nil
}

// SetMat4 uploads a column-major 4x4 matrix.
func (p *Program) SetMat4(name string, m *[16]float32) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	p.drv.UniformMatrix4f(loc, m)
	return nil
}
