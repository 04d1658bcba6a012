package scene

import "strconv"

// Uniforms is the part of a program the scene writes.
type Uniforms interface {
	SetInt(name string, v int32) error
	SetMat4(name string, m *[16]float32) error
}

// SamplerUnits is the number of texture units the fragment shader samples.
const SamplerUnits = 2

// SamplerName returns the sampler uniform bound to a texture unit.
func SamplerName(unit int) string {
	return "texture" + strconv.Itoa(unit)
}

// BindSamplers sets textureN = N for units 0..units-1.
func BindSamplers(u Uniforms, units int) []error {
	var errs []error
	for unit := 0; unit < units; unit++ {
		if err := u.SetInt(SamplerName(unit), int32(unit)); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Draw uploads proj and view once, then a model matrix followed by one draw
// call per cube. A failed upload is collected and the frame carries on.
func Draw(u Uniforms, cam Camera, width, height int, t float32, draw func()) []error {
	var errs []error
	set := func(name string, m [16]float32) {
		if err := u.SetMat4(name, &m); err != nil {
			errs = append(errs, err)
		}
	}

	set("proj", cam.Projection(width, height))
	set("view", cam.View(t))
	for _, model := range CubeModels() {
		set("model", model)
		draw()
	}
	return errs
}
