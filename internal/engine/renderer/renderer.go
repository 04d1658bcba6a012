// Package renderer draws the textured-cube scene with a gpu.Program.
package renderer

import (
	"image"
	"os"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/gpu"
	"github.com/Faultbox/learngl/internal/engine/scene"
	"github.com/Faultbox/learngl/internal/engine/texture"
)

// Config holds renderer configuration.
type Config struct {
	Width        int
	Height       int
	Textures     []string // bound to texture units 0, 1, ...
	FlipTextures bool
	Camera       scene.Camera
}

var _ scene.Uniforms = (*gpu.Program)(nil)

// Renderer owns the cube geometry and textures.
type Renderer struct {
	config   Config
	log      *zap.Logger
	vao      uint32
	vbo      uint32
	textures []uint32
}

// New uploads the cube mesh and textures. The GL context must be current and
// its functions loaded.
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{config: cfg, log: log}

	gl.Enable(gl.DEPTH_TEST)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	r.createCube()

	for _, path := range cfg.Textures {
		img, err := texture.Load(path, cfg.FlipTextures)
		if os.IsNotExist(errors.Cause(err)) {
			log.Warn("texture missing, using checkerboard", zap.String("path", path))
			img = texture.Checkerboard(64, 8)
		} else if err != nil {
			r.Close()
			return nil, errors.Wrapf(err, "texture unit %d", len(r.textures))
		}
		r.textures = append(r.textures, upload(img))
		log.Debug("texture loaded",
			zap.String("path", path),
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()),
		)
	}
	for len(r.textures) < scene.SamplerUnits {
		r.textures = append(r.textures, upload(texture.Checkerboard(64, 8)))
	}
	return r, nil
}

// Close releases the GL objects.
func (r *Renderer) Close() {
	if len(r.textures) > 0 {
		gl.DeleteTextures(int32(len(r.textures)), &r.textures[0])
		r.textures = nil
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// SetWireframe switches between line and fill rasterization.
func (r *Renderer) SetWireframe(on bool) {
	mode := uint32(gl.FILL)
	if on {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
}

// Bind makes prog current and points its samplers at the texture units.
func (r *Renderer) Bind(prog *gpu.Program) []error {
	prog.Use()
	return scene.BindSamplers(prog, len(r.textures))
}

// Draw renders one frame at time t seconds. Uniform failures are returned,
// not fatal: the frame is still drawn.
func (r *Renderer) Draw(prog *gpu.Program, t float32) []error {
	gl.ClearColor(0.2, 0.3, 0.3, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	prog.Use()
	for unit, tex := range r.textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}
	gl.BindVertexArray(r.vao)

	errs := scene.Draw(prog, r.config.Camera, r.config.Width, r.config.Height, t, func() {
		gl.DrawArrays(gl.TRIANGLES, 0, scene.CubeVertexCount)
	})

	gl.BindVertexArray(0)
	return errs
}

func (r *Renderer) createCube() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferStorage(gl.ARRAY_BUFFER, len(scene.CubeVertices)*4, unsafe.Pointer(&scene.CubeVertices[0]), 0)

	// position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, scene.Stride, 0)
	gl.EnableVertexAttribArray(0)
	// texcoord
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, scene.Stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("cube created", zap.Uint32("vao", r.vao), zap.Uint32("vbo", r.vbo))
}

// ReadPixels reads back the default framebuffer as bottom-up RGBA.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, width, height
}

func upload(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	b := img.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
