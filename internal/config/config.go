// Package config handles harness configuration loading and management.
package config

// Config holds all harness settings.
type Config struct {
	Window   WindowConfig  `yaml:"window"`
	GL       GLConfig      `yaml:"gl"`
	Shaders  ShaderConfig  `yaml:"shaders"`
	Textures TextureConfig `yaml:"textures"`
	Camera   CameraConfig  `yaml:"camera"`
	Logging  LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// GLConfig holds graphics context settings.
type GLConfig struct {
	Debug bool `yaml:"debug"` // request a debug context and route driver messages to the log
}

// ShaderConfig holds shader source locations.
type ShaderConfig struct {
	Vertex    string `yaml:"vertex"`
	Fragment  string `yaml:"fragment"`
	BuildLog  string `yaml:"build_log"` // overwritten on every compile/link failure
	HotReload bool   `yaml:"hot_reload"`
}

// TextureConfig holds the textures bound to units 0 and 1.
type TextureConfig struct {
	Paths        []string `yaml:"paths"`
	FlipVertical bool     `yaml:"flip_vertical"`
}

// CameraConfig holds the orbit camera settings.
type CameraConfig struct {
	FOV    float32 `yaml:"fov"` // degrees
	Radius float32 `yaml:"radius"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "LearnOpenGL",
			Width:  800,
			Height: 600,
			VSync:  true,

			ScreenshotDir: "screenshots",
		},
		GL: GLConfig{
			Debug: true,
		},
		Shaders: ShaderConfig{
			Vertex:   "res/shaders/basic.vert.glsl",
			Fragment: "res/shaders/basic.frag.glsl",
			BuildLog: "info.log",
		},
		Textures: TextureConfig{
			Paths: []string{
				"res/textures/wood_container.jpg",
				"res/textures/awesomeface.png",
			},
			FlipVertical: true,
		},
		Camera: CameraConfig{
			FOV:    45,
			Radius: 10,
			Near:   0.1,
			Far:    100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
