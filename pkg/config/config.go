// Package config loads viewer settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Jailior/3dgraphicproject/pkg/math3d"
	"github.com/Jailior/3dgraphicproject/pkg/render"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// maxConfigSize bounds the config file read.
const maxConfigSize = 1024 * 1024

// Config holds every tunable of the viewer. Zero-valued fields in a file
// keep their defaults because Load decodes over Default().
type Config struct {
	FOV         float64    `yaml:"fov"`
	Near        float64    `yaml:"near"`
	Far         float64    `yaml:"far"`
	Light       [3]float64 `yaml:"light"`
	WorldOffset [3]float64 `yaml:"world_offset"`
	MoveSpeed   float64    `yaml:"move_speed"`
	TurnSpeed   float64    `yaml:"turn_speed"`
	Background  [3]uint8   `yaml:"background"`
	Mode        string     `yaml:"mode"`

	FPS    int `yaml:"fps"`
	Width  int `yaml:"width"`  // Window width in pixels
	Height int `yaml:"height"` // Window height in pixels

	// Spin is the model rotation rate in radians per second.
	Spin float64 `yaml:"spin"`

	// KeyHold is how long a terminal key counts as held after its last
	// press or repeat when the terminal reports no release.
	KeyHold time.Duration `yaml:"key_hold"`
}

// Default returns the built-in settings.
func Default() Config {
	opts := render.DefaultOptions()
	return Config{
		FOV:         opts.FOV,
		Near:        opts.Near,
		Far:         opts.Far,
		Light:       vecArray(opts.LightDir),
		WorldOffset: vecArray(opts.WorldOffset),
		MoveSpeed:   opts.MoveSpeed,
		TurnSpeed:   opts.TurnSpeed,
		Background:  [3]uint8{opts.Background.R, opts.Background.G, opts.Background.B},
		Mode:        opts.Mode.String(),
		FPS:         60,
		Width:       640,
		Height:      480,
		Spin:        1,
		KeyHold:     200 * time.Millisecond,
	}
}

// Load reads a YAML config file on top of Default and validates it.
// Unknown keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxConfigSize+1))
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(data) > maxConfigSize {
		return Config{}, fmt.Errorf("read config: %s larger than %d bytes", path, maxConfigSize)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that would break the pipeline.
func (c Config) Validate() error {
	switch {
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: fov %v must be in (0, 180)", ErrInvalid, c.FOV)
	case c.Near <= 0:
		return fmt.Errorf("%w: near %v must be positive", ErrInvalid, c.Near)
	case c.Far <= c.Near:
		return fmt.Errorf("%w: far %v must exceed near %v", ErrInvalid, c.Far, c.Near)
	case c.Light == [3]float64{}:
		return fmt.Errorf("%w: light direction is zero", ErrInvalid)
	case c.MoveSpeed < 0 || c.TurnSpeed < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalid)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d must be positive", ErrInvalid, c.FPS)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.KeyHold < 0:
		return fmt.Errorf("%w: key_hold %v is negative", ErrInvalid, c.KeyHold)
	}
	if _, err := render.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// PipelineOptions converts the config into render options. Call Validate
// first; an unknown mode falls back to textured.
func (c Config) PipelineOptions() render.Options {
	mode, err := render.ParseMode(c.Mode)
	if err != nil {
		mode = render.ModeTextured
	}
	return render.Options{
		FOV:         c.FOV,
		Near:        c.Near,
		Far:         c.Far,
		LightDir:    math3d.V3(c.Light[0], c.Light[1], c.Light[2]),
		WorldOffset: math3d.V3(c.WorldOffset[0], c.WorldOffset[1], c.WorldOffset[2]),
		Background:  render.RGB(c.Background[0], c.Background[1], c.Background[2]),
		MoveSpeed:   c.MoveSpeed,
		TurnSpeed:   c.TurnSpeed,
		Mode:        mode,
	}
}

func vecArray(v math3d.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
