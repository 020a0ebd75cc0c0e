// engine3d - Software 3D Renderer
// Renders a textured OBJ/GLB mesh (or a generated sphere) in the terminal or
// a desktop window with a scanline rasterizer.
//
// Controls:
//
//	Up/Down  - Raise/lower the camera
//	W/S      - Move forward/back along the view direction
//	A/D      - Turn left/right
//	Space    - Toggle model spin
//	M        - Cycle draw mode (textured, solid, wireframe)
//	Esc      - Quit
package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Jailior/3dgraphicproject/pkg/config"
	"github.com/Jailior/3dgraphicproject/pkg/host"
	"github.com/Jailior/3dgraphicproject/pkg/models"
	"github.com/Jailior/3dgraphicproject/pkg/render"
)

// progressThreshold is the OBJ size above which loading shows a progress bar.
const progressThreshold = 4 << 20

var errNoModel = errors.New("no model given (pass a .obj or .glb file, or --sphere)")

type options struct {
	configPath  string
	texturePath string
	noUV        bool
	sphere      bool
	rings       int
	segments    int
	fit         float64
	window      bool
	width       int
	height      int
	fps         int
	fov         float64
	mode        string
	spin        float64
	snapshot    string
	logFile     string
	debug       bool
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "engine3d [model.obj|model.glb]",
		Short: "Software 3D renderer for the terminal",
		Long: `Renders a textured mesh with a software rasterizer.

Up/Down raise and lower the camera, W/S move along the view direction,
A/D turn, Space toggles the model spin, M cycles the draw mode and Esc quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var model string
			if len(args) > 0 {
				model = args[0]
			}
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, opts, model)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	f.StringVarP(&opts.texturePath, "texture", "t", "", "texture image (PNG, JPEG, BMP, TIFF, WebP)")
	f.BoolVar(&opts.noUV, "no-uv", false, "ignore OBJ texture coordinates")
	f.BoolVar(&opts.sphere, "sphere", false, "render a generated sphere instead of a model file")
	f.IntVar(&opts.rings, "rings", 45, "sphere rings")
	f.IntVar(&opts.segments, "segments", 45, "sphere segments")
	f.Float64Var(&opts.fit, "fit", 0, "center the model and scale its largest side to this size (0 keeps model units)")
	f.BoolVarP(&opts.window, "window", "w", false, "open a desktop window instead of using the terminal")
	f.IntVar(&opts.width, "width", 0, "window or snapshot width in pixels")
	f.IntVar(&opts.height, "height", 0, "window or snapshot height in pixels")
	f.IntVar(&opts.fps, "fps", 0, "target frames per second")
	f.Float64Var(&opts.fov, "fov", 0, "field of view in degrees")
	f.StringVarP(&opts.mode, "mode", "m", "", "initial draw mode: textured, solid or wireframe")
	f.Float64Var(&opts.spin, "spin", 0, "model spin in radians per second")
	f.StringVar(&opts.snapshot, "snapshot", "", "render one frame to this PNG and exit")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	f.BoolVar(&opts.debug, "debug", false, "log per-frame statistics")

	return cmd
}

// resolveConfig loads the config file, if any, then applies flags the user
// set explicitly.
func resolveConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return config.Config{}, err
		}
	}

	f := cmd.Flags()
	if f.Changed("width") {
		cfg.Width = opts.width
	}
	if f.Changed("height") {
		cfg.Height = opts.height
	}
	if f.Changed("fps") {
		cfg.FPS = opts.fps
	}
	if f.Changed("fov") {
		cfg.FOV = opts.fov
	}
	if f.Changed("mode") {
		cfg.Mode = opts.mode
	}
	if f.Changed("spin") {
		cfg.Spin = opts.spin
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger returns the logger for a run. Logs go to the log file when one
// is set, to stderr for snapshots, and nowhere while the terminal is in use.
func newLogger(opts options, stderr io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}

	var w io.Writer
	closeFn := func() {}
	switch {
	case opts.logFile != "":
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case opts.snapshot != "" || opts.window:
		w = stderr
	default:
		return nil, closeFn, nil
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

func run(ctx context.Context, stdout, stderr io.Writer, cfg config.Config, opts options, model string) error {
	logger, closeLog, err := newLogger(opts, stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	render.SetLogger(logger)
	defer render.SetLogger(nil)
	if logger == nil {
		logger = render.Logger()
	}

	mesh, embedded, err := loadMesh(model, opts, stderr)
	if err != nil {
		return err
	}
	if opts.fit > 0 {
		mesh.Fit(opts.fit)
	}
	logger.Info("model loaded",
		"name", mesh.Name,
		"triangles", mesh.TriangleCount(),
		"texcoords", mesh.HasTexCoords,
		"min", mesh.BoundsMin,
		"max", mesh.BoundsMax,
	)

	tex, err := loadTexture(opts.texturePath, embedded, mesh.HasTexCoords)
	if err != nil {
		return err
	}

	pipeline := render.NewPipeline(mesh, tex, cfg.PipelineOptions())
	spin := NewSpin(cfg.Spin, cfg.FPS)
	hud := NewHUD(mesh.Name, mesh.TriangleCount())

	if opts.snapshot != "" {
		return snapshot(stdout, pipeline, cfg, opts.snapshot)
	}

	frame := func(fb *render.Framebuffer, in host.Input, dt float64) error {
		if in.JustPressed(render.KeyMode) {
			pipeline.SetMode(pipeline.Mode().Next())
			logger.Info("draw mode", "mode", pipeline.Mode())
		}
		if in.JustPressed(render.KeySpin) {
			spin.Toggle()
		}
		pipeline.Theta = spin.Advance(pipeline.Theta, dt)

		stats, err := pipeline.Frame(fb, in, dt)
		if errors.Is(err, render.ErrEmptySurface) {
			return nil
		}
		if err != nil {
			return err
		}
		hud.Update(stats, pipeline.Mode(), spin.Spinning(), dt)
		return nil
	}

	hostOpts := host.Options{
		FPS:     cfg.FPS,
		KeyHold: cfg.KeyHold,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Title:   "engine3d - " + mesh.Name,
	}
	if opts.window {
		hostOpts.Overlay = hud.Plain
		return host.RunWindow(hostOpts, frame)
	}
	hostOpts.Overlay = hud.Styled
	return host.RunTerminal(ctx, hostOpts, frame)
}

// snapshot renders a single frame at the configured size and saves it.
func snapshot(stdout io.Writer, pipeline *render.Pipeline, cfg config.Config, path string) error {
	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	stats, err := pipeline.Frame(fb, render.NoKeys, 0)
	if err != nil {
		return fmt.Errorf("render snapshot: %w", err)
	}
	if err := fb.SavePNG(path); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s (%dx%d, %d of %d triangles drawn)\n",
		path, cfg.Width, cfg.Height, stats.Rendered, stats.Submitted)
	return nil
}

// loadMesh builds the mesh to render, plus any texture embedded in it.
func loadMesh(path string, opts options, stderr io.Writer) (*models.Mesh, image.Image, error) {
	if opts.sphere {
		return models.NewSphere(1, opts.rings, opts.segments), nil, nil
	}
	if path == "" {
		return nil, nil, errNoModel
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		mesh, img, err := models.LoadGLBWithTexture(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		return mesh, img, nil
	case ".obj":
		mesh, err := loadOBJ(path, !opts.noUV, stderr)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		return mesh, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported format: %s (use .obj or .glb)", ext)
	}
}

// loadOBJ parses an OBJ file, showing a byte progress bar for large files.
func loadOBJ(path string, hasTexCoords bool, stderr io.Writer) (*models.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if info, err := f.Stat(); err == nil && info.Size() > progressThreshold {
		bar := progressbar.NewOptions64(info.Size(),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("loading "+filepath.Base(path)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Close()
		r = io.TeeReader(f, bar)
	}

	mesh, err := models.ReadOBJ(r, hasTexCoords)
	if err != nil {
		return nil, err
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// loadTexture picks the texture: an explicit file, then one embedded in the
// model, then a checkerboard for meshes with texture coordinates. Meshes
// without them render white.
func loadTexture(path string, embedded image.Image, hasTexCoords bool) (render.Sampler, error) {
	switch {
	case path != "":
		tex, err := render.LoadTexture(path)
		if err != nil {
			return nil, err
		}
		return tex, nil
	case embedded != nil:
		return render.TextureFromImage(embedded), nil
	case hasTexCoords:
		return render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100)), nil
	default:
		return nil, nil
	}
}
