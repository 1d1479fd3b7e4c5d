package main

import (
	"flag"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"despawn-particles/internal/config"
	"despawn-particles/internal/convert"
	"despawn-particles/internal/utils"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	physics := flag.String("physics", "", "Kinematics provider: builtin or chipmunk")
	texture := flag.String("texture", "", "Image or .tex file used for sprites")
	meshPath := flag.String("mesh", "", "MDL file used as the despawn mesh override")
	pkgPath := flag.String("pkg", "", "scene.pkg to unpack; its textures become available to -texture")
	useX11 := flag.Bool("x11", false, "Read the cursor from the X11 root window")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			utils.Error("Failed to load config: %v", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *physics != "" {
		cfg.Physics.Provider = *physics
	}
	utils.DebugMode = *debugFlag
	utils.ShowDebugUI = *debugFlag

	if err := utils.InitLogger(utils.LogConfig{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		ShowCaller: cfg.Log.ShowCaller,
	}); err != nil {
		utils.Error("Failed to init logger: %v", err)
		os.Exit(1)
	}
	defer utils.Sync()

	utils.Info("--- Despawn Demo Start ---")

	if *pkgPath != "" {
		dir, err := unpack(*pkgPath)
		if err != nil {
			utils.Error("Failed to unpack %s: %v", *pkgPath, err)
			os.Exit(1)
		}
		utils.AssetRoots = append(utils.AssetRoots, dir)
	}

	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(*width), int32(*height), "Despawn Particles")
	defer rl.CloseWindow()

	demo, err := NewDemo(cfg, DemoOptions{
		Texture: *texture,
		Mesh:    *meshPath,
		X11:     *useX11,
	})
	if err != nil {
		utils.Error("Failed to start demo: %v", err)
		os.Exit(1)
	}
	defer demo.Close()

	utils.Info("Starting loop...")
	demo.Run()
}

// unpack extracts a scene package next to the working directory and
// converts its textures once.
func unpack(pkgPath string) (string, error) {
	outDir := "tmp"
	if _, err := os.Stat(outDir); err == nil {
		utils.Info("Using existing %s", outDir)
		return outDir, nil
	}

	f, err := os.Open(pkgPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pkg, err := convert.ReadPackage(f)
	if err != nil {
		return "", err
	}
	utils.Info("Unpacking %s (%s, %d files)...", pkgPath, pkg.Version, len(pkg.Entries))
	if err := pkg.Extract(outDir); err != nil {
		return "", err
	}
	convert.ConvertTextures(outDir, filepath.Join(outDir, "converted"))
	return outDir, nil
}
