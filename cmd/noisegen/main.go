package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/ironsheep/noise-texture/internal/config"
	"github.com/ironsheep/noise-texture/internal/imaging"
	"github.com/ironsheep/noise-texture/internal/noise"
	"github.com/ironsheep/noise-texture/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if len(os.Args) < 2 {
		if err := generate(os.Stdout, loadConfig()); err != nil {
			log.Fatalf("Generation failed: %v", err)
		}
		return
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("noisegen %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
	case "--help", "-h", "help":
		usage()
	case "inspect":
		if len(os.Args) != 3 {
			log.Fatalf("usage: noisegen inspect <path>")
		}
		if err := inspect(os.Args[2]); err != nil {
			log.Fatalf("Inspect failed: %v", err)
		}
	case "tile":
		if err := tile(os.Args[2:]); err != nil {
			log.Fatalf("Tile preview failed: %v", err)
		}
	case "serve":
		server.Version = Version
		srv := server.New(loadConfig())
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("noisegen %s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}
	return cfg
}

func usage() {
	fmt.Println("noisegen - grayscale noise texture generator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  noisegen                             Generate a texture (see environment below)")
	fmt.Println("  noisegen inspect <path>              Report dimensions and channel statistics")
	fmt.Println("  noisegen tile <src> <dst> [cols rows] Write a repeated-patch preview PNG (default 3x3)")
	fmt.Println("  noisegen serve                       Run as an MCP server over stdin/stdout")
	fmt.Println("  noisegen --version, -v               Print version information")
	fmt.Println("  noisegen --help, -h                  Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  NOISEGEN_WIDTH=200          Texture width in pixels")
	fmt.Println("  NOISEGEN_HEIGHT=200         Texture height in pixels")
	fmt.Println("  NOISEGEN_OPACITY=0.15       Maximum alpha fraction")
	fmt.Println("  NOISEGEN_OUTPUT=noise.png   Output file (overwritten)")
	fmt.Println("  NOISEGEN_SEED=0             Non-zero for a reproducible texture")
	fmt.Println("  NOISEGEN_LOG_LEVEL=debug    Enable debug logging")
}

// generate writes one texture as configured and reports it on w.
func generate(w io.Writer, cfg *config.Config) error {
	if !noise.OpacityInRange(cfg.Opacity) {
		log.Printf("Opacity %g is outside [0, 1]; alpha will be clamped", cfg.Opacity)
	}

	res, err := noise.Render(cfg.Output, cfg.Params(), cfg.Source())
	if err != nil {
		return err
	}
	if cfg.Debug() {
		log.Printf("Wrote %dx%d texture at opacity %g (%s)",
			res.Width, res.Height, res.Opacity, humanize.Bytes(uint64(res.FileSizeBytes)))
	}

	fmt.Fprintln(w, confirmation(res.Path))
	return nil
}

func confirmation(path string) string {
	return "Noise texture generated as " + path
}

func inspect(path string) error {
	report, err := imaging.Inspect(imaging.NewImageCache(), path)
	if err != nil {
		return err
	}

	info, st := report.Info, report.Stats
	fmt.Printf("%s: %dx%d %s, %d channels, %s\n",
		info.Path, info.Width, info.Height, info.Format, info.Channels, info.FileSize)
	fmt.Printf("  grayscale: %t (%s non-gray pixels)\n", st.Grayscale, humanize.Comma(int64(st.NonGrayPixels)))
	fmt.Printf("  gray:  min %d, max %d, mean %.2f, %d levels\n", st.GrayMin, st.GrayMax, st.GrayMean, st.DistinctGrayLevels)
	fmt.Printf("  alpha: min %d, max %d, mean %.2f, %s transparent pixels\n",
		st.AlphaMin, st.AlphaMax, st.AlphaMean, humanize.Comma(int64(st.TransparentPixels)))
	return nil
}

func tile(args []string) error {
	if len(args) != 2 && len(args) != 4 {
		return fmt.Errorf("usage: noisegen tile <src> <dst> [cols rows]")
	}
	cols, rows := 3, 3
	if len(args) == 4 {
		var err error
		if cols, err = strconv.Atoi(args[2]); err != nil {
			return fmt.Errorf("invalid cols %q: %w", args[2], err)
		}
		if rows, err = strconv.Atoi(args[3]); err != nil {
			return fmt.Errorf("invalid rows %q: %w", args[3], err)
		}
	}

	img, err := imaging.NewImageCache().Load(args[0])
	if err != nil {
		return err
	}
	preview, err := imaging.TilePreview(img, cols, rows)
	if err != nil {
		return err
	}
	if err := imaging.SavePNG(preview, args[1]); err != nil {
		return err
	}

	fmt.Printf("Tile preview (%dx%d) written to %s\n", cols, rows, args[1])
	return nil
}
