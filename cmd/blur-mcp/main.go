package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ironsheep/blur-detect-mcp/internal/imaging"
	"github.com/ironsheep/blur-detect-mcp/internal/logger"
	"github.com/ironsheep/blur-detect-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log := logger.FromEnv()
	os.Exit(run(os.Args[1:], os.Stdout, log))
}

func run(args []string, stdout io.Writer, log zerolog.Logger) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "blur-detect-mcp %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			printHelp(stdout)
			return 0
		case "score":
			if len(args) < 2 {
				fmt.Fprintln(stdout, "Usage: blur-detect-mcp score <image> [native|luma|lightness]")
				return 2
			}
			return score(args[1:], stdout, log)
		default:
			fmt.Fprintf(stdout, "unknown argument: %s\n\n", args[0])
			printHelp(stdout)
			return 2
		}
	}

	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("starting blur-detect-mcp")

	server.ServerVersion = Version
	srv := server.New(log)
	if err := srv.Run(); err != nil {
		log.Error().Err(err).Msg("server error")
		return 1
	}
	return 0
}

// score prints the blur report of one image file as JSON.
func score(args []string, stdout io.Writer, log zerolog.Logger) int {
	path := args[0]
	opts := imaging.DefaultOptions()
	if len(args) > 1 {
		opts.Mode = imaging.Mode(args[1])
	}

	img, err := imaging.NewImageCache().Load(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("cannot load image")
		return 1
	}
	report, err := imaging.AnalyzeImage(img, opts)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("cannot score image")
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Error().Err(err).Msg("cannot write report")
		return 1
	}
	return 0
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "blur-detect-mcp - MCP server for image blur detection")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  blur-detect-mcp                     Serve MCP over stdin/stdout")
	fmt.Fprintln(w, "  blur-detect-mcp score <image> [mode] Print the blur report of an image")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  BLUR_MCP_LOG_LEVEL=debug      debug, info, warn or error (default info)")
	fmt.Fprintln(w, "  BLUR_MCP_LOG_FORMAT=console   Human readable logs instead of JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs go to stderr; stdout carries the MCP protocol.")
}
