package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/ironsheep/segment-tools-mcp/internal/config"
	"github.com/ironsheep/segment-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const logLevelEnv = "SEGMENT_MCP_LOG_LEVEL"

func usage() {
	fmt.Println("segment-tools-mcp - MCP server for colour segmentation and connected components")
	fmt.Println()
	fmt.Println("Usage: segment-tools-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v        Print version information")
	fmt.Println("  --help, -h           Print this help message")
	fmt.Println("  --config, -c <path>  Load configuration from a JSON file")
	fmt.Printf("                       (default %s, if present)\n", config.GetConfigPath())
	fmt.Println("  --write-config <path> Write the effective configuration as JSON and exit")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug    Enable debug logging\n", logLevelEnv)
	fmt.Printf("  %s          Input image path\n", config.EnvInput)
	fmt.Printf("  %s     Directory for output artifacts\n", config.EnvOutputDir)
	fmt.Printf("  %s   JPEG quality for saved masks (1-100)\n", config.EnvJPEGQuality)
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

// loadConfig reads the config file at path. An empty path tries the default
// location and falls back to built-in defaults when it does not exist.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = config.GetConfigPath()
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg = config.Default()
		} else {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// writeConfig saves the configuration loadConfig(configPath) yields to dest.
func writeConfig(configPath, dest string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	return cfg.SaveToFile(dest)
}

func main() {
	var configPath, writePath string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v", "version":
			fmt.Printf("segment-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		case "--config", "-c":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a path")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		case "--write-config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--write-config requires a path")
				os.Exit(2)
			}
			i++
			writePath = args[i]
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n", args[i])
			os.Exit(2)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if writePath != "" {
		if err := writeConfig(configPath, writePath); err != nil {
			log.Fatalf("Config error: %v", err)
		}
		fmt.Fprintf(os.Stderr, "wrote configuration to %s\n", writePath)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	srv := server.New(cfg)

	if os.Getenv(logLevelEnv) == "debug" {
		log.Printf("Segment MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Input %s, output dir %s, thresholds upper=%v lower=%v cutoff=%d",
			cfg.Input, cfg.Output.Dir, cfg.Thresholds.Upper, cfg.Thresholds.Lower, cfg.Thresholds.Cutoff)
		srv.SetLogger(log.Default())
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
