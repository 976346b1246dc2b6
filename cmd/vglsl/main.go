// Command vglsl preprocesses extended GLSL shader source code.
//
// Usage:
//
//	vglsl [options] <input.vglsl>
//	cat input.vglsl | vglsl [options]
//
// Options:
//
//	-o <file>                Write output to file (default: stdout)
//	--config <file>          Use specific config file
//	--no-config              Ignore config files
//	--base-path <dir>        Base path for #include resolution
//	--keep-comments          Keep // and /* */ comments in the output
//	--line-directives        Emit #line markers around included files
//	--max-include-depth <n>  Maximum #include nesting (default 32)
//	--define <defs>          Comma-separated NAME or NAME=VALUE predefines
//	--include-path <paths>   Comma-separated NAME=DIR virtual include paths
//	--version                Print version and exit
//	--help                   Print help and exit
//
// Config file:
//
//	vglsl looks for vglsl.json or .vglslrc in the current directory
//	and parent directories. Config file options are overridden by CLI flags.
//
// Example vglsl.json:
//
//	{
//	    "basePath": "shaders/",
//	    "preserveLines": true,
//	    "defines": {"MAX_LIGHTS": "8"},
//	    "includePaths": {"Engine": "/opt/engine/shaders"}
//	}
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/saruga/vglsl/internal/config"
	"codeberg.org/saruga/vglsl/internal/preprocessor"
	"codeberg.org/saruga/vglsl/pkg/api"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Flags
	var (
		outputFile      string
		configFile      string
		noConfig        bool
		basePath        string
		keepComments    bool
		lineDirectives  bool
		maxIncludeDepth int
		defines         string
		includePaths    string
		showVersion     bool
		showHelp        bool
	)

	flag.StringVar(&outputFile, "o", "", "Write output to `file`")
	flag.StringVar(&configFile, "config", "", "Use specific config `file`")
	flag.BoolVar(&noConfig, "no-config", false, "Ignore config files")
	flag.StringVar(&basePath, "base-path", "", "Base `path` for #include resolution")
	flag.BoolVar(&keepComments, "keep-comments", false, "Keep comments in the output")
	flag.BoolVar(&lineDirectives, "line-directives", false, "Emit #line markers around included files")
	flag.IntVar(&maxIncludeDepth, "max-include-depth", 0, "Maximum #include nesting")
	flag.StringVar(&defines, "define", "", "Comma-separated NAME or NAME=VALUE predefines")
	flag.StringVar(&includePaths, "include-path", "", "Comma-separated NAME=DIR virtual include paths")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.BoolVar(&showHelp, "help", false, "Print help and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vglsl - GLSL Preprocessor v%s\n\n", version)
		fmt.Fprintf(os.Stderr, "Usage: vglsl [options] <input.vglsl>\n")
		fmt.Fprintf(os.Stderr, "       cat input.vglsl | vglsl [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nConfig file:\n")
		fmt.Fprintf(os.Stderr, "  Searches for vglsl.json or .vglslrc in current and parent directories.\n")
		fmt.Fprintf(os.Stderr, "  CLI flags override config file settings.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vglsl shader.vglsl -o shader.glsl\n")
		fmt.Fprintf(os.Stderr, "  cat shader.vglsl | vglsl --base-path shaders/ > shader.glsl\n")
		fmt.Fprintf(os.Stderr, "  vglsl --define DEBUG,MAX_LIGHTS=8 shader.vglsl\n")
		fmt.Fprintf(os.Stderr, "  vglsl --include-path Engine=/opt/engine/shaders shader.vglsl\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		return nil
	}

	if showVersion {
		fmt.Printf("vglsl v%s (%s)\n", version, commit)
		return nil
	}

	// Read input
	var source []byte
	var err error
	inputName := "<stdin>"

	if flag.NArg() > 0 {
		inputName = flag.Arg(0)
		source, err = os.ReadFile(inputName)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	} else {
		// Check if stdin is a pipe
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			flag.Usage()
			return fmt.Errorf("no input file specified")
		}
		source, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	// Register virtual include paths from the CLI
	for _, pair := range splitList(includePaths) {
		name, dir, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid include path %q (want NAME=DIR)", pair)
		}
		if err := api.AddVirtualIncludePath(name, dir); err != nil {
			return fmt.Errorf("registering include path %q: %w", name, err)
		}
	}

	// Load config file
	var fileCfg *config.Config
	if !noConfig {
		var configPath string
		if configFile != "" {
			// Use specified config file
			fileCfg, err = config.LoadFile(configFile)
			if err != nil {
				return fmt.Errorf("loading config file %s: %w", configFile, err)
			}
			configPath = configFile
		} else {
			// Search for config file
			startDir, _ := os.Getwd()
			if flag.NArg() > 0 {
				startDir = filepath.Dir(flag.Arg(0))
			}
			fileCfg, configPath, err = config.Load(startDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
		}
		if fileCfg != nil {
			for name, dir := range fileCfg.IncludePaths {
				if err := api.AddVirtualIncludePath(name, dir); err != nil {
					return fmt.Errorf("registering include path %q: %w", name, err)
				}
			}
			if outputFile != "" && configPath != "" {
				fmt.Fprintf(os.Stderr, "Using config: %s\n", configPath)
			}
		}
	}

	// Parse CLI defines
	cliDefines := make(map[string]string)
	for _, def := range splitList(defines) {
		name, value, ok := strings.Cut(def, "=")
		if !ok {
			value = "1"
		}
		cliDefines[name] = value
	}

	// Build the effective configuration: defaults, then config file,
	// then CLI overrides.
	cliOpts := config.MergeOptions{Defines: cliDefines}
	if basePath != "" {
		cliOpts.BasePath = &basePath
	}
	if keepComments {
		removeComments := false
		cliOpts.RemoveComments = &removeComments
	}
	if lineDirectives {
		cliOpts.PreserveLines = &lineDirectives
	}
	if maxIncludeDepth > 0 {
		cliOpts.MaxIncludeDepth = &maxIncludeDepth
	}

	if fileCfg == nil {
		fileCfg = &config.Config{}
	}
	cfg := fileCfg.Merge(cliOpts)

	// Reading from a file without an explicit base path: resolve
	// includes next to the input.
	if basePath == "" && fileCfg.BasePath == nil && flag.NArg() > 0 {
		cfg.BasePath = filepath.Dir(flag.Arg(0))
	}

	// Preprocess
	result := preprocessor.Parse(string(source), inputName, cfg)
	if result.Err != nil {
		return result.Err
	}

	// Write output
	var output io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	if _, err := io.WriteString(output, result.Output); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	// Print stats to stderr if output is to file
	if outputFile != "" {
		fmt.Fprintf(os.Stderr, "Preprocessed: %d -> %d bytes\n",
			len(source), len(result.Output))
	}

	return nil
}

// splitList splits a comma-separated flag value, trimming blanks and
// dropping empty items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	items := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
