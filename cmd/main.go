// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"field-recon/internal/config"
	"field-recon/internal/core"
	"field-recon/internal/formatters"
	"field-recon/internal/help"
	"field-recon/internal/reconcile"
	"field-recon/internal/version"
	"field-recon/internal/web"

	_ "field-recon/internal/formatters/csv"
	_ "field-recon/internal/formatters/json"
	_ "field-recon/internal/formatters/text"
	_ "field-recon/internal/formatters/yaml"

	"golang.org/x/term"
)

// defaultIgnoreFile is loaded when present and no explicit file is given.
const defaultIgnoreFile = ".field-recon-ignore.yaml"

// configFlags holds command line flag values
type configFlags struct {
	format           string
	mode             string
	confidenceLevels string
	ignoreFile       string
	verbose          bool
	debug            bool
	noColor          bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format           string
	mode             string
	confidenceLevels string
	ignoreFile       string
	verbose          bool
	debug            bool
	noColor          bool
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.Load("")
	}
	return cfg
}

// resolveConfiguration resolves final values from config file, profile, and
// command line flags, in that order of precedence.
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{}

	final.format = "text"
	if cfg != nil && cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if activeProfile != nil && activeProfile.Format != "" {
		final.format = activeProfile.Format
	}
	if isFlagSet("format") && flags.format != "" {
		final.format = flags.format
	}

	final.mode = "assignment"
	if cfg != nil && cfg.Defaults.Mode != "" {
		final.mode = cfg.Defaults.Mode
	}
	if activeProfile != nil && activeProfile.Mode != "" {
		final.mode = activeProfile.Mode
	}
	if isFlagSet("mode") && flags.mode != "" {
		final.mode = flags.mode
	}

	final.confidenceLevels = "all"
	if cfg != nil && cfg.Defaults.ConfidenceLevels != "" {
		final.confidenceLevels = cfg.Defaults.ConfidenceLevels
	}
	if activeProfile != nil && activeProfile.ConfidenceLevels != "" {
		final.confidenceLevels = activeProfile.ConfidenceLevels
	}
	if isFlagSet("confidence") && flags.confidenceLevels != "" {
		final.confidenceLevels = flags.confidenceLevels
	}

	final.ignoreFile = defaultIgnoreFile
	if cfg != nil && cfg.Defaults.IgnoreFile != "" {
		final.ignoreFile = cfg.Defaults.IgnoreFile
	}
	if activeProfile != nil && activeProfile.IgnoreFile != "" {
		final.ignoreFile = activeProfile.IgnoreFile
	}
	if isFlagSet("ignore-file") && flags.ignoreFile != "" {
		final.ignoreFile = flags.ignoreFile
	}

	final.verbose = false
	if cfg != nil {
		final.verbose = cfg.Defaults.Verbose
	}
	if activeProfile != nil {
		final.verbose = activeProfile.Verbose
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}

	final.debug = false
	if cfg != nil {
		final.debug = cfg.Defaults.Debug
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}

	final.noColor = false
	if cfg != nil {
		final.noColor = cfg.Defaults.NoColor
	}
	if activeProfile != nil {
		final.noColor = activeProfile.NoColor
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}

	return final
}

// isFlagSet reports whether a flag was passed explicitly on the command line.
func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// listProfiles prints the profiles defined in the configuration.
func listProfiles(cfg *config.Config) {
	if len(cfg.Profiles) == 0 {
		fmt.Println("No profiles defined")
		return
	}
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available profiles:")
	for _, name := range names {
		p := cfg.Profiles[name]
		if p.Description != "" {
			fmt.Printf("  %s - %s\n", name, p.Description)
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
}

func main() {
	sourceFile := flag.String("source", "", "Path to the extracted source document (.json or .pdf)")
	referenceFile := flag.String("reference", "", "Path to the reference structure document (.yaml or .json)")
	matchMode := flag.String("mode", "", "Matching mode: assignment or nearest (default: assignment)")
	outputFormat := flag.String("format", "", "Output format: text, json, csv, yaml (default: text)")
	confidenceLevels := flag.String("confidence", "", "Confidence levels to display: high, medium, low, or combinations like 'high,medium'")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	showProfiles := flag.Bool("list-profiles", false, "List available profiles in config file")
	ignoreFile := flag.String("ignore-file", "", "Path to ignore rules file (default: "+defaultIgnoreFile+")")
	verbose := flag.Bool("verbose", false, "Display the full verdict for every entry")
	debug := flag.Bool("debug", false, "Enable debug logging of the extraction and matching pipeline")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	serveMode := flag.Bool("serve", false, "Start web server mode instead of CLI reconciliation")
	servePort := flag.String("port", "8080", "Port for web server (default: 8080)")
	showHelp := flag.Bool("help", false, "Show help information")
	showVersion := flag.Bool("version", false, "Show version information")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if *showHelp {
		helpSystem := help.NewSystem(*noColor || !isTerminal(os.Stdout))
		helpSystem.ShowGeneralHelp()
		os.Exit(0)
	}

	if *serveMode {
		server, err := web.NewServer(*servePort)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg := loadConfiguration(*configFile)

	if *showProfiles {
		listProfiles(cfg)
		os.Exit(0)
	}

	activeProfile, err := cfg.GetProfile(*profileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	finalConfig := resolveConfiguration(cfg, activeProfile, &configFlags{
		format:           *outputFormat,
		mode:             *matchMode,
		confidenceLevels: *confidenceLevels,
		ignoreFile:       *ignoreFile,
		verbose:          *verbose,
		debug:            *debug,
		noColor:          *noColor,
	})

	// Auto-disable color in non-interactive environments.
	if !isTerminal(os.Stdout) || os.Getenv("CI") != "" {
		finalConfig.noColor = true
	}
	// Writing to a file never carries color codes.
	if *outputFile != "" {
		finalConfig.noColor = true
	}

	if *sourceFile == "" || *referenceFile == "" {
		fmt.Fprintf(os.Stderr, "Error: both --source and --reference are required\n")
		fmt.Fprintf(os.Stderr, "Run 'field-recon --help' for usage\n")
		os.Exit(1)
	}

	mode, ok := reconcile.ParseMode(finalConfig.mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (expected assignment or nearest)\n", finalConfig.mode)
		os.Exit(1)
	}

	run, err := core.Run(core.RunConfig{
		SourcePath:    *sourceFile,
		ReferencePath: *referenceFile,
		Mode:          mode,
		IgnoreFile:    finalConfig.ignoreFile,
		Debug:         finalConfig.debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output, err := formatters.Export(finalConfig.format, run, formatters.FormatterOptions{
		ConfidenceLevel: core.ParseConfidenceLevels(finalConfig.confidenceLevels),
		Verbose:         finalConfig.verbose,
		NoColor:         finalConfig.noColor,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output+"\n"), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Results written to %s\n", *outputFile)
	} else {
		fmt.Println(output)
	}

	os.Exit(0)
}
