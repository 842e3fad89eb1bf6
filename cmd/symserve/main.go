// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the symbol search server and CLI [DBG] application.

symserve serves a catalog of Unicode symbols, grouped and searchable by name
or codepoint, to a host editor. It can operate as a MessagePack IPC server
over stdin/stdout, or as a CLI application for testing catalogs.

# Usage

Start the server with the bundled catalog:

	symserve

Serve only emoji from a custom catalog with debug logs on stderr:

	symserve -provider emoji -catalog ~/symbols.json -d

Run in CLI mode for interactive testing:

	symserve -c -group Arrows -limit 10

# Catalogs

A catalog is a JSON (.json) or MessagePack (.msgpack, .mpk) array of groups:

	[{"name": "Arrows", "symbols": [{"name": "RIGHTWARDS ARROW", "value": "\u2192", "codepoint": 8594}]}]

Groups are sorted by name with the collation rules of the configured locale.
Symbols keep their order. The name "All" is reserved for the union of every
group.

# Configuration

Runtime configuration is a TOML file, created with defaults if missing:

	[catalog]
	path = ""
	locale = "en"

	[provider]
	kind = "unicode"

	[server]
	max_results = 256
	max_filter_len = 64

	[cli]
	default_group = "All"
	default_limit = 24

Flags override the file. See the server package for the IPC protocol.

# Command Line Flags

	-version   Show current version
	-config    Path to config.toml
	-catalog   Catalog file (default: bundled)
	-locale    Collation locale for group names
	-provider  unicode or emoji
	-d         Enable debug mode with detailed logging
	-c         Run in CLI mode instead of server mode
	-group     Initial group in CLI mode
	-limit     Number of symbols printed per search in CLI mode
	-watch     Reload the catalog file when it changes
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/symserve/internal/cli"
	"github.com/bastiangx/symserve/internal/utils"
	"github.com/bastiangx/symserve/pkg/catalog"
	"github.com/bastiangx/symserve/pkg/config"
	"github.com/bastiangx/symserve/pkg/provider"
	"github.com/bastiangx/symserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"golang.org/x/text/language"
)

const (
	Version = "0.1.0-beta"
	AppName = "symserve"
	gh      = "https://github.com/bastiangx/symserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow; the server and CLI packages do the work.
func main() {
	sigHandler()
	log.SetOutput(os.Stderr)

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	catalogPath := flag.String("catalog", "", "Symbol catalog file (.json, .msgpack); empty uses the bundled catalog")
	locale := flag.String("locale", "", "BCP 47 locale for ordering group names")
	kind := flag.String("provider", "", "Provider kind: unicode or emoji")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	group := flag.String("group", "", "Initial group in CLI mode")
	limit := flag.Int("limit", 0, "Number of symbols to print per search in CLI mode")
	watch := flag.Bool("watch", false, "Reload the catalog file when it changes (server mode)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, _ := config.LoadConfigWithPriority(*configPath)
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))
	applyFlags(appConfig, *catalogPath, *locale, *kind, *group, *limit)

	symbols, err := loadCatalog(appConfig.Catalog)
	if err != nil {
		log.Fatalf("Failed to load catalog: %+v", err)
	}

	p, err := provider.New(appConfig.Provider.Kind, symbols)
	if err != nil {
		log.Fatalf("Failed to create provider: %v (%s)", err, errors.FlattenHints(err))
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"group", appConfig.CLI.DefaultGroup,
			"limit", appConfig.CLI.DefaultLimit,
			"provider", appConfig.Provider.Kind)

		inputHandler := cli.NewInputHandler(p, appConfig.CLI.DefaultGroup, appConfig.CLI.DefaultLimit)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	server.Version = Version
	srv := server.NewServer(p, appConfig, activePath)

	if *watch {
		stop := watchCatalog(appConfig, srv)
		defer stop()
	}

	showStartupInfo(appConfig, symbols)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// applyFlags lets explicit flags override the loaded config.
func applyFlags(c *config.Config, catalogPath, locale, kind, group string, limit int) {
	if catalogPath != "" {
		c.Catalog.Path = catalogPath
	}
	if locale != "" {
		c.Catalog.Locale = locale
	}
	if kind != "" {
		c.Provider.Kind = kind
	}
	if group != "" {
		c.CLI.DefaultGroup = group
	}
	if limit > 0 {
		c.CLI.DefaultLimit = limit
	}
}

func loadCatalog(c config.CatalogConfig) (*catalog.Catalog, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		log.Warnf("Invalid locale %q: %v. Using en...", c.Locale, err)
		tag = language.English
	}
	if c.Path == "" {
		return catalog.BundledLocale(tag)
	}
	return catalog.LoadFile(utils.ExpandHome(c.Path), tag)
}

// watchCatalog rebuilds the provider whenever the catalog file changes. The
// bundled catalog has no file to watch.
func watchCatalog(c *config.Config, srv *server.Server) func() {
	if c.Catalog.Path == "" {
		log.Warn("-watch needs a catalog file, ignoring")
		return func() {}
	}
	tag, err := language.Parse(c.Catalog.Locale)
	if err != nil {
		tag = language.English
	}
	w, err := catalog.NewWatcher(utils.ExpandHome(c.Catalog.Path), tag, func(reloaded *catalog.Catalog) {
		p, err := provider.New(c.Provider.Kind, reloaded)
		if err != nil {
			log.Errorf("Provider rebuild failed: %v", err)
			return
		}
		srv.SetProvider(p)
	})
	if err != nil {
		log.Errorf("Failed to watch catalog: %v", err)
		return func() {}
	}
	w.Start()
	return func() { w.Stop() }
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ symserve ] Unicode symbols by name or codepoint")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints basic info about the init process to stderr.
func showStartupInfo(c *config.Config, symbols *catalog.Catalog) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	source := c.Catalog.Path
	if source == "" {
		source = "bundled"
	}
	banner := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(AppName)
	fmt.Fprintln(os.Stderr, banner)
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("catalog: ( %s ) %d groups, %d symbols", source, symbols.Len(), symbols.SymbolCount())
	log.Infof("provider: %s", c.Provider.Kind)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")
}
