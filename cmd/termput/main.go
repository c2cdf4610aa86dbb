// Package main is a key decode demo: it puts the terminal in raw mode
// and prints one line per decoded key event, with optional keymap and
// Lua action dispatch.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/termput/termput/internal/console"
	"github.com/termput/termput/internal/engine/buffer"
	"github.com/termput/termput/internal/input/key"
	"github.com/termput/termput/internal/input/keymap"
	"github.com/termput/termput/internal/log"
	"github.com/termput/termput/internal/plugin/lua"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	KeymapPath string
	LuaPath    string
	Debug      bool
	EscTimeout time.Duration
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.Debug {
		log.SetLevel(log.LevelDebug)
	}

	registry := keymap.NewRegistry()
	if err := registry.Register(keymap.Default()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: register default keymap: %v\n", err)
		return 1
	}

	if opts.KeymapPath != "" {
		km, err := keymap.NewLoader().LoadFile(opts.KeymapPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: load keymap: %v\n", err)
			return 1
		}
		if err := registry.Register(km); err != nil {
			fmt.Fprintf(os.Stderr, "Error: register keymap: %v\n", err)
			return 1
		}
		log.Info("loaded keymap %q (%d bindings)", km.Name, len(km.Bindings))
	}

	var engine *lua.Engine
	if opts.LuaPath != "" {
		var err error
		engine, err = lua.NewEngine()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: start lua engine: %v\n", err)
			return 1
		}
		defer engine.Close()

		if err := engine.LoadFile(opts.LuaPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: load lua script: %v\n", err)
			return 1
		}
		if km := engine.Keymap("lua"); len(km.Bindings) > 0 {
			if err := registry.Register(km); err != nil {
				fmt.Fprintf(os.Stderr, "Error: register lua keymap: %v\n", err)
				return 1
			}
		}
		for _, action := range engine.Actions() {
			registry.Handle(action, engine.Handler(action))
		}
		log.Info("loaded lua script %q (%d actions)", opts.LuaPath, len(engine.Actions()))
	}

	fd := int(os.Stdin.Fd())
	if !console.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "Error: stdin is not a terminal")
		return 1
	}

	raw, err := console.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer raw.Restore()

	if cols, rows, err := console.WindowSize(fd); err == nil {
		log.Debug("terminal size %dx%d", cols, rows)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	stopResize := console.NotifyResize(fd, func(cols, rows int) {
		fmt.Printf("resize           %dx%d\r\n", cols, rows)
	})
	defer stopResize()

	reader := console.NewReader(fd)
	if opts.EscTimeout > 0 {
		reader.SetEscTimeout(opts.EscTimeout)
	}
	buf := buffer.New()
	reader.OnKey(func(ev key.Event) {
		printEvent(ev)

		if ev.Key == key.KeyControlD {
			cancel()
			return
		}

		binding, ok := registry.Resolve(ev)
		if !ok {
			return
		}
		fmt.Printf("  -> %s\r\n", binding.Action)

		switch binding.Action {
		case "session.interrupt":
			cancel()
		case "session.clear":
			fmt.Print("\x1b[2J\x1b[H")
		default:
			if strings.HasPrefix(binding.Action, "edit.") || strings.HasPrefix(binding.Action, "cursor.") {
				buf.ApplyKey(ev)
				fmt.Printf("  buffer %q cursor %d\r\n", buf.Text(), buf.CursorPosition())
			}
			if engine != nil && engine.HasHandler(binding.Action) {
				if err := engine.Dispatch(binding.Action, ev); err != nil {
					fmt.Printf("  !! %v\r\n", err)
				}
			}
		}
	})

	fmt.Print("termput: press keys to decode, Ctrl-C or Ctrl-D to exit\r\n")
	if err := reader.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\r\n", err)
		return 1
	}
	return 0
}

func printEvent(ev key.Event) {
	switch {
	case ev.HasText():
		fmt.Printf("%-16s %x %q\r\n", ev.Key, ev.Raw, ev.Text)
	default:
		fmt.Printf("%-16s %x\r\n", ev.Key, ev.Raw)
	}
}

func parseFlags() options {
	var opts options
	var escMs int
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.KeymapPath, "keymap", "", "Path to a keymap JSON file")
	flag.StringVar(&opts.LuaPath, "lua", "", "Path to a Lua action script")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.Debug, "d", false, "Enable debug logging (shorthand)")
	flag.IntVar(&escMs, "esc-timeout", 0, "Escape flush timeout in milliseconds")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "termput - terminal key decode demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: termput [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  termput                     Decode keys with the default keymap\n")
		fmt.Fprintf(os.Stderr, "  termput -keymap my.json     Add bindings from a keymap file\n")
		fmt.Fprintf(os.Stderr, "  termput -lua actions.lua    Dispatch actions to Lua handlers\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if showVersion {
		fmt.Printf("termput %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.EscTimeout = time.Duration(escMs) * time.Millisecond
	return opts
}
