package lua

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/termput/termput/internal/input/key"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestLoadStringAndDispatch(t *testing.T) {
	e := newTestEngine(t)

	err := e.LoadString("test", `
		seen = {}
		termput.on("file.save", function(event)
			seen.key = event.key
			seen.text = event.text
			seen.raw = event.raw
		end)
	`)
	if err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}
	if !e.HasHandler("file.save") {
		t.Fatal("HasHandler(file.save) = false, want true")
	}

	ev := key.NewTextEvent(key.KeyControlS, []byte{0x13}, "")
	if err := e.Dispatch("file.save", ev); err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}

	check := `
		assert(seen.key == "Ctrl-S", "key was " .. tostring(seen.key))
		assert(seen.text == "", "text was " .. tostring(seen.text))
		assert(seen.raw == "\19", "raw mismatch")
	`
	if err := e.LoadString("check", check); err != nil {
		t.Errorf("handler saw wrong event: %v", err)
	}
}

func TestDispatchWithoutHandler(t *testing.T) {
	e := newTestEngine(t)

	if err := e.Dispatch("nothing.registered", key.Event{}); err != nil {
		t.Errorf("Dispatch() with no handlers error: %v", err)
	}
}

func TestMultipleHandlersRunInOrder(t *testing.T) {
	e := newTestEngine(t)

	err := e.LoadString("test", `
		order = {}
		termput.on("a", function() order[#order+1] = "first" end)
		termput.on("a", function() order[#order+1] = "second" end)
	`)
	if err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}
	if err := e.Dispatch("a", key.Event{}); err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if err := e.LoadString("check", `assert(order[1] == "first" and order[2] == "second")`); err != nil {
		t.Errorf("handlers ran out of order: %v", err)
	}
}

func TestHandlerErrorsAreReturned(t *testing.T) {
	e := newTestEngine(t)

	if err := e.LoadString("test", `termput.on("boom", function() error("kaput") end)`); err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}
	err := e.Dispatch("boom", key.Event{})
	if err == nil {
		t.Fatal("Dispatch() succeeded, want error")
	}
	if !strings.Contains(err.Error(), "kaput") {
		t.Errorf("error = %v, want the script's message", err)
	}
}

func TestLoadStringSyntaxError(t *testing.T) {
	e := newTestEngine(t)

	if err := e.LoadString("bad", `this is not lua`); err == nil {
		t.Error("LoadString(invalid) succeeded, want error")
	}
}

func TestBindCollectsKeymap(t *testing.T) {
	e := newTestEngine(t)

	err := e.LoadString("test", `
		termput.bind("Ctrl-S", "file.save", "Save the file")
		termput.bind("Up", "cursor.up")
	`)
	if err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}

	km := e.Keymap("plugin")
	if km.Name != "plugin" || km.Source != "lua" {
		t.Errorf("keymap = %q source %q", km.Name, km.Source)
	}
	if len(km.Bindings) != 2 {
		t.Fatalf("got %d bindings, want 2", len(km.Bindings))
	}
	if km.Bindings[0].Keys != "Ctrl-S" || km.Bindings[0].Action != "file.save" {
		t.Errorf("binding 0 = %+v", km.Bindings[0])
	}
	if km.Bindings[0].Description != "Save the file" {
		t.Errorf("binding 0 description = %q", km.Bindings[0].Description)
	}
	if err := km.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.lua")
	script := `termput.on("test.action", function() end)`
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	e := newTestEngine(t)
	if err := e.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if !e.HasHandler("test.action") {
		t.Error("HasHandler(test.action) = false, want true")
	}
}

func TestSandboxBlocksIOAndOS(t *testing.T) {
	e := newTestEngine(t)

	scripts := []string{
		`assert(io == nil, "io is available")`,
		`assert(os == nil, "os is available")`,
		`assert(dofile == nil, "dofile is available")`,
		`assert(loadfile == nil, "loadfile is available")`,
		`assert(load == nil, "load is available")`,
	}
	for _, src := range scripts {
		if err := e.LoadString("sandbox", src); err != nil {
			t.Errorf("sandbox check failed: %v", err)
		}
	}

	if err := e.LoadString("require", `require("io")`); err == nil {
		t.Error(`require("io") succeeded, want error`)
	}
}

func TestSafeLibrariesAvailable(t *testing.T) {
	e := newTestEngine(t)

	err := e.LoadString("libs", `
		assert(string.upper("a") == "A")
		assert(math.floor(1.5) == 1)
		assert(table.concat({"a","b"}, ",") == "a,b")
	`)
	if err != nil {
		t.Errorf("safe libraries unavailable: %v", err)
	}
}

func TestClosedEngine(t *testing.T) {
	e, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	e.Close()
	e.Close()

	if err := e.LoadString("x", `return`); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("LoadString error = %v, want ErrEngineClosed", err)
	}
	if err := e.Dispatch("a", key.Event{}); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Dispatch error = %v, want ErrEngineClosed", err)
	}
}

func TestHandlerAdapter(t *testing.T) {
	e := newTestEngine(t)

	if err := e.LoadString("test", `
		count = 0
		termput.on("tick", function() count = count + 1 end)
	`); err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}

	fn := e.Handler("tick")
	if err := fn(key.Event{}, nil); err != nil {
		t.Fatalf("adapted handler error: %v", err)
	}
	if err := e.LoadString("check", `assert(count == 1)`); err != nil {
		t.Errorf("handler did not run: %v", err)
	}
}
