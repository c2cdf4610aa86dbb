package lua

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/termput/termput/internal/input/key"
	"github.com/termput/termput/internal/input/keymap"
	"github.com/termput/termput/internal/log"
)

// ErrEngineClosed is returned when using a closed engine.
var ErrEngineClosed = errors.New("lua engine is closed")

// Engine owns one sandboxed Lua state and the action handlers scripts
// registered in it.
type Engine struct {
	mu       sync.Mutex
	state    *lua.LState
	handlers map[string][]*lua.LFunction
	bindings []keymap.Binding
	closed   bool
}

// NewEngine creates an engine with the sandbox installed.
func NewEngine() (*Engine, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	// Open only libraries with no filesystem or process reach.
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("opening lua library %s: %w", lib.name, err)
		}
	}

	// Base leaves a few escape hatches open; remove them.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	e := &Engine{
		state:    L,
		handlers: make(map[string][]*lua.LFunction),
	}
	e.installModule()
	return e, nil
}

// installModule injects the termput table into the state.
func (e *Engine) installModule() {
	L := e.state
	mod := L.NewTable()

	L.SetField(mod, "on", L.NewFunction(func(L *lua.LState) int {
		action := L.CheckString(1)
		fn := L.CheckFunction(2)
		e.handlers[action] = append(e.handlers[action], fn)
		return 0
	}))

	L.SetField(mod, "bind", L.NewFunction(func(L *lua.LState) int {
		keys := L.CheckString(1)
		action := L.CheckString(2)
		b := keymap.NewBinding(keys, action)
		if L.GetTop() >= 3 {
			b = b.WithDescription(L.CheckString(3))
		}
		e.bindings = append(e.bindings, b)
		return 0
	}))

	L.SetField(mod, "log", L.NewFunction(func(L *lua.LState) int {
		log.Info("lua: %s", L.CheckString(1))
		return 0
	}))

	L.SetGlobal("termput", mod)
}

// LoadFile runs a script file in the engine.
func (e *Engine) LoadFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if err := e.protect(func() error { return e.state.DoFile(path) }); err != nil {
		return fmt.Errorf("loading lua script %s: %w", path, err)
	}
	return nil
}

// LoadString runs script source in the engine. The name appears in error
// messages only.
func (e *Engine) LoadString(name, src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if err := e.protect(func() error { return e.state.DoString(src) }); err != nil {
		return fmt.Errorf("loading lua script %s: %w", name, err)
	}
	return nil
}

// HasHandler reports whether any script registered a handler for action.
func (e *Engine) HasHandler(action string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers[action]) > 0
}

// Actions returns the actions that have at least one handler.
func (e *Engine) Actions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := make([]string, 0, len(e.handlers))
	for action := range e.handlers {
		result = append(result, action)
	}
	return result
}

// Dispatch runs every handler registered for action, in registration
// order, passing the event as a table. The first handler error stops the
// chain.
func (e *Engine) Dispatch(action string, ev key.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	handlers := e.handlers[action]
	if len(handlers) == 0 {
		return nil
	}

	table := e.eventTable(ev)
	for _, fn := range handlers {
		err := e.protect(func() error {
			return e.state.CallByParam(lua.P{
				Fn:      fn,
				NRet:    0,
				Protect: true,
			}, table)
		})
		if err != nil {
			return fmt.Errorf("lua handler for %s: %w", action, err)
		}
	}
	return nil
}

// Handler adapts the engine to the keymap registry's handler signature.
func (e *Engine) Handler(action string) keymap.HandlerFunc {
	return func(ev key.Event, _ map[string]any) error {
		return e.Dispatch(action, ev)
	}
}

// Keymap returns the bindings scripts declared with termput.bind.
func (e *Engine) Keymap(name string) *keymap.Keymap {
	e.mu.Lock()
	defer e.mu.Unlock()

	km := keymap.New(name).WithSource("lua")
	for _, b := range e.bindings {
		km.AddBinding(b)
	}
	return km
}

// Close releases the Lua state. Further calls return ErrEngineClosed.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.state.Close()
}

// eventTable converts an event for Lua. Raw bytes travel as a Lua string
// since Lua strings are byte strings.
func (e *Engine) eventTable(ev key.Event) *lua.LTable {
	t := e.state.NewTable()
	e.state.SetField(t, "key", lua.LString(ev.Key.String()))
	e.state.SetField(t, "text", lua.LString(ev.Text))
	e.state.SetField(t, "raw", lua.LString(ev.Raw))
	return t
}

// protect runs fn with panic recovery so a misbehaving script cannot
// take the host down.
func (e *Engine) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			case string:
				err = errors.New(v)
			default:
				err = fmt.Errorf("lua panic: %v", r)
			}
		}
	}()
	return fn()
}
