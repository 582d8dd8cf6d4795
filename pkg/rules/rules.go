// Package rules runs an optional user-supplied zygomys script that can
// veto trigger generation per face. The script defines
//
//	(defn eligible [material category z] ...)
//
// which is called with the face's material, its surface category name, and
// the z component of its outward normal, and must return a bool. Scripts
// run in a sandboxed interpreter with no filesystem or system access.
package rules

import (
	"fmt"
	"strconv"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"
)

// Filter wraps a loaded script. The zygomys environment is not safe for
// concurrent use, so calls are serialized on a mutex.
type Filter struct {
	mu  sync.Mutex
	env *zygo.Zlisp
}

// Load parses and runs the script once, so definition errors surface
// before any geometry work starts.
func Load(script string) (*Filter, error) {
	env := zygo.NewZlispSandbox()
	if err := env.LoadString(script); err != nil {
		env.Stop()
		return nil, fmt.Errorf("rules: parse script: %w", err)
	}
	if _, err := env.Run(); err != nil {
		env.Stop()
		return nil, fmt.Errorf("rules: load script: %w", err)
	}
	return &Filter{env: env}, nil
}

// Close releases the interpreter.
func (f *Filter) Close() {
	f.env.Stop()
}

// Eligible evaluates the script's predicate for one face.
func (f *Filter) Eligible(material, category string, normalZ float64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := fmt.Sprintf("(eligible %q %q %s)",
		material, category, strconv.FormatFloat(normalZ, 'g', -1, 64))

	f.env.Clear()
	if err := f.env.LoadString(call); err != nil {
		return false, fmt.Errorf("rules: build call: %w", err)
	}
	res, err := f.env.Run()
	if err != nil {
		return false, fmt.Errorf("rules: eligible(%q, %q, %v): %w", material, category, normalZ, err)
	}
	switch v := res.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		return false, nil // null reads as false
	default:
		return false, fmt.Errorf("rules: eligible returned %T, want bool", res)
	}
}
