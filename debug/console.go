package debug

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"
)

// scriptTimeout bounds a single console script.
const scriptTimeout = 2 * time.Second

// reserved names cannot be shadowed by actions.
var reserved = map[string]bool{"invoke": true, "actions": true, "log": true}

// Console runs tengo scripts that can call registered actions, either
// directly by name or through invoke:
//
//	playRunning()
//	invoke("playRunning")
//	names := actions()
//	log("switched")
type Console struct {
	debug *Debug
}

func newConsole(d *Debug) *Console {
	return &Console{debug: d}
}

// Run compiles and runs src.
func (c *Console) Run(src []byte) error {
	if c == nil || !c.debug.Active {
		return nil
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	_ = script.Add("invoke", &tengo.UserFunction{Name: "invoke", Value: c.invoke})
	_ = script.Add("actions", &tengo.UserFunction{Name: "actions", Value: c.actions})
	_ = script.Add("log", &tengo.UserFunction{Name: "log", Value: c.logFn})
	for _, a := range c.debug.Actions() {
		if reserved[a.Name] {
			continue
		}
		fn := a.Fn
		_ = script.Add(a.Name, &tengo.UserFunction{Name: a.Name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			fn()
			return tengo.UndefinedValue, nil
		}})
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if _, err := script.RunContext(ctx); err != nil {
		return fmt.Errorf("debug: run script: %w", err)
	}
	return nil
}

// RunFile reads and runs a script from disk.
func (c *Console) RunFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("debug: read script %s: %w", path, err)
	}
	return c.Run(src)
}

func (c *Console) invoke(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 1 {
		return nil, tengo.ErrWrongNumArguments
	}
	name, ok := args[0].(*tengo.String)
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "name", Expected: "string", Found: args[0].TypeName()}
	}
	if err := c.debug.Invoke(name.Value); err != nil {
		return &tengo.Error{Value: &tengo.String{Value: err.Error()}}, nil
	}
	return tengo.TrueValue, nil
}

func (c *Console) actions(args ...tengo.Object) (tengo.Object, error) {
	arr := &tengo.Array{}
	for _, a := range c.debug.Actions() {
		arr.Value = append(arr.Value, &tengo.String{Value: a.Name})
	}
	return arr, nil
}

func (c *Console) logFn(args ...tengo.Object) (tengo.Object, error) {
	parts := make([]any, 0, len(args))
	for _, a := range args {
		s, _ := tengo.ToString(a)
		parts = append(parts, s)
	}
	c.debug.log.Info("debug script", zap.String("message", fmt.Sprint(parts...)))
	return tengo.UndefinedValue, nil
}
