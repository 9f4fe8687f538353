// Package where filters catalogs with JavaScript predicates run in a goja
// runtime. Each record is exposed to the expression as the globals product,
// log, field, standard (undefined when the field has no Standard Name) and
// attrs, plus a re.test(pattern, text) helper backed by Go regexp.
package where

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/itsmostafa/ossemdict/internal/catalog"
)

// Kind labels expression filters in query headers.
const Kind catalog.FilterKind = "where"

// DefaultTimeout bounds a whole Filter run.
const DefaultTimeout = 10 * time.Second

var (
	// ErrInvalidExpression indicates the expression does not compile
	ErrInvalidExpression = errors.New("where: invalid expression")

	// ErrEvaluation indicates the expression threw or was interrupted
	ErrEvaluation = errors.New("where: evaluation failed")
)

// Expression is a compiled predicate.
type Expression struct {
	source  string
	program *goja.Program
}

// Compile parses source in strict mode.
func Compile(source string) (*Expression, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}

	program, err := goja.Compile("where", source, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	return &Expression{source: source, program: program}, nil
}

func (e *Expression) String() string {
	return e.source
}

// Selector describes e for display.
func (e *Expression) Selector() catalog.Selector {
	return catalog.Selector{Kind: Kind, Value: e.source}
}

// Filter keeps the records of c for which e is truthy. All records share one
// runtime, interrupted when ctx ends or timeout elapses (zero disables the
// timeout). The first failing record aborts the run.
func Filter(ctx context.Context, c *catalog.Catalog, e *Expression, timeout time.Duration) (*catalog.Catalog, error) {
	vm := goja.New()
	if err := setupRegexModule(vm); err != nil {
		return nil, fmt.Errorf("failed to setup regex module: %w", err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt("execution timeout or cancelled")
		case <-done:
		}
	}()

	return c.Select(func(rec catalog.Record) (bool, error) {
		return e.match(vm, rec)
	})
}

func (e *Expression) match(vm *goja.Runtime, rec catalog.Record) (bool, error) {
	attrs := make(map[string]interface{}, rec.Attributes.Len())
	for _, name := range rec.Attributes.Names() {
		value, _ := rec.Attributes.Get(name)
		attrs[name] = value
	}

	var standard interface{} = goja.Undefined()
	if s, ok := rec.Attributes.StandardName(); ok {
		standard = s
	}

	globals := []struct {
		name  string
		value interface{}
	}{
		{"product", rec.Product},
		{"log", rec.Log},
		{"field", rec.Field},
		{"standard", standard},
		{"attrs", attrs},
	}
	for _, g := range globals {
		if err := vm.Set(g.name, g.value); err != nil {
			return false, fmt.Errorf("failed to set %s: %w", g.name, err)
		}
	}

	val, err := vm.RunProgram(e.program)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return false, fmt.Errorf("%w: interrupted: %v", ErrEvaluation, interrupted.Value())
		}
		return false, fmt.Errorf("%w: %s/%s/%s: %v", ErrEvaluation, rec.Product, rec.Log, rec.Field, err)
	}

	return val.ToBoolean(), nil
}

// setupRegexModule adds the 're' object. Compiled patterns are cached for
// the life of the runtime.
func setupRegexModule(vm *goja.Runtime) error {
	cache := make(map[string]*regexp.Regexp)

	// re.test(pattern, text) -> bool
	test := func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(vm.NewTypeError("test requires 2 arguments: pattern, text"))
		}
		pattern := call.Arguments[0].String()

		re, ok := cache[pattern]
		if !ok {
			var err error
			re, err = regexp.Compile(pattern)
			if err != nil {
				panic(vm.NewGoError(err))
			}
			cache[pattern] = re
		}
		return vm.ToValue(re.MatchString(call.Arguments[1].String()))
	}

	re := vm.NewObject()
	if err := re.Set("test", test); err != nil {
		return err
	}
	return vm.Set("re", re)
}
