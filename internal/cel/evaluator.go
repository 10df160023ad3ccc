// Package cel selects values out of loaded documents with CEL expressions.
// The document is bound to the variable "_".
package cel

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
	celext "github.com/google/cel-go/ext"
)

// RootVariable is the name the evaluated document is bound to.
const RootVariable = "_"

// Evaluator compiles and evaluates CEL expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the string, encoder, list and math
// extensions. Extra options extend the environment.
func NewEvaluator(opts ...cel.EnvOption) (*Evaluator, error) {
	all := append([]cel.EnvOption{
		cel.Variable(RootVariable, cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	}, opts...)
	env, err := cel.NewEnv(all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Environment returns the CEL environment.
func (e *Evaluator) Environment() *cel.Env {
	return e.env
}

// Evaluate runs expr against data, e.g. "_.items[0]" or
// "_.items.filter(x, x.available)", and returns the result as Go values.
func (e *Evaluator) Evaluate(expr string, data any) (any, error) {
	return e.EvaluateContext(context.Background(), expr, data)
}

// EvaluateContext is Evaluate with cancellation.
func (e *Evaluator) EvaluateContext(ctx context.Context, expr string, data any) (any, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := e.env.Program(ast, cel.InterruptCheckFrequency(100))
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	result, _, err := prg.ContextEval(ctx, map[string]any{RootVariable: data})
	if err != nil {
		return nil, fmt.Errorf("eval error: %w", err)
	}
	return ToGo(result), nil
}

// ToGo converts a CEL value to plain Go values recursively. Lists become
// []any and maps map[string]any.
func ToGo(val ref.Val) any {
	if val == nil {
		return nil
	}
	switch v := val.(type) {
	case types.Null:
		return nil
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	case traits.Mapper:
		return mapToGo(v)
	case traits.Lister:
		return listToGo(v)
	}
	return plain(val.Value())
}

func listToGo(l traits.Lister) []any {
	n, _ := l.Size().(types.Int)
	out := make([]any, 0, int(n))
	for it := l.Iterator(); it.HasNext() == types.True; {
		out = append(out, ToGo(it.Next()))
	}
	return out
}

func mapToGo(m traits.Mapper) map[string]any {
	out := make(map[string]any)
	for it := m.Iterator(); it.HasNext() == types.True; {
		k := it.Next()
		v, _ := m.Find(k)
		out[keyString(k)] = ToGo(v)
	}
	return out
}

func keyString(k ref.Val) string {
	if s, ok := k.(types.String); ok {
		return string(s)
	}
	return fmt.Sprint(k.Value())
}

// plain unwraps native values that still hold CEL values inside.
func plain(v any) any {
	switch t := v.(type) {
	case ref.Val:
		return ToGo(t)
	case []ref.Val:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = ToGo(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plain(e)
		}
		return out
	default:
		return v
	}
}
