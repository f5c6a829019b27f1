package engine

import (
	"context"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/abilink/errors"
)

// Engine wraps a wazero runtime configured to keep custom sections.
type Engine struct {
	runtime wazero.Runtime
}

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	MemoryLimitPages uint32
}

// New creates an engine. cfg may be nil.
func New(ctx context.Context, cfg *Config) *Engine {
	runtimeCfg := wazero.NewRuntimeConfig().WithCustomSections(true)
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	return &Engine{runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg)}
}

// Runtime returns the underlying wazero runtime.
func (e *Engine) Runtime() wazero.Runtime {
	return e.runtime
}

// Close releases the runtime and every module instantiated in it.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Function describes an imported or exported function.
type Function struct {
	Module  string // import module, empty for exports
	Name    string
	Params  []string
	Results []string
}

func (f Function) String() string {
	var b strings.Builder
	if f.Module != "" {
		b.WriteString(f.Module)
		b.WriteByte('.')
	}
	b.WriteString(f.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(f.Params, ", "))
	b.WriteByte(')')
	if len(f.Results) > 0 {
		b.WriteString(" -> ")
		b.WriteString(strings.Join(f.Results, ", "))
	}
	return b.String()
}

// Description is what a runtime sees in a compiled module.
type Description struct {
	Imports        []Function
	Exports        []Function
	CustomSections []string
}

// Describe compiles bin and reports its functions and custom sections.
// Exports are sorted by name; imports and custom sections keep module order.
func (e *Engine) Describe(ctx context.Context, bin []byte) (*Description, error) {
	compiled, err := e.runtime.CompileModule(ctx, bin)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}
	defer compiled.Close(ctx)

	d := &Description{}
	for _, def := range compiled.ImportedFunctions() {
		moduleName, name, _ := def.Import()
		d.Imports = append(d.Imports, newFunction(moduleName, name, def))
	}
	for name, def := range compiled.ExportedFunctions() {
		d.Exports = append(d.Exports, newFunction("", name, def))
	}
	sort.Slice(d.Exports, func(i, j int) bool { return d.Exports[i].Name < d.Exports[j].Name })
	for _, cs := range compiled.CustomSections() {
		d.CustomSections = append(d.CustomSections, cs.Name())
	}

	Logger().Debug("module described",
		zap.Int("imports", len(d.Imports)),
		zap.Int("exports", len(d.Exports)),
		zap.Int("custom_sections", len(d.CustomSections)))
	return d, nil
}

// Describe compiles bin in a throwaway engine.
func Describe(ctx context.Context, bin []byte) (*Description, error) {
	e := New(ctx, nil)
	defer e.Close(ctx)
	return e.Describe(ctx, bin)
}

func newFunction(moduleName, name string, def api.FunctionDefinition) Function {
	return Function{
		Module:  moduleName,
		Name:    name,
		Params:  typeNames(def.ParamTypes()),
		Results: typeNames(def.ResultTypes()),
	}
}

func typeNames(types []api.ValueType) []string {
	if len(types) == 0 {
		return nil
	}
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = api.ValueTypeName(t)
	}
	return out
}
