package engine

import (
	"context"
	"unicode/utf8"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/abilink/errors"
)

// Host logging import names.
const (
	LogModule   = "env"
	LogFunction = "log"
)

// InstantiateLogHost registers the env.log(ptr, len i32) host function in rt.
// Messages go to log at info level with the calling module's name attached.
func InstantiateLogHost(ctx context.Context, rt wazero.Runtime, log *zap.Logger) (api.Module, error) {
	if log == nil {
		log = Logger()
	}
	h := &logHost{log: log}

	mod, err := rt.NewHostModuleBuilder(LogModule).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.call),
			[]api.ValueType{api.ValueTypeI32, api.ValueTypeI32}, nil).
		WithParameterNames("ptr", "len").
		Export(LogFunction).
		Instantiate(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInvalidData, err, "instantiate "+LogModule)
	}
	return mod, nil
}

// InstantiateLogHost registers env.log in the engine's runtime.
func (e *Engine) InstantiateLogHost(ctx context.Context, log *zap.Logger) (api.Module, error) {
	return InstantiateLogHost(ctx, e.runtime, log)
}

type logHost struct {
	log *zap.Logger
}

func (h *logHost) call(_ context.Context, mod api.Module, stack []uint64) {
	ptr := api.DecodeU32(stack[0])
	size := api.DecodeU32(stack[1])
	caller := zap.String("module", mod.Name())

	mem := mod.Memory()
	if mem == nil {
		h.log.Error("guest log without exported memory", caller)
		return
	}
	buf, ok := mem.Read(ptr, size)
	if !ok {
		h.log.Error("guest log out of range",
			caller,
			zap.Uint32("ptr", ptr),
			zap.Uint32("len", size),
			zap.Uint32("memory_size", mem.Size()))
		return
	}
	if !utf8.Valid(buf) {
		h.log.Warn("guest log is not UTF-8", caller, zap.Binary("data", buf))
		return
	}
	h.log.Info(string(buf), caller)
}

// Run instantiates bin under name and calls its exported function fn with
// no arguments. The instance is closed before Run returns.
func (e *Engine) Run(ctx context.Context, bin []byte, name, fn string) error {
	mod, err := e.runtime.InstantiateWithConfig(ctx, bin, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return errors.Load("instantiate "+name, err)
	}
	defer mod.Close(ctx)

	f := mod.ExportedFunction(fn)
	if f == nil {
		return errors.NotFound(errors.PhaseLoad, "exported function", fn)
	}
	if _, err := f.Call(ctx); err != nil {
		return errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "call "+fn)
	}
	return nil
}
