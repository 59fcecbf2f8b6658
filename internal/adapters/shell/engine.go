package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Environment variables handed to the engine command.
const (
	EnvInput      = "PREBUILD_INPUT"
	EnvOutput     = "PREBUILD_OUTPUT"
	EnvTargetKey  = "PREBUILD_TARGET_KEY"
	EnvTargetFile = "PREBUILD_TARGET_FILE"
	EnvBrowsers   = "PREBUILD_BROWSERS"
	EnvUnit       = "PREBUILD_UNIT"
	EnvVersion    = "PREBUILD_VERSION"
)

var _ ports.BuildEngine = (*Engine)(nil)

// Engine stages a composite into a scratch directory and, when an engine
// command is configured, runs it to transform the staged input.
type Engine struct {
	executor ports.Executor
	logger   ports.Logger
	tempRoot string
}

// NewEngine creates a new Engine.
func NewEngine(executor ports.Executor, logger ports.Logger) *Engine {
	return &Engine{executor: executor, logger: logger}
}

// WithTempRoot places scratch directories below dir instead of the system temp dir.
func (e *Engine) WithTempRoot(dir string) *Engine {
	e.tempRoot = dir
	return e
}

// Build stages the composite as <input>/<group> links. Without an engine
// command the staged input is the result. Otherwise the command runs in the
// unit root and whatever it writes to $PREBUILD_OUTPUT is the result.
func (e *Engine) Build(ctx context.Context, req domain.BuildRequest) (domain.BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.BuildResult{}, err
	}

	work, err := os.MkdirTemp(e.tempRoot, "prebuild-")
	if err != nil {
		return domain.BuildResult{}, zerr.Wrap(err, "failed to create scratch directory")
	}
	result := domain.BuildResult{Cleanup: func() error { return os.RemoveAll(work) }}

	input := filepath.Join(work, "input")
	if err := stage(input, req.Composite); err != nil {
		_ = result.Release()
		return domain.BuildResult{}, err
	}

	if len(req.Engine.Command) == 0 {
		result.Dir = input
		return result, nil
	}

	output := filepath.Join(work, "output")
	if err := os.MkdirAll(output, domain.DirPerm); err != nil {
		_ = result.Release()
		return domain.BuildResult{}, zerr.Wrap(err, "failed to create output directory")
	}

	cmd := domain.Command{
		Args:        req.Engine.Command,
		Environment: engineEnvironment(req, input, output),
	}
	if req.Unit != nil {
		cmd.Dir = req.Unit.Root
	}

	out := &logWriter{logger: e.logger}
	err = e.executor.Execute(ctx, cmd, out, out)
	_ = out.Close()
	if err != nil {
		_ = result.Release()
		err = zerr.Wrap(err, domain.ErrEngineCommandFailed.Error())
		return domain.BuildResult{}, zerr.With(err, "command", strings.Join(req.Engine.Command, " "))
	}

	result.Dir = output
	return result, nil
}

func stage(input string, composite domain.Composite) error {
	if err := os.MkdirAll(input, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create input directory")
	}
	for _, tree := range composite.Trees {
		if tree.IsEmpty() {
			continue
		}
		src, err := filepath.Abs(tree.Dir)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stage group"), "group", tree.Group)
		}
		if err := os.Symlink(src, filepath.Join(input, tree.Group)); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stage group"), "group", tree.Group)
		}
	}
	return nil
}

func engineEnvironment(req domain.BuildRequest, input, output string) map[string]string {
	env := make(map[string]string, len(req.Engine.Environment)+7)
	for k, v := range req.Engine.Environment {
		env[k] = v
	}
	env[EnvInput] = input
	env[EnvOutput] = output
	env[EnvTargetKey] = domain.DeriveKey(req.Target)
	env[EnvBrowsers] = strings.Join(req.Target.Browsers, ",")
	if req.Target.Path != "" {
		env[EnvTargetFile] = req.Target.Path
	}
	if req.Unit != nil {
		env[EnvUnit] = req.Unit.Name
		env[EnvVersion] = req.Unit.Version
	}
	return env
}

// logWriter forwards complete lines of command output to the logger.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs may introduce \r.
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}
	w.logger.Info(msg)
}
