package hobbes

import (
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/dminor/hobbes/pkg/hm"
)

// Run parses, type-checks, and evaluates one program with fresh
// environments. A program that fails inference is never evaluated.
func Run(source string) (Value, hm.Type, error) {
	node, err := Parse(source)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parse")
	}
	return RunNode(node, NewTypeEnv(), NewEnv())
}

// RunNode type-checks and evaluates an already-parsed program in the given
// environments. The environments accumulate top-level defines, so a REPL
// passes the same pair for every line; the substitution arena is fresh per
// call regardless. A line that fails, whether at check time or at runtime,
// leaves both environments as they were.
func RunNode(node Node, tenv *TypeEnv, venv *Env) (Value, hm.Type, error) {
	tmark := tenv.top
	start := time.Now()
	t, err := Infer(node, tenv)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("inference complete", "type", t.String(), "elapsed", time.Since(start))

	vmark := venv.top
	start = time.Now()
	val, err := Eval(node, venv)
	if err != nil {
		// A line that faults mid-evaluation must not leave a name bound in
		// one environment and missing from the other; the next line would
		// type-check against a value that does not exist. Discard both
		// environments' frames from this run.
		tenv.top = tmark
		venv.top = vmark
		return nil, t, err
	}
	slog.Debug("evaluation complete", "value", val.String(), "elapsed", time.Since(start))

	return val, t, nil
}

// RunFile evaluates a single source file.
func RunFile(path string) (Value, hm.Type, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", path)
	}
	return Run(string(contents))
}
