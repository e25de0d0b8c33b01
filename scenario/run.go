// File: run.go
// Role: executes a Scenario against a fresh core.Graph.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/arcsim/bfs"
	"github.com/katalvlaran/arcsim/closure"
	"github.com/katalvlaran/arcsim/core"
	"github.com/katalvlaran/arcsim/dfs"
	"github.com/katalvlaran/arcsim/internal/ctxlog"
)

// defaultFormat renders the captured label unchanged.
const defaultFormat = "%s"

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	observers []core.Observer
	logger    *slog.Logger
}

// WithObserver attaches an additional observer (e.g. a metrics collector)
// to the graph. Nil is ignored.
func WithObserver(o core.Observer) RunOption {
	return func(c *runConfig) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithLogger logs the run and the graph's lifecycle to logger instead of
// the logger carried by the context.
func WithLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) { c.logger = logger }
}

type runner struct {
	sc       *Scenario
	g        *core.Graph
	logger   *slog.Logger
	syms     map[string]core.NodeID
	closures map[string]*closure.Deferred[string]
	res      *Result
}

// Run executes sc on a new graph and returns what happened. Step failures
// (unknown symbols, core errors, unmet read or invoke expectations) abort
// the run; scopes already open are still ended and the partial Result is
// returned with the error. Run does not evaluate sc.Expect; call
// Result.Check for that.
func Run(ctx context.Context, sc *Scenario, opts ...RunOption) (*Result, error) {
	if sc == nil {
		return nil, fmt.Errorf("scenario: Run: %w", ErrMissingAttribute)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	cfg := runConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger != nil {
		ctx = ctxlog.WithLogger(ctx, cfg.logger)
	}
	logger := ctxlog.FromContext(ctx).With("scenario", sc.Name)

	rec := core.NewRecorder()
	gopts := []core.GraphOption{core.WithObserver(rec), core.WithLogger(logger)}
	for _, o := range cfg.observers {
		gopts = append(gopts, core.WithObserver(o))
	}
	if sc.StrictScopes {
		gopts = append(gopts, core.WithStrictScopes())
	}

	r := &runner{
		sc:       sc,
		g:        core.NewGraph(gopts...),
		logger:   logger,
		syms:     make(map[string]core.NodeID),
		closures: make(map[string]*closure.Deferred[string]),
		res:      &Result{Scenario: sc.Name},
	}
	logger.Debug("scenario: run started", "steps", len(sc.Steps))

	runErr := r.exec(ctx, sc.Steps, nil)
	if runErr != nil {
		runErr = fmt.Errorf("scenario %q: %w", sc.Name, runErr)
	}

	r.res.Events = rec.Events()
	r.res.Symbols = r.syms
	r.res.Stats = r.g.Stats()
	r.res.Live = make([]string, 0)
	for _, id := range r.g.LiveNodes() {
		label, err := r.g.Label(id)
		if err == nil {
			r.res.Live = append(r.res.Live, label)
		}
		if p, err := bfs.RetainPath(r.g, id); err == nil {
			r.res.RetainPaths = append(r.res.RetainPaths, p.String())
		}
	}
	leaks, err := dfs.FindLeaks(r.g)
	if err != nil {
		return r.res, errors.Join(runErr, err)
	}
	r.res.Leaks = leaks

	if runErr != nil {
		logger.Warn("scenario: run failed", "error", runErr)

		return r.res, runErr
	}
	logger.Info("scenario: run complete",
		"events", len(r.res.Events),
		"live", len(r.res.Live),
		"leaked", len(leaks.Leaked),
	)

	return r.res, nil
}

// exec runs steps in order inside scope (nil at the top level).
func (r *runner) exec(ctx context.Context, steps []Step, scope *core.Scope) error {
	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.logger.Debug("scenario: step", "op", st.Op, "name", st.Name, "pos", st.Pos)
		if err := r.step(ctx, st, scope); err != nil {
			return fmt.Errorf("%s: %w", st.where(), err)
		}
	}

	return nil
}

func (r *runner) step(ctx context.Context, st Step, scope *core.Scope) error {
	switch st.Op {
	case OpNode:
		return r.node(st, scope)
	case OpRetain:
		id, err := r.lookup(st.Name)
		if err != nil {
			return err
		}

		return r.hold(id, scope)
	case OpDrop:
		id, err := r.lookup(st.Name)
		if err != nil {
			return err
		}
		if scope != nil {
			return scope.Drop(id)
		}

		return r.g.Release(id)
	case OpEdge:
		return r.edge(st)
	case OpUnset:
		owner, err := r.lookup(st.Owner)
		if err != nil {
			return err
		}

		return r.g.RemoveEdge(owner, st.Field)
	case OpRead:
		return r.read(st)
	case OpClosure:
		return r.closure(st, scope)
	case OpInvoke:
		return r.invoke(st)
	case OpScope:
		return r.scope(ctx, st, scope)
	}

	return ErrUnknownOp
}

func (r *runner) lookup(name string) (core.NodeID, error) {
	id, ok := r.syms[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownSymbol)
	}

	return id, nil
}

func (r *runner) bind(name string, id core.NodeID) error {
	if _, dup := r.syms[name]; dup {
		return fmt.Errorf("%q: %w", name, ErrDuplicateSymbol)
	}
	r.syms[name] = id

	return nil
}

// hold adds a hold on id: a scope hold inside a scope, an external handle
// at the top level.
func (r *runner) hold(id core.NodeID, scope *core.Scope) error {
	if scope != nil {
		return scope.Hold(id)
	}

	return r.g.Retain(id)
}

func (r *runner) node(st Step, scope *core.Scope) error {
	if _, dup := r.syms[st.Name]; dup {
		return fmt.Errorf("%q: %w", st.Name, ErrDuplicateSymbol)
	}
	label := st.Label
	if label == "" {
		label = st.Name
	}

	var id core.NodeID
	var err error
	if scope != nil {
		id, err = scope.New(label)
	} else if id, err = r.g.CreateNode(label); err == nil {
		err = r.g.Retain(id)
	}
	if err != nil {
		return err
	}

	return r.bind(st.Name, id)
}

func (r *runner) edge(st Step) error {
	kind, err := core.ParseEdgeKind(st.Kind)
	if err != nil {
		return err
	}
	owner, err := r.lookup(st.Owner)
	if err != nil {
		return err
	}
	target, err := r.lookup(st.Target)
	if err != nil {
		return err
	}

	return r.g.SetEdge(owner, st.Field, kind, target)
}

func (r *runner) read(st Step) error {
	owner, err := r.lookup(st.Owner)
	if err != nil {
		return err
	}

	out := ReadOutcome{Owner: st.Owner, Field: st.Field}
	ref, err := r.g.ReadEdge(owner, st.Field)
	switch {
	case errors.Is(err, core.ErrUseAfterFree):
		out.Outcome = ReadUseAfterFree
	case err != nil:
		return err
	default:
		if target, ok := ref.Get(); ok {
			out.Outcome = ReadPresent
			out.Target, _ = r.g.Label(target)
		} else {
			out.Outcome = ReadAbsent
		}
	}
	r.res.Reads = append(r.res.Reads, out)

	return expect(st.Expect, out.Outcome)
}

func (r *runner) closure(st Step, scope *core.Scope) error {
	if _, dup := r.syms[st.Name]; dup {
		return fmt.Errorf("%q: %w", st.Name, ErrDuplicateSymbol)
	}
	kind, err := core.ParseEdgeKind(st.Kind)
	if err != nil {
		return err
	}
	target, err := r.lookup(st.Target)
	if err != nil {
		return err
	}
	var owner core.NodeID
	if st.Owner != "" {
		if owner, err = r.lookup(st.Owner); err != nil {
			return err
		}
	}

	format := st.Format
	if format == "" {
		format = defaultFormat
	}
	opts := []closure.Option[string]{
		closure.WithFallback(st.Fallback),
		closure.WithLabel[string](st.Label),
	}
	if st.Memoize {
		opts = append(opts, closure.Memoized[string]())
	}
	d, err := closure.New(r.g, kind, target, closure.FormatLabel(r.g, format), opts...)
	if err != nil {
		return err
	}

	// Owned by a field when one is named, by the enclosing holder otherwise.
	if st.Owner != "" {
		field := st.Field
		if field == "" {
			field = st.Name
		}
		err = r.g.AddStrongEdge(owner, field, d.Node())
	} else {
		err = r.hold(d.Node(), scope)
	}
	if err != nil {
		return err
	}
	r.closures[st.Name] = d

	return r.bind(st.Name, d.Node())
}

func (r *runner) invoke(st Step) error {
	d, ok := r.closures[st.Name]
	if !ok {
		return fmt.Errorf("closure %q: %w", st.Name, ErrUnknownSymbol)
	}

	out := InvokeOutcome{Name: st.Name}
	v, err := d.Invoke()
	switch {
	case err == nil:
		out.Status, out.Value = InvokeOK, v
	case errors.Is(err, core.ErrUseAfterFree):
		out.Status = InvokeUseAfterFree
	case errors.Is(err, closure.ErrClosureReleased):
		out.Status = InvokeReleased
	default:
		return err
	}
	r.res.Invocations = append(r.res.Invocations, out)

	return expect(st.Expect, out.Observed())
}

// scope opens a child of parent (or a root scope), runs the body and ends
// the scope whatever the body returned. The body's error wins.
func (r *runner) scope(ctx context.Context, st Step, parent *core.Scope) error {
	var s *core.Scope
	if parent == nil {
		s = r.g.OpenScope(st.Name)
	} else {
		var err error
		if s, err = parent.Open(st.Name); err != nil {
			return err
		}
	}

	err := r.exec(ctx, st.Steps, s)
	if endErr := s.End(); err == nil {
		err = endErr
	}

	return err
}

func expect(want, got string) error {
	if want == "" || want == got {
		return nil
	}

	return fmt.Errorf("%w: got %q, want %q", ErrExpectationFailed, got, want)
}
