// Package scheduler implements the configuration scheduler: it re-runs
// configuration for invalidated units in parent-before-child order, with
// independent subtrees configured concurrently.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/keel/internal/engine/modelcache"
	"go.trai.ch/keel/internal/engine/problems"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// UnitStatus represents the scheduling status of a unit.
type UnitStatus string

const (
	// StatusPending indicates the unit is waiting for its parent.
	StatusPending UnitStatus = "Pending"
	// StatusConfiguring indicates the unit is currently being configured.
	StatusConfiguring UnitStatus = "Configuring"
	// StatusConfigured indicates the unit configured successfully.
	StatusConfigured UnitStatus = "Configured"
	// StatusFailed indicates the unit configuration failed.
	StatusFailed UnitStatus = "Failed"
	// StatusReused indicates the unit was skipped and its prior results
	// carried forward.
	StatusReused UnitStatus = "Reused"
)

// Scheduler manages the execution of one configuration pass.
type Scheduler struct {
	configurer ports.Configurer
	models     *modelcache.Cache
	problems   *problems.Collector
	sink       ports.EventSink
	tracer     ports.Tracer

	mu         sync.RWMutex
	unitStatus map[domain.UnitPath]UnitStatus
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	configurer ports.Configurer,
	models *modelcache.Cache,
	collector *problems.Collector,
	sink ports.EventSink,
	tracer ports.Tracer,
) *Scheduler {
	return &Scheduler{
		configurer: configurer,
		models:     models,
		problems:   collector,
		sink:       sink,
		tracer:     tracer,
		unitStatus: make(map[domain.UnitPath]UnitStatus),
	}
}

// PassResult carries what one pass configured and served.
type PassResult struct {
	Units           map[string]domain.UnitRecord
	Models          []domain.ModelRequest
	ConfiguredCount int
	ReusedCount     int
}

// StatusOf returns the scheduling status of a unit.
func (s *Scheduler) StatusOf(path domain.UnitPath) UnitStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unitStatus[path]
}

func (s *Scheduler) updateStatus(path domain.UnitPath, status UnitStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unitStatus[path] = status
}

// Run executes one configuration pass over the tree.
//
// Units marked new or reconfigured are configured in topological
// (parent-before-child) order; units with no ancestor/descendant
// relationship proceed concurrently up to parallelism. Reused units are
// skipped entirely: no configure event is emitted for them and their prior
// model results are carried forward unchanged.
//
// A configuration failure aborts the whole pass fail-fast; the error is
// recorded with the problem collector and returned.
func (s *Scheduler) Run(
	ctx context.Context,
	tree *domain.UnitTree,
	record *domain.InvalidationRecord,
	snapshot domain.FingerprintSnapshot,
	prior *domain.CacheEntry,
	parallelism int,
) (*PassResult, error) {
	if parallelism < 1 {
		parallelism = 1
	}

	s.models.Prime(prior)

	state := s.newRunState(ctx, tree, record, parallelism)
	defer state.cancel()

	s.tracer.EmitPlan(ctx, state.plannedPaths())

	if err := state.runExecutionLoop(); err != nil {
		return nil, err
	}

	// Reused units serve their model requests from the prior entry; a model
	// type newly requested on a reused unit is the one case that still
	// computes fresh here.
	if err := s.serveReusedModels(ctx, tree, record); err != nil {
		return nil, err
	}

	return s.collectResult(tree, record, snapshot, prior, state), nil
}

// serveReusedModels queries the requested models of every reused unit.
func (s *Scheduler) serveReusedModels(ctx context.Context, tree *domain.UnitTree, record *domain.InvalidationRecord) error {
	for unit := range tree.Walk() {
		if !record.Reused(unit.Path) {
			continue
		}
		s.updateStatus(unit.Path, StatusReused)
		if err := s.queryUnitModels(ctx, unit, true); err != nil {
			return err
		}
	}
	return nil
}

// queryUnitModels serves every model type the unit requests. A failed model
// computation is recorded as a problem and does not abort its siblings.
func (s *Scheduler) queryUnitModels(ctx context.Context, unit domain.Unit, ownerReused bool) error {
	if len(unit.ModelTypes) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, modelType := range unit.ModelTypes {
		key := modelKeyFor(&unit, modelType.String())
		g.Go(func() error {
			// Build-scoped payloads describe the build scope alone, never
			// the settings unit that owns the request.
			var owner *domain.Unit
			if key.Scope == domain.ScopeProject {
				u := unit
				owner = &u
			}
			if _, err := s.models.Query(gctx, key, owner, ownerReused); err != nil {
				s.problems.RecordError(err, domain.SeverityError, unit.Path)
			}
			// Sibling queries proceed regardless.
			return nil
		})
	}
	return g.Wait()
}

// modelKeyFor maps a unit's model request to its key: the settings unit owns
// the build-scoped models, projects own project-scoped ones.
func modelKeyFor(unit *domain.Unit, modelType string) domain.ModelKey {
	if unit.Kind == domain.KindSettings {
		return domain.BuildModelKey(modelType)
	}
	return domain.ProjectModelKey(unit.Path, modelType)
}

// collectResult assembles the per-unit records of this pass.
func (s *Scheduler) collectResult(
	tree *domain.UnitTree,
	record *domain.InvalidationRecord,
	snapshot domain.FingerprintSnapshot,
	prior *domain.CacheEntry,
	state *schedulerRunState,
) *PassResult {
	result := &PassResult{
		Units:  make(map[string]domain.UnitRecord, tree.UnitCount()),
		Models: s.models.Results(),
	}

	for unit := range tree.Walk() {
		key := unit.Path.String()
		unitState := record.StateOf(unit.Path)

		rec := domain.UnitRecord{
			Path:          key,
			Kind:          unit.Kind,
			Fingerprint:   snapshot[key],
			State:         unitState,
			ScriptSources: scriptStrings(unit.ScriptSources),
		}

		if unitState == domain.StateReused {
			// Carry the prior configuration timestamp forward unchanged.
			if priorRec, ok := prior.UnitRecordFor(unit.Path); ok {
				rec.LastConfigured = priorRec.LastConfigured
			}
			result.ReusedCount++
		} else {
			rec.LastConfigured = state.configuredAt(unit.Path)
			result.ConfiguredCount++
		}

		result.Units[key] = rec
	}

	return result
}

func scriptStrings(scripts []domain.InternedString) []string {
	if len(scripts) == 0 {
		return nil
	}
	out := make([]string, len(scripts))
	for i, s := range scripts {
		out[i] = s.String()
	}
	return out
}

type result struct {
	path domain.UnitPath
	err  error
}

type schedulerRunState struct {
	s           *Scheduler
	tree        *domain.UnitTree
	record      *domain.InvalidationRecord
	inDegree    map[domain.UnitPath]int
	units       map[domain.UnitPath]domain.Unit
	ready       []domain.UnitPath
	active      int
	resultsCh   chan result
	errs        error
	ctx         context.Context
	cancel      context.CancelFunc
	parallelism int

	timesMu       sync.Mutex
	configuredAts map[domain.UnitPath]time.Time
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	tree *domain.UnitTree,
	record *domain.InvalidationRecord,
	parallelism int,
) *schedulerRunState {
	ctx, cancel := context.WithCancel(ctx)

	state := &schedulerRunState{
		s:             s,
		tree:          tree,
		record:        record,
		inDegree:      make(map[domain.UnitPath]int),
		units:         make(map[domain.UnitPath]domain.Unit),
		resultsCh:     make(chan result, parallelism),
		ctx:           ctx,
		cancel:        cancel,
		parallelism:   parallelism,
		configuredAts: make(map[domain.UnitPath]time.Time),
	}

	// Only invalidated units are scheduled. A unit's in-degree is 1 when its
	// parent is also invalidated: the parent must complete and publish
	// before the child begins. Reused parents impose no wait.
	for unit := range tree.Walk() {
		if !record.StateOf(unit.Path).Invalidated() {
			continue
		}
		state.units[unit.Path] = unit

		degree := 0
		if parent, ok := unit.Path.Parent(); ok {
			if record.StateOf(parent).Invalidated() {
				degree = 1
			}
		}
		state.inDegree[unit.Path] = degree
		if degree == 0 {
			state.ready = append(state.ready, unit.Path)
		}

		s.updateStatus(unit.Path, StatusPending)
	}

	return state
}

// plannedPaths returns the invalidated unit paths in walk order.
func (state *schedulerRunState) plannedPaths() []string {
	planned := make([]string, 0, len(state.units))
	for unit := range state.tree.Walk() {
		if _, ok := state.units[unit.Path]; ok {
			planned = append(planned, unit.Path.String())
		}
	}
	return planned
}

func (state *schedulerRunState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *schedulerRunState) runExecutionLoop() error {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			break
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if state.errs != nil {
		return state.errs
	}
	return state.ctx.Err()
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		path := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(path, StatusConfiguring)

		go func(u domain.Unit) {
			state.resultsCh <- result{path: u.Path, err: state.configureUnit(state.ctx, &u)}
		}(state.units[path])
	}
}

// configureUnit runs configuration for one unit and serves its models.
func (state *schedulerRunState) configureUnit(ctx context.Context, unit *domain.Unit) error {
	ctx, span := state.s.tracer.Start(ctx, "configure "+unit.Path.String())
	defer span.End()
	span.SetAttribute("unit", unit.Path.String())
	span.SetAttribute("kind", string(unit.Kind))

	if err := state.s.configurer.Configure(ctx, unit); err != nil {
		span.RecordError(err)
		return err
	}

	now := time.Now()
	state.timesMu.Lock()
	state.configuredAts[unit.Path] = now
	state.timesMu.Unlock()

	// One apply event per script, in declaration order. The settings unit
	// is the root of the tree and completes before any project starts, so
	// its script events carry the earliest timestamps of the pass.
	for _, script := range unit.ScriptSources {
		state.s.sink.Emit(domain.Event{
			Kind:   domain.EventScriptApplied,
			Path:   unit.Path.String(),
			Script: script.String(),
			At:     time.Now(),
		})
	}

	if unit.Kind == domain.KindProject {
		state.s.sink.Emit(domain.Event{
			Kind: domain.EventProjectConfigured,
			Path: unit.Path.String(),
			At:   time.Now(),
		})
	}

	return state.s.queryUnitModels(ctx, *unit, false)
}

func (state *schedulerRunState) configuredAt(path domain.UnitPath) time.Time {
	state.timesMu.Lock()
	defer state.timesMu.Unlock()
	return state.configuredAts[path]
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--
	if res.err != nil {
		if errors.Is(res.err, context.Canceled) {
			// Cancellation fallout from fail-fast or an interrupted build,
			// not a configuration problem in its own right.
			state.s.updateStatus(res.path, StatusFailed)
			return
		}

		wrapped := zerr.With(zerr.Wrap(res.err, "configuration failed"), "unit", res.path.String())
		state.errs = errors.Join(state.errs, wrapped)
		state.s.updateStatus(res.path, StatusFailed)
		state.s.problems.RecordError(wrapped, domain.SeverityFatal, res.path)

		// Fail-fast: no further units are scheduled and in-flight work is
		// cancelled. The prior cache entry remains untouched by this pass.
		state.ready = nil
		state.cancel()
		return
	}

	state.s.updateStatus(res.path, StatusConfigured)
	for _, child := range state.tree.Children(res.path) {
		if _, scheduled := state.inDegree[child]; !scheduled {
			continue
		}
		state.inDegree[child]--
		if state.inDegree[child] == 0 {
			state.ready = append(state.ready, child)
		}
	}
}
