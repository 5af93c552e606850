// Package app implements the application layer for keel.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/keel/internal/adapters/watcher" //nolint:depguard // Debouncer is shared watch-mode plumbing
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/keel/internal/engine/invalidation"
	"go.trai.ch/keel/internal/engine/problems"
	"go.trai.ch/keel/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// incubatingWarning is emitted on every pass while the caching mode is active.
const incubatingWarning = "configuration caching is an incubating feature"

// App represents the main application logic.
type App struct {
	loader        ports.ConfigLoader
	fingerprinter ports.Fingerprinter
	store         ports.CacheStore
	scheduler     *scheduler.Scheduler
	analyzer      *invalidation.Analyzer
	problems      *problems.Collector
	tracer        ports.Tracer
	logger        ports.Logger
	watcher       ports.Watcher

	// cwd is the directory the keelfile is resolved against.
	cwd string
	// failOn, when set, overrides the configured severity threshold.
	failOn *domain.Severity
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	fingerprinter ports.Fingerprinter,
	store ports.CacheStore,
	sched *scheduler.Scheduler,
	analyzer *invalidation.Analyzer,
	collector *problems.Collector,
	tracer ports.Tracer,
	logger ports.Logger,
	fsWatcher ports.Watcher,
) *App {
	return &App{
		loader:        loader,
		fingerprinter: fingerprinter,
		store:         store,
		scheduler:     sched,
		analyzer:      analyzer,
		problems:      collector,
		tracer:        tracer,
		logger:        logger,
		watcher:       fsWatcher,
		cwd:           ".",
	}
}

// SetWorkingDir overrides the directory the keelfile is resolved against.
// Used for testing.
func (a *App) SetWorkingDir(cwd string) {
	a.cwd = cwd
}

// OverrideFailOn replaces the configured severity threshold for this run.
func (a *App) OverrideFailOn(severity domain.Severity) {
	a.failOn = &severity
}

// PassSummary describes the outcome of one configuration pass.
type PassSummary struct {
	Outcome         domain.Outcome
	Decision        domain.StoreDecision
	EntryID         string
	ConfiguredUnits int
	ReusedUnits     int
	FreshModels     int
	CachedModels    int
	ProblemCount    int
}

// ConfigurePass runs one full configuration pass: fingerprint, analyze,
// schedule, collect and persist.
//
// Cancellation and fail-fast configuration failures leave the prior cache
// entry untouched except that an aborted (non-cancelled) pass persists a
// discarded entry, forcing a cold start next time.
func (a *App) ConfigurePass(ctx context.Context) (*PassSummary, error) {
	a.logger.Warn(incubatingWarning)

	layout, err := a.loader.Load(a.cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load build layout")
	}

	ctx, span := a.tracer.Start(ctx, "configuration pass")
	defer span.End()

	a.problems.Reset()

	prior, err := a.loadPriorEntry()
	if err != nil {
		return nil, err
	}

	current := a.computeFingerprints(ctx, layout)

	record := a.analyzer.Analyze(priorFingerprints(prior), current, layout.Tree)

	result, err := a.scheduler.Run(ctx, layout.Tree, record, current, prior, runtime.NumCPU())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// An interrupted build never touches the prior entry.
			return nil, err
		}
		return nil, a.abortPass(current, err)
	}

	return a.persistPass(layout, prior, current, result, span)
}

// loadPriorEntry reads the prior cache entry, degrading a corrupt or
// discarded entry to a cold start.
func (a *App) loadPriorEntry() (*domain.CacheEntry, error) {
	prior, err := a.store.Load()
	if err != nil {
		if errors.Is(err, domain.ErrCacheCorrupt) {
			a.logger.Warn("prior cache entry is corrupt, starting cold")
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to load prior cache entry")
	}
	if !prior.Reusable() {
		return nil, nil
	}
	return prior, nil
}

// computeFingerprints hashes every unit of the tree concurrently.
// A unit whose fingerprint cannot be computed is left out of the snapshot
// (it will be treated as new) and the failure is recorded as a problem.
func (a *App) computeFingerprints(ctx context.Context, layout *domain.Layout) domain.FingerprintSnapshot {
	env := parseEnvironment()
	snapshot := make(domain.FingerprintSnapshot, layout.Tree.UnitCount())

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for unit := range layout.Tree.Walk() {
		g.Go(func() error {
			u := unit
			hash, err := a.fingerprinter.ComputeUnitFingerprint(&u, env, layout.Root)
			if err != nil {
				a.problems.Record(domain.Problem{
					Severity: domain.SeverityWarning,
					Message:  zerr.Wrap(err, "fingerprint unavailable").Error(),
					Path:     u.Path.String(),
				})
				return nil
			}
			mu.Lock()
			snapshot[u.Path.String()] = hash
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return snapshot
}

// abortPass persists a discarded entry after a fail-fast configuration
// failure, forcing every unit to start new on the next pass.
func (a *App) abortPass(current domain.FingerprintSnapshot, cause error) error {
	entry := &domain.CacheEntry{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now(),
		Outcome:      domain.OutcomeDiscarded,
		Fingerprints: current,
		Units:        map[string]domain.UnitRecord{},
		Problems:     a.problems.Problems(),
	}
	if err := a.store.Save(entry); err != nil {
		a.logger.Error(err)
	}
	return errors.Join(domain.ErrPassAborted, cause)
}

// persistPass applies the store decision and writes the new entry, or
// confirms reuse of the prior one unchanged.
func (a *App) persistPass(
	layout *domain.Layout,
	prior *domain.CacheEntry,
	current domain.FingerprintSnapshot,
	result *scheduler.PassResult,
	span ports.Span,
) (*PassSummary, error) {
	failOn := layout.Policy.FailOn
	if a.failOn != nil {
		failOn = *a.failOn
	}
	decision := a.problems.Decide(failOn)
	problemSet := a.problems.Problems()

	fresh, cached := modelCounts(result.Models)

	summary := &PassSummary{
		Decision:        decision,
		ConfiguredUnits: result.ConfiguredCount,
		ReusedUnits:     result.ReusedCount,
		FreshModels:     fresh,
		CachedModels:    cached,
		ProblemCount:    len(problemSet),
	}

	if prior != nil && decision == domain.DecisionStore && result.ConfiguredCount == 0 && fresh == 0 {
		// Nothing changed: confirm reuse and leave the prior artifact
		// byte-identical on disk.
		summary.Outcome = domain.OutcomeReusedUnchanged
		summary.EntryID = prior.ID
		a.logSummary(summary)
		return summary, nil
	}

	summary.Outcome = outcomeFor(decision)

	entry := &domain.CacheEntry{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now(),
		Outcome:      summary.Outcome,
		Fingerprints: current,
		Units:        result.Units,
		Models:       result.Models,
		Problems:     problemSet,
	}
	if err := a.store.Save(entry); err != nil {
		span.RecordError(err)
		return nil, err
	}

	summary.EntryID = entry.ID
	span.SetAttribute("outcome", string(summary.Outcome))
	a.logSummary(summary)
	return summary, nil
}

func (a *App) logSummary(summary *PassSummary) {
	a.logger.Info(fmt.Sprintf(
		"pass %s: %d configured, %d reused, %d fresh models, %d cached models, %d problems",
		summary.Outcome,
		summary.ConfiguredUnits,
		summary.ReusedUnits,
		summary.FreshModels,
		summary.CachedModels,
		summary.ProblemCount,
	))
}

func outcomeFor(decision domain.StoreDecision) domain.Outcome {
	switch decision {
	case domain.DecisionStoreWithProblems:
		return domain.OutcomeStoredWithProblems
	case domain.DecisionDiscard:
		return domain.OutcomeDiscarded
	default:
		return domain.OutcomeStored
	}
}

func modelCounts(models []domain.ModelRequest) (fresh, cached int) {
	for _, m := range models {
		if m.FromCache {
			cached++
		} else {
			fresh++
		}
	}
	return fresh, cached
}

func priorFingerprints(prior *domain.CacheEntry) domain.FingerprintSnapshot {
	if prior == nil {
		return domain.FingerprintSnapshot{}
	}
	return prior.Fingerprints
}

// parseEnvironment captures the process environment as a map.
func parseEnvironment() map[string]string {
	env := make(map[string]string)
	for _, e := range os.Environ() {
		for i := 0; i < len(e); i++ {
			if e[i] == '=' {
				env[e[:i]] = e[i+1:]
				break
			}
		}
	}
	return env
}

// Model looks up a recorded model result in the persisted cache entry.
// The boolean reports whether the entry was checked and holds the model;
// a discarded or absent entry reports false.
func (a *App) Model(path, modelType string) (json.RawMessage, bool, error) {
	entry, err := a.store.Load()
	if err != nil {
		// A corrupt entry serves nothing; the next configure pass
		// rebuilds it.
		if errors.Is(err, domain.ErrCacheCorrupt) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !entry.Reusable() {
		return nil, false, nil
	}

	unitPath, err := domain.ParseUnitPath(path)
	if err != nil {
		return nil, false, err
	}

	key := domain.ProjectModelKey(unitPath, modelType)
	if unitPath.IsRoot() {
		key = domain.BuildModelKey(modelType)
	}

	req, ok := entry.FindModel(key)
	if !ok {
		return nil, false, nil
	}
	return req.Payload, true, nil
}

// Clean removes the persisted cache entry.
func (a *App) Clean() error {
	return a.store.Clear()
}

// Watch runs a configuration pass, then re-runs it whenever the source tree
// changes, until the context is cancelled.
func (a *App) Watch(ctx context.Context) error {
	if _, err := a.ConfigurePass(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error(err)
	}

	if err := a.watcher.Start(ctx, a.cwd); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() { _ = a.watcher.Stop() }()

	passCh := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		a.logger.Info(fmt.Sprintf("%d paths changed, re-running configuration", len(paths)))
		select {
		case passCh <- struct{}{}:
		default:
		}
	})

	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-passCh:
			if _, err := a.ConfigurePass(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error(err)
			}
		}
	}
}
