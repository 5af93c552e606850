package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/keel/internal/adapters/cas"
	"go.trai.ch/keel/internal/adapters/config"
	"go.trai.ch/keel/internal/adapters/fs"
	"go.trai.ch/keel/internal/adapters/logger"
	"go.trai.ch/keel/internal/adapters/script"
	"go.trai.ch/keel/internal/adapters/telemetry"
	"go.trai.ch/keel/internal/adapters/tooling"
	"go.trai.ch/keel/internal/adapters/watcher"
	"go.trai.ch/keel/internal/app"
	"go.trai.ch/keel/internal/engine/invalidation"
	"go.trai.ch/keel/internal/engine/modelcache"
	"go.trai.ch/keel/internal/engine/problems"
	"go.trai.ch/keel/internal/engine/scheduler"
)

func testProvider(t *testing.T) ComponentProvider {
	t.Helper()
	return func(_ context.Context) (*app.Components, func(), error) {
		log := logger.New()
		log.SetOutput(new(bytes.Buffer))

		sink := telemetry.NewCollector()
		collector := problems.NewCollector()
		cache := modelcache.NewCache(tooling.NewBuilder(), sink)
		tracer := telemetry.NewOTelTracer("keel-test")
		sched := scheduler.NewScheduler(script.NewRunner("."), cache, collector, sink, tracer)

		fsWatcher, err := watcher.NewWatcher()
		if err != nil {
			return nil, nil, err
		}

		application := app.New(
			&config.FileConfigLoader{},
			fs.NewFingerprinter(fs.NewWalker()),
			cas.NewStore(cas.DefaultPath),
			sched,
			invalidation.NewAnalyzer(),
			collector,
			tracer,
			log,
			fsWatcher,
		)

		return &app.Components{App: application, Logger: log}, func() { _ = fsWatcher.Stop() }, nil
	}
}

func TestRun_Version(t *testing.T) {
	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, testProvider(t))
	assert.Equal(t, 0, exitCode)
	assert.Empty(t, stderr.String())
}

func TestRun_ProviderFailure(t *testing.T) {
	stderr := new(bytes.Buffer)
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("wiring failed")
	}

	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "wiring failed")
}

func TestRun_UnknownCommand(t *testing.T) {
	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"definitely-not-a-command"}, stderr, testProvider(t))
	assert.Equal(t, 1, exitCode)
}
