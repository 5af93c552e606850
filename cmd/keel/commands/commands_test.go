package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/cmd/keel/commands"
	"go.trai.ch/keel/internal/app"
	"go.trai.ch/keel/internal/core/domain"
)

type mockApp struct {
	configureFunc func(ctx context.Context) (*app.PassSummary, error)
	watchFunc     func(ctx context.Context) error
	modelFunc     func(path, modelType string) (json.RawMessage, bool, error)
	cleanFunc     func() error
	failOn        *domain.Severity
}

func (m *mockApp) ConfigurePass(ctx context.Context) (*app.PassSummary, error) {
	if m.configureFunc != nil {
		return m.configureFunc(ctx)
	}
	return &app.PassSummary{Outcome: domain.OutcomeStored}, nil
}

func (m *mockApp) Watch(ctx context.Context) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx)
	}
	return nil
}

func (m *mockApp) Model(path, modelType string) (json.RawMessage, bool, error) {
	if m.modelFunc != nil {
		return m.modelFunc(path, modelType)
	}
	return nil, false, nil
}

func (m *mockApp) Clean() error {
	if m.cleanFunc != nil {
		return m.cleanFunc()
	}
	return nil
}

func (m *mockApp) OverrideFailOn(severity domain.Severity) {
	m.failOn = &severity
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	cli.SetArgs(args)
	out := new(bytes.Buffer)
	cli.SetOutput(out, out)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Configure(t *testing.T) {
	t.Run("prints the pass summary", func(t *testing.T) {
		mock := &mockApp{
			configureFunc: func(context.Context) (*app.PassSummary, error) {
				return &app.PassSummary{
					Outcome:         domain.OutcomeStored,
					ConfiguredUnits: 2,
					ReusedUnits:     1,
					FreshModels:     3,
					CachedModels:    1,
				}, nil
			},
		}

		out, err := execute(t, mock, "configure")
		require.NoError(t, err)
		assert.Contains(t, out, "outcome: stored")
		assert.Contains(t, out, "2 configured, 1 reused")
		assert.Contains(t, out, "3 fresh, 1 cached")
		assert.NotContains(t, out, "problems:")
	})

	t.Run("wires fail-on override", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "configure", "--fail-on", "warning")
		require.NoError(t, err)
		require.NotNil(t, mock.failOn)
		assert.Equal(t, domain.SeverityWarning, *mock.failOn)
	})

	t.Run("rejects unknown fail-on severity", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "configure", "--fail-on", "critical")
		assert.ErrorIs(t, err, domain.ErrInvalidSeverity)
	})

	t.Run("watch flag dispatches to watch mode", func(t *testing.T) {
		watched := false
		mock := &mockApp{
			watchFunc: func(context.Context) error {
				watched = true
				return nil
			},
			configureFunc: func(context.Context) (*app.PassSummary, error) {
				t.Fatal("a watch run must not invoke a one-shot pass")
				return nil, nil
			},
		}

		_, err := execute(t, mock, "configure", "--watch")
		require.NoError(t, err)
		assert.True(t, watched)
	})

	t.Run("propagates pass failure", func(t *testing.T) {
		mock := &mockApp{
			configureFunc: func(context.Context) (*app.PassSummary, error) {
				return nil, errors.New("simulated failure")
			},
		}

		_, err := execute(t, mock, "configure")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated failure")
	})
}

func TestCommands_Model(t *testing.T) {
	t.Run("prints the payload", func(t *testing.T) {
		mock := &mockApp{
			modelFunc: func(path, modelType string) (json.RawMessage, bool, error) {
				assert.Equal(t, ":app", path)
				assert.Equal(t, "sources", modelType)
				return json.RawMessage(`{"files":3}`), true, nil
			},
		}

		out, err := execute(t, mock, "model", ":app", "sources")
		require.NoError(t, err)
		assert.Contains(t, out, `{"files":3}`)
	})

	t.Run("missing model is an error", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "model", ":app", "sources")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no cached model result")
	})

	t.Run("requires both arguments", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "model", ":app")
		require.Error(t, err)
	})
}

func TestCommands_Clean(t *testing.T) {
	cleaned := false
	mock := &mockApp{cleanFunc: func() error {
		cleaned = true
		return nil
	}}

	out, err := execute(t, mock, "clean")
	require.NoError(t, err)
	assert.True(t, cleaned)
	assert.Contains(t, out, "configuration cache removed")
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "keel version")
}
