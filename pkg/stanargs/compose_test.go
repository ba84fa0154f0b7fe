package stanargs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statforge/gostan/internal/testutil"
	"github.com/statforge/gostan/pkg/errors"
)

func TestComposeFullScenario(t *testing.T) {
	cfg, err := NewOptimizeConfig(
		WithAlgorithm("LBFGS"),
		WithIterations(100),
		WithSaveIterations(true),
		WithTolObj(1e-8),
	)
	require.NoError(t, err)

	rs := new(testutil.MockRunConfiguration)
	rs.On("BeginCommand", 0).Return([]string{"id=1", "data", "file=d.json"})

	cmd := cfg.Compose(rs, 0)

	assert.Equal(t, []string{
		"id=1", "data", "file=d.json",
		"method=optimize",
		"algorithm=lbfgs",
		"tol_obj=1e-08",
		"iter=100",
		"save_iterations=1",
	}, cmd)
	rs.AssertExpectations(t)
}

func TestComposeEmitsAllFieldsInOrder(t *testing.T) {
	cfg, err := NewOptimizeConfig(
		WithAlgorithm("lbfgs"),
		WithInitAlpha(0.001),
		WithTolObj(1e-12),
		WithTolRelObj(1e4),
		WithTolGrad(1e-8),
		WithTolRelGrad(1e7),
		WithTolParam(1e-8),
		WithHistorySize(5),
		WithIterations(2000),
		WithSaveIterations(true),
	)
	require.NoError(t, err)

	cmd := cfg.Compose(testutil.StaticPrefix{"output", "file=out.csv"}, 0)

	assert.Equal(t, []string{
		"output", "file=out.csv",
		"method=optimize",
		"algorithm=lbfgs",
		"init_alpha=0.001",
		"tol_obj=1e-12",
		"tol_rel_obj=10000",
		"tol_grad=1e-08",
		"tol_rel_grad=1e+07",
		"tol_param=1e-08",
		"history_size=5",
		"iter=2000",
		"save_iterations=1",
	}, cmd)
}

func TestComposeOmitsUnsetFields(t *testing.T) {
	cfg, err := NewOptimizeConfig()
	require.NoError(t, err)

	cmd := cfg.Compose(testutil.StaticPrefix{}, 0)

	// save_iterations=0 is never emitted; absence means false.
	assert.Equal(t, []string{"method=optimize"}, cmd)
}

func TestComposeIdempotent(t *testing.T) {
	cfg, err := NewOptimizeConfig(WithAlgorithm("bfgs"), WithIterations(50))
	require.NoError(t, err)

	prefix := testutil.StaticPrefix{"id=1"}
	first := cfg.Compose(prefix, 0)
	second := cfg.Compose(prefix, 0)

	assert.Equal(t, first, second)
}

func TestComposePerIndexPrefix(t *testing.T) {
	cfg, err := NewOptimizeConfig(WithIterations(10))
	require.NoError(t, err)

	assert.Equal(t, []string{"id=1", "method=optimize", "iter=10"}, cfg.Compose(testutil.IndexedPrefix{}, 0))
	assert.Equal(t, []string{"id=3", "method=optimize", "iter=10"}, cfg.Compose(testutil.IndexedPrefix{}, 2))
}

func TestComposeAll(t *testing.T) {
	cfg, err := NewOptimizeConfig(WithAlgorithm("lbfgs"), WithIterations(25))
	require.NoError(t, err)

	cmds, err := ComposeAll(context.Background(), cfg, testutil.IndexedPrefix{}, 4)
	require.NoError(t, err)
	require.Len(t, cmds, 4)

	for i, cmd := range cmds {
		assert.Equal(t, []string{
			"id=" + string(rune('1'+i)),
			"method=optimize",
			"algorithm=lbfgs",
			"iter=25",
		}, cmd)
	}
}

func TestComposeAllCanceledContext(t *testing.T) {
	cfg, err := NewOptimizeConfig()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ComposeAll(ctx, cfg, testutil.StaticPrefix{}, 2)
	require.Error(t, err)
	assert.Equal(t, errors.Canceled, errors.Code(err))
}

func TestComposeAllNegativeRuns(t *testing.T) {
	cfg, err := NewOptimizeConfig()
	require.NoError(t, err)

	_, err = ComposeAll(context.Background(), cfg, testutil.StaticPrefix{}, -1)
	require.Error(t, err)
	assert.Equal(t, errors.InvalidInput, errors.Code(err))
}
