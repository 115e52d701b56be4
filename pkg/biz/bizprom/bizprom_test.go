package bizprom

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/fnexec/pkg/biz"
	"github.com/ib-77/fnexec/pkg/biz/chain"
)

func TestHooks_CountSteps(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := New(reg, "fnexec")
	require.NoError(t, err)

	ctx := context.Background()
	_, _ = chain.New(ctx, m.Option()).
		EnsureThat(true, "").
		Ensure(func(context.Context) (bool, error) { return false, errors.New("io") }, "").
		EnsureThat(false, "skipped").
		Result()

	_, _ = chain.New(ctx, m.Option()).
		Execute(func(context.Context, *biz.State) error { return biz.NewError("declined") }).
		Result()

	steps := m.Steps()
	assert.Equal(t, 1.0, testutil.ToFloat64(steps.WithLabelValues("ensure", OutcomePass)))
	assert.Equal(t, 1.0, testutil.ToFloat64(steps.WithLabelValues("ensure", OutcomeFault)))
	assert.Equal(t, 1.0, testutil.ToFloat64(steps.WithLabelValues("ensure", OutcomeSkip)))
	assert.Equal(t, 1.0, testutil.ToFloat64(steps.WithLabelValues("execute", OutcomeReject)))
	assert.Equal(t, 4, testutil.CollectAndCount(steps))
}

func TestHooks_NestedRejectionCountsAsReject(t *testing.T) {
	t.Parallel()

	m, err := New(prometheus.NewRegistry(), "fnexec")
	require.NoError(t, err)

	_, _ = chain.New(context.Background(), m.Option()).
		Execute(func(ctx context.Context, s *biz.State) error {
			biz.Ensure(ctx, s, biz.Check(func() bool { return false }), "nested")
			return nil
		}).
		Result()

	steps := m.Steps()
	assert.Equal(t, 1.0, testutil.ToFloat64(steps.WithLabelValues("execute", OutcomeReject)))
	assert.Equal(t, 0.0, testutil.ToFloat64(steps.WithLabelValues("execute", OutcomePass)))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := New(reg, "fnexec")
	require.NoError(t, err)

	_, err = New(reg, "fnexec")
	assert.Error(t, err)
}

func TestNew_Unregistered(t *testing.T) {
	t.Parallel()

	m, err := New(nil, "")
	require.NoError(t, err)
	assert.NotNil(t, m.Steps())
}
