package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyProcessor struct {
	Processor
	failures int
	calls    int
}

func (f *flakyProcessor) CreatePayment(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("processor down")
	}
	return &Intent{ID: "pi_ok", ClientSecret: "secret"}, nil
}

func TestWithBreaker_PassesThroughSuccess(t *testing.T) {
	p := WithBreaker(&flakyProcessor{})

	intent, err := p.CreatePayment(context.Background(), 2500, "eur", nil)
	require.NoError(t, err)
	assert.Equal(t, "pi_ok", intent.ID)
	assert.Equal(t, "secret", intent.ClientSecret)
}

func TestWithBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	flaky := &flakyProcessor{failures: 100}
	p := WithBreaker(flaky)

	for i := 0; i < 5; i++ {
		_, err := p.CreatePayment(context.Background(), 2500, "eur", nil)
		require.Error(t, err)
	}

	// Breaker is now open: the underlying processor stops being called.
	callsBefore := flaky.calls
	_, err := p.CreatePayment(context.Background(), 2500, "eur", nil)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, callsBefore, flaky.calls)
}
