package banklink

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salim-ai/salim-client/models"
)

func TestHostedWidget_SubmitCompletesOpen(t *testing.T) {
	w := NewHostedWidget()

	var promptedToken string
	w.SetPrompt(func(linkToken string) { promptedToken = linkToken })

	go func() {
		time.Sleep(10 * time.Millisecond)
		w.Submit("  public-sandbox-1  ", models.Institution{Name: "Demo Bank"})
	}()

	result, err := w.Open(context.Background(), "link-token-1")
	require.NoError(t, err)

	assert.Equal(t, "link-token-1", promptedToken)
	assert.Equal(t, "public-sandbox-1", result.PublicToken)
	assert.Equal(t, "Demo Bank", result.Institution.Name)
}

func TestHostedWidget_EmptyTokenIsCancel(t *testing.T) {
	w := NewHostedWidget()

	go func() {
		time.Sleep(10 * time.Millisecond)
		w.Submit("   ", models.Institution{})
	}()

	_, err := w.Open(context.Background(), "link-token-1")
	assert.ErrorIs(t, err, ErrWidgetCanceled)
}

func TestHostedWidget_Cancel(t *testing.T) {
	w := NewHostedWidget()

	go func() {
		time.Sleep(10 * time.Millisecond)
		w.Cancel()
	}()

	_, err := w.Open(context.Background(), "link-token-1")
	assert.ErrorIs(t, err, ErrWidgetCanceled)
}

func TestHostedWidget_Fail(t *testing.T) {
	w := NewHostedWidget()

	go func() {
		time.Sleep(10 * time.Millisecond)
		w.Fail(WidgetCodeInstitutionNotResponding)
	}()

	_, err := w.Open(context.Background(), "link-token-1")

	var widgetErr *WidgetError
	require.ErrorAs(t, err, &widgetErr)
	assert.Equal(t, WidgetCodeInstitutionNotResponding, widgetErr.Code)
	assert.False(t, widgetErr.Silent())
}

func TestHostedWidget_ContextCancellation(t *testing.T) {
	w := NewHostedWidget()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := w.Open(ctx, "link-token-1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHostedWidget_StaleInputDoesNotLeakIntoNextLeg(t *testing.T) {
	w := NewHostedWidget()

	// First leg ends via context cancellation before the user acts.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := w.Open(ctx, "link-token-1")
	require.ErrorIs(t, err, context.Canceled)

	// The abandoned leg's input arrives late and sits in the buffers.
	w.Submit("public-stale", models.Institution{Name: "Stale Bank"})
	w.Fail(WidgetCodeInstitutionNotResponding)
	w.Cancel()

	// The next leg must wait for its own input, not resolve instantly
	// with the leftovers.
	ctx, cancel = context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = w.Open(ctx, "link-token-2")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
