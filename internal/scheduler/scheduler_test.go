package scheduler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adirao/pixelforge/internal/models"
)

type fakeUserStore struct {
	calls  int
	values []int
	err    error
}

func (f *fakeUserStore) ResetAllCredits(ctx context.Context, value int) error {
	f.calls++
	f.values = append(f.values, value)
	return f.err
}

func TestResetCredits(t *testing.T) {
	users := &fakeUserStore{}
	s := New(users, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	s.resetCredits()

	require.Equal(t, 1, users.calls)
	assert.Equal(t, models.DefaultCredits, users.values[0])
}

func TestResetCredits_ErrorIsLoggedNotFatal(t *testing.T) {
	var buf bytes.Buffer
	users := &fakeUserStore{err: errors.New("mongo down")}
	s := New(users, slog.New(slog.NewTextHandler(&buf, nil)))

	s.resetCredits()
	s.resetCredits() // next run proceeds regardless of the previous failure

	assert.Equal(t, 2, users.calls)
	assert.Contains(t, buf.String(), "credit reset failed")
}

func TestResetSpecIsValid(t *testing.T) {
	_, err := cron.ParseStandard(resetSpec)
	require.NoError(t, err)
}

func TestStartStop(t *testing.T) {
	s := New(&fakeUserStore{}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, s.Start())
	s.Stop()
}
