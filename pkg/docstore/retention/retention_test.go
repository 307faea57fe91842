package retention

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	cutoff  time.Time
	deleted int64
	err     error
	calls   int
}

func (f *fakeStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.calls++
	f.cutoff = cutoff
	return f.deleted, f.err
}

func TestPruneUsesRetentionCutoff(t *testing.T) {
	store := &fakeStore{deleted: 3}
	pruner := NewPruner(store, Config{RetentionDays: 30})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	want := time.Now().AddDate(0, 0, -30)
	if diff := store.cutoff.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("cutoff = %v, want about %v", store.cutoff, want)
	}
}

func TestPruneDisabledWithZeroRetention(t *testing.T) {
	store := &fakeStore{}
	pruner := NewPruner(store, Config{RetentionDays: 0})

	if _, err := pruner.Prune(context.Background()); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if store.calls != 0 {
		t.Errorf("store called %d times, want 0", store.calls)
	}
}

func TestPrunePropagatesStoreError(t *testing.T) {
	wantErr := errors.New("store broken")
	pruner := NewPruner(&fakeStore{err: wantErr}, Config{RetentionDays: 7})

	if _, err := pruner.Prune(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Prune error = %v, want %v", err, wantErr)
	}
}

func TestSchedulerRejectsBadCron(t *testing.T) {
	pruner := NewPruner(&fakeStore{}, Config{RetentionDays: 7, PruneSchedule: "not a cron"})
	scheduler := NewScheduler(pruner)

	if err := scheduler.Start(context.Background()); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

func TestSchedulerNoopWithoutSchedule(t *testing.T) {
	pruner := NewPruner(&fakeStore{}, Config{RetentionDays: 7})
	scheduler := NewScheduler(pruner)

	if err := scheduler.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if scheduler.IsRunning() {
		t.Error("scheduler should not run without a schedule")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	pruner := NewPruner(&fakeStore{}, Config{RetentionDays: 7, PruneSchedule: "0 3 * * *"})
	scheduler := NewScheduler(pruner)

	ctx, cancel := context.WithCancel(context.Background())
	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !scheduler.IsRunning() {
		t.Error("scheduler should be running")
	}

	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for scheduler.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("scheduler did not stop after context cancellation")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
