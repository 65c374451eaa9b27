package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeService struct {
	name     string
	startErr error
	block    bool

	mu      *sync.Mutex
	stopped *[]string
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.stopped = append(*s.stopped, s.name)
	return nil
}

func TestRunnerStopsInReverseOrder(t *testing.T) {
	var mu sync.Mutex
	var stopped []string
	failure := errors.New("bind failed")
	runner := NewRunner(
		&fakeService{name: "container", block: true, mu: &mu, stopped: &stopped},
		nil,
		&fakeService{name: "http", startErr: failure, mu: &mu, stopped: &stopped},
		&fakeService{name: "worker", block: true, mu: &mu, stopped: &stopped},
	)

	err := runner.Run(context.Background(), time.Second, nil)
	if !errors.Is(err, failure) {
		t.Fatalf("expected start error to propagate, got %v", err)
	}
	want := []string{"worker", "http", "container"}
	if len(stopped) != len(want) {
		t.Fatalf("unexpected stop order: %v", stopped)
	}
	for i := range want {
		if stopped[i] != want[i] {
			t.Fatalf("unexpected stop order: %v", stopped)
		}
	}
}

func TestRunnerCanceledContextIsClean(t *testing.T) {
	var mu sync.Mutex
	var stopped []string
	runner := NewRunner(&fakeService{name: "container", block: true, mu: &mu, stopped: &stopped})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := runner.Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("canceled run should return nil, got %v", err)
	}
	if len(stopped) != 1 {
		t.Fatalf("service should be stopped once, got %v", stopped)
	}
}

func TestRunnerWithoutServices(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("expected error for empty runner")
	}
}
