package main

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
)

func TestProcessBatch_Empty(t *testing.T) {
	reports, failed := processBatch(context.Background(), nil, 4, func(ctx context.Context, path string) (*domain.CaseReport, error) {
		t.Fatal("run should not be called")
		return nil, nil
	})
	assert.Empty(t, reports)
	assert.Zero(t, failed)
}

func TestProcessBatch_KeepsInputOrder(t *testing.T) {
	paths := []string{"e", "d", "c", "b", "a"}

	reports, failed := processBatch(context.Background(), paths, 3, func(ctx context.Context, path string) (*domain.CaseReport, error) {
		// later paths finish first
		time.Sleep(time.Duration(path[0]-'a') * time.Millisecond)
		return &domain.CaseReport{Name: path}, nil
	})

	assert.Zero(t, failed)
	names := make([]string, len(reports))
	for i, r := range reports {
		names[i] = r.Name
	}
	assert.Equal(t, paths, names)
}

func TestProcessBatch_FailuresDoNotAbort(t *testing.T) {
	paths := []string{"ok-1", "bad", "ok-2"}

	reports, failed := processBatch(context.Background(), paths, 1, func(ctx context.Context, path string) (*domain.CaseReport, error) {
		if path == "bad" {
			return nil, fmt.Errorf("broken case")
		}
		return &domain.CaseReport{Name: path}, nil
	})

	assert.Equal(t, 1, failed)
	if assert.Len(t, reports, 2) {
		assert.Equal(t, "ok-1", reports[0].Name)
		assert.Equal(t, "ok-2", reports[1].Name)
	}
}

func TestProcessBatch_RespectsConcurrencyLimit(t *testing.T) {
	paths := make([]string, 12)
	for i := range paths {
		paths[i] = fmt.Sprintf("case-%d", i)
	}

	var inFlight, peak atomic.Int64
	_, failed := processBatch(context.Background(), paths, 2, func(ctx context.Context, path string) (*domain.CaseReport, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return &domain.CaseReport{Name: path}, nil
	})

	assert.Zero(t, failed)
	assert.LessOrEqual(t, peak.Load(), int64(2))
}

func TestProcessBatch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, failed := processBatch(ctx, []string{"a", "b"}, 2, func(ctx context.Context, path string) (*domain.CaseReport, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &domain.CaseReport{Name: path}, nil
	})

	assert.Empty(t, reports)
	assert.Equal(t, 2, failed)
}
