package main

import (
	"context"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
)

var batchConcurrency int

var batchCmd = &cobra.Command{
	Use:   "batch <case-file>...",
	Short: "Evaluate many case files concurrently",
	Long:  "Evaluates every case file and writes one combined report in input order. Failed cases are logged and left out of the report.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = settings.Batch.Concurrency
		}

		runID := newRunID()
		reports, failed := processBatch(ctx, args, concurrency, func(ctx context.Context, path string) (*domain.CaseReport, error) {
			c, err := loadCase(cmd, path)
			if err != nil {
				return nil, err
			}
			r, err := engine.RunCase(ctx, c)
			if err != nil {
				return nil, err
			}
			r.RunID = runID
			return r, nil
		})

		if err := writeReport(cmd, &domain.BatchReport{Reports: reports}); err != nil {
			return err
		}
		if failed > 0 {
			return eris.Errorf("%d of %d cases failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max cases evaluated at once (default from settings)")
	rootCmd.AddCommand(batchCmd)
}

// caseFunc is the callback signature for evaluating one case file.
type caseFunc func(ctx context.Context, path string) (*domain.CaseReport, error)

// processBatch evaluates paths concurrently and returns the successful reports
// in input order along with the number of failures. A failed case does not
// abort the batch.
func processBatch(ctx context.Context, paths []string, concurrency int, run caseFunc) ([]domain.CaseReport, int) {
	if len(paths) == 0 {
		zap.L().Info("no case files given")
		return []domain.CaseReport{}, 0
	}

	zap.L().Info("processing batch",
		zap.Int("cases", len(paths)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	results := make([]*domain.CaseReport, len(paths))
	var succeeded, failed atomic.Int64

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			log := zap.L().With(zap.String("case", path))

			r, err := run(gctx, path)
			if err != nil {
				failed.Add(1)
				log.Error("case failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			results[i] = r
			log.Debug("case complete")
			return nil
		})
	}
	_ = g.Wait()

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)

	reports := make([]domain.CaseReport, 0, len(paths))
	for _, r := range results {
		if r != nil {
			reports = append(reports, *r)
		}
	}
	return reports, int(failed.Load())
}
