package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ericwinler854485/shopline-bulk/internal/config"
	"github.com/ericwinler854485/shopline-bulk/internal/order"
)

// Submitter performs one create-order call and reduces it to an outcome
// line. Satisfied by *shopline.Client.
type Submitter interface {
	Submit(ctx context.Context, payload order.Payload) string
}

// Service runs batch submissions and tracks their tasks.
type Service struct {
	registry  *Registry
	limiter   *BatchLimiter
	pacing    time.Duration
	resultDir string
}

// NewService creates the batch service from configuration.
func NewService(cfg *config.Config) *Service {
	return &Service{
		registry:  NewRegistry(),
		limiter:   NewBatchLimiter(cfg.Batch.MaxConcurrent, cfg.Batch.MaxWaitTime),
		pacing:    cfg.Batch.PacingInterval,
		resultDir: cfg.Batch.ResultDir,
	}
}

// Registry exposes the task registry for status readers.
func (s *Service) Registry() *Registry {
	return s.registry
}

// StartBatch registers a new task and launches its submission run in the
// background, returning the task id immediately. The caller's context only
// scopes slot acquisition; once started, a batch runs to completion.
//
// Returns ErrTooManyBatches when the concurrent batch limit is reached and
// no slot frees up within the wait window.
func (s *Service) StartBatch(ctx context.Context, filePath string, sub Submitter) (string, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return "", err
	}

	task := s.registry.Create()

	go func() {
		defer s.limiter.Release()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic in batch run", "task_id", task.ID, "panic", r)
				task.Fail(fmt.Sprintf("internal error: %v", r))
			}
		}()
		s.runBatch(context.Background(), task, filePath, sub)
	}()

	return task.ID, nil
}

// runBatch executes one full batch: read, normalize, submit, record, pace.
// Row-level problems become log lines and never stop the loop; only an
// unreadable input file or a failed artifact write aborts the task.
func (s *Service) runBatch(ctx context.Context, task *Task, filePath string, sub Submitter) {
	start := time.Now()
	logger := slog.Default().With("task_id", task.ID)
	logger.Info("batch started", "file", filepath.Base(filePath))

	records, err := ReadRecords(filePath)
	if err != nil {
		logger.Error("batch aborted", "error", err)
		task.Fail(err.Error())
		return
	}

	for _, rec := range records {
		var line string
		payload, err := order.Normalize(rec)
		if err != nil {
			line = err.Error()
		} else {
			line = sub.Submit(ctx, payload)
		}
		task.Append(line)

		// Constant throttle between create-order calls. The API expects
		// one outstanding request at a time from bulk tooling.
		time.Sleep(s.pacing)
	}

	resultFile, err := s.writeResult(task)
	if err != nil {
		logger.Error("batch aborted", "error", err)
		task.Fail(err.Error())
		return
	}

	task.Complete(resultFile)
	logger.Info("batch completed",
		"rows", len(records),
		"result_file", filepath.Base(resultFile),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// writeResult serializes the ordered outcome lines into a timestamp-named
// JSON artifact and returns its path.
func (s *Service) writeResult(task *Task) (string, error) {
	view := task.Snapshot()

	doc := struct {
		Logs []string `json:"logs"`
	}{Logs: view.Logs}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}

	name := fmt.Sprintf("results_%s_task%s.json", time.Now().Format("20060102_150405"), task.ID)
	path := filepath.Join(s.resultDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write result artifact: %w", err)
	}
	return path, nil
}
