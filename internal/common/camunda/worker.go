// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"restaurant-workers/internal/common/config"
	apperrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/metrics"
	"restaurant-workers/internal/common/observability"
)

// StartWorker opens a job worker for taskType. Handler panics are converted
// into job errors so one bad payload cannot take the process down.
func StartWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler worker.JobHandler,
	obs *observability.Observability,
	log logger.Logger,
) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	errHandler := apperrors.NewErrorHandler(log)

	wrapped := func(jobClient worker.JobClient, job entities.Job) {
		start := time.Now()
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		ctx, span := obs.Tracing().StartSpan(context.Background(), taskType, map[string]string{
			"job.key": fmt.Sprintf("%d", job.Key),
		})
		defer func() {
			span.End()
			metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
			obs.RecordJobDuration(ctx, taskType, time.Since(start), "done")
			if r := recover(); r != nil {
				errHandler.HandleJobError(ctx, jobClient, job, fmt.Errorf("panic: %v", r))
			}
		}()

		handler(jobClient, job)
		obs.RecordJobProcessed(ctx, taskType, "done")
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(wrapped).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jobWorker
}

// DecodeVariables unmarshals the job payload into dest.
func DecodeVariables(job entities.Job, dest interface{}) error {
	if err := json.Unmarshal([]byte(job.Variables), dest); err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("parse input: %v", err))
	}
	return nil
}

// CompleteJob sends output as the job result variables.
func CompleteJob(client worker.JobClient, job entities.Job, output interface{}, log logger.Logger) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		log.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(job.Type).Inc()
}
