package resolveprice

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/common/metrics"
	"grocery-assistant/internal/common/observability"
	"grocery-assistant/internal/suggest"
)

const (
	TaskType = "resolve-price"
)

type Handler struct {
	config     *Config
	prices     suggest.PriceResolver
	errHandler *apperrors.ErrorHandler
	obs        *observability.Observability
	logger     logger.Logger
}

func NewHandler(config *Config, prices suggest.PriceResolver, obs *observability.Observability, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		prices:     prices,
		errHandler: apperrors.NewErrorHandler(l),
		obs:        obs,
		logger:     l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := ParseInput(job.Variables)
	if err == nil {
		var output *Output
		if output, err = h.execute(ctx, input); err == nil {
			h.completeJob(client, job, output)
			metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
			metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
			h.obs.RecordJob(ctx, TaskType, "completed", time.Since(start))
			return
		}
	}

	stdErr := apperrors.AsStandardError(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJob(ctx, TaskType, "failed", time.Since(start))
	h.errHandler.HandleJobError(context.Background(), client, job, stdErr)
}

// ParseInput validates and decodes job variables.
func ParseInput(variables string) (*Input, error) {
	if err := inputSchema.Check([]byte(variables)); err != nil {
		return nil, err
	}
	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidRequestError(err.Error())
	}
	return &input, nil
}

// Execute runs the business logic (exported for testing)
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(input.Item) == "" {
		return nil, apperrors.NewInvalidRequestError("item is required")
	}

	item := h.prices.Resolve(ctx, input.Item)
	h.logger.Info("price resolved", map[string]interface{}{
		"item":   item.Name,
		"price":  item.Price,
		"source": item.Source,
	})
	return &Output{
		Name:     item.Name,
		Price:    item.Price,
		Category: item.Category,
		Source:   item.Source,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
