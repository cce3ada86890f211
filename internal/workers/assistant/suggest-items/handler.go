package suggestitems

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"grocery-assistant/internal/catalog"
	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/common/metrics"
	"grocery-assistant/internal/common/observability"
	"grocery-assistant/internal/models"
	"grocery-assistant/internal/suggest"
)

const (
	TaskType = "suggest-items"
)

type Handler struct {
	config     *Config
	catalog    *catalog.Catalog
	rules      catalog.RuleSet
	service    suggest.Service
	resolver   *suggest.Resolver
	errHandler *apperrors.ErrorHandler
	obs        *observability.Observability
	logger     logger.Logger
}

func NewHandler(
	config *Config,
	cat *catalog.Catalog,
	rules catalog.RuleSet,
	service suggest.Service,
	prices suggest.PriceResolver,
	obs *observability.Observability,
	log logger.Logger,
) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		catalog:    cat,
		rules:      rules,
		service:    service,
		resolver:   suggest.NewResolver(cat, prices),
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
	if input == nil {
		return nil, apperrors.NewInvalidRequestError("history is required")
	}

	history := make([]string, 0, len(input.History))
	for _, item := range input.History {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			history = append(history, item)
		}
	}

	entries, label, ok := h.ask(ctx, history)
	if !ok {
		metrics.SuggestionRequests.WithLabelValues("local").Inc()
		entries = suggest.LocalFallback(h.catalog, h.rules.Substitutes, history)
		label = suggest.LabelFallback
	} else {
		metrics.SuggestionRequests.WithLabelValues("service").Inc()
	}

	output := &Output{
		Suggestions: h.resolver.Resolve(ctx, entries),
		Label:       label,
		Fallback:    !ok,
	}
	h.logger.Info("suggestions built", map[string]interface{}{
		"history":  len(history),
		"count":    len(output.Suggestions),
		"fallback": output.Fallback,
	})
	return output, nil
}

func (h *Handler) ask(ctx context.Context, history []string) ([]models.Suggestion, string, bool) {
	if h.service == nil {
		return nil, "", false
	}

	sctx, cancel := context.WithTimeout(ctx, h.config.ServiceTimeout)
	defer cancel()

	res, err := h.service.Suggest(sctx, strings.Join(history, ", "))
	if err != nil {
		stdErr := apperrors.AsStandardError(err)
		if sctx.Err() != nil && stdErr.Code != apperrors.ErrCodeSuggestionTimeout {
			stdErr = apperrors.NewSuggestionTimeoutError(err)
		}
		metrics.CollaboratorFailures.WithLabelValues("suggestion", string(stdErr.Code)).Inc()
		h.logger.Warn("suggestion collaborator failed, using local fallback", map[string]interface{}{
			"errorCode": stdErr.Code,
			"error":     err.Error(),
		})
		return nil, "", false
	}
	return res.Suggestions, res.Label(), true
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
