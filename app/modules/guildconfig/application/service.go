// Package guildconfigservice implements the guild configuration operations.
package guildconfigservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	guildconfigdb "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/infrastructure/repositories"
	"github.com/ligue-mk8/timeattack-bot/internal/observability"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// GuildConfigService implements the Service interface.
type GuildConfigService struct {
	repo    guildconfigdb.Repository
	logger  *slog.Logger
	metrics observability.OperationMetrics
	tracer  trace.Tracer
}

// NewGuildConfigService creates a new GuildConfigService.
func NewGuildConfigService(
	repo guildconfigdb.Repository,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *GuildConfigService {
	return &GuildConfigService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery so every method reports the same way.
func (s *GuildConfigService) withTelemetry(
	ctx context.Context,
	operationName string,
	guildID string,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("guild_id", guildID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "GuildConfigService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "GuildConfigService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("guild_id", guildID),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "GuildConfigService")
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("guild_id", guildID),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "GuildConfigService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("guild_id", guildID),
			slog.Any("failure_type", fmt.Sprintf("%T", result.Failure)),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "GuildConfigService")
	return result, nil
}
