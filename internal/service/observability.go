package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *zap.Logger
}

// NewLogUseCaseObserver writes use-case events to a zap logger. Successful
// reads log at debug, writes at info and failures at warn.
func NewLogUseCaseObserver(logger *zap.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	fields := make([]zap.Field, 0, 3+len(event.Fields))
	fields = append(fields,
		zap.String("use_case", event.Name),
		zap.Duration("duration", event.Duration),
		zap.Bool("success", event.Success),
	)
	for k, v := range event.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	if event.Err != nil {
		o.logger.Warn("service_use_case", append(fields, zap.Error(event.Err))...)
		return
	}
	if _, write := writeUseCases[event.Name]; write {
		o.logger.Info("service_use_case", fields...)
		return
	}
	o.logger.Debug("service_use_case", fields...)
}

// UseCaseRecorder is the slice of the metrics registry the observer needs.
type UseCaseRecorder interface {
	ObserveUseCase(name string, success bool, d time.Duration)
}

type metricsUseCaseObserver struct {
	rec UseCaseRecorder
}

// NewMetricsUseCaseObserver counts use cases in a metrics recorder.
func NewMetricsUseCaseObserver(rec UseCaseRecorder) UseCaseObserver {
	if rec == nil {
		return NoopUseCaseObserver{}
	}
	return &metricsUseCaseObserver{rec: rec}
}

func (o *metricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.rec.ObserveUseCase(event.Name, event.Success, event.Duration)
}

type multiUseCaseObserver []UseCaseObserver

func (m multiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		obs.ObserveUseCase(ctx, event)
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var live multiUseCaseObserver
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	default:
		return live
	}
}

var writeUseCases = map[string]struct{}{
	"toggle_task":         {},
	"set_difficulty":      {},
	"save_note":           {},
	"add_custom_task":     {},
	"delete_custom_task":  {},
	"set_assessment_date": {},
	"mark_week_done":      {},
}
