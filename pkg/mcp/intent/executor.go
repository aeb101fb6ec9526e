package intent

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/hugohenrick/emceep/pkg/logger"
)

// DefaultThreshold is the confidence a classification must exceed to run.
const DefaultThreshold = 0.5

// IntentClassifier é a interface consumida pelo executor para classificar comandos
type IntentClassifier interface {
	Classify(text string) Classification
}

// ScheduleMutator is the part of the event store the executor writes to. Each
// call must mutate and persist atomically.
type ScheduleMutator interface {
	UpdateScheduleTime(ctx context.Context, identifier, newTime, newEndTime string) (*event.ScheduleItem, error)
	UpdateScheduleLocation(ctx context.Context, identifier, newLocation string) (*event.ScheduleItem, error)
}

// Observer recebe cada classificação e execução, normalmente para métricas
type Observer interface {
	ObserveClassification(intent string, confidence float64)
	ObserveExecution(action string, executed bool)
}

// Executor classifica comandos e, acima do limiar, aplica a mutação no evento
type Executor struct {
	classifier IntentClassifier
	store      ScheduleMutator
	threshold  float64
	observer   Observer
	logger     logger.Logger
}

// ExecutorOption configura um Executor
type ExecutorOption func(*Executor)

// WithThreshold overrides DefaultThreshold. The gate stays strict.
func WithThreshold(threshold float64) ExecutorOption {
	return func(e *Executor) {
		e.threshold = threshold
	}
}

// WithObserver registra um observador de classificações e execuções
func WithObserver(o Observer) ExecutorOption {
	return func(e *Executor) {
		e.observer = o
	}
}

// WithLogger define o logger do executor
func WithLogger(log logger.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger.OrNop(log)
	}
}

// NewExecutor cria um executor sobre o classificador e o armazenamento informados
func NewExecutor(classifier IntentClassifier, store ScheduleMutator, opts ...ExecutorOption) *Executor {
	e := &Executor{
		classifier: classifier,
		store:      store,
		threshold:  DefaultThreshold,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classify exposes the underlying classifier.
func (e *Executor) Classify(text string) Classification {
	c := e.classifier.Classify(text)
	if e.observer != nil {
		e.observer.ObserveClassification(string(c.Intent), c.Confidence)
	}
	return c
}

// Process classifica o comando e, quando autoExecute está ativo e a confiança
// passa do limiar, executa a mudança de horário ou de local.
func (e *Executor) Process(ctx context.Context, command string, autoExecute bool) CommandResult {
	operationID := uuid.New().String()
	classification := e.Classify(command)

	var outcome *ExecutionOutcome
	if autoExecute && classification.Confidence > e.threshold {
		outcome = e.execute(ctx, classification)
	}

	status := StatusClassifiedOnly
	if outcome != nil && outcome.Executed {
		status = StatusCompleted
	}

	if outcome != nil {
		if e.observer != nil {
			e.observer.ObserveExecution(string(outcome.Action), outcome.Executed)
		}
		e.logger.Info("command processed",
			"operation_id", operationID,
			"intent", classification.Intent,
			"executed", outcome.Executed,
			"details", outcome.Details)
	} else {
		e.logger.Debug("command classified only",
			"operation_id", operationID,
			"intent", classification.Intent,
			"confidence", classification.Confidence,
			"auto_execute", autoExecute)
	}

	return CommandResult{
		OriginalCommand: command,
		Classification:  classification,
		ExecutionResult: outcome,
		Status:          status,
	}
}

// execute returns nil when the intent has no mutation or a parameter is missing.
func (e *Executor) execute(ctx context.Context, c Classification) *ExecutionOutcome {
	eventName := c.Parameters[ParamEventName]

	switch c.Intent {
	case TimeChange:
		newTime := c.Parameters[ParamNewTime]
		if eventName == "" || newTime == "" {
			return nil
		}
		_, err := e.store.UpdateScheduleTime(ctx, eventName, newTime, "")
		return e.outcome(TimeChange, eventName, fmt.Sprintf("Updated %s to %s", eventName, newTime), err)

	case LocationChange:
		newLocation := c.Parameters[ParamNewLocation]
		if eventName == "" || newLocation == "" {
			return nil
		}
		_, err := e.store.UpdateScheduleLocation(ctx, eventName, newLocation)
		return e.outcome(LocationChange, eventName, fmt.Sprintf("Moved %s to %s", eventName, newLocation), err)
	}
	return nil
}

func (e *Executor) outcome(action IntentName, eventName, success string, err error) *ExecutionOutcome {
	switch {
	case err == nil:
		return &ExecutionOutcome{Executed: true, Action: action, Details: success}
	case errors.Is(err, event.ErrNotFound):
		return &ExecutionOutcome{Executed: false, Action: action, Details: fmt.Sprintf("Failed to find %s", eventName)}
	default:
		e.logger.Error("command execution failed", "action", action, "event", eventName, "error", err)
		return &ExecutionOutcome{Executed: false, Action: action, Details: fmt.Sprintf("Failed to save %s: %v", eventName, err)}
	}
}
