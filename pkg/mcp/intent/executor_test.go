package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps a schedule in memory and counts changelog entries.
type fakeStore struct {
	mu        sync.Mutex
	items     []event.ScheduleItem
	changelog []event.ChangelogEntry
	saveErr   error
}

func newFakeStore(items ...event.ScheduleItem) *fakeStore {
	return &fakeStore{items: items}
}

func (s *fakeStore) find(identifier string) int {
	needle := strings.ToLower(identifier)
	for i, item := range s.items {
		if strings.ToLower(item.ID) == needle || strings.Contains(strings.ToLower(item.Title), needle) {
			return i
		}
	}
	return -1
}

func (s *fakeStore) UpdateScheduleTime(_ context.Context, identifier, newTime, newEndTime string) (*event.ScheduleItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.find(identifier)
	if idx < 0 {
		return nil, fmt.Errorf("schedule item %q: %w", identifier, event.ErrNotFound)
	}
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.items[idx].Time = newTime
	if newEndTime != "" {
		s.items[idx].EndTime = newEndTime
	}
	s.changelog = append(s.changelog, event.NewChangelogEntry(event.ChangeTimeChange, "time"))
	item := s.items[idx]
	return &item, nil
}

func (s *fakeStore) UpdateScheduleLocation(_ context.Context, identifier, newLocation string) (*event.ScheduleItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.find(identifier)
	if idx < 0 {
		return nil, fmt.Errorf("schedule item %q: %w", identifier, event.ErrNotFound)
	}
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.items[idx].Location = newLocation
	s.changelog = append(s.changelog, event.NewChangelogEntry(event.ChangeLocationChange, "location"))
	item := s.items[idx]
	return &item, nil
}

type recordingObserver struct {
	classified []string
	executed   map[string]bool
}

func (o *recordingObserver) ObserveClassification(intent string, _ float64) {
	o.classified = append(o.classified, intent)
}

func (o *recordingObserver) ObserveExecution(action string, executed bool) {
	if o.executed == nil {
		o.executed = make(map[string]bool)
	}
	o.executed[action] = executed
}

func keynoteStore() *fakeStore {
	return newFakeStore(
		event.ScheduleItem{ID: "item_1", Title: "Opening Keynote", Time: "9:00", Location: "Main Hall"},
		event.ScheduleItem{ID: "item_2", Title: "Panel Discussion", Time: "11:00", Location: "Room A"},
	)
}

func TestProcessTimeChangeCompletes(t *testing.T) {
	store := keynoteStore()
	observer := &recordingObserver{}
	exec := NewExecutor(NewClassifier(nil), store, WithObserver(observer))

	result := exec.Process(context.Background(), "move keynote from 9:00 to 10:00", true)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, "move keynote from 9:00 to 10:00", result.OriginalCommand)
	require.NotNil(t, result.ExecutionResult)
	assert.Equal(t, ExecutionOutcome{Executed: true, Action: TimeChange, Details: "Updated keynote to 10:00"}, *result.ExecutionResult)
	assert.Equal(t, "10:00", store.items[0].Time)
	assert.Len(t, store.changelog, 1)

	assert.Equal(t, []string{"time_change"}, observer.classified)
	assert.True(t, observer.executed["time_change"])
}

func TestProcessWithoutAutoExecute(t *testing.T) {
	store := keynoteStore()
	exec := NewExecutor(NewClassifier(nil), store)

	result := exec.Process(context.Background(), "move keynote from 9:00 to 10:00", false)

	assert.Equal(t, StatusClassifiedOnly, result.Status)
	assert.Nil(t, result.ExecutionResult)
	assert.Equal(t, "9:00", store.items[0].Time)
	assert.Empty(t, store.changelog)
}

func TestProcessLookupMiss(t *testing.T) {
	store := keynoteStore()
	exec := NewExecutor(NewClassifier(nil), store)

	result := exec.Process(context.Background(), "move lunch to room b", true)

	assert.Equal(t, StatusClassifiedOnly, result.Status)
	require.NotNil(t, result.ExecutionResult)
	assert.False(t, result.ExecutionResult.Executed)
	assert.Equal(t, LocationChange, result.ExecutionResult.Action)
	assert.Equal(t, "Failed to find lunch", result.ExecutionResult.Details)
	assert.Equal(t, "Room A", store.items[1].Location)
	assert.Empty(t, store.changelog)
}

func TestProcessLocationChange(t *testing.T) {
	store := keynoteStore()
	exec := NewExecutor(NewClassifier(nil), store)

	result := exec.Process(context.Background(), "please move the panel to room b", true)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, "Moved panel to room b", result.ExecutionResult.Details)
	assert.Equal(t, "room b", store.items[1].Location)
}

func TestProcessPersistFailureIsNotExecuted(t *testing.T) {
	store := keynoteStore()
	store.saveErr = errors.New("read-only file system")
	exec := NewExecutor(NewClassifier(nil), store)

	result := exec.Process(context.Background(), "move keynote from 9:00 to 10:00", true)

	assert.Equal(t, StatusClassifiedOnly, result.Status)
	require.NotNil(t, result.ExecutionResult)
	assert.False(t, result.ExecutionResult.Executed)
	assert.Equal(t, "Failed to save keynote: read-only file system", result.ExecutionResult.Details)
}

func TestProcessMissingParametersIsSilent(t *testing.T) {
	store := keynoteStore()
	exec := NewExecutor(NewClassifier(nil), store)

	// time_change wins but no event name
	result := exec.Process(context.Background(), "move it from 9:00 to 10:00", true)
	assert.Equal(t, TimeChange, result.Classification.Intent)
	assert.Nil(t, result.ExecutionResult)
	assert.Equal(t, StatusClassifiedOnly, result.Status)

	// cancel_event has no mutation
	result = exec.Process(context.Background(), "cancel the workshop", true)
	assert.Nil(t, result.ExecutionResult)
	assert.Empty(t, store.changelog)
}

func TestProcessThresholdIsStrict(t *testing.T) {
	store := keynoteStore()
	// "to" (0.3) wins alone: below the default gate
	exec := NewExecutor(NewClassifier(nil), store)
	result := exec.Process(context.Background(), "keynote to 10:00", true)
	assert.Nil(t, result.ExecutionResult)

	classifier := fixedClassifier{Classification{
		Intent:     TimeChange,
		Confidence: 0.5,
		Parameters: map[string]string{ParamEventName: "keynote", ParamNewTime: "10:00"},
	}}
	result = NewExecutor(classifier, store).Process(context.Background(), "anything", true)
	assert.Nil(t, result.ExecutionResult)
	assert.Equal(t, "9:00", store.items[0].Time)

	result = NewExecutor(classifier, store, WithThreshold(0.4)).Process(context.Background(), "anything", true)
	require.NotNil(t, result.ExecutionResult)
	assert.True(t, result.ExecutionResult.Executed)
}

func TestCommandResultJSONShape(t *testing.T) {
	exec := NewExecutor(NewClassifier(nil), keynoteStore())

	data, err := json.Marshal(exec.Process(context.Background(), "hello", true))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "execution_result")
	assert.Nil(t, raw["execution_result"])
	assert.Equal(t, "classified_only", raw["status"])

	classification := raw["classification"].(map[string]any)
	assert.Equal(t, "unknown", classification["intent"])
	assert.Equal(t, map[string]any{}, classification["parameters"])
}

type fixedClassifier struct {
	result Classification
}

func (f fixedClassifier) Classify(string) Classification {
	return f.result
}
