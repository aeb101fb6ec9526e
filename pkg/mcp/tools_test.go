package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hugohenrick/emceep/internal/adapter/repository"
	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/hugohenrick/emceep/pkg/mcp/intent"
	"github.com/hugohenrick/emceep/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `{
  "name": "DevConf",
  "date": "2025-06-01",
  "venue": "Expo Center",
  "schedule": [
    {"id": "item_1", "title": "Opening Keynote", "time": "09:00", "end_time": "10:00", "location": "Main Hall"},
    {"id": "item_2", "title": "Lunch", "time": "12:00", "end_time": "13:00", "location": "Cafeteria"}
  ],
  "attendees": [
    {"id": "att_001", "name": "Ana Souza", "email": "ana@example.com", "phone": "+15550001", "company": "Acme", "dietary_restrictions": "vegetarian"},
    {"id": "att_002", "name": "Bruno Dias", "email": "bruno@example.com", "dietary_restrictions": "none"}
  ],
  "organizer": {"name": "Legacy Org", "email": "org@example.com"},
  "faq": {"wifi": "guest / welcome"},
  "registration": {"open": true},
  "changelog": []
}`

type fakeSender struct {
	mu    sync.Mutex
	sent  []string
	sid   string
	err   error
	phone string
}

func (s *fakeSender) Send(_ context.Context, to, body string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.phone = to
	s.sent = append(s.sent, body)
	return s.sid, nil
}

type recordingToolObserver struct {
	mu    sync.Mutex
	calls map[string]string
}

func (o *recordingToolObserver) ObserveToolCall(tool, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.calls == nil {
		o.calls = make(map[string]string)
	}
	o.calls[tool] = outcome
}

func newTestDispatcher(t *testing.T, sender notify.Sender, opts ...DispatcherOption) (*Dispatcher, *repository.EventRepository) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(testDocument), 0o644))

	repo, err := repository.NewEventRepository(path)
	require.NoError(t, err)

	executor := intent.NewExecutor(intent.NewClassifier(nil), repo)
	return NewDispatcher(repo, executor, sender, opts...), repo
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	require.True(t, ok, "result is %T", v)
	return m
}

func TestDispatcherToolsInRegistrationOrder(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)

	var names []string
	for _, tool := range d.Tools() {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
		assert.NotEmpty(t, tool.InputSchema)
	}
	assert.Equal(t, []string{
		"classify_voice_command", "update_event_time", "update_event_location", "update_faq",
		"update_organizer", "add_schedule_item", "remove_schedule_item", "update_event_details",
		"process_voice_command", "get_schedule", "get_faq", "get_organizer", "get_organizers",
		"get_attendees", "get_everything", "get_dietary_requirements", "add_attendee",
		"remove_attendee", "update_attendee", "get_changelog", "send_sms",
	}, names)
	assert.True(t, d.HasTool("send_sms"))
	assert.False(t, d.HasTool("drop_database"))
}

func TestDispatcherUnknownTool(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)

	_, err := d.Call(context.Background(), "drop_database", nil)
	require.ErrorIs(t, err, ErrUnknownTool)
	assert.Equal(t, "unknown tool: drop_database", err.Error())
}

func TestDispatcherMissingArguments(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)

	_, err := d.Call(context.Background(), "update_event_time", map[string]any{"event_identifier": "keynote"})
	assert.ErrorIs(t, err, ErrInvalidArguments)

	_, err = d.Call(context.Background(), "update_faq", map[string]any{"key": "parking"})
	assert.ErrorIs(t, err, ErrInvalidArguments)

	_, err = d.Call(context.Background(), "get_changelog", map[string]any{"limit": "lots"})
	assert.ErrorIs(t, err, ErrInvalidArguments)
}

func TestDispatcherUpdateEventTime(t *testing.T) {
	observer := &recordingToolObserver{}
	d, repo := newTestDispatcher(t, nil, WithToolObserver(observer))
	ctx := context.Background()

	result, err := d.Call(ctx, "update_event_time", map[string]any{"event_identifier": "keynote", "new_time": "09:30"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"success":  true,
		"message":  "Successfully updated keynote to 09:30",
		"event_id": "keynote",
		"new_time": "09:30",
	}, result)

	item, err := repo.FindScheduleItem(ctx, "item_1")
	require.NoError(t, err)
	assert.Equal(t, "09:30", item.Time)

	result, err = d.Call(ctx, "update_event_time", map[string]any{"event_identifier": "gala", "new_time": "20:00"})
	require.NoError(t, err)
	m := asMap(t, result)
	assert.Equal(t, false, m["success"])
	assert.Equal(t, "Could not find event: gala", m["message"])

	assert.Equal(t, OutcomeFailure, observer.calls["update_event_time"])
}

func TestDispatcherUpdateEventLocation(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)

	result, err := d.Call(context.Background(), "update_event_location",
		map[string]any{"event_identifier": "lunch", "new_location": "Rooftop"})
	require.NoError(t, err)
	m := asMap(t, result)
	assert.Equal(t, true, m["success"])
	assert.Equal(t, "Successfully moved lunch to Rooftop", m["message"])
	assert.Equal(t, "Rooftop", m["new_location"])
}

func TestDispatcherScheduleLifecycle(t *testing.T) {
	d, repo := newTestDispatcher(t, nil)
	ctx := context.Background()

	result, err := d.Call(ctx, "add_schedule_item", map[string]any{
		"title": "Go Workshop", "time": "14:00", "end_time": "16:00", "location": "Lab", "speaker": "Rob",
	})
	require.NoError(t, err)
	m := asMap(t, result)
	assert.Equal(t, true, m["success"])
	assert.Equal(t, "item_3", m["item_id"])
	assert.Equal(t, "Successfully added 'Go Workshop' to schedule", m["message"])

	_, err = d.Call(ctx, "add_schedule_item", map[string]any{"title": "Incomplete"})
	assert.ErrorIs(t, err, ErrInvalidArguments)

	result, err = d.Call(ctx, "remove_schedule_item", map[string]any{"event_identifier": "workshop"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully removed 'workshop' from schedule", asMap(t, result)["message"])

	_, err = repo.FindScheduleItem(ctx, "workshop")
	assert.ErrorIs(t, err, event.ErrNotFound)

	result, err = d.Call(ctx, "remove_schedule_item", map[string]any{"event_identifier": "workshop"})
	require.NoError(t, err)
	assert.Equal(t, "Could not find event: workshop", asMap(t, result)["message"])
}

func TestDispatcherFAQOrganizerAndDetails(t *testing.T) {
	d, repo := newTestDispatcher(t, nil)
	ctx := context.Background()

	result, err := d.Call(ctx, "update_faq", map[string]any{"key": "parking", "value": "Level -2"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully updated FAQ entry 'parking'", asMap(t, result)["message"])

	result, err = d.Call(ctx, "get_faq", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"wifi": "guest / welcome", "parking": "Level -2"}, asMap(t, result)["faq"])

	result, err = d.Call(ctx, "update_organizer", map[string]any{"field": "phone", "value": "+15550100"})
	require.NoError(t, err)
	assert.Equal(t, true, asMap(t, result)["success"])

	result, err = d.Call(ctx, "update_organizer", map[string]any{"field": "shoe_size", "value": "42"})
	require.NoError(t, err)
	m := asMap(t, result)
	assert.Equal(t, false, m["success"])
	assert.Contains(t, m["message"], "Failed to update organizer shoe_size")

	result, err = d.Call(ctx, "update_event_details", map[string]any{"field": "name", "value": "DevConf 2025"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully updated event name", asMap(t, result)["message"])

	doc, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "DevConf 2025", doc.Name)
	assert.Equal(t, "+15550100", doc.Organizer.Phone)
}

func TestDispatcherReadTools(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	ctx := context.Background()

	result, err := d.Call(ctx, "get_schedule", nil)
	require.NoError(t, err)
	assert.Len(t, asMap(t, result)["schedule"], 2)

	result, err = d.Call(ctx, "get_organizer", nil)
	require.NoError(t, err)
	m := asMap(t, result)
	assert.Equal(t, []event.Organizer{{Name: "Legacy Org", Email: "org@example.com"}}, m["organizers"])
	assert.Equal(t, map[string]any{"name": "DevConf", "date": "2025-06-01", "venue": "Expo Center"}, m["event_details"])

	result, err = d.Call(ctx, "get_organizers", nil)
	require.NoError(t, err)
	assert.Equal(t, event.OrganizerSummary{TotalOrganizers: 1, OrganizersWithEmail: 1}, asMap(t, result)["summary"])

	result, err = d.Call(ctx, "get_attendees", nil)
	require.NoError(t, err)
	m = asMap(t, result)
	assert.Len(t, m["attendees"], 2)
	assert.Equal(t, map[string]any{"open": true}, m["registration_info"])

	result, err = d.Call(ctx, "get_dietary_requirements", nil)
	require.NoError(t, err)
	summary, ok := result.(event.DietarySummary)
	require.True(t, ok)
	assert.Equal(t, map[string]int{"vegetarian": 1, "none": 1}, summary.DietarySummary)

	result, err = d.Call(ctx, "get_everything", nil)
	require.NoError(t, err)
	doc, ok := asMap(t, result)["complete_event_data"].(*event.Document)
	require.True(t, ok)
	assert.Equal(t, "DevConf", doc.Name)
}

func TestDispatcherAttendeeLifecycle(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	ctx := context.Background()

	result, err := d.Call(ctx, "add_attendee", map[string]any{"name": "Carla Reis", "email": "carla@example.com"})
	require.NoError(t, err)
	m := asMap(t, result)
	assert.Equal(t, "att_003", m["attendee_id"])
	assert.Equal(t, "none", m["dietary_restrictions"])

	result, err = d.Call(ctx, "update_attendee", map[string]any{
		"attendee_identifier": "carla@example.com", "field": "dietary_restrictions", "value": "vegan",
	})
	require.NoError(t, err)
	assert.Equal(t, "Successfully updated dietary_restrictions for attendee 'carla@example.com'", asMap(t, result)["message"])

	result, err = d.Call(ctx, "update_attendee", map[string]any{
		"attendee_identifier": "nobody", "field": "name", "value": "x",
	})
	require.NoError(t, err)
	assert.Equal(t, "Could not find attendee: nobody", asMap(t, result)["message"])

	result, err = d.Call(ctx, "remove_attendee", map[string]any{"attendee_identifier": "Carla Reis"})
	require.NoError(t, err)
	assert.Equal(t, true, asMap(t, result)["success"])
}

func TestDispatcherChangelogLimit(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	ctx := context.Background()

	for _, v := range []string{"a", "b", "c"} {
		_, err := d.Call(ctx, "update_faq", map[string]any{"key": v, "value": v})
		require.NoError(t, err)
	}

	result, err := d.Call(ctx, "get_changelog", map[string]any{"limit": float64(2)})
	require.NoError(t, err)
	m := asMap(t, result)
	assert.Equal(t, 3, m["total_changes"])
	assert.Equal(t, 2, m["limit"])
	recent := m["recent_changes"].([]event.ChangelogEntry)
	require.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].Key)
	assert.Equal(t, "c", recent[1].Key)

	result, err = d.Call(ctx, "get_changelog", nil)
	require.NoError(t, err)
	assert.Equal(t, 10, asMap(t, result)["limit"])
}

func TestDispatcherVoiceCommands(t *testing.T) {
	d, repo := newTestDispatcher(t, nil)
	ctx := context.Background()

	result, err := d.Call(ctx, "classify_voice_command", map[string]any{"text": ""})
	require.NoError(t, err)
	assert.Equal(t, intent.Unknown, result.(intent.Classification).Intent)

	result, err = d.Call(ctx, "process_voice_command", map[string]any{"command": "move keynote from 9:00 to 10:00", "auto_execute": false})
	require.NoError(t, err)
	assert.Equal(t, intent.StatusClassifiedOnly, result.(intent.CommandResult).Status)

	_, before, err := repo.Changelog(ctx, 0)
	require.NoError(t, err)

	result, err = d.Call(ctx, "process_voice_command", map[string]any{"command": "move keynote from 9:00 to 10:00"})
	require.NoError(t, err)
	cmd := result.(intent.CommandResult)
	assert.Equal(t, intent.StatusCompleted, cmd.Status)
	require.NotNil(t, cmd.ExecutionResult)
	assert.Equal(t, "Updated keynote to 10:00", cmd.ExecutionResult.Details)

	item, err := repo.FindScheduleItem(ctx, "keynote")
	require.NoError(t, err)
	assert.Equal(t, "10:00", item.Time)

	entries, after, err := repo.Changelog(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, before+1, after)
	assert.Equal(t, event.ChangeTimeChange, entries[len(entries)-1].Type)
}

func TestDispatcherSendSMS(t *testing.T) {
	sender := &fakeSender{sid: "SM42"}
	d, repo := newTestDispatcher(t, sender)
	ctx := context.Background()
	long := "The keynote has moved to the main hall, please arrive ten minutes early"

	result, err := d.Call(ctx, "send_sms", map[string]any{"person_identifier": "ana@example.com", "message": long})
	require.NoError(t, err)
	m := asMap(t, result)
	assert.Equal(t, true, m["success"])
	assert.Equal(t, "SMS sent successfully to attendee Ana Souza", m["message"])
	assert.Equal(t, "SM42", m["message_sid"])
	assert.Equal(t, "+15550001", sender.phone)

	entries, _, err := repo.Changelog(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, event.ChangeSMSSent, entries[0].Type)
	assert.Equal(t, long[:50]+"...", entries[0].Details["message_body"])
	assert.Equal(t, "SM42", entries[0].Details["message_sid"])
	assert.Equal(t, "attendee", entries[0].Details["person_type"])
}

func TestDispatcherSendSMSFailures(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name       string
		sender     notify.Sender
		identifier string
		code       string
	}{
		{"unknown person", &fakeSender{}, "nobody", "person_not_found"},
		{"no phone", &fakeSender{}, "Bruno Dias", "no_phone_number"},
		{"no credentials", nil, "Ana Souza", "missing_credentials"},
		{"provider error", &fakeSender{err: errors.New("boom")}, "Ana Souza", "send_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, repo := newTestDispatcher(t, tc.sender)

			result, err := d.Call(ctx, "send_sms", map[string]any{"person_identifier": tc.identifier, "message": "hi"})
			require.NoError(t, err)
			m := asMap(t, result)
			assert.Equal(t, false, m["success"])
			assert.Equal(t, tc.code, m["error"])

			_, total, err := repo.Changelog(ctx, 0)
			require.NoError(t, err)
			assert.Zero(t, total)
		})
	}
}

func TestDispatcherResources(t *testing.T) {
	d, repo := newTestDispatcher(t, nil)
	ctx := context.Background()

	resources := d.Resources()
	require.Len(t, resources, 5)
	assert.Equal(t, ResourceSchedule, resources[0].URI)
	assert.Equal(t, "Complete Event Data", resources[4].Name)

	contents, err := d.ReadResource(ctx, ResourceFAQ)
	require.NoError(t, err)
	assert.Equal(t, "application/json", contents.MimeType)
	assert.JSONEq(t, `{"wifi": "guest / welcome"}`, contents.Text)
	assert.Contains(t, contents.Text, "\n  \"wifi\"")

	_, err = repo.AddAttendee(ctx, event.Attendee{Name: "Dora"})
	require.NoError(t, err)
	contents, err = d.ReadResource(ctx, ResourceAttendees)
	require.NoError(t, err)
	assert.Contains(t, contents.Text, "Dora")

	_, err = d.ReadResource(ctx, "file://event/secrets")
	assert.ErrorIs(t, err, ErrUnknownResource)
}
