package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "event_id": "evt_1",
  "name": "DevConf",
  "venue": {"name": "Expo Hall", "city": "Lisbon"},
  "sponsors": ["acme", "globex"],
  "schedule": [
    {"id": "item_1", "title": "Opening Keynote", "time": "09:00", "end_time": "10:00", "location": "Main Hall"},
    {"id": "item_2", "title": "Lunch", "time": "12:00", "end_time": "13:00", "location": "Cafeteria"}
  ],
  "attendees": [
    {"id": "att_001", "name": "Ana Souza", "email": "ana@example.com", "phone": "+15550001", "dietary_restrictions": "vegetarian"},
    {"id": "att_003", "name": "Bo Chen", "dietary_restrictions": "none"}
  ],
  "organizer": {"name": "Rita", "email": "rita@example.com"},
  "changelog": [
    {"action": "add_faq", "key": "wifi", "value": "guest", "timestamp": "2024-05-01T10:00:00.123456"}
  ]
}`

func loadSample(t *testing.T) *Document {
	t.Helper()
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(sampleDocument), &doc))
	return &doc
}

func TestDocumentPreservesUnknownKeys(t *testing.T) {
	doc := loadSample(t)
	require.Contains(t, doc.Extra, "sponsors")

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, []any{"acme", "globex"}, raw["sponsors"])
	assert.Equal(t, "Lisbon", raw["venue"].(map[string]any)["city"])
}

func TestLegacyChangelogEntry(t *testing.T) {
	doc := loadSample(t)
	require.Len(t, doc.Changelog, 1)

	entry := doc.Changelog[0]
	assert.Equal(t, ChangeAddFAQ, entry.Type)
	assert.Equal(t, "wifi", entry.Key)
	assert.Equal(t, "guest", entry.Details["value"])
}

func TestCloneIsIndependent(t *testing.T) {
	doc := loadSample(t)
	clone, err := doc.Clone()
	require.NoError(t, err)

	clone.Schedule[0].Time = "11:00"
	clone.Attendees = append(clone.Attendees, Attendee{ID: "att_009"})

	assert.Equal(t, "09:00", doc.Schedule[0].Time)
	assert.Len(t, doc.Attendees, 2)
	assert.Contains(t, clone.Extra, "sponsors")
}

func TestFindScheduleItem(t *testing.T) {
	doc := loadSample(t)

	assert.Equal(t, 0, doc.FindScheduleItem("ITEM_1"))
	assert.Equal(t, 0, doc.FindScheduleItem("keynote"))
	assert.Equal(t, 1, doc.FindScheduleItem("lunch"))
	assert.Equal(t, -1, doc.FindScheduleItem("panel"))
}

func TestFindAttendee(t *testing.T) {
	doc := loadSample(t)

	assert.Equal(t, 0, doc.FindAttendee("ana souza"))
	assert.Equal(t, 0, doc.FindAttendee("ANA@example.com"))
	assert.Equal(t, 0, doc.FindAttendee("+15550001"))
	assert.Equal(t, 1, doc.FindAttendee("att_003"))
	assert.Equal(t, -1, doc.FindAttendee("nobody"))
	assert.Equal(t, -1, doc.FindAttendee(""))
}

func TestNextAttendeeIDSkipsTakenIDs(t *testing.T) {
	doc := loadSample(t)
	// two attendees, att_003 already taken
	assert.Equal(t, "att_004", doc.NextAttendeeID())

	doc.Attendees = nil
	assert.Equal(t, "att_001", doc.NextAttendeeID())
}

func TestNextScheduleID(t *testing.T) {
	doc := loadSample(t)
	assert.Equal(t, "item_3", doc.NextScheduleID())
}

func TestAllOrganizersFallsBackToLegacy(t *testing.T) {
	doc := loadSample(t)
	organizers := doc.AllOrganizers()
	require.Len(t, organizers, 1)
	assert.Equal(t, "Rita", organizers[0].Name)

	doc.Organizers = []Organizer{{Name: "Sam"}, {Name: "Lee"}}
	assert.Len(t, doc.AllOrganizers(), 2)

	found, ok := doc.FindOrganizer("sam")
	assert.True(t, ok)
	assert.Equal(t, "Sam", found.Name)
}

func TestSetAttendeeField(t *testing.T) {
	a := Attendee{Name: "Ana", DietaryRestrictions: "none"}

	old, err := SetAttendeeField(&a, "dietary_restrictions", "vegan")
	require.NoError(t, err)
	assert.Equal(t, "none", old)
	assert.Equal(t, "vegan", a.DietaryRestrictions)

	_, err = SetAttendeeField(&a, "shoe_size", "42")
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestSetOrganizerField(t *testing.T) {
	var o Organizer
	_, err := SetOrganizerField(&o, "website", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", o.Website)

	_, err = SetOrganizerField(&o, "budget", "1")
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestSetDetail(t *testing.T) {
	doc := loadSample(t)

	old, err := doc.SetDetail("name", "DevConf 2025")
	require.NoError(t, err)
	assert.Equal(t, "DevConf", old)

	old, err = doc.SetDetail("venue", "Hall B")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Expo Hall","city":"Lisbon"}`, old)
	assert.Equal(t, "Hall B", doc.Venue)

	_, err = doc.SetDetail("theme", "cloud")
	require.NoError(t, err)
	assert.JSONEq(t, `"cloud"`, string(doc.Extra["theme"]))

	_, err = doc.SetDetail("schedule", "x")
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = doc.SetDetail(" ", "x")
	assert.ErrorIs(t, err, ErrEmptyValue)
}

func TestSummaries(t *testing.T) {
	doc := loadSample(t)

	dietary := SummarizeDietary(doc.Attendees)
	assert.Equal(t, 2, dietary.TotalAttendees)
	assert.Equal(t, map[string]int{"vegetarian": 1, "none": 1}, dietary.DietarySummary)
	assert.Len(t, dietary.DetailedRequirements, 2)
	assert.Equal(t, CateringNotes, dietary.CateringNotes)

	organizers := SummarizeOrganizers([]Organizer{
		{Name: "A", Phone: "1", Email: "a@x"},
		{Name: "B", Email: "b@x"},
	})
	assert.Equal(t, OrganizerSummary{TotalOrganizers: 2, OrganizersWithPhone: 1, OrganizersWithEmail: 2}, organizers)
}
