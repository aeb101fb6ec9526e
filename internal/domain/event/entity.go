package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a schedule item, attendee or person lookup misses.
	ErrNotFound = errors.New("not found")

	// ErrInvalidField is returned when an update names a field the entity does not have.
	ErrInvalidField = errors.New("invalid field")

	// ErrEmptyValue is returned when a required value is blank.
	ErrEmptyValue = errors.New("value must not be empty")
)

// ChangeType identifies the kind of mutation a changelog entry records.
type ChangeType string

const (
	ChangeTimeChange         ChangeType = "time_change"
	ChangeLocationChange     ChangeType = "location_change"
	ChangeAddScheduleItem    ChangeType = "add_schedule_item"
	ChangeRemoveScheduleItem ChangeType = "remove_schedule_item"
	ChangeAddAttendee        ChangeType = "add_attendee"
	ChangeRemoveAttendee     ChangeType = "remove_attendee"
	ChangeUpdateAttendee     ChangeType = "update_attendee"
	ChangeAddFAQ             ChangeType = "add_faq"
	ChangeUpdateFAQ          ChangeType = "update_faq"
	ChangeUpdateOrganizer    ChangeType = "update_organizer"
	ChangeUpdateEventDetails ChangeType = "update_event_details"
	ChangeSMSSent            ChangeType = "sms_sent"
)

// ScheduleItem is one session of the event agenda.
type ScheduleItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Time        string `json:"time"`
	EndTime     string `json:"end_time,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Speaker     string `json:"speaker,omitempty"`
}

// Attendee is a registered participant.
type Attendee struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email,omitempty"`
	Phone               string `json:"phone,omitempty"`
	Company             string `json:"company,omitempty"`
	DietaryRestrictions string `json:"dietary_restrictions"`
}

// Organizer is a member of the organizing team.
type Organizer struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Role    string `json:"role,omitempty"`
	Website string `json:"website,omitempty"`
}

// IsZero reports whether no organizer field is set.
func (o Organizer) IsZero() bool {
	return o == Organizer{}
}

// ChangelogEntry is an append-only audit record describing one mutation.
type ChangelogEntry struct {
	ID          string         `json:"id"`
	Type        ChangeType     `json:"type"`
	Description string         `json:"description,omitempty"`
	Timestamp   string         `json:"timestamp"`
	ItemID      string         `json:"item_id,omitempty"`
	Field       string         `json:"field,omitempty"`
	Key         string         `json:"key,omitempty"`
	OldValue    any            `json:"old_value,omitempty"`
	NewValue    any            `json:"new_value,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

var changelogKeys = map[string]struct{}{
	"id": {}, "type": {}, "description": {}, "timestamp": {}, "item_id": {},
	"field": {}, "key": {}, "old_value": {}, "new_value": {}, "details": {},
}

type changelogAlias ChangelogEntry

// UnmarshalJSON accepts older entries that used "action" instead of "type" and
// folds any other unknown keys into Details.
func (e *ChangelogEntry) UnmarshalJSON(data []byte) error {
	var alias changelogAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if _, known := changelogKeys[key]; known {
			continue
		}
		if key == "action" && alias.Type == "" {
			if action, ok := value.(string); ok {
				alias.Type = ChangeType(action)
				continue
			}
		}
		if alias.Details == nil {
			alias.Details = make(map[string]any)
		}
		alias.Details[key] = value
	}
	*e = ChangelogEntry(alias)
	return nil
}

// PersonKind tells attendees and organizers apart.
type PersonKind string

const (
	PersonAttendee  PersonKind = "attendee"
	PersonOrganizer PersonKind = "organizer"
)

// Person is the common view of an attendee or organizer used for messaging.
type Person struct {
	Kind  PersonKind `json:"type"`
	ID    string     `json:"id,omitempty"`
	Name  string     `json:"name"`
	Email string     `json:"email,omitempty"`
	Phone string     `json:"phone,omitempty"`
}

// Document is the whole event file. Top-level keys the struct does not know about
// are kept in Extra and written back unchanged.
type Document struct {
	EventID      string                     `json:"event_id,omitempty"`
	Name         string                     `json:"name,omitempty"`
	Date         string                     `json:"date,omitempty"`
	Venue        any                        `json:"venue,omitempty"`
	Description  string                     `json:"description,omitempty"`
	Location     any                        `json:"location,omitempty"`
	Organizer    *Organizer                 `json:"organizer,omitempty"`
	Organizers   []Organizer                `json:"organizers,omitempty"`
	Schedule     []ScheduleItem             `json:"schedule"`
	Attendees    []Attendee                 `json:"attendees"`
	FAQ          map[string]string          `json:"faq,omitempty"`
	Registration any                        `json:"registration,omitempty"`
	Changelog    []ChangelogEntry           `json:"changelog"`
	Extra        map[string]json.RawMessage `json:"-"`
}

var documentKeys = map[string]struct{}{
	"event_id": {}, "name": {}, "date": {}, "venue": {}, "description": {},
	"location": {}, "organizer": {}, "organizers": {}, "schedule": {},
	"attendees": {}, "faq": {}, "registration": {}, "changelog": {},
}

type documentAlias Document

// UnmarshalJSON decodes the known fields and stashes the rest in Extra.
func (d *Document) UnmarshalJSON(data []byte) error {
	var alias documentAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range raw {
		if _, known := documentKeys[key]; known {
			delete(raw, key)
		}
	}
	alias.Extra = nil
	if len(raw) > 0 {
		alias.Extra = raw
	}

	*d = Document(alias)
	return nil
}

// MarshalJSON encodes the known fields merged with Extra.
func (d Document) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(documentAlias(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return base, nil
	}

	merged := make(map[string]json.RawMessage, len(d.Extra)+len(documentKeys))
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range d.Extra {
		if _, taken := merged[key]; !taken {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() (*Document, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("clone event document: %w", err)
	}
	var clone Document
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, fmt.Errorf("clone event document: %w", err)
	}
	return &clone, nil
}

// FindScheduleItem returns the index of the first item whose id equals identifier
// or whose title contains it, both case-insensitively. -1 when nothing matches.
func (d *Document) FindScheduleItem(identifier string) int {
	if strings.TrimSpace(identifier) == "" {
		return -1
	}
	needle := strings.ToLower(identifier)
	for i, item := range d.Schedule {
		if strings.ToLower(item.ID) == needle || strings.Contains(strings.ToLower(item.Title), needle) {
			return i
		}
	}
	return -1
}

// FindAttendee matches id, name or email case-insensitively and phone exactly.
func (d *Document) FindAttendee(identifier string) int {
	if strings.TrimSpace(identifier) == "" {
		return -1
	}
	needle := strings.ToLower(identifier)
	for i, a := range d.Attendees {
		if strings.ToLower(a.ID) == needle ||
			strings.ToLower(a.Name) == needle ||
			strings.ToLower(a.Email) == needle ||
			(a.Phone != "" && a.Phone == identifier) {
			return i
		}
	}
	return -1
}

// FindOrganizer uses the same matching rules as FindAttendee over AllOrganizers.
func (d *Document) FindOrganizer(identifier string) (Organizer, bool) {
	if strings.TrimSpace(identifier) == "" {
		return Organizer{}, false
	}
	needle := strings.ToLower(identifier)
	for _, o := range d.AllOrganizers() {
		if strings.ToLower(o.ID) == needle ||
			strings.ToLower(o.Name) == needle ||
			strings.ToLower(o.Email) == needle ||
			(o.Phone != "" && o.Phone == identifier) {
			return o, true
		}
	}
	return Organizer{}, false
}

// AllOrganizers returns the organizers list, falling back to the legacy single
// organizer object when the list is empty.
func (d *Document) AllOrganizers() []Organizer {
	if len(d.Organizers) > 0 {
		return d.Organizers
	}
	if d.Organizer != nil && !d.Organizer.IsZero() {
		return []Organizer{*d.Organizer}
	}
	return []Organizer{}
}

// NextAttendeeID returns the first free att_NNN id counting up from len+1.
func (d *Document) NextAttendeeID() string {
	taken := make(map[string]struct{}, len(d.Attendees))
	for _, a := range d.Attendees {
		taken[a.ID] = struct{}{}
	}
	for n := len(d.Attendees) + 1; ; n++ {
		id := fmt.Sprintf("att_%03d", n)
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}

// NextScheduleID returns item_N counting up from one past the schedule length,
// skipping ids that are already used.
func (d *Document) NextScheduleID() string {
	taken := make(map[string]struct{}, len(d.Schedule))
	for _, item := range d.Schedule {
		taken[item.ID] = struct{}{}
	}
	for n := len(d.Schedule) + 1; ; n++ {
		id := fmt.Sprintf("item_%d", n)
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}

// SetAttendeeField updates one attendee field and returns the previous value.
func SetAttendeeField(a *Attendee, field, value string) (string, error) {
	var target *string
	switch field {
	case "name":
		target = &a.Name
	case "email":
		target = &a.Email
	case "phone":
		target = &a.Phone
	case "company":
		target = &a.Company
	case "dietary_restrictions":
		target = &a.DietaryRestrictions
	default:
		return "", fmt.Errorf("attendee field %q: %w", field, ErrInvalidField)
	}
	old := *target
	*target = value
	return old, nil
}

// SetOrganizerField updates one organizer field and returns the previous value.
func SetOrganizerField(o *Organizer, field, value string) (string, error) {
	var target *string
	switch field {
	case "id":
		target = &o.ID
	case "name":
		target = &o.Name
	case "email":
		target = &o.Email
	case "phone":
		target = &o.Phone
	case "role":
		target = &o.Role
	case "website":
		target = &o.Website
	default:
		return "", fmt.Errorf("organizer field %q: %w", field, ErrInvalidField)
	}
	old := *target
	*target = value
	return old, nil
}

// SetDetail updates a top-level event field. Unknown fields are stored in Extra
// as JSON strings so arbitrary details survive a save.
func (d *Document) SetDetail(field, value string) (string, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return "", fmt.Errorf("event field: %w", ErrEmptyValue)
	}

	switch field {
	case "event_id":
		old := d.EventID
		d.EventID = value
		return old, nil
	case "name":
		old := d.Name
		d.Name = value
		return old, nil
	case "date":
		old := d.Date
		d.Date = value
		return old, nil
	case "description":
		old := d.Description
		d.Description = value
		return old, nil
	case "venue":
		old := Stringify(d.Venue)
		d.Venue = value
		return old, nil
	case "location":
		old := Stringify(d.Location)
		d.Location = value
		return old, nil
	case "schedule", "attendees", "organizers", "organizer", "faq", "registration", "changelog":
		return "", fmt.Errorf("event field %q is structured: %w", field, ErrInvalidField)
	}

	old := ""
	if raw, ok := d.Extra[field]; ok {
		old = Stringify(raw)
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	if d.Extra == nil {
		d.Extra = make(map[string]json.RawMessage)
	}
	d.Extra[field] = encoded
	return old, nil
}

// Stringify renders a loosely typed document value as text.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.RawMessage:
		var s string
		if err := json.Unmarshal(val, &s); err == nil {
			return s
		}
		return string(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
