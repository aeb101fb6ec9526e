package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/hugohenrick/emceep/pkg/logger"
)

// EventRepository implementa event.Repository sobre um único arquivo JSON.
// Cada mutação trabalha numa cópia do documento, grava a cópia e só então a
// publica; em caso de falha o estado em memória não muda.
type EventRepository struct {
	mu      sync.RWMutex
	path    string
	doc     *event.Document
	modTime time.Time
	size    int64

	sinksMu sync.RWMutex
	sinks   []event.ChangelogSink

	log       logger.Logger
	writeFile func(path string, data []byte) error
}

// Option configura um EventRepository
type Option func(*EventRepository)

// WithLogger define o logger do repositório
func WithLogger(log logger.Logger) Option {
	return func(r *EventRepository) {
		r.log = logger.OrNop(log)
	}
}

// WithSinks registra destinos que recebem cada entrada do changelog
func WithSinks(sinks ...event.ChangelogSink) Option {
	return func(r *EventRepository) {
		r.sinks = append(r.sinks, sinks...)
	}
}

// NewEventRepository abre o documento em path. Um arquivo inexistente resulta
// num documento vazio que será criado na primeira gravação.
func NewEventRepository(path string, opts ...Option) (*EventRepository, error) {
	r := &EventRepository{
		path:      path,
		log:       logger.Nop(),
		writeFile: writeFileAtomic,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.loadLocked(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path retorna o caminho do documento
func (r *EventRepository) Path() string {
	return r.path
}

// AddSink registra um destino adicional para o changelog
func (r *EventRepository) AddSink(sink event.ChangelogSink) {
	r.sinksMu.Lock()
	defer r.sinksMu.Unlock()
	r.sinks = append(r.sinks, sink)
}

// Reload implementa event.Repository.Reload
func (r *EventRepository) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

// Snapshot implementa event.Repository.Snapshot
func (r *EventRepository) Snapshot(ctx context.Context) (*event.Document, error) {
	var out *event.Document
	err := r.read(ctx, func(doc *event.Document) error {
		clone, err := doc.Clone()
		out = clone
		return err
	})
	return out, err
}

// FindScheduleItem implementa event.Repository.FindScheduleItem
func (r *EventRepository) FindScheduleItem(ctx context.Context, identifier string) (*event.ScheduleItem, error) {
	var out event.ScheduleItem
	err := r.read(ctx, func(doc *event.Document) error {
		idx := doc.FindScheduleItem(identifier)
		if idx < 0 {
			return scheduleNotFound(identifier)
		}
		out = doc.Schedule[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateScheduleTime implementa event.Repository.UpdateScheduleTime
func (r *EventRepository) UpdateScheduleTime(ctx context.Context, identifier, newTime, newEndTime string) (*event.ScheduleItem, error) {
	if strings.TrimSpace(newTime) == "" {
		return nil, fmt.Errorf("new time: %w", event.ErrEmptyValue)
	}

	var out event.ScheduleItem
	err := r.mutate(ctx, func(doc *event.Document) (*event.ChangelogEntry, error) {
		idx := doc.FindScheduleItem(identifier)
		if idx < 0 {
			return nil, scheduleNotFound(identifier)
		}
		item := &doc.Schedule[idx]
		oldTime := item.Time
		item.Time = newTime
		if newEndTime != "" {
			item.EndTime = newEndTime
		}
		out = *item

		entry := event.NewChangelogEntry(event.ChangeTimeChange,
			fmt.Sprintf("Moved %s from %s to %s", item.Title, oldTime, newTime))
		entry.ItemID = item.ID
		entry.OldValue = oldTime
		entry.NewValue = newTime
		return &entry, nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Info("schedule time updated", "item_id", out.ID, "time", out.Time)
	return &out, nil
}

// UpdateScheduleLocation implementa event.Repository.UpdateScheduleLocation
func (r *EventRepository) UpdateScheduleLocation(ctx context.Context, identifier, newLocation string) (*event.ScheduleItem, error) {
	if strings.TrimSpace(newLocation) == "" {
		return nil, fmt.Errorf("new location: %w", event.ErrEmptyValue)
	}

	var out event.ScheduleItem
	err := r.mutate(ctx, func(doc *event.Document) (*event.ChangelogEntry, error) {
		idx := doc.FindScheduleItem(identifier)
		if idx < 0 {
			return nil, scheduleNotFound(identifier)
		}
		item := &doc.Schedule[idx]
		oldLocation := item.Location
		item.Location = newLocation
		out = *item

		entry := event.NewChangelogEntry(event.ChangeLocationChange,
			fmt.Sprintf("Moved %s to %s", item.Title, newLocation))
		entry.ItemID = item.ID
		entry.OldValue = oldLocation
		entry.NewValue = newLocation
		return &entry, nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Info("schedule location updated", "item_id", out.ID, "location", out.Location)
	return &out, nil
}

// AddScheduleItem implementa event.Repository.AddScheduleItem
func (r *EventRepository) AddScheduleItem(ctx context.Context, item event.ScheduleItem) (*event.ScheduleItem, error) {
	if strings.TrimSpace(item.Title) == "" {
		return nil, fmt.Errorf("schedule title: %w", event.ErrEmptyValue)
	}

	err := r.mutate(ctx, func(doc *event.Document) (*event.ChangelogEntry, error) {
		if item.ID == "" {
			item.ID = doc.NextScheduleID()
		}
		doc.Schedule = append(doc.Schedule, item)

		entry := event.NewChangelogEntry(event.ChangeAddScheduleItem,
			fmt.Sprintf("Added %s at %s", item.Title, item.Time))
		entry.ItemID = item.ID
		entry.Details = map[string]any{"item": item}
		return &entry, nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Info("schedule item added", "item_id", item.ID, "title", item.Title)
	return &item, nil
}

// RemoveScheduleItem implementa event.Repository.RemoveScheduleItem
func (r *EventRepository) RemoveScheduleItem(ctx context.Context, identifier string) (*event.ScheduleItem, error) {
	var out event.ScheduleItem
	err := r.mutate(ctx, func(doc *event.Document) (*event.ChangelogEntry, error) {
		idx := doc.FindScheduleItem(identifier)
		if idx < 0 {
			return nil, scheduleNotFound(identifier)
		}
		out = doc.Schedule[idx]
		doc.Schedule = append(doc.Schedule[:idx], doc.Schedule[idx+1:]...)

		entry := event.NewChangelogEntry(event.ChangeRemoveScheduleItem,
			fmt.Sprintf("Removed %s from schedule", out.Title))
		entry.ItemID = out.ID
		entry.Details = map[string]any{"removed_item": out}
		return &entry, nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Info("schedule item removed", "item_id", out.ID)
	return &out, nil
}

// AddAttendee implementa event.Repository.AddAttendee
func (r *EventRepository) AddAttendee(ctx context.Context, attendee event.Attendee) (*event.Attendee, error) {
	if strings.TrimSpace(attendee.Name) == "" {
		return nil, fmt.Errorf("attendee name: %w", event.ErrEmptyValue)
	}
	if attendee.DietaryRestrictions == "" {
		attendee.DietaryRestrictions = "none"
	}

	err := r.mutate(ctx, func(doc *event.Document) (*event.ChangelogEntry, error) {
		if attendee.ID == "" {
			attendee.ID = doc.NextAttendeeID()
		}
		doc.Attendees = append(doc.Attendees, attendee)

		entry := event.NewChangelogEntry(event.ChangeAddAttendee,
			fmt.Sprintf("Added attendee %s", attendee.Name))
		entry.ItemID = attendee.ID
		entry.Details = map[string]any{"attendee": attendee}
		return &entry, nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Info("attendee added", "attendee_id", attendee.ID)
	return &attendee, nil
}

// FindAttendee implementa event.Repository.FindAttendee
func (r *EventRepository) FindAttendee(ctx context.Context, identifier string) (*event.Attendee, error) {
	var out event.Attendee
	err := r.read(ctx, func(doc *event.Document) error {
		idx := doc.FindAttendee(identifier)
		if idx < 0 {
			return attendeeNotFound(identifier)
		}
		out = doc.Attendees[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveAttendee implementa event.Repository.RemoveAttendee
func (r *EventRepository) RemoveAttendee(ctx context.Context, identifier string) (*event.Attendee, error) {
	var out event.Attendee
	err := r.mutate(ctx, func(doc *event.Document) (*event.ChangelogEntry, error) {
		idx := doc.FindAttendee(identifier)
		if idx < 0 {
			return nil, attendeeNotFound(identifier)
		}
		out = doc.Attendees[idx]
		doc.Attendees = append(doc.Attendees[:idx], doc.Attendees[idx+1:]...)

		entry := event.NewChangelogEntry(event.ChangeRemoveAttendee,
			fmt.Sprintf("Removed attendee %s", out.Name))
		entry.ItemID = out.ID
		entry.Details = map[string]any{"removed_attendee": out}
		return &entry, nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Info("attendee removed", "attendee_id", out.ID)
	return &out, nil
}

// UpdateAttendee implementa event.Repository.UpdateAttendee
func (r *EventRepository) UpdateAttendee(ctx context.Context, identifier, field, value string) (*event.Attendee, error) {
	var out event.Attendee
	err := r.mutate(ctx, func(doc *event.Document) (*event.ChangelogEntry, error) {
		idx := doc.FindAttendee(identifier)
		if idx < 0 {
			return nil, attendeeNotFound(identifier)
		}
		a := &doc.Attendees[idx]
		old, err := event.SetAttendeeField(a, field, value)
		if err != nil {
			return nil, err
		}
		out = *a

		entry := event.NewChangelogEntry(event.ChangeUpdateAttendee,
			fmt.Sprintf("Updated %s for attendee %s", field, a.Name))
		entry.ItemID = a.ID
		entry.Field = field
		entry.OldValue = old
		entry.NewValue = value
		return &entry, nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Info("attendee updated", "attendee_id", out.ID, "field", field)
	return &out, nil
}

// FindPerson implementa event.Repository.FindPerson
func (r *EventRepository) FindPerson(ctx context.Context, identifier string) (*event.Person, error) {
	var out event.Person
	err := r.read(ctx, func(doc *event.Document) error {
		if idx := doc.FindAttendee(identifier); idx >= 0 {
			out = event.PersonFromAttendee(doc.Attendees[idx])
			return nil
		}
		if o, ok := doc.FindOrganizer(identifier); ok {
			out = event.PersonFromOrganizer(o)
			return nil
		}
		return fmt.Errorf("person %q: %w", identifier, event.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFAQ implementa event.Repository.UpdateFAQ
func (r *EventRepository) UpdateFAQ(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("faq key: %w", event.ErrEmptyValue)
	}

	err := r.mutate(ctx, func(doc *event.Document) (*event.ChangelogEntry, error) {
		if doc.FAQ == nil {
			doc.FAQ = make(map[string]string)
		}
		old := doc.FAQ[key]
		doc.FAQ[key] = value

		var entry event.ChangelogEntry
		if old != "" {
			entry = event.NewChangelogEntry(event.ChangeUpdateFAQ, fmt.Sprintf("Updated FAQ entry %s", key))
			entry.OldValue = old
		} else {
			entry = event.NewChangelogEntry(event.ChangeAddFAQ, fmt.Sprintf("Added FAQ entry %s", key))
		}
		entry.Key = key
		entry.NewValue = value
		return &entry, nil
	})
	if err != nil {
		return err
	}
	r.log.Info("faq updated", "key", key)
	return nil
}

// UpdateOrganizer implementa event.Repository.UpdateOrganizer
func (r *EventRepository) UpdateOrganizer(ctx context.Context, field, value string) error {
	err := r.mutate(ctx, func(doc *event.Document) (*event.ChangelogEntry, error) {
		if doc.Organizer == nil {
			doc.Organizer = &event.Organizer{}
		}
		old, err := event.SetOrganizerField(doc.Organizer, field, value)
		if err != nil {
			return nil, err
		}

		entry := event.NewChangelogEntry(event.ChangeUpdateOrganizer, fmt.Sprintf("Updated organizer %s", field))
		entry.Field = field
		entry.OldValue = old
		entry.NewValue = value
		return &entry, nil
	})
	if err != nil {
		return err
	}
	r.log.Info("organizer updated", "field", field)
	return nil
}

// UpdateEventDetails implementa event.Repository.UpdateEventDetails
func (r *EventRepository) UpdateEventDetails(ctx context.Context, field, value string) error {
	err := r.mutate(ctx, func(doc *event.Document) (*event.ChangelogEntry, error) {
		old, err := doc.SetDetail(field, value)
		if err != nil {
			return nil, err
		}

		entry := event.NewChangelogEntry(event.ChangeUpdateEventDetails, fmt.Sprintf("Updated event %s", field))
		entry.Field = field
		entry.OldValue = old
		entry.NewValue = value
		return &entry, nil
	})
	if err != nil {
		return err
	}
	r.log.Info("event details updated", "field", field)
	return nil
}

// AppendChangelog implementa event.Repository.AppendChangelog
func (r *EventRepository) AppendChangelog(ctx context.Context, entry event.ChangelogEntry) error {
	return r.mutate(ctx, func(*event.Document) (*event.ChangelogEntry, error) {
		return &entry, nil
	})
}

// Changelog implementa event.Repository.Changelog
func (r *EventRepository) Changelog(ctx context.Context, limit int) ([]event.ChangelogEntry, int, error) {
	var (
		out   []event.ChangelogEntry
		total int
	)
	err := r.read(ctx, func(doc *event.Document) error {
		total = len(doc.Changelog)
		start := 0
		if limit > 0 && total > limit {
			start = total - limit
		}
		out = make([]event.ChangelogEntry, total-start)
		copy(out, doc.Changelog[start:])
		return nil
	})
	return out, total, err
}

// read executa fn com o documento atual sob trava de leitura, recarregando o
// arquivo antes se ele foi alterado por outro processo.
func (r *EventRepository) read(ctx context.Context, fn func(doc *event.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.refresh()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn(r.doc)
}

// mutate aplica apply numa cópia do documento, anexa a entrada do changelog
// retornada, grava em disco e só então troca o documento em memória.
func (r *EventRepository) mutate(ctx context.Context, apply func(doc *event.Document) (*event.ChangelogEntry, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	if r.stale() {
		if err := r.loadLocked(); err != nil {
			r.log.Error("reload before write failed", "path", r.path, "error", err)
		}
	}

	next, err := r.doc.Clone()
	if err != nil {
		r.mu.Unlock()
		return err
	}

	entry, err := apply(next)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if entry != nil {
		if entry.ID == "" {
			entry.ID = uuid.New().String()
		}
		if entry.Timestamp == "" {
			entry.Timestamp = time.Now().UTC().Format(time.RFC3339)
		}
		next.Changelog = append(next.Changelog, *entry)
	}

	if err := r.persistLocked(next); err != nil {
		r.mu.Unlock()
		r.log.Error("failed to save event data", "path", r.path, "error", err)
		return fmt.Errorf("persist event document: %w", err)
	}
	r.doc = next
	r.mu.Unlock()

	if entry != nil {
		r.publish(ctx, *entry)
	}
	return nil
}

func (r *EventRepository) publish(ctx context.Context, entry event.ChangelogEntry) {
	r.sinksMu.RLock()
	sinks := append([]event.ChangelogSink(nil), r.sinks...)
	r.sinksMu.RUnlock()

	for _, sink := range sinks {
		if err := sink.Publish(ctx, entry); err != nil {
			r.log.Warn("changelog sink failed", "entry_id", entry.ID, "type", entry.Type, "error", err)
		}
	}
}

func (r *EventRepository) refresh() {
	r.mu.RLock()
	stale := r.stale()
	r.mu.RUnlock()
	if !stale {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.stale() {
		return
	}
	if err := r.loadLocked(); err != nil {
		r.log.Error("reload event data failed", "path", r.path, "error", err)
	}
}

// stale reports whether the file on disk differs from the loaded version.
// Callers hold r.mu.
func (r *EventRepository) stale() bool {
	info, err := os.Stat(r.path)
	if err != nil {
		return false
	}
	return !info.ModTime().Equal(r.modTime) || info.Size() != r.size
}

func (r *EventRepository) loadLocked() error {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.log.Warn("event data file not found, starting empty", "path", r.path)
		if r.doc == nil {
			r.doc = emptyDocument()
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read event document: %w", err)
	}

	var doc event.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode event document %s: %w", r.path, err)
	}
	normalize(&doc)
	r.doc = &doc
	r.stamp()
	r.log.Info("loaded event data", "path", r.path, "schedule", len(doc.Schedule), "attendees", len(doc.Attendees))
	return nil
}

func (r *EventRepository) persistLocked(doc *event.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := r.writeFile(r.path, data); err != nil {
		return err
	}
	r.stamp()
	return nil
}

func (r *EventRepository) stamp() {
	if info, err := os.Stat(r.path); err == nil {
		r.modTime = info.ModTime()
		r.size = info.Size()
	}
}

func normalize(doc *event.Document) {
	if doc.Schedule == nil {
		doc.Schedule = []event.ScheduleItem{}
	}
	if doc.Attendees == nil {
		doc.Attendees = []event.Attendee{}
	}
	if doc.Changelog == nil {
		doc.Changelog = []event.ChangelogEntry{}
	}
}

func emptyDocument() *event.Document {
	return &event.Document{
		Schedule:  []event.ScheduleItem{},
		Attendees: []event.Attendee{},
		Changelog: []event.ChangelogEntry{},
	}
}

func scheduleNotFound(identifier string) error {
	return fmt.Errorf("schedule item %q: %w", identifier, event.ErrNotFound)
}

func attendeeNotFound(identifier string) error {
	return fmt.Errorf("attendee %q: %w", identifier, event.ErrNotFound)
}

// writeFileAtomic grava num arquivo temporário no mesmo diretório e renomeia.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".event-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

var _ event.Repository = (*EventRepository)(nil)
