package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository define as operações sobre o documento do evento
type Repository interface {
	// Snapshot retorna uma cópia independente do documento atual
	Snapshot(ctx context.Context) (*Document, error)

	// Reload relê o documento do disco
	Reload(ctx context.Context) error

	// FindScheduleItem busca um item da agenda pelo id ou parte do título
	FindScheduleItem(ctx context.Context, identifier string) (*ScheduleItem, error)

	// UpdateScheduleTime altera o horário de um item; newEndTime vazio mantém o término
	UpdateScheduleTime(ctx context.Context, identifier, newTime, newEndTime string) (*ScheduleItem, error)

	// UpdateScheduleLocation altera o local de um item
	UpdateScheduleLocation(ctx context.Context, identifier, newLocation string) (*ScheduleItem, error)

	// AddScheduleItem adiciona um item à agenda, gerando o id quando vazio
	AddScheduleItem(ctx context.Context, item ScheduleItem) (*ScheduleItem, error)

	// RemoveScheduleItem remove um item da agenda
	RemoveScheduleItem(ctx context.Context, identifier string) (*ScheduleItem, error)

	// AddAttendee registra um participante, gerando o id quando vazio
	AddAttendee(ctx context.Context, attendee Attendee) (*Attendee, error)

	// FindAttendee busca um participante por id, nome, email ou telefone
	FindAttendee(ctx context.Context, identifier string) (*Attendee, error)

	// RemoveAttendee remove um participante
	RemoveAttendee(ctx context.Context, identifier string) (*Attendee, error)

	// UpdateAttendee altera um campo de um participante
	UpdateAttendee(ctx context.Context, identifier, field, value string) (*Attendee, error)

	// FindPerson procura entre participantes e depois entre organizadores
	FindPerson(ctx context.Context, identifier string) (*Person, error)

	// UpdateFAQ cria ou altera uma resposta do FAQ
	UpdateFAQ(ctx context.Context, key, value string) error

	// UpdateOrganizer altera um campo do organizador principal
	UpdateOrganizer(ctx context.Context, field, value string) error

	// UpdateEventDetails altera um campo de primeiro nível do evento
	UpdateEventDetails(ctx context.Context, field, value string) error

	// AppendChangelog grava uma entrada avulsa no changelog
	AppendChangelog(ctx context.Context, entry ChangelogEntry) error

	// Changelog retorna as últimas limit entradas e o total; limit <= 0 retorna todas
	Changelog(ctx context.Context, limit int) ([]ChangelogEntry, int, error)
}

// ChangelogSink receives every changelog entry after it has been persisted.
type ChangelogSink interface {
	Publish(ctx context.Context, entry ChangelogEntry) error
}

// NewChangelogEntry fills id and timestamp for a new entry.
func NewChangelogEntry(changeType ChangeType, description string) ChangelogEntry {
	return ChangelogEntry{
		ID:          uuid.New().String(),
		Type:        changeType,
		Description: description,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}
