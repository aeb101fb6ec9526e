package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownResource is returned by ReadResource for URIs that are not served.
var ErrUnknownResource = errors.New("unknown resource")

const jsonMimeType = "application/json"

// Resource URIs served by the dispatcher.
const (
	ResourceSchedule  = "file://event/schedule"
	ResourceAttendees = "file://event/attendees"
	ResourceFAQ       = "file://event/faq"
	ResourceChangelog = "file://event/changelog"
	ResourceFull      = "file://event/full"
)

var resourceCatalog = []Resource{
	{URI: ResourceSchedule, Name: "Event Schedule", Description: "Current event schedule with all sessions", MimeType: jsonMimeType},
	{URI: ResourceAttendees, Name: "Event Attendees", Description: "List of registered event attendees", MimeType: jsonMimeType},
	{URI: ResourceFAQ, Name: "Event FAQ", Description: "Frequently asked questions and answers", MimeType: jsonMimeType},
	{URI: ResourceChangelog, Name: "Event Changelog", Description: "History of changes made to the event", MimeType: jsonMimeType},
	{URI: ResourceFull, Name: "Complete Event Data", Description: "All event information including schedule, attendees, and settings", MimeType: jsonMimeType},
}

// Resources lista os recursos do evento
func (d *Dispatcher) Resources() []Resource {
	out := make([]Resource, len(resourceCatalog))
	copy(out, resourceCatalog)
	return out
}

// ReadResource recarrega o documento e devolve a parte pedida como JSON indentado
func (d *Dispatcher) ReadResource(ctx context.Context, uri string) (ResourceContents, error) {
	if err := d.store.Reload(ctx); err != nil {
		d.logger.Warn("Failed to reload event document", "error", err)
	}
	doc, err := d.store.Snapshot(ctx)
	if err != nil {
		return ResourceContents{}, err
	}

	var body any
	switch uri {
	case ResourceSchedule:
		body = doc.Schedule
	case ResourceAttendees:
		body = doc.Attendees
	case ResourceFAQ:
		body = faqOf(doc)
	case ResourceChangelog:
		body = doc.Changelog
	case ResourceFull:
		body = doc
	default:
		return ResourceContents{}, fmt.Errorf("%w: %s", ErrUnknownResource, uri)
	}

	text, err := indentJSON(body)
	if err != nil {
		return ResourceContents{}, err
	}
	return ResourceContents{URI: uri, MimeType: jsonMimeType, Text: text}, nil
}

func indentJSON(v any) (string, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(raw), nil
}
