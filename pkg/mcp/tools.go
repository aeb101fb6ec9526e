package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/hugohenrick/emceep/pkg/logger"
	"github.com/hugohenrick/emceep/pkg/mcp/intent"
	"github.com/hugohenrick/emceep/pkg/notify"
)

// ErrUnknownTool is returned by Call for names that are not registered.
var ErrUnknownTool = errors.New("unknown tool")

const smsPreviewLength = 50

// CommandProcessor classifica e executa comandos de voz
type CommandProcessor interface {
	Classify(text string) intent.Classification
	Process(ctx context.Context, command string, autoExecute bool) intent.CommandResult
}

// ToolObserver recebe o resultado de cada chamada de ferramenta
type ToolObserver interface {
	ObserveToolCall(tool, outcome string, elapsed time.Duration)
}

// Outcomes reported to ToolObserver.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

type toolHandler func(ctx context.Context, args Arguments) (any, error)

type registeredTool struct {
	def     Tool
	handler toolHandler
}

// Dispatcher liga os nomes das ferramentas às operações do evento
type Dispatcher struct {
	store    event.Repository
	commands CommandProcessor
	sms      notify.Sender
	observer ToolObserver
	logger   logger.Logger

	tools []registeredTool
	index map[string]int
}

// DispatcherOption configura um Dispatcher
type DispatcherOption func(*Dispatcher)

// WithToolObserver registra o observador das chamadas
func WithToolObserver(o ToolObserver) DispatcherOption {
	return func(d *Dispatcher) {
		d.observer = o
	}
}

// WithDispatcherLogger define o logger do dispatcher
func WithDispatcherLogger(log logger.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger.OrNop(log)
	}
}

// NewDispatcher cria o dispatcher e registra todas as ferramentas. Um sender nil
// desativa o envio de SMS.
func NewDispatcher(store event.Repository, commands CommandProcessor, sms notify.Sender, opts ...DispatcherOption) *Dispatcher {
	if sms == nil {
		sms = notify.Disabled{}
	}
	d := &Dispatcher{
		store:    store,
		commands: commands,
		sms:      sms,
		logger:   logger.Nop(),
		index:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.registerTools()
	return d
}

// Tools lista as definições na ordem de registro
func (d *Dispatcher) Tools() []Tool {
	out := make([]Tool, len(d.tools))
	for i, t := range d.tools {
		out[i] = t.def
	}
	return out
}

// HasTool reports whether name is registered.
func (d *Dispatcher) HasTool(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Call executa a ferramenta name com os argumentos recebidos. Falhas de busca
// voltam como resultado com success=false; erros de argumento são
// ErrInvalidArguments e erros de persistência voltam como erro.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	idx, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	started := time.Now()
	d.logger.Debug("Dispatching tool", "tool", name)
	result, err := d.tools[idx].handler(ctx, Arguments(args))
	d.observe(name, result, err, time.Since(started))
	if err != nil {
		d.logger.Error("Tool failed", "tool", name, "error", err)
		return nil, err
	}
	return result, nil
}

func (d *Dispatcher) observe(name string, result any, err error, elapsed time.Duration) {
	if d.observer == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	} else if m, ok := result.(map[string]any); ok {
		if success, ok := m["success"].(bool); ok && !success {
			outcome = OutcomeFailure
		}
	}
	d.observer.ObserveToolCall(name, outcome, elapsed)
}

func (d *Dispatcher) register(name, description string, schema json.RawMessage, handler toolHandler) {
	d.index[name] = len(d.tools)
	d.tools = append(d.tools, registeredTool{
		def:     Tool{Name: name, Description: description, InputSchema: schema},
		handler: handler,
	})
}

func (d *Dispatcher) registerTools() {
	d.register("classify_voice_command", "Classify intent from a voice command or text input",
		objectSchema([]string{"text"}, map[string]property{
			"text": {Type: "string", Description: "The voice command or text to classify"},
		}), d.classifyVoiceCommand)

	d.register("update_event_time", "Update the time of a scheduled event",
		objectSchema([]string{"event_identifier", "new_time"}, map[string]property{
			"event_identifier": {Type: "string", Description: "Event ID or name to update"},
			"new_time":         {Type: "string", Description: "New time in HH:MM format"},
			"new_end_time":     {Type: "string", Description: "New end time in HH:MM format (optional)"},
		}), d.updateEventTime)

	d.register("update_event_location", "Update the location of a scheduled event",
		objectSchema([]string{"event_identifier", "new_location"}, map[string]property{
			"event_identifier": {Type: "string", Description: "Event ID or name to update"},
			"new_location":     {Type: "string", Description: "New location for the event"},
		}), d.updateEventLocation)

	d.register("update_faq", "Add or update FAQ entries",
		objectSchema([]string{"key", "value"}, map[string]property{
			"key":   {Type: "string", Description: "FAQ key/category (e.g., 'wifi', 'parking', 'contact')"},
			"value": {Type: "string", Description: "FAQ answer/information"},
		}), d.updateFAQ)

	d.register("update_organizer", "Update organizer information",
		objectSchema([]string{"field", "value"}, map[string]property{
			"field": {Type: "string", Description: "Field to update (e.g., 'name', 'email', 'phone', 'website')"},
			"value": {Type: "string", Description: "New value for the field"},
		}), d.updateOrganizer)

	d.register("add_schedule_item", "Add a new item to the event schedule",
		objectSchema([]string{"title", "time", "end_time", "location"}, map[string]property{
			"title":       {Type: "string", Description: "Title of the event/session"},
			"time":        {Type: "string", Description: "Start time in HH:MM format"},
			"end_time":    {Type: "string", Description: "End time in HH:MM format"},
			"location":    {Type: "string", Description: "Location/room for the event"},
			"description": {Type: "string", Description: "Optional description of the event"},
			"speaker":     {Type: "string", Description: "Optional speaker name"},
		}), d.addScheduleItem)

	d.register("remove_schedule_item", "Remove an item from the event schedule",
		objectSchema([]string{"event_identifier"}, map[string]property{
			"event_identifier": {Type: "string", Description: "Event ID or name to remove"},
		}), d.removeScheduleItem)

	d.register("update_event_details", "Update general event information",
		objectSchema([]string{"field", "value"}, map[string]property{
			"field": {Type: "string", Description: "Field to update (e.g., 'name', 'date', 'venue', 'description')"},
			"value": {Type: "string", Description: "New value for the field"},
		}), d.updateEventDetails)

	d.register("process_voice_command", "Process a complete voice command: classify intent and execute if appropriate",
		objectSchema([]string{"command"}, map[string]property{
			"command":      {Type: "string", Description: "The complete voice command to process"},
			"auto_execute": {Type: "boolean", Description: "Whether to automatically execute high-confidence commands", Default: true},
		}), d.processVoiceCommand)

	d.register("get_schedule", "Get the event schedule with all sessions, times, and locations",
		objectSchema(nil, nil), d.getSchedule)
	d.register("get_faq", "Get frequently asked questions and answers",
		objectSchema(nil, nil), d.getFAQ)
	d.register("get_organizer", "Get organizer contact information and event details (supports multiple organizers)",
		objectSchema(nil, nil), d.getOrganizer)
	d.register("get_organizers", "Get detailed information about all event organizers including names, emails, phone numbers, and roles",
		objectSchema(nil, nil), d.getOrganizers)
	d.register("get_attendees", "Get attendee information including names, companies, contact details, and DIETARY RESTRICTIONS. Use this when planning food/catering.",
		objectSchema(nil, nil), d.getAttendees)
	d.register("get_everything", "Get all event data as fallback when specific information isn't available in other tools",
		objectSchema(nil, nil), d.getEverything)
	d.register("get_dietary_requirements", "Get dietary restrictions and food preferences of all attendees for catering/food planning purposes",
		objectSchema(nil, nil), d.getDietaryRequirements)

	d.register("add_attendee", "Add a new attendee to the event registration",
		objectSchema([]string{"name"}, map[string]property{
			"name":                 {Type: "string", Description: "Full name of the attendee"},
			"email":                {Type: "string", Description: "Email address of the attendee"},
			"phone":                {Type: "string", Description: "Phone number of the attendee (optional)"},
			"company":              {Type: "string", Description: "Company/organization of the attendee (optional)"},
			"dietary_restrictions": {Type: "string", Description: "Dietary restrictions (e.g., 'vegetarian', 'gluten-free', 'none')"},
		}), d.addAttendee)

	d.register("remove_attendee", "Remove an attendee from the event registration",
		objectSchema([]string{"attendee_identifier"}, map[string]property{
			"attendee_identifier": {Type: "string", Description: "Attendee ID, name, or email to identify the attendee to remove"},
		}), d.removeAttendee)

	d.register("update_attendee", "Update attendee information including dietary restrictions",
		objectSchema([]string{"attendee_identifier", "field", "value"}, map[string]property{
			"attendee_identifier": {Type: "string", Description: "Attendee ID, name, or email to identify the attendee"},
			"field":               {Type: "string", Description: "Field to update (name, email, phone, company, dietary_restrictions)"},
			"value":               {Type: "string", Description: "New value for the field"},
		}), d.updateAttendee)

	d.register("get_changelog", "Get the history of changes made to the event",
		objectSchema(nil, map[string]property{
			"limit": {Type: "integer", Description: "Maximum number of recent changes to return", Default: 10},
		}), d.getChangelog)

	d.register("send_sms", "Send an SMS message to a specific person (attendee or organizer) using Twilio",
		objectSchema([]string{"person_identifier", "message"}, map[string]property{
			"person_identifier": {Type: "string", Description: "Person ID, name, email, or phone number to identify the recipient (works for both attendees and organizers)"},
			"message":           {Type: "string", Description: "The SMS message to send to the person"},
		}), d.sendSMS)
}

func (d *Dispatcher) classifyVoiceCommand(_ context.Context, args Arguments) (any, error) {
	text, err := args.Value("text")
	if err != nil {
		return nil, err
	}
	return d.commands.Classify(text), nil
}

func (d *Dispatcher) processVoiceCommand(ctx context.Context, args Arguments) (any, error) {
	command, err := args.Value("command")
	if err != nil {
		return nil, err
	}
	autoExecute, err := args.Bool("auto_execute", true)
	if err != nil {
		return nil, err
	}
	return d.commands.Process(ctx, command, autoExecute), nil
}

func (d *Dispatcher) updateEventTime(ctx context.Context, args Arguments) (any, error) {
	vals, err := args.Require("event_identifier", "new_time")
	if err != nil {
		return nil, err
	}
	id, newTime := vals[0], vals[1]

	if _, err := d.store.UpdateScheduleTime(ctx, id, newTime, args.String("new_end_time")); err != nil {
		return storeFailure(err, "Could not find event: "+id, "Failed to update "+id, map[string]any{"event_id": id})
	}
	return map[string]any{
		"success":  true,
		"message":  fmt.Sprintf("Successfully updated %s to %s", id, newTime),
		"event_id": id,
		"new_time": newTime,
	}, nil
}

func (d *Dispatcher) updateEventLocation(ctx context.Context, args Arguments) (any, error) {
	vals, err := args.Require("event_identifier", "new_location")
	if err != nil {
		return nil, err
	}
	id, location := vals[0], vals[1]

	if _, err := d.store.UpdateScheduleLocation(ctx, id, location); err != nil {
		return storeFailure(err, "Could not find event: "+id, "Failed to move "+id, map[string]any{"event_id": id})
	}
	return map[string]any{
		"success":      true,
		"message":      fmt.Sprintf("Successfully moved %s to %s", id, location),
		"event_id":     id,
		"new_location": location,
	}, nil
}

func (d *Dispatcher) updateFAQ(ctx context.Context, args Arguments) (any, error) {
	keys, err := args.Require("key")
	if err != nil {
		return nil, err
	}
	value, err := args.Value("value")
	if err != nil {
		return nil, err
	}
	key := keys[0]

	if err := d.store.UpdateFAQ(ctx, key, value); err != nil {
		msg := fmt.Sprintf("Failed to update FAQ entry '%s'", key)
		return storeFailure(err, msg, msg, map[string]any{"key": key})
	}
	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Successfully updated FAQ entry '%s'", key),
		"key":     key,
		"value":   value,
	}, nil
}

func (d *Dispatcher) updateOrganizer(ctx context.Context, args Arguments) (any, error) {
	vals, err := args.Require("field")
	if err != nil {
		return nil, err
	}
	value, err := args.Value("value")
	if err != nil {
		return nil, err
	}
	field := vals[0]

	if err := d.store.UpdateOrganizer(ctx, field, value); err != nil {
		msg := "Failed to update organizer " + field
		return storeFailure(err, msg, msg, map[string]any{"field": field})
	}
	return map[string]any{
		"success": true,
		"message": "Successfully updated organizer " + field,
		"field":   field,
		"value":   value,
	}, nil
}

func (d *Dispatcher) addScheduleItem(ctx context.Context, args Arguments) (any, error) {
	vals, err := args.Require("title", "time", "end_time", "location")
	if err != nil {
		return nil, err
	}
	item := event.ScheduleItem{
		Title:       vals[0],
		Time:        vals[1],
		EndTime:     vals[2],
		Location:    vals[3],
		Description: args.String("description"),
		Speaker:     args.String("speaker"),
	}

	added, err := d.store.AddScheduleItem(ctx, item)
	if err != nil {
		msg := fmt.Sprintf("Failed to add '%s' to schedule", item.Title)
		return storeFailure(err, msg, msg, map[string]any{"title": item.Title})
	}
	return map[string]any{
		"success":  true,
		"message":  fmt.Sprintf("Successfully added '%s' to schedule", added.Title),
		"item_id":  added.ID,
		"title":    added.Title,
		"time":     added.Time,
		"end_time": added.EndTime,
		"location": added.Location,
	}, nil
}

func (d *Dispatcher) removeScheduleItem(ctx context.Context, args Arguments) (any, error) {
	vals, err := args.Require("event_identifier")
	if err != nil {
		return nil, err
	}
	id := vals[0]

	if _, err := d.store.RemoveScheduleItem(ctx, id); err != nil {
		return storeFailure(err, "Could not find event: "+id, "Failed to remove "+id, map[string]any{"event_id": id})
	}
	return map[string]any{
		"success":  true,
		"message":  fmt.Sprintf("Successfully removed '%s' from schedule", id),
		"event_id": id,
	}, nil
}

func (d *Dispatcher) updateEventDetails(ctx context.Context, args Arguments) (any, error) {
	vals, err := args.Require("field")
	if err != nil {
		return nil, err
	}
	value, err := args.Value("value")
	if err != nil {
		return nil, err
	}
	field := vals[0]

	if err := d.store.UpdateEventDetails(ctx, field, value); err != nil {
		msg := "Failed to update event " + field
		return storeFailure(err, msg, msg, map[string]any{"field": field})
	}
	return map[string]any{
		"success": true,
		"message": "Successfully updated event " + field,
		"field":   field,
		"value":   value,
	}, nil
}

func (d *Dispatcher) getSchedule(ctx context.Context, _ Arguments) (any, error) {
	doc, err := d.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"schedule": doc.Schedule}, nil
}

func (d *Dispatcher) getFAQ(ctx context.Context, _ Arguments) (any, error) {
	doc, err := d.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"faq": faqOf(doc)}, nil
}

func (d *Dispatcher) getOrganizer(ctx context.Context, _ Arguments) (any, error) {
	doc, err := d.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"organizers": doc.AllOrganizers(),
		"event_details": map[string]any{
			"name":  doc.Name,
			"date":  doc.Date,
			"venue": doc.Venue,
		},
	}, nil
}

func (d *Dispatcher) getOrganizers(ctx context.Context, _ Arguments) (any, error) {
	doc, err := d.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	organizers := doc.AllOrganizers()
	return map[string]any{
		"organizers": organizers,
		"summary":    event.SummarizeOrganizers(organizers),
	}, nil
}

func (d *Dispatcher) getAttendees(ctx context.Context, _ Arguments) (any, error) {
	doc, err := d.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	registration := doc.Registration
	if registration == nil {
		registration = map[string]any{}
	}
	return map[string]any{
		"attendees":         doc.Attendees,
		"registration_info": registration,
	}, nil
}

func (d *Dispatcher) getEverything(ctx context.Context, _ Arguments) (any, error) {
	doc, err := d.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"complete_event_data": doc}, nil
}

func (d *Dispatcher) getDietaryRequirements(ctx context.Context, _ Arguments) (any, error) {
	doc, err := d.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return event.SummarizeDietary(doc.Attendees), nil
}

func (d *Dispatcher) addAttendee(ctx context.Context, args Arguments) (any, error) {
	vals, err := args.Require("name")
	if err != nil {
		return nil, err
	}
	name := vals[0]

	added, err := d.store.AddAttendee(ctx, event.Attendee{
		Name:                name,
		Email:               args.String("email"),
		Phone:               args.String("phone"),
		Company:             args.String("company"),
		DietaryRestrictions: args.String("dietary_restrictions"),
	})
	if err != nil {
		msg := fmt.Sprintf("Failed to add attendee '%s'", name)
		return storeFailure(err, msg, msg, map[string]any{"name": name})
	}
	return map[string]any{
		"success":              true,
		"message":              fmt.Sprintf("Successfully added attendee '%s'", name),
		"attendee_id":          added.ID,
		"name":                 added.Name,
		"dietary_restrictions": added.DietaryRestrictions,
	}, nil
}

func (d *Dispatcher) removeAttendee(ctx context.Context, args Arguments) (any, error) {
	vals, err := args.Require("attendee_identifier")
	if err != nil {
		return nil, err
	}
	id := vals[0]

	if _, err := d.store.RemoveAttendee(ctx, id); err != nil {
		return storeFailure(err, "Could not find attendee: "+id, "Failed to remove attendee "+id,
			map[string]any{"attendee_identifier": id})
	}
	return map[string]any{
		"success":             true,
		"message":             fmt.Sprintf("Successfully removed attendee '%s'", id),
		"attendee_identifier": id,
	}, nil
}

func (d *Dispatcher) updateAttendee(ctx context.Context, args Arguments) (any, error) {
	vals, err := args.Require("attendee_identifier", "field")
	if err != nil {
		return nil, err
	}
	value, err := args.Value("value")
	if err != nil {
		return nil, err
	}
	id, field := vals[0], vals[1]

	if _, err := d.store.UpdateAttendee(ctx, id, field, value); err != nil {
		return storeFailure(err, "Could not find attendee: "+id,
			fmt.Sprintf("Failed to update %s for attendee '%s'", field, id),
			map[string]any{"attendee_identifier": id})
	}
	return map[string]any{
		"success":             true,
		"message":             fmt.Sprintf("Successfully updated %s for attendee '%s'", field, id),
		"attendee_identifier": id,
		"field":               field,
		"value":               value,
	}, nil
}

func (d *Dispatcher) getChangelog(ctx context.Context, args Arguments) (any, error) {
	limit, err := args.Int("limit", 10)
	if err != nil {
		return nil, err
	}
	recent, total, err := d.store.Changelog(ctx, limit)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"total_changes":  total,
		"recent_changes": recent,
		"limit":          limit,
	}, nil
}

// sendSMS procura a pessoa, envia a mensagem e registra o envio no changelog.
func (d *Dispatcher) sendSMS(ctx context.Context, args Arguments) (any, error) {
	vals, err := args.Require("person_identifier", "message")
	if err != nil {
		return nil, err
	}
	identifier, message := vals[0], vals[1]

	person, err := d.store.FindPerson(ctx, identifier)
	if errors.Is(err, event.ErrNotFound) {
		return smsFailure("Person not found: "+identifier, "person_not_found"), nil
	}
	if err != nil {
		return nil, err
	}

	name := person.Name
	if name == "" {
		name = identifier
	}
	if person.Phone == "" {
		return smsFailure(fmt.Sprintf("No phone number found for %s: %s", person.Kind, name), "no_phone_number"), nil
	}

	sid, err := d.sms.Send(ctx, person.Phone, message)
	if errors.Is(err, notify.ErrNotConfigured) {
		return smsFailure("Twilio credentials not found in environment variables", "missing_credentials"), nil
	}
	if err != nil {
		d.logger.Error("Error sending SMS", "person", name, "error", err)
		return smsFailure("Failed to send SMS: "+err.Error(), "send_failed"), nil
	}

	entry := event.NewChangelogEntry(event.ChangeSMSSent, fmt.Sprintf("SMS sent to %s %s", person.Kind, name))
	entry.ItemID = person.ID
	entry.Details = map[string]any{
		"person_id":    person.ID,
		"person_name":  person.Name,
		"person_type":  string(person.Kind),
		"phone_number": person.Phone,
		"message_body": notify.Truncate(message, smsPreviewLength),
		"message_sid":  sid,
	}
	if err := d.store.AppendChangelog(ctx, entry); err != nil {
		// a mensagem já foi enviada; só registra a falha
		d.logger.Warn("Failed to record SMS in changelog", "message_sid", sid, "error", err)
	}
	d.logger.Info("SMS sent", "person_type", person.Kind, "person", person.Name, "sid", sid)

	return map[string]any{
		"success":      true,
		"message":      fmt.Sprintf("SMS sent successfully to %s %s", person.Kind, name),
		"person_name":  person.Name,
		"person_type":  string(person.Kind),
		"phone_number": person.Phone,
		"message_sid":  sid,
	}, nil
}

func smsFailure(message, code string) map[string]any {
	return map[string]any{"success": false, "message": message, "error": code}
}

// storeFailure converts lookup and validation errors into a success=false
// payload. Any other error is returned unchanged.
func storeFailure(err error, notFound, failed string, fields map[string]any) (any, error) {
	switch {
	case errors.Is(err, event.ErrNotFound):
		fields["message"] = notFound
	case errors.Is(err, event.ErrInvalidField), errors.Is(err, event.ErrEmptyValue):
		fields["message"] = fmt.Sprintf("%s: %v", failed, err)
	default:
		return nil, err
	}
	fields["success"] = false
	return fields, nil
}

func faqOf(doc *event.Document) map[string]string {
	if doc.FAQ == nil {
		return map[string]string{}
	}
	return doc.FAQ
}

type property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
}

type inputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

func objectSchema(required []string, props map[string]property) json.RawMessage {
	if props == nil {
		props = map[string]property{}
	}
	raw, err := json.Marshal(inputSchema{Type: "object", Properties: props, Required: required})
	if err != nil {
		panic(fmt.Sprintf("mcp: encode input schema: %v", err))
	}
	return raw
}
