package dto

import "github.com/hugohenrick/emceep/internal/domain/event"

// EventInfoResponse representa as informações básicas do evento
type EventInfoResponse struct {
	EventID  string `json:"event_id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Location any    `json:"location"`
}

// ToEventInfoResponse converte o documento em EventInfoResponse
func ToEventInfoResponse(doc *event.Document) EventInfoResponse {
	location := doc.Location
	if location == nil {
		location = map[string]any{}
	}
	return EventInfoResponse{
		EventID:  doc.EventID,
		Name:     doc.Name,
		Date:     doc.Date,
		Location: location,
	}
}

// ScheduleTimeRequest representa a alteração de horário de uma sessão
type ScheduleTimeRequest struct {
	Time    string `json:"time" binding:"required"`
	EndTime string `json:"end_time"`
}

// ScheduleLocationRequest representa a alteração de local de uma sessão
type ScheduleLocationRequest struct {
	Location string `json:"location" binding:"required"`
}

// ScheduleItemRequest representa os dados de uma nova sessão
type ScheduleItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Time        string `json:"time" binding:"required"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Speaker     string `json:"speaker"`
}

// ToScheduleItem converte o DTO para o modelo de domínio
func (r ScheduleItemRequest) ToScheduleItem() event.ScheduleItem {
	return event.ScheduleItem{
		Title:       r.Title,
		Time:        r.Time,
		EndTime:     r.EndTime,
		Location:    r.Location,
		Description: r.Description,
		Speaker:     r.Speaker,
	}
}

// AttendeeRequest representa os dados de um novo participante
type AttendeeRequest struct {
	Name                string `json:"name" binding:"required"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Company             string `json:"company"`
	DietaryRestrictions string `json:"dietary_restrictions"`
}

// ToAttendee converte o DTO para o modelo de domínio
func (r AttendeeRequest) ToAttendee() event.Attendee {
	return event.Attendee{
		Name:                r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		Company:             r.Company,
		DietaryRestrictions: r.DietaryRestrictions,
	}
}

// AttendeeUpdateRequest representa a alteração de um campo do participante
type AttendeeUpdateRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// FAQRequest representa a resposta de uma entrada do FAQ
type FAQRequest struct {
	Value string `json:"value" binding:"required"`
}
