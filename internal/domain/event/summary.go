package event

// CateringNotes is attached to every dietary summary.
const CateringNotes = "Consider offering vegetarian, gluten-free, and regular options based on attendee needs"

// DietaryRequirement is one attendee's line in the catering report.
type DietaryRequirement struct {
	Name                string `json:"name"`
	Company             string `json:"company,omitempty"`
	DietaryRestrictions string `json:"dietary_restrictions"`
}

// DietarySummary aggregates attendee dietary restrictions for catering.
type DietarySummary struct {
	TotalAttendees       int                  `json:"total_attendees"`
	DietarySummary       map[string]int       `json:"dietary_summary"`
	DetailedRequirements []DietaryRequirement `json:"detailed_requirements"`
	CateringNotes        string               `json:"catering_notes"`
}

// OrganizerSummary counts organizers and how many can be contacted.
type OrganizerSummary struct {
	TotalOrganizers     int `json:"total_organizers"`
	OrganizersWithPhone int `json:"organizers_with_phone"`
	OrganizersWithEmail int `json:"organizers_with_email"`
}

// SummarizeDietary builds the catering report. Attendees without a restriction
// are counted under "none".
func SummarizeDietary(attendees []Attendee) DietarySummary {
	summary := DietarySummary{
		TotalAttendees:       len(attendees),
		DietarySummary:       make(map[string]int),
		DetailedRequirements: make([]DietaryRequirement, 0, len(attendees)),
		CateringNotes:        CateringNotes,
	}
	for _, a := range attendees {
		restriction := a.DietaryRestrictions
		if restriction == "" {
			restriction = "none"
		}
		summary.DietarySummary[restriction]++
		summary.DetailedRequirements = append(summary.DetailedRequirements, DietaryRequirement{
			Name:                a.Name,
			Company:             a.Company,
			DietaryRestrictions: restriction,
		})
	}
	return summary
}

// SummarizeOrganizers counts organizers with phone and email set.
func SummarizeOrganizers(organizers []Organizer) OrganizerSummary {
	summary := OrganizerSummary{TotalOrganizers: len(organizers)}
	for _, o := range organizers {
		if o.Phone != "" {
			summary.OrganizersWithPhone++
		}
		if o.Email != "" {
			summary.OrganizersWithEmail++
		}
	}
	return summary
}

// PersonFromAttendee converts an attendee into a messaging recipient.
func PersonFromAttendee(a Attendee) Person {
	return Person{Kind: PersonAttendee, ID: a.ID, Name: a.Name, Email: a.Email, Phone: a.Phone}
}

// PersonFromOrganizer converts an organizer into a messaging recipient.
func PersonFromOrganizer(o Organizer) Person {
	return Person{Kind: PersonOrganizer, ID: o.ID, Name: o.Name, Email: o.Email, Phone: o.Phone}
}
