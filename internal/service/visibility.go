package service

import "github.com/eventhub/eventhub/internal/models"

// Visibility is the set of event-page controls a requester may see.
type Visibility struct {
	ShowRSVPButton bool `json:"show_rsvp_button"`
	ShowRSVPList   bool `json:"show_rsvp_list"`
	CanDeleteEvent bool `json:"can_delete_event"`
}

// EventVisibility decides what a requester may see and do on an event page.
// Anonymous visitors get the RSVP button (it leads to sign-in). An organizer
// keeps the button on events they do not own; the ledger still refuses the
// actual RSVP for any organizer or admin.
func EventVisibility(role models.Role, anonymous, ownsEvent, hasRSVP bool) Visibility {
	if anonymous {
		return Visibility{ShowRSVPButton: true}
	}
	switch role {
	case models.RoleAdmin:
		return Visibility{ShowRSVPList: true, CanDeleteEvent: true}
	case models.RoleOrganizer:
		if ownsEvent {
			return Visibility{ShowRSVPList: true, CanDeleteEvent: true}
		}
		return Visibility{ShowRSVPButton: true, ShowRSVPList: true}
	default:
		return Visibility{ShowRSVPButton: !hasRSVP}
	}
}
