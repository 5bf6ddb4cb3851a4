package http

import "github.com/verdant-events/guestlist/internal/guestlist/domain"

// guestResponse is the wire form of a guest. Device slots keep their
// historical column names so existing invite links keep working.
type guestResponse struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	PhoneNumber         string  `json:"phone_number"`
	UniqueCode          string  `json:"unique_code"`
	RSVPStatus          string  `json:"rsvp_status"`
	Email               *string `json:"email,omitempty"`
	DietaryRestrictions *string `json:"dietary_restrictions,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	IsFamily            bool    `json:"is_family"`
	PlusOneCount        int     `json:"plus_one_count"`
	DeviceID            string  `json:"device_id,omitempty"`
	DeviceID2           string  `json:"device_id_2,omitempty"`
	InviteSent          bool    `json:"invite_sent"`
}

func toGuestResponse(g domain.Guest) guestResponse {
	return guestResponse{
		ID:                  g.ID,
		Name:                g.Name,
		PhoneNumber:         g.PhoneNumber,
		UniqueCode:          g.UniqueCode,
		RSVPStatus:          string(g.RSVPStatus),
		Email:               g.Email,
		DietaryRestrictions: g.DietaryRestrictions,
		Notes:               g.Notes,
		IsFamily:            g.IsFamily,
		PlusOneCount:        g.PlusOneCount,
		DeviceID:            g.DeviceIDs[0],
		DeviceID2:           g.DeviceIDs[1],
		InviteSent:          g.InviteSent,
	}
}

func toGuestResponses(guests []domain.Guest) []guestResponse {
	out := make([]guestResponse, 0, len(guests))
	for _, g := range guests {
		out = append(out, toGuestResponse(g))
	}
	return out
}
