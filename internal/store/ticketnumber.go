package store

import (
	"fmt"

	"queueflow/internal/models"
)

const ticketNumberPad = 3

// CategoryLetter maps an institution category to its ticket-number prefix.
// Unknown categories fall back to "A".
func CategoryLetter(category string) string {
	switch category {
	case models.CategoryHospital:
		return "H"
	case models.CategoryMunicipal:
		return "M"
	case models.CategoryBank:
		return "B"
	case models.CategoryTransport:
		return "T"
	default:
		return "A"
	}
}

// FormatTicketNumber renders the human-readable number for a sequence value,
// e.g. H001. Sequences past 999 widen rather than wrap.
func FormatTicketNumber(category string, seq int64) string {
	return fmt.Sprintf("%s%0*d", CategoryLetter(category), ticketNumberPad, seq)
}
