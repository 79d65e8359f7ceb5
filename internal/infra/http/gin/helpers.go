package ginserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"bedspace/internal/domain/premises"
	"bedspace/internal/domain/shared/daterange"
)

const dateLayout = "2006-01-02"

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDate(raw string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// statusForError maps engine errors onto HTTP statuses: invalid queries are
// the caller's fault, missing premises are 404, anything else (including
// snapshot-integrity failures) is a server-side problem.
func statusForError(err error) int {
	switch {
	case errors.Is(err, premises.ErrPremisesNotFound):
		return http.StatusNotFound
	case errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, daterange.ErrZeroDate),
		errors.Is(err, premises.ErrUnknownCharacteristic):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
