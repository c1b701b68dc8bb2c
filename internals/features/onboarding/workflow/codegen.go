package workflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// RequestCodeGenerator produces year-scoped sequential codes like
// REQ-2026-0001. The lookup-then-format race is acceptable because the
// request_code column carries a unique index; a losing insert surfaces
// ErrCodeCollision and the orchestrator retries with a fresh sequence.
type RequestCodeGenerator struct {
	requests RequestRepo
}

func NewRequestCodeGenerator(requests RequestRepo) *RequestCodeGenerator {
	return &RequestCodeGenerator{requests: requests}
}

// NextCode returns the next code for the calendar year: highest existing
// sequence plus one, starting at 1 for a fresh year.
func (g *RequestCodeGenerator) NextCode(ctx context.Context, year int) (string, error) {
	latest, err := g.requests.MaxCodeForYear(ctx, year)
	if err != nil {
		return "", err
	}

	seq := 1
	if latest != "" {
		parts := strings.Split(latest, "-")
		n, convErr := strconv.Atoi(parts[len(parts)-1])
		if convErr == nil {
			seq = n + 1
		}
	}

	return fmt.Sprintf("REQ-%d-%04d", year, seq), nil
}
