// Package oracle wraps the text-generation service used for analysis prose.
package oracle

import "context"

// Oracle generates free text from a system instruction and a data context.
// Responses may embed a fenced JSON block; interpretation is the caller's
// concern. No streaming.
type Oracle interface {
	Generate(ctx context.Context, systemInstruction, dataContext string) (string, error)
}

// Mock returns scripted responses in order, for tests and offline runs.
type Mock struct {
	Responses []string
	Err       error
	Calls     []string // recorded data contexts

	next int
}

func (m *Mock) Generate(_ context.Context, _, dataContext string) (string, error) {
	m.Calls = append(m.Calls, dataContext)
	if m.Err != nil {
		return "", m.Err
	}
	if m.next >= len(m.Responses) {
		if len(m.Responses) == 0 {
			return "", nil
		}
		return m.Responses[len(m.Responses)-1], nil
	}
	r := m.Responses[m.next]
	m.next++
	return r, nil
}
