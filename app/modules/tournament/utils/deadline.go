package tournamentutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DeadlineParser turns free-form deadline input into an absolute time.
type DeadlineParser interface {
	ParseDeadline(input string, now time.Time) (time.Time, error)
}

type deadlineParser struct {
	w *when.Parser
}

// NewDeadlineParser builds a parser that understands expressions like
// "next friday at 20:00" or "in 2 weeks".
func NewDeadlineParser() DeadlineParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &deadlineParser{w: w}
}

func (p *deadlineParser) ParseDeadline(input string, now time.Time) (time.Time, error) {
	normalized := strings.TrimSpace(strings.ToLower(input))
	if normalized == "" {
		return time.Time{}, fmt.Errorf("empty deadline input")
	}

	r, err := p.w.Parse(normalized, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse deadline %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not understand deadline %q", input)
	}
	return r.Time, nil
}
