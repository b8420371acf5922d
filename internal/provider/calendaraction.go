package provider

import (
	"context"
	"time"

	"github.com/tjfontaine/halo-conversation-gateway/internal/calendar"
	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

// CalendarOption configures the calendar adapter.
type CalendarOption func(*CalendarAdapter)

// WithCalendarClock overrides the time source, for tests.
func WithCalendarClock(now func() time.Time) CalendarOption {
	return func(a *CalendarAdapter) {
		a.now = now
	}
}

// CalendarAdapter handles the notion_calendar provider. It is local:
// success yields a deep-link client action instead of upstream text,
// and a missing account email yields a guiding prompt rather than a
// degraded reply.
type CalendarAdapter struct {
	accountEmail string
	now          func() time.Time
}

// NewCalendar creates the adapter for the configured account.
func NewCalendar(accountEmail string, opts ...CalendarOption) *CalendarAdapter {
	a := &CalendarAdapter{
		accountEmail: accountEmail,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *CalendarAdapter) ID() domain.ProviderID {
	return domain.ProviderNotionCalendar
}

func (a *CalendarAdapter) Send(ctx context.Context, _ string) (*domain.Reply, error) {
	if a.accountEmail == "" {
		return &domain.Reply{
			Text: "I can open your Notion Calendar, but I don't know which account to use yet. " +
				"Please set the calendar account email and try again.",
			Note: "notion_calendar_prompt_account_email",
		}, nil
	}

	sessionID := domain.SessionIDFromContext(ctx)
	if sessionID == "" {
		sessionID = "adhoc"
	}

	ev := calendar.DemoEvent(sessionID, a.now())
	link := calendar.ShowEventURL(a.accountEmail, ev, calendar.DefaultRef)

	return &domain.Reply{
		Text: "Opening your Notion Calendar focus block: " + ev.Title,
		Note: "notion_calendar_deeplink",
		Actions: []domain.ClientAction{
			{
				Type: "open_deeplink",
				Payload: map[string]any{
					"url":           link,
					"account_email": a.accountEmail,
					"ical_uid":      ev.ICalUID,
					"title":         ev.Title,
					"start_utc":     ev.Start.UTC().Format(time.RFC3339),
					"end_utc":       ev.End.UTC().Format(time.RFC3339),
				},
			},
		},
	}, nil
}
