// Package calendar builds Notion Calendar cron:// deep-links. This is
// the one provider action handled entirely on-process: no network call,
// the client opens the link locally.
package calendar

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultRef is the referrer tag embedded in generated deep-links.
const DefaultRef = "com.halo.desktop"

// Event describes a calendar event addressable by deep-link.
type Event struct {
	Start   time.Time
	End     time.Time
	ICalUID string
	Title   string
}

// ShowEventURL builds the cron://showEvent deep-link for an event on
// the given account. Dates are rendered as ISO-8601 UTC with a Z
// suffix, which is what the Notion Calendar local API expects.
func ShowEventURL(accountEmail string, ev Event, ref string) string {
	if ref == "" {
		ref = DefaultRef
	}
	start := ev.Start.UTC().Format("2006-01-02T15:04:05Z")
	end := ev.End.UTC().Format("2006-01-02T15:04:05Z")

	return "cron://showEvent?" +
		"accountEmail=" + url.QueryEscape(accountEmail) +
		"&iCalUID=" + url.QueryEscape(ev.ICalUID) +
		"&startDate=" + url.QueryEscape(start) +
		"&endDate=" + url.QueryEscape(end) +
		"&title=" + url.QueryEscape(ev.Title) +
		"&ref=" + url.QueryEscape(ref)
}

// DemoEvent builds the quick focus-block event anchored to now: a
// 20-minute slot starting in two minutes, with a session-scoped iCal
// UID so repeated calls in one session address the same event.
func DemoEvent(sessionID string, now time.Time) Event {
	start := now.UTC().Add(2 * time.Minute)
	return Event{
		Start:   start,
		End:     start.Add(20 * time.Minute),
		ICalUID: fmt.Sprintf("halo-%s@halo.local", sessionID),
		Title:   "Halo – Quick focus block",
	}
}
