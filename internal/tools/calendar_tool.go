// In file: internal/tools/calendar_tool.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dileep-u-k/device-tools/internal/calendar"
	"github.com/dileep-u-k/device-tools/internal/settings"
)

// --- Calendar Tool Implementation ---

// CalendarSource is the event store the calendar tool reads and writes.
type CalendarSource interface {
	Available(ctx context.Context) bool
	Events(ctx context.Context, start, end time.Time) ([]calendar.Event, error)
	AddEvent(ctx context.Context, e calendar.Event) (calendar.Event, error)
}

const (
	calendarActionList   = "list"
	calendarActionCreate = "create"

	defaultEventDuration = time.Hour
	eventDayLayout       = "Mon Jan 2"
)

var calendarErrorKinds = []ErrorKind{
	KindInvalidAction,
	KindMissingRequiredField,
	KindInvalidFieldValue,
	KindStoreNotAvailable,
	KindAuthorizationDenied,
	KindNoData,
	KindQueryFailed,
}

var calendarEncoder = NewEncoder(
	StringField("action"),
	StringField("startDate"),
	StringField("endDate"),
	IntField("eventCount"),
	ListField("events", "; "),
	StringField("eventID"),
	StringField("title"),
	StringField("start"),
	StringField("end"),
	BoolField("allDay"),
	StringField("location"),
)

// CalendarReport is the calendar tool's result. A list fills the range and
// event listing; a create also fills the single-event fields.
type CalendarReport struct {
	Action     string   `json:"action"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	EventCount int      `json:"eventCount"`
	Events     []string `json:"-"`
	EventID    string   `json:"eventID"`
	Title      string   `json:"title"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	AllDay     bool     `json:"allDay"`
	Location   string   `json:"location"`

	message string
}

func (r *CalendarReport) Fields() map[string]any {
	return map[string]any{
		"action":     r.Action,
		"startDate":  r.StartDate,
		"endDate":    r.EndDate,
		"eventCount": r.EventCount,
		"events":     r.Events,
		"eventID":    r.EventID,
		"title":      r.Title,
		"start":      r.Start,
		"end":        r.End,
		"allDay":     r.AllDay,
		"location":   r.Location,
	}
}

func (r *CalendarReport) Summary() string { return r.message }

// CalendarConfig carries the clock and calendar used for date-only inputs.
type CalendarConfig struct {
	// Location defaults to time.Local.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

// CalendarTool lists and creates calendar events.
type CalendarTool struct {
	source CalendarSource
	access AccessController
	loc    *time.Location
	now    func() time.Time
}

var _ ToolExecutor = (*CalendarTool)(nil)

func NewCalendarTool(source CalendarSource, access AccessController, cfg CalendarConfig) *CalendarTool {
	ct := &CalendarTool{source: source, access: access, loc: cfg.Location, now: cfg.Now}
	if ct.loc == nil {
		ct.loc = time.Local
	}
	if ct.now == nil {
		ct.now = time.Now
	}
	return ct
}

func (ct *CalendarTool) Definition() Tool {
	return NewFunctionTool(
		"manageCalendar",
		"List the user's upcoming calendar events, or create a new event.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"action": {
					Type:        "string",
					Description: "list to read events in a range, create to add one.",
					Enum:        []string{calendarActionList, calendarActionCreate},
					Default:     calendarActionList,
				},
				"startDate": {
					Type:        "string",
					Description: "YYYY-MM-DD or RFC 3339. For list, the range start (defaults to today). For create, the event start; a bare date makes an all-day event.",
				},
				"endDate": {
					Type:        "string",
					Description: "YYYY-MM-DD or RFC 3339. For list, the last day of the range. For create, the event end (defaults to one hour after start).",
				},
				"days": {
					Type:        "integer",
					Description: "Length of the list range in days when endDate is omitted.",
					Default:     7.0,
					Minimum:     Bound(1),
					Maximum:     Bound(31),
				},
				"title": {
					Type:        "string",
					Description: "Event title. Required for create; for list, only events whose title contains it are returned.",
				},
				"location": {
					Type:        "string",
					Description: "Where the event takes place (create only).",
				},
				"notes": {
					Type:        "string",
					Description: "Free-form notes (create only).",
				},
			},
		},
	)
}

func (ct *CalendarTool) Execute(ctx context.Context, arguments string) Output {
	args, err := ParseArguments(arguments, ct.Definition().Function.Parameters)
	if err != nil {
		echo := echoArguments(arguments, map[string]string{
			"action": "action", "title": "title", "startDate": "startDate", "endDate": "endDate",
		})
		argErr := asArgumentError(err)
		if argErr.Kind == KindInvalidFieldValue && argErr.Field == "action" {
			return calendarEncoder.EncodeError(NewError(KindInvalidAction, argErr.Reason), echo)
		}
		return calendarEncoder.EncodeError(argErr.ToolError(), echo)
	}
	action := args.String("action")
	echo := map[string]any{
		"action":    action,
		"title":     args.String("title"),
		"startDate": args.String("startDate"),
		"endDate":   args.String("endDate"),
	}

	var report *CalendarReport
	if action == calendarActionCreate {
		report, err = ct.create(ctx, args)
	} else {
		report, err = ct.list(ctx, args)
	}
	if err != nil {
		te := Classify(mapCalendarError(err), calendarErrorKinds, KindQueryFailed)
		log.Printf("❌ manageCalendar %s failed: %v", action, te)
		return calendarEncoder.EncodeError(te, echo)
	}
	return calendarEncoder.Encode(report)
}

func mapCalendarError(err error) error {
	var te *ToolError
	switch {
	case errors.As(err, &te):
		return te
	case errors.Is(err, calendar.ErrNotAvailable):
		return WrapError(KindStoreNotAvailable, "", err)
	}
	return WrapError(KindQueryFailed, "", err)
}

func (ct *CalendarTool) open(ctx context.Context) error {
	return openStore(ctx, ct.source.Available, ct.access, settings.AccessCalendar)
}

// listRange resolves the list window. A date-only endDate includes that
// whole day; without one the window is days long starting at startDate.
func (ct *CalendarTool) listRange(args Arguments) (dateRange, error) {
	now := ct.now().In(ct.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, ct.loc)
	if raw := args.String("startDate"); raw != "" {
		parsed, _, err := parseDate(raw, ct.loc)
		if err != nil {
			return dateRange{}, NewError(KindInvalidFieldValue, "startDate "+err.Error())
		}
		start = parsed
	}

	rng := dateRange{start: start}
	if raw := args.String("endDate"); raw != "" {
		parsed, dateOnly, err := parseDate(raw, ct.loc)
		if err != nil {
			return dateRange{}, NewError(KindInvalidFieldValue, "endDate "+err.Error())
		}
		rng.end, rng.queryEnd = parsed, parsed
		if dateOnly {
			rng.queryEnd = parsed.AddDate(0, 0, 1)
		}
	} else {
		rng.queryEnd = start.AddDate(0, 0, args.Int("days"))
		rng.end = rng.queryEnd.AddDate(0, 0, -1)
	}
	if rng.queryEnd.Before(start) {
		return dateRange{}, NewError(KindInvalidFieldValue, "endDate is before startDate")
	}
	return rng, nil
}

func (ct *CalendarTool) list(ctx context.Context, args Arguments) (*CalendarReport, error) {
	rng, err := ct.listRange(args)
	if err != nil {
		return nil, err
	}
	if err := ct.open(ctx); err != nil {
		return nil, err
	}

	events, err := ct.source.Events(ctx, rng.start, rng.queryEnd)
	if err != nil {
		return nil, err
	}
	if filter := strings.ToLower(args.String("title")); filter != "" {
		var kept []calendar.Event
		for _, e := range events {
			if strings.Contains(strings.ToLower(e.Title), filter) {
				kept = append(kept, e)
			}
		}
		events = kept
	}
	if len(events) == 0 {
		return nil, NewError(KindNoData, "no events in range")
	}

	entries := make([]string, len(events))
	for i, e := range events {
		entries[i] = ct.formatEvent(e)
	}
	report := &CalendarReport{
		Action:     calendarActionList,
		StartDate:  rng.start.Format(dateLayout),
		EndDate:    rng.end.Format(dateLayout),
		EventCount: len(events),
		Events:     entries,
	}
	report.message = fmt.Sprintf("Found %d events between %s and %s", report.EventCount, report.StartDate, report.EndDate)
	return report, nil
}

func (ct *CalendarTool) create(ctx context.Context, args Arguments) (*CalendarReport, error) {
	title := args.String("title")
	if title == "" {
		return nil, NewError(KindMissingRequiredField, "title is required to create an event")
	}
	rawStart := args.String("startDate")
	if rawStart == "" {
		return nil, NewError(KindMissingRequiredField, "startDate is required to create an event")
	}
	start, allDay, err := parseDate(rawStart, ct.loc)
	if err != nil {
		return nil, NewError(KindInvalidFieldValue, "startDate "+err.Error())
	}

	end := start.Add(defaultEventDuration)
	if allDay {
		end = start.AddDate(0, 0, 1)
	}
	if raw := args.String("endDate"); raw != "" {
		parsed, dateOnly, err := parseDate(raw, ct.loc)
		if err != nil {
			return nil, NewError(KindInvalidFieldValue, "endDate "+err.Error())
		}
		end = parsed
		if dateOnly {
			end = parsed.AddDate(0, 0, 1)
		}
	}
	if end.Before(start) {
		return nil, NewError(KindInvalidFieldValue, "endDate is before startDate")
	}

	if err := ct.open(ctx); err != nil {
		return nil, err
	}
	event, err := ct.source.AddEvent(ctx, calendar.Event{
		Title:    title,
		Start:    start,
		End:      end,
		AllDay:   allDay,
		Location: args.String("location"),
		Notes:    args.String("notes"),
	})
	if err != nil {
		return nil, err
	}

	report := &CalendarReport{
		Action:     calendarActionCreate,
		StartDate:  event.Start.In(ct.loc).Format(dateLayout),
		EndDate:    event.End.In(ct.loc).Format(dateLayout),
		EventCount: 1,
		Events:     []string{ct.formatEvent(event)},
		EventID:    event.ID,
		Title:      event.Title,
		Start:      event.Start.In(ct.loc).Format(time.RFC3339),
		End:        event.End.In(ct.loc).Format(time.RFC3339),
		AllDay:     event.AllDay,
		Location:   event.Location,
	}
	report.message = "Created event: " + report.Events[0]
	return report, nil
}

// formatEvent renders one event as "Tue Oct 20 09:00-10:00 Title @ Place".
func (ct *CalendarTool) formatEvent(e calendar.Event) string {
	start := e.Start.In(ct.loc)
	var b strings.Builder
	b.WriteString(start.Format(eventDayLayout))
	if e.AllDay {
		b.WriteString(" all day")
	} else {
		b.WriteString(" " + start.Format("15:04") + "-" + e.End.In(ct.loc).Format("15:04"))
	}
	b.WriteString(" " + e.Title)
	if e.Location != "" {
		b.WriteString(" @ " + e.Location)
	}
	return b.String()
}
