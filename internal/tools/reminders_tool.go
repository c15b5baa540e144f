// In file: internal/tools/reminders_tool.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dileep-u-k/device-tools/internal/reminders"
	"github.com/dileep-u-k/device-tools/internal/settings"
)

// --- Reminders Tool Implementation ---

// ReminderStore is the to-do list the reminders tool manages.
type ReminderStore interface {
	Available(ctx context.Context) bool
	List(ctx context.Context, includeCompleted bool) ([]reminders.Reminder, error)
	Add(ctx context.Context, r reminders.Reminder) (reminders.Reminder, error)
	Complete(ctx context.Context, id string, at time.Time) (reminders.Reminder, error)
}

const (
	reminderActionList     = "list"
	reminderActionCreate   = "create"
	reminderActionComplete = "complete"
)

var reminderErrorKinds = []ErrorKind{
	KindInvalidAction,
	KindMissingRequiredField,
	KindInvalidFieldValue,
	KindStoreNotAvailable,
	KindAuthorizationDenied,
	KindNotFound,
	KindNoData,
	KindQueryFailed,
}

var reminderEncoder = NewEncoder(
	StringField("action"),
	IntField("reminderCount"),
	ListField("reminders", "; "),
	StringField("reminderID"),
	StringField("title"),
	StringField("dueDate"),
	StringField("priority"),
	BoolField("completed"),
)

// ReminderReport is the reminders tool's result.
type ReminderReport struct {
	Action        string   `json:"action"`
	ReminderCount int      `json:"reminderCount"`
	Reminders     []string `json:"-"`
	ReminderID    string   `json:"reminderID"`
	Title         string   `json:"title"`
	DueDate       string   `json:"dueDate"`
	Priority      string   `json:"priority"`
	Completed     bool     `json:"completed"`

	message string
}

func (r *ReminderReport) Fields() map[string]any {
	return map[string]any{
		"action":        r.Action,
		"reminderCount": r.ReminderCount,
		"reminders":     r.Reminders,
		"reminderID":    r.ReminderID,
		"title":         r.Title,
		"dueDate":       r.DueDate,
		"priority":      r.Priority,
		"completed":     r.Completed,
	}
}

func (r *ReminderReport) Summary() string { return r.message }

// RemindersConfig carries the clock used for due dates and completion times.
type RemindersConfig struct {
	// Location defaults to time.Local.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

// RemindersTool lists, creates and completes reminders.
type RemindersTool struct {
	store  ReminderStore
	access AccessController
	loc    *time.Location
	now    func() time.Time
}

var _ ToolExecutor = (*RemindersTool)(nil)

func NewRemindersTool(store ReminderStore, access AccessController, cfg RemindersConfig) *RemindersTool {
	rt := &RemindersTool{store: store, access: access, loc: cfg.Location, now: cfg.Now}
	if rt.loc == nil {
		rt.loc = time.Local
	}
	if rt.now == nil {
		rt.now = time.Now
	}
	return rt
}

func (rt *RemindersTool) Definition() Tool {
	priorities := make([]string, len(reminders.AllPriorities))
	for i, p := range reminders.AllPriorities {
		priorities[i] = string(p)
	}
	return NewFunctionTool(
		"manageReminders",
		"List the user's reminders, add a new reminder, or mark one as completed.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"action": {
					Type:        "string",
					Description: "list, create or complete.",
					Enum:        []string{reminderActionList, reminderActionCreate, reminderActionComplete},
					Default:     reminderActionList,
				},
				"title": {
					Type:        "string",
					Description: "What to be reminded of. Required for create.",
				},
				"notes": {
					Type:        "string",
					Description: "Extra detail for the reminder (create only).",
				},
				"dueDate": {
					Type:        "string",
					Description: "When the reminder is due, YYYY-MM-DD or RFC 3339 (create only).",
				},
				"priority": {
					Type:        "string",
					Description: "Reminder priority (create only).",
					Enum:        priorities,
					Default:     string(reminders.PriorityNone),
				},
				"reminderID": {
					Type:        "string",
					Description: "ID of the reminder to complete, as shown by list. Required for complete.",
				},
				"includeCompleted": {
					Type:        "boolean",
					Description: "Also list completed reminders.",
					Default:     false,
				},
			},
		},
	)
}

func (rt *RemindersTool) Execute(ctx context.Context, arguments string) Output {
	args, err := ParseArguments(arguments, rt.Definition().Function.Parameters)
	if err != nil {
		echo := echoArguments(arguments, map[string]string{
			"action": "action", "title": "title", "reminderID": "reminderID",
		})
		argErr := asArgumentError(err)
		if argErr.Kind == KindInvalidFieldValue && argErr.Field == "action" {
			return reminderEncoder.EncodeError(NewError(KindInvalidAction, argErr.Reason), echo)
		}
		return reminderEncoder.EncodeError(argErr.ToolError(), echo)
	}
	action := args.String("action")
	echo := map[string]any{
		"action":     action,
		"title":      args.String("title"),
		"reminderID": args.String("reminderID"),
	}

	var report *ReminderReport
	switch action {
	case reminderActionCreate:
		report, err = rt.create(ctx, args)
	case reminderActionComplete:
		report, err = rt.complete(ctx, args)
	default:
		report, err = rt.list(ctx, args)
	}
	if err != nil {
		te := Classify(mapReminderError(err), reminderErrorKinds, KindQueryFailed)
		log.Printf("❌ manageReminders %s failed: %v", action, te)
		return reminderEncoder.EncodeError(te, echo)
	}
	return reminderEncoder.Encode(report)
}

func mapReminderError(err error) error {
	var te *ToolError
	switch {
	case errors.As(err, &te):
		return te
	case errors.Is(err, reminders.ErrNotFound):
		return WrapError(KindNotFound, "", err)
	case errors.Is(err, reminders.ErrNotAvailable):
		return WrapError(KindStoreNotAvailable, "", err)
	}
	return WrapError(KindQueryFailed, "", err)
}

func (rt *RemindersTool) open(ctx context.Context) error {
	return openStore(ctx, rt.store.Available, rt.access, settings.AccessReminders)
}

func (rt *RemindersTool) list(ctx context.Context, args Arguments) (*ReminderReport, error) {
	if err := rt.open(ctx); err != nil {
		return nil, err
	}
	items, err := rt.store.List(ctx, args.Bool("includeCompleted"))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, NewError(KindNoData, "no reminders")
	}
	entries := make([]string, len(items))
	for i, r := range items {
		entries[i] = rt.formatReminder(r)
	}
	report := &ReminderReport{
		Action:        reminderActionList,
		ReminderCount: len(items),
		Reminders:     entries,
	}
	report.message = fmt.Sprintf("You have %d reminders", report.ReminderCount)
	return report, nil
}

func (rt *RemindersTool) create(ctx context.Context, args Arguments) (*ReminderReport, error) {
	title := args.String("title")
	if title == "" {
		return nil, NewError(KindMissingRequiredField, "title is required to create a reminder")
	}
	var due *time.Time
	if raw := args.String("dueDate"); raw != "" {
		parsed, _, err := parseDate(raw, rt.loc)
		if err != nil {
			return nil, NewError(KindInvalidFieldValue, "dueDate "+err.Error())
		}
		due = &parsed
	}

	if err := rt.open(ctx); err != nil {
		return nil, err
	}
	created, err := rt.store.Add(ctx, reminders.Reminder{
		Title:    title,
		Notes:    args.String("notes"),
		Due:      due,
		Priority: reminders.Priority(args.String("priority")),
		Created:  rt.now(),
	})
	if err != nil {
		return nil, err
	}
	report := rt.single(reminderActionCreate, created)
	report.message = "Added reminder: " + created.Title
	return report, nil
}

func (rt *RemindersTool) complete(ctx context.Context, args Arguments) (*ReminderReport, error) {
	id := args.String("reminderID")
	if id == "" {
		return nil, NewError(KindMissingRequiredField, "reminderID is required to complete a reminder")
	}
	if err := rt.open(ctx); err != nil {
		return nil, err
	}
	done, err := rt.store.Complete(ctx, id, rt.now())
	if err != nil {
		return nil, err
	}
	report := rt.single(reminderActionComplete, done)
	report.message = "Completed reminder: " + done.Title
	return report, nil
}

func (rt *RemindersTool) single(action string, r reminders.Reminder) *ReminderReport {
	report := &ReminderReport{
		Action:        action,
		ReminderCount: 1,
		Reminders:     []string{rt.formatReminder(r)},
		ReminderID:    r.ID,
		Title:         r.Title,
		Priority:      string(r.Priority),
		Completed:     r.Completed,
	}
	if r.Due != nil {
		report.DueDate = r.Due.In(rt.loc).Format(time.RFC3339)
	}
	return report
}

// formatReminder renders "[id] Title (due Tue Oct 20 09:00, high, done)".
func (rt *RemindersTool) formatReminder(r reminders.Reminder) string {
	var details []string
	if r.Due != nil {
		details = append(details, "due "+r.Due.In(rt.loc).Format(eventDayLayout+" 15:04"))
	}
	if r.Priority != "" && r.Priority != reminders.PriorityNone {
		details = append(details, string(r.Priority))
	}
	if r.Completed {
		details = append(details, "done")
	}
	text := fmt.Sprintf("[%s] %s", r.ID, r.Title)
	if len(details) > 0 {
		text += " (" + strings.Join(details, ", ") + ")"
	}
	return text
}
