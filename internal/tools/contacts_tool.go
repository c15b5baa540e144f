// In file: internal/tools/contacts_tool.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dileep-u-k/device-tools/internal/contacts"
	"github.com/dileep-u-k/device-tools/internal/settings"
)

// --- Contacts Tool Implementation ---

// ContactDirectory is the address book the contacts tool searches.
type ContactDirectory interface {
	Available(ctx context.Context) bool
	Search(ctx context.Context, query string, limit int) ([]contacts.Contact, error)
}

var contactErrorKinds = []ErrorKind{
	KindEmptyQuery,
	KindInvalidFieldValue,
	KindStoreNotAvailable,
	KindAuthorizationDenied,
	KindNoResults,
	KindQueryFailed,
}

var contactEncoder = NewEncoder(
	StringField("query"),
	IntField("contactCount"),
	ListField("contacts", "; "),
	StringField("name"),
	StringField("phone"),
	StringField("email"),
	StringField("organization"),
)

// ContactMatches is the contacts tool's result. The single-contact fields
// describe the best match.
type ContactMatches struct {
	Query        string   `json:"query"`
	ContactCount int      `json:"contactCount"`
	Contacts     []string `json:"-"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	Organization string   `json:"organization"`
}

func (m *ContactMatches) Fields() map[string]any {
	return map[string]any{
		"query":        m.Query,
		"contactCount": m.ContactCount,
		"contacts":     m.Contacts,
		"name":         m.Name,
		"phone":        m.Phone,
		"email":        m.Email,
		"organization": m.Organization,
	}
}

func (m *ContactMatches) Summary() string {
	if m.ContactCount == 1 {
		return "Found " + m.Name
	}
	return fmt.Sprintf("Found %d contacts matching %q", m.ContactCount, m.Query)
}

// ContactsTool looks people up in the address book.
type ContactsTool struct {
	directory ContactDirectory
	access    AccessController
}

var _ ToolExecutor = (*ContactsTool)(nil)

func NewContactsTool(directory ContactDirectory, access AccessController) *ContactsTool {
	return &ContactsTool{directory: directory, access: access}
}

func (ct *ContactsTool) Definition() Tool {
	return NewFunctionTool(
		"searchContacts",
		"Find people in the user's contacts by name, company or email address.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"query": {
					Type:        "string",
					Description: "Name, company or email fragment, e.g., 'Priya'.",
				},
				"limit": {
					Type:        "integer",
					Description: "Most contacts to return (1-20).",
					Default:     5.0,
					Minimum:     Bound(1),
					Maximum:     Bound(20),
				},
			},
			Required: []string{"query"},
		},
	)
}

func (ct *ContactsTool) Execute(ctx context.Context, arguments string) Output {
	args, err := ParseArguments(arguments, ct.Definition().Function.Parameters)
	if err != nil {
		echo := echoArguments(arguments, map[string]string{"query": "query"})
		argErr := asArgumentError(err)
		if argErr.Kind == KindMissingRequiredField && argErr.Field == "query" {
			return contactEncoder.EncodeError(NewError(KindEmptyQuery, ""), echo)
		}
		return contactEncoder.EncodeError(argErr.ToolError(), echo)
	}
	query := args.String("query")
	echo := map[string]any{"query": query}

	matches, err := ct.search(ctx, query, args.Int("limit"))
	if err != nil {
		te := Classify(mapContactError(err), contactErrorKinds, KindQueryFailed)
		log.Printf("❌ searchContacts failed for %q: %v", query, te)
		return contactEncoder.EncodeError(te, echo)
	}
	return contactEncoder.Encode(matches)
}

func mapContactError(err error) error {
	var te *ToolError
	switch {
	case errors.As(err, &te):
		return te
	case errors.Is(err, contacts.ErrNotAvailable):
		return WrapError(KindStoreNotAvailable, "", err)
	}
	return WrapError(KindQueryFailed, "", err)
}

func (ct *ContactsTool) search(ctx context.Context, query string, limit int) (*ContactMatches, error) {
	if err := openStore(ctx, ct.directory.Available, ct.access, settings.AccessContacts); err != nil {
		return nil, err
	}
	found, err := ct.directory.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, NewError(KindNoResults, query)
	}

	entries := make([]string, len(found))
	for i, c := range found {
		entries[i] = formatContact(c)
	}
	best := found[0]
	return &ContactMatches{
		Query:        query,
		ContactCount: len(found),
		Contacts:     entries,
		Name:         best.FullName(),
		Phone:        firstOf(best.Phones),
		Email:        firstOf(best.Emails),
		Organization: best.Organization,
	}, nil
}

// formatContact renders "Name (Org), phone, email" with empty parts left out.
func formatContact(c contacts.Contact) string {
	text := c.FullName()
	if c.Organization != "" && c.Organization != text {
		text += " (" + c.Organization + ")"
	}
	parts := []string{text}
	if phone := firstOf(c.Phones); phone != "" {
		parts = append(parts, phone)
	}
	if email := firstOf(c.Emails); email != "" {
		parts = append(parts, email)
	}
	return strings.Join(parts, ", ")
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
