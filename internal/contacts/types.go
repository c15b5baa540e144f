// In file: internal/contacts/types.go

// Package contacts holds the user's address book in Redis and answers the
// name, organization and email lookups the contacts tool makes.
package contacts

import (
	"errors"
	"strings"
)

// ErrNotAvailable means the contact store cannot be reached.
var ErrNotAvailable = errors.New("contact store is not available")

// Contact is one address book card.
type Contact struct {
	ID           string   `json:"id" yaml:"id"`
	GivenName    string   `json:"givenName" yaml:"given_name"`
	FamilyName   string   `json:"familyName,omitempty" yaml:"family_name,omitempty"`
	Organization string   `json:"organization,omitempty" yaml:"organization,omitempty"`
	Emails       []string `json:"emails,omitempty" yaml:"emails,omitempty"`
	Phones       []string `json:"phones,omitempty" yaml:"phones,omitempty"`
}

// FullName joins the given and family names, falling back to the
// organization for company cards.
func (c Contact) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(c.GivenName) + " " + strings.TrimSpace(c.FamilyName))
	if name == "" {
		return strings.TrimSpace(c.Organization)
	}
	return name
}

// Matches reports whether query (already lower-cased) appears in the name,
// organization or any email address.
func (c Contact) Matches(query string) bool {
	if strings.Contains(strings.ToLower(c.FullName()), query) ||
		strings.Contains(strings.ToLower(c.Organization), query) {
		return true
	}
	for _, email := range c.Emails {
		if strings.Contains(strings.ToLower(email), query) {
			return true
		}
	}
	return false
}
