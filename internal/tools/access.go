// In file: internal/tools/access.go
package tools

import (
	"context"
	"errors"

	"github.com/dileep-u-k/device-tools/internal/settings"
)

// AccessController records the user's permission decisions for the
// personal data tools (calendar, reminders, contacts).
type AccessController interface {
	RequestAccess(ctx context.Context, domain string) error
}

// openStore checks that the store answers, then that the user allows
// access to domain. Both run only after the arguments validated.
func openStore(ctx context.Context, available func(context.Context) bool, access AccessController, domain string) error {
	if !available(ctx) {
		return NewError(KindStoreNotAvailable, domain)
	}
	if err := access.RequestAccess(ctx, domain); err != nil {
		if errors.Is(err, settings.ErrAccessDenied) {
			return WrapError(KindAuthorizationDenied, domain, err)
		}
		return WrapError(KindStoreNotAvailable, domain, err)
	}
	return nil
}
