package logging

import "context"

const (
	ActionListingCreate  = "listing.create"
	ActionBookingCreate  = "booking.create"
	ActionBookingDecide  = "booking.decide"
	ActionSessionLogin   = "session.login"
	ActionSessionLogout  = "session.logout"
	ActionFavoriteToggle = "favorite.toggle"
)

// Audit emits a structured audit entry on the request logger.
func Audit(ctx context.Context, action, userID, msg string) {
	l := Ctx(ctx)
	l.Info().
		Str(FieldLogType, LogTypeAudit).
		Str(FieldAction, action).
		Str(FieldUserID, userID).
		Msg(msg)
}
