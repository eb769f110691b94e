package wildcard

import "github.com/HendryAvila/listkeeper/internal/actions"

// ValidateAction gates a fuzzy-matched action before dispatch. Only the
// items of addItems and removeItems are checked; every other kind carries
// none and passes.
func ValidateAction(a actions.Action) bool {
	return Validate(actions.Items(a))
}
