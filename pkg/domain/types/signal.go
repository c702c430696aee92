package types

// Signal is a language-independent code attached to chat UI affordances
// (Block Kit buttons). Users who type instead of tapping are matched
// against per-locale synonym sets.
type Signal string

const (
	// SignalSkip skips the current optional step (description or location)
	SignalSkip Signal = "skip"

	// SignalCancel aborts the intake session with no persistence
	SignalCancel Signal = "cancel"

	// SignalEnterZip switches the location step to postal code entry
	SignalEnterZip Signal = "enter_zip"

	// SignalConfirmDelete executes a pending two-phase stone deletion
	SignalConfirmDelete Signal = "confirm_delete"

	// SignalCancelDelete abandons a pending deletion
	SignalCancelDelete Signal = "cancel_delete"

	// SignalPagePrev and SignalPageNext page through a stone listing
	SignalPagePrev Signal = "page_prev"
	SignalPageNext Signal = "page_next"

	// SignalSetLanguage selects the user's language; the button value
	// carries the language code
	SignalSetLanguage Signal = "set_language"
)

// IsValid checks if the signal is a known code
func (s Signal) IsValid() bool {
	switch s {
	case SignalSkip, SignalCancel, SignalEnterZip,
		SignalConfirmDelete, SignalCancelDelete,
		SignalPagePrev, SignalPageNext, SignalSetLanguage:
		return true
	default:
		return false
	}
}

// String returns the string representation of the signal
func (s Signal) String() string {
	return string(s)
}
