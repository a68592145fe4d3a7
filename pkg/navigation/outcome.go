package navigation

// SearchOutcome describes what a search box change did. State handling is the
// same for every non-selected outcome; the value exists so the view layer can
// give feedback instead of failing silently.
type SearchOutcome string

const (
	// SearchUnchanged: the text equals the last query, nothing was looked up.
	SearchUnchanged SearchOutcome = "unchanged"
	// SearchInvalidInput: the text is not six ASCII digits (yet).
	SearchInvalidInput SearchOutcome = "invalid_input"
	// SearchNotFound: a well-formed pincode with no record.
	SearchNotFound SearchOutcome = "not_found"
	// SearchSelected: the pincode was found and is now selected.
	SearchSelected SearchOutcome = "selected"
)

func (o SearchOutcome) Changed() bool {
	return o == SearchSelected
}
