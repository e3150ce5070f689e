package diagnosis

import "errors"

var (
	// ErrEmptyInput is returned when the input text is blank. The
	// classifier is never invoked in this case.
	ErrEmptyInput = errors.New("input text is empty")

	// ErrInvalidSymptoms is returned when the classifier's best guess
	// falls below the minimum confidence threshold, meaning the text is
	// not recognizable as disease symptoms. This is an expected outcome,
	// not a system fault.
	ErrInvalidSymptoms = errors.New("symptoms not recognized")
)
