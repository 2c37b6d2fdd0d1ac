package screens

// Screen is a unit of user interface with an explicit visible lifetime.
// Activate runs every time the screen becomes the visible one, including
// when a screen above it is closed; Deactivate runs when it stops being
// visible. Subscriptions and platform callbacks are scoped between the
// two calls.
type Screen interface {
	Activate()
	Deactivate()
}

// DialogPresenter shows a blocking message with a single dismissal
// action. Screens use it for validation failures only.
type DialogPresenter interface {
	Present(message string)
}

// ValidationError carries the single message shown for a rejected
// editor input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the editor's fields. The checks run in order and the
// last failing one wins the message: an empty title, then an empty
// subtitle, and, when requireAnnotation is set, a pending coordinate
// still at the (0,0) sentinel. Exactly one message is ever reported.
func Validate(title, subtitle string, latitude, longitude float64, requireAnnotation bool) error {
	var message string
	if title == "" {
		message = "title cannot be empty"
	} else if subtitle == "" {
		message = "subtitle cannot be empty"
	}

	if requireAnnotation {
		if latitude == 0.0 || longitude == 0.0 {
			message = "you have to annotate the map"
		}
	}

	if message != "" {
		return &ValidationError{Message: message}
	}
	return nil
}
