package chatbot

import "errors"

// ErrInvalidMessage is returned when the user message is missing or blank.
// Its text is surfaced verbatim in the HTTP error details.
var ErrInvalidMessage = errors.New("Message is required and must be a non-empty string.")
