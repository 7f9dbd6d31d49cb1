package dashclient

import "fmt"

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %v", e.Status, e.Message)
}

// ToastMessage is the text shown to the user for a failed request.
func (e *APIError) ToastMessage() string {
	return fmt.Sprintf("%d: %v", e.Status, e.Message)
}

// ValidationError is returned before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
