package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Action names the command an error came from, which decides its wording.
type Action string

// Actions understood by Describe.
const (
	ActionRegister Action = "register"
	ActionLogin    Action = "login"
	ActionList     Action = "list"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// Describe returns the message shown to the user when action fails with err.
// taskID is only used by update and delete.
func Describe(err error, action Action, taskID int64) string {
	switch {
	case errors.Is(err, ErrNotLoggedIn):
		return "You must be logged in. Run 'task login'"
	case errors.Is(err, ErrNothingToUpdate):
		return "Nothing to update! Provide --status, --title, or --desc."
	case errors.Is(err, ErrUnreachable):
		return "Error: Could not connect to the API."
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}

	switch apiErr.StatusCode {
	case http.StatusBadRequest:
		switch action {
		case ActionRegister:
			return "Registration failed: " + apiErr.Message
		case ActionLogin:
			return "Login failed: " + apiErr.Message
		}
		if apiErr.Message != "" {
			return "Error: " + apiErr.Message
		}
	case http.StatusUnauthorized:
		if action == ActionLogin {
			return "Login failed: Invalid username or password"
		}
		return "Login failed or token expired. Please log in again."
	case http.StatusForbidden:
		if action == ActionUpdate || action == ActionDelete {
			return fmt.Sprintf("Error: You do not have permission to %s this task.", action)
		}
	case http.StatusNotFound:
		if action == ActionUpdate || action == ActionDelete {
			return fmt.Sprintf("Error: Task with ID %d not found.", taskID)
		}
	}

	return fmt.Sprintf("An error occurred: %d %s", apiErr.StatusCode, http.StatusText(apiErr.StatusCode))
}
