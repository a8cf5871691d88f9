package utils

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// PrintLogInfo logs the outcome of a handler call. The email pointer may be
// nil when the request failed before the body was parsed.
func PrintLogInfo(email *string, statusCode int, functionName string, err *error) {
	user := "Unknown"
	if email != nil {
		user = *email
	}

	event := log.Info()
	switch {
	case statusCode >= 500:
		event = log.Error()
	case statusCode >= 400:
		event = log.Warn()
	}

	if err != nil && *err != nil {
		event = event.Err(*err)
	}

	event.Msg(fmt.Sprintf("User: %s | Status: %s | Function: %s", user, ColorStatus(statusCode), functionName))
}
