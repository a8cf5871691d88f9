package utils

import "fmt"

const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
)

func ColorText(text, color string) string {
	return color + text + Reset
}

// ColorStatus renders an HTTP status code with a severity color.
func ColorStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return ColorText(fmt.Sprintf("%d", statusCode), Green)
	case statusCode >= 400 && statusCode < 500:
		return ColorText(fmt.Sprintf("%d", statusCode), Yellow)
	case statusCode >= 500:
		return ColorText(fmt.Sprintf("%d", statusCode), Red)
	default:
		return fmt.Sprintf("%d", statusCode)
	}
}
