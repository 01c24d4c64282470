// Package validation contains small helpers for pointer fields and time
// formatting shared by the bridge marshalling code.
package validation

import "time"

func StringPtr(s string) *string {
	return &s
}

// StringPtrIfNotEmpty returns a pointer to the string if not empty, otherwise nil.
func StringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func BoolPtr(b bool) *bool {
	return &b
}

// GetStringOrEmpty returns the string value or an empty string if nil.
func GetStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetBoolOrFalse returns the bool value or false if nil.
func GetBoolOrFalse(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}

// GetTimeOrNow returns the time value in UTC or the current UTC time if nil.
func GetTimeOrNow(t *time.Time) time.Time {
	if t == nil {
		return time.Now().UTC()
	}
	return t.UTC()
}

// FormatTimeToString renders a time in the wire format used by the API.
func FormatTimeToString(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtrToString renders an optional time, empty string when nil.
func FormatTimePtrToString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
