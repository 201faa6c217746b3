package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// IsValidBusinessDate accepts a calendar date, optionally carrying the
// legacy "-05:00" business-day suffix.
func IsValidBusinessDate(dateStr string) bool {
	trimmed := strings.TrimSuffix(dateStr, "-05:00")
	_, err := time.Parse("2006-01-02", trimmed)
	return err == nil
}

// Site ids are short numeric codes assigned by the POS.
func IsValidSiteID(siteID string) bool {
	return len(siteID) >= 3 && len(siteID) <= 6 && IsNumeric(siteID)
}

// Employee ids are numeric in both upstream systems.
func IsValidEmployeeID(employeeID string) bool {
	return IsNumeric(employeeID)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
