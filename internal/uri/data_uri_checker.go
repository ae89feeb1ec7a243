package uri

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DataURICheckResult represents the result of validating a data URI
type DataURICheckResult struct {
	Valid            bool
	Error            *string
	MimeType         string // Detected mime type from content
	DeclaredMimeType string // Declared mime type in URI
	Data             []byte // Decoded payload, set when Valid
}

// DataURIChecker validates data URIs
type DataURIChecker interface {
	// Check validates that the data URI is well formed, declares an allowed
	// mime type and carries content whose magic numbers match the declaration
	Check(dataURI string) DataURICheckResult
}

type dataURIChecker struct {
	allowed []string
}

// NewDataURIChecker creates a checker accepting the given mime type prefixes,
// e.g. "image/" or "application/json"
func NewDataURIChecker(allowed ...string) DataURIChecker {
	return &dataURIChecker{allowed: allowed}
}

func (c *dataURIChecker) Check(dataURI string) DataURICheckResult {
	parsed, err := ParseDataURI(dataURI)
	if err != nil {
		return invalid(err.Error(), "", "")
	}

	if !c.isAllowed(parsed.MimeType) {
		return invalid(fmt.Sprintf("unsupported mime type: %s", parsed.MimeType), parsed.MimeType, "")
	}

	if len(parsed.DecodedData) == 0 {
		return invalid("invalid data URI: empty data", parsed.MimeType, "")
	}

	detected := mimetype.Detect(parsed.DecodedData).String()
	if !mimeTypesMatch(parsed.MimeType, detected) {
		return invalid(fmt.Sprintf("mime type mismatch: declared %s but detected %s", parsed.MimeType, detected), parsed.MimeType, detected)
	}

	return DataURICheckResult{
		Valid:            true,
		MimeType:         detected,
		DeclaredMimeType: parsed.MimeType,
		Data:             parsed.DecodedData,
	}
}

func (c *dataURIChecker) isAllowed(mimeType string) bool {
	for _, prefix := range c.allowed {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}

func invalid(msg, declared, detected string) DataURICheckResult {
	return DataURICheckResult{
		Valid:            false,
		Error:            &msg,
		DeclaredMimeType: declared,
		MimeType:         detected,
	}
}

// mimeTypesMatch compares mime types ignoring case and parameters;
// image/svg and image/svg+xml are equivalent
func mimeTypesMatch(declared, detected string) bool {
	declared = baseMimeType(declared)
	detected = baseMimeType(detected)

	if declared == detected {
		return true
	}

	return strings.HasPrefix(declared, "image/svg") && strings.HasPrefix(detected, "image/svg")
}

func baseMimeType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
