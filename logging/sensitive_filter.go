package logging

import (
	"regexp"
)

// RedactedPlaceholder replaces sensitive data in log output.
const RedactedPlaceholder = "[REDACTED]"

// Dropped URLs are often pre-signed storage links; their signatures and any
// embedded credentials must not reach the log file.
var sensitivePatterns = []*regexp.Regexp{
	// user:password@ in URLs
	regexp.MustCompile(`(?i)(://)[^/@\s:]+:[^/@\s]+@`),
	// signed-URL query parameters
	regexp.MustCompile(`(?i)([?&](?:x-amz-signature|x-amz-credential|x-amz-security-token|signature|sig|token|access_token|key)=)[^&#\s]+`),
}

// RedactSensitiveData returns value with credentials and URL signatures
// replaced by RedactedPlaceholder.
func RedactSensitiveData(value string) string {
	if value == "" {
		return value
	}
	result := sensitivePatterns[0].ReplaceAllString(value, "${1}"+RedactedPlaceholder+"@")
	result = sensitivePatterns[1].ReplaceAllString(result, "${1}"+RedactedPlaceholder)
	return result
}
