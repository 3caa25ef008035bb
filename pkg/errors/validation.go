package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// commitHashRegex matches abbreviated or full git object names.
var commitHashRegex = regexp.MustCompile(`^[0-9a-fA-F]{7,64}$`)

// ValidateCommitHash validates a breaking-commit identifier before it is used
// to build a file name (e.g. "<commit>.json" or "<commit>.log").
func ValidateCommitHash(commit string) error {
	if commit == "" {
		return New(ErrCodeInvalidRecord, "breaking commit cannot be empty")
	}
	if !commitHashRegex.MatchString(commit) {
		return New(ErrCodeInvalidRecord, "invalid breaking commit: %q", commit)
	}
	return nil
}

// ValidateCoordinate validates one half of a Maven coordinate (groupId or
// artifactId). It rejects names that would escape the repository layout
// when turned into a path.
func ValidateCoordinate(part string) error {
	if part == "" {
		return New(ErrCodeInvalidRecord, "maven coordinate cannot be empty")
	}

	if len(part) > 256 {
		return New(ErrCodeInvalidRecord, "maven coordinate too long (max 256 characters)")
	}

	for _, r := range part {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidRecord, "maven coordinate contains invalid characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(part, pattern) {
			return New(ErrCodeInvalidRecord, "maven coordinate contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidatePath validates a directory or file path taken from configuration.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https) and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}

	return nil
}
