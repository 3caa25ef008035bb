package labels

import (
	"bufio"
	"io"
	"strings"
)

// Label is a failure category.
type Label string

// Failure categories offered to annotators.
const (
	LabelJDKUpgrade      Label = "JDK_UPGRADE"
	LabelBreakingAPI     Label = "DEPENDENCY_BREAKING_API_CHANGE"
	LabelVersionMismatch Label = "DEPENDENCY_VERSION_MISMATCH"
	LabelOther           Label = "OTHER"
)

// Labels lists every category in display order.
var Labels = []Label{LabelJDKUpgrade, LabelBreakingAPI, LabelVersionMismatch, LabelOther}

// FailureMarker starts the part of a build log that is kept.
const FailureMarker = "[INFO] BUILD FAILURE"

type rule struct {
	needle string
	label  Label
}

// Rules are tried in order; the first match wins.
var rules = []rule{
	{"Failed to execute goal org.apache.maven.plugins:maven-compiler-plugin", LabelBreakingAPI},
	{"Failed to execute goal se.vandmo:dependency-lock-maven-plugin", LabelVersionMismatch},
	{"Some Enforcer rules have failed", LabelVersionMismatch},
	{"org.apache.maven.enforcer.rules", LabelVersionMismatch},
}

// jenkinsMarker identifies failures caused by the Jenkins core version of
// a plugin build. They are dropped from the dataset.
const jenkinsMarker = "requires Jenkins"

// Classify suggests a label for a failure excerpt. It returns false when
// the excerpt should not be labelled at all.
func Classify(text string) (Label, bool) {
	for _, r := range rules {
		if strings.Contains(text, r.needle) {
			return r.label, true
		}
	}
	if strings.Contains(text, jenkinsMarker) {
		return "", false
	}
	return LabelOther, true
}

// ExtractFailure returns the trimmed lines of a build log from the first
// line containing [FailureMarker] to the end, joined by "\n". It returns
// "" when the log has no failure.
func ExtractFailure(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var lines []string
	recording := false
	for sc.Scan() {
		line := sc.Text()
		if !recording && strings.Contains(line, FailureMarker) {
			recording = true
		}
		if recording {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
