package labels

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   Label
		wantOK bool
	}{
		{
			name:   "compiler",
			text:   "[ERROR] Failed to execute goal org.apache.maven.plugins:maven-compiler-plugin:3.11.0:compile",
			want:   LabelBreakingAPI,
			wantOK: true,
		},
		{
			name:   "dependency lock",
			text:   "[ERROR] Failed to execute goal se.vandmo:dependency-lock-maven-plugin:1.0:check",
			want:   LabelVersionMismatch,
			wantOK: true,
		},
		{
			name:   "enforcer",
			text:   "[WARNING] Rule 0: org.apache.maven.enforcer.rules.dependency.RequireUpperBoundDeps failed",
			want:   LabelVersionMismatch,
			wantOK: true,
		},
		{
			name:   "enforcer summary",
			text:   "[ERROR] Some Enforcer rules have failed. Look above for specific messages",
			want:   LabelVersionMismatch,
			wantOK: true,
		},
		{
			name:   "compiler wins over jenkins",
			text:   "requires Jenkins 2.361\nFailed to execute goal org.apache.maven.plugins:maven-compiler-plugin",
			want:   LabelBreakingAPI,
			wantOK: true,
		},
		{
			name: "jenkins",
			text: "[ERROR] plugin requires Jenkins 2.401 or later",
		},
		{
			name:   "other",
			text:   "[ERROR] Tests run: 3, Failures: 1",
			want:   LabelOther,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.text)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Classify() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractFailure(t *testing.T) {
	log := strings.Join([]string{
		"[INFO] Scanning for projects...",
		"[INFO] Building demo 1.0",
		"  [INFO] BUILD FAILURE  ",
		"[INFO] ------------------------------------------------------------------------",
		"\t[ERROR] Failed to execute goal   ",
		"",
	}, "\n")

	got, err := ExtractFailure(strings.NewReader(log))
	if err != nil {
		t.Fatalf("ExtractFailure() error = %v", err)
	}
	want := "[INFO] BUILD FAILURE\n[INFO] ------------------------------------------------------------------------\n[ERROR] Failed to execute goal"
	if got != want {
		t.Errorf("ExtractFailure() = %q, want %q", got, want)
	}
}

func TestExtractFailureNone(t *testing.T) {
	got, err := ExtractFailure(strings.NewReader("[INFO] BUILD SUCCESS\n"))
	if err != nil {
		t.Fatalf("ExtractFailure() error = %v", err)
	}
	if got != "" {
		t.Errorf("ExtractFailure() = %q, want empty", got)
	}
}
