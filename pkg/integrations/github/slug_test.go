package github

import "testing"

func TestRepoSlug(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"pull request", "https://github.com/versly/wsdoc/pull/80", "versly/wsdoc", true},
		{"compare link", "https://github.com/apache/maven/compare/maven-3.9.5...maven-3.9.6", "apache/maven", true},
		{"repo link", "https://github.com/apache/maven", "apache/maven", true},
		{"trailing slash", "https://github.com/apache/maven/", "apache/maven", true},
		{"double slashes", "https://github.com//apache//maven", "apache/maven", true},
		{"surrounding space", "  https://github.com/apache/maven  ", "apache/maven", true},
		{"query and fragment", "https://github.com/apache/maven?tab=readme#top", "apache/maven", true},
		{"other host", "https://gitlab.com/group/project/-/merge_requests/1", "group/project", true},
		{"host only", "https://github.com", "", false},
		{"one segment", "https://github.com/apache", "", false},
		{"empty", "", "", false},
		{"sentinel text", "A GitHub repository could not be found for the updated dependency.", "", false},
		{"bad escape", "https://github.com/%zz/repo", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RepoSlug(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("RepoSlug(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsWebLink(t *testing.T) {
	tests := []struct {
		raw, host string
		want      bool
	}{
		{"https://github.com/apache/maven/compare/a...b", "github.com", true},
		{"A GitHub repository could not be found for the updated dependency.", "github.com", false},
		{"https://ghe.example.com/a/b", "ghe.example.com", true},
		{"https://github.com/a/b", "", false},
		{"https://api.github.com/repos/apache/maven/tags", "github.com", false},
		{"https://github.company.com/apache/maven", "github.com", false},
		{"https://example.com/mirror/github.com/apache/maven", "github.com", false},
		{"github.com/apache/maven", "github.com", false},
		{"https://GitHub.com/apache/maven", "github.com", true},
		{"http://127.0.0.1:8080/apache/maven", "127.0.0.1:8080", true},
	}
	for _, tt := range tests {
		if got := IsWebLink(tt.raw, tt.host); got != tt.want {
			t.Errorf("IsWebLink(%q, %q) = %v, want %v", tt.raw, tt.host, got, tt.want)
		}
	}
}
