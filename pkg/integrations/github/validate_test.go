package github

import "testing"

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		slug      string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"apache/maven", "apache", "maven", false},
		{"FasterXML/jackson-core", "FasterXML", "jackson-core", false},
		{"spring-projects/spring.io", "spring-projects", "spring.io", false},

		{"", "", "", true},
		{"apache", "", "", true},
		{"-bad/repo", "", "", true},
		{"owner/", "", "", true},
		{"owner/..", "", "", true},
		{"owner/repo/extra", "", "", true},
		{"own er/repo", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			owner, repo, err := ParseRepoRef(tt.slug)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRepoRef(%q) error = %v, wantErr %v", tt.slug, err, tt.wantErr)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("ParseRepoRef(%q) = (%q, %q), want (%q, %q)", tt.slug, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}
