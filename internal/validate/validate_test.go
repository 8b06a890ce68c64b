package validate

import "testing"

func TestIsValidRepositoryURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"https URL", "https://github.com/foo/bar", true},
		{"http URL", "http://github.com/foo/bar", true},
		{"no scheme", "github.com/foo/bar", true},
		{"www prefix", "https://www.github.com/foo/bar", true},
		{"trailing slash", "http://github.com/foo/bar/", true},
		{"dots and underscores in repo", "github.com/foo/my_repo.go", true},
		{"hyphenated owner", "github.com/my-org/repo", true},
		{"missing repo", "github.com/foo", false},
		{"empty", "", false},
		{"wrong host", "https://gitlab.com/foo/bar", false},
		{"extra path segment", "github.com/foo/bar/tree/main", false},
		{"underscore in owner", "github.com/my_org/repo", false},
		{"whitespace", " github.com/foo/bar", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidRepositoryURL(tt.url); got != tt.want {
				t.Errorf("IsValidRepositoryURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestIsValidBranchName(t *testing.T) {
	tests := []struct {
		name   string
		branch string
		want   bool
	}{
		{"main", "main", true},
		{"slashed", "feature/foo", true},
		{"single char", "x", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidBranchName(tt.branch); got != tt.want {
				t.Errorf("IsValidBranchName(%q) = %v, want %v", tt.branch, got, tt.want)
			}
		})
	}
}
