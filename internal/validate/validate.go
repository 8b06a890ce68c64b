package validate

import "regexp"

// repoURLPattern accepts GitHub repository URLs with or without scheme,
// e.g. "https://github.com/owner/repo" or "github.com/owner/repo/".
var repoURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?github\.com/[A-Za-z0-9-]+/[A-Za-z0-9-_.]+/?$`)

// IsValidRepositoryURL reports whether url looks like a GitHub repository URL.
func IsValidRepositoryURL(url string) bool {
	return repoURLPattern.MatchString(url)
}

// IsValidBranchName reports whether name is usable as a branch name.
// Any non-empty string is accepted; character-set policing is left to git.
func IsValidBranchName(name string) bool {
	return len(name) > 0
}
