package model

// Config represents the application configuration loaded from YAML.
type Config struct {
	APIBaseURL   string `yaml:"api_base_url"`
	GraphBaseURL string `yaml:"graph_base_url"`
	HistoryPath  string `yaml:"history_path"`
	SidebarWidth int    `yaml:"sidebar_width"`
	DefaultToken string `yaml:"-"`
}

// Submission holds the form values for one analysis attempt. It is
// immutable once handed to the submit command.
type Submission struct {
	RepoURL   string
	Branch    string
	IsPrivate bool
	Token     string
}

// PublicToken is the sentinel token sent for public repositories.
const PublicToken = "null"

// JobStatus is the backend-reported state of an analysis job.
// The values are exact wire strings, case-sensitive.
type JobStatus string

const (
	StatusPending JobStatus = "PENDING"
	StatusStarted JobStatus = "STARTED"
	StatusSuccess JobStatus = "SUCCESS"
	StatusFailure JobStatus = "FAILURE"
)

// Terminal reports whether no further status transition can occur.
func (s JobStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

// ProgressMessage returns the human-readable string shown for a status.
func (s JobStatus) ProgressMessage() string {
	switch s {
	case StatusPending:
		return "Job is pending."
	case StatusStarted:
		return "Job is in progress."
	case StatusSuccess:
		return "Analysis complete."
	case StatusFailure:
		return "Analysis failed."
	default:
		return "Job is in progress."
	}
}

// JobState is one poll result for a job.
type JobState struct {
	Status JobStatus
	Error  string // set only on FAILURE
}

// ChatMessage is a single turn in the conversation. The JSON tags are
// the persisted wire shape and must not change.
type ChatMessage struct {
	Text   string `json:"text"`
	IsUser bool   `json:"isUser"`
}

// NodeType discriminates documentation tree entries.
type NodeType string

const (
	NodeFile      NodeType = "file"
	NodeDirectory NodeType = "directory"
)

// DocNode is an entry in the documentation or architecture tree.
// Children is populated only for directories.
type DocNode struct {
	Name     string    `json:"name"`
	Type     NodeType  `json:"type"`
	Path     string    `json:"path"`
	Children []DocNode `json:"children,omitempty"`
}

// ContentKind selects which backend a file selection fetches from.
type ContentKind int

const (
	ContentMarkdown ContentKind = iota
	ContentDiagram
)

// ContentRequest identifies one content fetch. Results are applied only
// while the request still matches the current selection.
type ContentRequest struct {
	Kind     ContentKind
	Path     string
	Filename string // used for diagram requests
}

// TreeItem is a flattened, cursor-navigable row of the docs sidebar.
// Path is always populated, synthesized from ancestor names when the
// backend omits it.
type TreeItem struct {
	Name     string
	Path     string
	Type     NodeType
	Depth    int
	Expanded bool
}
