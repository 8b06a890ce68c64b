package api

import (
	"context"
	"fmt"

	"codemanager-ui/internal/model"
)

// Fake is a test double for Service that returns preset results and
// records every call.
type Fake struct {
	SubmitJobID string
	SubmitErr   error

	States   []model.JobState // consumed in order; last one repeats
	StateErr error

	ChatReply string
	ChatErr   error

	Tree    model.DocNode
	TreeErr error

	FileContent string
	FileErr     error

	Diagram    string
	DiagramErr error

	Calls []string

	pollCount int
}

func (f *Fake) record(format string, args ...any) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

// CallCount returns how many recorded calls start with prefix.
func (f *Fake) CallCount(prefix string) int {
	n := 0
	for _, c := range f.Calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (f *Fake) SubmitClone(_ context.Context, sub model.Submission) (string, error) {
	f.record("submit %s@%s", sub.RepoURL, sub.Branch)
	if f.SubmitErr != nil {
		return "", f.SubmitErr
	}
	return f.SubmitJobID, nil
}

func (f *Fake) JobStatus(_ context.Context, jobID string) (model.JobState, error) {
	f.record("poll %s", jobID)
	if f.StateErr != nil {
		return model.JobState{}, f.StateErr
	}
	if len(f.States) == 0 {
		return model.JobState{Status: model.StatusPending}, nil
	}
	i := f.pollCount
	if i >= len(f.States) {
		i = len(f.States) - 1
	}
	f.pollCount++
	return f.States[i], nil
}

func (f *Fake) Chat(_ context.Context, message string, history []model.ChatMessage) (string, error) {
	f.record("chat %q (history %d)", message, len(history))
	if f.ChatErr != nil {
		return "", f.ChatErr
	}
	return f.ChatReply, nil
}

func (f *Fake) DocTree(_ context.Context) (model.DocNode, error) {
	f.record("doctree")
	if f.TreeErr != nil {
		return model.DocNode{}, f.TreeErr
	}
	return f.Tree, nil
}

func (f *Fake) DocFile(_ context.Context, path string) (string, error) {
	f.record("docfile %s", path)
	if f.FileErr != nil {
		return "", f.FileErr
	}
	return f.FileContent, nil
}

func (f *Fake) Hierarchy(_ context.Context) (model.DocNode, error) {
	f.record("hierarchy")
	if f.TreeErr != nil {
		return model.DocNode{}, f.TreeErr
	}
	return f.Tree, nil
}

func (f *Fake) Mermaid(_ context.Context, path, filename string) (string, error) {
	f.record("mermaid %s/%s", path, filename)
	if f.DiagramErr != nil {
		return "", f.DiagramErr
	}
	return f.Diagram, nil
}
