// Package api is the HTTP client for the CodeManager backend services:
// the analysis/chat service and the architecture graph service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codemanager-ui/internal/model"
)

// ErrMissingJobID is returned when a clone submission is accepted but the
// response carries no job identifier.
var ErrMissingJobID = errors.New("submission accepted but no job id in response")

// Service is the backend surface the views depend on. The concrete
// implementation is Client; tests use Fake.
type Service interface {
	SubmitClone(ctx context.Context, sub model.Submission) (string, error)
	JobStatus(ctx context.Context, jobID string) (model.JobState, error)
	Chat(ctx context.Context, message string, history []model.ChatMessage) (string, error)
	DocTree(ctx context.Context) (model.DocNode, error)
	DocFile(ctx context.Context, path string) (string, error)
	Hierarchy(ctx context.Context) (model.DocNode, error)
	Mermaid(ctx context.Context, path, filename string) (string, error)
}

// Client talks to the two backend base URLs over plain HTTP/JSON.
type Client struct {
	apiBase    string
	graphBase  string
	httpClient *http.Client
}

func NewClient(apiBase, graphBase string) *Client {
	return &Client{
		apiBase:   strings.TrimSuffix(apiBase, "/"),
		graphBase: strings.TrimSuffix(graphBase, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type cloneRequest struct {
	RepoURL string `json:"repo_url"`
	Branch  string `json:"branch"`
	Token   string `json:"token"`
}

type cloneResponse struct {
	JobID string `json:"job_id"`
}

// SubmitClone enqueues an analysis job and returns its id.
func (c *Client) SubmitClone(ctx context.Context, sub model.Submission) (string, error) {
	token := sub.Token
	if !sub.IsPrivate {
		token = model.PublicToken
	}

	var resp cloneResponse
	err := c.postJSON(ctx, c.apiBase+"/api/clone", cloneRequest{
		RepoURL: sub.RepoURL,
		Branch:  sub.Branch,
		Token:   token,
	}, &resp)
	if err != nil {
		return "", err
	}

	if resp.JobID == "" {
		return "", ErrMissingJobID
	}
	return resp.JobID, nil
}

type jobStatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// JobStatus performs a single status query for a job.
func (c *Client) JobStatus(ctx context.Context, jobID string) (model.JobState, error) {
	var resp jobStatusResponse
	if err := c.getJSON(ctx, c.apiBase+"/api/job/"+url.PathEscape(jobID), &resp); err != nil {
		return model.JobState{}, err
	}
	return model.JobState{
		Status: model.JobStatus(resp.Status),
		Error:  resp.Error,
	}, nil
}

type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message string     `json:"message"`
	History []chatTurn `json:"history"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Chat sends a message plus the prior role-tagged history and returns the
// assistant's reply.
func (c *Client) Chat(ctx context.Context, message string, history []model.ChatMessage) (string, error) {
	turns := make([]chatTurn, 0, len(history))
	for _, msg := range history {
		role := "assistant"
		if msg.IsUser {
			role = "user"
		}
		turns = append(turns, chatTurn{Role: role, Content: msg.Text})
	}

	var resp chatResponse
	err := c.postJSON(ctx, c.apiBase+"/api/chat", chatRequest{
		Message: message,
		History: turns,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}

// DocTree fetches the documentation file tree.
func (c *Client) DocTree(ctx context.Context) (model.DocNode, error) {
	var root model.DocNode
	if err := c.getJSON(ctx, c.apiBase+"/api/documentation/tree", &root); err != nil {
		return model.DocNode{}, err
	}
	return root, nil
}

// DocFile fetches the raw Markdown for a documentation file.
func (c *Client) DocFile(ctx context.Context, path string) (string, error) {
	return c.getText(ctx, c.apiBase+"/api/documentation/"+escapePath(path))
}

type hierarchyResponse struct {
	Status    string        `json:"status"`
	Message   string        `json:"message"`
	Hierarchy model.DocNode `json:"hierarchy"`
}

// Hierarchy fetches the architecture tree from the graph service.
func (c *Client) Hierarchy(ctx context.Context) (model.DocNode, error) {
	var resp hierarchyResponse
	if err := c.getJSON(ctx, c.graphBase+"/hierarchy", &resp); err != nil {
		return model.DocNode{}, err
	}
	if resp.Status == "error" {
		return model.DocNode{}, fmt.Errorf("graph service: %s", resp.Message)
	}
	return resp.Hierarchy, nil
}

type mermaidRequest struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

type mermaidResponse struct {
	MermaidCode string `json:"mermaid_code"`
}

// Mermaid fetches the diagram description for a source file.
func (c *Client) Mermaid(ctx context.Context, path, filename string) (string, error) {
	var resp mermaidResponse
	err := c.postJSON(ctx, c.graphBase+"/mermaid", mermaidRequest{
		Path:     path,
		Filename: filename,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.MermaidCode, nil
}

func (c *Client) postJSON(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) getText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(data), nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("backend error (status %d)", resp.StatusCode)
	}
	return fmt.Errorf("backend error (status %d): %s", resp.StatusCode, msg)
}

// escapePath escapes a slash-separated tree path segment by segment so the
// path structure survives in the request URL.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
