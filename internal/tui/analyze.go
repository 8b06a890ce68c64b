package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"codemanager-ui/internal/api"
	"codemanager-ui/internal/model"
	"codemanager-ui/internal/validate"
)

// pollInterval is the fixed spacing between job status checks.
const pollInterval = 2 * time.Second

// genericFailure is shown when the backend reports FAILURE without a message.
const genericFailure = "Analysis failed. Please check the repository and try again."

type analyzePhase int

const (
	phaseIdle analyzePhase = iota
	phaseSubmitting
	phasePolling
	phaseComplete
)

// submitResultMsg is sent when the clone submission returns. It carries
// the generation of the submission that produced it; a result for a
// cancelled and superseded submission arrives with a stale generation
// and is dropped.
type submitResultMsg struct {
	gen   int
	jobID string
	err   error
}

// pollTickMsg fires the next status check for the job it was scheduled for.
// Ticks carrying a job id that is no longer tracked are dropped, which is
// how cancellation and supersession work: a stale chain simply dies out.
type pollTickMsg struct {
	jobID string
}

// pollResultMsg delivers one status check result, tagged with its job id
// so responses for superseded jobs are ignored on arrival.
type pollResultMsg struct {
	jobID string
	state model.JobState
	err   error
}

// analysisDoneMsg signals a successful analysis to the root model.
// Emitted exactly once per job.
type analysisDoneMsg struct{}

const (
	fieldRepoURL = iota
	fieldBranch
	fieldPrivate
	fieldToken
	fieldSubmit
	fieldCount
)

// analyzeModel drives the submission form and the job polling loop.
type analyzeModel struct {
	svc api.Service

	phase     analyzePhase
	jobID     string
	submitGen int
	progress  string
	errMsg    string

	lastSubmission model.Submission
	hasSubmission  bool

	urlInput    textinput.Model
	branchInput textinput.Model
	tokenInput  textinput.Model
	isPrivate   bool
	focus       int

	spinner spinner.Model
	width   int
}

func newAnalyzeModel(svc api.Service, defaultToken string) analyzeModel {
	url := textinput.New()
	url.Placeholder = "https://github.com/owner/repo"
	url.CharLimit = 256
	url.Width = 50
	url.Focus()

	branch := textinput.New()
	branch.Placeholder = "main"
	branch.SetValue("main")
	branch.CharLimit = 128
	branch.Width = 30

	token := textinput.New()
	token.Placeholder = "access token"
	token.EchoMode = textinput.EchoPassword
	token.CharLimit = 128
	token.Width = 40
	if defaultToken != "" {
		token.SetValue(defaultToken)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return analyzeModel{
		svc:         svc,
		urlInput:    url,
		branchInput: branch,
		tokenInput:  token,
		spinner:     sp,
	}
}

// busy reports whether a job is outstanding. New submissions are rejected
// while busy.
func (m analyzeModel) busy() bool {
	return m.phase == phaseSubmitting || m.phase == phasePolling
}

// formValid reports whether both form predicates hold.
func (m analyzeModel) formValid() bool {
	return validate.IsValidRepositoryURL(strings.TrimSpace(m.urlInput.Value())) &&
		validate.IsValidBranchName(strings.TrimSpace(m.branchInput.Value()))
}

// cancel drops the tracked job. Any tick or response still in flight for
// it will arrive with a stale job id and be discarded.
func (m analyzeModel) cancel() analyzeModel {
	m.jobID = ""
	if m.busy() {
		m.phase = phaseIdle
	}
	return m
}

func (m analyzeModel) update(msg tea.Msg) (analyzeModel, tea.Cmd) {
	switch msg := msg.(type) {

	case submitResultMsg:
		if m.phase != phaseSubmitting || msg.gen != m.submitGen {
			return m, nil
		}
		if msg.err != nil {
			m.phase = phaseIdle
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.phase = phasePolling
		m.jobID = msg.jobID
		m.progress = model.StatusPending.ProgressMessage()
		return m, pollTickCmd(msg.jobID)

	case pollTickMsg:
		if m.phase != phasePolling || msg.jobID != m.jobID {
			return m, nil
		}
		return m, pollStatusCmd(m.svc, msg.jobID)

	case pollResultMsg:
		if m.phase != phasePolling || msg.jobID != m.jobID {
			return m, nil
		}
		// Transport errors win over anything the body may have said:
		// they are detected first and end the job immediately.
		if msg.err != nil {
			m.phase = phaseIdle
			m.jobID = ""
			m.errMsg = msg.err.Error()
			return m, nil
		}
		switch msg.state.Status {
		case model.StatusSuccess:
			m.phase = phaseComplete
			m.jobID = ""
			m.progress = model.StatusSuccess.ProgressMessage()
			return m, func() tea.Msg { return analysisDoneMsg{} }
		case model.StatusFailure:
			m.phase = phaseIdle
			m.jobID = ""
			if msg.state.Error != "" {
				m.errMsg = msg.state.Error
			} else {
				m.errMsg = genericFailure
			}
			return m, nil
		default:
			m.progress = msg.state.Status.ProgressMessage()
			return m, pollTickCmd(m.jobID)
		}

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m analyzeModel) updateKey(msg tea.KeyMsg) (analyzeModel, tea.Cmd) {
	switch msg.String() {

	case "tab", "down":
		m = m.setFocus(m.nextField(1))
		return m, nil

	case "shift+tab", "up":
		m = m.setFocus(m.nextField(-1))
		return m, nil

	case "enter":
		if m.focus == fieldSubmit || m.focus == fieldPrivate {
			if m.focus == fieldPrivate {
				m.isPrivate = !m.isPrivate
				return m, nil
			}
			return m.trySubmit()
		}
		// Enter on a text field advances, enter on the last field submits.
		m = m.setFocus(m.nextField(1))
		return m, nil

	case " ":
		if m.focus == fieldPrivate {
			m.isPrivate = !m.isPrivate
			return m, nil
		}

	case "ctrl+r":
		// Retry re-invokes submit with the last-used submission.
		if m.phase == phaseIdle && m.errMsg != "" && m.hasSubmission {
			return m.submit(m.lastSubmission)
		}

	case "esc":
		if m.busy() {
			m = m.cancel()
			m.errMsg = ""
			m.progress = ""
			return m, nil
		}
	}

	return m.updateInputs(msg)
}

func (m analyzeModel) updateInputs(msg tea.Msg) (analyzeModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldRepoURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
	case fieldBranch:
		m.branchInput, cmd = m.branchInput.Update(msg)
	case fieldToken:
		m.tokenInput, cmd = m.tokenInput.Update(msg)
	}
	return m, cmd
}

// nextField steps the focus, skipping the token field while the private
// toggle is off.
func (m analyzeModel) nextField(dir int) int {
	f := m.focus
	for {
		f = (f + dir + fieldCount) % fieldCount
		if f == fieldToken && !m.isPrivate {
			continue
		}
		return f
	}
}

func (m analyzeModel) setFocus(f int) analyzeModel {
	m.focus = f
	m.urlInput.Blur()
	m.branchInput.Blur()
	m.tokenInput.Blur()
	switch f {
	case fieldRepoURL:
		m.urlInput.Focus()
	case fieldBranch:
		m.branchInput.Focus()
	case fieldToken:
		m.tokenInput.Focus()
	}
	return m
}

// trySubmit starts a submission when the form is valid and no job is
// outstanding; otherwise it is a no-op.
func (m analyzeModel) trySubmit() (analyzeModel, tea.Cmd) {
	if m.busy() || m.phase == phaseComplete || !m.formValid() {
		return m, nil
	}

	sub := model.Submission{
		RepoURL:   strings.TrimSpace(m.urlInput.Value()),
		Branch:    strings.TrimSpace(m.branchInput.Value()),
		IsPrivate: m.isPrivate,
		Token:     strings.TrimSpace(m.tokenInput.Value()),
	}
	return m.submit(sub)
}

func (m analyzeModel) submit(sub model.Submission) (analyzeModel, tea.Cmd) {
	m.lastSubmission = sub
	m.hasSubmission = true
	m.phase = phaseSubmitting
	m.submitGen++
	m.errMsg = ""
	m.progress = ""
	return m, tea.Batch(submitCmd(m.svc, sub, m.submitGen), m.spinner.Tick)
}

func submitCmd(svc api.Service, sub model.Submission, gen int) tea.Cmd {
	return func() tea.Msg {
		jobID, err := svc.SubmitClone(context.Background(), sub)
		if err != nil {
			return submitResultMsg{gen: gen, err: err}
		}
		return submitResultMsg{gen: gen, jobID: jobID}
	}
}

func pollTickCmd(jobID string) tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{jobID: jobID}
	})
}

func pollStatusCmd(svc api.Service, jobID string) tea.Cmd {
	return func() tea.Msg {
		state, err := svc.JobStatus(context.Background(), jobID)
		if err != nil {
			return pollResultMsg{jobID: jobID, err: err}
		}
		return pollResultMsg{jobID: jobID, state: state}
	}
}
