package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"travelrag/internal/domain"
	"travelrag/internal/pipeline"
)

// Assistant is the TUI-facing subset of the pipeline.
type Assistant interface {
	Respond(ctx context.Context, query string) (pipeline.Result, error)
}

// Model is the Bubble Tea model for the travel assistant.
type Model struct {
	assistant Assistant
	input     textinput.Model
	viewport  viewport.Model
	result    *pipeline.Result
	overview  string
	status    string
	cursor    int
	ready     bool
	waiting   bool
	lastQuery string
}

// New creates a new TUI model instance. The overview line summarizes the
// loaded corpus.
func New(assistant Assistant, overview string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Where do you want to go?"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{assistant: assistant, input: ti, viewport: vp, overview: overview, status: "Corpus loaded. Ask away."}
}

type responseMsg struct {
	result pipeline.Result
	err    error
}

func (m Model) ask(query string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.assistant.Respond(context.Background(), query)
		return responseMsg{result: res, err: err}
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and response events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // header + overview
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderContent())
		return m, nil
	case responseMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			m.result = nil
		} else {
			m.status = fmt.Sprintf("Itinerary for %q", m.lastQuery)
			res := msg.result
			m.result = &res
			m.cursor = 0
		}
		m.viewport.SetContent(m.renderContent())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.waiting {
				m.waiting = true
				m.lastQuery = q
				m.status = "Planning your trip..."
				return m, m.ask(q)
			}
		case "down":
			if m.result != nil && len(m.result.Matches) > 0 {
				m.cursor = (m.cursor + 1) % len(m.result.Matches)
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
		case "up":
			if m.result != nil && len(m.result.Matches) > 0 {
				m.cursor = (m.cursor - 1 + len(m.result.Matches)) % len(m.result.Matches)
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Travel Assistant")
	overview := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.overview)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + overview + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderContent() string {
	if m.result == nil {
		return "No itinerary yet."
	}
	var sb strings.Builder
	sb.WriteString(m.result.Response)
	if intent := renderIntent(m.result.Intent); intent != "" {
		sb.WriteString("\n\n")
		sb.WriteString(intentStyle.Render("Detected: " + intent))
	}
	if len(m.result.Matches) > 0 {
		match := m.result.Matches[m.cursor]
		title := fmt.Sprintf("Source %d/%d  score=%.3f", m.cursor+1, len(m.result.Matches), match.Score)
		sb.WriteString("\n\n")
		sb.WriteString(title)
		sb.WriteString("\n")
		sb.WriteString(highlightBestSentence(string(match.Document), m.lastQuery))
	}
	return sb.String()
}

func renderIntent(intent domain.QueryIntent) string {
	var parts []string
	if intent.Origin != nil {
		parts = append(parts, "from "+*intent.Origin)
	}
	if intent.Destination != nil {
		parts = append(parts, "to "+*intent.Destination)
	}
	if intent.Cuisine != nil {
		parts = append(parts, *intent.Cuisine+" cuisine")
	}
	if intent.Budget != nil {
		parts = append(parts, fmt.Sprintf("$%d budget", *intent.Budget))
	}
	if intent.Duration != nil {
		parts = append(parts, fmt.Sprintf("%d days", *intent.Duration))
	}
	if len(intent.Activities) > 0 {
		parts = append(parts, strings.Join(intent.Activities, ", "))
	}
	return strings.Join(parts, " | ")
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	intentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	unicodeWordRe  = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
	sentenceRe     = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx := 0
	bestScore := -1
	for i, s := range sentences {
		score := tokenOverlapScore(qTokens, s)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	for i := range sentences {
		sent := strings.TrimSpace(sentences[i])
		if i == bestIdx {
			sentences[i] = highlightStyle.Render(sent)
		} else {
			sentences[i] = sent
		}
	}
	return strings.Join(sentences, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	tokens := unicodeWordRe.FindAllString(strings.ToLower(sentence), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
