package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/recall-labs/recall-cli/internal/adapters/driving/tui/components/chatlog"
	"github.com/recall-labs/recall-cli/internal/adapters/driving/tui/components/input"
	"github.com/recall-labs/recall-cli/internal/adapters/driving/tui/components/status"
	"github.com/recall-labs/recall-cli/internal/adapters/driving/tui/keymap"
	"github.com/recall-labs/recall-cli/internal/adapters/driving/tui/messages"
	"github.com/recall-labs/recall-cli/internal/adapters/driving/tui/styles"
	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// historyPreload is how many past exchanges are shown at startup.
const historyPreload = 20

// App is the chat application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// ownerID scopes every question to one owner.
	ownerID string

	// styles holds the UI styles.
	styles *styles.Styles

	// keys holds the keybindings.
	keys *keymap.KeyMap

	// input is the question entry field.
	input *input.QuestionInput

	// log is the scrolling conversation transcript.
	log *chatlog.Log

	// statusBar shows pipeline progress and hints.
	statusBar *status.Bar

	// thinking is true while a question is in flight.
	thinking bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat application with the given ports.
func NewApp(ports *Ports, ownerID string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if ownerID == "" {
		ownerID = "default"
	}

	s := styles.DefaultStyles()

	return &App{
		ports:     ports,
		ctx:       context.Background(),
		ownerID:   ownerID,
		styles:    s,
		keys:      keymap.DefaultKeyMap(),
		input:     input.NewQuestionInput(s),
		log:       chatlog.NewLog(s),
		statusBar: status.NewBar(s, nil),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("recall - Document Q&A"),
		a.input.Init(),
	}
	if a.ports.History != nil {
		cmds = append(cmds, a.loadHistoryCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case messages.AskCompleted:
		a.thinking = false
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			a.log.Append(chatlog.Entry{Question: msg.Question, Err: msg.Err})
			return a, nil
		}
		a.err = nil
		a.statusBar.Clear()
		a.log.Append(chatlog.Entry{
			Question:   msg.Question,
			Answer:     msg.Answer.Text,
			References: msg.Answer.References,
		})
		return a, nil

	case messages.PhaseChanged:
		a.statusBar.SetPhase(msg.Phase)
		return a, nil

	case messages.HistoryLoaded:
		if msg.Err != nil {
			// History is best effort; start with an empty transcript.
			return a, nil
		}
		a.log.SetEntries(historyEntries(msg.Interactions))
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward remaining messages (cursor blink etc.) to the input.
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// updateKey handles keyboard input.
func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, a.keys.Quit) {
		return a, tea.Quit
	}
	if keymap.Matches(keyStr, a.keys.Cancel) {
		return a, tea.Quit
	}
	if keyStr == "q" && a.input.Value() == "" {
		return a, tea.Quit
	}

	if keymap.Matches(keyStr, a.keys.Up) || keymap.Matches(keyStr, a.keys.Down) {
		var cmd tea.Cmd
		a.log, cmd = a.log.Update(msg)
		return a, cmd
	}

	if keymap.Matches(keyStr, a.keys.Submit) {
		question := strings.TrimSpace(a.input.Value())
		if question == "" || a.thinking {
			return a, nil
		}
		a.input.Reset()
		a.thinking = true
		a.statusBar.SetState(status.StateThinking)
		a.statusBar.SetPhase("")
		return a, a.askCmd(question)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("recall chat"))
	b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  owner: %s", a.ownerID)))
	b.WriteString("\n\n")
	b.WriteString(a.log.View())
	b.WriteString("\n")
	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(a.statusBar.View())
	return b.String()
}

// askCmd runs the question pipeline off the UI goroutine.
func (a *App) askCmd(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.ports.Ask.Ask(a.ctx, a.ownerID, question)
		return messages.AskCompleted{Question: question, Answer: answer, Err: err}
	}
}

// loadHistoryCmd loads recent exchanges into the transcript.
func (a *App) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		interactions, err := a.ports.History.History(a.ctx, a.ownerID, historyPreload)
		return messages.HistoryLoaded{Interactions: interactions, Err: err}
	}
}

// historyEntries converts newest-first interactions into an
// oldest-first transcript.
func historyEntries(interactions []domain.Interaction) []chatlog.Entry {
	entries := make([]chatlog.Entry, 0, len(interactions))
	for i := len(interactions) - 1; i >= 0; i-- {
		entries = append(entries, chatlog.Entry{
			Question:   interactions[i].Question,
			Answer:     interactions[i].Answer,
			References: interactions[i].References,
		})
	}
	return entries
}

// Run starts the chat application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// OwnerID returns the owner the session is scoped to.
func (a *App) OwnerID() string {
	return a.ownerID
}

// Thinking returns whether a question is in flight.
func (a *App) Thinking() bool {
	return a.thinking
}

// Entries returns the current transcript.
func (a *App) Entries() []chatlog.Entry {
	return a.log.Entries()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.input.SetWidth(width)
	a.statusBar.SetWidth(width)

	logHeight := height - 6
	if logHeight < 3 {
		logHeight = 3
	}
	a.log.SetDimensions(width, logHeight)
}
