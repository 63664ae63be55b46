package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/lexiquest/lexiquest/internal/engine"
	"github.com/lexiquest/lexiquest/pkg/game"
)

const PlaceHolderText = "Pick a choice (A, B, C...) or describe what you do..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config        *ConsoleConfig
	client        *http.Client
	gameState     *game.GameState
	storyViewport viewport.Model
	metaViewport  viewport.Model
	textarea      textarea.Model
	ready         bool
	width         int
	height        int
	err           error
	loading       bool

	// Transcript of the play session, rebuilt on resize
	transcript []transcriptEntry

	// Setup modal state
	showSetupModal bool
	setupStep      int // 0 = genre, 1 = mode
	selectedGenre  int
	selectedMode   int

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type transcriptEntry struct {
	role string // "story", "player", "feedback", "error"
	text string
}

type gameStartedMsg struct {
	gameState *game.GameState
	err       error
}

type turnResultMsg struct {
	result *engine.Result
	err    error
}

type gameRewoundMsg struct {
	gameState *game.GameState
	err       error
}

type gameEndedMsg struct {
	gameState *game.GameState
	err       error
}

type progressTickMsg struct{}

var (
	storyPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	storyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	rewardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")). // gold
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

var modeLabels = []struct {
	mode  game.Mode
	label string
}{
	{game.ModeEvaluated, "Evaluated (answer reading questions to advance)"},
	{game.ModeFreeExploration, "Free Exploration (every choice moves the story)"},
}

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	storyVp := viewport.New(50, 20)
	storyVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:         cfg,
		client:         client,
		textarea:       ta,
		storyViewport:  storyVp,
		metaViewport:   metaVp,
		ready:          false,
		showSetupModal: true,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showSetupModal {
		return m.updateSetupModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.storyViewport, vpCmd = m.storyViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		m.writeStoryContent()
		if m.gameState != nil {
			m.metaViewport.SetContent(writeMetadata(m.gameState))
		}
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}
			if m.gameState.GameOver {
				m.appendEntry("error", "The adventure is over. Use /back to rewind or Ctrl+C to quit.")
				m.textarea.Reset()
				m.writeStoryContent()
				return m, nil
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0
			m.appendEntry("player", input)
			m.writeStoryContent()
			return m, tea.Batch(m.sendInput(input), progressTick())
		}

	case turnResultMsg:
		m.loading = false
		if msg.err != nil {
			m.appendEntry("error", msg.err.Error())
		} else {
			m.applyTurnResult(msg.result)
		}
		m.writeStoryContent()
		m.storyViewport.GotoBottom()
		if m.gameState != nil {
			m.metaViewport.SetContent(writeMetadata(m.gameState))
		}
		return m, nil

	case gameRewoundMsg:
		m.loading = false
		if msg.err != nil {
			m.appendEntry("error", msg.err.Error())
		} else {
			m.gameState = msg.gameState
			m.appendEntry("feedback", fmt.Sprintf("Rewound to turn %d. The story continues from there.", msg.gameState.Turn))
			if seg := msg.gameState.CurrentSegment(); seg != nil {
				m.appendSegment(seg)
			}
			m.metaViewport.SetContent(writeMetadata(m.gameState))
		}
		m.writeStoryContent()
		m.storyViewport.GotoBottom()
		return m, nil

	case gameEndedMsg:
		m.loading = false
		if msg.err != nil {
			m.appendEntry("error", msg.err.Error())
		} else {
			m.gameState = msg.gameState
			m.appendEntry("feedback", "You ended the adventure. Thanks for playing!")
			m.metaViewport.SetContent(writeMetadata(m.gameState))
		}
		m.writeStoryContent()
		m.storyViewport.GotoBottom()
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeStoryContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.storyViewport, vpCmd = m.storyViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resizePanels() {
	storyWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - storyWidth - 6

	m.storyViewport.Width = storyWidth - 2
	m.storyViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(storyWidth - 4)
}

// applyTurnResult folds one turn outcome into the transcript and the
// local copy of the game state.
func (m *ConsoleUI) applyTurnResult(res *engine.Result) {
	prevTurn := 0
	if m.gameState != nil {
		prevTurn = m.gameState.Turn
	}
	m.gameState = res.State

	if res.Feedback != "" {
		m.appendEntry("feedback", res.Feedback)
	}
	if res.Reward != nil {
		m.appendEntry("reward", fmt.Sprintf("%s %s +%d points!", res.Reward.Icon, res.Reward.Name, res.Reward.Points))
	}
	if res.Hint != "" {
		m.appendEntry("feedback", "Hint: "+res.Hint)
	}
	if !res.Correct && !res.Advanced && res.Hint == "" && res.Feedback == "" {
		m.appendEntry("feedback", "Not quite! Try again.")
	}

	if res.Completed {
		m.appendEntry("feedback", "THE END. What a reader you are! Press Ctrl+C to quit, or /back to revisit a turn.")
		return
	}
	if res.Advanced && res.State.Turn > prevTurn {
		if seg := res.State.CurrentSegment(); seg != nil {
			m.appendSegment(seg)
		}
	}
}

func (m *ConsoleUI) appendEntry(role, text string) {
	m.transcript = append(m.transcript, transcriptEntry{role: role, text: text})
}

// appendSegment records a story beat as one transcript entry. The text
// is kept unstyled here and formatted at render time so resizes rewrap.
func (m *ConsoleUI) appendSegment(seg *game.StorySegment) {
	m.transcript = append(m.transcript, transcriptEntry{role: "segment", text: renderSegmentText(seg)})
}

// renderSegmentText flattens a segment into displayable lines. Styles
// are applied per line prefix in writeStoryContent.
func renderSegmentText(seg *game.StorySegment) string {
	var b strings.Builder
	b.WriteString(seg.Text)
	b.WriteString("\n")
	if seg.Question != "" {
		b.WriteString("\nQ| " + seg.Question + "\n")
	}
	for _, c := range seg.Choices {
		b.WriteString("C| " + c.ID + ") " + c.Text + "\n")
	}
	if seg.WordChallenge != nil {
		b.WriteString("\nW| Word Challenge: " + seg.WordChallenge.Prompt + "\n")
		b.WriteString("W| Answer with /answer <word>\n")
	}
	return b.String()
}

// writeStoryContent rebuilds the story viewport from the transcript,
// wrapping for the current width.
func (m *ConsoleUI) writeStoryContent() {
	storyWidth := m.storyViewport.Width - 6
	if storyWidth < 20 {
		storyWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("LEXIQUEST") + "\n\n")
	content.WriteString("Read the story, make choices, and collect rewards!\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", storyWidth-6)) + "\n\n")

	for _, entry := range m.transcript {
		switch entry.role {
		case "segment":
			content.WriteString(formatSegmentEntry(entry.text, storyWidth) + "\n")
		case "player":
			content.WriteString(playerStyle.Render("You: ") + wordwrap.String(entry.text, storyWidth-6) + "\n\n")
		case "feedback":
			content.WriteString(questionStyle.Render(wordwrap.String(entry.text, storyWidth)) + "\n\n")
		case "reward":
			content.WriteString(rewardStyle.Render(entry.text) + "\n\n")
		case "error":
			content.WriteString(errorStyle.Render("Oops: "+wordwrap.String(entry.text, storyWidth-6)) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.storyViewport.SetContent(content.String())
	m.storyViewport.GotoBottom()
}

// formatSegmentEntry styles the prefixed lines produced by
// renderSegmentText: plain story text, Q| questions, C| choices,
// W| word challenge lines.
func formatSegmentEntry(text string, width int) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "Q| "):
			out = append(out, questionStyle.Render(wordwrap.String(strings.TrimPrefix(line, "Q| "), width)))
		case strings.HasPrefix(line, "C| "):
			out = append(out, choiceStyle.Render("  "+wordwrap.String(strings.TrimPrefix(line, "C| "), width-2)))
		case strings.HasPrefix(line, "W| "):
			out = append(out, rewardStyle.Render("  "+wordwrap.String(strings.TrimPrefix(line, "W| "), width-2)))
		default:
			out = append(out, storyStyle.Render(wordwrap.String(line, width)))
		}
	}
	return strings.Join(out, "\n")
}

func writeMetadata(gs *game.GameState) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("ADVENTURE") + "\n\n")

	content.WriteString("Session:\n")
	content.WriteString(gs.SessionID.String()[:8] + "...\n\n")

	content.WriteString(fmt.Sprintf("Genre: %s\nMode: %s\n\n", gs.Genre, gs.Mode))
	content.WriteString(fmt.Sprintf("Round: %d of %d\n", gs.CurrentRound, gs.SessionLimit))
	content.WriteString(fmt.Sprintf("Difficulty: %d\n\n", gs.Progress.Difficulty))

	content.WriteString(fmt.Sprintf("Points: %d\n", gs.Progress.TotalPoints()))
	if len(gs.Progress.Rewards) > 0 {
		content.WriteString("Rewards:\n")
		for _, r := range gs.Progress.Rewards {
			content.WriteString(fmt.Sprintf("%s %s\n", r.Icon, r.Name))
		}
	}
	content.WriteString("\n")

	if len(gs.Progress.WordsEncountered) > 0 {
		content.WriteString("Words discovered:\n")
		for _, w := range gs.Progress.WordsEncountered {
			content.WriteString("• " + w + "\n")
		}
		content.WriteString("\n")
	}

	if gs.GameOver {
		content.WriteString(rewardStyle.Render("Adventure complete!") + "\n\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /answer <word>\n")
	content.WriteString("• /back <turn>\n")
	content.WriteString("• /end\n")
	content.WriteString("• /help\n")
	content.WriteString("• Ctrl+C: Quit\n")

	return content.String()
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(strings.TrimSpace(input))
	cmd := strings.ToLower(fields[0])
	m.textarea.Reset()

	switch cmd {
	case "/help":
		m.appendEntry("feedback", `Commands:
/answer <word> - answer the current word challenge
/back <turn> - rewind the story to an earlier turn
/end - finish the adventure
Type a choice letter (A, B, C...) or describe what you do, then press Enter.`)
		m.writeStoryContent()
		return m, nil

	case "/answer":
		if len(fields) < 2 {
			m.appendEntry("error", "Usage: /answer <word>")
			m.writeStoryContent()
			return m, nil
		}
		answer := strings.Join(fields[1:], " ")
		m.loading = true
		m.progressTick = 0
		m.appendEntry("player", "Answer: "+answer)
		m.writeStoryContent()
		return m, tea.Batch(m.sendChallenge(answer), progressTick())

	case "/back":
		if len(fields) != 2 {
			m.appendEntry("error", "Usage: /back <turn>")
			m.writeStoryContent()
			return m, nil
		}
		var target int
		if _, err := fmt.Sscanf(fields[1], "%d", &target); err != nil {
			m.appendEntry("error", "Usage: /back <turn>")
			m.writeStoryContent()
			return m, nil
		}
		m.loading = true
		m.progressTick = 0
		m.writeStoryContent()
		return m, tea.Batch(m.rewind(target), progressTick())

	case "/end":
		m.loading = true
		m.progressTick = 0
		m.writeStoryContent()
		return m, tea.Batch(m.finish(), progressTick())

	default:
		m.appendEntry("error", "Unknown command. Try /help.")
		m.writeStoryContent()
		return m, nil
	}
}

// sendInput routes a line of player input: a bare choice letter goes to
// the choice endpoint, anything else is free text.
func (m ConsoleUI) sendInput(input string) tea.Cmd {
	gs := m.gameState
	return func() tea.Msg {
		if choiceID, ok := matchChoiceID(gs, input); ok {
			res, err := sendChoice(m.client, m.config.APIBaseURL, gs, choiceID)
			return turnResultMsg{res, err}
		}
		res, err := sendFreeText(m.client, m.config.APIBaseURL, gs, input)
		return turnResultMsg{res, err}
	}
}

func (m ConsoleUI) sendChallenge(answer string) tea.Cmd {
	gs := m.gameState
	return func() tea.Msg {
		res, err := sendChallengeAnswer(m.client, m.config.APIBaseURL, gs, answer)
		return turnResultMsg{res, err}
	}
}

func (m ConsoleUI) rewind(target int) tea.Cmd {
	gs := m.gameState
	return func() tea.Msg {
		rewound, err := sendBacktrack(m.client, m.config.APIBaseURL, gs, target)
		return gameRewoundMsg{rewound, err}
	}
}

func (m ConsoleUI) finish() tea.Cmd {
	gs := m.gameState
	return func() tea.Msg {
		ended, err := endGame(m.client, m.config.APIBaseURL, gs)
		return gameEndedMsg{ended, err}
	}
}

// matchChoiceID reports whether input is exactly one of the current
// segment's choice IDs.
func matchChoiceID(gs *game.GameState, input string) (string, bool) {
	seg := gs.CurrentSegment()
	if seg == nil {
		return "", false
	}
	candidate := strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(input), ")"))
	for _, c := range seg.Choices {
		if candidate == c.ID {
			return c.ID, true
		}
	}
	return "", false
}

func (m ConsoleUI) startGame() tea.Cmd {
	genre := string(game.Genres[m.selectedGenre])
	mode := string(modeLabels[m.selectedMode].mode)
	return func() tea.Msg {
		gs, err := startGame(m.client, m.config.APIBaseURL, genre, mode)
		return gameStartedMsg{gs, err}
	}
}

func (m ConsoleUI) updateSetupModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case gameStartedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.gameState = msg.gameState
		m.showSetupModal = false
		if m.width > 0 && m.height > 0 {
			m.resizePanels()
		}
		if seg := m.gameState.CurrentSegment(); seg != nil {
			m.appendSegment(seg)
		}
		m.writeStoryContent()
		m.metaViewport.SetContent(writeMetadata(m.gameState))
		m.textarea.Focus()
		m.ready = true
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.setupStep == 0 && m.selectedGenre > 0 {
				m.selectedGenre--
			} else if m.setupStep == 1 && m.selectedMode > 0 {
				m.selectedMode--
			}
		case tea.KeyDown:
			if m.setupStep == 0 && m.selectedGenre < len(game.Genres)-1 {
				m.selectedGenre++
			} else if m.setupStep == 1 && m.selectedMode < len(modeLabels)-1 {
				m.selectedMode++
			}
		case tea.KeyEnter:
			if m.setupStep == 0 {
				m.setupStep = 1
				return m, nil
			}
			m.loading = true
			return m, m.startGame()
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to leave your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderSetupModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	switch {
	case m.err != nil:
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to start the adventure: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")

	case m.loading:
		content.WriteString(modalTitleStyle.Render("Starting your adventure..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("The storyteller is setting the scene..."))

	case m.setupStep == 0:
		content.WriteString(modalTitleStyle.Render("Pick a World"))
		content.WriteString("\n\n")
		for i, g := range game.Genres {
			if i == m.selectedGenre {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", g)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", g)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))

	default:
		content.WriteString(modalTitleStyle.Render("Pick a Mode"))
		content.WriteString("\n\n")
		for i, ml := range modeLabels {
			if i == m.selectedMode {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", ml.label)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", ml.label)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to start, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(64).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showSetupModal {
		return m.renderSetupModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	storyWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - storyWidth - 6

	storyPanel := storyPanelStyle.Width(storyWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.storyViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", storyWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, storyPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.storyViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
