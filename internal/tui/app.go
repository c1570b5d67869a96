package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keywarden/keywarden/internal/intercept"
	"github.com/keywarden/keywarden/internal/keybind"
	"github.com/keywarden/keywarden/internal/profile"
	"github.com/keywarden/keywarden/internal/recorder"
	"github.com/keywarden/keywarden/internal/settings"
	"github.com/keywarden/keywarden/internal/store"
	"github.com/keywarden/keywarden/internal/tui/panels"
	"github.com/keywarden/keywarden/internal/window"
)

// Deps wires the root model to the rest of the application. Window,
// Settings, Recorder, and Mailbox are required; the rest may be nil or
// empty and the corresponding feature degrades gracefully.
type Deps struct {
	Window       *window.Window
	Settings     *settings.Store
	Recorder     *recorder.Recorder
	Mailbox      *Mailbox
	Interceptors map[keybind.Action]*intercept.Interceptor
	Activity     store.Store              // session log; nil disables persistence
	Hook         func(store.Entry)        // notifier hook; nil disables
	Updates      <-chan settings.Snapshot // settings change feed
	Profiles     []profile.Profile
	ProfileDir   string
}

// Model is the root bubbletea model for the multi-panel keywarden TUI.
type Model struct {
	win      *window.Window
	st       *settings.Store
	rec      *recorder.Recorder
	mailbox  *Mailbox
	ics      map[keybind.Action]*intercept.Interceptor
	activity store.Store
	hook     func(store.Entry)
	updates  <-chan settings.Snapshot

	// Sub-panels
	bindingsPanel panels.BindingsPanel
	profilesPanel panels.ProfilesPanel
	terminalPanel panels.TerminalPanel
	activityPanel panels.ActivityPanel

	// Layout and focus
	layout Layout
	focus  FocusTarget
	theme  Theme
	width  int
	height int

	// Mode and counters
	mode        UIMode
	intercepted int
	lastEvent   string
	profileName string
	profileDir  string
	showHelp    bool

	// In-app settings changes notify through the same channel as external
	// file edits; this counter marks snapshots we caused ourselves so that
	// only genuine external reloads get logged as such.
	pendingSnapshots int

	// Time
	startedAt time.Time
	now       time.Time
}

// New creates the multi-panel TUI Model.
func New(deps Deps) Model {
	now := time.Now()
	snap := deps.Settings.Get()
	th := NewTheme(snap.Config.TUI.AccentColor)
	layout := Calculate(80, 24)

	bindW, bindH := innerDims(layout.Bindings)
	profW, profH := innerDims(layout.Profiles)
	termW, termH := innerDims(layout.Terminal)
	actW, actH := innerDims(layout.Activity)

	focus := FocusTerminal
	deps.Window.Focus(window.Element{ID: focus.ElementID()})

	return Model{
		win:           deps.Window,
		st:            deps.Settings,
		rec:           deps.Recorder,
		mailbox:       deps.Mailbox,
		ics:           deps.Interceptors,
		activity:      deps.Activity,
		hook:          deps.Hook,
		updates:       deps.Updates,
		bindingsPanel: panels.NewBindingsPanel(snap.Keymap, bindW, bindH),
		profilesPanel: panels.NewProfilesPanel(deps.Profiles, profW, profH),
		terminalPanel: panels.NewTerminalPanel(termW, termH),
		activityPanel: panels.NewActivityPanel(actW, actH),
		layout:        layout,
		focus:         focus,
		theme:         th,
		width:         80,
		height:        24,
		mode:          ModeNormal,
		profileDir:    deps.ProfileDir,
		startedAt:     now,
		now:           now,
	}
}

// Init returns the initial commands: settings update listener + clock ticker.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.updates != nil {
		cmds = append(cmds, waitForUpdate(m.updates))
	}
	return tea.Batch(cmds...)
}

// tickCmd schedules the next one-second clock tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForUpdate blocks on the settings snapshot channel.
func waitForUpdate(ch <-chan settings.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return updatesClosedMsg{}
		}
		return snapshotMsg(snap)
	}
}

// Update handles all incoming bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.now = time.Time(msg)
		if m.activity != nil {
			if s, err := m.activity.SessionSummary(); err == nil {
				m.activityPanel = m.activityPanel.SetSummary(s)
			}
		}
		return m, tickCmd()
	case snapshotMsg:
		return m.handleSnapshot(settings.Snapshot(msg))
	case updatesClosedMsg:
		return m, nil
	case panels.RecordRequestMsg:
		return m.handleRecordRequest(msg)
	case panels.ResetRequestMsg:
		return m.handleResetRequest(msg)
	case panels.ApplyProfileRequestMsg:
		return m.handleApplyProfile(msg)
	case panels.SaveProfileRequestMsg:
		return m.handleSaveProfile(msg)
	case profilesRefreshedMsg:
		m.profilesPanel = m.profilesPanel.SetProfiles(msg.Profiles)
		return m, nil
	}
	return m.delegateToFocused(msg)
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.layout = Calculate(msg.Width, msg.Height)
	if !m.layout.TooSmall {
		bindW, bindH := innerDims(m.layout.Bindings)
		profW, profH := innerDims(m.layout.Profiles)
		termW, termH := innerDims(m.layout.Terminal)
		actW, actH := innerDims(m.layout.Activity)
		m.bindingsPanel = m.bindingsPanel.SetSize(bindW, bindH)
		m.profilesPanel = m.profilesPanel.SetSize(profW, profH)
		m.terminalPanel = m.terminalPanel.SetSize(termW, termH)
		m.activityPanel = m.activityPanel.SetSize(actW, actH)
	}
	return m, nil
}

// handleKey routes every key press through the window dispatch before any
// default handling, so capture listeners (interceptors, the recorder) see it
// first and can suppress it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, globalKeys.Quit) {
			return m, tea.Quit
		}
		m.showHelp = false
		return m, nil
	}

	ev := keybind.EventFromString(msg.String())
	result := m.win.DispatchKey(ev)
	fired := m.drainMailbox()
	for _, action := range fired {
		m = m.recordEntry(store.Entry{
			Kind:   store.KindIntercepted,
			Action: action.String(),
			Combo:  ev.String(),
		})
		m.intercepted++
	}

	switch m.mode {
	case ModeRecording:
		return m.afterRecordingKey()
	case ModeConfirmClose:
		return m.afterConfirmKey(msg, result, fired)
	}

	if containsAction(fired, keybind.ActionClearBuffer) {
		m.terminalPanel = m.terminalPanel.ClearActive()
	}
	if result.DefaultPrevented {
		return m, nil
	}
	if m.focus == FocusProfiles && m.profilesPanel.InputActive() {
		// Text entry owns the keyboard; skip global keys and action matching.
		return m.delegateToFocused(msg)
	}
	return m.applyDefault(msg, ev)
}

// afterRecordingKey inspects the recorder after a dispatched key press while
// the recording overlay is up. The recorder's capture listener has already
// swallowed the event; a captured combo is committed immediately.
func (m Model) afterRecordingKey() (tea.Model, tea.Cmd) {
	switch m.rec.State() {
	case recorder.StateCaptured:
		action := m.rec.Action()
		captured := m.rec.Captured()
		conflicts := m.rec.Conflicts()

		var previous string
		if prev := m.st.Keymap().Lookup(action); prev != nil {
			previous = prev.String()
		}

		if err := m.commitCapture(); err != nil {
			m.lastEvent = err.Error()
			m.mode = ModeNormal
			return m, nil
		}
		m = m.recordEntry(store.Entry{
			Kind:     store.KindRebound,
			Action:   action.String(),
			Combo:    captured.String(),
			Previous: previous,
		})
		if len(conflicts) > 0 {
			m = m.recordEntry(store.Entry{
				Kind:      store.KindConflict,
				Action:    action.String(),
				Combo:     captured.String(),
				Conflicts: actionNames(conflicts),
			})
		}
		m.mode = ModeNormal
		return m, nil

	case recorder.StateIdle:
		// Escape cancelled the capture.
		m.lastEvent = "recording cancelled"
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}

// commitCapture persists the captured combo. The settings store marks the
// resulting snapshot as self-inflicted so it is not logged as a reload.
func (m *Model) commitCapture() error {
	m.pendingSnapshots++
	if err := m.rec.Commit(); err != nil {
		m.pendingSnapshots--
		return err
	}
	return nil
}

// afterConfirmKey handles key presses while the close-tab confirmation is
// up. The close-tab interceptor is active for the duration of the dialog:
// pressing the bound combo again confirms, same as 'y'.
func (m Model) afterConfirmKey(msg tea.KeyMsg, result window.DispatchResult, fired []keybind.Action) (tea.Model, tea.Cmd) {
	if containsAction(fired, keybind.ActionCloseTab) {
		return m.confirmClose()
	}
	if result.DefaultPrevented {
		return m, nil
	}
	switch msg.String() {
	case "y", "enter":
		return m.confirmClose()
	case "n", "esc":
		m.setCloseInterceptor(false)
		m.mode = ModeNormal
		m.lastEvent = "close cancelled"
		return m, nil
	}
	return m, nil
}

// confirmClose closes the active tab, or quits when it is the last one.
func (m Model) confirmClose() (tea.Model, tea.Cmd) {
	m.setCloseInterceptor(false)
	m.mode = ModeNormal
	if m.terminalPanel.Count() <= 1 {
		return m, tea.Quit
	}
	label := m.terminalPanel.ActiveLabel()
	m.terminalPanel = m.terminalPanel.CloseActive()
	m.lastEvent = fmt.Sprintf("closed %s", label)
	return m, nil
}

func (m *Model) setCloseInterceptor(active bool) {
	if it, ok := m.ics[keybind.ActionCloseTab]; ok {
		it.SetActive(active)
	}
}

// applyDefault applies the default behavior for a key press that no capture
// listener suppressed: global navigation first, then keymap-bound workspace
// actions, then the focused panel.
func (m Model) applyDefault(msg tea.KeyMsg, ev keybind.Event) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, globalKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, globalKeys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, globalKeys.NextPanel):
		return m.setFocus(m.focus.Next()), nil
	case key.Matches(msg, globalKeys.PrevPanel):
		return m.setFocus(m.focus.Prev()), nil
	case key.Matches(msg, globalKeys.Jump):
		targets := map[string]FocusTarget{
			"1": FocusBindings, "2": FocusProfiles, "3": FocusTerminal, "4": FocusActivity,
		}
		return m.setFocus(targets[msg.String()]), nil
	}

	km := m.st.Keymap()
	for _, action := range keybind.Actions() {
		if !keybind.Matches(ev, km.Lookup(action)) {
			continue
		}
		m = m.recordEntry(store.Entry{
			Kind:   store.KindPassed,
			Action: action.String(),
			Combo:  ev.String(),
		})
		return m.applyAction(action)
	}

	if m.focus == FocusTerminal && msg.Type == tea.KeyRunes {
		m.terminalPanel = m.terminalPanel.Echo(echoLine(msg.String()))
		return m, nil
	}
	return m.delegateToFocused(msg)
}

// applyAction performs the default behavior of a keymap-bound action.
func (m Model) applyAction(action keybind.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keybind.ActionCloseTab:
		if m.mode.CanTransitionTo(ModeConfirmClose) {
			m.mode = ModeConfirmClose
			m.setCloseInterceptor(true)
		}
	case keybind.ActionNewTab:
		m.terminalPanel = m.terminalPanel.NewTab()
	case keybind.ActionNextTab:
		m.terminalPanel = m.terminalPanel.NextTab()
	case keybind.ActionPrevTab:
		m.terminalPanel = m.terminalPanel.PrevTab()
	case keybind.ActionClearBuffer:
		m.terminalPanel = m.terminalPanel.ClearActive()
	}
	return m, nil
}

func (m Model) setFocus(focus FocusTarget) Model {
	m.focus = focus
	m.win.Focus(window.Element{ID: focus.ElementID()})
	return m
}

func (m Model) delegateToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusBindings:
		m.bindingsPanel, cmd = m.bindingsPanel.Update(msg)
	case FocusProfiles:
		m.profilesPanel, cmd = m.profilesPanel.Update(msg)
	case FocusTerminal:
		m.terminalPanel, cmd = m.terminalPanel.Update(msg)
	case FocusActivity:
		m.activityPanel, cmd = m.activityPanel.Update(msg)
	}
	return m, cmd
}

func (m Model) handleSnapshot(snap settings.Snapshot) (tea.Model, tea.Cmd) {
	m.bindingsPanel = m.bindingsPanel.SetKeymap(snap.Keymap)
	m.theme = NewTheme(snap.Config.TUI.AccentColor)
	if m.pendingSnapshots > 0 {
		m.pendingSnapshots--
	} else {
		m = m.recordEntry(store.Entry{Kind: store.KindReload})
	}
	return m, waitForUpdate(m.updates)
}

func (m Model) handleRecordRequest(msg panels.RecordRequestMsg) (tea.Model, tea.Cmd) {
	if !m.mode.CanTransitionTo(ModeRecording) {
		return m, nil
	}
	if err := m.rec.Arm(msg.Action); err != nil {
		m.lastEvent = err.Error()
		return m, nil
	}
	m.mode = ModeRecording
	return m, nil
}

func (m Model) handleResetRequest(msg panels.ResetRequestMsg) (tea.Model, tea.Cmd) {
	var previous string
	if prev := m.st.Keymap().Lookup(msg.Action); prev != nil {
		previous = prev.String()
	}

	m.pendingSnapshots++
	if err := m.st.ResetBinding(msg.Action); err != nil {
		m.pendingSnapshots--
		m.lastEvent = err.Error()
		return m, nil
	}

	var combo string
	if def := m.st.Keymap().Lookup(msg.Action); def != nil {
		combo = def.String()
	}
	m = m.recordEntry(store.Entry{
		Kind:     store.KindRebound,
		Action:   msg.Action.String(),
		Combo:    combo,
		Previous: previous,
		Detail:   "reset to default",
	})
	return m, nil
}

func (m Model) handleApplyProfile(msg panels.ApplyProfileRequestMsg) (tea.Model, tea.Cmd) {
	m.pendingSnapshots++
	if err := profile.Apply(m.st, msg.Profile); err != nil {
		m.pendingSnapshots--
		m.lastEvent = err.Error()
		return m, nil
	}
	m.profileName = msg.Profile.Name
	m = m.recordEntry(store.Entry{
		Kind:   store.KindReload,
		Detail: fmt.Sprintf("profile %s applied", msg.Profile.Name),
	})
	return m, nil
}

func (m Model) handleSaveProfile(msg panels.SaveProfileRequestMsg) (tea.Model, tea.Cmd) {
	if m.profileDir == "" {
		m.lastEvent = "no profile directory configured"
		return m, nil
	}
	bindings := m.st.Get().Config.Keybindings
	dir := m.profileDir
	name := msg.Name
	return m, func() tea.Msg {
		if _, err := profile.New(dir, name, bindings); err != nil {
			return profilesRefreshedMsg{Profiles: mustList(dir)}
		}
		return profilesRefreshedMsg{Profiles: mustList(dir)}
	}
}

// mustList lists profiles, falling back to the builtins on error.
func mustList(dir string) []profile.Profile {
	ps, err := profile.List(dir)
	if err != nil {
		return profile.Builtins()
	}
	return ps
}

// recordEntry appends an entry to the session log, feeds the notifier hook,
// and renders the entry into the activity panel.
func (m Model) recordEntry(entry store.Entry) Model {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if m.activity != nil {
		if err := m.activity.Append(entry); err != nil {
			m.lastEvent = err.Error()
		}
	}
	if m.hook != nil {
		m.hook(entry)
	}
	actW, _ := innerDims(m.layout.Activity)
	rendered := m.theme.RenderActivityLine(entry, actW)
	m.activityPanel = m.activityPanel.AppendLine(rendered, entry.Kind)
	m.lastEvent = lastEventText(entry)
	return m
}

// lastEventText produces the short plain-text summary shown in the footer.
func lastEventText(entry store.Entry) string {
	switch entry.Kind {
	case store.KindIntercepted:
		return fmt.Sprintf("%s intercepted (%s)", entry.Combo, entry.Action)
	case store.KindPassed:
		return fmt.Sprintf("%s → %s", entry.Combo, entry.Action)
	case store.KindRebound:
		return fmt.Sprintf("%s rebound to %s", entry.Action, entry.Combo)
	case store.KindConflict:
		return fmt.Sprintf("conflict on %s", entry.Combo)
	case store.KindReload:
		if entry.Detail != "" {
			return entry.Detail
		}
		return "settings reloaded"
	default:
		return entry.Detail
	}
}

func (m Model) drainMailbox() []keybind.Action {
	if m.mailbox == nil {
		return nil
	}
	return m.mailbox.Drain()
}

func containsAction(actions []keybind.Action, target keybind.Action) bool {
	for _, a := range actions {
		if a == target {
			return true
		}
	}
	return false
}

func actionNames(actions []keybind.Action) []string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return names
}

var echoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))

// echoLine formats a typed key for the demo terminal buffer.
func echoLine(key string) string {
	return echoStyle.Render("❯ " + key)
}

// View renders the full multi-panel TUI.
func (m Model) View() string {
	if m.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%dx%d).\nPlease resize to at least 80x24.", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Render(msg)
	}

	header := panels.RenderHeader(panels.HeaderProps{
		ConfigPath:  m.st.Path(),
		ProfileName: m.profileName,
		Tabs:        m.terminalPanel.Count(),
		Intercepted: m.intercepted,
		ModeSymbol:  m.mode.Symbol(),
		ModeLabel:   m.mode.Label(),
		Elapsed:     m.now.Sub(m.startedAt),
		Clock:       m.now,
	}, m.layout.Header.Width, m.theme.AccentHeaderStyle())

	var recordFor string
	if m.mode == ModeRecording {
		recordFor = m.rec.Action().String()
	}
	footer := panels.RenderFooter(panels.FooterProps{
		Focus:      m.focus.String(),
		LastEvent:  m.lastEvent,
		Recording:  m.mode == ModeRecording,
		RecordFor:  recordFor,
		Confirming: m.mode == ModeConfirmClose,
	}, m.layout.Footer.Width)

	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.renderHelp(), footer)
	}

	bindW, bindH := innerDims(m.layout.Bindings)
	profW, profH := innerDims(m.layout.Profiles)
	termW, termH := innerDims(m.layout.Terminal)
	actW, actH := innerDims(m.layout.Activity)

	sidebar := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.PanelBorderStyle(m.focus == FocusBindings).
			Width(bindW).Height(bindH).
			Render(m.bindingsPanel.View()),
		m.theme.PanelBorderStyle(m.focus == FocusProfiles).
			Width(profW).Height(profH).
			Render(m.profilesPanel.View()),
	)

	rightCol := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.PanelBorderStyle(m.focus == FocusTerminal).
			Width(termW).Height(termH).
			Render(m.terminalPanel.View()),
		m.theme.PanelBorderStyle(m.focus == FocusActivity).
			Width(actW).Height(actH).
			Render(m.activityPanel.View()),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, rightCol)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderHelp renders the full-body help screen listing global keys, the
// focused panel's keys, and the current workspace keybindings.
func (m Model) renderHelp() string {
	bodyH := m.height - 2
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	globals := make([]string, 0, len(globalKeys.bindings()))
	for _, b := range globalKeys.bindings() {
		h := b.Help()
		globals = append(globals, h.Key+":"+h.Desc)
	}
	lines := []string{
		m.theme.rebindStyle.Render("keywarden keys"),
		"",
		dim.Render("global:   ") + strings.Join(globals, "  "),
	}
	for _, focus := range []FocusTarget{FocusBindings, FocusProfiles, FocusTerminal, FocusActivity} {
		lines = append(lines, dim.Render(fmt.Sprintf("%-10s", focus.String()+":"))+strings.Join(PanelKeys(focus), " "))
	}
	lines = append(lines, "", dim.Render("workspace actions:"))
	km := m.st.Keymap()
	for _, action := range keybind.Actions() {
		combo := "unbound"
		if c := km.Lookup(action); c != nil {
			combo = c.String()
		}
		lines = append(lines, fmt.Sprintf("  %-14s %s", action.String(), combo))
	}
	lines = append(lines, "", dim.Render("press any key to close"))

	return lipgloss.NewStyle().
		Width(m.width).Height(bodyH).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// innerDims returns the content dimensions for a panel rect accounting for
// the 1-character border on each side (2 total per dimension).
func innerDims(r Rect) (w, h int) {
	w = r.Width - 2
	if w < 1 {
		w = 1
	}
	h = r.Height - 2
	if h < 1 {
		h = 1
	}
	return
}
