// Package tui is the terminal front end of the task board.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/client"
	"github.com/adanyl0v/taskboard/internal/models"
	"github.com/adanyl0v/taskboard/internal/taskform"
	"github.com/adanyl0v/taskboard/internal/tasklist"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeConfirmDelete
	modeForm
	modeHelp
	modeDetail
)

// API is what the TUI needs from the Task API besides listing, which
// goes through the engine. *client.Client satisfies it.
type API interface {
	taskform.API
	// Get returns client.ErrNotFound if the task no longer exists.
	Get(ctx context.Context, id string) (*models.Task, error)
}

// Option configures the TUI.
type Option func(*model)

func WithLogger(logger zerolog.Logger) Option {
	return func(m *model) {
		m.logger = logger
	}
}

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, engine *tasklist.Engine, api API, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	m := newModel(ctx, engine, api, opts...)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

type model struct {
	ctx    context.Context
	engine *tasklist.Engine
	api    API
	logger zerolog.Logger

	mode   mode
	cursor int
	// pageSize is the configured page size, restored when the compact
	// list is switched off.
	pageSize int
	compact  bool
	// pendingDelete is the task awaiting confirmation.
	pendingDelete *models.Task
	form          *formModel
	// detail is the task shown in modeDetail, as last fetched.
	detail *models.Task
}

type loadedMsg struct{ err error }

type deletedMsg struct {
	id  string
	err error
}

type savedMsg struct {
	created bool
	err     error
}

// fetchedMsg carries a fresh copy of one task, for the detail view or,
// when edit is set, for the edit form.
type fetchedMsg struct {
	id   string
	task *models.Task
	edit bool
	err  error
}

func newModel(ctx context.Context, engine *tasklist.Engine, api API, opts ...Option) *model {
	m := &model{
		ctx:      ctx,
		engine:   engine,
		api:      api,
		logger:   zerolog.Nop(),
		pageSize: engine.State().PageSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m *model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.engine.Load(m.ctx)}
	}
}

// deleteCmd runs after the user has answered yes.
func (m *model) deleteCmd(id string) tea.Cmd {
	confirmed := tasklist.ConfirmFunc(func(string) bool { return true })
	return func() tea.Msg {
		return deletedMsg{id: id, err: m.engine.Delete(m.ctx, id, confirmed)}
	}
}

func (m *model) fetchCmd(id string, edit bool) tea.Cmd {
	return func() tea.Msg {
		t, err := m.api.Get(m.ctx, id)
		if err == nil && t == nil {
			err = client.ErrNotFound
		}
		return fetchedMsg{id: id, task: t, edit: edit, err: err}
	}
}

func (m *model) saveCmd(values taskform.Values) tea.Cmd {
	created := !values.IsEdit()
	return func() tea.Msg {
		_, err := values.Submit(m.ctx, m.api, m.engine.MutationOccurred)
		return savedMsg{created: created, err: err}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.clampCursor()
		return m, nil
	case deletedMsg:
		if msg.err != nil {
			m.logger.Debug().Err(msg.err).Str("task_id", msg.id).Msg("delete finished with error")
		}
		m.clampCursor()
		return m, nil
	case savedMsg:
		return m.handleSaved(msg)
	case fetchedMsg:
		return m.handleFetched(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeHelp:
			m.mode = modeList
			return m, nil
		case modeDetail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.engine.State()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
	case "/":
		m.mode = modeSearch
	case "f":
		m.engine.Dispatch(tasklist.StatusFilterChanged{Status: nextFilter(s.StatusFilter)})
		m.cursor = 0
	case "x":
		m.engine.Dispatch(tasklist.FiltersReset{})
		m.cursor = 0
	case "s":
		m.engine.Dispatch(tasklist.SortToggled{})
	case "right", "l", "pgdown":
		m.engine.Dispatch(tasklist.PageRequested{Page: s.Page + 1})
		m.cursor = 0
	case "left", "h", "pgup":
		m.engine.Dispatch(tasklist.PageRequested{Page: s.Page - 1})
		m.cursor = 0
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "up", "k":
		m.cursor--
		m.clampCursor()
	case "c":
		m.compact = !m.compact
		size := m.pageSize
		if m.compact {
			size = tasklist.DrawerPageSize
		}
		m.engine.Dispatch(tasklist.PageSizeChanged{Size: size})
		m.clampCursor()
	case "r":
		return m, m.loadCmd()
	case "a":
		m.form = newFormModel(taskform.New())
		m.mode = modeForm
	case "v", "enter":
		if t := m.selected(); t != nil {
			return m, m.fetchCmd(t.ID, false)
		}
	case "e":
		if t := m.selected(); t != nil {
			return m, m.fetchCmd(t.ID, true)
		}
	case "d":
		if t := m.selected(); t != nil {
			m.pendingDelete = t
			m.mode = modeConfirmDelete
		}
	case "esc":
		m.engine.Dispatch(tasklist.NoticeDismissed{})
	}
	return m, nil
}

func (m *model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.detail
	switch msg.String() {
	case "e":
		if t != nil {
			m.detail = nil
			m.form = newFormModel(taskform.FromTask(*t))
			m.mode = modeForm
		}
	case "d":
		if t != nil {
			m.detail = nil
			m.pendingDelete = t
			m.mode = modeConfirmDelete
		}
	case "esc", "q", "backspace", "enter":
		m.detail = nil
		m.mode = modeList
	}
	return m, nil
}

func (m *model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	search := m.engine.State().Search
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = modeList
		return m, nil
	case tea.KeyBackspace:
		if search == "" {
			return m, nil
		}
		r := []rune(search)
		search = string(r[:len(r)-1])
	case tea.KeyRunes, tea.KeySpace:
		search += string(msg.Runes)
	default:
		return m, nil
	}
	m.engine.Dispatch(tasklist.SearchChanged{Search: search})
	m.cursor = 0
	return m, nil
}

func (m *model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.pendingDelete
	switch msg.String() {
	case "y", "Y":
		m.pendingDelete = nil
		m.mode = modeList
		if t == nil {
			return m, nil
		}
		return m, m.deleteCmd(t.ID)
	case "n", "N", "esc", "q":
		m.pendingDelete = nil
		m.mode = modeList
	}
	return m, nil
}

func (m *model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f.submitting {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.form = nil
		m.mode = modeList
		return m, nil
	case tea.KeyEnter:
		if err := f.values.Validate(); err != nil {
			f.setError(err)
			return m, nil
		}
		f.submitting = true
		f.setError(nil)
		return m, m.saveCmd(f.values)
	}
	f.handleKey(msg)
	return m, nil
}

func (m *model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	var (
		verr     *taskform.ValidationError
		fetchErr *tasklist.FetchError
	)
	switch {
	case msg.err == nil, errors.As(msg.err, &fetchErr):
		// A failed reload after a good save is already a notice.
		if msg.err == nil {
			m.engine.Dispatch(tasklist.TaskSaved{Created: msg.created})
		}
		m.form = nil
		m.mode = modeList
		m.clampCursor()
	case errors.As(msg.err, &verr):
		if m.form != nil {
			m.form.submitting = false
			m.form.setError(verr)
		}
	default:
		m.logger.Error().Err(msg.err).Bool("created", msg.created).Msg("failed to save task")
		m.engine.Dispatch(tasklist.MutationFailed{Err: msg.err})
		if m.form != nil {
			m.form.submitting = false
			m.form.setError(msg.err)
		}
	}
	return m, nil
}

// handleFetched opens the detail view or the edit form on a fresh copy.
// A task deleted under the user turns into a notice and a reload.
func (m *model) handleFetched(msg fetchedMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err == nil:
		if msg.edit {
			m.form = newFormModel(taskform.FromTask(*msg.task))
			m.mode = modeForm
			return m, nil
		}
		m.detail = msg.task
		m.mode = modeDetail
		return m, nil
	case errors.Is(msg.err, client.ErrNotFound):
		m.logger.Warn().Str("task_id", msg.id).Msg("task no longer exists")
		m.engine.Dispatch(tasklist.TaskNotFound{ID: msg.id})
		m.mode = modeList
		return m, m.loadCmd()
	default:
		m.logger.Error().Err(msg.err).Str("task_id", msg.id).Msg("failed to fetch task")
		m.engine.Dispatch(tasklist.TaskFetchFailed{ID: msg.id, Err: msg.err})
		return m, nil
	}
}

func (m *model) selected() *models.Task {
	items := m.engine.View().Items
	if m.cursor < 0 || m.cursor >= len(items) {
		return nil
	}
	t := items[m.cursor]
	return &t
}

func (m *model) clampCursor() {
	n := len(m.engine.View().Items)
	switch {
	case n == 0, m.cursor < 0:
		m.cursor = 0
	case m.cursor >= n:
		m.cursor = n - 1
	}
}

// nextFilter cycles all -> Pending -> In Progress -> Completed -> all.
func nextFilter(s models.Status) models.Status {
	if s == "" {
		return models.Statuses[0]
	}
	for i, st := range models.Statuses {
		if st == s && i+1 < len(models.Statuses) {
			return models.Statuses[i+1]
		}
	}
	return ""
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
