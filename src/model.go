package src

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/agri-advisor/src/advisor"
	"github.com/Protocol-Lattice/agri-advisor/src/lang"
	"github.com/Protocol-Lattice/agri-advisor/src/ui"
)

type mode int

const (
	modeLanguage mode = iota
	modeFile
	modeChat
)

// refreshMsg carries the translated chrome after a language change.
type refreshMsg struct {
	label    string
	hint     string
	greeting *advisor.Reply
	stage    advisor.Stage
	err      error
}

// uploadMsg is the outcome of loading the dataset after a file was picked.
type uploadMsg struct {
	reply  advisor.Reply
	stage  advisor.Stage
	source string
	rows   int
	bytes  int64
	err    error
}

// replyMsg is the answer to one chat prompt.
type replyMsg struct {
	reply advisor.Reply
	stage advisor.Stage
	err   error
}

type model struct {
	ctx     context.Context
	session *advisor.Session
	log     *zap.Logger
	working string

	mode       mode
	prevMode   mode
	isThinking bool
	langList   list.Model
	filelist   list.Model
	textarea   textarea.Model
	viewport   viewport.Model
	spinner    spinner.Model
	thinking   string
	output     string
	width      int
	height     int
	style      ui.Styles

	// Display copies of session state. Commands mutate the session off the
	// event loop, so View only reads these.
	language     string
	stage        advisor.Stage
	uploadLabel  string
	datasetPath  string
	datasetRows  int
	datasetBytes int64
}

// NewModel builds the interactive advisor starting at the language list.
func NewModel(ctx context.Context, deps *Deps, startDir string) *model {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	session := advisor.NewSession(deps.Translator, deps.Loader, log)

	langList := list.New(languageItems(), list.NewDefaultDelegate(), 0, 0)
	langList.Title = "Choose Language"
	langList.SetShowHelp(false)
	langList.SetShowStatusBar(false)
	langList.SetFilteringEnabled(false)

	fileList := list.New(loadFiles(startDir), list.NewDefaultDelegate(), 0, 0)
	fileList.Title = advisor.MsgUploadLabel
	fileList.SetShowHelp(false)
	fileList.SetShowStatusBar(false)
	fileList.SetFilteringEnabled(false)

	ta := textarea.New()
	ta.Placeholder = advisor.MsgAskHint
	ta.ShowLineNumbers = false
	ta.CharLimit = 280
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	st := ui.NewStyles()

	vp := viewport.New(0, 0)

	s := spinner.New()
	s.Spinner = spinner.Line
	s.Style = st.Thinking

	return &model{
		ctx:         ctx,
		session:     session,
		log:         log.With(zap.String("session", session.ID)),
		working:     startDir,
		mode:        modeLanguage,
		prevMode:    modeFile,
		langList:    langList,
		filelist:    fileList,
		textarea:    ta,
		viewport:    vp,
		spinner:     s,
		style:       st,
		language:    session.Language.Name,
		stage:       session.Stage,
		uploadLabel: advisor.MsgUploadLabel,
	}
}

func languageItems() []list.Item {
	all := lang.All()
	items := make([]list.Item, len(all))
	for i, l := range all {
		items[i] = l
	}
	return items
}

func (m *model) Init() tea.Cmd {
	m.isThinking = true
	m.thinking = "translating"
	return tea.Batch(m.refreshCmd(true), m.spinner.Tick)
}

// RunTUI starts the interactive advisor and blocks until the user quits.
func RunTUI(ctx context.Context, deps *Deps, startDir string) error {
	m := NewModel(ctx, deps, startDir)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
