package src

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/agri-advisor/src/advisor"
	"github.com/Protocol-Lattice/agri-advisor/src/lang"
	"github.com/Protocol-Lattice/agri-advisor/src/ui"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(ui.Logo) + 1
		footerHeight := 1
		chatContainerVPadding := m.style.ChatContainer.GetVerticalPadding()
		chatContainerHPadding := m.style.ChatContainer.GetHorizontalPadding()
		m.width, m.height = msg.Width, msg.Height
		m.langList.SetSize(m.width-2, m.height-headerHeight-footerHeight-2)
		m.filelist.SetSize(m.width, m.height-headerHeight-footerHeight-2)
		m.textarea.SetWidth(m.width - chatContainerHPadding - 2)
		m.viewport.Width = m.width - chatContainerHPadding - 2
		m.viewport.Height = m.height - headerHeight - footerHeight - m.textarea.Height() - chatContainerVPadding - 6 // borders, meta lines, status, thinking
		m.renderOutput(false)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// One interaction at a time; keys wait for the current reply.
		if m.isThinking {
			return m, nil
		}

		switch msg.String() {

		case "ctrl+l":
			if m.mode != modeLanguage {
				m.prevMode = m.mode
				m.mode = modeLanguage
			}
			return m, nil

		case "ctrl+o":
			if m.mode != modeFile {
				m.prevMode = m.mode
				m.mode = modeFile
				m.setWorking(m.working)
			}
			return m, nil

		case "esc":
			if m.mode != modeChat {
				next := m.prevMode
				if next == m.mode {
					next = modeChat
				}
				m.mode = next
			}
			return m, nil

		case "left":
			if m.mode == modeFile {
				m.setWorking(filepath.Dir(m.working))
				return m, nil
			}

		case "enter":
			switch m.mode {

			case modeLanguage:
				l, ok := m.langList.SelectedItem().(lang.Language)
				if !ok {
					return m, nil
				}
				if err := m.session.SelectLanguage(l.Code); err != nil {
					m.appendError(err)
					return m, nil
				}
				m.language = l.Name
				m.output += m.style.Subtle.Render(fmt.Sprintf("🌐 %s (%s)", l.Name, l.Code)) + "\n\n"
				m.renderOutput(true)
				if m.datasetPath == "" {
					m.mode = modeFile
				} else {
					m.mode = modeChat
				}
				m.prevMode = m.mode
				m.isThinking = true
				m.thinking = "translating"
				return m, tea.Batch(m.refreshCmd(true), m.spinner.Tick)

			case modeFile:
				item, ok := m.filelist.SelectedItem().(fileItem)
				if !ok {
					return m, nil
				}
				if item.dir {
					m.setWorking(item.path)
					return m, nil
				}
				m.mode = modeChat
				m.prevMode = modeChat
				m.output += m.style.Subtle.Render("📄 "+filepath.Base(item.path)) + "\n\n"
				m.renderOutput(true)
				m.isThinking = true
				m.thinking = "loading dataset"
				return m, tea.Batch(m.uploadCmd(item.path), m.spinner.Tick)

			case modeChat:
				raw := m.textarea.Value()
				if raw == "" {
					return m, nil
				}
				return m.runPrompt(raw)
			}
		}

	case refreshMsg:
		m.isThinking = false
		m.thinking = ""
		m.stage = msg.stage
		if msg.err != nil {
			m.appendError(msg.err)
			return m, nil
		}
		m.uploadLabel = msg.label
		m.filelist.Title = msg.label
		m.textarea.Placeholder = msg.hint
		if msg.greeting != nil {
			m.appendReply(*msg.greeting)
		}
		return m, nil

	case uploadMsg:
		m.isThinking = false
		m.thinking = ""
		m.stage = msg.stage
		m.datasetPath = msg.source
		m.datasetRows = msg.rows
		m.datasetBytes = msg.bytes
		if msg.err != nil {
			m.appendError(msg.err)
			return m, nil
		}
		m.appendReply(msg.reply)
		return m, nil

	case replyMsg:
		m.isThinking = false
		m.thinking = ""
		m.stage = msg.stage
		if msg.err != nil {
			m.appendError(msg.err)
			return m, nil
		}
		m.appendReply(msg.reply)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeLanguage:
		m.langList, cmd = m.langList.Update(msg)
	case modeFile:
		m.filelist, cmd = m.filelist.Update(msg)
	case modeChat:
		var textareaCmd, viewportCmd tea.Cmd
		m.textarea, textareaCmd = m.textarea.Update(msg)
		m.viewport, viewportCmd = m.viewport.Update(msg)
		cmd = tea.Batch(textareaCmd, viewportCmd)
	}

	if m.isThinking {
		var spinnerCmd tea.Cmd
		m.spinner, spinnerCmd = m.spinner.Update(msg)
		cmd = tea.Batch(cmd, spinnerCmd)
	}
	return m, cmd
}

func (m *model) setWorking(path string) {
	m.working = path
	m.filelist.SetItems(loadFiles(path))
	m.filelist.Select(0)
}

func (m *model) runPrompt(raw string) (*model, tea.Cmd) {
	m.textarea.Reset()

	m.output += m.style.You.Render("You: ") + raw + "\n\n"
	m.renderOutput(true)

	m.isThinking = true
	m.thinking = "translating"

	s, ctx := m.session, m.ctx
	cmd := func() tea.Msg {
		reply, err := s.Ask(ctx, raw)
		return replyMsg{reply: reply, stage: s.Stage, err: err}
	}
	return m, tea.Batch(cmd, m.spinner.Tick)
}

// refreshCmd translates the upload label and the input hint, and the stage
// greeting when greet is set.
func (m *model) refreshCmd(greet bool) tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		label, err := s.Translate(ctx, advisor.MsgUploadLabel)
		if err != nil {
			return refreshMsg{stage: s.Stage, err: err}
		}
		hint, err := s.Translate(ctx, advisor.MsgAskHint)
		if err != nil {
			return refreshMsg{stage: s.Stage, err: err}
		}
		msg := refreshMsg{label: label, hint: hint, stage: s.Stage}
		if greet {
			g, err := s.Greeting(ctx)
			if err != nil {
				return refreshMsg{stage: s.Stage, err: err}
			}
			msg.greeting = &g
		}
		return msg
	}
}

func (m *model) uploadCmd(path string) tea.Cmd {
	s, ctx, log := m.session, m.ctx, m.log
	return func() tea.Msg {
		reply, err := s.Upload(ctx, path)
		msg := uploadMsg{reply: reply, stage: s.Stage, err: err}
		if ds := s.Dataset; ds != nil {
			msg.source = ds.Source
			msg.rows = ds.Len()
			if info, statErr := os.Stat(ds.Source); statErr == nil {
				msg.bytes = info.Size()
			} else {
				log.Debug("dataset stat failed", zap.Error(statErr))
			}
		}
		return msg
	}
}

func (m *model) appendReply(r advisor.Reply) {
	m.output += m.style.Accent.Render("Advisor:") + "\n" + ui.RenderReply(r, m.style) + "\n\n"
	m.renderOutput(true)
}

func (m *model) appendError(err error) {
	m.log.Warn("interaction failed", zap.Error(err))
	m.output += m.style.Error.Render(fmt.Sprintf("❌ %v", err)) + "\n\n"
	m.renderOutput(true)
}

func (m *model) renderOutput(toBottom bool) {
	content := m.output
	if m.viewport.Width > 0 {
		content = lipgloss.NewStyle().Width(m.viewport.Width).Render(content)
	}
	m.viewport.SetContent(content)
	if toBottom {
		m.viewport.GotoBottom()
	}
}
