package src

import (
	"github.com/Protocol-Lattice/agri-advisor/src/ui"
)

func (m *model) View() string {
	return ui.Render(m.state(), m.style)
}

func (m *model) state() ui.State {
	uiMode := ui.ModeChat
	switch m.mode {
	case modeLanguage:
		uiMode = ui.ModeLanguage
	case modeFile:
		uiMode = ui.ModeFile
	}
	return ui.State{
		Mode:         uiMode,
		WorkingDir:   m.working,
		SessionID:    m.session.ID,
		Language:     m.language,
		Stage:        m.stage.String(),
		DatasetPath:  m.datasetPath,
		DatasetRows:  m.datasetRows,
		DatasetBytes: m.datasetBytes,
		UploadLabel:  m.uploadLabel,
		IsThinking:   m.isThinking,
		ThinkingText: m.thinking,
		LanguageList: m.langList,
		FileList:     m.filelist,
		TextArea:     m.textarea,
		Viewport:     m.viewport,
		Spinner:      m.spinner,
	}
}
