package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
)

// Mode represents the current UI state
type Mode int

const (
	ModeLanguage Mode = iota
	ModeFile
	ModeChat
)

// State contains all the data required to render the UI.
// This decouples the renderer from the main application logic.
type State struct {
	Mode         Mode
	WorkingDir   string
	SessionID    string
	Language     string
	Stage        string
	DatasetPath  string
	DatasetRows  int
	DatasetBytes int64
	UploadLabel  string
	IsThinking   bool
	ThinkingText string

	// Bubble Tea models
	LanguageList list.Model
	FileList     list.Model
	TextArea     textarea.Model
	Viewport     viewport.Model
	Spinner      spinner.Model
}
