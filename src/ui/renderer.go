package ui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Protocol-Lattice/agri-advisor/src/advisor"
	"github.com/Protocol-Lattice/agri-advisor/src/dataset"
)

const Logo = `
 █████╗  ██████╗ ██████╗ ██╗
██╔══██╗██╔════╝ ██╔══██╗██║
███████║██║  ███╗██████╔╝██║
██╔══██║██║   ██║██╔══██╗██║
██║  ██║╚██████╔╝██║  ██║██║
╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═╝
  C R O P  ·  A D V I S O R
`

// Tagline sits under the logo.
const Tagline = "Fertilizer · Humidity · Temperature"

// Render generates the full UI string based on the provided state.
func Render(s State, styles Styles) string {
	header := renderHeader(styles)
	body := renderBody(s, styles)
	footer := renderFooter(s, styles)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func renderHeader(styles Styles) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6CC551")).Bold(true).
		Background(lipgloss.Color("#000000")).UnsetBackground()
	subtitle := styles.Header.Render(Tagline)
	styledLogo := logoStyle.Render(Logo)

	return lipgloss.JoinVertical(lipgloss.Left, styledLogo, subtitle)
}

func renderFooter(s State, styles Styles) string {
	help := "ctrl+c: quit"
	switch s.Mode {
	case ModeLanguage:
		help += " | enter: select language | esc: back"
	case ModeFile:
		help += " | enter: open | ←: parent | esc: back"
	case ModeChat:
		help += " | ctrl+l: language | ctrl+o: dataset"
	}
	return styles.Footer.Render(help)
}

func renderBody(s State, styles Styles) string {
	switch s.Mode {
	case ModeLanguage:
		return renderLanguage(s, styles)
	case ModeFile:
		return renderFile(s, styles)
	case ModeChat:
		return renderChat(s, styles)
	default:
		return ""
	}
}

func renderLanguage(s State, styles Styles) string {
	return styles.List.Render(s.LanguageList.View())
}

func renderFile(s State, styles Styles) string {
	label := s.UploadLabel
	if label == "" {
		label = advisor.MsgUploadLabel
	}
	pathHeader := styles.Subtitle.Render(fmt.Sprintf("%s · %s", label, s.WorkingDir))
	return lipgloss.JoinVertical(lipgloss.Left, pathHeader, s.FileList.View())
}

func renderChat(s State, styles Styles) string {
	var statusItems []string
	statusItems = append(statusItems, styles.Status.Render(fmt.Sprintf("SESSION: %s", s.SessionID)))
	statusItems = append(statusItems, styles.Status.Render(fmt.Sprintf("LANG: %s", s.Language)))
	if s.Stage != "" {
		statusItems = append(statusItems, styles.Status.Render(s.Stage))
	}
	data := "DATA: none"
	if s.DatasetPath != "" {
		data = fmt.Sprintf("DATA: %d rows (%s)", s.DatasetRows, humanSize(s.DatasetBytes))
	}
	statusItems = append(statusItems, styles.StatusRight.Render(data))

	status := lipgloss.JoinHorizontal(lipgloss.Top, statusItems...)

	metaLines := []string{styles.Subtitle.Render(fmt.Sprintf("Working Directory: %s", s.WorkingDir))}
	if s.DatasetPath != "" {
		rel := s.DatasetPath
		if r, err := filepath.Rel(s.WorkingDir, s.DatasetPath); err == nil {
			rel = r
		}
		metaLines = append(metaLines, styles.Subtle.Render(fmt.Sprintf("Dataset: %s", rel)))
	}
	chatView := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinVertical(lipgloss.Left, metaLines...),
		s.Viewport.View(),
		status,
		renderThinking(s, styles),
		s.TextArea.View(),
	)
	return styles.ChatContainer.Render(chatView)
}

func renderThinking(s State, styles Styles) string {
	if !s.IsThinking {
		return ""
	}
	return styles.Thinking.Render(fmt.Sprintf("Advisor %s %s", s.Spinner.View(), s.ThinkingText))
}

// RenderReply formats an advisor reply for the chat viewport.
func RenderReply(r advisor.Reply, styles Styles) string {
	if r.IsTable() {
		return RenderTable(*r.Table, styles)
	}
	return r.Message
}

// RenderTable draws t with a rounded border and a highlighted header row.
func RenderTable(t dataset.Table, styles Styles) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.TableBorder).
		Headers(t.Columns...).
		Rows(t.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeader
			}
			return styles.TableCell
		}).
		String()
}

func humanSize(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
