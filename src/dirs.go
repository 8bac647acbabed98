package src

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
)

// datasetExts are the file types the picker offers.
var datasetExts = map[string]bool{".csv": true, ".xlsx": true}

type fileItem struct {
	name string
	path string
	dir  bool
}

func (f fileItem) Title() string       { return f.name }
func (f fileItem) Description() string { return f.path }
func (f fileItem) FilterValue() string { return f.name }

func isDatasetFile(name string) bool {
	return datasetExts[strings.ToLower(filepath.Ext(name))]
}

// loadFiles lists the parent, subdirectories and dataset files of path.
func loadFiles(path string) []list.Item {
	if path == "" {
		path, _ = os.Getwd()
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return []list.Item{fileItem{name: "(error reading dir)", path: path, dir: true}}
	}
	var items []list.Item

	if parent := filepath.Dir(path); parent != path {
		items = append(items, fileItem{name: "⬆️ ../", path: parent, dir: true})
	}

	// Directories first, then files. ReadDir already sorts by name.
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			items = append(items, fileItem{name: "📁 " + e.Name() + "/", path: filepath.Join(path, e.Name()), dir: true})
		}
	}
	for _, e := range entries {
		if !e.IsDir() && isDatasetFile(e.Name()) {
			items = append(items, fileItem{name: "📄 " + e.Name(), path: filepath.Join(path, e.Name())})
		}
	}
	return items
}
