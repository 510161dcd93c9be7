package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

//go:embed *.html *.css *.js
var templateFS embed.FS

// Manager handles template loading, parsing, and rendering.
type Manager struct {
	templates map[string]*template.Template
	styles    strings.Builder
	scripts   strings.Builder
	logger    logrus.FieldLogger
}

// NewManager creates a new template manager.
func NewManager(logger logrus.FieldLogger) *Manager {
	return &Manager{
		templates: make(map[string]*template.Template),
		logger:    logger.WithField("component", "template_manager"),
	}
}

// LoadTemplates loads all templates, stylesheets and scripts from the
// embedded filesystem.
func (m *Manager) LoadTemplates() error {
	m.logger.Debug("Loading HTML templates")

	err := fs.WalkDir(templateFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		content, err := templateFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", path, err)
		}

		switch filepath.Ext(path) {
		case ".css":
			m.styles.Write(content)
			m.styles.WriteByte('\n')

			return nil
		case ".js":
			m.scripts.Write(content)
			m.scripts.WriteByte('\n')

			return nil
		case ".html":
		default:
			return nil
		}

		// Create template name from filename
		templateName := strings.TrimSuffix(filepath.Base(path), ".html")

		tmpl, err := template.New(templateName).Funcs(m.getTemplateFuncs()).Parse(string(content))
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", path, err)
		}

		m.templates[templateName] = tmpl
		m.logger.WithField("template", templateName).Debug("Loaded template")

		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	m.logger.WithField("templates", m.GetAvailableTemplates()).Debug("Templates loaded successfully")

	return nil
}

// RenderReport renders the main report template with the given data.
func (m *Manager) RenderReport(data interface{}) (string, error) {
	return m.RenderTemplate("report", data)
}

// RenderTemplate renders a template with the given name and data.
func (m *Manager) RenderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := m.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var output strings.Builder
	if err := tmpl.Execute(&output, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return output.String(), nil
}

// GetAvailableTemplates returns the sorted names of all loaded templates.
func (m *Manager) GetAvailableTemplates() []string {
	templates := make([]string, 0, len(m.templates))
	for name := range m.templates {
		templates = append(templates, name)
	}

	sort.Strings(templates)

	return templates
}

// Stylesheet returns the concatenated embedded CSS, inlined by the report.
func (m *Manager) Stylesheet() template.CSS {
	return template.CSS(m.styles.String()) //nolint:gosec // embedded asset
}

// Script returns the concatenated embedded JavaScript, inlined by the report.
func (m *Manager) Script() template.JS {
	return template.JS(m.scripts.String()) //nolint:gosec // embedded asset
}

// getTemplateFuncs returns template helper functions.
func (m *Manager) getTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"comma": func(v int) string {
			return humanize.Comma(int64(v))
		},
		"formatTime": func(t time.Time) string {
			return t.UTC().Format("2006-01-02 15:04:05 MST")
		},
		"plural": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}

			return plural
		},
	}
}
