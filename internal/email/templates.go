package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const (
	TemplateVerificationCode = "verification_code"
	TemplateBanNotice        = "ban_notice"
	TemplateReportResolved   = "report_resolved"
)

var builtinTemplates = map[string]string{
	TemplateVerificationCode: `<html><body style="font-family: Arial, sans-serif">
<h2>Mural IFSP</h2>
<p>Olá, {{.Username}}!</p>
<p>Seu código de verificação é:</p>
<p style="font-size: 32px; font-weight: bold; letter-spacing: 8px">{{.Code}}</p>
<p>O código expira em {{.ExpiresMinutes}} minutos.</p>
<p>Se você não criou uma conta no Mural IFSP, ignore este email.</p>
</body></html>`,
	TemplateBanNotice: `<html><body style="font-family: Arial, sans-serif">
<h2>Mural IFSP</h2>
<p>Olá, {{.Username}}.</p>
<p>Sua conta foi suspensa por um administrador.</p>
<p><strong>Motivo:</strong> {{.Reason}}</p>
<p>Se acredita que isso foi um engano, procure a coordenação do campus.</p>
</body></html>`,
	TemplateReportResolved: `<html><body style="font-family: Arial, sans-serif">
<h2>Mural IFSP</h2>
<p>Olá, {{.Username}}.</p>
<p>Sua denúncia sobre {{.ContentType}} foi analisada pela moderação.</p>
<p><strong>Ação tomada:</strong> {{.Action}}</p>
<p>Obrigado por ajudar a manter o mural seguro.</p>
</body></html>`,
}

// TemplateManager реализует TemplateRenderer для управления шаблонами email
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер шаблонов со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// встроенные шаблоны статичны, ошибка парсинга здесь это баг
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// LoadTemplates загружает шаблоны из директории. Файл с именем встроенного шаблона его переопределяет.
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	if dirPath == "" {
		return nil
	}
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}

		return nil
	})
}

// GetTemplate возвращает шаблон по имени (для тестирования)
func (tm *TemplateManager) GetTemplate(name string) *template.Template {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()
	return tm.templates[name]
}

// TemplateNames возвращает список имен загруженных шаблонов
func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
