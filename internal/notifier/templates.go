package notifier

import (
	"access-request-server/internal/util"
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// Имена шаблонов
const (
	TemplateEmailValidation = "email_validation"
	TemplateNewRequest      = "new_request"
	TemplateRequestReceived = "request_received"
	TemplateRequestAccepted = "request_accepted"
	TemplateRequestRejected = "request_rejected"
	TemplateLinkDescription = "link_description"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// Templates : шаблоны писем и описания ссылки, встроенные в бинарник
type Templates struct {
	root *template.Template
}

func NewTemplates() (*Templates, error) {
	root, err := template.New("").Option("missingkey=error").ParseFS(templateFiles, "templates/*.tmpl")
	if err != nil {
		return nil, util.LogError("[Templates] ошибка разбора шаблонов", err)
	}
	return &Templates{root: root}, nil
}

// Render : рендерит шаблон по имени без расширения
func (t *Templates) Render(name string, data any) (string, error) {
	tmpl := t.root.Lookup(name + ".tmpl")
	if tmpl == nil {
		return "", fmt.Errorf("[Templates] шаблон %s не найден", name)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", util.LogError("[Templates] ошибка рендера шаблона "+name, err)
	}
	return strings.TrimSpace(out.String()), nil
}
