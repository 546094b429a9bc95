package notify

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
)

const DEFAULT_SUBJECT_TEMPLATE = `{{ len .Entries }} new technical survey(s) for {{ .SurveyTitle }}`

const DEFAULT_HTML_TEMPLATE = `<html>
<body>
<p>{{ .Header }}</p>
{{- if .Entries }}
<ul>
{{- range .Entries }}
<li>{{ .Name }} ({{ .Email }}) submitted a {{ .Status }} survey on {{ .Date }}</li>
{{- end }}
</ul>
{{- else }}
<p>No surveys</p>
{{- end }}
</body>
</html>
`

type Templates struct {
	Subject string `json:"subject" yaml:"subject"`
	HTML    string `json:"html" yaml:"html"`
}

func (t Templates) subject() string {
	if strings.TrimSpace(t.Subject) == "" {
		return DEFAULT_SUBJECT_TEMPLATE
	}
	return t.Subject
}

func (t Templates) html() string {
	if strings.TrimSpace(t.HTML) == "" {
		return DEFAULT_HTML_TEMPLATE
	}
	return t.HTML
}

func ResolveTemplate(tempName string, templateDef string, data any) (content string, err error) {
	if strings.TrimSpace(templateDef) == "" {
		return "", errors.New("empty template `" + tempName + "`")
	}
	tmpl, err := template.New(tempName).Parse(templateDef)
	if err != nil {
		return "", fmt.Errorf("error when parsing template %s: %v", tempName, err)
	}
	var tpl bytes.Buffer
	if err = tmpl.Execute(&tpl, data); err != nil {
		return "", fmt.Errorf("error during executing template %s: %v", tempName, err)
	}
	return tpl.String(), nil
}

func resolveSubject(templateDef string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(templateDef)
	if err != nil {
		return "", fmt.Errorf("error when parsing template subject: %v", err)
	}
	var tpl bytes.Buffer
	if err = tmpl.Execute(&tpl, data); err != nil {
		return "", fmt.Errorf("error during executing template subject: %v", err)
	}
	return tpl.String(), nil
}

// Render returns the subject and HTML body of the summary mail. The subject
// is a mail header, so it is not HTML escaped.
func Render(summary *Summary, templates Templates) (subject string, html string, err error) {
	subject, err = resolveSubject(templates.subject(), summary)
	if err != nil {
		return "", "", err
	}
	html, err = ResolveTemplate("html", templates.html(), summary)
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(subject), html, nil
}
