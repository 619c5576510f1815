package ai

import (
	"bytes"
	"fmt"
	"text/template"
)

var suggestTemplate = template.Must(template.New("suggest").Parse(
	`You are a learning path recommender. Given a list of skills and technologies, you will suggest related skills and technologies that the user could learn next.

Skills:
{{ range . }}- {{ . }}
{{ end }}
Suggestions:`))

var categorizeTemplate = template.Must(template.New("categorize").Parse(
	`You are an expert in software development and technology. Your task is to categorize the given skill into one of the following categories: {{ .Categories }}.

Skill Name: {{ .Name }}
Category:`))

func executeTemplate(tmpl *template.Template, input any) (string, error) {
	var buffer bytes.Buffer
	if err := tmpl.Execute(&buffer, input); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buffer.String(), nil
}
