package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"

	"github.com/zenloop/zenloop/internal/client/models"
)

// TextFormatter formats data as human-readable text with color
type TextFormatter struct {
	userTemplate     *template.Template
	exerciseTemplate *template.Template
}

// NewTextFormatter creates a new text formatter with color support
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		userTemplate:     template.Must(template.New("user").Funcs(templateFuncs()).Parse(userTemplate)),
		exerciseTemplate: template.Must(template.New("exercise").Funcs(templateFuncs()).Parse(exerciseTemplate)),
	}
}

// templateFuncs returns template functions for formatting
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"bold":    color.New(color.Bold).Sprint,
		"cyan":    color.CyanString,
		"green":   color.GreenString,
		"yellow":  color.YellowString,
		"red":     color.RedString,
		"blue":    color.BlueString,
		"magenta": color.MagentaString,
		"difficulty": func(level string) string {
			switch level {
			case models.DifficultyBeginner:
				return color.GreenString(strings.ToUpper(level))
			case models.DifficultyIntermediate:
				return color.YellowString(strings.ToUpper(level))
			case models.DifficultyExpert:
				return color.RedString(strings.ToUpper(level))
			default:
				return strings.ToUpper(level)
			}
		},
	}
}

const userTemplate = `
{{bold "User"}}
  {{cyan "Username:"}}  {{.Username}}
  {{cyan "Name:"}}      {{.FullName}}
  {{cyan "Email:"}}     {{.Email}}
  {{cyan "ID:"}}        {{.ID}}
`

const exerciseTemplate = `
{{bold .Name}} [{{difficulty .Difficulty}}]
  {{cyan "Type:"}}      {{.Type}}
  {{cyan "Muscle:"}}    {{.Muscle}}
  {{cyan "Equipment:"}} {{.Equipment}}

  {{.Instructions}}
`

// Format formats a single item as text
func (f *TextFormatter) Format(data interface{}) (string, error) {
	switch v := data.(type) {
	case models.User:
		return f.formatTemplate(f.userTemplate, v)
	case *models.User:
		return f.formatTemplate(f.userTemplate, *v)
	case models.Exercise:
		return f.formatTemplate(f.exerciseTemplate, v)
	case *models.Exercise:
		return f.formatTemplate(f.exerciseTemplate, *v)
	default:
		return fmt.Sprintf("%+v\n", data), nil
	}
}

// FormatList formats a list of items as text
func (f *TextFormatter) FormatList(data interface{}) (string, error) {
	switch v := data.(type) {
	case []models.Exercise:
		return f.formatExerciseList(v)
	case []string:
		if len(v) == 0 {
			return "No items found\n", nil
		}
		var buf bytes.Buffer
		for _, s := range v {
			buf.WriteString("  " + s + "\n")
		}
		return buf.String(), nil
	default:
		return fmt.Sprintf("%+v\n", data), nil
	}
}

func (f *TextFormatter) formatExerciseList(items []models.Exercise) (string, error) {
	if len(items) == 0 {
		return "No exercises found\n", nil
	}

	funcs := templateFuncs()
	difficulty := funcs["difficulty"].(func(string) string)

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("\n%s (%d):\n\n", color.New(color.Bold).Sprint("Exercises"), len(items)))

	for _, item := range items {
		buf.WriteString(fmt.Sprintf("  %s  %s · %s  [%s]\n",
			color.New(color.Bold).Sprint(item.Name),
			color.CyanString(item.Muscle),
			item.Equipment,
			difficulty(item.Difficulty),
		))
	}

	return buf.String(), nil
}

// formatTemplate applies a template to data
func (f *TextFormatter) formatTemplate(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
