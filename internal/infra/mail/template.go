package mail

import (
	"bytes"
	"embed"
	"html/template"

	"course-checkout/internal/domain/product"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"
)

const WelcomeSubject = "🎉 Willkommen zum AI-Kurs - Dein Zugang ist aktiv!"

//go:embed templates/*.tmpl
var templateFS embed.FS

var welcomeTmpl = template.Must(template.ParseFS(templateFS, "templates/welcome.html.tmpl"))

type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

type welcomeData struct {
	MagicLink string
	Live      bool
	Year      int
}

// RenderWelcome builds the welcome e-mail. year is the copyright year in the footer.
func RenderWelcome(msg shared.WelcomeEmail, year int) (Rendered, error) {
	if msg.MagicLink == "" {
		return Rendered{}, errs.New("welcome email needs a magic link")
	}

	var buf bytes.Buffer
	err := welcomeTmpl.Execute(&buf, welcomeData{
		MagicLink: msg.MagicLink,
		Live:      msg.Product == product.CourseLive,
		Year:      year,
	})
	if err != nil {
		return Rendered{}, errs.Wrap(err, "failed to render welcome email")
	}

	return Rendered{
		Subject: WelcomeSubject,
		HTML:    buf.String(),
		Text:    "Willkommen zum AI-Kurs! Klicke hier für Zugang: " + msg.MagicLink,
	}, nil
}
