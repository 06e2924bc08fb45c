package mail

import (
	"bytes"
	htmltemplate "html/template"
	"strconv"
	"text/template"
	"time"
)

type templateData struct {
	Username string
	Code     string
	Minutes  string
}

type mailTemplate struct {
	subject string
	text    *template.Template
	html    *htmltemplate.Template
}

var (
	signupOTPTemplate = mailTemplate{
		subject: "Your LexiMind verification code",
		text: template.Must(template.New("signup_text").Parse(
			"Hi {{.Username}},\n\nYour verification code is {{.Code}}. It expires in {{.Minutes}} minutes.\n\nIf you did not sign up for LexiMind you can ignore this email.\n")),
		html: htmltemplate.Must(htmltemplate.New("signup_html").Parse(
			`<p>Hi {{.Username}},</p><p>Your verification code is <strong>{{.Code}}</strong>. It expires in {{.Minutes}} minutes.</p><p>If you did not sign up for LexiMind you can ignore this email.</p>`)),
	}
	resetOTPTemplate = mailTemplate{
		subject: "Reset your LexiMind password",
		text: template.Must(template.New("reset_text").Parse(
			"Hi {{.Username}},\n\nUse the code {{.Code}} to reset your password. It expires in {{.Minutes}} minutes.\n\nIf you did not request a reset you can ignore this email.\n")),
		html: htmltemplate.Must(htmltemplate.New("reset_html").Parse(
			`<p>Hi {{.Username}},</p><p>Use the code <strong>{{.Code}}</strong> to reset your password. It expires in {{.Minutes}} minutes.</p><p>If you did not request a reset you can ignore this email.</p>`)),
	}
	welcomeTemplate = mailTemplate{
		subject: "Welcome to LexiMind",
		text: template.Must(template.New("welcome_text").Parse(
			"Hi {{.Username}},\n\nYour LexiMind account is ready. Happy reading!\n")),
		html: htmltemplate.Must(htmltemplate.New("welcome_html").Parse(
			`<p>Hi {{.Username}},</p><p>Your LexiMind account is ready. Happy reading!</p>`)),
	}
)

// render 返回主题、纯文本正文与 HTML 正文。
func (t mailTemplate) render(data templateData) (string, string, string, error) {
	var text, html bytes.Buffer
	if err := t.text.Execute(&text, data); err != nil {
		return "", "", "", err
	}
	if err := t.html.Execute(&html, data); err != nil {
		return "", "", "", err
	}
	return t.subject, text.String(), html.String(), nil
}

func minutes(ttl time.Duration) string {
	m := int(ttl / time.Minute)
	if m <= 0 {
		m = 1
	}
	return strconv.Itoa(m)
}
