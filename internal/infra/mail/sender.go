package mail

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"
)

const DefaultFrom = "no-reply@integrations-demo.dev"

//go:embed templates/welcome.html
var welcomeTemplate string

var welcomeTmpl = template.Must(template.New("welcome").Parse(welcomeTemplate))

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	if from == "" {
		from = DefaultFrom
	}
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

func (s *EmailSender) SendWelcome(to, name, plan string) error {
	m, err := s.welcomeMessage(to, name, plan)
	if err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}

func (s *EmailSender) welcomeMessage(to, name, plan string) (*gomail.Message, error) {
	if strings.TrimSpace(to) == "" {
		return nil, fmt.Errorf("destinatário vazio")
	}

	data := WelcomeEmailData{Name: name, Plan: plan}

	var body bytes.Buffer
	if err := welcomeTmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Welcome aboard, %s!", name))
	m.SetBody("text/html", body.String())
	return m, nil
}
