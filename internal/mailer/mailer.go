package mailer

import (
	"errors"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/wneessen/go-mail"
	"github.com/workforce-hub/hrms/backend/internal/domain"
)

var ErrUnsupportedType = errors.New("unsupported mail type")

type kind struct {
	file    string
	subject string
}

var kinds = map[string]kind{
	domain.MailTypeWelcome:       {file: "welcome_email.html", subject: "HRMS - Your account is ready"},
	domain.MailTypeResetPassword: {file: "reset_password_otp_email.html", subject: "HRMS - Reset your password"},
}

// Composer 根据队列里的邮件信息生成待发送的邮件
type Composer struct {
	from      string
	templates map[string]*template.Template
}

// NewComposer 在启动时解析模板目录下所有邮件模板，缺少任何一个都会返回错误
func NewComposer(templateDir, from string) (*Composer, error) {
	c := &Composer{
		from:      from,
		templates: make(map[string]*template.Template, len(kinds)),
	}

	for typ, k := range kinds {
		tmpl, err := template.ParseFiles(filepath.Join(templateDir, k.file))
		if err != nil {
			return nil, fmt.Errorf("parse template for %s: %w", typ, err)
		}
		c.templates[typ] = tmpl
	}

	return c, nil
}

func (c *Composer) Compose(m domain.MailMessage) (*mail.Msg, error) {
	k, ok := kinds[m.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, m.Type)
	}

	msg := mail.NewMsg()
	if err := msg.From(c.from); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	if err := msg.SetBodyHTMLTemplate(c.templates[m.Type], m.Data); err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}
	msg.Subject(k.subject)

	return msg, nil
}
