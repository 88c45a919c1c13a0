package mailer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforce-hub/hrms/backend/internal/domain"
)

func writeTemplates(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "welcome_email.html"),
		[]byte(`<p>Hi {{.name}}, your login ID is {{.loginId}}</p>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reset_password_otp_email.html"),
		[]byte(`<p>Code {{.otp}} expires in {{.expiration}} minutes</p>`), 0o644))
	return dir
}

// 队列中的消息经过 JSON 编解码，Data 会变成 map
func roundTrip(t *testing.T, m domain.MailMessage) domain.MailMessage {
	t.Helper()

	raw, err := json.Marshal(m)
	require.NoError(t, err)
	var out domain.MailMessage
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func render(t *testing.T, c *Composer, m domain.MailMessage) string {
	t.Helper()

	msg, err := c.Compose(roundTrip(t, m))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestComposeWelcome(t *testing.T) {
	c, err := NewComposer(writeTemplates(t), "noreply@hrms.test")
	require.NoError(t, err)

	out := render(t, c, domain.MailMessage{
		Type: domain.MailTypeWelcome,
		To:   "john@odoo.com",
		Data: domain.WelcomeMailData{Name: "John Doe", CompanyName: "Odoo India", LoginID: "ODINJODO20240001"},
	})

	assert.Contains(t, out, "ODINJODO20240001")
	assert.Contains(t, out, "john@odoo.com")
	assert.Contains(t, out, "Your account is ready")
}

func TestComposeResetPassword(t *testing.T) {
	c, err := NewComposer(writeTemplates(t), "noreply@hrms.test")
	require.NoError(t, err)

	out := render(t, c, domain.MailMessage{
		Type: domain.MailTypeResetPassword,
		To:   "john@odoo.com",
		Data: domain.ResetPasswordMailData{Name: "John Doe", OTP: "123456", Expiration: 15},
	})

	assert.Contains(t, out, "123456")
	assert.Contains(t, out, "15 minutes")
}

func TestComposeErrors(t *testing.T) {
	c, err := NewComposer(writeTemplates(t), "noreply@hrms.test")
	require.NoError(t, err)

	_, err = c.Compose(domain.MailMessage{Type: "change_email", To: "a@b.com"})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = c.Compose(domain.MailMessage{Type: domain.MailTypeWelcome, To: "not an address"})
	assert.Error(t, err)
}

func TestNewComposerMissingTemplate(t *testing.T) {
	dir := writeTemplates(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "welcome_email.html")))

	_, err := NewComposer(dir, "noreply@hrms.test")
	assert.Error(t, err)
}
