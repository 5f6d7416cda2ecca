package services

import (
    "api/config"
    "fmt"
    "net/smtp"
    "strings"
)

type EmailService struct {
    host     string
    port     string
    username string
    password string
}

func NewEmailService() *EmailService {
    return &EmailService{
        host:     config.MailHost,
        port:     config.MailPort,
        username: config.MailUsername,
        password: config.MailPassword,
    }
}

func (s *EmailService) send(to string, msg []byte) error {
    auth := smtp.PlainAuth("", s.username, s.password, s.host)
    return smtp.SendMail(s.host+":"+s.port, auth, s.username, []string{to}, msg)
}

// SendDiplomaEmail notifies one address that the diplomas of an event were
// published
func (s *EmailService) SendDiplomaEmail(to, eventName, diplomaURL string) error {
    htmlTemplate := strings.TrimSpace(`
To: %s
MIME-version: 1.0
Content-Type: text/html; charset="UTF-8"
Subject: Diplomas for "%s" are available

<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Diplomas Published</title>
</head>
<body style="background-color: #f9fafb; margin: 0; padding: 0; font-family: Arial, sans-serif;">
    <table width="100%%" cellpadding="0" cellspacing="0" style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <tr>
            <td style="background-color: #1d4ed8; padding: 40px 20px; text-align: center; border-radius: 12px;">
                <h1 style="color: #ffffff; margin-bottom: 30px; font-size: 24px;">Diplomas are ready</h1>
                <p style="color: #dbeafe; margin-bottom: 30px; font-size: 16px;">The diplomas for "%s" have been published. Follow the link below to download them.</p>
                <a href="%s" style="display: inline-block; background-color: #ffffff; color: #1d4ed8; text-decoration: none; padding: 12px 30px; border-radius: 25px; font-weight: bold; margin-bottom: 30px;">Download Diplomas</a>
                <p style="color: #dbeafe; font-size: 14px;">You received this email because you participated in or supervised this event.</p>
            </td>
        </tr>
    </table>
</body>
</html>
`)

    msg := []byte(fmt.Sprintf(htmlTemplate, to, eventName, eventName, diplomaURL))
    return s.send(to, msg)
}

// SendPasswordResetEmail sends the reset link for a requested password reset
func (s *EmailService) SendPasswordResetEmail(to, resetToken string) error {
    resetLink := fmt.Sprintf(config.ClientUrl+"/reset-password?token=%s", resetToken)

    htmlTemplate := strings.TrimSpace(`
To: %s
MIME-version: 1.0
Content-Type: text/html; charset="UTF-8"
Subject: Reset your password

<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Reset Your Password</title>
</head>
<body style="background-color: #f9fafb; margin: 0; padding: 0; font-family: Arial, sans-serif;">
    <table width="100%%" cellpadding="0" cellspacing="0" style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <tr>
            <td style="background-color: #1d4ed8; padding: 40px 20px; text-align: center; border-radius: 12px;">
                <h1 style="color: #ffffff; margin-bottom: 30px; font-size: 24px;">Reset Your Password</h1>
                <p style="color: #dbeafe; margin-bottom: 30px; font-size: 16px;">Click the button below to reset your password. This link will expire in 1 hour.</p>
                <a href="%s" style="display: inline-block; background-color: #ffffff; color: #1d4ed8; text-decoration: none; padding: 12px 30px; border-radius: 25px; font-weight: bold; margin-bottom: 30px;">Reset Password</a>
                <p style="color: #dbeafe; font-size: 14px;">If you didn't request this password reset, please ignore this email.</p>
            </td>
        </tr>
    </table>
</body>
</html>
`)

    msg := []byte(fmt.Sprintf(htmlTemplate, to, resetLink))
    return s.send(to, msg)
}

// SendSupportEmail forwards a support request to the configured mailbox
func (s *EmailService) SendSupportEmail(name, email, issueType, subject, message string) error {
    body := strings.TrimSpace(`
To: %s
Subject: [Support][%s] %s

From: %s <%s>

%s
`)

    msg := []byte(fmt.Sprintf(body, s.username, issueType, subject, name, email, message))
    return s.send(s.username, msg)
}
