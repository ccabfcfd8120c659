package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendCaseTranscript(toEmail, sessionId string, unresolved bool, summary, logText string) error
}

type emailService struct {
	dialer       *gomail.Dialer
	senderEmail  string
	supportEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail, supportEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:       d,
		senderEmail:  senderEmail,
		supportEmail: supportEmail,
	}
}

// SendCaseTranscript mails the closing summary and full log of a helpdesk
// session. Unresolved cases are CC'd to the support inbox for follow-up.
func (s *emailService) SendCaseTranscript(toEmail, sessionId string, unresolved bool, summary, logText string) error {
	status := "RESOLVED"
	if unresolved {
		status = "UNRESOLVED"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("%s: AI Helpdesk Session Log (Session ID: %s)", status, sessionId))
	if unresolved && s.supportEmail != "" {
		m.SetHeader("Cc", s.supportEmail)
	}

	body := fmt.Sprintf(`Dear User,

Below is the summary and full log of your recent session with the AI Helpdesk:

Session Summary:
%s

Full Conversation Log:
%s

Thank you for using our AI Helpdesk!
`, summary, logText)

	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send case transcript to %s: %w", toEmail, err)
	}

	return nil
}
