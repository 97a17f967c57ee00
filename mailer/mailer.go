package mailer

import (
	"fmt"
	"io"
	"regexp"

	gomail "gopkg.in/gomail.v2"
)

var addressRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// ValidAddress reports whether addr has a local@domain.tld shape. This
// is a plausibility check, not RFC 5322.
func ValidAddress(addr string) bool {
	return addressRe.MatchString(addr)
}

type Message struct {
	To      string
	Subject string
	HTML    string

	// optional binary attachment, sent as application/pdf
	AttachmentName string
	Attachment     []byte
}

// Sender delivers a message in a single attempt. No retry: the callers
// that care (receipt delivery) log and move on.
type Sender interface {
	Send(m Message) error
}

type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password, from: from}
}

func (ml *Mailer) Send(m Message) error {
	if !ValidAddress(m.To) {
		return fmt.Errorf("invalid recipient address %q", m.To)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", ml.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTML)

	if len(m.Attachment) > 0 {
		data := m.Attachment
		msg.Attach(m.AttachmentName,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {"application/pdf"},
			}),
		)
	}

	d := gomail.NewDialer(ml.host, ml.port, ml.username, ml.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", m.To, err)
	}
	return nil
}
