// AngelaMos | 2026
// mailer.go

package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/carterperez-dev/reviewboard/internal/config"
)

// Mailer delivers confirmation codes over SMTP. It satisfies the auth
// package's CodeSender interface.
type Mailer struct {
	client *gomail.Client
	from   string
}

func NewMailer(cfg config.MailConfig) (*Mailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(cfg.Timeout),
	}

	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	if cfg.TLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create mail client: %w", err)
	}

	return &Mailer{
		client: client,
		from:   cfg.From,
	}, nil
}

func (m *Mailer) SendConfirmationCode(
	ctx context.Context,
	recipient, username, code string,
) error {
	msg := gomail.NewMsg()

	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	msg.Subject("Your confirmation code")
	msg.SetBodyString(gomail.TypeTextPlain, ConfirmationBody(username, code))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}

// ConfirmationBody renders the plain-text body of a confirmation mail.
func ConfirmationBody(username, code string) string {
	return fmt.Sprintf(
		"Hello %s,\n\nYour confirmation code for requesting an access token is: %s\n",
		username,
		code,
	)
}
