// Package campaign sends personalized bulk emails: it reads a contact
// list, substitutes per-contact placeholders into a subject/body template,
// and dispatches each message sequentially over a single authenticated
// mail-transport connection.
//
// The library provides a clean, idiomatic Go API with support for multiple
// mail transports, per-contact failure isolation, optional inter-send rate
// limiting, and a dry-run preview mode that never opens a connection.
//
// # Basic Usage
//
//	config := campaign.DefaultConfig()
//	config.Sender = campaign.SenderConfig{Name: "Ana", Email: "ana@example.com"}
//	config.Transport = campaign.TransportConfig{
//		Type: campaign.TransportSMTP,
//		Settings: campaign.TransportSettings{
//			"host": "smtp.example.com",
//			"port": "587",
//		},
//	}
//
//	runner, err := campaign.New(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	contacts, err := campaign.LoadContactsFile("contacts.csv")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := runner.Run(context.Background(), contacts,
//		"Hello {{name}}", "Hi {{name}}, today is {{today}}.")
//
// # Supported Transports
//
//   - Generic SMTP (plaintext, STARTTLS, or implicit TLS)
//   - AWS SES
//   - SendGrid
//   - Mailgun
//
// # Features
//
//   - Literal {{key}} placeholder rendering with built-in values
//   - CSV contact loading with case-normalized fields
//   - Strictly sequential sends over one reused connection
//   - A failed send never aborts the run
//   - Row limits and configurable inter-send delay
//   - Dry-run previews without a relay connection
//   - Distributed tracing with OpenTelemetry
package campaign
