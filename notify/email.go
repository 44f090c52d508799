package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"civicreport-be/models"
)

// Sender is the outbound mail transport.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// SMTPSender delivers mail over SMTP with STARTTLS.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}

type emailJob struct {
	to      string
	subject string
	body    string
}

// EmailDispatcher sends mail off the request path through a bounded
// worker pool. Enqueue never blocks and delivery failures are logged and
// discarded; the caller can never observe them.
type EmailDispatcher struct {
	sender  Sender
	jobs    chan emailJob
	workers sync.WaitGroup
	pending sync.WaitGroup
	log     zerolog.Logger
}

func NewEmailDispatcher(sender Sender, workers, queueSize int, log zerolog.Logger) *EmailDispatcher {
	d := &EmailDispatcher{
		sender: sender,
		jobs:   make(chan emailJob, queueSize),
		log:    log,
	}
	for i := 0; i < workers; i++ {
		d.workers.Add(1)
		go d.run()
	}
	return d
}

func (d *EmailDispatcher) run() {
	defer d.workers.Done()
	for job := range d.jobs {
		if err := d.sender.Send(job.to, job.subject, job.body); err != nil {
			d.log.Warn().Err(err).Str("to", job.to).Msg("failed to send email")
		} else {
			d.log.Info().Str("to", job.to).Msg("email sent")
		}
		d.pending.Done()
	}
}

// Enqueue queues one message for background delivery. When the queue is
// full the message is dropped with a warning; this channel is best-effort.
func (d *EmailDispatcher) Enqueue(to, subject, htmlBody string) {
	d.pending.Add(1)
	select {
	case d.jobs <- emailJob{to: to, subject: subject, body: htmlBody}:
	default:
		d.pending.Done()
		d.log.Warn().Str("to", to).Msg("email queue full, dropping message")
	}
}

// Flush blocks until every queued message has been handed to the sender.
// Test hook; the request path never calls it.
func (d *EmailDispatcher) Flush() {
	d.pending.Wait()
}

// Close drains the queue and stops the workers.
func (d *EmailDispatcher) Close() {
	close(d.jobs)
	d.workers.Wait()
}

// StatusUpdateEmail builds the subject and HTML body for a status-change
// notification to the issue reporter.
func StatusUpdateEmail(reporterName, issueTitle string, newStatus models.IssueStatus, updatedBy string) (subject, body string) {
	subject = fmt.Sprintf("Issue Status Update - %s", issueTitle)
	body = fmt.Sprintf(`
	<html>
	<body>
		<h2>Your Civic Issue Status Has Been Updated</h2>
		<p>Dear %s,</p>

		<p>We wanted to inform you that the status of your reported issue has been updated:</p>

		<div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 15px 0;">
			<h3>Issue Details:</h3>
			<p><strong>Title:</strong> %s</p>
			<p><strong>New Status:</strong> <span style="color: #007bff; font-weight: bold;">%s</span></p>
			<p><strong>Updated by:</strong> %s</p>
			<p><strong>Date:</strong> %s</p>
		</div>

		<p>Thank you for helping improve our community by reporting this issue.</p>

		<p>Best regards,<br>
		Civic Issue Reporting System</p>
	</body>
	</html>
	`, reporterName, issueTitle, newStatus, updatedBy, time.Now().UTC().Format("January 2, 2006 at 3:04 PM"))
	return subject, body
}
