// Package notify delivers meeting emails when a swap is accepted. Delivery
// is best effort and happens off the request path.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"
	"time"

	"github.com/GiorgiUbiria/skill_swap/internal/logger"
	"github.com/GiorgiUbiria/skill_swap/internal/metrics"
	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Recipient is one side of an accepted swap.
type Recipient struct {
	Name  string
	Email string
}

// MeetingNotice describes an accepted swap; both parties are emailed.
type MeetingNotice struct {
	SwapID    string
	PostTitle string
	Requester Recipient
	Owner     Recipient
	Date      string
	Time      string
	Link      string
}

var meetingTmpl = template.Must(template.New("meeting").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 30px; color: #333;">
<h2 style="color: #4f46e5;">Meeting Scheduled.</h2>
<p>Hi <b>{{.Name}}</b>,</p>
<p>{{.Lead}} <b>{{.PostTitle}}</b>.</p>
<div style="background-color: #f8fafc; padding: 20px; margin: 25px 0;">
<p><b>Date:</b> {{.Date}}</p>
<p><b>Time:</b> {{.Time}}</p>
<p><b>Link:</b> <a href="{{.Link}}">Join Meeting</a></p>
</div>
<p style="font-size: 12px; color: #94a3b8;">Sent via SkillSwap.</p>
</div>`))

func renderMeeting(n MeetingNotice, to Recipient, lead string) (Message, error) {
	var buf bytes.Buffer
	err := meetingTmpl.Execute(&buf, struct {
		Name, Lead, PostTitle, Date, Time, Link string
	}{to.Name, lead, n.PostTitle, n.Date, n.Time, n.Link})
	if err != nil {
		return Message{}, fmt.Errorf("render meeting email: %w", err)
	}
	return Message{
		To:      to.Email,
		Subject: "Swap Accepted: " + n.PostTitle,
		HTML:    buf.String(),
	}, nil
}

// MeetingMessages renders the requester and owner emails for n.
func MeetingMessages(n MeetingNotice) ([]Message, error) {
	forRequester, err := renderMeeting(n, n.Requester, "Your swap request has been accepted for")
	if err != nil {
		return nil, err
	}
	forOwner, err := renderMeeting(n, n.Owner, "You scheduled a meeting with "+n.Requester.Name+" for")
	if err != nil {
		return nil, err
	}
	return []Message{forRequester, forOwner}, nil
}

// Dispatcher sends notices in the background, each bounded by timeout.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(sender Sender, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{sender: sender, timeout: timeout}
}

// MeetingScheduled returns immediately; failures are logged and counted.
func (d *Dispatcher) MeetingScheduled(n MeetingNotice) {
	msgs, err := MeetingMessages(n)
	if err != nil {
		metrics.Notifications.WithLabelValues("failed").Inc()
		logger.Log.Error("meeting notification not sent", zap.String("swap_id", n.SwapID), zap.Error(err))
		return
	}

	for _, msg := range msgs {
		d.wg.Add(1)
		go func(msg Message) {
			defer d.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			defer cancel()

			if err := d.sender.Send(ctx, msg); err != nil {
				metrics.Notifications.WithLabelValues("failed").Inc()
				logger.Log.Error("email sending failed",
					zap.String("swap_id", n.SwapID),
					zap.String("to", msg.To),
					zap.Error(err))
				return
			}
			metrics.Notifications.WithLabelValues("sent").Inc()
		}(msg)
	}
}

// Wait blocks until in-flight sends finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
