// Package email notifies salon staff about new bookings and contact messages.
// A nil *Service is valid and sends nothing.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"

	"github.com/rs/zerolog/log"
)

const queueSize = 100

// Sender delivers one rendered message
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Config configures staff notifications
type Config struct {
	SendGrid SendGridConfig

	// StaffEmail receives every notification
	StaffEmail string
}

// BookingNotice is the content of a new-booking email
type BookingNotice struct {
	ID            int64
	CustomerName  string
	CustomerPhone string
	PetName       string
	PetBreed      string
	ServiceName   string
	Date          string
	Time          string
	Notes         string
}

// ContactNotice is the content of a new-message email
type ContactNotice struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Message string
}

type queued struct {
	subject  string
	template string
	data     interface{}
}

// Service renders notifications and sends them from a background worker
type Service struct {
	sender    Sender
	to        string
	templates map[string]*template.Template
	base      *template.Template
	queue     chan *queued
	wg        sync.WaitGroup
}

// NewService creates a SendGrid backed notifier
func NewService(cfg Config) *Service {
	return NewServiceWithSender(NewSendGridClient(cfg.SendGrid), cfg.StaffEmail)
}

// NewServiceWithSender creates a notifier delivering through sender
func NewServiceWithSender(sender Sender, staffEmail string) *Service {
	s := &Service{
		sender:    sender,
		to:        staffEmail,
		templates: make(map[string]*template.Template),
		base:      template.Must(template.New("base").Parse(BaseTemplate)),
		queue:     make(chan *queued, queueSize),
	}
	for name, content := range map[string]string{
		"new_booking": NewBookingTemplate,
		"new_contact": NewContactTemplate,
	} {
		s.templates[name] = template.Must(template.New(name).Parse(content))
	}

	s.wg.Add(1)
	go s.worker()
	return s
}

func (s *Service) worker() {
	defer s.wg.Done()

	for q := range s.queue {
		if err := s.send(context.Background(), q); err != nil {
			log.Error().Err(err).
				Str("template", q.template).
				Msg("Failed to send staff notification")
		}
	}
}

func (s *Service) send(ctx context.Context, q *queued) error {
	var content bytes.Buffer
	if err := s.templates[q.template].Execute(&content, q.data); err != nil {
		return fmt.Errorf("render %s: %w", q.template, err)
	}

	var html bytes.Buffer
	if err := s.base.Execute(&html, map[string]interface{}{
		"Content": template.HTML(content.String()),
	}); err != nil {
		return fmt.Errorf("render base: %w", err)
	}

	return s.sender.Send(ctx, &Message{
		To:          s.to,
		Subject:     q.subject,
		HTMLContent: html.String(),
	})
}

func (s *Service) enqueue(q *queued) {
	if s == nil {
		return
	}
	select {
	case s.queue <- q:
	default:
		log.Warn().Str("template", q.template).Msg("Email queue full, dropping notification")
	}
}

// NotifyBooking queues a new-booking email to the staff
func (s *Service) NotifyBooking(n BookingNotice) {
	s.enqueue(&queued{
		subject:  fmt.Sprintf("Новая запись: %s %s", n.Date, n.Time),
		template: "new_booking",
		data:     n,
	})
}

// NotifyContact queues a new-message email to the staff
func (s *Service) NotifyContact(n ContactNotice) {
	s.enqueue(&queued{
		subject:  "Новое сообщение от " + n.Name,
		template: "new_contact",
		data:     n,
	})
}

// Close drains the queue and stops the worker
func (s *Service) Close() {
	if s == nil {
		return
	}
	close(s.queue)
	s.wg.Wait()
}
