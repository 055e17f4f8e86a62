package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/mail"
	"github.com/spec-kit/helpdesk/internal/repository"
)

// NotificationService turns domain events into email.
type NotificationService struct {
	dispatcher events.Dispatcher
	tickets    repository.TicketRepository
	users      repository.UserRepository
	mailer     *mail.Mailer
	logger     *zap.Logger
	cfg        config.SMTPConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, tickets repository.TicketRepository, users repository.UserRepository, mailer *mail.Mailer, logger *zap.Logger, cfg config.SMTPConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		tickets:    tickets,
		users:      users,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
	n.dispatcher.Subscribe(events.EventTicketCommented, n.handleTicketCommented)
	n.dispatcher.Subscribe(events.EventTicketReopened, n.handleTicketReopened)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("TicketCreated",
		zap.String("ticket_id", event.TicketID),
		zap.String("external_key", payload.ExternalKey))

	recipients := n.cfg.AdminsTo
	subject := fmt.Sprintf("[%s] new ticket: %s", payload.ExternalKey, payload.Title)
	body := fmt.Sprintf("A new %s priority ticket was opened.\n\nTitle: %s\nKey: %s\n",
		payload.Priority, payload.Title, payload.ExternalKey)
	return n.send(ctx, recipients, subject, body)
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("TicketStatusChanged",
		zap.String("ticket_id", event.TicketID),
		zap.String("old", string(payload.OldStatus)),
		zap.String("new", string(payload.NewStatus)))

	ticket, requester, err := n.lookupTicket(ctx, event.TicketID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("[%s] status changed to %s", ticket.ExternalKey, payload.NewStatus)
	body := fmt.Sprintf("Your ticket %q moved from %s to %s.\n", ticket.Title, payload.OldStatus, payload.NewStatus)
	return n.send(ctx, []string{requester.Email}, subject, body)
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok || payload.AssigneeID == nil {
		return nil
	}
	assignee, err := n.users.GetByID(ctx, *payload.AssigneeID)
	if err != nil {
		return err
	}
	ticket, _, err := n.lookupTicket(ctx, event.TicketID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("[%s] assigned to you", ticket.ExternalKey)
	body := fmt.Sprintf("Ticket %q has been assigned to you.\n", ticket.Title)
	return n.send(ctx, []string{assignee.Email}, subject, body)
}

func (n *NotificationService) handleTicketCommented(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCommentedPayload)
	if !ok || payload.IsInternal {
		// Internal notes stay invisible to requesters.
		return nil
	}
	ticket, requester, err := n.lookupTicket(ctx, event.TicketID)
	if err != nil {
		return err
	}
	if event.ActorID == requester.ID {
		return nil
	}
	subject := fmt.Sprintf("[%s] new reply", ticket.ExternalKey)
	body := fmt.Sprintf("There is a new reply on your ticket %q:\n\n%s\n", ticket.Title, payload.BodyPreview)
	return n.send(ctx, []string{requester.Email}, subject, body)
}

func (n *NotificationService) handleTicketReopened(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketReopenedPayload)
	if !ok {
		return nil
	}
	ticket, _, err := n.lookupTicket(ctx, event.TicketID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("[%s] reopened", ticket.ExternalKey)
	body := fmt.Sprintf("Ticket %q was reopened (reopen #%d).\n", ticket.Title, payload.ReopenCount)
	return n.send(ctx, n.cfg.AdminsTo, subject, body)
}

func (n *NotificationService) lookupTicket(ctx context.Context, ticketID string) (*domain.Ticket, *domain.User, error) {
	ticket, err := n.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	requester, err := n.users.GetByID(ctx, ticket.RequesterID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, requester, nil
}

func (n *NotificationService) send(ctx context.Context, to []string, subject, body string) error {
	if n.mailer == nil {
		return nil
	}
	if err := n.mailer.Send(ctx, to, subject, body); err != nil {
		n.logger.Warn("mail send failed", zap.Error(err), zap.String("subject", subject))
	}
	return nil
}
