// Package notification turns automation delivery intents into actual
// outbound messages. The activity timeline is the source of truth; everything
// here is best effort and failures only ever reach the log.
package notification

import (
	"context"

	"atlascasa_backend/internal/email"
	"atlascasa_backend/internal/events"
	apphttp "atlascasa_backend/internal/http"
	"atlascasa_backend/internal/whatsapp"
	"atlascasa_backend/platform/logger"
)

const defaultLeadEmailSubject = "AtlasCasa - seguimento do seu contacto"

type Module struct {
	whatsapp *whatsapp.Client
	email    *email.Sender
	log      *logger.Logger
}

func NewModule(bus events.Bus, wa *whatsapp.Client, sender *email.Sender, log *logger.Logger) *Module {
	m := &Module{whatsapp: wa, email: sender, log: log}
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(m.onLeadCreated))
	return m
}

func (m *Module) Name() string { return "notification" }

// RegisterRoutes is a no-op; the module only listens on the event bus.
func (m *Module) RegisterRoutes(_ *apphttp.RouterContext) {}

func (m *Module) onLeadCreated(ctx context.Context, event events.Event) error {
	created, ok := event.(events.LeadCreated)
	if !ok {
		return nil
	}

	for _, msg := range created.Messages {
		switch msg.Channel {
		case events.ChannelWhatsApp:
			if created.Phone == "" {
				continue
			}
			if err := m.whatsapp.SendMessage(ctx, created.Phone, msg.Body); err != nil {
				m.log.DeliveryError("whatsapp", created.LeadID.String(), err)
			}

		case events.ChannelEmail:
			if created.Email == "" {
				continue
			}
			subject := msg.Subject
			if subject == "" {
				subject = defaultLeadEmailSubject
			}
			if err := m.email.SendLeadEmail(ctx, created.Email, created.Name, subject, msg.Body); err != nil {
				m.log.DeliveryError("email", created.LeadID.String(), err)
			}
		}
	}

	return nil
}
