package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Notificacion is the payload of QueueNotificaciones.
type Notificacion struct {
	Para   string `json:"para"`
	Asunto string `json:"asunto"`
	Cuerpo string `json:"cuerpo"`
}

// Enviador sends a plain-text mail. Implemented by infra.Mailer.
type Enviador interface {
	Enviar(to, subject, body string) error
}

// NotificacionWorker delivers queued notifications by SMTP.
type NotificacionWorker struct {
	mailer Enviador
}

func NewNotificacionWorker(mailer Enviador) *NotificacionWorker {
	return &NotificacionWorker{mailer: mailer}
}

func (w *NotificacionWorker) Process(_ context.Context, raw json.RawMessage) error {
	var n Notificacion
	if err := json.Unmarshal(raw, &n); err != nil {
		// a malformed payload will never succeed; drop it
		log.Error().Err(err).Msg("notificacion: payload invalido")
		return nil
	}
	if n.Para == "" {
		log.Warn().Msg("notificacion: sin destinatario, se omite")
		return nil
	}
	if err := w.mailer.Enviar(n.Para, n.Asunto, n.Cuerpo); err != nil {
		return fmt.Errorf("notificacion a %s: %w", n.Para, err)
	}
	log.Info().Str("para", n.Para).Str("asunto", n.Asunto).Msg("notificacion enviada")
	return nil
}
