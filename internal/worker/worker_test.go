package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEnviador struct {
	enviados []string
	err      error
}

func (s *stubEnviador) Enviar(to, _, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.enviados = append(s.enviados, to)
	return nil
}

func payload(t *testing.T, n Notificacion) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(n)
	require.NoError(t, err)
	return b
}

func TestNotificacionWorker_Sends(t *testing.T) {
	m := &stubEnviador{}
	w := NewNotificacionWorker(m)
	err := w.Process(context.Background(), payload(t, Notificacion{Para: "a@b.cl", Asunto: "x", Cuerpo: "y"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.cl"}, m.enviados)
}

func TestNotificacionWorker_FailureIsRetryable(t *testing.T) {
	w := NewNotificacionWorker(&stubEnviador{err: errors.New("smtp caido")})
	err := w.Process(context.Background(), payload(t, Notificacion{Para: "a@b.cl"}))
	assert.Error(t, err)
}

func TestNotificacionWorker_DropsInvalidPayload(t *testing.T) {
	m := &stubEnviador{}
	w := NewNotificacionWorker(m)
	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{bad`)))
	assert.NoError(t, w.Process(context.Background(), payload(t, Notificacion{})))
	assert.Empty(t, m.enviados)
}

func TestDispatcher_DisabledIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.False(t, d.Habilitado())
	assert.NoError(t, d.EncolarNotificacion(context.Background(), Notificacion{Para: "a@b.cl"}))
	assert.NoError(t, NewDispatcher(nil).EncolarNotificacion(context.Background(), Notificacion{Para: "a@b.cl"}))
}

func TestEsperaReintento(t *testing.T) {
	assert.Equal(t, time.Minute, esperaReintento(1))
	assert.Equal(t, 2*time.Minute, esperaReintento(2))
	assert.Equal(t, 4*time.Minute, esperaReintento(3))
	assert.Equal(t, time.Minute, esperaReintento(0))
}
