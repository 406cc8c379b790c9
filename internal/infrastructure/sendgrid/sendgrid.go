// Package sendgrid implementa el puerto de notificaciones sobre la API REST
// v3 de SendGrid (mail/send con plantillas dinámicas). Usa net/http de la
// librería estándar; no requiere el SDK oficial.
package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/benettihome/operaciones-api/internal/application/ports"
	"github.com/benettihome/operaciones-api/pkg/config"
)

// Verificar en tiempo de compilación que Service implementa NotificationService.
var _ ports.NotificationService = (*Service)(nil)

const mailSendURL = "https://api.sendgrid.com/v3/mail/send"

// Service adaptador de correo transaccional.
type Service struct {
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
}

// New construye el adaptador. Si apiKey está vacío los envíos devuelven error
// descriptivo en lugar de panic.
func New(cfg config.SendGridConfig) *Service {
	return &Service{
		apiKey:    cfg.APIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo mail/send v3 ───────────────────────────

type mailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalization struct {
	To                  []mailAddress  `json:"to"`
	DynamicTemplateData map[string]any `json:"dynamic_template_data,omitempty"`
}

type mailRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             mailAddress       `json:"from"`
	TemplateID       string            `json:"template_id"`
}

type mailError struct {
	Errors []struct {
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"errors"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Send envía una notificación por plantilla dinámica a todos los
// destinatarios dentro de una sola personalización.
func (s *Service) Send(ctx context.Context, n ports.Notification) error {
	if s.apiKey == "" {
		return fmt.Errorf("sendgrid: SENDGRID_API_KEY no configurado")
	}
	if len(n.To) == 0 {
		return fmt.Errorf("sendgrid: notificación sin destinatarios")
	}
	if n.TemplateID == "" {
		return fmt.Errorf("sendgrid: notificación sin plantilla")
	}

	to := make([]mailAddress, 0, len(n.To))
	for _, email := range n.To {
		to = append(to, mailAddress{Email: email})
	}

	payload := mailRequest{
		Personalizations: []personalization{
			{To: to, DynamicTemplateData: n.DynamicData},
		},
		From:       mailAddress{Email: s.fromEmail, Name: s.fromName},
		TemplateID: n.TemplateID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sendgrid: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mailSendURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sendgrid: crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid: enviar correo: %w", err)
	}
	defer resp.Body.Close()

	// 202 Accepted es la respuesta normal de mail/send.
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr mailError
	if json.Unmarshal(raw, &apiErr) == nil && len(apiErr.Errors) > 0 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, apiErr.Errors[0].Message)
	}
	return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, string(raw))
}
