package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hugohenrick/emceep/pkg/logger"
	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ErrNotConfigured is returned by senders that have no credentials.
var ErrNotConfigured = errors.New("twilio credentials not configured")

// Sender envia mensagens SMS
type Sender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// TwilioConfig contém as credenciais da conta Twilio
type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	FromNumber  string
	HTTPTimeout time.Duration

	// Transport substitui o transporte HTTP padrão quando não é nil
	Transport http.RoundTripper
}

// Configured reports whether every credential is set.
func (c TwilioConfig) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// TwilioSender envia SMS pelo SDK oficial da Twilio
type TwilioSender struct {
	cfg    TwilioConfig
	client *twilio.RestClient
	logger logger.Logger
}

// APIError is the error returned by the Twilio API. Use errors.As to read the
// Twilio error code.
type APIError = twclient.TwilioRestError

// NewSender returns a TwilioSender when credentials are present and a disabled
// sender otherwise.
func NewSender(cfg TwilioConfig, log logger.Logger) Sender {
	log = logger.OrNop(log)
	if !cfg.Configured() {
		log.Warn("Twilio credentials not found, SMS disabled")
		return Disabled{}
	}
	return NewTwilioSender(cfg, log)
}

// NewTwilioSender cria um cliente Twilio com as credenciais informadas
func NewTwilioSender(cfg TwilioConfig, log logger.Logger) *TwilioSender {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	base := &twclient.Client{
		Credentials: twclient.NewCredentials(cfg.AccountSID, cfg.AuthToken),
		HTTPClient:  &http.Client{Timeout: timeout, Transport: cfg.Transport},
	}
	base.SetAccountSid(cfg.AccountSID)

	return &TwilioSender{
		cfg:    cfg,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{Client: base}),
		logger: logger.OrNop(log),
	}
}

// Send envia body para o número to e retorna o SID da mensagem
func (s *TwilioSender) Send(ctx context.Context, to, body string) (string, error) {
	if !s.cfg.Configured() {
		return "", ErrNotConfigured
	}
	// o SDK não recebe context; um contexto já cancelado não chega a enviar
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.cfg.FromNumber)
	params.SetBody(body)

	msg, err := s.client.Api.CreateMessage(params)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			s.logger.Error("Twilio retornou erro", "status", apiErr.Status, "code", apiErr.Code)
			return "", err
		}
		s.logger.Error("Erro na chamada da API Twilio", "error", err)
		return "", fmt.Errorf("twilio request: %w", err)
	}

	sid := ""
	if msg.Sid != nil {
		sid = *msg.Sid
	}
	s.logger.Info("SMS sent", "to", to, "sid", sid)
	return sid, nil
}

// Disabled is the sender used when Twilio is not configured.
type Disabled struct{}

// Send always fails with ErrNotConfigured.
func (Disabled) Send(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}

// Truncate shortens body to limit runes followed by "..." when it is longer.
func Truncate(body string, limit int) string {
	runes := []rune(body)
	if len(runes) <= limit {
		return body
	}
	return string(runes[:limit]) + "..."
}
