package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/akozhevnikov/coffeeshop/internal/models"
)

// sendTimeout ограничивает одну попытку доставки; зависший SMTP не
// должен держать goroutine вечно
const sendTimeout = 15 * time.Second

// Config описывает SMTP-транспорт и базовый URL приложения
// (для ссылок сброса пароля)
type Config struct {
	Host     string
	Port     int
	Secure   bool // true — implicit TLS (порт 465), false — STARTTLS
	User     string
	Password string
	From     string // адрес отправителя; пустой — используется User
	AppURL   string
}

// EmailService отправляет транзакционные письма best-effort.
// Каждый Send* запускает доставку в отдельной goroutine и сразу
// возвращается; ошибки логируются и никогда не доходят до вызывающего.
// Без настроенных креденшелов сервис работает как no-op.
type EmailService struct {
	logger *slog.Logger
	cfg    Config
}

// NewEmailService создает новый EmailService
func NewEmailService(logger *slog.Logger, cfg Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
	}
}

// Enabled сообщает, настроен ли почтовый транспорт
func (s *EmailService) Enabled() bool {
	return s.cfg.User != "" && s.cfg.Password != ""
}

// newClient создает SMTP-клиент на одну отправку
func (s *EmailService) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Password),
		mail.WithTimeout(sendTimeout),
	}
	if s.cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	return mail.NewClient(s.cfg.Host, opts...)
}

// from возвращает адрес отправителя
func (s *EmailService) from() string {
	if s.cfg.From != "" {
		return s.cfg.From
	}
	return s.cfg.User
}

// appURL возвращает базовый URL приложения для ссылок в письмах
func (s *EmailService) appURL() string {
	if s.cfg.AppURL != "" {
		return strings.TrimRight(s.cfg.AppURL, "/")
	}
	return "http://localhost:8080"
}

// dispatch отправляет письмо асинхронно. Возврат немедленный;
// результат доставки только логируется.
func (s *EmailService) dispatch(kind, to, subject, text, html string) {
	if !s.Enabled() {
		s.logger.Warn("email service not configured, skipping email", slog.String("kind", kind))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := s.send(ctx, to, subject, text, html); err != nil {
			s.logger.Error("failed to send email",
				slog.String("kind", kind),
				slog.Any("error", err))
			return
		}

		s.logger.Info("email sent",
			slog.String("kind", kind),
			slog.String("to", to))
	}()
}

func (s *EmailService) send(ctx context.Context, to, subject, text, html string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from()); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)

	client, err := s.newClient()
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to deliver mail: %w", err)
	}

	return nil
}

// SendWelcomeEmail отправляет приветственное письмо после регистрации
func (s *EmailService) SendWelcomeEmail(email, username string) {
	html := fmt.Sprintf(`<html><body>
<h2>Welcome to Coffee Shop!</h2>
<p>Hi <strong>%s</strong>,</p>
<p>Thank you for registering with us! You can now browse the coffee
collection, place orders and track them in your dashboard.</p>
<p>Happy brewing!<br>The Coffee Shop Team</p>
</body></html>`, username)

	text := fmt.Sprintf("Welcome to Coffee Shop, %s! Thank you for registering.", username)

	s.dispatch("welcome", email, "Welcome to Coffee Shop - Registration Successful!", text, html)
}

// SendOrderConfirmationEmail отправляет подтверждение заказа со
// снапшотами позиций
func (s *EmailService) SendOrderConfirmationEmail(email, username string, order *models.Order) {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>$%.2f</td></tr>",
			item.NameSnapshot, item.Quantity, item.PriceSnapshot*float64(item.Quantity))
	}

	html := fmt.Sprintf(`<html><body>
<h2>Order Confirmation</h2>
<p>Hi <strong>%s</strong>,</p>
<p>Thank you for your order! We're preparing your coffee.</p>
<p><strong>Order ID:</strong> %s<br><strong>Status:</strong> %s</p>
<table><tr><th>Item</th><th>Quantity</th><th>Price</th></tr>%s</table>
<p><strong>Total: $%.2f</strong></p>
<p>The Coffee Shop Team</p>
</body></html>`, username, order.ID, order.Status, rows.String(), order.TotalPrice)

	text := fmt.Sprintf("Order confirmation for %s. Order ID: %s. Total: $%.2f",
		username, order.ID, order.TotalPrice)

	s.dispatch("order_confirmation", email,
		fmt.Sprintf("Order Confirmation - Order #%s", order.ID), text, html)
}

// SendPasswordResetEmail отправляет ссылку сброса пароля.
// Ссылка живет один час (TTL reset-токена).
func (s *EmailService) SendPasswordResetEmail(email, username, resetToken string) {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.appURL(), resetToken)

	html := fmt.Sprintf(`<html><body>
<h2>Password Reset Request</h2>
<p>Hi <strong>%s</strong>,</p>
<p>We received a request to reset your password. Follow the link below:</p>
<p><a href="%s">Reset Password</a></p>
<p>This link will expire in 1 hour. If you didn't request this, please
ignore this email.</p>
<p>The Coffee Shop Team</p>
</body></html>`, username, resetLink)

	text := fmt.Sprintf("Click here to reset your password: %s", resetLink)

	s.dispatch("password_reset", email, "Password Reset Request - Coffee Shop", text, html)
}

// TestConnection проверяет доступность SMTP-сервера. Диагностика при
// старте процесса: результат advisory, запуск не блокируется.
func (s *EmailService) TestConnection(ctx context.Context) bool {
	if !s.Enabled() {
		s.logger.Warn("email service not configured")
		return false
	}

	client, err := s.newClient()
	if err != nil {
		s.logger.Error("email service configuration issue", slog.Any("error", err))
		return false
	}

	if err := client.DialWithContext(ctx); err != nil {
		s.logger.Error("email service connection failed", slog.Any("error", err))
		return false
	}

	if err := client.Close(); err != nil {
		s.logger.Warn("failed to close smtp connection", slog.Any("error", err))
	}

	s.logger.Info("email service is properly configured and connected")

	return true
}
