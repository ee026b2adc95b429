package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dongbac/feedback-backend/config"
	apperrors "github.com/dongbac/feedback-backend/errors"
	"github.com/dongbac/feedback-backend/logger"
	"github.com/dongbac/feedback-backend/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wneessen/go-mail"
)

// The recipient and subject prefix are fixed by the unit, not configurable.
const (
	notifyRecipient = "admin@gmail.com"
	subjectPrefix   = "Hòm thư CSCĐ Đông Bắc"

	namePlaceholder   = "(không cung cấp)"
	imagesPlaceholder = "(không có)"
)

type NotificationMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// NotificationService sends one best-effort email per accepted record to
// the unit administrator. With missing SMTP credentials it runs as a
// deliberate no-op.
type NotificationService struct {
	config  *config.SMTPConfig
	send    func(ctx context.Context, msg *mail.Msg) error
	metrics *NotificationMetrics
}

func NewNotificationService(cfg *config.SMTPConfig) *NotificationService {
	return NewNotificationServiceWithRegistry(cfg, prometheus.DefaultRegisterer)
}

func NewNotificationServiceWithRegistry(cfg *config.SMTPConfig, reg prometheus.Registerer) *NotificationService {
	log := logger.GetLogger()
	metrics := &NotificationMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feedback_notification_send_duration_seconds",
			Help:    "Time taken to send notification emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedback_notification_errors_total",
			Help: "Total number of notification sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedback_notifications_sent_total",
			Help: "Total number of notifications sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	svc := &NotificationService{
		config:  cfg,
		metrics: metrics,
	}

	if !cfg.Enabled() {
		log.Info("Notification delivery disabled: SMTP credentials not configured")
		return svc
	}

	log.Infow("Initializing notification service",
		"host", cfg.Host,
		"port", cfg.Port,
		"username", logger.MaskEmail(cfg.Username))

	svc.send = func(ctx context.Context, msg *mail.Msg) error {
		client, err := mail.NewClient(cfg.Host,
			mail.WithPort(cfg.Port),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
			mail.WithTLSPortPolicy(mail.TLSMandatory),
			mail.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		)
		if err != nil {
			return fmt.Errorf("failed to create smtp client: %w", err)
		}
		return client.DialAndSendWithContext(ctx, msg)
	}
	return svc
}

// Enabled reports whether delivery is configured.
func (s *NotificationService) Enabled() bool {
	return s.config.Enabled()
}

// Notify attempts exactly one delivery for rec. When disabled it returns
// nil without touching the network. Any connection, authentication or send
// failure is returned as a NotificationError for the caller to downgrade
// to a warning; it must never fail the submission.
func (s *NotificationService) Notify(ctx context.Context, rec *types.FeedbackRecord) error {
	if !s.Enabled() {
		return nil
	}

	startTime := time.Now()
	log := logger.GetLogger()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	msg := mail.NewMsg()
	if err := msg.From(s.config.Username); err != nil {
		s.metrics.errorCount.Inc()
		return apperrors.NewNotificationError(fmt.Errorf("invalid sender address: %w", err))
	}
	if err := msg.To(notifyRecipient); err != nil {
		s.metrics.errorCount.Inc()
		return apperrors.NewNotificationError(fmt.Errorf("invalid recipient address: %w", err))
	}
	msg.Subject(subjectFor(rec))
	msg.SetBodyString(mail.TypeTextPlain, bodyFor(rec))

	if err := s.send(ctx, msg); err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to send notification email",
			"error", err,
			"to", notifyRecipient,
			"priority", rec.Priority)
		return apperrors.NewNotificationError(err)
	}

	s.metrics.sentCount.Inc()
	log.Infow("Notification email sent",
		"to", notifyRecipient,
		"priority", rec.Priority)

	return nil
}

// subjectFor builds the fixed subject line: [<prefix>] <priority> - <title>.
func subjectFor(rec *types.FeedbackRecord) string {
	return fmt.Sprintf("[%s] %s - %s", subjectPrefix, rec.Priority, rec.Title)
}

// bodyFor enumerates every record field in a fixed human-readable order,
// substituting placeholders for empty name and images.
func bodyFor(rec *types.FeedbackRecord) string {
	name := rec.Name
	if name == "" {
		name = namePlaceholder
	}
	images := rec.Images
	if images == "" {
		images = imagesPlaceholder
	}

	lines := []string{
		"Bạn có một phản hồi mới từ Hòm thư góp ý Trung đoàn CSCĐ Đông Bắc:",
		"",
		"Thời gian: " + rec.Timestamp,
		"Họ và tên: " + name,
		"Danh mục: " + rec.Category,
		"Mức độ ưu tiên: " + rec.Priority,
		"Tiêu đề: " + rec.Title,
		"Hình ảnh phản ánh: " + images,
		"",
		"Nội dung chi tiết:",
		rec.Detail,
	}
	return strings.Join(lines, "\n")
}
