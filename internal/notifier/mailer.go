package notifier

import (
	"access-request-server/config"
	"access-request-server/internal/model"
	"access-request-server/internal/util"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
)

// RedisMailer : кладёт письма в очередь Redis, отправку по SMTP выполняет внешний воркер
type RedisMailer struct {
	client    *config.RedisClient
	from      string
	outboxKey string
	markdown  goldmark.Markdown
	now       func() time.Time
}

func NewRedisMailer(client *config.RedisClient, cfg *config.MailConfig) *RedisMailer {
	return &RedisMailer{
		client:    client,
		from:      cfg.From,
		outboxKey: cfg.OutboxKey,
		markdown:  goldmark.New(),
		now:       time.Now,
	}
}

// Send : дополняет письмо id, отправителем и HTML-версией тела, затем делает RPUSH в очередь
func (m *RedisMailer) Send(ctx context.Context, message model.MailMessage) error {
	if len(message.To) == 0 {
		return errors.New("[Mailer] не указан получатель письма")
	}

	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.From == "" {
		message.From = m.from
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = m.now().UTC()
	}
	if message.HTML == "" {
		var html bytes.Buffer
		if err := m.markdown.Convert([]byte(message.Body), &html); err != nil {
			return util.LogError("[Mailer] ошибка рендера HTML-версии письма", err)
		}
		message.HTML = html.String()
	}

	data, err := json.Marshal(message)
	if err != nil {
		return util.LogError("[Mailer] ошибка сериализации письма", err)
	}

	if err := m.client.Client.RPush(ctx, m.outboxKey, data).Err(); err != nil {
		return util.LogError("[Mailer] ошибка записи письма в очередь Redis", err)
	}

	log.Printf("[Mailer] письмо %s поставлено в очередь: %v, %q", message.ID, message.To, message.Subject)
	return nil
}
