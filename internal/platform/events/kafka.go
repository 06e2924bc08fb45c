package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"leximind-server/internal/config"
	"leximind-server/internal/logger"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// ErrPublisherClosed 发布器关闭后继续投递时返回。
var ErrPublisherClosed = errors.New("kafka publisher closed")

// KafkaPublisher 基于 sarama AsyncProducer 异步投递事件。
type KafkaPublisher struct {
	producer    sarama.AsyncProducer
	topicPrefix string
	logger      *zap.Logger
	done        chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup

	// mu 保证 Close 关闭 producer 之前没有进行中的 Input 发送
	mu     sync.RWMutex
	closed bool
}

func NewKafkaPublisher(cfg config.KafkaConfig, lg *zap.Logger) (*KafkaPublisher, error) {
	brokers := config.SplitList(cfg.Brokers)
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are empty")
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Flush.Frequency = 100 * time.Millisecond
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = false
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Metadata.Retry.Max = 3
	saramaConfig.Metadata.Retry.Backoff = 250 * time.Millisecond

	producer, err := sarama.NewAsyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return newKafkaPublisher(producer, cfg.TopicPrefix, lg), nil
}

func newKafkaPublisher(producer sarama.AsyncProducer, topicPrefix string, lg *zap.Logger) *KafkaPublisher {
	if lg == nil {
		lg = zap.NewNop()
	}
	p := &KafkaPublisher{
		producer:    producer,
		topicPrefix: topicPrefix,
		logger:      lg,
		done:        make(chan struct{}),
	}
	p.wg.Add(1)
	go p.handleErrors()

	lg.Info("✅ Kafka 事件发布器已启动", zap.String("topic_prefix", topicPrefix))
	return p
}

func (p *KafkaPublisher) handleErrors() {
	defer p.wg.Done()
	for {
		select {
		case err, ok := <-p.producer.Errors():
			if !ok {
				return
			}
			if err != nil {
				p.logger.Error("❌ Kafka 事件投递失败", zap.Error(err.Err), zap.String("topic", err.Msg.Topic))
			}
		case <-p.done:
			return
		}
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.TopicName(event.Type),
		Key:   sarama.StringEncoder(event.Email),
		Value: sarama.ByteEncoder(payload),
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.producer.Input() <- msg:
		p.logger.Debug("事件已提交", zap.String("type", event.Type), zap.String("email", logger.MaskEmail(event.Email)))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TopicName 返回带前缀的主题名。
func (p *KafkaPublisher) TopicName(eventType string) string {
	if p.topicPrefix == "" {
		return eventType
	}
	prefix := p.topicPrefix + "."
	if strings.HasPrefix(eventType, prefix) {
		return eventType
	}
	return prefix + eventType
}

func (p *KafkaPublisher) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()

		close(p.done)
		p.wg.Wait()
		if closeErr := p.producer.Close(); closeErr != nil {
			err = fmt.Errorf("close kafka producer: %w", closeErr)
		}
	})
	return err
}
