// Package queue serves recommendation requests arriving over RabbitMQ.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/career-matcher/internal/matching"
	"github.com/spigell/career-matcher/internal/recommend"
	"github.com/spigell/career-matcher/internal/utils"
)

const (
	defaultQueue          = "recommendation_requests"
	defaultExchange       = "recommendation_updates"
	defaultConsumers      = 3
	defaultReconnectDelay = 5 * time.Second
)

// Recommender is the subset of recommend.Service the worker calls.
type Recommender interface {
	RecommendJobs(ctx context.Context, req recommend.JobsRequest) ([]recommend.MatchAnalysis, error)
	SkillGap(ctx context.Context, userID uuid.UUID, role string) (*recommend.SkillGapReport, error)
	LearningRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]matching.ResourceRecommendation, error)
}

// Publisher sends a status update body under a routing key.
type Publisher interface {
	Publish(routingKey string, body []byte) error
}

type Config struct {
	URL            string        `mapstructure:"url"`
	Queue          string        `mapstructure:"queue"`
	Exchange       string        `mapstructure:"exchange"`
	Consumers      int           `mapstructure:"consumers" validate:"gte=0"`
	ReconnectDelay time.Duration `mapstructure:"reconnect-delay"`
}

type Worker struct {
	cfg         Config
	recommender Recommender
	logger      *zap.Logger
}

// NewWorker creates a worker. Zero-valued config fields get defaults.
func NewWorker(cfg Config, recommender Recommender, logger *zap.Logger) *Worker {
	if cfg.Queue == "" {
		cfg.Queue = defaultQueue
	}
	if cfg.Exchange == "" {
		cfg.Exchange = defaultExchange
	}
	if cfg.Consumers <= 0 {
		cfg.Consumers = defaultConsumers
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Worker{cfg: cfg, recommender: recommender, logger: logger}
}

// Run consumes requests until ctx is cancelled, reconnecting when the broker goes away.
func (w *Worker) Run(ctx context.Context) error {
	if w.cfg.URL == "" {
		return errors.New("rabbitmq url is required")
	}

	for {
		err := w.session(ctx)
		if ctx.Err() != nil {
			return nil
		}

		w.logger.Warn("rabbitmq session ended, reconnecting",
			zap.Error(err),
			zap.Duration("delay", w.cfg.ReconnectDelay),
		)
		if err := utils.WaitFor(ctx, w.cfg.ReconnectDelay); err != nil {
			return nil
		}
	}
}

func (w *Worker) session(ctx context.Context) error {
	conn, err := amqp.Dial(w.cfg.URL)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer conn.Close()

	if err := w.declare(conn); err != nil {
		return err
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < w.cfg.Consumers; i++ {
		g.Go(func() error {
			return w.consume(gctx, conn, i)
		})
	}
	g.Go(func() error {
		select {
		case <-gctx.Done():
			conn.Close()
			return gctx.Err()
		case amqpErr := <-closed:
			return fmt.Errorf("connection closed: %v", amqpErr)
		}
	})

	w.logger.Info("worker started",
		zap.String("queue", w.cfg.Queue),
		zap.String("exchange", w.cfg.Exchange),
		zap.Int("consumers", w.cfg.Consumers),
	)

	return g.Wait()
}

func (w *Worker) declare(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(w.cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(w.cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	return nil
}

func (w *Worker) consume(ctx context.Context, conn *amqp.Connection, id int) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	msgs, err := ch.Consume(w.cfg.Queue, fmt.Sprintf("career-matcher-%d", id+1), false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	pub := &channelPublisher{ch: ch, exchange: w.cfg.Exchange}
	log := w.logger.With(zap.Int("consumer", id+1))

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}

			if err := w.Handle(ctx, msg.Body, pub); err != nil {
				log.Warn("dropping message", zap.Error(err))
				if err := msg.Nack(false, false); err != nil {
					log.Warn("nack failed", zap.Error(err))
				}
				continue
			}
			if err := msg.Ack(false); err != nil {
				log.Warn("ack failed", zap.Error(err))
			}
		}
	}
}

// Handle processes one message body. Only undecodable messages produce an error;
// processing failures are reported to the user through a failed update.
func (w *Worker) Handle(ctx context.Context, body []byte, pub Publisher) error {
	req, err := decodeRequest(body)
	if err != nil {
		return err
	}

	log := w.logger.With(
		zap.Stringer("request_id", req.ID),
		zap.Stringer("user_id", req.UserID),
		zap.String("kind", req.Kind),
	)
	log.Info("processing request")

	w.publish(log, pub, req, Update{Status: StatusProcessing, Message: "request accepted"})

	payload, err := w.process(ctx, req)
	if err != nil {
		log.Error("request failed", zap.Error(err))
		w.publish(log, pub, req, Update{Status: StatusFailed, Message: "request failed", Error: err.Error()})
		return nil
	}

	w.publish(log, pub, req, Update{Status: StatusCompleted, Message: "request completed", Payload: payload})
	return nil
}

func (w *Worker) process(ctx context.Context, req *Request) (any, error) {
	switch req.Kind {
	case KindJobs:
		return w.recommender.RecommendJobs(ctx, recommend.JobsRequest{
			UserID:          req.UserID,
			ExperienceLevel: req.ExperienceLevel,
			Limit:           req.Limit,
			MinScore:        req.MinScore,
			KeepApplied:     req.KeepApplied,
		})
	case KindResources:
		return w.recommender.LearningRecommendations(ctx, req.UserID, req.Limit)
	case KindSkillGap:
		return w.recommender.SkillGap(ctx, req.UserID, req.Role)
	default:
		return nil, fmt.Errorf("unsupported kind %q", req.Kind)
	}
}

func (w *Worker) publish(log *zap.Logger, pub Publisher, req *Request, update Update) {
	update.RequestID = req.ID
	update.UserID = req.UserID
	update.Kind = req.Kind
	update.Timestamp = time.Now().UTC()

	body, err := json.Marshal(update)
	if err != nil {
		log.Warn("failed to marshal update", zap.Error(err))
		return
	}

	if err := pub.Publish(routingKey(req.UserID), body); err != nil {
		log.Warn("failed to publish update", zap.String("status", update.Status), zap.Error(err))
	}
}

type channelPublisher struct {
	ch       *amqp.Channel
	exchange string
}

func (p *channelPublisher) Publish(routingKey string, body []byte) error {
	return p.ch.Publish(p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}
