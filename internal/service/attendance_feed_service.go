package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/observability"
)

const feedSendBufferSize = 16

// AttendanceFeedService fans attendance mark events out to websocket
// subscribers watching a session, across all API nodes.
type AttendanceFeedService interface {
	MarkEventPublisher
	Start(ctx context.Context)
	ServeConnection(conn *websocket.Conn, sessionID uint)
}

type attendanceFeedService struct {
	redis       *redis.Client
	redisStream string
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
	broker      *feedBroker
	nodeID      string
}

type feedEvent struct {
	Source string                  `json:"source"`
	Mark   dto.AttendanceMarkEvent `json:"mark"`
	SentAt time.Time               `json:"sent_at"`
}

type feedBroker struct {
	mu          sync.RWMutex
	subscribers map[uint]map[chan dto.AttendanceMarkEvent]struct{}
}

// NewAttendanceFeedService constructs the live attendance feed. Redis and
// NATS connections are optional; when absent the feed is single-node only.
func NewAttendanceFeedService(redisClient *redis.Client, channelBase string, natsConn *nats.Conn, logger zerolog.Logger) AttendanceFeedService {
	stream := ""
	subject := ""
	if channelBase != "" {
		stream = channelBase + ":attendance"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".attendance"
	}

	return &attendanceFeedService{
		redis:       redisClient,
		redisStream: stream,
		nats:        natsConn,
		natsSubject: subject,
		logger:      logger.With().Str("component", "attendance_feed_service").Logger(),
		broker: &feedBroker{
			subscribers: make(map[uint]map[chan dto.AttendanceMarkEvent]struct{}),
		},
		nodeID: uuid.NewString(),
	}
}

func (s *attendanceFeedService) Start(ctx context.Context) {
	if s.redis != nil && s.redisStream != "" {
		go s.consumeRedis(ctx)
	}
	if s.nats != nil && s.natsSubject != "" {
		go s.consumeNATS(ctx)
	}
}

func (s *attendanceFeedService) PublishMark(ctx context.Context, event dto.AttendanceMarkEvent) {
	s.broker.broadcast(event.SessionID, event)

	if s.redis == nil && s.nats == nil {
		return
	}

	envelope := feedEvent{
		Source: s.nodeID,
		Mark:   event,
		SentAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode attendance mark event")
		return
	}

	if s.redis != nil && s.redisStream != "" {
		if err := s.redis.Publish(ctx, s.redisStream, payload).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish mark event to redis")
		}
	}

	if s.nats != nil && s.natsSubject != "" {
		if err := s.nats.Publish(s.natsSubject, payload); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish mark event to nats")
		}
	}
}

func (s *attendanceFeedService) ServeConnection(conn *websocket.Conn, sessionID uint) {
	channel := make(chan dto.AttendanceMarkEvent, feedSendBufferSize)
	s.broker.subscribe(sessionID, channel)
	observability.FeedClientsActive().Inc()

	closed := make(chan struct{})
	var once sync.Once
	shutdown := func() {
		once.Do(func() {
			close(closed)
			s.broker.unsubscribe(sessionID, channel)
			observability.FeedClientsActive().Dec()
			_ = conn.Close()
		})
	}

	go func() {
		defer shutdown()
		for {
			select {
			case event, ok := <-channel:
				if !ok {
					return
				}
				if err := conn.WriteJSON(event); err != nil {
					s.logger.Debug().Err(err).Msg("attendance feed write loop terminated")
					return
				}
			case <-time.After(30 * time.Second):
				if err := conn.WriteMessage(websocket.PingMessage, []byte("keepalive")); err != nil {
					s.logger.Debug().Err(err).Msg("attendance feed ping failed")
					return
				}
			case <-closed:
				return
			}
		}
	}()

	// clients never send payloads; the read loop only detects disconnects
	defer shutdown()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.logger.Debug().Err(err).Msg("attendance feed read loop ended")
			return
		}
	}
}

func (s *attendanceFeedService) consumeRedis(ctx context.Context) {
	pubsub := s.redis.Subscribe(ctx, s.redisStream)
	defer func() { _ = pubsub.Close() }()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logger.Error().Err(err).Msg("attendance feed redis subscription closed")
			return
		}
		s.handleEvent([]byte(msg.Payload))
	}
}

func (s *attendanceFeedService) consumeNATS(ctx context.Context) {
	sub, err := s.nats.QueueSubscribe(s.natsSubject, "campus-attendance-feed", func(msg *nats.Msg) {
		s.handleEvent(msg.Data)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to nats attendance subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drain attendance nats subscription")
		}
	}()
}

func (s *attendanceFeedService) handleEvent(payload []byte) {
	var event feedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.logger.Warn().Err(err).Msg("invalid attendance feed payload")
		return
	}

	if event.Source == s.nodeID {
		return
	}

	s.broker.broadcast(event.Mark.SessionID, event.Mark)
}

func (b *feedBroker) subscribe(sessionID uint, ch chan dto.AttendanceMarkEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[sessionID]; !exists {
		b.subscribers[sessionID] = make(map[chan dto.AttendanceMarkEvent]struct{})
	}
	b.subscribers[sessionID][ch] = struct{}{}
}

func (b *feedBroker) unsubscribe(sessionID uint, ch chan dto.AttendanceMarkEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[sessionID]; ok {
		delete(subscribers, ch)
		close(ch)
		if len(subscribers) == 0 {
			delete(b.subscribers, sessionID)
		}
	}
}

func (b *feedBroker) broadcast(sessionID uint, event dto.AttendanceMarkEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers[sessionID] {
		select {
		case ch <- event:
		default:
		}
	}
}
