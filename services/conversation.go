package services

import (
	"context"
	"sync"
	"time"

	"pingly_server/models"
)

const (
	minReplyDelay = 1000 * time.Millisecond
	maxReplyDelay = 3000 * time.Millisecond
)

// CannedReplies are the bodies the simulated counterparty picks from.
var CannedReplies = []string{
	"That sounds great! 😊",
	"Haha, I totally agree!",
	"When are you free to meet up?",
	"Tell me more about that!",
	"I'd love to! Let's do it.",
}

// ReplyDelay maps a random draw onto the uniform 1000-3000ms reply window.
func ReplyDelay(r Rand) time.Duration {
	span := int((maxReplyDelay - minReplyDelay) / time.Millisecond)
	return minReplyDelay + time.Duration(r.IntN(span+1))*time.Millisecond
}

// ConversationLog is the append-only message history of one match or project.
type ConversationLog struct {
	mu       sync.Mutex
	key      string
	messages []models.Message
	replies  []*Task
	open     bool
	closed   bool
	rt       Runtime
	onReply  func(models.Message)
}

func newConversationLog(key string, seed []models.Message, rt Runtime) *ConversationLog {
	messages := make([]models.Message, len(seed))
	copy(messages, seed)
	return &ConversationLog{key: key, messages: messages, rt: rt}
}

// Key returns the match or project id the log belongs to.
func (c *ConversationLog) Key() string {
	return c.key
}

// Messages returns the log in insertion order.
func (c *ConversationLog) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the log.
func (c *ConversationLog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// Append adds a message from the current user. Empty or whitespace-only bodies
// are rejected without touching the log.
func (c *ConversationLog) Append(body string) (models.Message, bool) {
	return c.AppendAs(models.SenderSelf, body)
}

// AppendAs adds a message from an explicit sender, such as a group member name.
func (c *ConversationLog) AppendAs(sender, body string) (models.Message, bool) {
	if blank(body) {
		return models.Message{}, false
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return models.Message{}, false
	}
	msg := c.appendLocked(sender, body)
	c.mu.Unlock()

	c.afterAppend(msg)
	return msg, true
}

// SimulateReply schedules a canned counterparty reply after a random
// 1000-3000ms delay. The returned task can be cancelled; closing the log
// cancels every outstanding reply.
func (c *ConversationLog) SimulateReply() *Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	delay := ReplyDelay(c.rt.Rand)
	task := scheduleTask(c.rt.Scheduler, delay, c.replyFired)
	c.replies = append(c.replies, task)
	return task
}

func (c *ConversationLog) replyFired(t *Task) {
	c.mu.Lock()
	if c.closed || !t.claim() {
		c.mu.Unlock()
		return
	}
	c.dropTaskLocked(t)
	body := CannedReplies[c.rt.Rand.IntN(len(CannedReplies))]
	msg := c.appendLocked(models.SenderCounterparty, body)
	onReply := c.onReply
	c.mu.Unlock()

	c.afterAppend(msg)
	if onReply != nil {
		onReply(msg)
	}
}

// Receive appends a counterparty message delivered from outside.
func (c *ConversationLog) Receive(sender, body string) (models.Message, bool) {
	return c.AppendAs(sender, body)
}

// SetOpen marks whether a view is currently showing the conversation.
// Closing the view cancels outstanding simulated replies.
func (c *ConversationLog) SetOpen(open bool) {
	c.mu.Lock()
	c.open = open
	var cancel []*Task
	if !open {
		cancel = c.replies
		c.replies = nil
	}
	c.mu.Unlock()
	for _, t := range cancel {
		t.Cancel()
	}
}

// IsOpen reports whether a view is showing the conversation.
func (c *ConversationLog) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// PendingReplies returns the number of simulated replies still waiting.
func (c *ConversationLog) PendingReplies() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.replies {
		if t.Active() {
			n++
		}
	}
	return n
}

// Close disposes the log. Replies that fire afterwards skip their append.
func (c *ConversationLog) Close() {
	c.mu.Lock()
	c.closed = true
	c.open = false
	cancel := c.replies
	c.replies = nil
	c.mu.Unlock()
	for _, t := range cancel {
		t.Cancel()
	}
}

func (c *ConversationLog) appendLocked(sender, body string) models.Message {
	msg := models.Message{
		MatchID:   c.key,
		CreatedAt: c.rt.Now(),
		MessageID: c.rt.NewID(),
		Sender:    sender,
		Body:      body,
	}
	next := make([]models.Message, 0, len(c.messages)+1)
	next = append(next, c.messages...)
	c.messages = append(next, msg)
	return msg
}

func (c *ConversationLog) dropTaskLocked(t *Task) {
	kept := c.replies[:0:0]
	for _, r := range c.replies {
		if r != t {
			kept = append(kept, r)
		}
	}
	c.replies = kept
}

func (c *ConversationLog) afterAppend(msg models.Message) {
	messagesAppended.WithLabelValues(senderLabel(msg.Sender)).Inc()
	emit("message", func(ctx context.Context) error {
		return c.rt.Sink.RecordMessage(ctx, msg)
	})
}

// ConversationStore owns one ConversationLog per key.
type ConversationStore struct {
	mu     sync.Mutex
	logs   map[string]*ConversationLog
	closed bool
	rt     Runtime
	// onReply runs after a simulated reply lands, with the conversation key.
	onReply func(key string, msg models.Message)
}

// NewConversationStore creates an empty store.
func NewConversationStore(rt Runtime) *ConversationStore {
	return &ConversationStore{logs: make(map[string]*ConversationLog), rt: rt.withDefaults()}
}

// OnReply registers a hook for simulated replies.
func (s *ConversationStore) OnReply(fn func(key string, msg models.Message)) {
	s.mu.Lock()
	s.onReply = fn
	s.mu.Unlock()
}

// Log returns the log for key, creating it on first use.
func (s *ConversationStore) Log(key string) *ConversationLog {
	return s.Seed(key, nil)
}

// Seed returns the log for key, creating it with the given opening messages
// when it does not exist yet.
func (s *ConversationStore) Seed(key string, seed []models.Message) *ConversationLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if log, ok := s.logs[key]; ok {
		return log
	}
	log := newConversationLog(key, seed, s.rt)
	if s.closed {
		log.closed = true
	}
	if hook := s.onReply; hook != nil {
		log.onReply = func(msg models.Message) { hook(key, msg) }
	}
	s.logs[key] = log
	return log
}

// Lookup returns an existing log.
func (s *ConversationStore) Lookup(key string) (*ConversationLog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log, ok := s.logs[key]
	return log, ok
}

// Drop closes and forgets the log for key.
func (s *ConversationStore) Drop(key string) {
	s.mu.Lock()
	log, ok := s.logs[key]
	delete(s.logs, key)
	s.mu.Unlock()
	if ok {
		log.Close()
	}
}

// Close closes every log. Logs created afterwards start closed.
func (s *ConversationStore) Close() {
	s.mu.Lock()
	s.closed = true
	logs := make([]*ConversationLog, 0, len(s.logs))
	for _, log := range s.logs {
		logs = append(logs, log)
	}
	s.mu.Unlock()
	for _, log := range logs {
		log.Close()
	}
}
