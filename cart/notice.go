package cart

import "sync"

// NoticeLevel mirrors the toast levels shown to the shopper.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Notifier is the user-facing notification sink.
type Notifier interface {
	Notify(s *Session, n Notice)
}

// SessionNotifier buffers notices on the session until the transport drains
// them into its response.
type SessionNotifier struct{}

func (SessionNotifier) Notify(s *Session, n Notice) {
	s.pushNotice(n)
}

type noticeBuffer struct {
	mu      sync.Mutex
	notices []Notice
}

func (b *noticeBuffer) push(n Notice) {
	b.mu.Lock()
	b.notices = append(b.notices, n)
	b.mu.Unlock()
}

func (b *noticeBuffer) drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.notices
	b.notices = nil
	return out
}
