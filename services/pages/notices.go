package pages

import "sync"

// NoticeLevel styles a notice.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a transient message shown once on the next render.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Notices queues messages until the next page render drains them.
type Notices struct {
	mu    sync.Mutex
	items []Notice
}

func (n *Notices) add(level NoticeLevel, msg string) {
	n.mu.Lock()
	n.items = append(n.items, Notice{Level: level, Message: msg})
	n.mu.Unlock()
}

func (n *Notices) Success(msg string) { n.add(NoticeSuccess, msg) }
func (n *Notices) Error(msg string)   { n.add(NoticeError, msg) }
func (n *Notices) Info(msg string)    { n.add(NoticeInfo, msg) }

// Drain returns and forgets the queued notices.
func (n *Notices) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.items
	n.items = nil
	return out
}
