package cart

import "sync"

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// SessionLocks 按会话加锁，同一会话的读改写串行执行，无人持有时回收锁对象
type SessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

// NewSessionLocks 创建会话锁表
func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: make(map[string]*sessionLock)}
}

// Lock 获取会话锁，返回的函数用于释放
func (l *SessionLocks) Lock(session string) func() {
	l.mu.Lock()
	entry, ok := l.locks[session]
	if !ok {
		entry = &sessionLock{}
		l.locks[session] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, session)
		}
		l.mu.Unlock()
	}
}

// Len 当前持有或等待中的会话数
func (l *SessionLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
