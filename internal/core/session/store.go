// Package session 保存每個瀏覽階段的導覽與過濾狀態，只存在於程序記憶體中。
package session

import (
	"sync"
	"time"

	"recipe-browser/internal/core/navigation"
	"recipe-browser/internal/core/recipe"
	"recipe-browser/internal/pkg/common"

	"go.uber.org/zap"
)

// Session 單一瀏覽階段
type Session struct {
	ID string

	mu       sync.Mutex
	nav      *navigation.Controller
	criteria recipe.Criteria
	lastSeen time.Time
}

func newSession(id string, now time.Time) *Session {
	s := &Session{
		ID:       id,
		nav:      navigation.NewController(),
		lastSeen: now,
	}
	s.nav.OnChange(func(from, to navigation.State) {
		common.LogNavigation(id, from.View.String(), to.View.String(), to.Recipe.ID)
	})
	return s
}

// Do 在持有階段鎖的情況下執行 fn，同一階段的事件因此依序處理
func (s *Session) Do(fn func(nav *navigation.Controller, criteria *recipe.Criteria)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.nav, &s.criteria)
}

// Snapshot 取得目前導覽狀態與過濾條件
func (s *Session) Snapshot() (navigation.State, recipe.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.State(), s.criteria
}

// Store 瀏覽階段儲存
type Store struct {
	ttl      time.Duration
	mu       sync.Mutex
	sessions map[string]*Session
	done     chan struct{}
	once     sync.Once
	now      func() time.Time
}

// NewStore 建立儲存，cleanupInterval > 0 時定期清除閒置階段
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	s := &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
		now:      time.Now,
	}
	if cleanupInterval > 0 {
		go s.startCleanup(cleanupInterval)
	}
	return s
}

// Get 取得階段，id 不存在或已過期時建立新階段；created 表示是否為新建立
func (s *Store) Get(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.sessions[id]; ok {
		existing.mu.Lock()
		expired := now.Sub(existing.lastSeen) > s.ttl
		if !expired {
			existing.lastSeen = now
		}
		existing.mu.Unlock()
		if !expired {
			return existing, false
		}
		delete(s.sessions, id)
	}

	sess = newSession(common.GenerateUUID(), now)
	s.sessions[sess.ID] = sess
	common.LogDebug("建立瀏覽階段", zap.String("session_id", sess.ID))
	return sess, true
}

// Len 目前階段數
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup 移除閒置超過 ttl 的階段
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	count := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.lastSeen)
		sess.mu.Unlock()
		if idle > s.ttl {
			delete(s.sessions, id)
			count++
		}
	}
	if count > 0 {
		common.LogInfo("Cleaned up idle sessions",
			zap.Int("count", count),
			zap.Int("remaining", len(s.sessions)),
		)
	}
	return count
}

func (s *Store) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-s.done:
			return
		}
	}
}

// Close 停止清理協程
func (s *Store) Close() {
	s.once.Do(func() { close(s.done) })
}
