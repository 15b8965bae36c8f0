package ratelimit

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// bucketはkeyごとのカウンタとwindowのリセット時刻
type bucket struct {
	count     int
	resetTime time.Time
}

// KeyFuncはリクエストからバケットのkeyを導く
type KeyFunc func(r *http.Request) string

// Resultはcheckの判定結果（headerに載せる値込み）
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetTime time.Time
}

// Limiterはkeyごとのsliding windowカウンタ
// インスタンスが自分のmapと掃除goroutineを持つ（グローバル状態にしない）
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	window time.Duration
	max    int
	keyFn  KeyFunc

	done chan struct{}
	once sync.Once
}

// Newはlimiterを作って掃除goroutineを起動する
// 使い終わったらStopで止めること
func New(window time.Duration, max int, keyFn KeyFunc) *Limiter {
	if keyFn == nil {
		keyFn = ClientIP
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		window:  window,
		max:     max,
		keyFn:   keyFn,
		done:    make(chan struct{}),
	}

	go l.sweep()

	return l
}

// Checkは現在のカウントで可否を判定する（カウントは増やさない）
// bucketが無いかresetTimeを過ぎていれば作り直す
func (l *Limiter) Check(r *http.Request) Result {
	key := l.keyFn(r)
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || now.After(b.resetTime) {
		b = &bucket{count: 0, resetTime: now.Add(l.window)}
		l.buckets[key] = b
	}

	if b.count >= l.max {
		return Result{
			Allowed:   false,
			Limit:     l.max,
			Remaining: 0,
			ResetTime: b.resetTime,
		}
	}

	return Result{
		Allowed:   true,
		Limit:     l.max,
		Remaining: l.max - b.count - 1,
		ResetTime: b.resetTime,
	}
}

// IncrementはCheckが許可した後に呼んでカウントを増やす
func (l *Limiter) Increment(r *http.Request) {
	key := l.keyFn(r)
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || now.After(b.resetTime) {
		b = &bucket{count: 0, resetTime: now.Add(l.window)}
		l.buckets[key] = b
	}

	b.count++
}

// Stopは掃除goroutineを止める
func (l *Limiter) Stop() {
	l.once.Do(func() {
		close(l.done)
	})
}

// sweepは期限切れbucketを定期的に消してメモリ増加を抑える
func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			now := time.Now()

			l.mu.Lock()
			for key, b := range l.buckets {
				if now.After(b.resetTime) {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// ClientIPはproxy系headerからクライアントIPを推定する
// cf-connecting-ip > x-real-ip > x-forwarded-forの先頭 > "unknown"
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("cf-connecting-ip"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("x-real-ip"); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("x-forwarded-for"); fwd != "" {
		parts := strings.SplitN(fwd, ",", 2)
		return strings.TrimSpace(parts[0])
	}
	return "unknown"
}

// IPUserAgentは同じNAT配下のブラウザを分けるためIP+UAでkeyを作る
func IPUserAgent(r *http.Request) string {
	return ClientIP(r) + ":" + r.Header.Get("User-Agent")
}

// 事前定義ポリシー

// NewGeneralは一般API向け（100req/15分、IPごと）
func NewGeneral() *Limiter {
	return New(15*time.Minute, 100, ClientIP)
}

// NewAuthは認証エンドポイント向け（5req/15分、IP+UAごと）
func NewAuth() *Limiter {
	return New(15*time.Minute, 5, IPUserAgent)
}

// NewStrictはより厳しい用途向け（10req/1分、IPごと）
func NewStrict() *Limiter {
	return New(time.Minute, 10, ClientIP)
}
