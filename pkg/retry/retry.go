package retry

import (
	"errors"
	"io"
	"math/rand"
	"net"
	"time"
)

// Config はリトライの設定を保持する
type Config struct {
	BaseInterval time.Duration
	MaxBackoff   time.Duration
}

// DefaultConfig は accept ループ向けのデフォルト設定を返す
func DefaultConfig() Config {
	return Config{
		BaseInterval: 5 * time.Millisecond,
		MaxBackoff:   time.Second,
	}
}

// Backoff は指数バックオフ + ジッターを計算する
func Backoff(attempt int, baseInterval, maxBackoff time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := baseInterval
	for i := 0; i < attempt && d < maxBackoff; i++ {
		d <<= 1
	}
	if d > maxBackoff {
		d = maxBackoff
	}
	// -10%〜+10% のジッター
	return time.Duration(int64(d) * int64(9+rand.Intn(3)) / 10)
}

// Next は cfg に従って attempt 回目の待ち時間を返す
func (c Config) Next(attempt int) time.Duration {
	return Backoff(attempt, c.BaseInterval, c.MaxBackoff)
}

// ShouldRetry はエラーに基づいてリトライすべきか判定する
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) {
		return false
	}
	return true
}
