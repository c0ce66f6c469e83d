package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cafe-pos-backend/internal/config"
	"cafe-pos-backend/internal/models"

	"github.com/go-redis/redis/v8"
)

const (
	keyPrefix  = "session:"
	sessionTTL = 24 * time.Hour // Token ömrüyle aynı
)

var rdb *redis.Client

// Init - Redis bağlantısını kurar. Oturum cache'i için zorunludur.
func Init(cfg *config.Config) {
	rdb = redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx := context.Background()
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Redis bağlantısı kurulamadı: %v", err)
	}
	log.Printf("Redis bağlandı: %s", pong)
}

// Record - Giriş yapan kullanıcının ve kafesinin denormalize kopyası.
// Eski istemci localStorage cache'inin sunucu tarafındaki karşılığı.
type Record struct {
	UserID   uint            `json:"user_id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	CafeID   uint            `json:"cafe_id"`
	CafeName string          `json:"cafe_name"`
	CafeAddr string          `json:"cafe_address"`
	CafeLogo string          `json:"cafe_logo"`
	CachedAt time.Time       `json:"cached_at"`
}

func key(userID uint) string {
	return fmt.Sprintf("%s%d", keyPrefix, userID)
}

func Save(ctx context.Context, rec *Record) error {
	if rdb == nil {
		return nil // Init çağrılmadıysa (test ortamı) cache devre dışı
	}

	rec.CachedAt = time.Now()
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("oturum kaydı serialize edilemedi: %w", err)
	}
	return rdb.Set(ctx, key(rec.UserID), b, sessionTTL).Err()
}

// Get - Cache'te kayıt yoksa (nil, nil) döner; çağıran DB'ye düşer.
func Get(ctx context.Context, userID uint) (*Record, error) {
	if rdb == nil {
		return nil, nil
	}

	b, err := rdb.Get(ctx, key(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("oturum kaydı okunamadı: %w", err)
	}
	return &rec, nil
}

// Delete - Logout'ta cache'i geçersiz kılar.
func Delete(ctx context.Context, userID uint) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, key(userID)).Err()
}
