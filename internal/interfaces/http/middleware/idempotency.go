package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/infrastructure/logger"
	"github.com/erp/saleproject/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Idempotency headers
const (
	IdempotencyKeyHeader    = "Idempotency-Key"
	IdempotencyReplayHeader = "Idempotency-Replayed"
)

// MaxIdempotencyKeyLength bounds client supplied keys
const MaxIdempotencyKeyLength = 255

// IdempotencyConfig configures the Idempotency-Key middleware
type IdempotencyConfig struct {
	Store shared.IdempotencyStore
	// TTL is how long a completed response is replayed
	TTL time.Duration
	// LockTTL is how long a key stays reserved while its first request runs.
	// A request that fails with a 5xx can be retried once it lapses.
	LockTTL time.Duration
	Logger  *zap.Logger
}

// storedResponse is what gets replayed for a repeated key
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyRecorder keeps a copy of everything written to the response
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the first response of a request that carries an
// Idempotency-Key header. Keys are scoped to the company, the method and the
// path, so the same key on another sale runs normally. A key whose first
// request is still running is answered with 409. Responses below 500 are
// stored; requests without the header pass through.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = shared.DefaultIdempotencyConfig().TTL
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = time.Minute
	}
	base := cfg.Logger
	if base == nil {
		base = zap.NewNop()
	}

	return func(c *gin.Context) {
		clientKey := c.GetHeader(IdempotencyKeyHeader)
		if clientKey == "" || cfg.Store == nil {
			c.Next()
			return
		}
		if len(clientKey) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest, "Idempotency-Key is too long", GetRequestID(c)))
			return
		}

		ctx := c.Request.Context()
		log := logger.L(logger.WithContext(ctx, base)).With(zap.String("idempotency_key", clientKey))

		scope := ""
		if companyID, err := GetCompanyID(c); err == nil {
			scope = companyID.String()
		}
		key := "http:" + scope + ":" + c.Request.Method + ":" + c.Request.URL.Path + ":" + clientKey

		payload, found, err := cfg.Store.GetResult(ctx, key)
		if err != nil {
			log.Warn("Idempotency lookup failed, processing request", zap.Error(err))
			c.Next()
			return
		}
		if found {
			var stored storedResponse
			if err := json.Unmarshal(payload, &stored); err == nil {
				log.Debug("Replaying stored response", zap.Int("status", stored.Status))
				c.Header(IdempotencyReplayHeader, "true")
				c.Data(stored.Status, stored.ContentType, stored.Body)
				c.Abort()
				return
			}
			log.Warn("Discarding unreadable stored response")
		}

		reserved, err := cfg.Store.MarkProcessed(ctx, key, cfg.LockTTL)
		if err != nil {
			log.Warn("Idempotency reservation failed, processing request", zap.Error(err))
			c.Next()
			return
		}
		if !reserved && !found {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeIdempotencyBusy, "A request with this Idempotency-Key is still in progress", GetRequestID(c)))
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		encoded, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
		if err != nil {
			log.Error("Failed to encode response for replay", zap.Error(err))
			return
		}
		if err := cfg.Store.SaveResult(ctx, key, encoded, cfg.TTL); err != nil {
			log.Error("Failed to store response for replay", zap.Error(err))
		}
	}
}
