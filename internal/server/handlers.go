package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/twinfer/keyglob"
	"github.com/twinfer/keyglob/filter"
	"github.com/twinfer/keyglob/pubsub"
)

const (
	defaultMaxMessages = 100
	maxWait            = 30 * time.Second
)

type matchRequest struct {
	Subject    string `json:"subject"`
	Pattern    string `json:"pattern"`
	IgnoreCase bool   `json:"ignore_case"`
}

type filterRequest struct {
	Subjects []string `json:"subjects" binding:"required"`
	// Optional expression overriding the configured one.
	Includes   []string `json:"includes"`
	Excludes   []string `json:"excludes"`
	IgnoreCase bool     `json:"ignore_case"`
}

type subscribeRequest struct {
	Pattern string `json:"pattern" binding:"required"`
	Buffer  int    `json:"buffer"`
}

type publishRequest struct {
	Topic   string `json:"topic" binding:"required"`
	Payload string `json:"payload"`
}

type messageResponse struct {
	Topic   string `json:"topic"`
	Pattern string `json:"pattern"`
	Payload string `json:"payload"`
}

func abortError(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}

// health handles GET /health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// match handles POST /api/match
// Oversize input is 413; a match that runs out of budget is 422.
func (s *Server) match(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, err)
		return
	}

	if err := s.limits.CheckPattern(req.Pattern); err != nil {
		abortError(c, http.StatusRequestEntityTooLarge, err)
		return
	}
	if !s.limits.CheckSubject(len(req.Subject)) {
		abortError(c, http.StatusRequestEntityTooLarge, errors.New("subject too long"))
		return
	}

	lim := keyglob.Limits{MaxSteps: s.limits.MaxSteps, MaxDepth: s.limits.MaxDepth}
	matched, err := keyglob.MatchBounded(c.Request.Context(), []byte(req.Subject), []byte(req.Pattern), req.IgnoreCase, lim)
	switch {
	case errors.Is(err, keyglob.ErrStepBudget), errors.Is(err, keyglob.ErrDepthLimit):
		abortError(c, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		abortError(c, http.StatusServiceUnavailable, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matched": matched})
}

// filter handles POST /api/filter
// Returns the subjects accepted by the request expression, or by the
// configured one when the request carries none.
func (s *Server) filter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, err)
		return
	}

	m := s.expr
	expr := filter.SimpleExpr{Includes: req.Includes, Excludes: req.Excludes, IgnoreCase: req.IgnoreCase}
	if !expr.Empty() {
		var err error
		if m, err = expr.ParseWithLimits(s.limits); err != nil {
			code := http.StatusBadRequest
			if errors.Is(err, filter.ErrPatternTooLong) {
				code = http.StatusRequestEntityTooLarge
			}
			abortError(c, code, err)
			return
		}
	}
	if m == nil {
		abortError(c, http.StatusBadRequest, filter.ErrEmptyExpr)
		return
	}

	matched := make([]string, 0, len(req.Subjects))
	for _, subject := range req.Subjects {
		if m.MatchString(subject) {
			matched = append(matched, subject)
		}
	}
	c.JSON(http.StatusOK, gin.H{"matched": matched})
}

// listChannels handles GET /api/channels
func (s *Server) listChannels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"channels": s.reg.Channels()})
}

// listPatterns handles GET /api/channels/:channel/patterns
func (s *Server) listPatterns(c *gin.Context) {
	patterns := s.reg.Patterns(c.Param("channel"))
	if patterns == nil {
		patterns = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"patterns": patterns})
}

// subscribe handles POST /api/channels/:channel/subscriptions
func (s *Server) subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, err)
		return
	}

	sub, err := s.reg.Subscribe(c.Param("channel"), req.Pattern, req.Buffer)
	if err != nil {
		abortError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      sub.ID.String(),
		"channel": sub.Channel,
		"pattern": sub.Pattern,
	})
}

// publish handles POST /api/channels/:channel/publish
func (s *Server) publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, err)
		return
	}

	n, err := s.reg.Publish(c.Param("channel"), req.Topic, []byte(req.Payload))
	if err != nil {
		abortError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"delivered": n})
}

func (s *Server) lookup(c *gin.Context) (*pubsub.Subscription, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortError(c, http.StatusBadRequest, err)
		return nil, false
	}
	sub, ok := s.reg.Lookup(id)
	if !ok {
		abortError(c, http.StatusNotFound, pubsub.ErrNotFound)
		return nil, false
	}
	return sub, true
}

// unsubscribe handles DELETE /api/subscriptions/:id
func (s *Server) unsubscribe(c *gin.Context) {
	sub, ok := s.lookup(c)
	if !ok {
		return
	}
	if err := s.reg.Unsubscribe(sub.ID); err != nil {
		abortError(c, http.StatusNotFound, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

// messages handles GET /api/subscriptions/:id/messages
// Drains up to ?max buffered messages. With ?wait=<duration> it blocks until
// at least one message arrives or the wait elapses.
func (s *Server) messages(c *gin.Context) {
	sub, ok := s.lookup(c)
	if !ok {
		return
	}

	limit := defaultMaxMessages
	if v := c.Query("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			abortError(c, http.StatusBadRequest, errors.New("max must be a positive integer"))
			return
		}
		limit = n
	}
	var wait time.Duration
	if v := c.Query("wait"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			abortError(c, http.StatusBadRequest, errors.New("wait must be a non-negative duration"))
			return
		}
		wait = min(d, maxWait)
	}

	out := make([]messageResponse, 0)
	ctx := c.Request.Context()
	if wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()

		select {
		case msg, ok := <-sub.C:
			if ok {
				out = append(out, toResponse(msg))
			}
		case <-ctx.Done():
		}
	}

drain:
	for len(out) < limit {
		select {
		case msg, ok := <-sub.C:
			if !ok {
				break drain
			}
			out = append(out, toResponse(msg))
		default:
			break drain
		}
	}

	c.JSON(http.StatusOK, gin.H{"messages": out, "dropped": sub.Dropped()})
}

func toResponse(msg pubsub.Message) messageResponse {
	return messageResponse{Topic: msg.Topic, Pattern: msg.Pattern, Payload: string(msg.Payload)}
}
