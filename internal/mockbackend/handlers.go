package mockbackend

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Reply is what the answer table produces for a question
type Reply struct {
	// Status overrides 200 when non-zero
	Status int
	// Answer is omitted from the body when Omit is set
	Answer string
	Omit   bool
}

// AnswerFunc maps a question to a reply
type AnswerFunc func(question string) Reply

type chatRequest struct {
	Question *string `json:"question"`
}

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": PingMessage})
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "question is required"})
		return
	}

	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-c.Request.Context().Done():
			return
		}
	}

	reply := s.answer(*req.Question)
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}

	switch {
	case status < 200 || status > 299:
		c.JSON(status, gin.H{"detail": http.StatusText(status)})
	case reply.Omit:
		c.JSON(status, gin.H{})
	default:
		c.JSON(status, gin.H{"answer": reply.Answer})
	}
}

// cannedAnswers is matched by keyword, first match wins
var cannedAnswers = []struct {
	keywords []string
	answer   string
}{
	{[]string{"ship", "deliver"}, "Standard shipping takes **3-5 business days**. Express orders ship the next business day."},
	{[]string{"return", "refund"}, "You can return any item within **30 days** of delivery for a full refund."},
	{[]string{"order", "track"}, "You can track your order from the *Orders* page using the tracking link in your confirmation email."},
	{[]string{"hello", "hi", "hey"}, "Hello! How can I help you with your shopping today?"},
}

// CannedAnswer is the default answer table. Two commands exercise failure
// paths: "/status <code>" replies with that 4xx or 5xx status and
// "/noanswer" replies 200 without an answer field.
func CannedAnswer(question string) Reply {
	q := strings.ToLower(strings.TrimSpace(question))

	if rest, ok := strings.CutPrefix(q, "/status "); ok {
		if code, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && code >= 400 && code <= 599 {
			return Reply{Status: code}
		}
	}
	if q == "/noanswer" {
		return Reply{Omit: true}
	}

	words := strings.FieldsFunc(q, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	for _, canned := range cannedAnswers {
		for _, kw := range canned.keywords {
			for _, w := range words {
				if matchesKeyword(w, kw) {
					return Reply{Answer: canned.answer}
				}
			}
		}
	}

	return Reply{Answer: "I'm the demo assistant. You asked: \"" + strings.TrimSpace(question) + "\""}
}

// matchesKeyword treats short keywords as whole words and longer ones as stems
func matchesKeyword(word, keyword string) bool {
	if len(keyword) <= 3 {
		return word == keyword
	}
	return strings.HasPrefix(word, keyword)
}
