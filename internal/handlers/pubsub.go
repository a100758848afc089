package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/Daniel-Moraes1/offer-watch/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// pushEnvelope is the Pub/Sub push wrapper; Data is base64-encoded JSON.
type pushEnvelope struct {
	Message struct {
		Data      string `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// mailNotification is the decoded payload of a Gmail watch notification.
type mailNotification struct {
	EmailAddress string `json:"emailAddress"`
	HistoryID    uint64 `json:"historyId"`
}

// PubSubHandler receives Gmail push notifications. It always acknowledges
// with 200: a non-2xx would make Pub/Sub redeliver, and a notification we
// failed on once will fail the same way again. Failures live in the logs.
type PubSubHandler struct {
	Processor *services.Processor
	Logger    *zap.Logger
}

func NewPubSubHandler(p *services.Processor, logger *zap.Logger) *PubSubHandler {
	return &PubSubHandler{Processor: p, Logger: logger}
}

func (h *PubSubHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "offer-watch webhook")
}

// Receive is POST /pubsub.
func (h *PubSubHandler) Receive(c *gin.Context) {
	notif, err := h.decode(c)
	if err != nil {
		h.Logger.Error("error processing notification", zap.Error(err))
		c.String(http.StatusOK, "Error")
		return
	}

	h.Logger.Info("new email notification received",
		zap.String("email_address", notif.EmailAddress),
		zap.Uint64("history_id", notif.HistoryID))

	// The notification only says "something changed"; the pipeline fetches
	// the newest message itself.
	if err := h.Processor.ProcessLatest(c.Request.Context(), notif.EmailAddress); err != nil {
		h.Logger.Error("error processing notification", zap.Error(err))
		c.String(http.StatusOK, "Error")
		return
	}

	c.String(http.StatusOK, "OK")
}

func (h *PubSubHandler) decode(c *gin.Context) (*mailNotification, error) {
	var envelope pushEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		return nil, err
	}

	var notif mailNotification
	if err := json.Unmarshal(data, &notif); err != nil {
		return nil, err
	}
	return &notif, nil
}
