// Package domain holds the gateway message contracts
package domain

import (
	"verihub/internal/adapters/remote/verif"
	adomain "verihub/internal/services/analysis/domain"
)

// MessageType discriminates inbound messages
type MessageType string

// Inbound message types
const (
	TypeAnalyzeRequest MessageType = "ANALYZE_REQUEST"
	TypeChatRequest    MessageType = "CHAT_REQUEST"
	TypeOpenPanel      MessageType = "OPEN_PANEL"
	TypeTabClosed      MessageType = "TAB_CLOSED"
	TypePing           MessageType = "PING"

	// TypePong is only ever sent outbound
	TypePong MessageType = "PONG"
)

// Message is the single inbound envelope; fields are populated by type
type Message struct {
	Type MessageType `json:"type" validate:"required"`

	// ANALYZE_REQUEST
	Mode     string             `json:"mode,omitempty"`
	Platform string             `json:"platform,omitempty"`
	Text     string             `json:"text,omitempty"`
	URL      string             `json:"url,omitempty" validate:"omitempty,publicurl"`
	Image    []byte             `json:"image,omitempty"`
	Metadata verif.PostMetadata `json:"metadata,omitempty"`

	// CHAT_REQUEST
	AnalysisID  string `json:"analysis_id,omitempty"`
	UserMessage string `json:"user_message,omitempty"`

	// OPEN_PANEL / TAB_CLOSED may address a tab explicitly
	TabID string `json:"tab_id,omitempty"`
}

// Response is the single outbound envelope, exactly one per inbound message
type Response struct {
	Success bool        `json:"success"`
	Type    MessageType `json:"type,omitempty"`

	// analysis outcome
	AnalysisID string         `json:"analysisId,omitempty"`
	Report     *verif.Report  `json:"report,omitempty"`
	Headers    *verif.Headers `json:"headers,omitempty"`
	Cached     bool           `json:"cached,omitempty"`

	// chat outcome
	Reply     string           `json:"reply,omitempty"`
	Citations []verif.Citation `json:"citations,omitempty"`

	// failure outcome
	Error             string `json:"error,omitempty"`
	Message           string `json:"message,omitempty"`
	RetryAfterSeconds int    `json:"retryAfterSeconds,omitempty"`

	// PONG
	Timestamp int64 `json:"timestamp,omitempty"`
}

// AnalysisRequest converts the message into an orchestrator request
func (m Message) AnalysisRequest() adomain.Request {
	return adomain.Request{
		Mode:     adomain.Mode(m.Mode),
		Platform: m.Platform,
		Text:     m.Text,
		URL:      m.URL,
		Image:    m.Image,
		Metadata: m.Metadata,
	}
}
