package models

import "time"

// Quote is one stock quote returned by GET /stocks/quote/{symbol}.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Currency      string  `json:"currency"`
}

// ToolInvokeRequest is the wire shape of POST /tools/invoke. Flight search,
// case-law search and the other vertical tools all go through this single
// endpoint; the payload schema is tool-specific and opaque to the client.
type ToolInvokeRequest struct {
	UserID     int64          `json:"user_id"`
	ToolName   string         `json:"tool_name"`
	Parameters map[string]any `json:"parameters"`
}

// ToolInvokeResponse wraps the tool-specific reply of POST /tools/invoke.
type ToolInvokeResponse struct {
	ToolName string `json:"tool_name"`
	Result   any    `json:"result"`
}

// ChatRequest is the wire shape of POST /chat/.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatMessage is a single conversation turn as returned by the chat routes.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatResponse is the reply to POST /chat/.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// ChatSession is one entry of GET /chat/sessions.
type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatFeedbackRequest is the wire shape of POST /chat/feedback.
type ChatFeedbackRequest struct {
	SessionID string `json:"session_id"`
	MessageID string `json:"message_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// Document is one entry of GET /rag/documents.
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	Status     string    `json:"status"`
}

// RAGQueryRequest is the wire shape of POST /rag/query.
type RAGQueryRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

// RAGQueryResponse is the reply to POST /rag/query.
type RAGQueryResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}
