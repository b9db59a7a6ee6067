package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/salim-ai/salim-client/models"
)

// Quote fetches a single-symbol stock quote via GET /stocks/quote/{symbol}.
func (g *Gateway) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	var quote models.Quote

	path := "/stocks/quote/" + url.PathEscape(symbol)
	if err := g.do(ctx, http.MethodGet, path, nil, &quote); err != nil {
		return models.Quote{}, fmt.Errorf("quote request: %w", err)
	}

	return quote, nil
}

// InvokeTool calls a vertical tool (flight search, case-law search, ...)
// via POST /tools/invoke. The result payload is tool-specific and returned
// as-is.
func (g *Gateway) InvokeTool(ctx context.Context, req models.ToolInvokeRequest) (models.ToolInvokeResponse, error) {
	var resp models.ToolInvokeResponse

	if err := g.do(ctx, http.MethodPost, "/tools/invoke", req, &resp); err != nil {
		return models.ToolInvokeResponse{}, fmt.Errorf("tool invoke request: %w", err)
	}

	return resp, nil
}

// SendMessage posts one conversation turn via POST /chat/.
func (g *Gateway) SendMessage(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	var resp models.ChatResponse

	if err := g.do(ctx, http.MethodPost, "/chat/", req, &resp); err != nil {
		return models.ChatResponse{}, fmt.Errorf("chat request: %w", err)
	}

	return resp, nil
}

// ChatSessions lists the user's conversations via GET /chat/sessions.
func (g *Gateway) ChatSessions(ctx context.Context) ([]models.ChatSession, error) {
	var sessions []models.ChatSession

	if err := g.do(ctx, http.MethodGet, "/chat/sessions", nil, &sessions); err != nil {
		return nil, fmt.Errorf("chat sessions request: %w", err)
	}

	return sessions, nil
}

// ChatHistory fetches the turns of one conversation via
// GET /chat/history/{id}.
func (g *Gateway) ChatHistory(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage

	path := "/chat/history/" + url.PathEscape(sessionID)
	if err := g.do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, fmt.Errorf("chat history request: %w", err)
	}

	return messages, nil
}

// ChatFeedback submits a rating for an assistant reply via
// POST /chat/feedback.
func (g *Gateway) ChatFeedback(ctx context.Context, req models.ChatFeedbackRequest) error {
	if err := g.do(ctx, http.MethodPost, "/chat/feedback", req, nil); err != nil {
		return fmt.Errorf("chat feedback request: %w", err)
	}

	return nil
}

// RAGQuery runs a retrieval query over the user's documents via
// POST /rag/query.
func (g *Gateway) RAGQuery(ctx context.Context, req models.RAGQueryRequest) (models.RAGQueryResponse, error) {
	var resp models.RAGQueryResponse

	if err := g.do(ctx, http.MethodPost, "/rag/query", req, &resp); err != nil {
		return models.RAGQueryResponse{}, fmt.Errorf("rag query request: %w", err)
	}

	return resp, nil
}

// Documents lists uploaded documents via GET /rag/documents.
func (g *Gateway) Documents(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document

	if err := g.do(ctx, http.MethodGet, "/rag/documents", nil, &docs); err != nil {
		return nil, fmt.Errorf("documents request: %w", err)
	}

	return docs, nil
}

// UploadDocument uploads one document for retrieval via POST /rag/upload.
// Content is base64-encoded by the caller.
func (g *Gateway) UploadDocument(ctx context.Context, filename, contentBase64 string) (models.Document, error) {
	var doc models.Document
	body := map[string]string{"filename": filename, "content": contentBase64}

	if err := g.do(ctx, http.MethodPost, "/rag/upload", body, &doc); err != nil {
		return models.Document{}, fmt.Errorf("document upload request: %w", err)
	}

	return doc, nil
}

// DeleteDocument removes an uploaded document via DELETE /rag/documents/{id}.
func (g *Gateway) DeleteDocument(ctx context.Context, id string) error {
	path := "/rag/documents/" + url.PathEscape(id)
	if err := g.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("document delete request: %w", err)
	}

	return nil
}

// Memories lists stored assistant memories via GET /memory/.
func (g *Gateway) Memories(ctx context.Context) ([]map[string]any, error) {
	var memories []map[string]any

	if err := g.do(ctx, http.MethodGet, "/memory/", nil, &memories); err != nil {
		return nil, fmt.Errorf("memories request: %w", err)
	}

	return memories, nil
}

// VoiceTranscribe submits base64-encoded audio via POST /voice/transcribe.
func (g *Gateway) VoiceTranscribe(ctx context.Context, audioBase64 string) (string, error) {
	var resp struct {
		Text string `json:"text"`
	}
	body := map[string]string{"audio": audioBase64}

	if err := g.do(ctx, http.MethodPost, "/voice/transcribe", body, &resp); err != nil {
		return "", fmt.Errorf("voice transcribe request: %w", err)
	}

	return resp.Text, nil
}

// SetupStatus reports onboarding progress via GET /setup/status.
func (g *Gateway) SetupStatus(ctx context.Context) (map[string]any, error) {
	status := make(map[string]any)

	if err := g.do(ctx, http.MethodGet, "/setup/status", nil, &status); err != nil {
		return nil, fmt.Errorf("setup status request: %w", err)
	}

	return status, nil
}
