package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"mgaBack/internal/models"
	"mgaBack/internal/services"
)

const (
	chatWSMessageTypeAsk     = "ask"
	chatWSMessageTypeAnswer  = "answer"
	chatWSMessageTypeNotice  = "notice"
	chatWSMessageTypeError   = "error"
	chatWSNoResultsMessage   = "Rất tiếc, Mèo không tìm thấy bất động sản nào phù hợp với yêu cầu của bạn. Bạn có muốn thử một tìm kiếm khác không?"
	chatWSReadLimit          = 1 << 20
	chatWSReadDeadline       = 120 * time.Second
	chatWSWriteDeadline      = 5 * time.Second
	chatWSPingInterval       = 15 * time.Second
	chatWSTranslationTimeout = 30 * time.Second
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type chatWSMessage struct {
	Type      string                 `json:"type,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Query     string                 `json:"query"`
	Filters   *models.FilterCriteria `json:"filters,omitempty"`
	PageSize  int                    `json:"page_size,omitempty"`
}

type chatWSResponse struct {
	Type      string                       `json:"type"`
	RequestID string                       `json:"request_id,omitempty"`
	Error     string                       `json:"error,omitempty"`
	Message   string                       `json:"message,omitempty"`
	Filters   *models.FilterCriteria       `json:"filters,omitempty"`
	Result    *models.PropertyListResponse `json:"result,omitempty"`
}

// ChatWebSocketHandler drives the conversational search: each "ask" frame is
// translated into filter criteria, merged into the caller's snapshot and run
// through the regular search pipeline. An empty result set pushes one
// follow-up notice per triggering search, never more.
func (app *application) ChatWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	if app.aiService == nil || !app.aiService.Configured() {
		http.Error(w, "chat assistant unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := chatUpgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Println("chat WS upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(chatWSReadLimit)
	conn.SetReadDeadline(time.Now().Add(chatWSReadDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(chatWSReadDeadline))
		return nil
	})

	stop := make(chan struct{})
	defer close(stop)
	go app.chatPingLoop(conn, stop)

	for {
		var msg chatWSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			app.errorLog.Println("chat ws read error:", err)
			_ = chatWriteClose(conn, websocket.CloseNormalClosure, "read error")
			return
		}
		conn.SetReadDeadline(time.Now().Add(chatWSReadDeadline))

		if strings.TrimSpace(msg.Type) != "" && strings.TrimSpace(msg.Type) != chatWSMessageTypeAsk {
			app.sendChatWSError(conn, msg.RequestID, "unknown message type")
			continue
		}

		query := strings.TrimSpace(msg.Query)
		if query == "" {
			app.sendChatWSError(conn, msg.RequestID, "query is required")
			continue
		}

		ctx, cancel := context.WithTimeout(r.Context(), chatWSTranslationTimeout)
		extracted, err := app.aiService.FindPropertiesFromQuery(ctx, query)
		cancel()
		if err != nil {
			if errors.Is(err, models.ErrQueryNotUnderstood) {
				app.sendChatWSError(conn, msg.RequestID, err.Error())
				continue
			}
			app.errorLog.Println("chat ws query error:", err)
			app.sendChatWSError(conn, msg.RequestID, "failed to translate query")
			continue
		}

		current := models.DefaultFilterCriteria()
		if msg.Filters != nil {
			current = *msg.Filters
		}
		merged := services.ApplyQueryFilters(current, extracted)

		result := app.propertyService.Search(r.Context(), services.PropertySearchRequest{
			Filters:  merged,
			Page:     1,
			PageSize: msg.PageSize,
		}, nil)

		resp := chatWSResponse{
			Type:      chatWSMessageTypeAnswer,
			RequestID: msg.RequestID,
			Message:   extracted.ResponseMessage,
			Filters:   &merged,
			Result:    &result,
		}
		if err := app.writeChatWSResponse(conn, resp); err != nil {
			app.errorLog.Println("chat ws write error:", err)
			return
		}

		// One notice per empty search, tied to the request that caused it.
		if result.Total == 0 {
			notice := chatWSResponse{
				Type:      chatWSMessageTypeNotice,
				RequestID: msg.RequestID,
				Message:   chatWSNoResultsMessage,
			}
			if err := app.writeChatWSResponse(conn, notice); err != nil {
				app.errorLog.Println("chat ws write error:", err)
				return
			}
		}
	}
}

func (app *application) chatPingLoop(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(chatWSPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(chatWSWriteDeadline))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = chatWriteClose(conn, websocket.CloseGoingAway, "ping error")
				return
			}
		case <-stop:
			return
		}
	}
}

func (app *application) sendChatWSError(conn *websocket.Conn, requestID, message string) {
	resp := chatWSResponse{Type: chatWSMessageTypeError, RequestID: requestID, Error: message}
	if err := app.writeChatWSResponse(conn, resp); err != nil {
		app.errorLog.Println("chat ws send error failed:", err)
	}
}

func (app *application) writeChatWSResponse(conn *websocket.Conn, resp chatWSResponse) error {
	_ = conn.SetWriteDeadline(time.Now().Add(chatWSWriteDeadline))
	return conn.WriteJSON(resp)
}

func chatWriteClose(conn *websocket.Conn, code int, reason string) error {
	_ = conn.SetWriteDeadline(time.Now().Add(chatWSWriteDeadline))
	return conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
}
