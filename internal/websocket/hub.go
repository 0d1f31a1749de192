package websocket

import (
	"encoding/json"
	"sync"

	"github.com/aionlab/aion-backend/pkg/logger"
)

// Client 스토어프런트 WebSocket 클라이언트 (익명 방문자 포함)
type Client struct {
	Hub  *Hub
	Conn *Conn
	Send chan []byte
}

// Hub WebSocket 연결 관리자
type Hub struct {
	// 접속 중인 클라이언트들
	clients map[*Client]bool

	// 클라이언트 등록
	register chan *Client

	// 클라이언트 등록 해제
	unregister chan *Client

	// 전체 브로드캐스트
	broadcast chan []byte

	mu sync.RWMutex
}

// NewHub Hub 생성
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan []byte, 1024),
	}
}

// Run Hub 실행
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Debug("WebSocket client registered", map[string]interface{}{
				"total_clients": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Debug("WebSocket client unregistered", map[string]interface{}{
				"total_clients": total,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Send 채널이 막혀있음 - 비동기로 정리
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", nil)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast 모든 접속 클라이언트에 메시지 전송
func (h *Hub) Broadcast(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal broadcast message", err, nil)
		return err
	}

	select {
	case h.broadcast <- data:
		return nil
	default:
		// 메시지 손실을 허용 (주요 로직에 영향 없음)
		logger.Warn("Broadcast channel full, message dropped", nil)
		return nil
	}
}

// Register 클라이언트 등록
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister 클라이언트 등록 해제
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// ClientCount 현재 접속 클라이언트 수
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
