package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsIdlePingInterval = 30 * time.Second

type portRequest struct {
	Port int64 `json:"port"`
	searchRequest
}

type portReply struct {
	Port int64 `json:"port"`
	searchResponse
}

// handleWS reads requests until the client goes away. Each request is searched
// on its own goroutine once a slot in s.ports is free, and a single writer
// posts the replies in completion order.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	var conn, err = s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("ws-upgrade-failed")
		return
	}
	defer conn.Close()

	var send = make(chan portReply, cap(s.ports))
	var writerDone = make(chan struct{})
	go func() {
		defer close(writerDone)
		if err := writeReplies(conn, send); err != nil {
			s.logger.Debug().Err(err).Msg("ws-write-failed")
		}
	}()

	var wg sync.WaitGroup
	for {
		var _, message, err = conn.ReadMessage()
		if err != nil {
			break
		}
		var req portRequest
		if err := json.Unmarshal(message, &req); err != nil {
			send <- portReply{Port: req.Port, searchResponse: searchResponse{
				Error: fmt.Errorf("%w: %v", errBadRequest, err).Error(),
			}}
			continue
		}
		s.ports <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-s.ports }()
			var resp, err = s.search(req.searchRequest)
			if err != nil {
				resp = searchResponse{Error: err.Error()}
			}
			send <- portReply{Port: req.Port, searchResponse: resp}
		}()
	}
	wg.Wait()
	close(send)
	<-writerDone
}

// writeReplies drains send even after a failed write so searches never block.
func writeReplies(conn *websocket.Conn, send <-chan portReply) error {
	var ticker = time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	var lastWrite = time.Now()
	var writeErr error

	for {
		select {
		case reply, ok := <-send:
			if !ok {
				return writeErr
			}
			if writeErr != nil {
				continue
			}
			writeErr = conn.WriteJSON(reply)
			lastWrite = time.Now()
		case <-ticker.C:
			if writeErr != nil || time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			writeErr = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second))
			lastWrite = time.Now()
		}
	}
}
