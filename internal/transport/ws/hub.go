package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Patient message types
const (
	MsgExtractionComplete MessageType = "extraction_complete"
	MsgAssessmentReady    MessageType = "assessment_ready"
	MsgAssessmentError    MessageType = "assessment_error"
	MsgError              MessageType = "error"
)

// Monitor message types
const (
	MsgSubmissionReceived MessageType = "submission_received"
	MsgSessionReset       MessageType = "session_reset"
	MsgPatientConnected   MessageType = "patient_connected"
	MsgPatientLeft        MessageType = "patient_left"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for intake sessions
type Hub struct {
	// Session -> connections
	patientConns map[string]*Connection
	monitorConns map[string]map[string]*Connection // sessionID -> clinicianID -> conn

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionID   string
	ClinicianID string // Empty for patient connections
	IsMonitor   bool
	Send        chan []byte
	Hub         *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	SessionID  string
	ToMonitors bool
	Message    *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		patientConns: make(map[string]*Connection),
		monitorConns: make(map[string]map[string]*Connection),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		broadcast:    make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if conn.IsMonitor {
				if h.monitorConns[conn.SessionID] == nil {
					h.monitorConns[conn.SessionID] = make(map[string]*Connection)
				}
				h.monitorConns[conn.SessionID][conn.ClinicianID] = conn
				log.Printf("Clinician %s monitoring session %s", conn.ClinicianID, conn.SessionID)
			} else {
				h.patientConns[conn.SessionID] = conn
				log.Printf("Patient connected to session %s", conn.SessionID)

				h.notifyMonitors(conn.SessionID, MsgPatientConnected)
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conn.IsMonitor {
				if monitors, ok := h.monitorConns[conn.SessionID]; ok {
					if existing, ok := monitors[conn.ClinicianID]; ok && existing == conn {
						delete(monitors, conn.ClinicianID)
						close(conn.Send)
						log.Printf("Clinician %s stopped monitoring session %s", conn.ClinicianID, conn.SessionID)
					}
				}
			} else {
				if existing, ok := h.patientConns[conn.SessionID]; ok && existing == conn {
					delete(h.patientConns, conn.SessionID)
					close(conn.Send)
					log.Printf("Patient disconnected from session %s", conn.SessionID)

					h.notifyMonitors(conn.SessionID, MsgPatientLeft)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.ToMonitors {
				if monitors, ok := h.monitorConns[msg.SessionID]; ok {
					for _, conn := range monitors {
						select {
						case conn.Send <- data:
						default:
							// Drop message if buffer full
						}
					}
				}
			} else {
				if conn, ok := h.patientConns[msg.SessionID]; ok {
					select {
					case conn.Send <- data:
					default:
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToSession sends a message to the session's patient connection
// (implements service.Broadcaster)
func (h *Hub) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToMonitors sends a message to all clinicians watching a session
// (implements service.Broadcaster)
func (h *Hub) BroadcastToMonitors(sessionID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionID:  sessionID,
		ToMonitors: true,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

func (h *Hub) notifyMonitors(sessionID string, msgType MessageType) {
	if monitors, ok := h.monitorConns[sessionID]; ok {
		data, _ := json.Marshal(&Message{
			Type:    msgType,
			Payload: json.RawMessage(`{"sessionId":"` + sessionID + `"}`),
		})
		for _, conn := range monitors {
			select {
			case conn.Send <- data:
			default:
			}
		}
	}
}
