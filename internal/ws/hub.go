package ws

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Client é um painel conectado. CompanyID vazio recebe todos os eventos;
// preenchido, recebe só os daquela empresa e os globais.
type Client struct {
	ID        string
	CompanyID string
	Send      chan []byte
}

func (c *Client) wants(companyID string) bool {
	return c.CompanyID == "" || companyID == "" || c.CompanyID == companyID
}

type message struct {
	companyID string
	body      []byte
}

// Hub é dono exclusivo do mapa de clientes: só a goroutine de Run o toca.
type Hub struct {
	clients  map[string]*Client
	register chan *Client
	unreg    chan *Client
	messages chan message

	log     *slog.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID atomic.Uint64
	total  atomic.Int64
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		messages: make(chan message, 1024),
		log:      log.With("cmp", "ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (h *Hub) newID() string {
	return fmt.Sprintf("c%d", h.nextID.Add(1))
}

func (h *Hub) Run() {
	h.log.Info("hub_run_start")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			if c.ID == "" {
				c.ID = h.newID()
			}
			h.clients[c.ID] = c
			h.total.Store(int64(len(h.clients)))
			h.log.Info("client_registered", "id", c.ID, "company_id", c.CompanyID, "total", len(h.clients))

		case c := <-h.unreg:
			h.drop(c.ID)
			h.log.Info("client_unregistered", "id", c.ID, "total", len(h.clients))

		case m := <-h.messages:
			for id, c := range h.clients {
				if !c.wants(m.companyID) {
					continue
				}
				select {
				case c.Send <- m.body:
				default:
					// cliente lento: derruba para não travar o hub
					h.drop(id)
					h.log.Warn("client_dropped_slow", "id", id)
				}
			}

		case <-h.stop:
			for id := range h.clients {
				h.drop(id)
			}
			h.log.Info("hub_run_stop")
			return
		}
	}
}

func (h *Hub) drop(id string) {
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		h.total.Store(int64(len(h.clients)))
		close(c.Send)
	}
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.stopped:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unreg <- c:
	case <-h.stopped:
	}
}

// Publish entrega body aos clientes interessados em companyID.
func (h *Hub) Publish(companyID string, body []byte) {
	select {
	case h.messages <- message{companyID: companyID, body: body}:
	case <-h.stopped:
	}
}

// Len é o número de clientes conectados.
func (h *Hub) Len() int { return int(h.total.Load()) }
