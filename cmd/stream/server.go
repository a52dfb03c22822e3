package main

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pixelkernels"
	"pixelkernels/internal/config"
	"pixelkernels/internal/imageio"
	"pixelkernels/internal/raster"
	"pixelkernels/internal/water"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// maxPixels caps requested frames so one client cannot exhaust memory.
const maxPixels = 4096 * 4096

// Request is a client message. Zero fields fall back to the server config.
type Request struct {
	Kernel        string  `json:"kernel"` // fractal, raytrace or water
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	CenterX       float64 `json:"center_x"`
	CenterY       float64 `json:"center_y"`
	Zoom          float64 `json:"zoom"`
	MaxIterations int     `json:"max_iterations"`
	CamX          float64 `json:"cam_x"`
	CamY          float64 `json:"cam_y"`
	CamZ          float64 `json:"cam_z"`

	// Water only: drop a bump at grid cell (DropX, DropY) when DropRadius > 0.
	DropX      float64 `json:"drop_x"`
	DropY      float64 `json:"drop_y"`
	DropRadius float64 `json:"drop_radius"`
}

type client struct {
	mu  sync.Mutex // guards conn writes and req
	req Request
}

type server struct {
	k   *pixelkernels.Kernels
	cfg config.Config

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*client

	fieldMu sync.Mutex
	field   *water.Field
}

func newServer(k *pixelkernels.Kernels, cfg config.Config) *server {
	s := &server{
		k:       k,
		cfg:     cfg,
		clients: make(map[*websocket.Conn]*client),
		field:   water.NewField(cfg.Water.Size),
	}
	c := float64(cfg.Water.Size) / 2
	water.Drop(s.field, c, c, float64(cfg.Water.Size)/8, 1)
	return s
}

func (s *server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	cl := &client{}
	s.clientsMu.Lock()
	s.clients[conn] = cl
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("WebSocket read error:", err)
			}
			return
		}

		req = s.resolve(req)
		if req.Kernel == "water" && req.DropRadius > 0 {
			s.fieldMu.Lock()
			water.Drop(s.field, req.DropX, req.DropY, req.DropRadius, 1)
			s.fieldMu.Unlock()
		}

		if err := s.update(conn, cl, req); err != nil {
			log.Println("WebSocket write error:", err)
			return
		}
	}
}

// resolve fills zero request fields from the server config.
func (s *server) resolve(req Request) Request {
	if req.Kernel == "" {
		req.Kernel = "fractal"
	}
	if req.Width <= 0 {
		req.Width = s.cfg.Width
	}
	if req.Height <= 0 {
		req.Height = s.cfg.Height
	}
	if req.Zoom <= 0 {
		req.Zoom = s.cfg.Fractal.Zoom
		if req.CenterX == 0 && req.CenterY == 0 {
			req.CenterX, req.CenterY = s.cfg.Fractal.CenterX, s.cfg.Fractal.CenterY
		}
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = s.cfg.Fractal.MaxIterations
	}
	return req
}

// render runs the requested kernel into a fresh framebuffer.
func (s *server) render(req Request) (*raster.FrameBuffer, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return nil, fmt.Errorf("invalid frame %dx%d", req.Width, req.Height)
	}
	if req.Width > maxPixels || req.Height > maxPixels/req.Width {
		return nil, fmt.Errorf("frame %dx%d exceeds %d pixels", req.Width, req.Height, maxPixels)
	}
	fb := raster.NewFrameBuffer(req.Width, req.Height)
	switch req.Kernel {
	case "fractal":
		s.k.GenerateFractal(fb.Color, fb.Width, fb.Height, req.CenterX, req.CenterY, req.Zoom, req.MaxIterations)
	case "raytrace":
		c := s.cfg.Camera
		s.k.RaytraceScene(fb.Color, fb.Width, fb.Height, req.CamX, req.CamY, req.CamZ, c.LookX, c.LookY, c.LookZ)
	case "water":
		s.fieldMu.Lock()
		water.Shade(fb, s.field, 1, s.k.Workers)
		s.fieldMu.Unlock()
	default:
		return nil, fmt.Errorf("unknown kernel %q", req.Kernel)
	}
	return fb, nil
}

// send renders req and writes it as a binary WebP message, or a text error.
func (s *server) send(conn *websocket.Conn, req Request) error {
	fb, err := s.render(req)
	if err != nil {
		return conn.WriteMessage(websocket.TextMessage, []byte("error: "+err.Error()))
	}
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, fb.Image(), "webp"); err != nil {
		return conn.WriteMessage(websocket.TextMessage, []byte("error: "+err.Error()))
	}
	return conn.WriteMessage(websocket.BinaryMessage, buf.Bytes())
}

// waterLoop steps the shared field and pushes a frame to every client
// currently watching the water kernel.
func (s *server) waterLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		s.stepWater()
		s.broadcastWater()
	}
}

func (s *server) stepWater() {
	s.fieldMu.Lock()
	s.k.ApplyWaterForces(s.field.Heights, s.field.Velocities, s.field.Size, s.cfg.Water.DT)
	s.fieldMu.Unlock()
}

func (s *server) broadcastWater() {
	s.clientsMu.RLock()
	conns := make(map[*websocket.Conn]*client, len(s.clients))
	for conn, cl := range s.clients {
		conns[conn] = cl
	}
	s.clientsMu.RUnlock()

	for conn, cl := range conns {
		if err := s.pushWater(conn, cl); err != nil {
			log.Println("WebSocket broadcast error:", err)
		}
	}
}

// update records req as the client's current view and sends the frame.
func (s *server) update(conn *websocket.Conn, cl *client, req Request) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.req = req
	return s.send(conn, req)
}

// pushWater sends a water frame if the client is watching water.
func (s *server) pushWater(conn *websocket.Conn, cl *client) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.req.Kernel != "water" {
		return nil
	}
	return s.send(conn, cl.req)
}
