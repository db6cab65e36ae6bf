package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sarthakjha889/go-aho-corasick/dict"
	"github.com/sarthakjha889/go-aho-corasick/internal/metrics"
	"github.com/sarthakjha889/go-aho-corasick/textmatch"
)

const (
	modeAll    = "all"
	modeFirst  = "first"
	modeCount  = "count"
	modeSearch = "search"
	modeStream = "stream"
)

type scanRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode" binding:"omitempty,oneof=all first count search"`
}

type matchJSON struct {
	Pattern string `json:"pattern"`
	Text    string `json:"text"`
	Begin   int    `json:"begin"`
	End     int    `json:"end"`
	Label   string `json:"label"`
}

type scanResponse struct {
	Dictionary string      `json:"dictionary"`
	Mode       string      `json:"mode"`
	Found      bool        `json:"found"`
	Count      int         `json:"count,omitempty"`
	Matches    []matchJSON `json:"matches,omitempty"`
}

type streamReply struct {
	Offset  int         `json:"offset"`
	Matches []matchJSON `json:"matches"`
}

func toJSON(ms []textmatch.Match[string]) []matchJSON {
	out := make([]matchJSON, len(ms))
	for i, m := range ms {
		out[i] = matchJSON{Pattern: m.Pattern, Text: m.Text, Begin: m.Begin, End: m.End, Label: m.Value}
	}
	return out
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "dictionaries": len(s.reg.Names())})
}

func (s *Server) listDictionaries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dictionaries": s.reg.List()})
}

func (s *Server) getDictionary(c *gin.Context) {
	info, ok := s.reg.Info(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "dictionary not found"})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) lookup(c *gin.Context) (*dict.Dictionary, bool) {
	d, ok := s.reg.Get(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "dictionary not found"})
	}
	return d, ok
}

func (s *Server) scan(c *gin.Context) {
	name := c.Param("name")
	d, ok := s.lookup(c)
	if !ok {
		return
	}

	if s.cfg.MaxBody > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBody)
	}
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Mode == "" {
		req.Mode = modeAll
	}

	start := time.Now()
	resp := scanResponse{Dictionary: name, Mode: req.Mode}
	switch req.Mode {
	case modeAll:
		ms := d.FindAll(req.Text)
		resp.Matches = toJSON(ms)
		resp.Count = len(ms)
	case modeFirst:
		if m, found := d.First(req.Text); found {
			resp.Matches = toJSON([]textmatch.Match[string]{m})
			resp.Count = 1
		}
	case modeCount:
		resp.Count = d.Count(req.Text)
	case modeSearch:
		resp.Found = d.Contains(req.Text)
	}
	if req.Mode != modeSearch {
		resp.Found = resp.Count > 0
	}
	s.observe(name, req.Mode, len(req.Text), resp.Count, time.Since(start))

	c.JSON(http.StatusOK, resp)
}

func (s *Server) observe(name, mode string, size, matches int, took time.Duration) {
	metrics.Scans.WithLabelValues(name, mode).Inc()
	metrics.ScannedBytes.WithLabelValues(name).Add(float64(size))
	metrics.Matches.WithLabelValues(name).Add(float64(matches))
	metrics.ScanDuration.WithLabelValues(name).Observe(took.Seconds())
}

// stream scans every text frame of a websocket session as the continuation of
// one text and answers each frame with the matches that end inside it.
func (s *Server) stream(c *gin.Context) {
	name := c.Param("name")
	d, ok := s.lookup(c)
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "name", name, "error", err)
		return
	}
	defer conn.Close()

	// the http.Server deadlines still apply to the hijacked connection
	_ = conn.SetReadDeadline(time.Time{})
	_ = conn.SetWriteDeadline(time.Time{})
	if s.cfg.MaxBody > 0 {
		conn.SetReadLimit(s.cfg.MaxBody)
	}

	metrics.StreamSessions.Inc()
	defer metrics.StreamSessions.Dec()

	st := d.NewStream()
	for {
		typ, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("stream closed", "name", name, "error", err)
			}
			return
		}
		if typ != websocket.TextMessage {
			continue
		}

		start := time.Now()
		ms := st.WriteString(string(msg))
		s.observe(name, modeStream, len(msg), len(ms), time.Since(start))

		if err := conn.WriteJSON(streamReply{Offset: st.Offset(), Matches: toJSON(ms)}); err != nil {
			s.log.Debug("stream write failed", "name", name, "error", err)
			return
		}
	}
}
