// Package fakeapi is an in-memory tracker backend for tests.
package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// Media is the stored form of an entry.
type Media struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Progress      string    `json:"progress"`
	Score         string    `json:"score"`
	Complete      int       `json:"complete"`
	Date          string    `json:"date"`
	ExternalID    *string   `json:"external_id"`
	CoverImageURL *string   `json:"cover_image_url"`
	TotalEpisodes *string   `json:"total_episodes"`
	ExternalScore *string   `json:"external_score"`
	Synopsis      *string   `json:"synopsis"`
	Comments      []Comment `json:"comments"`
}

// Comment is the stored form of a comment.
type Comment struct {
	ID      int64  `json:"id"`
	MediaID int64  `json:"media_id"`
	Text    string `json:"text"`
}

// Result is one external search candidate.
type Result struct {
	Title         string `json:"title"`
	ExternalID    string `json:"external_id"`
	CoverImageURL string `json:"cover_image_url"`
	TotalEpisodes any    `json:"total_episodes"`
	ExternalScore any    `json:"external_score"`
	Synopsis      string `json:"synopsis"`
}

// Server serves the tracker API from memory.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	medias   []*Media
	nextID   int64
	results  map[string][]Result
	failures map[string]int
	calls    map[string]int
	forms    map[string]map[string]string
}

// New starts a fake backend. Close it when done.
func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		nextID:   1,
		results:  make(map[string][]Result),
		failures: make(map[string]int),
		calls:    make(map[string]int),
		forms:    make(map[string]map[string]string),
	}
	r := gin.New()
	s.RegisterRoutes(r.Group(""))
	s.Server = httptest.NewServer(r)
	return s
}

// RegisterRoutes mounts the API on rg.
func (s *Server) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(s.track)
	rg.GET("/medias", s.listMedia)
	rg.POST("/media", s.createMedia)
	rg.PATCH("/media", s.updateMedia)
	rg.DELETE("/media", s.deleteMedia)
	rg.POST("/comment", s.createComment)
	rg.PATCH("/comment", s.updateComment)
	rg.DELETE("/comment", s.deleteComment)
	rg.GET("/search", s.search)
}

// Fail makes every request to "METHOD /path" answer with status.
// A zero status clears the failure.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, route)
		return
	}
	s.failures[route] = status
}

// Calls returns how many requests reached "METHOD /path".
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// LastForm returns the last form body received on "METHOD /path".
func (s *Server) LastForm(route string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forms[route]
}

// SetResults registers search results for a lowercased query.
func (s *Server) SetResults(query string, results []Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[strings.ToLower(query)] = results
}

// Seed stores media directly, assigning ids when zero.
func (s *Server) Seed(medias ...Media) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range medias {
		m := medias[i]
		if m.ID == 0 {
			m.ID = s.nextID
		}
		if m.ID >= s.nextID {
			s.nextID = m.ID + 1
		}
		if m.Comments == nil {
			m.Comments = []Comment{}
		}
		s.medias = append(s.medias, &m)
	}
}

func (s *Server) track(c *gin.Context) {
	route := c.Request.Method + " " + c.FullPath()
	s.mu.Lock()
	s.calls[route]++
	status := s.failures[route]
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodDelete {
		if err := c.Request.ParseForm(); err == nil {
			form := make(map[string]string)
			for k := range c.Request.PostForm {
				form[k] = c.Request.PostForm.Get(k)
			}
			s.forms[route] = form
		}
	}
	s.mu.Unlock()

	if status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
		return
	}
	c.Next()
}

func (s *Server) find(id int64) (int, *Media) {
	for i, m := range s.medias {
		if m.ID == id {
			return i, m
		}
	}
	return -1, nil
}

func (s *Server) findComment(id int64) (*Media, int) {
	for _, m := range s.medias {
		for j, cm := range m.Comments {
			if cm.ID == id {
				return m, j
			}
		}
	}
	return nil, -1
}

func nullable(v string) *string {
	if v == "" || v == "null" {
		return nil
	}
	return &v
}

func parseID(v string) (int64, bool) {
	id, err := strconv.ParseInt(v, 10, 64)
	return id, err == nil
}

func (s *Server) listMedia(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Media, len(s.medias))
	for i, m := range s.medias {
		out[i] = *m
	}
	c.JSON(http.StatusOK, gin.H{"medias": out})
}

func (s *Server) bindMedia(c *gin.Context, m *Media) {
	m.Name = c.PostForm("name")
	m.Category = c.PostForm("category")
	m.Progress = c.PostForm("progress")
	m.Score = c.PostForm("score")
	m.Complete, _ = strconv.Atoi(c.PostForm("complete"))
	m.Date = c.PostForm("date")
	m.ExternalID = nullable(c.PostForm("external_id"))
	m.CoverImageURL = nullable(c.PostForm("cover_image_url"))
	m.TotalEpisodes = nullable(c.PostForm("total_episodes"))
	m.ExternalScore = nullable(c.PostForm("external_score"))
	m.Synopsis = nullable(c.PostForm("synopsis"))
}

func (s *Server) createMedia(c *gin.Context) {
	if c.PostForm("name") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &Media{ID: s.nextID, Comments: []Comment{}}
	s.nextID++
	s.bindMedia(c, m)
	s.medias = append(s.medias, m)
	c.JSON(http.StatusCreated, m)
}

func (s *Server) updateMedia(c *gin.Context) {
	id, ok := parseID(c.Query("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, m := s.find(id)
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}
	s.bindMedia(c, m)
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (s *Server) deleteMedia(c *gin.Context) {
	id, ok := parseID(c.Query("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i, m := s.find(id)
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}
	s.medias = append(s.medias[:i], s.medias[i+1:]...)
	c.JSON(http.StatusOK, gin.H{"media": m})
}

func (s *Server) createComment(c *gin.Context) {
	mediaID, ok := parseID(c.PostForm("media_id"))
	text := strings.TrimSpace(c.PostForm("text"))
	if !ok || text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "media_id and text required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, m := s.find(mediaID)
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}
	cm := Comment{ID: s.nextID, MediaID: mediaID, Text: text}
	s.nextID++
	m.Comments = append(m.Comments, cm)
	c.JSON(http.StatusCreated, gin.H{"comment": cm})
}

func (s *Server) updateComment(c *gin.Context) {
	id, ok := parseID(c.PostForm("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, j := s.findComment(id)
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	m.Comments[j].Text = c.PostForm("text")
	c.JSON(http.StatusOK, m.Comments[j])
}

func (s *Server) deleteComment(c *gin.Context) {
	id, ok := parseID(c.Query("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, j := s.findComment(id)
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	cm := m.Comments[j]
	m.Comments = append(m.Comments[:j], m.Comments[j+1:]...)
	c.JSON(http.StatusOK, gin.H{"comment": cm})
}

func (s *Server) search(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := s.results[strings.ToLower(c.Query("query"))]
	if results == nil {
		results = []Result{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
