package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/coursefinder/chat"
	"github.com/poiesic/coursefinder/core"
	"github.com/poiesic/coursefinder/recommend"
	"github.com/poiesic/coursefinder/search"
)

func healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

type coursesResponse struct {
	Courses []core.Course `json:"courses"`
	Count   int           `json:"count"`
}

type resultsResponse struct {
	Query   string              `json:"query"`
	Results []core.ScoredCourse `json:"results"`
}

type chatRequest struct {
	Message string         `json:"message"`
	Profile *chat.Profile  `json:"profile,omitempty"`
	History []chat.Message `json:"history,omitempty"`
}

type chatResponse struct {
	Reply   string              `json:"reply"`
	Courses []core.ScoredCourse `json:"courses"`
	Profile chat.Profile        `json:"profile"`
}

func (s *Server) parseTopK(raw string) (int, error) {
	if raw == "" {
		return s.defaultTopK, nil
	}
	topK, err := strconv.Atoi(raw)
	if err != nil || topK < 1 || topK > maxTopK {
		return 0, fmt.Errorf("top_k must be an integer between 1 and %d", maxTopK)
	}
	return topK, nil
}

func (s *Server) listCourses(c *gin.Context) {
	criteria := search.Criteria{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Skills:     c.QueryArray("skill"),
	}
	courses := s.service.Filter(c.Request.Context(), criteria)
	respondOK(c, coursesResponse{Courses: courses, Count: len(courses)})
}

func (s *Server) getCourse(c *gin.Context) {
	id := c.Param("id")
	course, ok := s.service.GetByID(c.Request.Context(), id)
	if !ok {
		respondError(c, http.StatusNotFound, "course_not_found", fmt.Errorf("course %q not found", id))
		return
	}
	respondOK(c, course)
}

func (s *Server) search(c *gin.Context) {
	query, ok := c.GetQuery("q")
	if !ok {
		respondError(c, http.StatusBadRequest, "missing_query", errors.New("query parameter q is required"))
		return
	}
	topK, err := s.parseTopK(c.Query("top_k"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_top_k", err)
		return
	}

	results := s.service.Search(c.Request.Context(), query, topK)
	respondOK(c, resultsResponse{Query: query, Results: results})
}

func (s *Server) recommend(c *gin.Context) {
	var req recommend.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.TopK == 0 {
		req.TopK = s.defaultTopK
	}
	if req.TopK < 1 || req.TopK > maxTopK {
		respondError(c, http.StatusBadRequest, "invalid_top_k",
			fmt.Errorf("top_k must be between 1 and %d", maxTopK))
		return
	}

	results := s.service.Recommend(c.Request.Context(), req)
	respondOK(c, resultsResponse{Query: req.Query(), Results: results})
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(c, http.StatusBadRequest, "missing_message", errors.New("message is required"))
		return
	}

	var profile chat.Profile
	if req.Profile != nil {
		profile = *req.Profile
	} else {
		history := append(req.History, chat.Message{Role: chat.RoleUser, Content: req.Message})
		profile = chat.ExtractProfile(history)
	}

	reply, err := s.service.Chat(c.Request.Context(), req.Message, profile)
	if errors.Is(err, chat.ErrAssistantUnavailable) {
		respondError(c, http.StatusServiceUnavailable, "assistant_unavailable", err)
		return
	}
	if err != nil {
		s.logger.Error("chat failed", "err", err)
		respondError(c, http.StatusInternalServerError, "chat_failed", err)
		return
	}

	respondOK(c, chatResponse{Reply: reply.Text, Courses: reply.Courses, Profile: profile})
}
