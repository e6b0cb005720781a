package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/hotelia/tarify/internal/catalog/domain"
)

type createTariffPeriodRequest struct {
	Name          string         `json:"name"`
	StartDate     time.Time      `json:"start_date"`
	EndDate       time.Time      `json:"end_date"`
	MinimumNights int            `json:"minimum_nights"`
	Metadata      map[string]any `json:"metadata"`
}

func (s *Server) CreateTariffPeriod(c *gin.Context) {
	var req createTariffPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreatePeriod(c.Request.Context(), catalogdomain.CreatePeriodRequest{
		Name:          strings.TrimSpace(req.Name),
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		MinimumNights: req.MinimumNights,
		Metadata:      req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTariffPeriods(c *gin.Context) {
	resp, err := s.catalogSvc.ListPeriods(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTariffPeriod(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.catalogSvc.GetPeriod(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createAccommodationCategoryRequest struct {
	Name        string         `json:"name"`
	MaxCapacity int            `json:"max_capacity"`
	Metadata    map[string]any `json:"metadata"`
}

func (s *Server) CreateAccommodationCategory(c *gin.Context) {
	var req createAccommodationCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreateCategory(c.Request.Context(), catalogdomain.CreateCategoryRequest{
		Name:        strings.TrimSpace(req.Name),
		MaxCapacity: req.MaxCapacity,
		Metadata:    req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAccommodationCategories(c *gin.Context) {
	resp, err := s.catalogSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAccommodationCategory(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.catalogSvc.GetCategory(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
