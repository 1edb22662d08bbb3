package handlers

import (
	"net/http"
	"strconv"

	"eventeasy/internal/services"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog services.CatalogService
}

func NewCatalogHandler(catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// Category endpoints

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.GetCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(categories))
	for i := range categories {
		out = append(out, categoryJSON(&categories[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	category, err := h.catalog.GetCategory(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryJSON(category))
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	category, err := h.catalog.CreateCategory(services.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, categoryJSON(category))
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	category, err := h.catalog.UpdateCategory(id, services.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryJSON(category))
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Service endpoints

func (h *CatalogHandler) ListServices(c *gin.Context) {
	serviceList, err := h.catalog.GetServices()
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(serviceList))
	for i := range serviceList {
		out = append(out, serviceJSON(&serviceList[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) ListServicesByCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	serviceList, err := h.catalog.GetServicesByCategory(id)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(serviceList))
	for i := range serviceList {
		out = append(out, serviceJSON(&serviceList[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	service, err := h.catalog.GetService(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serviceJSON(service))
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       string `json:"price"`
		CategoryID  uint   `json:"category_id"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	service, err := h.catalog.CreateService(services.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serviceJSON(service))
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       string `json:"price"`
		CategoryID  uint   `json:"category_id"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	service, err := h.catalog.UpdateService(id, services.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serviceJSON(service))
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteService(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
