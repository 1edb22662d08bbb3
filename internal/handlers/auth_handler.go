package handlers

import (
	"net/http"
	"time"

	"eventeasy/internal/redis"
	"eventeasy/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService services.UserService
	sessions    *redis.Client
	sessionTTL  time.Duration
}

func NewAuthHandler(userService services.UserService, sessions *redis.Client, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Telephone string `json:"telephone"`
		Location  string `json:"location"`
		Role      string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.Register(services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Telephone: req.Telephone,
		Location:  req.Location,
		Role:      req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userJSON(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.sessions.CreateSession(&redis.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: time.Now(),
	}, h.sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userJSON(user),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := ""
	if len(header) > len("Bearer ") {
		token = header[len("Bearer "):]
	}
	if err := h.sessions.DeleteSession(token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, userJSON(currentUser(c)))
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Telephone string `json:"telephone"`
		Location  string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Role and email are not updatable through the profile endpoint.
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Telephone != "" {
		user.Telephone = req.Telephone
	}
	if req.Location != "" {
		user.Location = req.Location
	}

	if err := h.userService.UpdateProfile(user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userJSON(user))
}
