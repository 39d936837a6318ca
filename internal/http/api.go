package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"messagely/internal/domain"
	"messagely/internal/service"
	"messagely/internal/token"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	messages service.MessageService
	tokens   *token.Manager
	logger   logrus.FieldLogger
}

func NewHandler(users service.UserService, messages service.MessageService, tokens *token.Manager, logger logrus.FieldLogger) *Handler {
	return &Handler{
		users:    users,
		messages: messages,
		tokens:   tokens,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}

	users := router.Group("/users", h.requireAuth())
	{
		users.GET("", h.listUsers)
		users.GET("/:username", h.getUser)
		users.GET("/:username/to", h.messagesTo)
		users.GET("/:username/from", h.messagesFrom)
	}

	messages := router.Group("/messages", h.requireAuth())
	{
		messages.POST("", h.createMessage)
		messages.GET("/:id", h.getMessage)
		messages.POST("/:id", h.markRead)
	}
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createMessageRequest struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.ErrInvalidInput)
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	tok, err := h.tokens.Generate(user.Username)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": tok})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.ErrInvalidInput)
		return
	}

	ok, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !ok {
		writeError(c, domain.ErrInvalidCredentials)
		return
	}

	if _, err := h.users.TouchLogin(c.Request.Context(), req.Username); err != nil {
		h.fail(c, err)
		return
	}

	tok, err := h.tokens.Generate(req.Username)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]UserSummaryResponse, len(users))
	for i := range users {
		resp[i] = userToSummary(&users[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

func (h *Handler) getUser(c *gin.Context) {
	username := c.Param("username")
	if callerUsername(c) != username {
		writeError(c, domain.ErrUnauthorized)
		return
	}

	user, err := h.users.Get(c.Request.Context(), username)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToProfile(user)})
}

func (h *Handler) messagesTo(c *gin.Context) {
	username := c.Param("username")
	if callerUsername(c) != username {
		writeError(c, domain.ErrUnauthorized)
		return
	}

	msgs, err := h.messages.Inbox(c.Request.Context(), username)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messagesToResponses(msgs)})
}

func (h *Handler) messagesFrom(c *gin.Context) {
	username := c.Param("username")
	if callerUsername(c) != username {
		writeError(c, domain.ErrUnauthorized)
		return
	}

	msgs, err := h.messages.Outbox(c.Request.Context(), username)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messagesToResponses(msgs)})
}

func (h *Handler) createMessage(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.ErrInvalidInput)
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), callerUsername(c), req.ToUsername, req.Body)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": SentMessageResponse{
		ID:           msg.ID,
		FromUsername: msg.FromUsername,
		ToUsername:   msg.ToUsername,
		Body:         msg.Body,
		SentAt:       msg.SentAt.Format(time.RFC3339),
	}})
}

func (h *Handler) getMessage(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	msg, err := h.messages.Get(c.Request.Context(), id, callerUsername(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": messageToDetail(msg)})
}

func (h *Handler) markRead(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	msg, err := h.messages.MarkRead(c.Request.Context(), id, callerUsername(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ReadReceiptResponse{
		ID:     msg.ID,
		ReadAt: formatTimePtr(msg.ReadAt),
	}})
}

func messageID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, domain.ErrMessageNotFound)
		return 0, false
	}
	return id, true
}

// fail writes the mapped error response and logs anything that surfaces
// as an internal error.
func (h *Handler) fail(c *gin.Context, err error) {
	if status, _ := statusFor(err); status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error("unhandled error")
	}
	writeError(c, err)
}
