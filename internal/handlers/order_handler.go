package handlers

import (
	"net/http"

	"eventeasy/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.ListOrders(currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderJSON(&orders[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req struct {
		EventType  string `json:"event_type"`
		Telephone  string `json:"telephone"`
		Location   string `json:"location"`
		Date       string `json:"date"`
		TotalPrice string `json:"total_price"`
		Items      []struct {
			ServiceID uint   `json:"service"`
			Quantity  int    `json:"quantity"`
			Price     string `json:"price"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	input := services.CreateOrderInput{
		EventType:  req.EventType,
		Telephone:  req.Telephone,
		Location:   req.Location,
		Date:       req.Date,
		TotalPrice: req.TotalPrice,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, services.OrderItemInput{
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := h.orderService.CreateOrder(currentUser(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderJSON(order))
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(order))
}

func (h *OrderHandler) Claim(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.orderService.ClaimOrder(currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(order))
}

func (h *OrderHandler) Release(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.orderService.ReleaseOrder(currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(order))
}

func (h *OrderHandler) Pay(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		MpesaCode string `json:"mpesa_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	order, err := h.orderService.RecordPayment(currentUser(c), id, req.MpesaCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(order))
}
