package handlers

import (
	"eventeasy/internal/models"

	"github.com/gin-gonic/gin"
)

// Wire representations. Reads embed full related objects; writes accept ids
// only — the asymmetry is deliberate (read model != write model). Currency
// always renders as a string with exactly 2 fractional digits.

func userJSON(user *models.UserAccount) gin.H {
	if user == nil {
		return nil
	}
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"telephone":  user.Telephone,
		"location":   user.Location,
		"role":       user.Role,
	}
}

func categoryJSON(category *models.Category) gin.H {
	if category == nil {
		return nil
	}
	return gin.H{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
	}
}

func serviceJSON(service *models.Service) gin.H {
	if service == nil {
		return nil
	}
	return gin.H{
		"id":          service.ID,
		"name":        service.Name,
		"description": service.Description,
		"price":       service.Price.StringFixed(2),
		"category_id": service.CategoryID,
		"category":    categoryJSON(service.Category),
		"image_url":   service.ImageURL,
	}
}

func orderItemJSON(item *models.OrderItem) gin.H {
	return gin.H{
		"id":          item.ID,
		"service":     serviceJSON(item.Service),
		"quantity":    item.Quantity,
		"price":       item.Price.StringFixed(2),
		"total_price": item.TotalPrice().StringFixed(2),
	}
}

func orderJSON(order *models.Order) gin.H {
	items := make([]gin.H, 0, len(order.Items))
	for i := range order.Items {
		items = append(items, orderItemJSON(&order.Items[i]))
	}
	return gin.H{
		"id":                order.ID,
		"event_type":        order.EventType,
		"user":              userJSON(order.User),
		"provider":          userJSON(order.Provider),
		"items":             items,
		"total_price":       order.TotalPrice.StringFixed(2),
		"paid":              order.Paid,
		"mpesa_code":        order.MpesaCode,
		"taken_by_provider": order.TakenByProvider,
		"telephone":         order.Telephone,
		"location":          order.Location,
		"date":              order.Date.Format("2006-01-02"),
		"status":            order.Status,
		"created_at":        order.CreatedAt,
		"updated_at":        order.UpdatedAt,
	}
}
