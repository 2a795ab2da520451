package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warungku/warungku-api/initializers"
	"github.com/warungku/warungku-api/models"
	"github.com/warungku/warungku-api/services"
)

// AIController holds the chat-completion client and the per-store forecast
// cache as explicit dependencies so tests can swap them out.
type AIController struct {
	Client        *services.AIClient
	ForecastCache *services.TTLCache
}

func NewAIController() *AIController {
	return &AIController{
		Client:        services.NewAIClientFromEnv(),
		ForecastCache: services.NewTTLCache(time.Hour),
	}
}

// AI provider failures surface as 502; there is deliberately no canned
// fallback content pretending the provider answered.
func (ai *AIController) sendProviderError(ctx *gin.Context, err error) {
	log.Println("AI provider error:", err)
	sendErrorResponse(ctx, http.StatusBadGateway, "AI provider is unavailable, try again later")
}

type MarketingCopyData struct {
	MenuItemID uint   `json:"menuItemId" binding:"required"`
	Tone       string `json:"tone"`
}

// GenerateMarketingCopy writes a short promo text for one menu item.
func (ai *AIController) GenerateMarketingCopy(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	var copyData MarketingCopyData
	if err := ctx.ShouldBindJSON(&copyData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var item models.MenuItem
	if err := scopedDB(claims).First(&item, copyData.MenuItemID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "menu item not found")
		return
	}

	tone := copyData.Tone
	if tone == "" {
		tone = "friendly"
	}

	prompt := fmt.Sprintf(
		"Write a short %s Indonesian promotional text (max 2 sentences) for the dish %q priced at %d rupiah. Description: %s",
		tone, item.Name, item.Price, item.Description,
	)
	content, err := ai.Client.Complete(
		"You write social media marketing copy for small Indonesian restaurants.",
		prompt,
	)
	if err != nil {
		ai.sendProviderError(ctx, err)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"copy": content})
}

type PricingAdvice struct {
	SuggestedPrice int64  `json:"suggestedPrice"`
	Rationale      string `json:"rationale"`
}

// GetPricingAdvice asks the provider for a structured price suggestion.
func (ai *AIController) GetPricingAdvice(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	var adviceData struct {
		MenuItemID uint `json:"menuItemId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&adviceData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var item models.MenuItem
	if err := scopedDB(claims).First(&item, adviceData.MenuItemID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "menu item not found")
		return
	}

	var soldCount int64
	if err := initializers.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.store_id = ?", claims.StoreID).
		Where("order_items.menu_item_id = ?", item.ID).
		Count(&soldCount).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	prompt := fmt.Sprintf(
		`The dish %q currently costs %d rupiah and appeared on %d order lines. Suggest a price. Respond as {"suggestedPrice": <int rupiah>, "rationale": "<one sentence>"}.`,
		item.Name, item.Price, soldCount,
	)

	var advice PricingAdvice
	if err := ai.Client.CompleteJSON(
		"You are a pricing analyst for Indonesian food businesses.",
		prompt,
		&advice,
	); err != nil {
		ai.sendProviderError(ctx, err)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"advice": advice})
}

// GetSalesForecast summarizes recent orders and asks the provider for a
// short forecast. Results are cached per store for an hour.
func (ai *AIController) GetSalesForecast(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("forecast:%d", claims.StoreID)
	if cached, ok := ai.ForecastCache.Get(cacheKey); ok {
		sendSuccessResponse(ctx, http.StatusOK, gin.H{"forecast": cached, "cached": true})
		return
	}

	type dailyTotal struct {
		Day   string
		Total int64
	}
	var totals []dailyTotal
	if err := scopedDB(claims).Model(&models.Order{}).
		Select("DATE(created_at) as day, SUM(total) as total").
		Where("status != ?", models.OrderStatusCancelled).
		Where("created_at >= ?", time.Now().AddDate(0, 0, -14)).
		Group("DATE(created_at)").
		Order("day asc").
		Find(&totals).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var summary strings.Builder
	for _, t := range totals {
		fmt.Fprintf(&summary, "%s: %d rupiah\n", t.Day, t.Total)
	}
	if summary.Len() == 0 {
		summary.WriteString("no sales recorded yet\n")
	}

	content, err := ai.Client.Complete(
		"You forecast short-term sales for small restaurants. Be concise.",
		"Daily sales for the last 14 days:\n"+summary.String()+"Give a one-paragraph forecast for the coming week.",
	)
	if err != nil {
		ai.sendProviderError(ctx, err)
		return
	}

	ai.ForecastCache.Set(cacheKey, content)
	sendSuccessResponse(ctx, http.StatusOK, gin.H{"forecast": content, "cached": false})
}
