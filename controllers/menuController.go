package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/warungku/warungku-api/initializers"
	"github.com/warungku/warungku-api/models"
	"github.com/warungku/warungku-api/services"
	"gorm.io/gorm"
)

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

// validSlug reports whether a slug is URL-safe: lowercase letters, digits,
// and dashes only.
func validSlug(slug string) bool {
	if slug == "" {
		return false
	}
	for _, r := range slug {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

// --- Categories ---

func ListCategories(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	var categories []models.Category
	if err := scopedDB(claims).Order("sort_order asc, id asc").Find(&categories).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"categories": categories})
}

type CategoryData struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sortOrder"`
	IsActive  *bool  `json:"isActive"`
}

func CreateCategory(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	var categoryData CategoryData
	if err := ctx.ShouldBindJSON(&categoryData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	category := models.Category{
		StoreID:   claims.StoreID,
		Name:      categoryData.Name,
		Slug:      slugify(categoryData.Name),
		SortOrder: categoryData.SortOrder,
		IsActive:  true,
	}
	if categoryData.IsActive != nil {
		category.IsActive = *categoryData.IsActive
	}

	if err := initializers.DB.Create(&category).Error; err != nil {
		log.Println("Category creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "failed to create category")
		return
	}

	sendSuccessResponse(ctx, http.StatusCreated, gin.H{"category": category})
}

type UpdateCategoryData struct {
	Name      *string `json:"name"`
	SortOrder *int    `json:"sortOrder"`
	IsActive  *bool   `json:"isActive"`
}

// UpdateCategory applies a partial edit; absent fields stay untouched.
func UpdateCategory(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	categoryID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid category id")
		return
	}

	var categoryData UpdateCategoryData
	if err := ctx.ShouldBindJSON(&categoryData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]any{}
	if categoryData.Name != nil {
		updates["name"] = *categoryData.Name
		updates["slug"] = slugify(*categoryData.Name)
	}
	if categoryData.SortOrder != nil {
		updates["sort_order"] = *categoryData.SortOrder
	}
	if categoryData.IsActive != nil {
		updates["is_active"] = *categoryData.IsActive
	}
	if len(updates) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := scopedDB(claims).Model(&models.Category{}).
		Where("id = ?", categoryID).
		Updates(updates)
	if result.Error != nil {
		log.Println("Category update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "category not found")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{})
}

func DeleteCategory(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	categoryID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid category id")
		return
	}

	var itemCount int64
	if err := scopedDB(claims).Model(&models.MenuItem{}).
		Where("category_id = ?", categoryID).
		Count(&itemCount).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if itemCount > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "category still has menu items")
		return
	}

	if err := scopedDB(claims).Delete(&models.Category{}, categoryID).Error; err != nil {
		log.Println("Category delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{})
}

// --- Menu items ---

func ListMenuItems(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	query := scopedDB(claims).Order("sort_order asc, id asc")
	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if categoryID := ctx.Query("categoryId"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"menuItems": items})
}

type MenuItemData struct {
	CategoryID    uint   `json:"categoryId" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Price         int64  `json:"price" binding:"required,gt=0"`
	DiscountPrice *int64 `json:"discountPrice"`
	IsAvailable   *bool  `json:"isAvailable"`
	IsFeatured    *bool  `json:"isFeatured"`
	SortOrder     int    `json:"sortOrder"`
}

func CreateMenuItem(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	var itemData MenuItemData
	if err := ctx.ShouldBindJSON(&itemData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	// The category must be the caller's own.
	var category models.Category
	if err := scopedDB(claims).First(&category, itemData.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "category not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	item := models.MenuItem{
		StoreID:       claims.StoreID,
		CategoryID:    category.ID,
		Name:          itemData.Name,
		Slug:          slugify(itemData.Name),
		Description:   itemData.Description,
		Price:         itemData.Price,
		DiscountPrice: itemData.DiscountPrice,
		IsAvailable:   true,
		SortOrder:     itemData.SortOrder,
	}
	if itemData.IsAvailable != nil {
		item.IsAvailable = *itemData.IsAvailable
	}
	if itemData.IsFeatured != nil {
		item.IsFeatured = *itemData.IsFeatured
	}

	if err := initializers.DB.Create(&item).Error; err != nil {
		log.Println("Menu item creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "failed to create menu item")
		return
	}

	sendSuccessResponse(ctx, http.StatusCreated, gin.H{"menuItem": item})
}

type UpdateMenuItemData struct {
	CategoryID    *uint   `json:"categoryId"`
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *int64  `json:"price"`
	DiscountPrice *int64  `json:"discountPrice"`
	IsAvailable   *bool   `json:"isAvailable"`
	IsFeatured    *bool   `json:"isFeatured"`
	SortOrder     *int    `json:"sortOrder"`
}

// UpdateMenuItem applies a partial edit; absent fields stay untouched.
func UpdateMenuItem(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid menu item id")
		return
	}

	var itemData UpdateMenuItemData
	if err := ctx.ShouldBindJSON(&itemData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if itemData.Price != nil && *itemData.Price <= 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]any{}
	if itemData.CategoryID != nil {
		var category models.Category
		if err := scopedDB(claims).First(&category, *itemData.CategoryID).Error; err != nil {
			sendErrorResponse(ctx, http.StatusNotFound, "category not found")
			return
		}
		updates["category_id"] = category.ID
	}
	if itemData.Name != nil {
		updates["name"] = *itemData.Name
		updates["slug"] = slugify(*itemData.Name)
	}
	if itemData.Description != nil {
		updates["description"] = *itemData.Description
	}
	if itemData.Price != nil {
		updates["price"] = *itemData.Price
	}
	if itemData.DiscountPrice != nil {
		updates["discount_price"] = *itemData.DiscountPrice
	}
	if itemData.SortOrder != nil {
		updates["sort_order"] = *itemData.SortOrder
	}
	if itemData.IsAvailable != nil {
		updates["is_available"] = *itemData.IsAvailable
	}
	if itemData.IsFeatured != nil {
		updates["is_featured"] = *itemData.IsFeatured
	}
	if len(updates) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := scopedDB(claims).Model(&models.MenuItem{}).
		Where("id = ?", itemID).
		Updates(updates)
	if result.Error != nil {
		log.Println("Menu item update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "menu item not found")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{})
}

func DeleteMenuItem(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid menu item id")
		return
	}

	if err := scopedDB(claims).Delete(&models.MenuItem{}, itemID).Error; err != nil {
		log.Println("Menu item delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{})
}

// UploadMenuItemImage stores an item photo in S3 and saves its URL.
func UploadMenuItemImage(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid menu item id")
		return
	}

	var item models.MenuItem
	if err := scopedDB(claims).First(&item, itemID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "menu item not found")
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "no image file uploaded")
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		log.Println("AWS config error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "failed to configure storage")
		return
	}

	f, err := file.Open()
	if err != nil {
		log.Printf("Error opening file %s: %v", file.Filename, err)
		sendErrorResponse(ctx, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	defer f.Close()

	uniqueFilename := fmt.Sprintf("menu-items/%d-%s-%s", item.ID, time.Now().Format("20060102150405"), file.Filename)
	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucketName()),
		Key:         aws.String(uniqueFilename),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("Error uploading file %s: %v", file.Filename, err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "upload failed")
		return
	}

	if err := initializers.DB.Model(&item).Update("image_url", result.Location).Error; err != nil {
		log.Println("Image URL save error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"url": result.Location})
}

// --- Outlet menu overrides ---

// GetOutletMenu is the admin preview of what an outlet's customers see.
func GetOutletMenu(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}
	outletID, ok := requireOutletAccess(ctx, claims, "id")
	if !ok {
		return
	}

	sections, err := services.EffectiveMenu(initializers.DB, claims.StoreID, outletID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "outlet not found")
		} else {
			log.Println("Effective menu error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"menu": sections})
}

type OutletMenuSettingData struct {
	IsAvailable   *bool  `json:"isAvailable" binding:"required"`
	PriceOverride *int64 `json:"priceOverride"`
}

// UpsertOutletMenuSetting sets or replaces one outlet's override for an item.
func UpsertOutletMenuSetting(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}
	outletID, ok := requireOutletAccess(ctx, claims, "id")
	if !ok {
		return
	}

	itemID, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid menu item id")
		return
	}

	var settingData OutletMenuSettingData
	if err := ctx.ShouldBindJSON(&settingData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if settingData.PriceOverride != nil && *settingData.PriceOverride < 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "price override cannot be negative")
		return
	}

	setting, err := services.UpsertOutletMenuSetting(
		initializers.DB, claims.StoreID, outletID, uint(itemID),
		*settingData.IsAvailable, settingData.PriceOverride,
	)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "menu item not found")
		} else {
			log.Println("Override upsert error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"setting": setting})
}

// DeleteOutletMenuSetting reverts one item to global defaults for the
// outlet. Deleting an override that never existed still succeeds.
func DeleteOutletMenuSetting(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}
	outletID, ok := requireOutletAccess(ctx, claims, "id")
	if !ok {
		return
	}

	itemID, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid menu item id")
		return
	}

	if err := services.DeleteOutletMenuSetting(initializers.DB, outletID, uint(itemID)); err != nil {
		log.Println("Override delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{})
}
