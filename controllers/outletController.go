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
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/warungku/warungku-api/initializers"
	"github.com/warungku/warungku-api/models"
	"github.com/warungku/warungku-api/services"
	"github.com/warungku/warungku-api/utils"
	"gorm.io/datatypes"
)

// getAWSUploader returns a configured S3 uploader.
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// requireOutletAccess parses the :id param and checks the caller may manage
// that outlet. Writes the error response itself on failure.
func requireOutletAccess(ctx *gin.Context, claims *utils.Claims, param string) (uint, bool) {
	outletID, err := strconv.Atoi(ctx.Param(param))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid outlet id")
		return 0, false
	}

	allowed, err := services.CanAccessOutlet(initializers.DB, claims.UserID, claims.Role, claims.StoreID, uint(outletID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "outlet not found")
		} else {
			log.Println("Outlet access check error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return 0, false
	}
	if !allowed {
		sendErrorResponse(ctx, http.StatusForbidden, "no access to this outlet")
		return 0, false
	}
	return uint(outletID), true
}

func ListOutlets(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	var outlets []models.Outlet
	query := scopedDB(claims).Order("is_main desc, id asc")

	// Restricted roles only see their assigned outlets, unless they predate
	// the assignment table entirely.
	if claims.Role == models.RoleOutletAdmin || claims.Role == models.RoleStaff {
		var assignments []models.UserOutlet
		if err := initializers.DB.Where("user_id = ?", claims.UserID).Find(&assignments).Error; err != nil {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		if len(assignments) > 0 {
			ids := make([]uint, 0, len(assignments))
			for _, a := range assignments {
				ids = append(ids, a.OutletID)
			}
			query = query.Where("id IN ?", ids)
		} else if claims.Role == models.RoleOutletAdmin {
			sendSuccessResponse(ctx, http.StatusOK, gin.H{"outlets": []models.Outlet{}})
			return
		}
	}

	if err := query.Find(&outlets).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"outlets": outlets})
}

type CreateOutletData struct {
	Name                 string  `json:"name" binding:"required"`
	Slug                 string  `json:"slug" binding:"required"`
	Address              string  `json:"address"`
	Phone                string  `json:"phone"`
	TaxPercent           float64 `json:"taxPercent"`
	ServiceChargePercent float64 `json:"serviceChargePercent"`
}

// CreateOutlet adds an outlet; the store's first outlet becomes main.
func CreateOutlet(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}
	if claims.Role != models.RoleTenantAdmin && claims.Role != models.RoleOwner {
		sendErrorResponse(ctx, http.StatusForbidden, "only the store admin can create outlets")
		return
	}

	var createData CreateOutletData
	if err := ctx.ShouldBindJSON(&createData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var existing int64
	if err := scopedDB(claims).Model(&models.Outlet{}).Count(&existing).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	outlet := models.Outlet{
		StoreID:              claims.StoreID,
		Name:                 createData.Name,
		Slug:                 strings.ToLower(createData.Slug),
		IsMain:               existing == 0,
		Address:              createData.Address,
		Phone:                createData.Phone,
		TaxPercent:           createData.TaxPercent,
		ServiceChargePercent: createData.ServiceChargePercent,
		IsActive:             true,
	}
	if err := initializers.DB.Create(&outlet).Error; err != nil {
		log.Println("Outlet creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "failed to create outlet")
		return
	}

	sendSuccessResponse(ctx, http.StatusCreated, gin.H{"outlet": outlet})
}

func GetOutlet(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}
	outletID, ok := requireOutletAccess(ctx, claims, "id")
	if !ok {
		return
	}

	var outlet models.Outlet
	if err := scopedDB(claims).First(&outlet, outletID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "outlet not found")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"outlet": outlet})
}

type UpdateOutletData struct {
	Name                 *string         `json:"name"`
	Address              *string         `json:"address"`
	Phone                *string         `json:"phone"`
	Theme                *datatypes.JSON `json:"theme"`
	Branding             *datatypes.JSON `json:"branding"`
	TaxPercent           *float64        `json:"taxPercent"`
	ServiceChargePercent *float64        `json:"serviceChargePercent"`
	Settings             *datatypes.JSON `json:"settings"`
	IsActive             *bool           `json:"isActive"`
}

func UpdateOutlet(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}
	outletID, ok := requireOutletAccess(ctx, claims, "id")
	if !ok {
		return
	}

	var updateData UpdateOutletData
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]any{}
	if updateData.Name != nil {
		updates["name"] = *updateData.Name
	}
	if updateData.Address != nil {
		updates["address"] = *updateData.Address
	}
	if updateData.Phone != nil {
		updates["phone"] = *updateData.Phone
	}
	if updateData.Theme != nil {
		updates["theme"] = *updateData.Theme
	}
	if updateData.Branding != nil {
		updates["branding"] = *updateData.Branding
	}
	if updateData.TaxPercent != nil {
		updates["tax_percent"] = *updateData.TaxPercent
	}
	if updateData.ServiceChargePercent != nil {
		updates["service_charge_percent"] = *updateData.ServiceChargePercent
	}
	if updateData.Settings != nil {
		updates["settings"] = *updateData.Settings
	}
	if updateData.IsActive != nil {
		updates["is_active"] = *updateData.IsActive
	}
	if len(updates) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := scopedDB(claims).Model(&models.Outlet{}).
		Where("id = ?", outletID).
		Updates(updates).Error; err != nil {
		log.Println("Outlet update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var outlet models.Outlet
	if err := scopedDB(claims).First(&outlet, outletID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "outlet not found")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"outlet": outlet})
}

// DeleteOutlet soft-disables an outlet. The main outlet cannot be disabled;
// promote another one first.
func DeleteOutlet(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}
	if claims.Role != models.RoleTenantAdmin && claims.Role != models.RoleOwner {
		sendErrorResponse(ctx, http.StatusForbidden, "only the store admin can disable outlets")
		return
	}
	outletID, ok := requireOutletAccess(ctx, claims, "id")
	if !ok {
		return
	}

	var outlet models.Outlet
	if err := scopedDB(claims).First(&outlet, outletID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "outlet not found")
		return
	}
	if outlet.IsMain {
		sendErrorResponse(ctx, http.StatusBadRequest, "cannot disable the main outlet")
		return
	}

	if err := initializers.DB.Model(&outlet).Update("is_active", false).Error; err != nil {
		log.Println("Outlet disable error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{})
}

// UploadOutletLogo stores the logo in S3 and saves the public URL.
func UploadOutletLogo(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}
	outletID, ok := requireOutletAccess(ctx, claims, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("logo")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "no logo file uploaded")
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

	uniqueFilename := fmt.Sprintf("outlets/%d-%s-%s", outletID, time.Now().Format("20060102150405"), file.Filename)
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

	if err := scopedDB(claims).Model(&models.Outlet{}).
		Where("id = ?", outletID).
		Update("logo_url", result.Location).Error; err != nil {
		log.Println("Logo URL save error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"url": result.Location})
}
