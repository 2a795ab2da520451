package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/warungku/warungku-api/initializers"
	"github.com/warungku/warungku-api/models"
	"github.com/warungku/warungku-api/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 10

	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user with this email already exists"
	msgStoreSlugTaken        = "store slug is already taken"
	msgInvalidStoreSlug      = "store slug may only contain lowercase letters, numbers, and dashes"
	msgInvalidCredentials    = "invalid email or password"
	msgFailedToGenerateToken = "failed to generate session token"
	msgInternalServerError   = "internal server error"
)

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetCookie(utils.SessionCookieName, token, int(utils.SessionDuration.Seconds()), "/", "", false, true)
}

type RegisterData struct {
	Fullname  string `json:"fullname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	StoreName string `json:"storeName" binding:"required"`
	StoreSlug string `json:"storeSlug" binding:"required"`
}

// Register creates a store and its owning tenant_admin user in one go.
func Register(ctx *gin.Context) {
	var registerData RegisterData
	if err := ctx.ShouldBindJSON(&registerData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	// The slug becomes part of the public storefront URL.
	storeSlug := slugify(registerData.StoreSlug)
	if !validSlug(storeSlug) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidStoreSlug)
		return
	}

	var existingUsers int64
	if err := initializers.DB.Model(&models.User{}).
		Where("email = ?", registerData.Email).
		Count(&existingUsers).Error; err != nil {
		log.Println("Database error during user check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if existingUsers > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}

	var existingStores int64
	if err := initializers.DB.Model(&models.Store{}).
		Where("slug = ?", storeSlug).
		Count(&existingStores).Error; err != nil {
		log.Println("Database error during store check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if existingStores > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgStoreSlugTaken)
		return
	}

	hashedPassword, err := hashPassword(registerData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	store := models.Store{
		Name:     registerData.StoreName,
		Slug:     storeSlug,
		IsActive: true,
	}
	user := models.User{
		Fullname: registerData.Fullname,
		Email:    registerData.Email,
		Password: hashedPassword,
		Role:     models.RoleTenantAdmin,
	}

	tx := initializers.DB.Begin()
	if err := tx.Create(&store).Error; err != nil {
		tx.Rollback()
		log.Println("Store creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	user.StoreID = store.ID
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		log.Println("User creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if err := tx.Model(&store).Update("owner_id", user.ID).Error; err != nil {
		tx.Rollback()
		log.Println("Store owner update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, store.ID)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}
	setSessionCookie(ctx, token)

	sendSuccessResponse(ctx, http.StatusCreated, gin.H{
		"store": store,
		"user":  user,
	})
}

// Login verifies credentials and sets the HTTP-only session cookie.
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := initializers.DB.Where("email = ?", loginData.Email).First(&user).Error; err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, user.StoreID)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}
	setSessionCookie(ctx, token)

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"user": user})
}

func Logout(ctx *gin.Context) {
	ctx.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
	sendSuccessResponse(ctx, http.StatusOK, gin.H{})
}

// Me returns the session's user and store.
func Me(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, claims.UserID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var store models.Store
	if err := initializers.DB.First(&store, claims.StoreID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, "unauthenticated")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"user": user, "store": store})
}
