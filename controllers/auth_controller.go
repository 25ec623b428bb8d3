// Package controllers holds the HTTP handlers. Each controller is a struct
// over the repositories it needs, composed explicitly at startup.
package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"trendline/models"
	"trendline/utils"
)

// RegisterRequest is the account creation payload
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// LoginRequest is the credential payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthController handles registration and login
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates the auth controller
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Register creates a user account plus its customer record
func (ac *AuthController) Register(c *gin.Context) {
	utils.LogInfo("Register called")

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogDebug("Register: invalid payload: %v", err)
		utils.BadRequest(c, "Invalid registration data", err.Error())
		return
	}

	var existing models.User
	if err := ac.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.LogDebug("Register: email already taken: %s", req.Email)
		utils.RespondError(c, utils.ConflictError("Email already registered", nil))
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Register: password hash failed: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleCustomer,
	}

	err = ac.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		customer := models.Customer{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Address:     req.Address,
			PhoneNumber: req.PhoneNumber,
		}
		return tx.Create(&customer).Error
	})
	if err != nil {
		utils.LogError("Register: create failed: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	utils.LogInfo("Register: account created user_id=%d", user.ID)
	utils.Created(c, "Account created", gin.H{
		"email": user.Email,
		"role":  user.Role,
	})
}

// Login verifies credentials and issues a bearer token
func (ac *AuthController) Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid login data", err.Error())
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogDebug("Login: unknown email: %s", req.Email)
		utils.RespondError(c, utils.UnauthorizedError("Invalid email or password", err))
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogDebug("Login: bad password user_id=%d", user.ID)
		utils.RespondError(c, utils.UnauthorizedError("Invalid email or password", nil))
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Login: token generation failed: %v", err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.LogInfo("Login: user_id=%d role=%s", user.ID, user.Role)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"role":  user.Role,
	})
}
