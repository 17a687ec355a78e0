package controllers

import (
	"github.com/gin-gonic/gin"

	"basha-backend/middleware"
	"basha-backend/models"
	"basha-backend/services"
	"basha-backend/utils"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login handles POST /api/auth/login. The password is required but not checked.
func (ac *AuthController) Login(c *gin.Context) {
	var in models.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	res, err := ac.auth.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, res)
}

func (ac *AuthController) Signup(c *gin.Context) {
	var in models.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	res, err := ac.auth.Signup(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, res)
}

func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.auth.Logout(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, gin.H{"loggedOut": true})
}

func (ac *AuthController) Me(c *gin.Context) {
	utils.OK(c, middleware.CurrentSession(c).User)
}
