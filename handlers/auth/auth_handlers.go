package auth

import (
	"net/http"
	"time"

	"api/config"
	"api/database"
	"api/middleware"
	"api/models"
	"api/utils"
	"api/utils/response"

	"github.com/gin-gonic/gin"
)

// Login authenticates a user by email and password
// @Summary Login
// @Description Authenticate a user and set the auth cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400,401 {object} map[string]string
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		respondWithError(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		respondWithError(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if user.Blocked {
		respondWithError(c, http.StatusUnauthorized, ErrAccountBlocked)
		return
	}

	lifetime := 24 * time.Hour
	if req.RememberMe {
		lifetime = 30 * 24 * time.Hour
	}
	token, err := middleware.GenerateToken(user.ID, lifetime)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}

	now := time.Now()
	database.DB.Model(&user).Update("last_connected", &now)

	setCookieToken(c, token, req.RememberMe)
	c.JSON(http.StatusOK, AuthResponse{
		Token:         token,
		UserID:        user.ID,
		Email:         user.Email,
		Surname:       user.Surname,
		Name:          user.Name,
		Patronymic:    user.Patronymic,
		Role:          user.Role,
		IsStaff:       user.IsStaff,
		LastConnected: &now,
	})
}

// RegisterUser creates a new account with its profile
// @Summary Register
// @Description Create a new user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account data"
// @Success 201 {object} models.User
// @Failure 400,409 {object} map[string]string
// @Router /auth/register [post]
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	if role != models.RoleStudent && role != models.RoleTeacher && role != models.RoleOther {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRole)
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		respondWithError(c, http.StatusConflict, ErrEmailInUse)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrHashPasswordFailed)
		return
	}

	user := models.User{
		Email:      req.Email,
		Password:   hashed,
		Surname:    req.Surname,
		Name:       req.Name,
		Patronymic: req.Patronymic,
		Role:       role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrUserCreateFailed)
		return
	}

	school := req.School
	fromCurrentSchool := true
	if config.SchoolName != "" && school != "" && school != config.SchoolName {
		fromCurrentSchool = false
	}
	if school == "" {
		school = config.SchoolName
	}
	profile := models.Profile{
		UserID:            user.ID,
		PhoneNumber:       req.PhoneNumber,
		School:            school,
		FromCurrentSchool: fromCurrentSchool,
		YearOfStudy:       req.YearOfStudy,
	}
	database.DB.Create(&profile)

	user.Password = ""
	user.Profile = &profile
	c.JSON(http.StatusCreated, user)
}

// CheckAuth returns the authenticated user behind the request token
// @Summary Check authentication
// @Description Return the current user when the auth token is valid
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /auth/check [get]
// @Security Bearer
func CheckAuth(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, user)
}

// Logout clears the auth cookie
// @Summary Logout
// @Description Clear the authentication cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
