package users

import (
    "api/config"
    "api/database"
    "api/middleware"
    "api/models"
    "net/http"

    "github.com/gin-gonic/gin"
)

// GetUserProfile retrieves the authenticated user's profile
// @Summary Get User Profile
// @Description Get the profile information of the authenticated user
// @Tags Users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /user/profile [get]
// @Security Bearer
func GetUserProfile(c *gin.Context) {
    user, err := middleware.GetUserFromRequest(c)
    if err != nil {
        return // Error already handled by middleware
    }

    // Hide password from response for security
    user.Password = ""

    c.JSON(http.StatusOK, user)
}

// UpdateUserProfile updates the authenticated user's profile
// @Summary Update User Profile
// @Description Update the profile information of the authenticated user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /user/profile [put]
// @Security Bearer
func UpdateUserProfile(c *gin.Context) {
    user, err := middleware.GetUserFromRequest(c)
    if err != nil {
        return // Error already handled by middleware
    }

    var req UpdateProfileRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
        return
    }

    if req.Surname != "" {
        user.Surname = req.Surname
    }
    if req.Name != "" {
        user.Name = req.Name
    }
    user.Patronymic = req.Patronymic

    if err := database.DB.Omit("Profile").Save(user).Error; err != nil {
        respondWithError(c, http.StatusInternalServerError, ErrFailedUpdateProfile)
        return
    }

    if user.Profile == nil {
        user.Profile = &models.Profile{UserID: user.ID}
    }
    user.Profile.PhoneNumber = req.PhoneNumber
    if req.School != "" {
        user.Profile.School = req.School
        user.Profile.FromCurrentSchool = config.SchoolName == "" || req.School == config.SchoolName
    }
    user.Profile.YearOfStudy = req.YearOfStudy

    if err := database.DB.Save(user.Profile).Error; err != nil {
        respondWithError(c, http.StatusInternalServerError, ErrFailedUpdateProfile)
        return
    }

    user.Password = ""
    c.JSON(http.StatusOK, user)
}
