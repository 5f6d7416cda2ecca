package users

import "github.com/gin-gonic/gin"

// Constants for error messages
const (
	ErrFailedUpdateProfile = "Failed to update profile"
	ErrInvalidRequest      = "Invalid request data"
)

// UpdateProfileRequest model for profile updates. The account's name fields
// are editable here; email and role are not
type UpdateProfileRequest struct {
	Surname     string `json:"surname"`
	Name        string `json:"name"`
	Patronymic  string `json:"patronymic"`
	PhoneNumber string `json:"phone_number"`
	School      string `json:"school"`
	YearOfStudy *int   `json:"year_of_study"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
