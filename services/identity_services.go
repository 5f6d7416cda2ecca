package services

import (
	"strings"

	"api/database"
	"api/models"
)

// ParsedName is a whitespace-normalized full name split into its parts
type ParsedName struct {
	Surname    string
	Name       string
	Patronymic string
}

// ParseFullName splits a free-text full name into surname/name/patronymic.
// Fewer than two tokens is malformed input and reported as "no match", not an
// error. With anything other than exactly three tokens the patronymic is left
// empty and not compared by lookups
func ParseFullName(fio string) (ParsedName, bool) {
	tokens := strings.Fields(fio)
	if len(tokens) < 2 {
		return ParsedName{}, false
	}
	parsed := ParsedName{
		Surname: tokens[0],
		Name:    tokens[1],
	}
	if len(tokens) == 3 {
		parsed.Patronymic = tokens[2]
	}
	return parsed, true
}

// GetUserByFullName resolves a free-text full name to a registered user by
// exact match on the stored name fields. With two tokens the patronymic is not
// compared. When several users share a full name the first match by stored
// order is returned. Returns nil when there is no match
func GetUserByFullName(fio string) *models.User {
	parsed, ok := ParseFullName(fio)
	if !ok {
		return nil
	}

	query := database.DB.Preload("Profile").
		Where("surname = ? AND name = ?", parsed.Surname, parsed.Name)
	if parsed.Patronymic != "" {
		query = query.Where("patronymic = ?", parsed.Patronymic)
	}

	var user models.User
	if err := query.First(&user).Error; err != nil {
		return nil
	}
	return &user
}
