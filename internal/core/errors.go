package core

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrNotLoggedIn        = errors.New("no user is logged in")

	ErrMissingPhoto = errors.New("please upload a photo of your room")
	ErrMissingStyle = errors.New("please choose a design style")
	ErrInvalidImage = errors.New("image must be a base64 data URL")

	ErrRateLimited      = errors.New("daily redesign limit reached, come back tomorrow")
	ErrModelOverloaded  = errors.New("the AI service is busy right now, please try again in a moment")
	ErrNoImageGenerated = errors.New("the model did not return a redesigned image")
	ErrGenerationFailed = errors.New("AI request failed")

	ErrProfileNotFound = errors.New("profile not found")
)

// IsValidation reports whether err was raised before any external call.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingPhoto) ||
		errors.Is(err, ErrMissingStyle) ||
		errors.Is(err, ErrInvalidImage) ||
		errors.Is(err, ErrMissingFields)
}

var overloadMarkers = []string{"503", "overloaded", "unavailable"}

// isOverloaded matches transient "service overloaded" failures by their text.
func isOverloaded(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, m := range overloadMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
