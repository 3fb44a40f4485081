package service

import "errors"

// Service layer errors for better error handling
var (
	ErrExperienceNotFound = errors.New("experience not found")
	ErrFeedbackNotFound   = errors.New("feedback not found")

	// Auth errors
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("admin access required")
	ErrTokenExpired     = errors.New("access token expired")
	ErrInvalidToken     = errors.New("invalid access token")
	ErrInvalidIDToken   = errors.New("invalid google id token")
	ErrSessionNotFound  = errors.New("session not found")
	ErrMailNotAvailable = errors.New("mail delivery is not configured")

	// Scraper errors
	ErrNotHTML     = errors.New("page is not html")
	ErrFetchFailed = errors.New("failed to fetch page")
)
