package domain

import "errors"

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseExists     = errors.New("a course with this title already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("category still has courses")
	ErrPlatformNotFound = errors.New("platform not found")
	ErrPlatformExists   = errors.New("platform already exists")
	ErrPlatformInUse    = errors.New("platform still has courses")
	ErrReviewNotFound   = errors.New("review not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailExists      = errors.New("an account with this email already exists")
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrInvalidInput     = errors.New("invalid input")
)
