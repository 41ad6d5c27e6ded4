// Package repository holds the data access layer. Sentinel errors are
// shared here so handlers can translate store failures into HTTP
// statuses without inspecting driver errors.
package repository

import "errors"

// ErrGalleryNotFound is returned when a gallery id does not resolve.
var ErrGalleryNotFound = errors.New("gallery not found")

// ErrHallNotFound is returned when a hall id does not resolve.
var ErrHallNotFound = errors.New("hall not found")

// ErrUserNotFound is returned when a user id or email does not resolve.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned on registration with a taken email.
var ErrEmailExists = errors.New("email already exists")
