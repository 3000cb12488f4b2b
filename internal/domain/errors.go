package domain

import "errors"

// ErrProfileMissing marks the recoverable state where an identity-provider
// account authenticated successfully but no users document exists for it.
// Callers must be able to tell it apart from a credential failure.
var ErrProfileMissing = errors.New("user data not found")

// ErrBlogNotFound is returned by blog operations that target an absent blog
// document, such as toggling a like.
var ErrBlogNotFound = errors.New("blog not found")

// ErrInvalidStatus is returned when a connection status transition names an
// unknown status.
var ErrInvalidStatus = errors.New("invalid connection status")
