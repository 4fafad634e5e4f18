package domain

import "errors"

// ErrNotFound is returned when an entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the acting user may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidInput is returned when a request is structurally valid but violates a
// business precondition (e.g. submitting without privacy consent).
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidCredentials is returned on failed login. Deliberately does not
// distinguish unknown email from wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrDuplicateSlug is returned when an event slug is already taken.
var ErrDuplicateSlug = errors.New("slug already in use")

// ErrDuplicateEmail is returned when a backoffice user email is already registered.
var ErrDuplicateEmail = errors.New("email already in use")

// ErrDuplicateCategoryName is returned when a category name already exists within
// the same event.
var ErrDuplicateCategoryName = errors.New("category name already exists in event")

// ErrDuplicateInterest is returned when an interest for the same (post, email)
// pair already exists.
var ErrDuplicateInterest = errors.New("duplicate interest not allowed")

// ErrCategoryHasApprovedPosts is returned when deleting a category that still has
// approved posts.
var ErrCategoryHasApprovedPosts = errors.New("category has approved posts")

// ErrEventNotDeletable is returned when deleting an event that is not an empty
// draft.
var ErrEventNotDeletable = errors.New("event is not an empty draft")

// ErrSubmissionsClosed is returned when a public submission targets an event whose
// status does not allow it.
var ErrSubmissionsClosed = errors.New("event does not accept submissions")

// ErrNotModerable is returned when a moderation decision targets a post whose
// status cannot be moderated.
var ErrNotModerable = errors.New("post cannot be moderated in its current status")
