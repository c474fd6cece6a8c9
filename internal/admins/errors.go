package admins

import "errors"

// ErrNotFound indicates the admin user does not exist.
var ErrNotFound = errors.New("admin user not found")

// ErrInvalidCredentials indicates a failed username/password check.
var ErrInvalidCredentials = errors.New("invalid admin credentials")

// ErrUsernameTaken indicates a create with a duplicate username.
var ErrUsernameTaken = errors.New("username already exists")
