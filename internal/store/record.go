package store

import "github.com/wichananm65/user-dashboard/internal/user"

// Record is a stored user. The store speaks the same wire shape as the
// dashboard's client.
type Record = user.User

// Draft is the body of a create or update request.
type Draft = user.Draft
