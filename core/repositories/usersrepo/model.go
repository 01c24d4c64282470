package usersrepo

// User is the persisted user account. A tagged structure rather than an open
// map, so the storage surface stays typed even while user management carries
// no HTTP routes yet.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
}

// CreateUser contains the fields a caller provides when creating a user.
type CreateUser struct {
	Username     string
	PasswordHash string
}
