package entity

// Profile mirrors the identity provider's user record; the id IS the
// provider's user id.
type Profile struct {
	Base
	Username  string `db:"username"`
	FullName  string `db:"full_name"`
	AvatarURL string `db:"avatar_url"`
	Role      string `db:"role"` // user, admin
}
