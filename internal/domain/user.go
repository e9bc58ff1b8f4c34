package domain

// FieldMask replaces sensitive user fields before a record leaves the service
// layer for anyone other than the account owner.
const FieldMask = "***"

type User struct {
	Handle       string `db:"handle" json:"handle"`
	PasswordHash string `db:"password_hash" json:"password_hash"`
	Email        string `db:"email" json:"email"`
	Salt         string `db:"salt" json:"salt"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
	ProfilePic   string `db:"profile_pic" json:"profile_pic"`
}

// Redacted returns a copy safe for serialization: credential material and the
// email address are masked, everything else is kept.
func (u User) Redacted() User {
	u.PasswordHash = FieldMask
	u.Salt = FieldMask
	u.Email = FieldMask
	return u
}
