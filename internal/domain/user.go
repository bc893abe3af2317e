package domain

import "time"

type Gender string

const (
	GenderWoman     Gender = "woman"
	GenderMan       Gender = "man"
	GenderNonBinary Gender = "nonbinary"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	DisplayName  string    `db:"display_name" json:"display_name"`
	Birthdate    time.Time `db:"birthdate" json:"birthdate"`
	Gender       Gender    `db:"gender" json:"gender"`
	Bio          string    `db:"bio" json:"bio"`
	Interests    []string  `db:"interests" json:"interests"`
	PhotoURLs    []string  `db:"photo_urls" json:"photo_urls"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Age in full years as of now.
func (u *User) Age() int {
	now := time.Now()
	years := now.Year() - u.Birthdate.Year()
	if now.YearDay() < u.Birthdate.YearDay() {
		years--
	}
	return years
}
