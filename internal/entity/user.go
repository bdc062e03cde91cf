package entity

type User struct {
	Base
	Email        string `gorm:"unique"`
	Name         string
	PasswordHash string
}
