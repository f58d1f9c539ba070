package user

import "time"

type UserDB struct {
	ID          string
	Name        string
	Email       string
	Role        string
	Active      bool
	DeviceToken *string
	CreatedAt   time.Time
}
