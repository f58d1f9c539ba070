package user

import "waste-service/internal/entities"

func ToDomain(u *UserDB) *entities.User {
	if u == nil {
		return nil
	}
	return &entities.User{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        entities.Role(u.Role),
		Active:      u.Active,
		DeviceToken: u.DeviceToken,
		CreatedAt:   u.CreatedAt,
	}
}
