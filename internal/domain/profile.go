package domain

import "time"

type Profile struct {
	ID        string
	FullName  string
	Phone     string
	UpdatedAt time.Time
}

type UpdateProfileInput struct {
	FullName *string
	Phone    *string
}
