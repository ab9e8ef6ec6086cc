package user

type UpdateUserRequest struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	JobTitle   *string `json:"job_title"`
	Department *string `json:"department"`
	ManagerID  *string `json:"manager_id"`
	Role       string  `json:"role"`
}

type UserResponse struct {
	ID                string  `json:"id"`
	EmployeeID        *string `json:"employee_id,omitempty"`
	Email             string  `json:"email"`
	Role              string  `json:"role"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Phone             *string `json:"phone,omitempty"`
	Address           *string `json:"address,omitempty"`
	JobTitle          *string `json:"job_title,omitempty"`
	Department        *string `json:"department,omitempty"`
	ManagerID         *string `json:"manager_id,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
	IsActive          bool    `json:"is_active"`
	CreatedAt         string  `json:"created_at"`
}
