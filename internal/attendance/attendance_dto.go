package attendance

import "time"

type CheckInRequest struct {
	Notes *string `json:"notes"`
}

type CheckOutRequest struct {
	Notes *string `json:"notes"`
}

// Filter narrows attendance reads. A zero field means "no constraint";
// services force UserID for non-elevated callers before it reaches the
// repository.
type Filter struct {
	UserID string
	Status string
	From   *time.Time
	To     *time.Time
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	WorkHours    string  `json:"work_hours"`
	ExtraHours   string  `json:"extra_hours"`
}
