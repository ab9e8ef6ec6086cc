package leave

import "github.com/dhruv2311-dot/odoo-gcet/internal/notification"

type SubmitLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=paid sick unpaid"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type ResolveLeaveRequest struct {
	ApproverComments string `json:"approver_comments"`
}

type LeaveResponse struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	Name             string  `json:"name,omitempty"`
	EmployeeID       *string `json:"employeeId,omitempty"`
	LeaveType        string  `json:"leaveType"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	DaysCount        float64 `json:"daysCount"`
	Reason           *string `json:"reason,omitempty"`
	Status           string  `json:"status"`
	ApproverID       *string `json:"approver_id,omitempty"`
	ApproverComments *string `json:"approverComments,omitempty"`
	CreatedAt        string  `json:"createdAt"`
}

type EmployeeInfo struct {
	Name       string  `json:"name"`
	EmployeeID *string `json:"employeeId,omitempty"`
	Email      string  `json:"email"`
}

// ResolveLeaveResult mirrors the approval endpoints' response: the
// updated leave, requester display info, what happened to attendance,
// and a transient toast for the requester's next page load.
type ResolveLeaveResult struct {
	Message                  string             `json:"message"`
	Leave                    LeaveResponse      `json:"leave"`
	Employee                 EmployeeInfo       `json:"employee"`
	AttendanceUpdated        bool               `json:"attendanceUpdated,omitempty"`
	AttendanceRecordsUpdated int64              `json:"attendanceRecordsUpdated,omitempty"`
	AttendanceRecordsFound   int                `json:"attendanceRecordsFound,omitempty"`
	Toast                    notification.Toast `json:"toast"`
}
