package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/dhruv2311-dot/odoo-gcet/internal/attendance"
	"github.com/dhruv2311-dot/odoo-gcet/internal/domain"
	"github.com/dhruv2311-dot/odoo-gcet/internal/leave"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var attendanceHeaders = []string{
	"Employee ID", "Employee Name", "Date", "Check In", "Check Out",
	"Status", "Notes", "Work Hours",
}

var leaveHeaders = []string{
	"Employee ID", "Employee Name", "Leave Type", "Start Date", "End Date",
	"Days Count", "Reason", "Status", "Approver Comments", "Created At",
}

// File is a rendered export ready to stream to the client.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

//go:generate mockgen -source=export_service.go -destination=mock/export_service_mock.go -package=mock
type Service interface {
	ExportAttendance(ctx context.Context, identity domain.Identity, f attendance.Filter, format string) (File, error)
	ExportLeaves(ctx context.Context, identity domain.Identity, f LeaveFilter, format string) (File, error)
}

// LeaveFilter narrows the leave export. Empty fields match everything.
type LeaveFilter struct {
	UserID    string
	Status    string
	LeaveType string
	From      *time.Time
	To        *time.Time
}

type service struct {
	attendances attendance.Service
	leaves      leave.Service
	logger      *zap.Logger
}

func NewService(attendances attendance.Service, leaves leave.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("export.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("export.service")
	}
	return &service{attendances: attendances, leaves: leaves, logger: l}
}

func (s *service) ExportAttendance(
	ctx context.Context,
	identity domain.Identity,
	f attendance.Filter,
	format string,
) (File, error) {
	rows, err := s.attendances.List(ctx, identity, f)
	if err != nil {
		return File{}, err
	}

	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		employeeID := "N/A"
		if r.EmployeeID != nil && *r.EmployeeID != "" {
			employeeID = *r.EmployeeID
		}
		checkIn := ""
		if r.CheckIn != nil {
			checkIn = *r.CheckIn
		}
		checkOut := ""
		if r.CheckOut != nil {
			checkOut = *r.CheckOut
		}
		notes := ""
		if r.Notes != nil {
			notes = *r.Notes
		}
		records = append(records, []string{
			employeeID, r.EmployeeName, r.Date, checkIn, checkOut,
			r.Status, notes, r.WorkHours,
		})
	}

	s.logger.Info("attendance export rendered",
		zap.String("user_id", identity.UserID),
		zap.String("format", format),
		zap.Int("rows", len(records)),
	)
	return renderFile("attendance_export", "Attendance", attendanceHeaders, records, format)
}

func (s *service) ExportLeaves(
	ctx context.Context,
	identity domain.Identity,
	f LeaveFilter,
	format string,
) (File, error) {
	rows, err := s.leaves.List(ctx, identity)
	if err != nil {
		return File{}, err
	}

	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		if !matchesLeaveFilter(r, identity, f) {
			continue
		}
		reason := ""
		if r.Reason != nil {
			reason = *r.Reason
		}
		comments := ""
		if r.ApproverComments != nil {
			comments = *r.ApproverComments
		}
		createdAt := r.CreatedAt
		if t, parseErr := time.Parse(time.RFC3339, r.CreatedAt); parseErr == nil {
			createdAt = t.Format("2006-01-02")
		}
		employeeID := "N/A"
		if r.EmployeeID != nil && *r.EmployeeID != "" {
			employeeID = *r.EmployeeID
		}
		records = append(records, []string{
			employeeID, r.Name, r.LeaveType, r.StartDate, r.EndDate,
			fmt.Sprintf("%g", r.DaysCount), reason, r.Status, comments, createdAt,
		})
	}

	s.logger.Info("leave export rendered",
		zap.String("user_id", identity.UserID),
		zap.String("format", format),
		zap.Int("rows", len(records)),
	)
	return renderFile("leave_export", "Leaves", leaveHeaders, records, format)
}

func matchesLeaveFilter(r leave.LeaveResponse, identity domain.Identity, f LeaveFilter) bool {
	if f.UserID != "" && identity.IsElevated() && r.UserID != f.UserID {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.LeaveType != "" && r.LeaveType != f.LeaveType {
		return false
	}
	if f.From != nil && r.StartDate < f.From.Format("2006-01-02") {
		return false
	}
	if f.To != nil && r.StartDate > f.To.Format("2006-01-02") {
		return false
	}
	return true
}

func renderFile(prefix, sheet string, headers []string, records [][]string, format string) (File, error) {
	stamp := time.Now().UTC().Format("2006-01-02")
	switch format {
	case FormatXLSX:
		data, err := renderXLSX(sheet, headers, records)
		if err != nil {
			return File{}, err
		}
		return File{
			Name:        fmt.Sprintf("%s_%s.xlsx", prefix, stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		data, err := renderCSV(headers, records)
		if err != nil {
			return File{}, err
		}
		return File{
			Name:        fmt.Sprintf("%s_%s.csv", prefix, stamp),
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}, nil
	}
}

func renderCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(sheet string, headers []string, records [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	for row, record := range records {
		for col, value := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
