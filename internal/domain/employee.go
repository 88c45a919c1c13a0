package domain

import "encoding/json"

type EmployeeStatus string

const (
	StatusPresent EmployeeStatus = "present"
	StatusAbsent  EmployeeStatus = "absent"
	StatusOnLeave EmployeeStatus = "on-leave"
	StatusUnknown EmployeeStatus = "unknown"
)

// Valid 空状态视为合法，创建时会被设置为 unknown
func (s EmployeeStatus) Valid() bool {
	switch s {
	case "", StatusPresent, StatusAbsent, StatusOnLeave, StatusUnknown:
		return true
	}
	return false
}

type Employee struct {
	ID           string         `json:"id"`
	CompanyID    string         `json:"companyId"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Department   string         `json:"department"`
	Position     string         `json:"position"`
	Status       EmployeeStatus `json:"status"`
	CheckInTime  string         `json:"checkInTime,omitempty"`
	CheckOutTime string         `json:"checkOutTime,omitempty"`
	Avatar       string         `json:"avatar,omitempty"`
	AvatarColor  string         `json:"avatarColor,omitempty"`
	Phone        string         `json:"phone,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type EmployeePatch struct {
	CompanyID    *string
	Name         *string
	Email        *string
	Department   *string
	Position     *string
	Status       *EmployeeStatus
	CheckInTime  *string
	CheckOutTime *string
	Avatar       *string
	AvatarColor  *string
	Phone        *string
}

func (p EmployeePatch) Apply(e *Employee) {
	if p.CompanyID != nil {
		e.CompanyID = *p.CompanyID
	}
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.CheckInTime != nil {
		e.CheckInTime = *p.CheckInTime
	}
	if p.CheckOutTime != nil {
		e.CheckOutTime = *p.CheckOutTime
	}
	if p.Avatar != nil {
		e.Avatar = *p.Avatar
	}
	if p.AvatarColor != nil {
		e.AvatarColor = *p.AvatarColor
	}
	if p.Phone != nil {
		e.Phone = *p.Phone
	}
}
