package repository

import (
	"slices"

	"github.com/google/uuid"
	"github.com/workforce-hub/hrms/backend/internal/domain"
	"github.com/workforce-hub/hrms/backend/internal/store"
)

// ListEmployees 返回 companyID 下的员工，companyID 为空时返回全部
func (r *Repository) ListEmployees(companyID string) ([]*domain.Employee, error) {
	employees := make([]*domain.Employee, 0)

	err := r.store.View(func(doc *store.Document) error {
		for i := range doc.Employees {
			if companyID != "" && doc.Employees[i].CompanyID != companyID {
				continue
			}
			e := doc.Employees[i]
			employees = append(employees, &e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) GetEmployee(id string) (*domain.Employee, error) {
	var employee *domain.Employee

	err := r.store.View(func(doc *store.Document) error {
		idx := indexEmployee(doc, id)
		if idx == -1 {
			return domain.ErrEmployeeNotFound
		}
		e := doc.Employees[idx]
		employee = &e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return employee, nil
}

// CreateEmployee 新增员工。邮箱在整个集合内唯一，不区分公司。
func (r *Repository) CreateEmployee(employee *domain.Employee) (*domain.Employee, error) {
	record := *employee
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Status == "" {
		record.Status = domain.StatusUnknown
	}

	err := r.store.Update(func(doc *store.Document) error {
		if slices.ContainsFunc(doc.Employees, func(e domain.Employee) bool {
			return e.Email == record.Email
		}) {
			return domain.ErrDuplicateEmployee
		}
		if indexEmployee(doc, record.ID) != -1 {
			return domain.ErrDuplicateEmployee
		}

		doc.Employees = append(doc.Employees, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// CheckIn 记录签到时间，并且无条件把状态置为 present（包括请假中的员工）
func (r *Repository) CheckIn(id, checkInTime string) (*domain.Employee, error) {
	status := domain.StatusPresent
	return r.UpdateEmployee(id, domain.EmployeePatch{
		CheckInTime: &checkInTime,
		Status:      &status,
	})
}

// CheckOut 只记录签退时间，状态和签到时间保持不变
func (r *Repository) CheckOut(id, checkOutTime string) (*domain.Employee, error) {
	return r.UpdateEmployee(id, domain.EmployeePatch{
		CheckOutTime: &checkOutTime,
	})
}

func (r *Repository) UpdateEmployee(id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	var employee *domain.Employee

	err := r.store.Update(func(doc *store.Document) error {
		idx := indexEmployee(doc, id)
		if idx == -1 {
			return domain.ErrEmployeeNotFound
		}

		patch.Apply(&doc.Employees[idx])
		e := doc.Employees[idx]
		employee = &e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return employee, nil
}

func indexEmployee(doc *store.Document, id string) int {
	return slices.IndexFunc(doc.Employees, func(e domain.Employee) bool {
		return e.ID == id
	})
}
