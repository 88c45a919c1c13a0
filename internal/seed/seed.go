package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/workforce-hub/hrms/backend/internal/domain"
	"github.com/workforce-hub/hrms/backend/internal/repository"
	"github.com/workforce-hub/hrms/backend/internal/utils"
)

var requiredHeaders = []string{"name", "email"}

var ErrMissingHeader = errors.New("missing csv header")

// ImportEmployees 从 CSV 导入员工到指定公司。表头不区分大小写，
// name 和 email 列必须存在；id、department、position、status、phone、avatarColor 可选。
// 单行失败（例如邮箱重复）只记录日志并跳过，返回成功导入的数量。
func ImportEmployees(r *repository.Repository, in io.Reader, companyID string) (int, error) {
	reader := csv.NewReader(in)
	reader.TrimLeadingSpace = true
	// 列数不一致的行按缺失列处理，由下面的校验决定是否跳过
	reader.FieldsPerRecord = -1

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	for i, header := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(header))
	}
	for _, key := range requiredHeaders {
		if !slices.Contains(headers, key) {
			return 0, fmt.Errorf("%w: %s", ErrMissingHeader, key)
		}
	}

	cnt := 0
	line := 1
	for {
		row, err := reader.Read()
		line++
		if err != nil {
			if err == io.EOF {
				break
			}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				slog.Error("无法解析 CSV 行", "line", line, "error", err)
				continue
			}
			return cnt, fmt.Errorf("read line %d: %w", line, err)
		}

		record := make(map[string]string, len(headers))
		for i, value := range row {
			if i < len(headers) {
				record[headers[i]] = strings.TrimSpace(value)
			}
		}

		if record["name"] == "" || record["email"] == "" {
			slog.Error("缺少姓名或邮箱", "line", line)
			continue
		}

		employee := &domain.Employee{
			ID:          record["id"],
			CompanyID:   companyID,
			Name:        record["name"],
			Email:       record["email"],
			Department:  record["department"],
			Position:    record["position"],
			Status:      domain.EmployeeStatus(record["status"]),
			Avatar:      utils.AvatarFromName(record["name"]),
			AvatarColor: record["avatarcolor"],
			Phone:       record["phone"],
		}
		if !employee.Status.Valid() {
			slog.Error("员工状态非法", "line", line, "status", employee.Status)
			continue
		}

		if _, err := r.CreateEmployee(employee); err != nil {
			slog.Error("插入员工失败", "line", line, "email", employee.Email, "error", err)
			continue
		}
		cnt++
	}

	return cnt, nil
}
