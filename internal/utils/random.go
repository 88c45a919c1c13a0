package utils

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand"
	"strings"

	"github.com/mozillazg/go-pinyin"
	"github.com/workforce-hub/hrms/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateEmailLocalPart 用姓名拼音加随机数字生成邮箱用户名
func GenerateEmailLocalPart(chineseName string) string {
	local := strings.Join(pinyin.LazyConvert(chineseName, nil), ".")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}

	return local
}

var departments = []string{"Engineering", "Sales", "Marketing", "Finance", "Human Resources", "Operations"}
var positions = []string{"Intern", "Associate", "Specialist", "Senior Specialist", "Team Lead", "Manager"}
var avatarColors = []string{"#4F46E5", "#0EA5E9", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6"}
var statuses = []domain.EmployeeStatus{
	domain.StatusPresent,
	domain.StatusAbsent,
	domain.StatusOnLeave,
	domain.StatusUnknown,
}

func GenerateRandomStatus() domain.EmployeeStatus {
	return statuses[rand.Intn(len(statuses))]
}

func GenerateRandomEmployee(companyID string, emailDomainName string) *domain.Employee {
	name := GenerateRandomChineseName()

	employee := &domain.Employee{
		CompanyID:   companyID,
		Name:        name,
		Email:       GenerateEmailLocalPart(name) + "@" + emailDomainName,
		Department:  departments[rand.Intn(len(departments))],
		Position:    positions[rand.Intn(len(positions))],
		Status:      GenerateRandomStatus(),
		Avatar:      AvatarFromName(name),
		AvatarColor: avatarColors[rand.Intn(len(avatarColors))],
		Phone:       GenerateRandomPhone(),
	}

	if employee.Status == domain.StatusPresent {
		employee.CheckInTime = fmt.Sprintf("%02d:%02d", rand.Intn(3)+8, rand.Intn(60))
	}

	return employee
}

func GenerateRandomUser(password string, companyName string, emailDomainName string) *domain.User {
	name := GenerateRandomChineseName()

	return &domain.User{
		Email:       GenerateEmailLocalPart(name) + "@" + emailDomainName,
		Name:        name,
		Password:    password,
		CompanyName: companyName,
		Role:        domain.RoleAdmin,
		Avatar:      AvatarFromName(name),
		Phone:       GenerateRandomPhone(),
	}
}

func GenerateRandomPhone() string {
	phone := "1"
	for i := 0; i < 10; i++ {
		phone += string(digits[rand.Intn(len(digits))])
	}
	return phone
}

// GenerateRandomOTP 生成 6 位数字验证码，使用 crypto/rand
func GenerateRandomOTP() (string, error) {
	n, err := crand.Int(crand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// AvatarFromName 取姓名的第一个字符并转为大写
func AvatarFromName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.ToUpper(firstRunes(name, 1))
}
