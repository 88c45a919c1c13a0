package domain

import "encoding/json"

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEmployee Role = "Employee"
)

// User 是保存在文档中的账户。Password 为 bcrypt 哈希，旧数据可能仍是明文
type User struct {
	LoginID     string `json:"loginId"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Password    string `json:"password,omitempty"`
	CompanyName string `json:"companyName"`
	Role        Role   `json:"role"`
	Avatar      string `json:"avatar"`
	Phone       string `json:"phone,omitempty"`
	Logo        string `json:"logo,omitempty"`
	CreatedAt   string `json:"createdAt"`

	// 文档中本服务不认识的字段，写回时原样保留
	Extra map[string]json.RawMessage `json:"-"`
}

// Redacted 返回不含密码的副本
func (u User) Redacted() *User {
	u.Password = ""
	return &u
}

// UserPatch 是部分更新，nil 字段保持不变
type UserPatch struct {
	Email       *string
	Name        *string
	Password    *string
	CompanyName *string
	Role        *Role
	Avatar      *string
	Phone       *string
	Logo        *string
}

func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.CompanyName != nil {
		u.CompanyName = *p.CompanyName
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Logo != nil {
		u.Logo = *p.Logo
	}
}
