package repository

import (
	"errors"
	"slices"
	"strings"

	"github.com/workforce-hub/hrms/backend/internal/domain"
	"github.com/workforce-hub/hrms/backend/internal/store"
	"github.com/workforce-hub/hrms/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (r *Repository) ListUsers() ([]*domain.User, error) {
	users := make([]*domain.User, 0)

	err := r.store.View(func(doc *store.Document) error {
		for _, u := range doc.Users {
			users = append(users, u.Redacted())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// FindUser 按邮箱或登录 ID 查找用户，空的条件不参与匹配
func (r *Repository) FindUser(email, loginID string) (*domain.User, error) {
	if email == "" && loginID == "" {
		return nil, domain.ErrUserLookupCriteria
	}

	var user *domain.User
	err := r.store.View(func(doc *store.Document) error {
		idx := slices.IndexFunc(doc.Users, func(u domain.User) bool {
			return (email != "" && u.Email == email) || (loginID != "" && u.LoginID == loginID)
		})
		if idx == -1 {
			return domain.ErrUserNotFound
		}
		user = doc.Users[idx].Redacted()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByLoginID(loginID string) (*domain.User, error) {
	return r.FindUser("", loginID)
}

// Signup 保存新用户，密码以 bcrypt 哈希形式落盘
func (r *Repository) Signup(user *domain.User) (*domain.User, error) {
	return r.signup(user, "")
}

// SignupWithLoginIDPrefix 在同一次读写中为用户分配 prefix 下的下一个流水号
func (r *Repository) SignupWithLoginIDPrefix(user *domain.User, prefix string) (*domain.User, error) {
	return r.signup(user, prefix)
}

func (r *Repository) signup(user *domain.User, prefix string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), r.cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	record := *user
	record.Password = string(hash)

	err = r.store.Update(func(doc *store.Document) error {
		if prefix != "" {
			ids := make([]string, 0, len(doc.Users))
			for _, u := range doc.Users {
				ids = append(ids, u.LoginID)
			}
			record.LoginID = utils.NextLoginID(prefix, ids)
		}

		if slices.ContainsFunc(doc.Users, func(u domain.User) bool {
			return u.Email == record.Email || u.LoginID == record.LoginID
		}) {
			return domain.ErrDuplicateUser
		}

		doc.Users = append(doc.Users, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record.Redacted(), nil
}

// Login 校验凭据，任何不匹配都只返回 ErrInvalidCredentials。
// 旧数据中的明文密码在第一次登录成功后被替换为哈希。
func (r *Repository) Login(identifier, password string) (*domain.User, error) {
	if identifier == "" {
		return nil, domain.ErrInvalidCredentials
	}

	var user *domain.User
	err := r.store.Update(func(doc *store.Document) error {
		for i := range doc.Users {
			u := &doc.Users[i]
			if u.Email != identifier && u.LoginID != identifier {
				continue
			}

			upgraded, ok, err := r.checkPassword(u.Password, password)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			user = u.Redacted()
			if upgraded == "" {
				return errUnchanged
			}
			u.Password = upgraded
			return nil
		}

		return domain.ErrInvalidCredentials
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return nil, err
	}

	return user, nil
}

// errUnchanged 让 Update 跳过写回
var errUnchanged = errors.New("document unchanged")

// checkPassword 返回是否匹配；stored 为明文时同时返回新的哈希
func (r *Repository) checkPassword(stored, password string) (string, bool, error) {
	if isBcryptHash(stored) {
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
		switch {
		case err == nil:
			return "", true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return "", false, nil
		default:
			return "", false, err
		}
	}

	if stored == "" || stored != password {
		return "", false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cfg.Auth.BcryptCost)
	if err != nil {
		return "", false, err
	}
	return string(hash), true, nil
}

func isBcryptHash(s string) bool {
	if !strings.HasPrefix(s, "$2") {
		return false
	}
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

// UpdateUser 对 loginID 对应的用户做浅合并。patch 中的密码为明文，保存前会被哈希。
func (r *Repository) UpdateUser(loginID string, patch domain.UserPatch) (*domain.User, error) {
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), r.cfg.Auth.BcryptCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		patch.Password = &hashed
	}

	var user *domain.User
	err := r.store.Update(func(doc *store.Document) error {
		idx := slices.IndexFunc(doc.Users, func(u domain.User) bool {
			return u.LoginID == loginID
		})
		if idx == -1 {
			return domain.ErrUserNotFound
		}
		// 修改邮箱时仍需保证邮箱唯一
		if patch.Email != nil && slices.ContainsFunc(doc.Users, func(u domain.User) bool {
			return u.LoginID != loginID && u.Email == *patch.Email
		}) {
			return domain.ErrDuplicateUser
		}

		patch.Apply(&doc.Users[idx])
		user = doc.Users[idx].Redacted()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyPassword 用于修改密码前校验旧密码
func (r *Repository) VerifyPassword(loginID, password string) error {
	return r.store.View(func(doc *store.Document) error {
		idx := slices.IndexFunc(doc.Users, func(u domain.User) bool {
			return u.LoginID == loginID
		})
		if idx == -1 {
			return domain.ErrUserNotFound
		}

		_, ok, err := r.checkPassword(doc.Users[idx].Password, password)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidCredentials
		}
		return nil
	})
}

func (r *Repository) DeleteUser(loginID string) error {
	return r.store.Update(func(doc *store.Document) error {
		idx := slices.IndexFunc(doc.Users, func(u domain.User) bool {
			return u.LoginID == loginID
		})
		if idx == -1 {
			return domain.ErrUserNotFound
		}

		doc.Users = slices.Delete(doc.Users, idx, idx+1)
		return nil
	})
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false
	err := r.store.View(func(doc *store.Document) error {
		isExists = slices.ContainsFunc(doc.Users, func(u domain.User) bool {
			return u.Email == email
		})
		return nil
	})
	return isExists, err
}
