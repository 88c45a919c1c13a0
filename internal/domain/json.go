package domain

import (
	"encoding/json"
	"reflect"

	"github.com/workforce-hub/hrms/backend/internal/rawjson"
)

// 去掉方法集，避免 MarshalJSON 递归
type (
	userFields     User
	employeeFields Employee
)

var (
	userKeys     = rawjson.Keys(reflect.TypeOf(User{}))
	employeeKeys = rawjson.Keys(reflect.TypeOf(Employee{}))
)

func (u User) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(userFields(u))
	if err != nil {
		return nil, err
	}
	return rawjson.Merge(data, userKeys, u.Extra)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var f userFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := rawjson.Extra(data, userKeys)
	if err != nil {
		return err
	}

	*u = User(f)
	u.Extra = extra
	return nil
}

func (e Employee) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(employeeFields(e))
	if err != nil {
		return nil, err
	}
	return rawjson.Merge(data, employeeKeys, e.Extra)
}

func (e *Employee) UnmarshalJSON(data []byte) error {
	var f employeeFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := rawjson.Extra(data, employeeKeys)
	if err != nil {
		return err
	}

	*e = Employee(f)
	e.Extra = extra
	return nil
}
