package rawjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"slices"
	"strings"
)

var ErrNotObject = errors.New("rawjson: not a json object")

// Keys 返回结构体类型中会被 encoding/json 使用的字段名
func Keys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		keys[name] = struct{}{}
	}
	return keys
}

// Extra 取出对象 data 中不在 known 里的字段，没有时返回 nil
func Extra(data []byte, known map[string]struct{}) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	var extra map[string]json.RawMessage
	for k, v := range fields {
		if _, ok := known[k]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[k] = v
	}
	return extra, nil
}

// Merge 把 extra 按键名排序后追加到对象 data 的末尾，known 中的键以 data 为准
func Merge(data []byte, known map[string]struct{}, extra map[string]json.RawMessage) ([]byte, error) {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if _, ok := known[k]; !ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return data, nil
	}
	slices.Sort(keys)

	data = bytes.TrimSpace(data)
	if len(data) < 2 || data[0] != '{' || data[len(data)-1] != '}' {
		return nil, ErrNotObject
	}

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	empty := len(bytes.TrimSpace(data[1:len(data)-1])) == 0
	for _, k := range keys {
		if !empty {
			buf.WriteByte(',')
		}
		empty = false

		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
