package utils

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

const loginIDSerialDigits = 4

// LoginIDPrefix 生成登录 ID 的前缀：
// [公司名每个词的前两个字母，最多 4 位][名的前两个字母][姓的前两个字母][年份]
// 例如 "Odoo India", "John Doe", 2024 -> "ODINJODO2024"
func LoginIDPrefix(companyName, fullName string, year int) string {
	company := ""
	for _, word := range tokenize(companyName) {
		company += firstRunes(word, 2)
	}
	company = firstRunes(strings.ToUpper(company), 4)

	parts := tokenize(fullName)
	first, last := "", ""
	if len(parts) > 0 {
		first = parts[0]
		last = parts[len(parts)-1]
	}
	name := strings.ToUpper(firstRunes(first, 2) + firstRunes(last, 2))

	return fmt.Sprintf("%s%s%d", company, name, year)
}

// NextLoginID 在已有的登录 ID 中找到 prefix 下最大的流水号并加一
func NextLoginID(prefix string, existing []string) string {
	highest := 0
	for _, id := range existing {
		serial, ok := strings.CutPrefix(id, prefix)
		if !ok || len(serial) < loginIDSerialDigits {
			continue
		}
		n, err := strconv.Atoi(serial)
		if err != nil {
			continue
		}
		highest = max(highest, n)
	}

	return fmt.Sprintf("%s%0*d", prefix, loginIDSerialDigits, highest+1)
}

// tokenize 按空白切词，并把汉字转换成拼音，每个汉字算作一个词
func tokenize(s string) []string {
	tokens := []string{}
	for _, field := range strings.Fields(s) {
		if !containsHan(field) {
			if cleaned := keepAlnum(field); cleaned != "" {
				tokens = append(tokens, cleaned)
			}
			continue
		}

		buf := []rune{}
		for _, r := range field {
			if unicode.Is(unicode.Han, r) {
				if cleaned := keepAlnum(string(buf)); cleaned != "" {
					tokens = append(tokens, cleaned)
				}
				buf = buf[:0]
				tokens = append(tokens, pinyin.LazyConvert(string(r), nil)...)
				continue
			}
			buf = append(buf, r)
		}
		if cleaned := keepAlnum(string(buf)); cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}
	return tokens
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

func keepAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, s)
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
