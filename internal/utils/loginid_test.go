package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginIDPrefix(t *testing.T) {
	tests := []struct {
		company string
		name    string
		year    int
		want    string
	}{
		{"Odoo India", "John Doe", 2022, "ODINJODO2022"},
		{"Acme", "Alice", 2024, "ACALAL2024"},
		{"Big Red Dog Co", "Mary Jane Watson", 2024, "BIREMAWA2024"},
		{"A&B Ltd.", "li wei", 2025, "ABLTLIWE2025"},
		{"阿里巴巴", "王伟", 2024, "ALIBWAWE2024"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, LoginIDPrefix(tt.company, tt.name, tt.year))
		})
	}
}

func TestNextLoginID(t *testing.T) {
	existing := []string{"ODINJODO20220001", "ODINJODO20220007", "OTHER20220009", "ODINJODO2022ABCD"}

	assert.Equal(t, "ODINJODO20220008", NextLoginID("ODINJODO2022", existing))
	assert.Equal(t, "NEWID20240001", NextLoginID("NEWID2024", existing))
	assert.Equal(t, "NEWID20240001", NextLoginID("NEWID2024", nil))
}

func TestAvatarFromName(t *testing.T) {
	assert.Equal(t, "J", AvatarFromName("john doe"))
	assert.Equal(t, "王", AvatarFromName(" 王伟"))
	assert.Equal(t, "", AvatarFromName("  "))
}
