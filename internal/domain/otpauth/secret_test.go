package otpauth

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msauthexport/internal/domain/account"
)

var base32Alphabet = regexp.MustCompile(`^[A-Z2-7]*$`)

func TestCleanSecret(t *testing.T) {
	assert.Equal(t, "abcdef", CleanSecret(" ab\tcd\r\nef "))
	assert.Equal(t, "", CleanSecret(" \t\r\n"))
	assert.Equal(t, "JBSWY3DP", CleanSecret("JBSW Y3DP"))
}

func TestBase64ToBase32(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"known secret", "SGVsbG8h3q2+7w==", "JBSWY3DPEHPK3PXP"},
		{"partial group", "AQIDBAUGBwgJCg==", "AEBAGBAFAYDQQCIK"},
		{"single byte", "Zg==", "MY"},
		{"empty", "", ""},
		{"foreign characters dropped", "SGVs-bG8h_3q2+7w==", "JBSWY3DPEHPK3PXP"},
		{"only foreign characters", "@@@@", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Base64ToBase32(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBase64ToBase32_Invalid(t *testing.T) {
	for _, input := range []string{"notbase64!", "Zg", "SGVsbG8h3q2+7w="} {
		_, err := Base64ToBase32(input)
		require.Error(t, err, input)
		assert.ErrorIs(t, err, account.ErrInvalidSecret)
	}
}

func TestBase64ToBase32_Properties(t *testing.T) {
	for n := 0; n <= 64; n++ {
		raw := make([]byte, n)
		_, err := rand.Read(raw)
		require.NoError(t, err)

		encoded := base64.StdEncoding.EncodeToString(raw)
		first, err := Base64ToBase32(encoded)
		require.NoError(t, err)
		second, err := Base64ToBase32(encoded)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Regexp(t, base32Alphabet, first)
		assert.Len(t, first, (8*n+4)/5)
	}
}

func TestNormalizeSecret(t *testing.T) {
	tests := []struct {
		name    string
		acc     account.Account
		want    string
		wantErr error
	}{
		{
			name: "microsoft base64 with whitespace",
			acc:  account.Account{SecretKey: "SGVs bG8h\n3q2+7w==", Type: account.TypeMicrosoft},
			want: "JBSWY3DPEHPK3PXP",
		},
		{
			name: "standard lower case",
			acc:  account.Account{SecretKey: "jbsw y3dp ehpk 3pxp", Type: account.TypeStandard},
			want: "JBSWY3DPEHPK3PXP",
		},
		{
			name: "enterprise padding kept verbatim",
			acc:  account.Account{SecretKey: "MY======", Type: account.TypeEnterprise},
			want: "MY======",
		},
		{
			name: "unknown type treated as standard",
			acc:  account.Account{SecretKey: "jbswy3dp", Type: account.Type(7)},
			want: "JBSWY3DP",
		},
		{
			name: "standard outside alphabet kept verbatim",
			acc:  account.Account{SecretKey: "jbswy3dp8", Type: account.TypeStandard},
			want: "JBSWY3DP8",
		},
		{
			name: "standard whitespace only",
			acc:  account.Account{SecretKey: "   ", Type: account.TypeStandard},
			want: "",
		},
		{
			name: "microsoft whitespace only",
			acc:  account.Account{SecretKey: " ", Type: account.TypeMicrosoft},
			want: "",
		},
		{
			name: "microsoft foreign characters",
			acc:  account.Account{SecretKey: "SGVs-bG8h_3q2+7w==", Type: account.TypeMicrosoft},
			want: "JBSWY3DPEHPK3PXP",
		},
		{
			name:    "microsoft bad padding",
			acc:     account.Account{SecretKey: "SGVsbG8h3q2+7w=", Type: account.TypeMicrosoft},
			wantErr: account.ErrInvalidSecret,
		},
		{
			name:    "microsoft truncated",
			acc:     account.Account{SecretKey: "Zg", Type: account.TypeMicrosoft},
			wantErr: account.ErrInvalidSecret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeSecret(tt.acc)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccountDefaults(t *testing.T) {
	acc := account.Account{Name: sql.NullString{}, Username: sql.NullString{}}
	assert.Equal(t, "Unknown", acc.Issuer())
	assert.Equal(t, "", acc.AccountName())

	acc.Name = sql.NullString{String: "", Valid: true}
	assert.Equal(t, "Unknown", acc.Issuer())
}
