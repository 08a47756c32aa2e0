package otpauth

import (
	"encoding/base32"
	"encoding/base64"
	"fmt"
	"strings"

	"msauthexport/internal/domain/account"
)

// base32NoPad - RFC 4648 без символов '='. Последняя неполная группа
// дополняется нулевыми битами справа.
var base32NoPad = base32.StdEncoding.WithPadding(base32.NoPadding)

var whitespace = strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "")

// CleanSecret удаляет пробелы, табуляции и переводы строк.
func CleanSecret(raw string) string {
	return whitespace.Replace(raw)
}

// Base64ToBase32 декодирует стандартный base64 и кодирует байты в base32 без паддинга.
// Символы вне алфавита base64 отбрасываются до декодирования, паддинг
// при этом должен быть корректным.
func Base64ToBase32(s string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(strings.Map(keepBase64, s))
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode: %v", account.ErrInvalidSecret, err)
	}
	return base32NoPad.EncodeToString(decoded), nil
}

// NormalizeSecret приводит секрет аккаунта к base32 в зависимости от типа.
// Ошибку возвращает только декодирование base64 для account_type=1.
func NormalizeSecret(acc account.Account) (string, error) {
	cleaned := CleanSecret(acc.SecretKey)
	if acc.Type.Base64Secret() {
		return Base64ToBase32(cleaned)
	}
	// Остальные типы уже хранятся в base32
	return strings.ToUpper(cleaned), nil
}

func keepBase64(r rune) rune {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9',
		r == '+', r == '/', r == '=':
		return r
	}
	return -1
}
