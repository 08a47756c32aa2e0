package otpauth

import (
	"net/url"
	"strconv"
	"strings"

	"msauthexport/internal/domain/account"
)

const (
	Digits = 6
	Period = 30
)

// Entry - готовая запись для экспорта
type Entry struct {
	Issuer    string
	Account   string
	Label     string
	Secret    string
	Algorithm account.Algorithm
	URI       string
}

// Escape кодирует компонент URI: кроме A-Z a-z 0-9 - _ . ~ все
// экранируется через %XX, пробел становится %20.
func Escape(s string) string {
	// QueryEscape уже экранирует все зарезервированные символы, включая '+'
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Build строит otpauth:// URI для аккаунта. Ошибка, обернутая в
// account.ErrInvalidSecret, означает что запись нужно пропустить.
func Build(acc account.Account) (Entry, error) {
	secret, err := NormalizeSecret(acc)
	if err != nil {
		return Entry{}, err
	}

	issuer := acc.Issuer()
	name := acc.AccountName()
	issuerEncoded := Escape(issuer)

	label := issuerEncoded
	if name != "" {
		label = issuerEncoded + ":" + Escape(name)
	}

	alg := acc.Type.Algorithm()

	var b strings.Builder
	b.WriteString("otpauth://totp/")
	b.WriteString(label)
	b.WriteString("?secret=")
	b.WriteString(secret)
	b.WriteString("&digits=")
	b.WriteString(strconv.Itoa(Digits))
	b.WriteString("&period=")
	b.WriteString(strconv.Itoa(Period))
	b.WriteString("&algorithm=")
	b.WriteString(string(alg))
	b.WriteString("&issuer=")
	b.WriteString(issuerEncoded)

	return Entry{
		Issuer:    issuer,
		Account:   name,
		Label:     label,
		Secret:    secret,
		Algorithm: alg,
		URI:       b.String(),
	}, nil
}
