package account

import "database/sql"

// Account - запись аккаунта из таблицы accounts базы PhoneFactor
type Account struct {
	Name      sql.NullString
	Username  sql.NullString
	SecretKey string
	Type      Type
}

// Issuer возвращает имя издателя, "Unknown" если имя не задано.
func (a Account) Issuer() string {
	if a.Name.Valid && a.Name.String != "" {
		return a.Name.String
	}
	return UnknownIssuer
}

// AccountName возвращает имя пользователя или пустую строку.
func (a Account) AccountName() string {
	if a.Username.Valid {
		return a.Username.String
	}
	return ""
}

const UnknownIssuer = "Unknown"
