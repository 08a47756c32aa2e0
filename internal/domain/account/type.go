package account

import "fmt"

// Type - дискриминатор account_type из базы Microsoft Authenticator
type Type int

const (
	TypeStandard   Type = 0
	TypeMicrosoft  Type = 1
	TypeEnterprise Type = 2
)

type Algorithm string

const (
	AlgorithmSHA1   Algorithm = "SHA1"
	AlgorithmSHA256 Algorithm = "SHA256"
)

// Algorithm возвращает алгоритм хеширования для типа аккаунта.
func (t Type) Algorithm() Algorithm {
	if t == TypeEnterprise {
		return AlgorithmSHA256
	}
	return AlgorithmSHA1
}

// Base64Secret сообщает, хранится ли секрет в base64 (личные аккаунты Microsoft).
func (t Type) Base64Secret() bool {
	return t == TypeMicrosoft
}

// Label возвращает метку типа для консольного отчета.
func (t Type) Label() string {
	switch t {
	case TypeMicrosoft:
		return "(account_type=1, Microsoft)"
	case TypeEnterprise:
		return "(account_type=2, SHA256)"
	default:
		return fmt.Sprintf("(account_type=%d)", int(t))
	}
}

// String возвращает строковое представление типа.
func (t Type) String() string {
	switch t {
	case TypeStandard:
		return "standard"
	case TypeMicrosoft:
		return "microsoft"
	case TypeEnterprise:
		return "enterprise"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}
