package verifier

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"msauthexport/internal/domain/otpauth"
)

var (
	ErrNotTOTP          = errors.New("not a totp key")
	ErrUnexpectedParams = errors.New("unexpected otp parameters")
)

// Line - результат проверки одной строки файла экспорта
type Line struct {
	Number    int
	Issuer    string
	Account   string
	Algorithm string
	Code      string
	Err       error
}

type Report struct {
	Lines []Line
	Valid int
}

func (r Report) Invalid() int {
	return len(r.Lines) - r.Valid
}

// VerifyFile разбирает каждую непустую строку файла как otpauth:// URI
// и генерирует текущий код для момента now.
func VerifyFile(path string, now time.Time) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	var rep Report
	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		line := VerifyURI(text, now)
		line.Number = n
		if line.Err == nil {
			rep.Valid++
		}
		rep.Lines = append(rep.Lines, line)
	}
	if err := sc.Err(); err != nil {
		return rep, fmt.Errorf("read export file: %w", err)
	}
	return rep, nil
}

// VerifyURI проверяет один URI.
func VerifyURI(uri string, now time.Time) Line {
	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return Line{Err: fmt.Errorf("parse uri: %w", err)}
	}

	line := Line{
		Issuer:    key.Issuer(),
		Account:   key.AccountName(),
		Algorithm: key.Algorithm().String(),
	}

	if key.Type() != "totp" {
		line.Err = fmt.Errorf("%w: %s", ErrNotTOTP, key.Type())
		return line
	}
	if key.Digits() != otp.DigitsSix || key.Period() != otpauth.Period {
		line.Err = fmt.Errorf("%w: digits=%d period=%d", ErrUnexpectedParams, key.Digits(), key.Period())
		return line
	}

	code, err := totp.GenerateCodeCustom(key.Secret(), now, totp.ValidateOpts{
		Period:    uint(key.Period()),
		Digits:    key.Digits(),
		Algorithm: key.Algorithm(),
	})
	if err != nil {
		line.Err = fmt.Errorf("generate code: %w", err)
		return line
	}
	line.Code = code
	return line
}
