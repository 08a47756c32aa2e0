package exporter

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"msauthexport/internal/domain/account"
	"msauthexport/internal/domain/otpauth"
)

// Reporter получает события экспорта для вывода пользователю
type Reporter interface {
	Start(dbPath, outputPath string)
	NoAccounts()
	Found(n int)
	Exported(index int, acc account.Account, entry otpauth.Entry)
	Skipped(index int, acc account.Account, err error)
	Done(res Result)
}

const (
	columnWidth  = 26
	displayWidth = 24
	rule         = "============================================================"
)

// ConsoleReporter печатает человекочитаемый отчет о ходе экспорта
type ConsoleReporter struct {
	w     io.Writer
	ok    *color.Color
	warn  *color.Color
	title *color.Color
}

func NewConsoleReporter(w io.Writer, colored bool) *ConsoleReporter {
	r := &ConsoleReporter{
		w:     w,
		ok:    color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		title: color.New(color.Bold),
	}
	for _, c := range []*color.Color{r.ok, r.warn, r.title} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *ConsoleReporter) Start(dbPath, outputPath string) {
	fmt.Fprintln(r.w, rule)
	r.title.Fprintln(r.w, "Microsoft Authenticator export")
	fmt.Fprintln(r.w, rule)
	fmt.Fprintf(r.w, "Database:    %s\n", dbPath)
	fmt.Fprintf(r.w, "Output file: %s\n", outputPath)
	fmt.Fprintln(r.w, rule)
}

func (r *ConsoleReporter) NoAccounts() {
	fmt.Fprintln(r.w)
	r.warn.Fprintln(r.w, "No accounts found")
}

func (r *ConsoleReporter) Found(n int) {
	fmt.Fprintf(r.w, "\nFound %d valid accounts\n\n", n)
}

func (r *ConsoleReporter) Exported(index int, acc account.Account, entry otpauth.Entry) {
	fmt.Fprintf(r.w, "  [%2d] %s %s %s\n",
		index,
		pad(truncate(entry.Issuer)),
		pad(truncate(entry.Account)),
		acc.Type.Label(),
	)
}

func (r *ConsoleReporter) Skipped(index int, acc account.Account, err error) {
	r.warn.Fprintf(r.w, "  [%2d] Conversion failed, skipped: %s %s (%v)\n",
		index, truncate(acc.Issuer()), truncate(acc.AccountName()), err)
}

func (r *ConsoleReporter) Done(res Result) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, rule)
	r.ok.Fprintf(r.w, "Exported %d accounts to file: %s\n", res.Exported, res.OutputPath)
	if res.Skipped > 0 {
		r.warn.Fprintf(r.w, "Skipped %d accounts\n", res.Skipped)
	}
	fmt.Fprintln(r.w, rule)
	fmt.Fprintln(r.w, "\nNext steps:")
	fmt.Fprintln(r.w, `  1. Click "Import" in your authenticator app`)
	fmt.Fprintf(r.w, "  2. Select or drop the file: %s\n", res.OutputPath)
	fmt.Fprintf(r.w, "  3. All %d accounts should be imported\n\n", res.Exported)
}

// truncate укорачивает длинные значения до 24 символов с "..".
func truncate(s string) string {
	if utf8.RuneCountInString(s) <= columnWidth {
		return s
	}
	return string([]rune(s)[:displayWidth]) + ".."
}

func pad(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= columnWidth {
		return s
	}
	return s + strings.Repeat(" ", columnWidth-n)
}
