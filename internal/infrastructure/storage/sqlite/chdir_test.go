package sqlite

import (
	"os"
	"testing"
)

// chdir повторяет testing.T.Chdir (Go 1.24) для более старых тулчейнов:
// меняет рабочий каталог и восстанавливает его по завершении теста.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
