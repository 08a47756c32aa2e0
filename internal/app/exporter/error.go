package exporter

import (
	"errors"
	"fmt"
)

var ErrDatabaseNotFound = errors.New("PhoneFactor database not found")

// MissingInputError - файл базы отсутствует по ожидаемому пути
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDatabaseNotFound, e.Path)
}

func (e *MissingInputError) Unwrap() error {
	return ErrDatabaseNotFound
}
