package cli

import (
	"strconv"

	"github.com/go-faker/faker/v4"
)

// Keys tells the REPL how to read and generate keys of one type.
type Keys[K any] struct {
	Name   string
	Parse  func(string) (K, error)
	Random func() (K, error)
}

var IntKeys = Keys[int]{
	Name:  "int",
	Parse: strconv.Atoi,
	Random: func() (int, error) {
		var k int16
		if err := faker.FakeData(&k); err != nil {
			return 0, err
		}
		return int(k), nil
	},
}

var StringKeys = Keys[string]{
	Name: "string",
	Parse: func(s string) (string, error) {
		return s, nil
	},
	Random: func() (string, error) {
		return faker.Word() + faker.Word(), nil
	},
}
