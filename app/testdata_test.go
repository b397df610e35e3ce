package app_test

import (
	"context"
	"errors"
)

var (
	ctx              = context.Background()
	errUseCaseFailed = errors.New("use case failed")
)

type (
	request  struct{}
	response struct{ Value string }

	input struct {
		Name  string `json:"name"  validate:"required,max=5"`
		Email string `json:"email" validate:"omitempty,email"`
		Count int    `validate:"gte=1"`
	}
)

var validInput = input{Name: "name", Count: 1}
