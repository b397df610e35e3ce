package app

import (
	"context"
	"errors"
)

// ErrUseCaseFailed is returned by TestFailureUseCase.
var ErrUseCaseFailed = errors.New("use case failed")

// TestSuccessUseCase returns a UseCase that always succeeds with the zero value of Out.
// Use it to test code that depends on a use case.
func TestSuccessUseCase[In any, Out any]() UseCase[In, Out] {
	return Func[In, Out](func(context.Context, In) (Out, error) {
		return *new(Out), nil
	})
}

// TestFailureUseCase returns a UseCase that always fails with ErrUseCaseFailed.
func TestFailureUseCase[In any, Out any]() UseCase[In, Out] {
	return Func[In, Out](func(context.Context, In) (Out, error) {
		return *new(Out), ErrUseCaseFailed
	})
}
