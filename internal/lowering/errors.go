package lowering

import (
	"fmt"

	"github.com/cwbudde/go-minisharp/internal/analysis"
)

func errorf(format string, args ...any) error {
	return fmt.Errorf("lowering: "+format, args...)
}

func typeMismatchf(format string, args ...any) error {
	return &analysis.Error{
		Kind:    analysis.ErrTypeMismatch,
		Message: fmt.Sprintf(format, args...),
	}
}
