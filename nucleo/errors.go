package nucleo

import "github.com/pkg/errors"

var ErrBadBase = errors.New("nucleo: not a nucleotide base")
