package importing

import (
	"errors"
	"fmt"
)

var (
	// Erros de arquivo: abortam a importação antes de qualquer linha
	ErrEmptyFile       = errors.New("arquivo vazio")
	ErrMissingHeader   = errors.New("arquivo sem linha de cabeçalho")
	ErrUnreadableFile  = errors.New("não foi possível ler a planilha")
	ErrAccountNotFound = errors.New("conta não encontrada")

	// Erros de linha: contabilizados no lote, nunca propagados
	errMissingAccount  = errors.New("missing account name")
	errMissingPlatform = errors.New("missing platform")
)

// ImportError carrega o código de API associado a uma falha de arquivo
type ImportError struct {
	Err     error
	Code    string
	Details string
}

func (e *ImportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func NewImportError(baseErr error, code string, details string) *ImportError {
	return &ImportError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
