package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GenerateBatchNo monta o identificador de lote IMP<unix-millis>-<sufixo>
func GenerateBatchNo(now time.Time) (string, error) {
	suffix, err := GenerateID()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("IMP%d-%s", now.UnixMilli(), suffix), nil
}
