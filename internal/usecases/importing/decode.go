package importing

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Line é uma linha não vazia com o número que ocupa no arquivo (base 1)
type Line struct {
	Number int
	Text   string
}

// DecodeText decodifica como UTF-8 e, se surgir o caractere de substituição,
// refaz a decodificação dos bytes originais como GBK.
func DecodeText(raw []byte) string {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	text := strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	if !strings.ContainsRune(text, utf8.RuneError) {
		return text
	}

	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(raw)
	if err != nil {
		return text
	}

	return string(bytes.TrimPrefix(decoded, utf8BOM))
}

// SplitLines aceita \r\n, \n e \r e descarta linhas em branco sem renumerar as demais
func SplitLines(text string) []Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := make([]Line, 0, strings.Count(text, "\n")+1)
	for i, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, Line{Number: i + 1, Text: l})
	}

	return lines
}
