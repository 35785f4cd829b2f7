package utils

import (
	"errors"
	"strings"
	"time"
)

var ErrUnparseableTime = errors.New("unparseable time")

// Formatos aceitos na importação, do mais específico para o mais genérico.
// Os layouts com "1" e "2" aceitam mês e dia com um ou dois dígitos.
var flexibleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006/1/2",
	"2006.1.2 15:04",
	"2006.1.2",
	"2006年1月2日 15:04:05",
	"2006年1月2日 15:04",
	"2006年1月2日",
	"1/2/2006 15:04",
	"1/2/2006",
}

// ParseDate lê datas no formato 2006-01-02; vazio devolve nil
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.ParseInLocation(time.DateOnly, dateStr, time.Local)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// ParseEndDate é como ParseDate mas aponta para o último instante do dia
func ParseEndDate(dateStr string) (*time.Time, error) {
	date, err := ParseDate(dateStr)
	if err != nil || date == nil {
		return date, err
	}

	end := date.Add(24*time.Hour - time.Nanosecond)
	return &end, nil
}

// ParseFlexibleTime tenta cada layout conhecido no fuso local.
// Nunca devolve o horário atual como fallback.
func ParseFlexibleTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrUnparseableTime
	}

	for _, layout := range flexibleLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrUnparseableTime
}

// StartOfDay zera o horário mantendo o fuso
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
