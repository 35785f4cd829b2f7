package importing

import (
	"context"
	"fmt"
	"strings"

	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/pkg/log"
)

const (
	maxStoredErrors   = 100
	maxReturnedErrors = 10
)

// batch acumula o resultado de uma importação. Uma linha com falha
// (inclusive panic) nunca interrompe as seguintes.
type batch struct {
	no      string
	total   int
	success int
	failed  int
	errors  []string
	logger  log.Logger
}

func newBatch(ctx context.Context, no string) *batch {
	return &batch{
		no:     no,
		errors: make([]string, 0),
		logger: log.ForContext(ctx).WithField("batch_no", no),
	}
}

func (b *batch) run(line int, fn func() error) {
	b.total++

	if err := safeCall(fn); err != nil {
		b.failed++
		if len(b.errors) < maxStoredErrors {
			b.errors = append(b.errors, fmt.Sprintf("row %d: %s", line, err.Error()))
		}
		b.logger.WithFields(log.Fields{"row": line, "error": err.Error()}).Warn("Linha ignorada na importação")
		return
	}

	b.success++
}

func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()
	return fn()
}

func (b *batch) record(fileName string, userID int64) *domain.ImportRecord {
	var errorLog *string
	if len(b.errors) > 0 {
		joined := strings.Join(b.errors, "\n")
		errorLog = &joined
	}

	return &domain.ImportRecord{
		Type:        domain.ImportTypeTraffic,
		FileName:    fileName,
		BatchNo:     b.no,
		TotalRows:   b.total,
		SuccessRows: b.success,
		FailedRows:  b.failed,
		Status:      domain.ImportStatusCompleted,
		ErrorLog:    errorLog,
		CreatedBy:   userID,
	}
}

func (b *batch) result() *domain.ImportResult {
	errs := b.errors
	if len(errs) > maxReturnedErrors {
		errs = errs[:maxReturnedErrors]
	}

	return &domain.ImportResult{
		BatchNo:     b.no,
		TotalRows:   b.total,
		SuccessRows: b.success,
		FailedRows:  b.failed,
		Errors:      append([]string{}, errs...),
	}
}
