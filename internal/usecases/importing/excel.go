package importing

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/pkg/apiErrors"
	"github.com/vfg2006/content-ops-api/pkg/log"
	"github.com/vfg2006/content-ops-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// ImportExcel importa a primeira aba de um .xlsx vinculando todas as linhas a uma conta existente
func (s *Service) ImportExcel(ctx context.Context, file ImportFile, accountID int64, userID int64) (*domain.ImportResult, error) {
	ctx = context.WithoutCancel(ctx)

	if len(file.Content) == 0 {
		return nil, NewImportError(ErrEmptyFile, apiErrors.ErrEmptyFile, file.Name)
	}

	account, err := s.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar conta")
	}
	if account == nil {
		return nil, NewImportError(ErrAccountNotFound, apiErrors.ErrResourceNotFound, strconv.FormatInt(accountID, 10))
	}

	rows, err := readFirstSheet(file.Content)
	if err != nil {
		return nil, NewImportError(ErrUnreadableFile, apiErrors.ErrUnreadableFile, err.Error())
	}

	headerAt := -1
	for i, r := range rows {
		if !isBlankRow(r) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, NewImportError(ErrMissingHeader, apiErrors.ErrMissingHeader, file.Name)
	}

	cols := ResolveHeaders(rows[headerAt], excelCandidates)

	b, err := s.newBatch(ctx)
	if err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{"batch_no": b.no, "file_name": file.Name, "account_id": accountID}).Info("Iniciando importação de Excel")

	for i := headerAt + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}

		b.run(i+1, func() error {
			record := trafficFromRow(row, cols, account.ID, b.no)
			if record.PublishDate == nil {
				record.PublishDate, record.PublishTime = parseExcelSerialDate(field(row, cols.Index(FieldPublishTime)))
			}
			record.CompletionRate = ParseRate(field(row, cols.Index(FieldCompletionRate)))

			return errors.Wrap(s.trafficRepo.CreateTrafficRecord(ctx, record), "failed to save traffic record")
		})
	}

	return s.finish(ctx, b, file.Name, userID)
}

func readFirstSheet(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	return f.GetRows(sheets[0])
}

// parseExcelSerialDate trata células de data sem formatação, que chegam como número serial
func parseExcelSerialDate(raw string) (*time.Time, *time.Time) {
	raw = strings.TrimSpace(raw)
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial <= 0 {
		return nil, nil
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return nil, nil
	}

	day := utils.StartOfDay(t)
	return &day, &t
}
