package importing

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/content-ops-api/infrastructure/repository"
	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/pkg/apiErrors"
	"github.com/vfg2006/content-ops-api/pkg/log"
	"github.com/vfg2006/content-ops-api/pkg/utils"
)

// ImportFile é o conteúdo já lido do upload
type ImportFile struct {
	Name    string
	Content []byte
}

type Importer interface {
	ImportCSV(ctx context.Context, file ImportFile, projectID *int64, userID int64) (*domain.ImportResult, error)
	ImportExcel(ctx context.Context, file ImportFile, accountID int64, userID int64) (*domain.ImportResult, error)
}

type Service struct {
	accountRepo repository.AccountRepository
	trafficRepo repository.TrafficRepository
	importRepo  repository.ImportRecordRepository
	now         func() time.Time
	batchNo     func(time.Time) (string, error)
}

func NewService(
	accountRepo repository.AccountRepository,
	trafficRepo repository.TrafficRepository,
	importRepo repository.ImportRecordRepository,
) Importer {
	return &Service{
		accountRepo: accountRepo,
		trafficRepo: trafficRepo,
		importRepo:  importRepo,
		now:         time.Now,
		batchNo:     utils.GenerateBatchNo,
	}
}

// ImportCSV importa um CSV identificando conta e plataforma em cada linha.
// Contas inexistentes são criadas no projeto informado.
func (s *Service) ImportCSV(ctx context.Context, file ImportFile, projectID *int64, userID int64) (*domain.ImportResult, error) {
	// uma importação iniciada vai até o resumo mesmo que o cliente desconecte
	ctx = context.WithoutCancel(ctx)

	if len(file.Content) == 0 {
		return nil, NewImportError(ErrEmptyFile, apiErrors.ErrEmptyFile, file.Name)
	}

	lines := SplitLines(DecodeText(file.Content))
	if len(lines) == 0 {
		return nil, NewImportError(ErrMissingHeader, apiErrors.ErrMissingHeader, file.Name)
	}

	cols := ResolveHeaders(ParseLine(lines[0].Text, ','), trafficCandidates)

	b, err := s.newBatch(ctx)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx)
	logger.WithFields(log.Fields{"batch_no": b.no, "file_name": file.Name, "rows": len(lines) - 1}).Info("Iniciando importação de CSV")

	reconciler := newAccountReconciler(s.accountRepo)
	for _, line := range lines[1:] {
		row := ParseLine(line.Text, ',')
		b.run(line.Number, func() error {
			return s.importCSVRow(ctx, reconciler, cols, row, projectID, b.no)
		})
	}

	return s.finish(ctx, b, file.Name, userID)
}

func (s *Service) importCSVRow(
	ctx context.Context,
	reconciler *accountReconciler,
	cols ColumnIndex,
	row []string,
	projectID *int64,
	batchNo string,
) error {
	accountName := field(row, cols.Index(FieldAccount))
	if accountName == "" {
		return errMissingAccount
	}

	platformLabel := field(row, cols.Index(FieldPlatform))
	if platformLabel == "" {
		return errMissingPlatform
	}

	accountID, err := reconciler.Resolve(ctx, platformLabel, accountName, optionalField(row, cols.Index(FieldRemark)), projectID)
	if err != nil {
		return err
	}

	record := trafficFromRow(row, cols, accountID, batchNo)

	return errors.Wrap(s.trafficRepo.CreateTrafficRecord(ctx, record), "failed to save traffic record")
}

// trafficFromRow aplica a normalização de métricas comum a CSV e Excel
func trafficFromRow(row []string, cols ColumnIndex, accountID int64, batchNo string) *domain.TrafficRecord {
	publishDate, publishTime := ParsePublishTime(field(row, cols.Index(FieldPublishTime)))

	return &domain.TrafficRecord{
		AccountID:    accountID,
		ContentTitle: optionalField(row, cols.Index(FieldTitle)),
		ContentType:  optionalField(row, cols.Index(FieldContentType)),
		ContentURL:   optionalField(row, cols.Index(FieldURL)),
		PublishDate:  publishDate,
		PublishTime:  publishTime,
		Views:        ParseCount(field(row, cols.Index(FieldViews))),
		Likes:        ParseCount(field(row, cols.Index(FieldLikes))),
		Comments:     ParseCount(field(row, cols.Index(FieldComments))),
		Shares:       ParseCount(field(row, cols.Index(FieldShares))),
		Saves:        ParseCount(field(row, cols.Index(FieldSaves))),
		Recommends:   ParseOptionalCount(field(row, cols.Index(FieldRecommends))),
		ImportBatch:  &batchNo,
	}
}

func (s *Service) newBatch(ctx context.Context) (*batch, error) {
	no, err := s.batchNo(s.now())
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar número do lote")
	}
	return newBatch(ctx, no), nil
}

// finish grava o único registro de resumo do lote
func (s *Service) finish(ctx context.Context, b *batch, fileName string, userID int64) (*domain.ImportResult, error) {
	if err := s.importRepo.CreateImportRecord(ctx, b.record(fileName, userID)); err != nil {
		return nil, errors.Wrap(err, "erro ao salvar registro de importação")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"batch_no": b.no,
		"total":    b.total,
		"success":  b.success,
		"failed":   b.failed,
	}).Info("Importação concluída")

	return b.result(), nil
}
