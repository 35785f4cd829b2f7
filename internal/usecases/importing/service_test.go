package importing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/content-ops-api/infrastructure/repository/mocks"
	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/pkg/log"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/encoding/simplifiedchinese"
)

const testBatchNo = "IMP1705300000000-abc123"

type importMocks struct {
	accountRepo *mocks.MockAccountRepository
	trafficRepo *mocks.MockTrafficRepository
	importRepo  *mocks.MockImportRecordRepository
}

func newTestService(t *testing.T) (*Service, importMocks) {
	ctrl := gomock.NewController(t)

	m := importMocks{
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		trafficRepo: mocks.NewMockTrafficRepository(ctrl),
		importRepo:  mocks.NewMockImportRecordRepository(ctrl),
	}

	svc := &Service{
		accountRepo: m.accountRepo,
		trafficRepo: m.trafficRepo,
		importRepo:  m.importRepo,
		now:         func() time.Time { return time.UnixMilli(1705300000000) },
		batchNo: func(time.Time) (string, error) {
			return testBatchNo, nil
		},
	}

	return svc, m
}

func captureRecord(m importMocks, out **domain.ImportRecord) {
	m.importRepo.EXPECT().
		CreateImportRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *domain.ImportRecord) error {
			*out = rec
			return nil
		}).
		Times(1)
}

func captureTraffic(m importMocks, out *[]*domain.TrafficRecord, times int) {
	m.trafficRepo.EXPECT().
		CreateTrafficRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *domain.TrafficRecord) error {
			*out = append(*out, rec)
			return nil
		}).
		Times(times)
}

func csvFile(content string) ImportFile {
	return ImportFile{Name: "traffic.csv", Content: []byte(content)}
}

func TestService_ImportCSV_SameAccountTwice(t *testing.T) {
	svc, m := newTestService(t)

	content := "账号,平台,标题,阅读,点赞,发布时间\n" +
		"美食小王,抖音,探店第一期,1200,35,2024-01-15 10:30\n" +
		"美食小王,抖音,探店第二期,--,,2024/01/16\n"

	m.accountRepo.EXPECT().
		FindByPlatformAndName(gomock.Any(), domain.PlatformDouyin, "美食小王").
		Return(nil, nil).
		Times(1)
	m.accountRepo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, acc *domain.Account) (*domain.Account, error) {
			acc.ID = 42
			return acc, nil
		}).
		Times(1)

	var saved []*domain.TrafficRecord
	captureTraffic(m, &saved, 2)

	var rec *domain.ImportRecord
	captureRecord(m, &rec)

	projectID := int64(3)
	result, err := svc.ImportCSV(context.Background(), csvFile(content), &projectID, 9)
	require.NoError(t, err)

	assert.Equal(t, testBatchNo, result.BatchNo)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.SuccessRows)
	assert.Equal(t, 0, result.FailedRows)
	assert.Empty(t, result.Errors)

	require.Len(t, saved, 2)
	assert.Equal(t, int64(42), saved[0].AccountID)
	assert.Equal(t, "探店第一期", *saved[0].ContentTitle)
	assert.Equal(t, 1200, saved[0].Views)
	assert.Equal(t, 35, saved[0].Likes)
	assert.Equal(t, testBatchNo, *saved[0].ImportBatch)
	require.NotNil(t, saved[0].PublishDate)
	assert.Equal(t, 15, saved[0].PublishDate.Day())

	assert.Equal(t, 0, saved[1].Views)
	assert.Equal(t, 0, saved[1].Likes)
	assert.Nil(t, saved[1].Recommends)
	require.NotNil(t, saved[1].PublishDate)
	assert.Equal(t, 16, saved[1].PublishDate.Day())

	require.NotNil(t, rec)
	assert.Equal(t, domain.ImportTypeTraffic, rec.Type)
	assert.Equal(t, domain.ImportStatusCompleted, rec.Status)
	assert.Equal(t, "traffic.csv", rec.FileName)
	assert.Equal(t, int64(9), rec.CreatedBy)
	assert.Equal(t, 2, rec.TotalRows)
	assert.Equal(t, 2, rec.SuccessRows)
	assert.Nil(t, rec.ErrorLog)
}

func TestService_ImportCSV_UnknownPlatform(t *testing.T) {
	svc, m := newTestService(t)

	content := "账号,平台,标题,阅读\n" +
		"小王,快手,视频,10\n" +
		"小李,未知平台,视频,20\n"

	m.accountRepo.EXPECT().
		FindByPlatformAndName(gomock.Any(), domain.PlatformKuaishou, "小王").
		Return(&domain.Account{ID: 5}, nil)

	var saved []*domain.TrafficRecord
	captureTraffic(m, &saved, 1)

	var rec *domain.ImportRecord
	captureRecord(m, &rec)

	result, err := svc.ImportCSV(context.Background(), csvFile(content), nil, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 1, result.SuccessRows)
	assert.Equal(t, 1, result.FailedRows)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, `row 3: unrecognized platform "未知平台"`, result.Errors[0])

	require.Len(t, saved, 1)
	assert.Equal(t, int64(5), saved[0].AccountID)

	require.NotNil(t, rec.ErrorLog)
	assert.Equal(t, result.Errors[0], *rec.ErrorLog)
}

func TestService_ImportCSV_FirstRemarkWins(t *testing.T) {
	svc, m := newTestService(t)

	content := "账号,平台,备注\n" +
		"小王,小红书,第一条备注\n" +
		"小王,小红书,第二条备注\n"

	m.accountRepo.EXPECT().
		FindByPlatformAndName(gomock.Any(), domain.PlatformXiaohongshu, "小王").
		Return(nil, nil).
		Times(1)

	var created []*domain.Account
	m.accountRepo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, acc *domain.Account) (*domain.Account, error) {
			acc.ID = 7
			created = append(created, acc)
			return acc, nil
		}).
		Times(1)

	var saved []*domain.TrafficRecord
	captureTraffic(m, &saved, 2)

	var rec *domain.ImportRecord
	captureRecord(m, &rec)

	_, err := svc.ImportCSV(context.Background(), csvFile(content), nil, 1)
	require.NoError(t, err)

	require.Len(t, created, 1)
	require.NotNil(t, created[0].Remark)
	assert.Equal(t, "第一条备注", *created[0].Remark)
	assert.Equal(t, domain.AccountStatusActive, created[0].Status)
}

func TestService_ImportCSV_RowFailuresNeverAbort(t *testing.T) {
	svc, m := newTestService(t)

	content := "账号,平台,阅读\n" +
		",抖音,1\n" +
		"小王,,2\n" +
		"小王,抖音,3\n" +
		"小王,抖音,4\n" +
		"小王,抖音,5\n"

	m.accountRepo.EXPECT().
		FindByPlatformAndName(gomock.Any(), domain.PlatformDouyin, "小王").
		Return(&domain.Account{ID: 1}, nil)

	gomock.InOrder(
		m.trafficRepo.EXPECT().CreateTrafficRecord(gomock.Any(), gomock.Any()).Return(errors.New("conexão perdida")),
		m.trafficRepo.EXPECT().CreateTrafficRecord(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, *domain.TrafficRecord) error { panic("boom") },
		),
		m.trafficRepo.EXPECT().CreateTrafficRecord(gomock.Any(), gomock.Any()).Return(nil),
	)

	var rec *domain.ImportRecord
	captureRecord(m, &rec)

	result, err := svc.ImportCSV(context.Background(), csvFile(content), nil, 1)
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalRows)
	assert.Equal(t, 1, result.SuccessRows)
	assert.Equal(t, 4, result.FailedRows)
	assert.Equal(t, []string{
		"row 2: missing account name",
		"row 3: missing platform",
		"row 4: failed to save traffic record: conexão perdida",
		"row 5: unexpected error: boom",
	}, result.Errors)
	assert.Equal(t, result.TotalRows, result.SuccessRows+result.FailedRows)
}

func TestService_ImportCSV_ErrorTruncation(t *testing.T) {
	svc, m := newTestService(t)

	var sb strings.Builder
	sb.WriteString("账号,平台\n")
	for i := 0; i < 120; i++ {
		sb.WriteString(fmt.Sprintf("conta%d,\n", i))
	}

	var rec *domain.ImportRecord
	captureRecord(m, &rec)

	result, err := svc.ImportCSV(context.Background(), csvFile(sb.String()), nil, 1)
	require.NoError(t, err)

	assert.Equal(t, 120, result.TotalRows)
	assert.Equal(t, 120, result.FailedRows)
	assert.Len(t, result.Errors, maxReturnedErrors)

	require.NotNil(t, rec.ErrorLog)
	assert.Len(t, strings.Split(*rec.ErrorLog, "\n"), maxStoredErrors)
	assert.Equal(t, 120, rec.FailedRows)
}

func TestService_ImportCSV_BlankLinesKeepLineNumbers(t *testing.T) {
	svc, m := newTestService(t)

	content := "账号,平台\n\n\n小王,未知平台\n"

	var rec *domain.ImportRecord
	captureRecord(m, &rec)

	result, err := svc.ImportCSV(context.Background(), csvFile(content), nil, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalRows)
	assert.Equal(t, []string{`row 4: unrecognized platform "未知平台"`}, result.Errors)
}

func TestService_ImportCSV_GBKFile(t *testing.T) {
	svc, m := newTestService(t)

	raw, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("账号,平台,播放量\n小王,微博,300\n"))
	require.NoError(t, err)

	m.accountRepo.EXPECT().
		FindByPlatformAndName(gomock.Any(), domain.PlatformWeibo, "小王").
		Return(&domain.Account{ID: 2}, nil)

	var saved []*domain.TrafficRecord
	captureTraffic(m, &saved, 1)

	var rec *domain.ImportRecord
	captureRecord(m, &rec)

	result, err := svc.ImportCSV(context.Background(), ImportFile{Name: "gbk.csv", Content: raw}, nil, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessRows)
	assert.Equal(t, 300, saved[0].Views)
}

func TestService_ImportCSV_FileErrors(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ImportCSV(context.Background(), csvFile(""), nil, 1)
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = svc.ImportCSV(context.Background(), csvFile("\n  \r\n"), nil, 1)
	assert.ErrorIs(t, err, ErrMissingHeader)

	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, "IMP_002", importErr.Code)
}

func TestService_ImportCSV_SummaryFailure(t *testing.T) {
	svc, m := newTestService(t)

	m.importRepo.EXPECT().
		CreateImportRecord(gomock.Any(), gomock.Any()).
		Return(errors.New("timeout"))

	_, err := svc.ImportCSV(context.Background(), csvFile("账号,平台\n"), nil, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	return buf.Bytes()
}

func TestService_ImportExcel(t *testing.T) {
	svc, m := newTestService(t)

	content := buildWorkbook(t, [][]any{
		{"内容标题", "发布日期", "播放量", "点赞数", "评论数", "转发数", "收藏数", "完播率"},
		{"第一期", "2024-02-01", 1500, 20, 3, 4, 5, "35.5%"},
		{"第二期", "--", 800, 10, 0, 0, 0, "--"},
	})

	m.accountRepo.EXPECT().
		GetAccountByID(gomock.Any(), int64(11)).
		Return(&domain.Account{ID: 11, Platform: domain.PlatformDouyin}, nil)

	var saved []*domain.TrafficRecord
	captureTraffic(m, &saved, 2)

	var rec *domain.ImportRecord
	captureRecord(m, &rec)

	result, err := svc.ImportExcel(context.Background(), ImportFile{Name: "dados.xlsx", Content: content}, 11, 4)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.SuccessRows)
	require.Len(t, saved, 2)

	assert.Equal(t, int64(11), saved[0].AccountID)
	assert.Equal(t, "第一期", *saved[0].ContentTitle)
	assert.Equal(t, 1500, saved[0].Views)
	assert.Equal(t, 20, saved[0].Likes)
	assert.Equal(t, 3, saved[0].Comments)
	assert.Equal(t, 4, saved[0].Shares)
	assert.Equal(t, 5, saved[0].Saves)
	require.NotNil(t, saved[0].CompletionRate)
	assert.InDelta(t, 35.5, *saved[0].CompletionRate, 0.0001)
	require.NotNil(t, saved[0].PublishDate)
	assert.Equal(t, time.February, saved[0].PublishDate.Month())

	assert.Nil(t, saved[1].PublishDate)
	assert.Nil(t, saved[1].CompletionRate)

	assert.Equal(t, "dados.xlsx", rec.FileName)
	assert.Equal(t, int64(4), rec.CreatedBy)
}

func TestService_ImportExcel_AccountNotFound(t *testing.T) {
	svc, m := newTestService(t)

	m.accountRepo.EXPECT().
		GetAccountByID(gomock.Any(), int64(99)).
		Return(nil, nil)

	_, err := svc.ImportExcel(context.Background(), ImportFile{Name: "x.xlsx", Content: []byte("x")}, 99, 1)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestService_ImportExcel_Unreadable(t *testing.T) {
	svc, m := newTestService(t)

	m.accountRepo.EXPECT().
		GetAccountByID(gomock.Any(), int64(1)).
		Return(&domain.Account{ID: 1}, nil)

	_, err := svc.ImportExcel(context.Background(), ImportFile{Name: "x.xlsx", Content: []byte("not a zip")}, 1, 1)
	assert.ErrorIs(t, err, ErrUnreadableFile)
}

// repositórios que respeitam o cancelamento do contexto, como o lib/pq
func cancelAwareTraffic(m importMocks, cancel context.CancelFunc, saved *int) {
	m.trafficRepo.EXPECT().
		CreateTrafficRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *domain.TrafficRecord) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			*saved++
			cancel()
			return nil
		}).
		AnyTimes()
}

func cancelAwareSummary(t *testing.T, m importMocks, correlationID string, out **domain.ImportRecord) {
	m.importRepo.EXPECT().
		CreateImportRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec *domain.ImportRecord) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			assert.Equal(t, correlationID, log.GetCorrelationID(ctx))
			*out = rec
			return nil
		}).
		Times(1)
}

func TestService_ImportCSV_ClientDisconnect(t *testing.T) {
	svc, m := newTestService(t)

	ctx, correlationID := log.WithCorrelationID(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	content := "账号,平台,阅读\n" +
		"美食小王,抖音,10\n" +
		"美食小王,抖音,20\n" +
		"美食小王,抖音,30\n"

	m.accountRepo.EXPECT().
		FindByPlatformAndName(gomock.Any(), domain.PlatformDouyin, "美食小王").
		Return(&domain.Account{ID: 7, Platform: domain.PlatformDouyin, AccountName: "美食小王"}, nil).
		Times(1)

	saved := 0
	cancelAwareTraffic(m, cancel, &saved)

	var rec *domain.ImportRecord
	cancelAwareSummary(t, m, correlationID, &rec)

	result, err := svc.ImportCSV(ctx, csvFile(content), nil, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, saved)
	assert.Equal(t, 3, result.SuccessRows)
	assert.Equal(t, 0, result.FailedRows)
	require.NotNil(t, rec)
	assert.Equal(t, 3, rec.SuccessRows)
}

func TestService_ImportExcel_ClientDisconnect(t *testing.T) {
	svc, m := newTestService(t)

	ctx, correlationID := log.WithCorrelationID(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	content := buildWorkbook(t, [][]any{
		{"内容标题", "播放量"},
		{"a", 1},
		{"b", 2},
	})

	m.accountRepo.EXPECT().
		GetAccountByID(gomock.Any(), int64(5)).
		Return(&domain.Account{ID: 5}, nil)

	saved := 0
	cancelAwareTraffic(m, cancel, &saved)

	var rec *domain.ImportRecord
	cancelAwareSummary(t, m, correlationID, &rec)

	result, err := svc.ImportExcel(ctx, ImportFile{Name: "a.xlsx", Content: content}, 5, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, saved)
	assert.Equal(t, 2, result.SuccessRows)
	require.NotNil(t, rec)
}
