package importing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/content-ops-api/internal/domain"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestResolveHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		field   Field
		want    int
	}{
		{"Cabeçalho com unidade entre parênteses resolve views", []string{"账号", "阅读（播放）"}, FieldViews, 1},
		{"Cabeçalho em inglês com maiúsculas resolve views", []string{"Account", " Views "}, FieldViews, 1},
		{"Review não resolve views", []string{"Review"}, FieldViews, NotFound},
		{"Primeira coluna vence em empate do mesmo candidato", []string{"点赞数", "点赞率"}, FieldLikes, 0},
		{"Ordem dos candidatos tem prioridade sobre a posição", []string{"浏览量", "播放量"}, FieldViews, 1},
		{"Campo ausente devolve sentinela", []string{"标题"}, FieldAccount, NotFound},
		{"Cabeçalho vazio é ignorado", []string{"", "平台"}, FieldPlatform, 1},
		{"Tipo de conteúdo não confunde título", []string{"内容类型", "作品标题"}, FieldTitle, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := ResolveHeaders(tt.headers, trafficCandidates)
			assert.Equal(t, tt.want, cols.Index(tt.field))
		})
	}
}

func TestResolveHeaders_FullTrafficHeader(t *testing.T) {
	cols := ResolveHeaders([]string{"账号", "平台", "标题", "阅读", "点赞", "发布时间"}, trafficCandidates)

	assert.Equal(t, 0, cols.Index(FieldAccount))
	assert.Equal(t, 1, cols.Index(FieldPlatform))
	assert.Equal(t, 2, cols.Index(FieldTitle))
	assert.Equal(t, 3, cols.Index(FieldViews))
	assert.Equal(t, 4, cols.Index(FieldLikes))
	assert.Equal(t, 5, cols.Index(FieldPublishTime))
	assert.False(t, cols.Has(FieldComments))
	assert.False(t, cols.Has(FieldRecommends))
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"Vírgula dentro de aspas não separa", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"Campos são aparados", ` a , b ,c `, []string{"a", "b", "c"}},
		{"Campos vazios são preservados", `a,,c,`, []string{"a", "", "c", ""}},
		{"Aspas duplicadas não são desescapadas", `"say ""hi""",x`, []string{"say hi", "x"}},
		{"Linha sem delimitador", `sozinho`, []string{"sozinho"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.line, ','))
		})
	}
}

func TestField_ShortRow(t *testing.T) {
	row := []string{"a", "b"}

	assert.Equal(t, "b", field(row, 1))
	assert.Equal(t, "", field(row, 5))
	assert.Equal(t, "", field(row, NotFound))
	assert.Nil(t, optionalField(row, 5))
}

func TestDecodeText(t *testing.T) {
	t.Run("UTF-8 com BOM", func(t *testing.T) {
		raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("账号,平台")...)
		assert.Equal(t, "账号,平台", DecodeText(raw))
	})

	t.Run("GBK é redecodificado", func(t *testing.T) {
		raw, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("账号,平台\n小王,抖音"))
		require.NoError(t, err)

		assert.Equal(t, "账号,平台\n小王,抖音", DecodeText(raw))
	})

	t.Run("ASCII permanece inalterado", func(t *testing.T) {
		assert.Equal(t, "a,b", DecodeText([]byte("a,b")))
	})
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("h1,h2\r\na,b\n\n   \rc,d\n")

	require.Len(t, lines, 3)
	assert.Equal(t, Line{Number: 1, Text: "h1,h2"}, lines[0])
	assert.Equal(t, Line{Number: 2, Text: "a,b"}, lines[1])
	assert.Equal(t, Line{Number: 5, Text: "c,d"}, lines[2])
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"--", 0},
		{"-", 0},
		{"", 0},
		{"   ", 0},
		{"1200", 1200},
		{" 35 ", 35},
		{"12,000", 0},
		{"1.5万", 0},
		{"-7", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCount(tt.raw))
		})
	}
}

func TestParseOptionalCount(t *testing.T) {
	assert.Nil(t, ParseOptionalCount("--"))
	assert.Nil(t, ParseOptionalCount(""))
	assert.Nil(t, ParseOptionalCount("abc"))

	zero := ParseOptionalCount("0")
	require.NotNil(t, zero)
	assert.Equal(t, 0, *zero)

	n := ParseOptionalCount("88")
	require.NotNil(t, n)
	assert.Equal(t, 88, *n)
}

func TestParseRate(t *testing.T) {
	assert.Nil(t, ParseRate("--"))
	assert.Nil(t, ParseRate("abc"))

	r := ParseRate("35.5%")
	require.NotNil(t, r)
	assert.InDelta(t, 35.5, *r, 0.0001)
}

func TestParsePublishTime(t *testing.T) {
	day, ts := ParsePublishTime("2024-01-15 10:30")
	require.NotNil(t, day)
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), *day)
	assert.Equal(t, 10, ts.Hour())
	assert.Equal(t, 30, ts.Minute())

	day, _ = ParsePublishTime("2024年3月5日")
	require.NotNil(t, day)
	assert.Equal(t, time.March, day.Month())
	assert.Equal(t, 5, day.Day())

	day, ts = ParsePublishTime("ontem à tarde")
	assert.Nil(t, day)
	assert.Nil(t, ts)

	day, ts = ParsePublishTime("--")
	assert.Nil(t, day)
	assert.Nil(t, ts)
}

func TestResolvePlatform(t *testing.T) {
	tests := []struct {
		label   string
		want    domain.Platform
		wantErr string
	}{
		{"抖音", domain.PlatformDouyin, ""},
		{" 小红书 ", domain.PlatformXiaohongshu, ""},
		{"B站", domain.PlatformBilibili, ""},
		{"Kuaishou", domain.PlatformKuaishou, ""},
		{"未知平台", "", `unrecognized platform "未知平台"`},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ResolvePlatform(tt.label)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
