package importing

import "strings"

// Field é o identificador canônico de uma coluna, independente do cabeçalho do arquivo
type Field string

const (
	FieldAccount        Field = "account"
	FieldPlatform       Field = "platform"
	FieldTitle          Field = "title"
	FieldContentType    Field = "contentType"
	FieldURL            Field = "url"
	FieldPublishTime    Field = "publishTime"
	FieldViews          Field = "views"
	FieldLikes          Field = "likes"
	FieldComments       Field = "comments"
	FieldShares         Field = "shares"
	FieldSaves          Field = "saves"
	FieldRecommends     Field = "recommends"
	FieldRemark         Field = "remark"
	FieldCompletionRate Field = "completionRate"
)

// NotFound indica que nenhuma coluna do cabeçalho atende ao campo
const NotFound = -1

type FieldCandidates struct {
	Field      Field
	Candidates []string
}

// ColumnIndex guarda a posição resolvida de cada campo canônico
type ColumnIndex map[Field]int

func (c ColumnIndex) Index(f Field) int {
	if idx, ok := c[f]; ok {
		return idx
	}
	return NotFound
}

func (c ColumnIndex) Has(f Field) bool {
	return c.Index(f) != NotFound
}

// Nenhuma substring abaixo pode estar contida em um cabeçalho típico de outro campo
// ("view" casaria com "review", "内容" com "内容类型").
var trafficCandidates = []FieldCandidates{
	{FieldAccount, []string{"账号", "账户", "昵称", "博主", "account"}},
	{FieldPlatform, []string{"平台", "渠道", "platform"}},
	{FieldTitle, []string{"标题", "作品名称", "title"}},
	{FieldContentType, []string{"内容类型", "作品类型", "体裁", "type"}},
	{FieldURL, []string{"链接", "url", "link"}},
	{FieldPublishTime, []string{"发布时间", "发布日期", "publish", "日期", "时间", "date"}},
	{FieldViews, []string{"阅读", "播放", "浏览", "观看", "views", "plays"}},
	{FieldLikes, []string{"点赞", "赞", "likes"}},
	{FieldComments, []string{"评论", "comments"}},
	{FieldShares, []string{"分享", "转发", "shares"}},
	{FieldSaves, []string{"收藏", "saves", "favorites"}},
	{FieldRecommends, []string{"推荐", "recommends"}},
	{FieldRemark, []string{"备注", "remark", "note"}},
}

var excelCandidates = append(append([]FieldCandidates{}, trafficCandidates...),
	FieldCandidates{FieldCompletionRate, []string{"完播率", "完播", "completion"}},
)

// ResolveHeaders mapeia cada campo canônico para a primeira coluna cujo texto
// (minúsculo, sem espaços nas bordas) contém algum candidato. A ordem dos
// candidatos tem prioridade sobre a posição da coluna.
func ResolveHeaders(headers []string, candidates []FieldCandidates) ColumnIndex {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	index := make(ColumnIndex, len(candidates))
	for _, fc := range candidates {
		index[fc.Field] = NotFound
	resolve:
		for _, candidate := range fc.Candidates {
			candidate = strings.ToLower(candidate)
			for i, h := range normalized {
				if h != "" && strings.Contains(h, candidate) {
					index[fc.Field] = i
					break resolve
				}
			}
		}
	}

	return index
}
