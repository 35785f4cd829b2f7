package importing

import (
	"fmt"
	"strings"

	"github.com/vfg2006/content-ops-api/internal/domain"
)

var platformLabels = map[string]domain.Platform{
	"抖音":   domain.PlatformDouyin,
	"快手":   domain.PlatformKuaishou,
	"小红书":  domain.PlatformXiaohongshu,
	"视频号":  domain.PlatformShipinhao,
	"微信视频号": domain.PlatformShipinhao,
	"b站":   domain.PlatformBilibili,
	"哔哩哔哩": domain.PlatformBilibili,
	"微博":   domain.PlatformWeibo,
	"新浪微博": domain.PlatformWeibo,
}

// ResolvePlatform traduz o rótulo do arquivo para o identificador interno.
// Rótulos desconhecidos são erro; nunca há plataforma padrão.
func ResolvePlatform(label string) (domain.Platform, error) {
	key := strings.ToLower(strings.TrimSpace(label))

	if p, ok := platformLabels[key]; ok {
		return p, nil
	}

	if p := domain.Platform(key); p.IsValid() {
		return p, nil
	}

	return "", fmt.Errorf("unrecognized platform %q", label)
}
