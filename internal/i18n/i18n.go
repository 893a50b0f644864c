package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocaleEN   = "en"
	LocaleZhCN = "zh-CN"

	// QueryLocaleKey 覆盖 Accept-Language 的查询参数
	QueryLocaleKey = "lang"
)

var (
	supportedTags = []language.Tag{language.English, language.SimplifiedChinese}
	matcher       = language.NewMatcher(supportedTags)
)

// ResolveLocale 解析请求语言，优先 ?lang=，其次 Accept-Language，默认英文
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return LocaleEN
	}
	if raw := strings.TrimSpace(c.Query(QueryLocaleKey)); raw != "" {
		return NormalizeLocale(raw)
	}
	return NormalizeLocale(c.GetHeader("Accept-Language"))
}

// NormalizeLocale 将任意语言标记归一到支持的语言
func NormalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return LocaleEN
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return LocaleEN
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LocaleEN
	}
	if supportedTags[index] == language.SimplifiedChinese {
		return LocaleZhCN
	}
	return LocaleEN
}

// T 翻译消息，缺失时回退英文，再回退 key 本身
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[LocaleEN][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
