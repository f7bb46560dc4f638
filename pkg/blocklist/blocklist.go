// Package blocklist 提供一个可插拔的违禁词判定器。
// 排行榜提交的玩家名校验依赖它；算法或词表将来可以整体替换
// （例如换成真正的内容审核服务），不影响提交逻辑。
package blocklist

import "strings"

// Matcher 判定一段文本是否包含违禁词。
type Matcher interface {
	IsBlocked(text string) bool
}

// 默认词表只覆盖最恶劣的内容，刻意保持最小化
var defaultWords = []string{
	"nigger", "nigga", "faggot", "retard", "kike", "chink", "spic", "wetback",
}

// substringMatcher 用大小写不敏感的子串匹配实现 Matcher。
type substringMatcher struct {
	words []string
}

// NewMatcher 使用给定词表创建一个Matcher；词表为空时使用默认词表。
func NewMatcher(words []string) Matcher {
	if len(words) == 0 {
		words = defaultWords
	}
	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = strings.ToLower(w)
	}
	return &substringMatcher{words: lowered}
}

// Default 返回使用内置词表的Matcher。
func Default() Matcher {
	return NewMatcher(nil)
}

// IsBlocked 检查文本中是否出现任意违禁词（不区分大小写）。
func (m *substringMatcher) IsBlocked(text string) bool {
	lowered := strings.ToLower(text)
	for _, w := range m.words {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}
