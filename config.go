package mixfence

import (
	"sync"

	"github.com/riverfjs/mixfence-go/internal/types"
)

// 导出类型别名
type RenderConfig = types.RenderConfig

// DefaultLanguage 代码围栏默认的语言标签
const DefaultLanguage = types.DefaultLanguage

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
// Callers must not modify it; options work on a copy.
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}
