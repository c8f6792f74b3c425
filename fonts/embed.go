package fonts

import (
	"fmt"
	"strings"

	"github.com/go-fonts/liberation/liberationsansbold"
	"github.com/go-fonts/liberation/liberationsansregular"
)

// 签名在邮件客户端中以 Arial, Helvetica, sans-serif 渲染；
// Liberation Sans 与 Arial 字宽一致，预览与测量都使用它。

// Family 为内置字体的族名。
const Family = "Liberation Sans"

// Load 返回内置字体的字节数据，style 为 regular 或 bold，可带 "embed:" 前缀。
func Load(style string) ([]byte, error) {
	style = strings.ToLower(strings.TrimPrefix(style, "embed:"))
	switch style {
	case "", "regular", "normal":
		return liberationsansregular.TTF, nil
	case "bold":
		return liberationsansbold.TTF, nil
	default:
		return nil, fmt.Errorf("读取内置字体 %s 失败: 不支持的样式", style)
	}
}
