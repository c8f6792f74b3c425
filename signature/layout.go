package signature

import (
	"encoding/json"
	"time"
)

// Layout 是一份命名的样式快照，可以应用到任意签名上而不改动其内容。
type Layout struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	Style
}

// CaptureLayout 从签名中复制全部样式字段，身份与内容不参与。
func CaptureLayout(cfg Config, name string) Layout {
	return Layout{Name: name, Style: cfg.Style}
}

// ApplyLayout 返回新的签名：身份与内容来自 cfg，样式全部来自 l。
func ApplyLayout(cfg Config, l Layout) Config {
	out := cfg
	out.Style = l.Style
	return out
}

// UnmarshalJSON 以默认样式为底解码，旧快照缺失的字段（例如新增的显示开关）取默认值。
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	base := plain(Config{Style: DefaultStyle()})
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}
	*c = Config(base)
	return nil
}

// UnmarshalJSON 与 Config 相同，缺失的样式字段取默认值。
func (l *Layout) UnmarshalJSON(data []byte) error {
	type plain Layout
	base := plain(Layout{Style: DefaultStyle()})
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}
	*l = Layout(base)
	return nil
}
