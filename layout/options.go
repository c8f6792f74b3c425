package layout

// BuildOptions 配置布局阶段所需的依赖，例如排版后端。两者均可为空。
type BuildOptions struct {
	Typesetter Typesetter
	Images     ImageMeasurer
}

// Typesetter 测量单行文本在给定字体与字号（px）下的宽度（px）。
type Typesetter interface {
	MeasureText(content string, font FontResource, fontSize float64) (float64, error)
}

// ImageMeasurer 返回图片的固有宽高，用于推导 logo 的纵横比；无法得知时 ok 为 false。
type ImageMeasurer interface {
	ImageSize(src string) (width, height float64, ok bool)
}
