package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ByLCY/sigstudio/internal/config"
	"github.com/ByLCY/sigstudio/internal/editor"
	"github.com/ByLCY/sigstudio/internal/logging"
	"github.com/ByLCY/sigstudio/internal/server"
	"github.com/ByLCY/sigstudio/internal/store"
	"github.com/ByLCY/sigstudio/internal/suggest"
	"github.com/ByLCY/sigstudio/layout"
	"github.com/ByLCY/sigstudio/preset"
	"github.com/ByLCY/sigstudio/renderer"
	canvasrenderer "github.com/ByLCY/sigstudio/renderer/canvas"
	htmlrenderer "github.com/ByLCY/sigstudio/renderer/html"
	"github.com/ByLCY/sigstudio/signature"
)

const usage = `用法: sigstudio <命令> [参数]

命令:
  render   将签名 JSON 渲染为 html/svg/pdf/png
  serve    启动 HTTP 编辑服务
  suggest  为业务类型生成页脚关键词
  presets  导出或检查布局预设 (export | check <文件>)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "render":
		err = renderCmd(args)
	case "serve":
		err = serveCmd(args)
	case "suggest":
		err = suggestCmd(args)
	case "presets":
		err = presetsCmd(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "未知命令 %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s 失败: %v", cmd, err)
	}
}

func renderCmd(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	input := fs.String("in", "", "签名 JSON 路径，为空时使用默认签名")
	output := fs.String("out", "output/signature.html", "输出路径")
	format := fs.String("format", "", "输出格式，为空时按输出文件扩展名判断")
	presetName := fs.String("preset", "", "渲染前套用的布局预设")
	minify := fs.Bool("minify", false, "压缩 HTML 输出")
	debug := fs.String("debug", "", "布局调试 JSON 输出路径")
	dpmm := fs.Float64("dpmm", 0, "PNG 分辨率（像素/毫米）")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := signature.Default()
	baseDir := "."
	if *input != "" {
		loaded, err := readConfig(*input)
		if err != nil {
			return err
		}
		cfg = loaded
		baseDir = filepath.Dir(*input)
	}
	if *presetName != "" {
		p, ok := preset.Lookup(*presetName)
		if !ok {
			return fmt.Errorf("未知的预设 %q（可选：%s）", *presetName, strings.Join(preset.Names(), ", "))
		}
		cfg = signature.ApplyLayout(cfg, p)
	}

	f := *format
	if f == "" {
		f = strings.TrimPrefix(filepath.Ext(*output), ".")
	}
	outFormat, err := renderer.ParseFormat(f)
	if err != nil {
		return err
	}
	return run(cfg, *output, *debug, outFormat, htmlrenderer.Options{Minify: *minify},
		canvasrenderer.NewRenderer(canvasrenderer.Options{Format: outFormat, BaseDir: baseDir, DPMM: *dpmm}))
}

func readConfig(path string) (signature.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return signature.Config{}, fmt.Errorf("无法读取签名文件 %s: %w", path, err)
	}
	var cfg signature.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return signature.Config{}, fmt.Errorf("解析签名 JSON 失败: %w", err)
	}
	return cfg, nil
}

// run 串联布局与渲染。canvas 同时负责文本测量。
func run(cfg signature.Config, outputPath, debugPath string, format renderer.Format, htmlOpts htmlrenderer.Options, cv *canvasrenderer.Renderer) error {
	if cv == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	result := layout.Build(cfg, layout.BuildOptions{Typesetter: cv, Images: cv})

	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return err
		}
	}

	var r renderer.Renderer = cv
	if format == renderer.FormatHTML {
		r = htmlrenderer.New(htmlOpts)
	}
	data, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 %s 失败: %w", format, err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	fmt.Printf("已生成 %s：%s\n", strings.ToUpper(string(format)), outputPath)
	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func serveCmd(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	envFile := fs.String("env", "", ".env 文件路径，为空时尝试当前目录")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*envFile)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("打开存储失败: %w", err)
	}
	defer func() {
		if err := closeKV(); err != nil {
			logger.Warn("关闭存储失败", "error", err)
		}
	}()

	sg, err := suggest.New(ctx, cfg.Suggest, logger)
	if err != nil {
		return fmt.Errorf("初始化建议服务失败: %w", err)
	}

	ed := editor.New(store.NewRepository(kv, logger), editor.Options{
		Suggester: sg,
		Canvas: canvasrenderer.NewRenderer(canvasrenderer.Options{
			BaseDir: cfg.Render.AssetsDir,
			DPMM:    cfg.Render.DPMM,
		}),
		HTML:         htmlrenderer.Options{FontFamily: cfg.Render.FontFamily},
		LogoMaxBytes: cfg.Logo.MaxBytes,
		Logger:       logger,
	})
	if err := ed.Open(ctx); err != nil {
		return fmt.Errorf("加载签名失败: %w", err)
	}
	logger.Info("editor ready",
		"store", cfg.Store.Driver,
		"suggest", cfg.Suggest.Provider,
		"profiles", len(ed.Profiles()),
		"layouts", len(ed.Layouts()),
	)

	return server.New(ed, logger, cfg.Logo.MaxBytes).Run(ctx, cfg.HTTP)
}

func loadConfig(envFile string) (config.Config, error) {
	if envFile != "" {
		return config.Load(envFile)
	}
	return config.Load()
}

func suggestCmd(args []string) error {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	businessType := fs.String("type", "", "业务类型，例如“agence immobilière”")
	envFile := fs.String("env", "", ".env 文件路径")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*businessType) == "" {
		return suggest.ErrEmptyBusinessType
	}
	cfg, err := loadConfig(*envFile)
	if err != nil {
		return err
	}
	logger := logging.NewWithWriter(cfg.Logging, os.Stderr)
	ctx := context.Background()
	sg, err := suggest.New(ctx, cfg.Suggest, logger)
	if err != nil {
		return err
	}
	out, err := sg.Suggest(ctx, *businessType)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func presetsCmd(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("缺少子命令 (export | check <文件>)")
	}
	switch args[0] {
	case "export":
		fs := flag.NewFlagSet("presets export", flag.ExitOnError)
		output := fs.String("out", "", "输出路径，为空时写到标准输出")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		var w io.Writer = os.Stdout
		if *output != "" {
			f, err := os.Create(*output)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		return preset.Encode(w, preset.Builtin())
	case "check":
		if len(args) < 2 {
			return fmt.Errorf("缺少预设文件路径")
		}
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		layouts, err := preset.Load(args[1], f)
		if err != nil {
			return err
		}
		for _, l := range layouts {
			fmt.Printf("%s\t%s\t%s\n", l.ID, l.Name, l.LayoutMode)
		}
		return nil
	default:
		return fmt.Errorf("未知的子命令 %q", args[0])
	}
}
