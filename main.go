package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ByLCY/textbox/dsl"
	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/renderer"
	canvasrenderer "github.com/ByLCY/textbox/renderer/canvas"
	"github.com/ByLCY/textbox/renderer/raster"
	"github.com/ByLCY/textbox/scene"
)

// config 汇总命令行参数。
type config struct {
	input   string
	output  string
	format  string
	backend string
	data    any
	debug   string

	// 未指定 -in 时使用演示页面
	text   string
	hAlign string
	vAlign string
	rtl    bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.input, "in", "", "场景文件路径（为空时渲染演示页面）")
	flag.StringVar(&cfg.output, "out", "output/textbox.png", "输出文件路径")
	flag.StringVar(&cfg.format, "format", "", "输出格式 png/pdf/svg（默认取输出文件扩展名）")
	flag.StringVar(&cfg.backend, "backend", "canvas", "渲染后端 canvas/raster")
	flag.StringVar(&cfg.debug, "debug", "", "排版调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到场景文本的 JSON 数据")
	flag.StringVar(&cfg.text, "text", scene.DemoText, "演示页面的文本")
	flag.StringVar(&cfg.hAlign, "halign", "", "演示页面的水平对齐 near/start/center/end/far/right")
	flag.StringVar(&cfg.vAlign, "valign", "", "演示页面的垂直对齐 near/center/far")
	flag.BoolVar(&cfg.rtl, "rtl", false, "演示页面使用从右到左的书写方向")
	watch := flag.Bool("watch", false, "场景文件变化时重新渲染")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	layout.SetLogger(logger)

	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &cfg.data); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	if err := run(cfg); err != nil {
		log.Fatalf("渲染失败: %v", err)
	}
	fmt.Printf("已生成：%s\n", cfg.output)

	if *watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := watchAndRender(ctx, cfg, logger); err != nil {
			log.Fatalf("监听失败: %v", err)
		}
	}
}

// run 串联解析、场景构建、渲染与输出。
func run(cfg config) error {
	sc, err := loadScene(cfg)
	if err != nil {
		return err
	}

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	out, err := r.Render(sc)
	if err != nil {
		return fmt.Errorf("渲染场景失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(cfg.output, out.Data, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}

	if cfg.debug != "" {
		if err := writeDebug(sc, out, cfg.debug); err != nil {
			return err
		}
	}
	return nil
}

func loadScene(cfg config) (*scene.Scene, error) {
	if cfg.input == "" {
		return scene.Demo(cfg.text, cfg.hAlign, cfg.vAlign, cfg.rtl), nil
	}
	file, err := os.Open(cfg.input)
	if err != nil {
		return nil, fmt.Errorf("无法打开场景文件 %s: %w", cfg.input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析场景失败: %w", err)
	}
	sc, err := scene.Build(doc, cfg.data)
	if err != nil {
		return nil, fmt.Errorf("构建场景失败: %w", err)
	}
	return sc, nil
}

func newRenderer(cfg config) (renderer.Renderer, error) {
	format := cfg.format
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(cfg.output), ".")
	}
	baseDir := "."
	if cfg.input != "" {
		baseDir = filepath.Dir(cfg.input)
	}
	switch strings.ToLower(cfg.backend) {
	case "", "canvas":
		return canvasrenderer.NewRenderer(baseDir, format)
	case "raster":
		if format != "" && !strings.EqualFold(format, "png") {
			return nil, fmt.Errorf("raster 后端只支持 png，收到 %s", format)
		}
		return raster.NewRenderer(baseDir), nil
	default:
		return nil, fmt.Errorf("未知的渲染后端 %s", cfg.backend)
	}
}

func writeDebug(sc *scene.Scene, out *renderer.Output, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := scene.WriteDebugJSON(sc, out.Layouts, path); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
