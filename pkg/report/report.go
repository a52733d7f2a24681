package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"percolation/pkg/percstats"
)

// Result 是一次统计的快照，和具体的 Stats 实现解耦
type Result struct {
	GridSize int
	Trials   int
	Seed     int64
	Mean     float64
	StdDev   float64
	Lo       float64
	Hi       float64
	Elapsed  time.Duration
}

// FromStats 从统计结果生成快照
func FromStats(s *percstats.Stats, elapsed time.Duration) Result {
	return Result{
		GridSize: s.GridSize(),
		Trials:   s.Trials(),
		Seed:     s.Seed(),
		Mean:     s.Mean(),
		StdDev:   s.StdDev(),
		Lo:       s.ConfidenceLo(),
		Hi:       s.ConfidenceHi(),
		Elapsed:  elapsed,
	}
}

type JSONFormat string

const (
	JSONFormatOne JSONFormat = "one"
	JSONFormatMul JSONFormat = "mul"
)

// 为了让 VarP 接收自定义类型，实现 flag.Value 接口(String Set Type)即可：
func (f *JSONFormat) String() string { return string(*f) }

func (f *JSONFormat) Set(val string) error {
	switch val {
	case string(JSONFormatMul), string(JSONFormatOne):
		*f = JSONFormat(val)
		return nil
	default:
		return fmt.Errorf("无效的 jsonformat 值: %s", val)
	}
}

func (f *JSONFormat) Type() string {
	return "jsonformat" // 这个字符串用于帮助文档与类型提示
}

type Formatter interface {
	Format(w io.Writer, r Result, jsonFormat JSONFormat) error
}

type TextFormatter struct{}

type JSONFormatter struct{}

var formatters = map[string]Formatter{
	"txt":  TextFormatter{},
	"json": JSONFormatter{},
}

// Lookup 根据名字取输出格式
func Lookup(name string) (Formatter, error) {
	f, ok := formatters[name]
	if !ok {
		return nil, fmt.Errorf("不支持的格式: %s (txt/json)", name)
	}
	return f, nil
}

// 标签左对齐，等号对齐
func (TextFormatter) Format(w io.Writer, r Result, _ JSONFormat) error {
	rows := [][2]string{
		{"grid", fmt.Sprintf("%d x %d (%s sites)", r.GridSize, r.GridSize,
			humanize.Comma(int64(r.GridSize)*int64(r.GridSize)))},
		{"trials", humanize.Comma(int64(r.Trials))},
		{"mean", fmt.Sprintf("%v", r.Mean)},
		{"stddev", fmt.Sprintf("%v", r.StdDev)},
		{"95% confidence interval", fmt.Sprintf("[%v, %v]", r.Lo, r.Hi)},
	}

	width := 0
	for _, row := range rows {
		width = max(width, runewidth.StringWidth(row[0]))
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(runewidth.FillRight(row[0], width))
		b.WriteString(" = ")
		b.WriteString(row[1])
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// 逐个字段写入，字段顺序固定
func (JSONFormatter) Format(w io.Writer, r Result, jsonFormat JSONFormat) error {
	fields := []struct {
		path string
		val  any
	}{
		{"gridSize", r.GridSize},
		{"trials", r.Trials},
		{"seed", r.Seed},
		{"mean", r.Mean},
		{"stddev", r.StdDev},
		{"confidence.lo", r.Lo},
		{"confidence.hi", r.Hi},
		{"elapsedMs", r.Elapsed.Milliseconds()},
	}

	data := []byte("{}")
	var err error
	for _, f := range fields {
		data, err = sjson.SetBytes(data, f.path, f.val)
		if err != nil {
			return fmt.Errorf("写入字段 %s 失败: %w", f.path, err)
		}
	}

	switch jsonFormat {
	case JSONFormatOne:
		data = append(pretty.Ugly(data), '\n')
	case JSONFormatMul, "":
		data = pretty.PrettyOptions(data, &pretty.Options{Width: 80, Indent: "    "})
	default:
		return fmt.Errorf("不支持的选项内容: %s", jsonFormat)
	}

	_, err = w.Write(data)
	return err
}
