package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// LogLevel 日志级别，实现了 pflag.Value 接口，可以直接挂到 cobra 的 flag 上
type LogLevel int

// 定义日志级别
const (
	DEBUG LogLevel = iota // 0
	INFO                  // 1
	WARN                  // 2
	ERROR                 // 3
)

// 定义日志级别映射字符串
var LOG_LEVELS = map[string]LogLevel{
	"DEBUG": DEBUG,
	"INFO":  INFO,
	"WARN":  WARN,
	"ERROR": ERROR,
}

var (
	logger       *log.Logger
	logFile      *os.File
	once         sync.Once
	mu           sync.Mutex
	currentLevel = INFO // 默认日志级别
)

func (l LogLevel) String() string {
	for name, v := range LOG_LEVELS {
		if v == l {
			return name
		}
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

func (l *LogLevel) Set(val string) error {
	level, err := ParseLogLevel(val)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

func (l *LogLevel) Type() string {
	return "loglevel"
}

// ParseLogLevel 解析日志级别字符串，不区分大小写
func ParseLogLevel(val string) (LogLevel, error) {
	level, ok := LOG_LEVELS[strings.ToUpper(strings.TrimSpace(val))]
	if !ok {
		return INFO, fmt.Errorf("无效的日志级别: %s (DEBUG/INFO/WARN/ERROR)", val)
	}
	return level, nil
}

// InitLogger 初始化日志，允许指定输出目标（stdout 或 文件）
// 只有第一次调用生效
func InitLogger(output string, level LogLevel) {
	once.Do(func() {
		var w io.Writer
		if output == "stdout" || output == "" {
			logFile = os.Stdout
			w = logFile
		} else {
			f, err := os.OpenFile(
				// 以追加模式打开日志文件，不会覆盖已有内容
				output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				// 日志文件打不开时退回到标准错误，不影响主流程
				fmt.Fprintf(os.Stderr, "无法创建日志文件 %s: %v\n", output, err)
				w = os.Stderr
			} else {
				logFile = f
				w = f
			}
		}
		mu.Lock()
		logger = log.New(w, "", log.LstdFlags)
		currentLevel = level // 设置日志级别
		mu.Unlock()
	})
}

// SetOutput 直接替换输出目标，测试时用来捕获日志
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", 0)
}

// 设置日志级别
func SetLogLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
}

// logMessage 记录日志，**仅输出符合当前级别的日志**
func logMessage(level LogLevel, msg string, args ...any) {
	mu.Lock()
	uninit := logger == nil
	mu.Unlock()
	if uninit {
		InitLogger("stdout", INFO) // 默认输出到控制台
	}

	mu.Lock()
	defer mu.Unlock()
	if level < currentLevel { // 值越小打印得越多
		return
	}
	_, file, line, ok := runtime.Caller(2) // 获取真正调用的文件+行号
	if !ok {
		file = "???"
	}
	logger.Printf("[%s:%d] %s", filepath.Base(file), line, fmt.Sprintf(msg, args...))
}

// Debug 记录 DEBUG 日志
func Debug(msg string, args ...any) {
	// 确保参数被展开在传入进去
	logMessage(DEBUG, "[DBG] "+msg, args...)
}

// Info 记录 INFO 日志
func Info(msg string, args ...any) {
	logMessage(INFO, "[INFO] "+msg, args...)
}

// Warn 记录 WARN 日志
func Warn(msg string, args ...any) {
	logMessage(WARN, "[WARN] "+msg, args...)
}

// Error 记录 ERROR 日志
func Error(msg string, args ...any) {
	logMessage(ERROR, "[ERR] "+msg, args...)
}

// 关闭日志文件（如果有的话）
func CloseLogger() error {
	if logFile != nil && logFile != os.Stdout {
		return logFile.Close()
	}
	return nil
}
