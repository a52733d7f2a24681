package main

import (
	"fmt"
	"os"

	"percolation/pkg/errorutil"
	"percolation/pkg/logutil"

	"github.com/spf13/cobra"
)

const TOOL_VERSION = "1.0.0+20261018"

func newRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:     "percolation",
		Short:   "用蒙特卡洛模拟估计 n×n 网格的渗透阈值",
		Version: TOOL_VERSION,
		Long: fmt.Sprintf(`percolation v%s 用并查集模拟 n×n 网格上的渗透系统

Examples:

1. 200×200 的网格做 100 次试验
percolation stats 200 100
grid                    = 200 x 200 (40,000 sites)
trials                  = 100
mean                    = 0.5929934999999997
stddev                  = 0.00876990421552567
95%% confidence interval = [0.5912745987737567, 0.5947124012262428]

2. 固定种子，输出一行 JSON
percolation stats 200 100 -s 42 -t json -F one

3. 只做一次试验
percolation trial 50
`, TOOL_VERSION),
	}

	var logFile string
	logLevel := logutil.WARN

	// 定义全局flag(屁股后面带P的函数才支持短选项)
	rootCmd.PersistentFlags().VarP(&logLevel, "log-level", "e", "日志等级(DEBUG/INFO/WARN/ERROR)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "l", "percolation.log", "日志文件名(stdout 表示标准输出)")
	// 阻止 Cobra 在命令参数错误时输出帮助
	rootCmd.SilenceUsage = true
	// 阻止Cobra自动打印RunEs返回的错误内容
	rootCmd.SilenceErrors = true
	// flag 解析失败也算用法错误，子命令会继承
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
	})

	// PersistentPreRunE 回调，这个钩子会在用户的命令解析完成、flag 值填充后执行
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logutil.InitLogger(logFile, logLevel)
		return nil
	}

	rootCmd.AddCommand(StatsCmd())
	rootCmd.AddCommand(TrialCmd())
	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		logutil.Error("命令执行失败: %v", err)
		msg, code := errorutil.FormatErrorAndCode(err)
		fmt.Fprintln(os.Stderr, msg)
		logutil.CloseLogger()
		os.Exit(code)
	}

	// 不要用defer，因为defer是在函数返回前执行的，而不是os.Exit()执行前执行
	logutil.CloseLogger()
	os.Exit(0)
}
