package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"percolation/pkg/errorutil"
	"percolation/pkg/logutil"
	"percolation/pkg/percolation"
	"percolation/pkg/percstats"
	"percolation/pkg/report"
)

type StatsOptions struct {
	Seed       int64
	Format     string
	JSONFormat report.JSONFormat
	Profile    string
}

// 解析整数位置参数，不是整数属于用法错误；非正数交给下层报数据错误
func parseCount(name, arg string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errorutil.NewExitErrorWithMessage(
			errorutil.CodeInvalidUsage, fmt.Sprintf("%s 必须是整数: %q", name, arg), err)
	}
	return v, nil
}

// 位置参数个数不对属于用法错误
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
		}
		return nil
	}
}

// 把库里面的错误翻译成带退出码的错误
func wrapDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, percstats.ErrInvalidArgument), errors.Is(err, percolation.ErrInvalidArgument):
		return errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidData, "参数值非法", err)
	default:
		return errorutil.NewExitError(errorutil.CodeInternalErr, err)
	}
}

func startProfile(kind string) (interface{ Stop() }, error) {
	switch kind {
	case "":
		return nil, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet), nil
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet), nil
	default:
		return nil, errorutil.NewExitErrorWithMessage(
			errorutil.CodeInvalidUsage, fmt.Sprintf("不支持的 profile 类型: %s (cpu/mem)", kind), nil)
	}
}

// stats 子命令
func StatsCmd() *cobra.Command {
	opts := &StatsOptions{JSONFormat: report.JSONFormatMul}

	cmd := &cobra.Command{
		Use:   "stats N T",
		Short: "在 N×N 网格上做 T 次独立试验，输出阈值的均值、标准差和 95% 置信区间",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseCount("N", args[0])
			if err != nil {
				return err
			}
			trials, err := parseCount("T", args[1])
			if err != nil {
				return err
			}

			formatter, err := report.Lookup(opts.Format)
			if err != nil {
				return errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
			}

			prof, err := startProfile(opts.Profile)
			if err != nil {
				return err
			}
			if prof != nil {
				defer prof.Stop()
			}

			statsOpts := []percstats.Option{}
			// 没有显式指定种子时用时间作为种子
			if cmd.Flags().Changed("seed") {
				statsOpts = append(statsOpts, percstats.WithSeed(opts.Seed))
			}

			start := time.Now()
			stats, err := percstats.New(n, trials, statsOpts...)
			if err != nil {
				return wrapDomainError(err)
			}
			elapsed := time.Since(start)
			logutil.Info("stats n=%d trials=%d seed=%d 用时 %s", n, trials, stats.Seed(), elapsed)

			if err := formatter.Format(cmd.OutOrStdout(), report.FromStats(stats, elapsed), opts.JSONFormat); err != nil {
				return errorutil.NewExitError(errorutil.CodeIOError, err)
			}
			return nil
		},
	}

	cmd.Flags().Int64VarP(&opts.Seed, "seed", "s", 0, "随机数种子(不指定时使用当前时间)")
	cmd.Flags().StringVarP(&opts.Format, "format", "t", "txt", "输出格式：txt/json")
	cmd.Flags().VarP(&opts.JSONFormat, "jsonformat", "F", "输出的 JSON 的格式(mul|one)，代表多行或者一行")
	cmd.Flags().StringVarP(&opts.Profile, "profile", "p", "", "性能分析(cpu/mem)，结果写到当前目录")

	return cmd
}

// trial 子命令，只做一次试验
func TrialCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "trial N",
		Short: "在 N×N 网格上做一次试验，输出渗透时打开的站点数和阈值",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseCount("N", args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}

			trial, err := percstats.RunTrial(n, percstats.NewRNG(seed))
			if err != nil {
				return wrapDomainError(err)
			}
			logutil.Info("trial n=%d seed=%d open=%d", n, seed, trial.OpenSites)

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "open sites = %s / %s\nthreshold  = %v\n",
				humanize.Comma(int64(trial.OpenSites)), humanize.Comma(int64(n)*int64(n)), trial.Threshold)
			if err != nil {
				return errorutil.NewExitError(errorutil.CodeIOError, err)
			}
			return nil
		},
	}

	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "随机数种子(不指定时使用当前时间)")
	return cmd
}
