package errorutil

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	CodeSuccess = 0 // 成功执行

	// 60–69: 用户输入或调用错误
	CodeInvalidUsage = 64 // 命令行用法错误（参数个数不对、不是整数等）
	CodeInvalidData  = 66 // 参数值非法（网格大小、试验次数不是正数或者太大）

	// 70–79: 程序自身错误
	CodeIOError     = 72 // 输出写入失败
	CodeInternalErr = 74 // 内部 bug、未分类的错误
)

// omitempty 的作用是空字段不出现
type ExitErrorWithCode struct {
	Code    int    `json:"code"`              // 退出码
	Message string `json:"message,omitempty"` // 可读消息
	Err     error  `json:"-"`
}

func (e *ExitErrorWithCode) Error() string {
	if e.Err != nil {
		if e.Message != "" {
			return e.Message + ": " + e.Err.Error()
		}
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Exit with code: %d", e.Code)
}

func (e *ExitErrorWithCode) Unwrap() error {
	return e.Err
}

func NewExitError(code int, err error) error {
	return &ExitErrorWithCode{Code: code, Err: err}
}

// 带错误消息的错误
func NewExitErrorWithMessage(code int, message string, err error) error {
	return &ExitErrorWithCode{Code: code, Message: message, Err: err}
}

// os.Exit(errorutil.ExitCodeFromError(err))
func ExitCodeFromError(err error) int {
	if err == nil {
		return CodeSuccess
	}
	var exitErr *ExitErrorWithCode
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return CodeInternalErr
}

// 判断当前的错误是否是带退出码的错误
func HasExitCode(err error) bool {
	var exitErr *ExitErrorWithCode
	return errors.As(err, &exitErr)
}

// 提取原始错误
func RootError(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

func (e *ExitErrorWithCode) JSON() string {
	type jsonErr struct {
		Code    int    `json:"code"`
		Message string `json:"message,omitempty"`
		Err     string `json:"error,omitempty"`
	}

	data := jsonErr{
		Code:    e.Code,
		Message: e.Message,
	}
	if e.Err != nil {
		data.Err = e.Err.Error()
	}
	jsonBytes, _ := json.Marshal(data)
	return string(jsonBytes)
}

// FormatErrorAndCode 返回错误的 JSON 描述和进程退出码
func FormatErrorAndCode(err error) (string, int) {
	var exitErr *ExitErrorWithCode
	if errors.As(err, &exitErr) {
		return exitErr.JSON(), exitErr.Code
	}
	// 构建一个临时 ExitErrorWithCode 对象，并直接调用其 JSON() 方法
	return (&ExitErrorWithCode{
		Code:    CodeInternalErr,
		Message: "未知错误",
		Err:     err,
	}).JSON(), CodeInternalErr
}
