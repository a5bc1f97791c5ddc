package core

import (
	"errors"
	"fmt"
)

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX），可穿透 fmt.Errorf("%w") 包装
//
// 使用场景：
//   - 数据集错误：EMPTY_DATASET
//   - 阈值错误：INVALID_THRESHOLD
//   - 规则生成时支持度查找失败：INCONSISTENT_STATE（程序缺陷信号，不是用户错误）
//   - 输入边界错误：INVALID_INPUT
type DomainError struct {
	Code    string // 错误代码（如 "EMPTY_DATASET", "INVALID_THRESHOLD"）
	Message string // 错误消息
	Module  string // 模块名称（如 "transaction", "mining", "rule"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is 让 errors.Is 按 Module + Code 比较，而不是按指针。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && (t.Module == "" || e.Module == t.Module)
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeEmptyDataset      = "EMPTY_DATASET"      // 归一化后没有有效事务
	ErrorCodeInvalidThreshold  = "INVALID_THRESHOLD"  // 支持度/置信度不在 (0,1]
	ErrorCodeInconsistentState = "INCONSISTENT_STATE" // 反单调性被破坏
	ErrorCodeNotFound          = "NOT_FOUND"          // 资源不存在
	ErrorCodeNotSupported      = "NOT_SUPPORTED"      // 操作不支持
	ErrorCodeInvalidInput      = "INVALID_INPUT"      // 输入无效
)

// 模块名称常量
const (
	ModuleTransaction = "transaction"
	ModuleMining      = "mining"
	ModuleRule        = "rule"
	ModuleRecommend   = "recommend"
	ModuleIngest      = "ingest"
	ModuleStore       = "store"
	ModuleConfig      = "config"
)

// ErrEmptyDataset 表示归一化后没有任何非空事务。
var ErrEmptyDataset = NewDomainError(ModuleTransaction, ErrorCodeEmptyDataset, "transaction: no valid transactions after normalization")

// NewInvalidThreshold 创建阈值越界错误，name 为参数名（min_support / min_confidence）。
func NewInvalidThreshold(name string, value float64) *DomainError {
	return NewDomainError(ModuleConfig, ErrorCodeInvalidThreshold,
		fmt.Sprintf("%s must be in (0,1], got %v", name, value))
}

// NewInconsistentState 创建状态不一致错误。
func NewInconsistentState(module, format string, args ...any) *DomainError {
	return NewDomainError(module, ErrorCodeInconsistentState, fmt.Sprintf(format, args...))
}

// NewInvalidInput 创建输入边界错误。
func NewInvalidInput(format string, args ...any) *DomainError {
	return NewDomainError(ModuleIngest, ErrorCodeInvalidInput, fmt.Sprintf(format, args...))
}

// ValidateThreshold 检查阈值是否在 (0,1] 区间（NaN 视为越界）。
func ValidateThreshold(name string, value float64) error {
	if !(value > 0 && value <= 1) {
		return NewInvalidThreshold(name, value)
	}
	return nil
}

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsEmptyDataset 检查错误是否为 EMPTY_DATASET
func IsEmptyDataset(err error) bool { return hasCode(err, ErrorCodeEmptyDataset) }

// IsInvalidThreshold 检查错误是否为 INVALID_THRESHOLD
func IsInvalidThreshold(err error) bool { return hasCode(err, ErrorCodeInvalidThreshold) }

// IsInconsistentState 检查错误是否为 INCONSISTENT_STATE
func IsInconsistentState(err error) bool { return hasCode(err, ErrorCodeInconsistentState) }

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool { return hasCode(err, ErrorCodeNotSupported) }
