package service

import (
	"errors"
	"fmt"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
	ServiceUnavailable  = 503
)

// Kind 错误分类，调用方据此决定如何呈现
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindStoreUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStoreUnavailable:
		return "store_unavailable"
	default:
		return "unknown"
	}
}

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrContentEmpty        = errors.New("内容不能为空")
	ErrContentTooLong      = errors.New("内容超出长度限制")
	ErrReportTargetMissing = errors.New("举报对象缺失")
	ErrReportReasonEmpty   = errors.New("举报理由不能为空")
	ErrFileNotSupported    = errors.New("不支持的文件类型")
	ErrFileTooLarge        = errors.New("文件过大")
	ErrUnauthenticated     = errors.New("请先登录")
	ErrForbidden           = errors.New("权限不足")
	ErrPostNotFound        = errors.New("帖子不存在")
	ErrPostCommentNotFound = errors.New("评论不存在")
	ErrActionDuplicate     = errors.New("重复操作")
	ErrStoreUnavailable    = errors.New("存储暂不可用，请稍后重试")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

type errorMeta struct {
	kind Kind
	code int
}

var errorMetas = map[error]errorMeta{
	ErrParamInvalid:        {KindValidation, BadRequest},
	ErrContentEmpty:        {KindValidation, BadRequest},
	ErrContentTooLong:      {KindValidation, BadRequest},
	ErrReportTargetMissing: {KindValidation, BadRequest},
	ErrReportReasonEmpty:   {KindValidation, BadRequest},
	ErrFileNotSupported:    {KindValidation, BadRequest},
	ErrFileTooLarge:        {KindValidation, BadRequest},
	ErrUnauthenticated:     {KindUnauthenticated, Unauthorized},
	ErrForbidden:           {KindForbidden, Forbidden},
	ErrPostNotFound:        {KindNotFound, NotFound},
	ErrPostCommentNotFound: {KindNotFound, NotFound},
	ErrActionDuplicate:     {KindConflict, Conflict},
	ErrStoreUnavailable:    {KindStoreUnavailable, ServiceUnavailable},
	UnExpectedError:        {KindUnknown, InternalServerError},
}

// ErrorMap 业务错误到响应码
var ErrorMap = func() map[error]int {
	m := make(map[error]int, len(errorMetas))
	for err, meta := range errorMetas {
		m[err] = meta.code
	}
	return m
}()

// KindOf 返回错误所属分类，支持包装过的错误
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for sentinel, meta := range errorMetas {
		if errors.Is(err, sentinel) {
			return meta.kind
		}
	}
	return KindUnknown
}

// CodeOf 返回错误对应的响应码，未登记的错误返回 false
func CodeOf(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return 0, false
}

// StoreError 存储层失败，保留原始错误并归类为 ErrStoreUnavailable
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s", ErrStoreUnavailable.Error(), e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// storeErr 包装存储错误，nil 原样返回
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
