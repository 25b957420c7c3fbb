package errorx

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	plain := New(CodeNotFound, "资源不存在")
	if plain.Error() != "资源不存在" {
		t.Errorf("Error() = %q", plain.Error())
	}

	wrapped := Wrap(errors.New("record not found"), CodeNotFound, "用户不存在")
	if wrapped.Error() != "用户不存在: record not found" {
		t.Errorf("wrapped Error() = %q", wrapped.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrapf(cause, CodeUnavailable, "数据库查询失败 user=%d", 7)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should find the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap should return the cause")
	}
	if err.Msg != "数据库查询失败 user=7" {
		t.Errorf("Msg = %q", err.Msg)
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(CodePermissionDenied, "x")); got != CodePermissionDenied {
		t.Errorf("GetCode = %d, want %d", got, CodePermissionDenied)
	}

	// 多层包装后仍可提取最外层 CodeError 的码
	inner := New(CodeNotFound, "inner")
	outer := fmt.Errorf("outer: %w", inner)
	if got := GetCode(outer); got != CodeNotFound {
		t.Errorf("GetCode through fmt wrap = %d, want %d", got, CodeNotFound)
	}

	// 非 CodeError 回落到服务繁忙
	if got := GetCode(errors.New("plain")); got != CodeServerBusy {
		t.Errorf("GetCode for plain error = %d, want %d", got, CodeServerBusy)
	}
	if got := GetCode(nil); got != CodeServerBusy {
		t.Errorf("GetCode for nil = %d, want %d", got, CodeServerBusy)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(New(CodeNotFound, "x")) {
		t.Errorf("CodeNotFound error should match")
	}
	if !IsNotFound(errors.New("record not found")) {
		t.Errorf("gorm-style message should match")
	}
	if IsNotFound(New(CodeUnavailable, "x")) {
		t.Errorf("other codes should not match")
	}
	if IsNotFound(nil) {
		t.Errorf("nil should not match")
	}
}

func TestPredefinedErrors(t *testing.T) {
	var codeErr *CodeError
	if !errors.As(ErrPermissionDenied, &codeErr) || codeErr.Code != CodePermissionDenied {
		t.Errorf("ErrPermissionDenied should carry its code")
	}
}
