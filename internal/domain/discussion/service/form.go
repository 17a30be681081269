package service

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
)

// 通用错误提示
const (
	MsgSignInRequired   = "You must sign in to do this."
	MsgSomethingWrong   = "Something went wrong..."
	MsgRevalidateFailed = "Failed to revalidate topic"
)

// MinCommentLength 评论内容最少字符数（按 rune 计）
const MinCommentLength = 3

// Outcome 评论提交结果分类
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeInvalid         Outcome = "invalid"
	OutcomeUnauthenticated Outcome = "unauthenticated"
	OutcomePersistFailed   Outcome = "persist_failed"
	OutcomeRevalidateFail  Outcome = "revalidate_failed"
)

// FormState 表单提交结果
// 字段错误、通用错误、success 三者只会出现一个
type FormState struct {
	Content []string `json:"content,omitempty"`
	General []string `json:"_general,omitempty"`
	Success bool     `json:"success,omitempty"`

	outcome Outcome
}

// Outcome 结果分类，用于映射 HTTP 状态码和指标
func (s FormState) Outcome() Outcome {
	return s.outcome
}

func fieldState(errs FieldErrors) FormState {
	return FormState{Content: errs["content"], outcome: OutcomeInvalid}
}

func generalState(outcome Outcome, msg string) FormState {
	return FormState{General: []string{msg}, outcome: outcome}
}

func successState() FormState {
	return FormState{Success: true, outcome: OutcomeSuccess}
}

// CommentInput 校验通过的评论输入
type CommentInput struct {
	Content string
}

// FieldErrors 字段名 -> 错误信息列表
type FieldErrors map[string][]string

// commentForm 表单原始值，指针用于区分字段缺失和空串
type commentForm struct {
	Content *string `validate:"required,min=3"`
}

var validate = validator.New()

// ValidateCommentInput 校验表单，maxLength <= 0 时不限制长度
func ValidateCommentInput(form url.Values, maxLength int) (CommentInput, FieldErrors) {
	var f commentForm
	if values, ok := form["content"]; ok && len(values) > 0 {
		f.Content = &values[0]
	}

	if err := validate.Struct(f); err != nil {
		var msgs []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				msgs = append(msgs, contentMessage(fe.Tag(), fe.Param()))
			}
		} else {
			msgs = append(msgs, err.Error())
		}
		return CommentInput{}, FieldErrors{"content": msgs}
	}

	if maxLength > 0 {
		if err := validate.Var(*f.Content, fmt.Sprintf("max=%d", maxLength)); err != nil {
			return CommentInput{}, FieldErrors{"content": {contentMessage("max", fmt.Sprint(maxLength))}}
		}
	}

	return CommentInput{Content: *f.Content}, nil
}

func contentMessage(tag, param string) string {
	switch tag {
	case "required":
		return "Expected string, received null"
	case "min":
		return fmt.Sprintf("String must contain at least %s character(s)", param)
	case "max":
		return fmt.Sprintf("String must contain at most %s character(s)", param)
	default:
		return "Invalid input"
	}
}
