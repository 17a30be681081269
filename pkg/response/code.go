package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 用户模块错误 100xx
	ErrUserExists   = 10001
	ErrUserNotFound = 10002
	ErrAuthFailed   = 10003
	ErrTokenInvalid = 10004
	ErrNoPermission = 10005
	ErrNotSignedIn  = 10006

	// 讨论模块错误 200xx
	ErrTopicNotFound    = 20001
	ErrPostNotFound     = 20002
	ErrCommentInvalid   = 20003
	ErrCommentFailed    = 20004
	ErrRevalidateFailed = 20005

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
