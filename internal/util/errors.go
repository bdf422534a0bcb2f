package util

import (
	"cbt_portal_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppError is a failure the client is allowed to see.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func BadRequestError(message string) *AppError {
	return NewError(http.StatusBadRequest, message)
}

func UnprocessableError(message string) *AppError {
	return NewError(http.StatusUnprocessableEntity, message)
}

func NotFoundError(message string) *AppError {
	return NewError(http.StatusNotFound, message)
}

func ConflictError(message string) *AppError {
	return NewError(http.StatusConflict, message)
}

func ForbiddenError(message string) *AppError {
	return NewError(http.StatusForbidden, message)
}

var (
	ErrUserNotFound        = NotFoundError("User not found")
	ErrUsernameTaken       = ConflictError("Username is already taken")
	ErrEmailRegistered     = ConflictError("Email is already registered")
	ErrMatricTaken         = ConflictError("Matric number is already registered")
	ErrInvalidCredentials  = NewError(http.StatusUnauthorized, "Invalid username or password")
	ErrAccountDisabled     = ForbiddenError("Account is disabled")
	ErrPermissionDenied    = ForbiddenError("You do not have permission to perform this action")
	ErrUserHasDependents   = ConflictError("User has questions, results or assignments and cannot be deleted")
	ErrInvalidRole         = BadRequestError("Invalid role")
	ErrInvalidClassLevel   = UnprocessableError("Invalid class level")
	ErrWrongPassword       = BadRequestError("Current password is incorrect")
	ErrSubjectNotFound     = NotFoundError("Subject not found")
	ErrTermNotFound        = NotFoundError("Term not found")
	ErrSessionNotFound     = NotFoundError("Session not found")
	ErrAcademicInUse       = ConflictError("Record is referenced by questions or test codes and cannot be deleted")
	ErrAssignmentExists    = ConflictError("Teacher is already assigned to this subject and class")
	ErrAssignmentNotFound  = NotFoundError("Assignment not found")
	ErrNotATeacher         = UnprocessableError("User is not a teacher")
	ErrNotAssigned         = ForbiddenError("You are not assigned to this subject, class, term and session")
	ErrQuestionNotFound    = NotFoundError("Question not found")
	ErrQuestionInUse       = ConflictError("Question has been answered in a test and cannot be modified or deleted")
	ErrQuestionInLiveTest  = ConflictError("Question type or scope cannot change while a test covering it is in progress")
	ErrInvalidCSVHeader    = BadRequestError("CSV header must be: question_text,option_a,option_b,option_c,option_d,correct_answer")
	ErrEmptyCSV            = BadRequestError("CSV file is empty")
	ErrFileTooLarge        = BadRequestError("File is too large")
	ErrTestCodeNotFound    = NotFoundError("Invalid test code")
	ErrTestCodeInactive    = ForbiddenError("This test code is not active")
	ErrTestCodeNotActive   = ForbiddenError("This test code has not been activated")
	ErrTestCodeUsed        = ConflictError("This test code has already been used")
	ErrTestCodeInUse       = ConflictError("This test code is currently in use")
	ErrTestCodeExpired     = NewError(http.StatusGone, "This test code has expired")
	ErrTestAlreadyTaken    = ConflictError("You have already taken this test")
	ErrInsufficientBank    = UnprocessableError("Insufficient questions available for this test")
	ErrTimeLimitExceeded   = UnprocessableError("Submission rejected: time limit exceeded")
	ErrNotClaimed          = ConflictError("This test code is not claimed by you")
	ErrBatchNotFound       = NotFoundError("Batch not found")
	ErrBatchHasUsedCodes   = ConflictError("Batch has used test codes and cannot be deleted")
	ErrCodeCountOutOfRange = UnprocessableError("code_count must be between 1 and 100")
	ErrCodeGeneration      = errors.New("could not generate a unique test code")
)

// HandleError writes err as an envelope. AppErrors keep their status and
// message; anything unexpected is logged and reported as "failed to <action>".
func HandleError(c *gin.Context, err error, action string) {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		Error(c, appErr.Status, appErr.Message)
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		Conflict(c, "Duplicate record")
	default:
		logger.Log.Error(action, zap.Error(err), zap.String("path", c.FullPath()))
		Error(c, http.StatusInternalServerError, "Failed to "+action)
	}
}
