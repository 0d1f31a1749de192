package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자 친화적 메시지
}

// ParseError 에러를 파싱하여 사용자 친화적인 메시지와 코드로 변환
// 보안상 민감한 정보는 숨기되, 사용자가 문제를 해결할 수 있는 정보 제공
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "서버 오류가 발생했습니다",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM 기본 에러
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL 에러 파싱

	// 2-1. Unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	// 2-3. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr)
	}

	// 3. 네트워크/연결 에러
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "외부 서비스 연결에 실패했습니다. 잠시 후 다시 시도해주세요",
		}
	}

	// 4. 기본 내부 서버 오류
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// parseDuplicateKeyError Unique constraint 위반 에러 파싱
func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// 이메일 중복
	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "이미 사용 중인 이메일입니다",
		}
	}

	// 쿠폰 코드 중복
	if strings.Contains(errLower, "coupons") || strings.Contains(errLower, "idx_coupons_code") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "이미 사용 중인 쿠폰 코드입니다",
		}
	}

	// 브랜드명 중복
	if strings.Contains(errLower, "brands") || strings.Contains(errLower, "idx_brands_name") {
		return ErrorInfo{
			Code:    BrandAlreadyExists,
			Message: "이미 등록된 브랜드입니다",
		}
	}

	// 이벤트 중복 참여
	if strings.Contains(errLower, "event_participations") {
		return ErrorInfo{
			Code:    EventAlreadyJoined,
			Message: "이미 참여한 이벤트입니다",
		}
	}

	// Primary key 중복
	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "이미 존재하는 데이터입니다. 다시 시도해주세요",
		}
	}

	// 기본 중복 메시지
	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "이미 존재하는 데이터입니다",
	}
}

// parseForeignKeyError Foreign key constraint 위반 에러 파싱
func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// 삭제 시 참조 중인 데이터가 있는 경우
	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		if strings.Contains(context, "brand") || strings.Contains(context, "브랜드") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "브랜드에 등록된 향수가 있어 삭제할 수 없습니다",
			}
		}
		if strings.Contains(context, "perfume") || strings.Contains(context, "향수") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "향수에 연결된 데이터가 있어 삭제할 수 없습니다",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "연결된 데이터가 있어 삭제할 수 없습니다",
		}
	}

	// 존재하지 않는 참조 데이터
	if strings.Contains(errLower, "user_id") || strings.Contains(errLower, "fk_users") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "존재하지 않는 사용자입니다",
		}
	}
	if strings.Contains(errLower, "perfume_id") || strings.Contains(errLower, "fk_perfumes") {
		return ErrorInfo{
			Code:    PerfumeNotFound,
			Message: "존재하지 않는 향수입니다",
		}
	}
	if strings.Contains(errLower, "brand_id") || strings.Contains(errLower, "fk_brands") {
		return ErrorInfo{
			Code:    BrandNotFound,
			Message: "존재하지 않는 브랜드입니다",
		}
	}
	if strings.Contains(errLower, "version_id") || strings.Contains(errLower, "fk_content_versions") {
		return ErrorInfo{
			Code:    ContentNotFound,
			Message: "존재하지 않는 콘텐츠 버전입니다",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "참조하는 데이터를 찾을 수 없습니다",
	}
}

// parseNotNullError Not null constraint 위반 에러 파싱
func parseNotNullError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "이메일은 필수 항목입니다"}
	}
	if strings.Contains(errLower, "password") {
		return ErrorInfo{Code: ValidationRequired, Message: "비밀번호는 필수 항목입니다"}
	}
	if strings.Contains(errLower, "title") {
		return ErrorInfo{Code: ValidationRequired, Message: "제목은 필수 항목입니다"}
	}
	if strings.Contains(errLower, "name") {
		return ErrorInfo{Code: ValidationRequired, Message: "이름은 필수 항목입니다"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "필수 항목이 누락되었습니다",
	}
}

// getNotFoundMessage context에 따른 Not Found 메시지
func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "perfume") || strings.Contains(contextLower, "향수") {
		return "향수를 찾을 수 없습니다"
	}
	if strings.Contains(contextLower, "brand") || strings.Contains(contextLower, "브랜드") {
		return "브랜드를 찾을 수 없습니다"
	}
	if strings.Contains(contextLower, "content") || strings.Contains(contextLower, "콘텐츠") {
		return "콘텐츠 버전을 찾을 수 없습니다"
	}
	if strings.Contains(contextLower, "coupon") || strings.Contains(contextLower, "쿠폰") {
		return "쿠폰을 찾을 수 없습니다"
	}
	if strings.Contains(contextLower, "event") || strings.Contains(contextLower, "이벤트") {
		return "이벤트를 찾을 수 없습니다"
	}
	if strings.Contains(contextLower, "order") || strings.Contains(contextLower, "주문") {
		return "주문을 찾을 수 없습니다"
	}
	if strings.Contains(contextLower, "inquiry") || strings.Contains(contextLower, "문의") {
		return "문의를 찾을 수 없습니다"
	}
	if strings.Contains(contextLower, "user") || strings.Contains(contextLower, "사용자") {
		return "사용자를 찾을 수 없습니다"
	}

	return "요청한 데이터를 찾을 수 없습니다"
}

// getDefaultErrorMessage context에 따른 기본 에러 메시지
func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "생성") || strings.Contains(contextLower, "등록") {
		return "등록 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
	}
	if strings.Contains(contextLower, "update") || strings.Contains(contextLower, "수정") {
		return "수정 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
	}
	if strings.Contains(contextLower, "delete") || strings.Contains(contextLower, "삭제") {
		return "삭제 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
	}
	if strings.Contains(contextLower, "activate") || strings.Contains(contextLower, "활성화") {
		return "적용 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
	}

	return "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
}

// ParseAndRespond 에러를 파싱하여 적절한 응답 반환
// 사용처: controller에서 service 에러를 일괄 변환할 때
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
