package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // 로그인 필요
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // 잘못된 이메일/비밀번호
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // 토큰 만료
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // 잘못된 토큰
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // 토큰 폐기됨
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // 이메일 중복
	AuthResetTokenInvalid  = "AUTH_RESET_TOKEN_INVALID" // 잘못된 재설정 토큰
	AuthResetTokenExpired  = "AUTH_RESET_TOKEN_EXPIRED" // 재설정 토큰 만료
	AuthUserNotFound       = "AUTH_USER_NOT_FOUND"      // 사용자 없음

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // 접근 권한 없음
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // 권한 정보 없음
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // 관리자만 가능
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"     // 작성자만 가능

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // 잘못된 입력
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // 잘못된 ID
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // 잘못된 형식
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // 범위 초과
	ValidationRequired      = "VALIDATION_REQUIRED"       // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 콘텐츠 버전 (CONTENT_) ====================
	ContentNotFound       = "CONTENT_NOT_FOUND"       // 콘텐츠 버전 없음
	ContentInvalidType    = "CONTENT_INVALID_TYPE"    // 잘못된 콘텐츠 타입
	ContentTitleRequired  = "CONTENT_TITLE_REQUIRED"  // 버전 라벨 필수
	ContentItemsRequired  = "CONTENT_ITEMS_REQUIRED"  // 하위 항목 필수
	ContentTypeMismatch   = "CONTENT_TYPE_MISMATCH"   // 타입 불일치 활성화 시도
	ContentActivateFailed = "CONTENT_ACTIVATE_FAILED" // 활성화 실패
	ContentKindRequired   = "CONTENT_KIND_REQUIRED"   // 컬렉션 구분 필수

	// ==================== 향수/카탈로그 (PERFUME_) ====================
	PerfumeNotFound    = "PERFUME_NOT_FOUND"    // 향수 없음
	PerfumeOutOfStock  = "PERFUME_OUT_OF_STOCK" // 재고 부족
	BrandNotFound      = "BRAND_NOT_FOUND"      // 브랜드 없음
	BrandAlreadyExists = "BRAND_ALREADY_EXISTS" // 브랜드 중복

	// ==================== 쿠폰 (COUPON_) ====================
	CouponNotFound     = "COUPON_NOT_FOUND"     // 쿠폰 없음
	CouponExpired      = "COUPON_EXPIRED"       // 쿠폰 만료
	CouponAlreadyUsed  = "COUPON_ALREADY_USED"  // 이미 사용된 쿠폰
	CouponMinNotMet    = "COUPON_MIN_NOT_MET"   // 최소 주문 금액 미달
	CouponAlreadyOwned = "COUPON_ALREADY_OWNED" // 이미 발급받은 쿠폰
	CouponNotUsable    = "COUPON_NOT_USABLE"    // 사용 불가 쿠폰

	// ==================== 이벤트 (EVENT_) ====================
	EventNotFound      = "EVENT_NOT_FOUND"      // 이벤트 없음
	EventClosed        = "EVENT_CLOSED"         // 종료된 이벤트
	EventAlreadyJoined = "EVENT_ALREADY_JOINED" // 이미 참여한 이벤트

	// ==================== 주문 (ORDER_) ====================
	OrderNotFound       = "ORDER_NOT_FOUND"       // 주문 없음
	OrderEmptyCart      = "ORDER_EMPTY_CART"      // 장바구니 비어 있음
	OrderInvalid        = "ORDER_INVALID"         // 잘못된 주문 요청
	OrderNotCancellable = "ORDER_NOT_CANCELLABLE" // 취소 불가 상태

	// ==================== 문의 (INQUIRY_) ====================
	InquiryNotFound = "INQUIRY_NOT_FOUND" // 문의 없음

	// ==================== 포인트 (POINT_) ====================
	PointInsufficient = "POINT_INSUFFICIENT"   // 포인트 부족
	PointRuleNotFound = "POINT_RULE_NOT_FOUND" // 적립 규칙 없음

	// ==================== 업로드 (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // 잘못된 파일 형식
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"    // 파일 너무 큼
	UploadFailed          = "UPLOAD_FAILED"            // 업로드 실패

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // 외부 API 오류
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // 설정 오류
)
