package constants

import "time"

const (
	//分頁
	DefaultPagingSize int = 20
	DefaultPaging     int = 1
)

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
	AuthorizationProfileKey ContextKey = "authorization_profile"
)

const AccessTokenDuration = 24 * time.Hour

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)

// client durable storage keys
const (
	StorageTokenKey = "token"
	StorageCartKey  = "cartItems"
)

const (
	DefaultAdminPollInterval = 5 * time.Second
	MaxUploadSize            = 10 << 20
)
